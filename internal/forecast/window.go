// backend-go/internal/forecast/window.go
package forecast

import "time"

// Window is the historical date range a per-SKU forecast trains on,
// inclusive on both ends.
type Window struct {
	Start time.Time
	End   time.Time
}

// NormalizeMonth folds an out-of-range month into a valid (year,
// month) pair, rolling across year boundaries in either direction.
func NormalizeMonth(year, month int) (int, int) {
	for month <= 0 {
		month += 12
		year--
	}
	for month > 12 {
		month -= 12
		year++
	}
	return year, month
}

// TrainingWindow computes the training slice for a request: from the
// first day of month (fromMonth - lookbackMonths) through the last
// day of month (fromMonth - 1), anchored to referenceYear, the latest
// year for which the filtered subtree has sales. Month values that
// underflow roll into the previous year.
func TrainingWindow(referenceYear, fromMonth, lookbackMonths int) Window {
	startYear, startMonth := NormalizeMonth(referenceYear, fromMonth-lookbackMonths)
	endYear, endMonth := NormalizeMonth(referenceYear, fromMonth-1)

	start := time.Date(startYear, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, time.Month(endMonth), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1)
	return Window{Start: start, End: end}
}
