// backend-go/internal/forecast/trend.go
package forecast

import (
	"time"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
)

// TrendEngine is the default Engine: a least-squares linear trend
// over days since the first observation, with an additive day-of-week
// adjustment derived from the residuals. It is deterministic for a
// given series.
type TrendEngine struct{}

func NewTrendEngine() *TrendEngine {
	return &TrendEngine{}
}

func (e *TrendEngine) Fit(series []domain.SalesPoint) (Model, error) {
	if len(series) < MinTrainingPoints {
		return nil, ErrInsufficientData
	}

	origin := series[0].Date

	// Ordinary least squares on (days since origin, quantity).
	var sumX, sumY, sumXY, sumXX float64
	n := float64(len(series))
	for _, p := range series {
		x := daysBetween(origin, p.Date)
		sumX += x
		sumY += p.Qty
		sumXY += x * p.Qty
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	var slope float64
	if denom != 0 {
		slope = (n*sumXY - sumX*sumY) / denom
	}
	intercept := (sumY - slope*sumX) / n

	// Mean residual per weekday captures the weekly cycle implied by
	// the series itself.
	var residualSum [7]float64
	var residualCount [7]int
	for _, p := range series {
		x := daysBetween(origin, p.Date)
		trend := intercept + slope*x
		wd := int(p.Date.Weekday())
		residualSum[wd] += p.Qty - trend
		residualCount[wd]++
	}

	var weekday [7]float64
	for i := range weekday {
		if residualCount[i] > 0 {
			weekday[i] = residualSum[i] / float64(residualCount[i])
		}
	}

	return &trendModel{
		origin:    origin,
		slope:     slope,
		intercept: intercept,
		weekday:   weekday,
	}, nil
}

type trendModel struct {
	origin    time.Time
	slope     float64
	intercept float64
	weekday   [7]float64
}

func (m *trendModel) Predict(start, end time.Time) []float64 {
	var estimates []float64
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		x := daysBetween(m.origin, day)
		estimate := m.intercept + m.slope*x + m.weekday[int(day.Weekday())]
		estimates = append(estimates, estimate)
	}
	return estimates
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}
