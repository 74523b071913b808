// backend-go/internal/ledger/sales.go
package ledger

import (
	"sort"
	"time"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
)

// SalesLedger is the immutable table of dated sales events. It is
// loaded once at startup and shared across requests without locking;
// nothing mutates it afterwards.
type SalesLedger struct {
	records []domain.SalesRecord
}

func NewSalesLedger(records []domain.SalesRecord) *SalesLedger {
	return &SalesLedger{records: records}
}

// Len returns the number of rows, including rows with invalid dates.
func (l *SalesLedger) Len() int {
	return len(l.records)
}

// Empty reports whether the ledger holds no rows at all.
func (l *SalesLedger) Empty() bool {
	return len(l.records) == 0
}

// ForEntities returns a new ledger restricted to sales booked at any
// of the given entity codes, preserving row order.
func (l *SalesLedger) ForEntities(entityIDs []string) *SalesLedger {
	member := make(map[string]struct{}, len(entityIDs))
	for _, id := range entityIDs {
		member[id] = struct{}{}
	}

	var filtered []domain.SalesRecord
	for _, r := range l.records {
		if _, ok := member[r.EntityCode]; ok {
			filtered = append(filtered, r)
		}
	}
	return &SalesLedger{records: filtered}
}

// MaxYear returns the latest bill year present in the ledger. Rows
// with invalid dates are ignored; ok is false when no row carries a
// usable date.
func (l *SalesLedger) MaxYear() (int, bool) {
	year := 0
	found := false
	for _, r := range l.records {
		if !r.DateValid {
			continue
		}
		if y := r.BillDate.Year(); !found || y > year {
			year = y
			found = true
		}
	}
	return year, found
}

// SKUs returns the distinct (brand, package size) pairs in first-seen
// order. Enumeration covers every row, dated or not: a SKU with only
// undated sales still appears in the result set with zero demand.
func (l *SalesLedger) SKUs() []domain.SKU {
	seen := make(map[domain.SKU]struct{})
	var skus []domain.SKU
	for _, r := range l.records {
		sku := domain.SKU{Brand: r.Brand, PackageSize: r.PackageSize}
		if _, ok := seen[sku]; ok {
			continue
		}
		seen[sku] = struct{}{}
		skus = append(skus, sku)
	}
	return skus
}

// DailyTotals builds the daily aggregated training series for a SKU:
// sold quantities summed per bill date, restricted to [from, to]
// inclusive, sorted by date. Rows with invalid dates never
// contribute.
func (l *SalesLedger) DailyTotals(sku domain.SKU, from, to time.Time) []domain.SalesPoint {
	totals := make(map[time.Time]float64)
	for _, r := range l.records {
		if !r.DateValid || r.Brand != sku.Brand || r.PackageSize != sku.PackageSize {
			continue
		}
		day := time.Date(r.BillDate.Year(), r.BillDate.Month(), r.BillDate.Day(), 0, 0, 0, 0, time.UTC)
		if day.Before(from) || day.After(to) {
			continue
		}
		totals[day] += r.SoldQty
	}

	series := make([]domain.SalesPoint, 0, len(totals))
	for day, qty := range totals {
		series = append(series, domain.SalesPoint{Date: day, Qty: qty})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series
}
