// backend-go/internal/ledger/stock.go
package ledger

import "github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"

// StockLedger is the immutable closing-stock snapshot, indexed by SKU
// for the per-level sums the pipeline performs for every catalog
// entry.
type StockLedger struct {
	bySKU map[domain.SKU][]domain.StockRecord
}

func NewStockLedger(records []domain.StockRecord) *StockLedger {
	bySKU := make(map[domain.SKU][]domain.StockRecord)
	for _, r := range records {
		sku := domain.SKU{Brand: r.Brand, PackageSize: r.PackageSize}
		bySKU[sku] = append(bySKU[sku], r)
	}
	return &StockLedger{bySKU: bySKU}
}

// SumClosing sums closed quantities over all rows matching the exact
// SKU and any entity in the set. Zero when nothing matches; never an
// error. The result does not depend on source row order.
func (l *StockLedger) SumClosing(entityIDs []string, sku domain.SKU) float64 {
	rows, ok := l.bySKU[sku]
	if !ok {
		return 0
	}

	member := make(map[string]struct{}, len(entityIDs))
	for _, id := range entityIDs {
		member[id] = struct{}{}
	}

	var total float64
	for _, r := range rows {
		if _, ok := member[r.EntityCode]; ok {
			total += r.ClosedQty
		}
	}
	return total
}
