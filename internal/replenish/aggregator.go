// backend-go/internal/replenish/aggregator.go
package replenish

import (
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/ledger"
)

// StockAggregator sums closing stock for a SKU across one hierarchy
// level at a time. Levels are never merged here; the pipeline decides
// which level sums combine for each request variant.
type StockAggregator struct {
	stock *ledger.StockLedger
}

func NewStockAggregator(stock *ledger.StockLedger) *StockAggregator {
	return &StockAggregator{stock: stock}
}

// SumClosing returns the closing-stock total for the SKU across the
// entity set; zero when no rows match.
func (a *StockAggregator) SumClosing(entityIDs []string, sku domain.SKU) float64 {
	return a.stock.SumClosing(entityIDs, sku)
}
