// backend-go/internal/domain/models.go
package domain

import "time"

// SKU identifies a stock-keeping unit. PackageSize is always text:
// "750" and "750ml" are distinct identities and never reinterpreted
// as numbers.
type SKU struct {
	Brand       string `json:"brand"`
	PackageSize string `json:"package_size"`
}

// SalesRecord is a single dated sales event at a retail shop.
// DateValid is false when the source bill date was missing or
// unparseable; such rows are invisible to all date-based filtering.
type SalesRecord struct {
	EntityCode  string
	BillDate    time.Time
	DateValid   bool
	Brand       string
	PackageSize string
	SoldQty     float64
}

// StockRecord is one closing-stock row for an entity. The snapshot
// carries no timestamp; all rows matching an entity set are summed
// as a single point-in-time snapshot.
type StockRecord struct {
	EntityCode  string
	Brand       string
	PackageSize string
	ClosedQty   float64
}

// Edge is a directed link in the distribution hierarchy
// (distillery→depot or depot→retail).
type Edge struct {
	From string
	To   string
}

// SalesPoint is one day of aggregated sales for a SKU, the unit of a
// forecast training series.
type SalesPoint struct {
	Date time.Time
	Qty  float64
}

// PredictRequest is the JSON body shared by all three predict
// endpoints. Pointer fields let handlers distinguish "absent" from
// zero values before any coercion.
type PredictRequest struct {
	ID        *string `json:"id"`
	FromMonth *int    `json:"from_month"`
	Month     *int    `json:"month"`
}

// ReplenishmentRow is the per-SKU pipeline result before response
// shaping. Quantity is the rounded non-negative shortfall.
type ReplenishmentRow struct {
	SKU                   SKU
	Demand                int
	RemainingAtDistillery int
	RemainingAtDepot      int
	RemainingAtRetail     int
	RemainingStock        int
	Quantity              int
}

// DepotItem is the response record for /depot/predict.
type DepotItem struct {
	Brand             string `json:"brand"`
	PackageSize       string `json:"package_size"`
	RemainingAtDepot  int    `json:"remaining_at_depot"`
	RemainingAtRetail int    `json:"remaining_at_retail"`
	Demand            int    `json:"demand"`
	RemainingStock    int    `json:"remaining_stock"`
	QuantityToRaise   int    `json:"quantitytoraise"`
}

// ManufactureItem is the response record for /distillery/predict
// (two-month cumulative demand).
type ManufactureItem struct {
	Brand                 string `json:"brand"`
	PackageSize           string `json:"package_size"`
	Demand                int    `json:"demand"`
	RemainingAtDistillery int    `json:"remaining_at_distillery"`
	RemainingAtDepot      int    `json:"remaining_at_depot"`
	RemainingAtRetail     int    `json:"remaining_at_retail"`
	RemainingStock        int    `json:"remaining_stock"`
	QuantityToManufacture int    `json:"quantityToManufacture"`
}

// IntentItem is the response record for /intent. Same shape as
// ManufactureItem except for the final field name.
type IntentItem struct {
	Brand                 string `json:"brand"`
	PackageSize           string `json:"package_size"`
	Demand                int    `json:"demand"`
	RemainingAtDistillery int    `json:"remaining_at_distillery"`
	RemainingAtDepot      int    `json:"remaining_at_depot"`
	RemainingAtRetail     int    `json:"remaining_at_retail"`
	RemainingStock        int    `json:"remaining_stock"`
	QuantityToRaise       int    `json:"quantitytoraise"`
}

// DepotItems shapes pipeline rows into the depot response.
func DepotItems(rows []ReplenishmentRow) []DepotItem {
	items := make([]DepotItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, DepotItem{
			Brand:             r.SKU.Brand,
			PackageSize:       r.SKU.PackageSize,
			RemainingAtDepot:  r.RemainingAtDepot,
			RemainingAtRetail: r.RemainingAtRetail,
			Demand:            r.Demand,
			RemainingStock:    r.RemainingStock,
			QuantityToRaise:   r.Quantity,
		})
	}
	return items
}

// ManufactureItems shapes pipeline rows into the distillery
// cumulative response.
func ManufactureItems(rows []ReplenishmentRow) []ManufactureItem {
	items := make([]ManufactureItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, ManufactureItem{
			Brand:                 r.SKU.Brand,
			PackageSize:           r.SKU.PackageSize,
			Demand:                r.Demand,
			RemainingAtDistillery: r.RemainingAtDistillery,
			RemainingAtDepot:      r.RemainingAtDepot,
			RemainingAtRetail:     r.RemainingAtRetail,
			RemainingStock:        r.RemainingStock,
			QuantityToManufacture: r.Quantity,
		})
	}
	return items
}

// IntentItems shapes pipeline rows into the intent response.
func IntentItems(rows []ReplenishmentRow) []IntentItem {
	items := make([]IntentItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, IntentItem{
			Brand:                 r.SKU.Brand,
			PackageSize:           r.SKU.PackageSize,
			Demand:                r.Demand,
			RemainingAtDistillery: r.RemainingAtDistillery,
			RemainingAtDepot:      r.RemainingAtDepot,
			RemainingAtRetail:     r.RemainingAtRetail,
			RemainingStock:        r.RemainingStock,
			QuantityToRaise:       r.Quantity,
		})
	}
	return items
}
