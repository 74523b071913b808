package replenish

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/forecast"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/ledger"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/network"
)

// fixedModel returns perDay for every day in the range.
type fixedModel struct{ perDay float64 }

func (m *fixedModel) Predict(start, end time.Time) []float64 {
	var out []float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, m.perDay)
	}
	return out
}

// fixedEngine fits every sufficiently dense series to a fixedModel.
type fixedEngine struct{ perDay float64 }

func (e *fixedEngine) Fit(series []domain.SalesPoint) (forecast.Model, error) {
	if len(series) < forecast.MinTrainingPoints {
		return nil, forecast.ErrInsufficientData
	}
	return &fixedModel{perDay: e.perDay}, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sale(entity string, billDate time.Time, brand, size string, qty float64) domain.SalesRecord {
	return domain.SalesRecord{
		EntityCode:  entity,
		BillDate:    billDate,
		DateValid:   true,
		Brand:       brand,
		PackageSize: size,
		SoldQty:     qty,
	}
}

// testNetwork wires DIST1 -> {DEP1, DEP2}, DEP1 -> {SHOP1, SHOP2},
// DEP2 -> {SHOP3}. DEP9 has no shops.
func testNetwork() *network.Graph {
	return network.NewGraph(
		[]domain.Edge{
			{From: "DIST1", To: "DEP1"},
			{From: "DIST1", To: "DEP2"},
		},
		[]domain.Edge{
			{From: "DEP1", To: "SHOP1"},
			{From: "DEP1", To: "SHOP2"},
			{From: "DEP2", To: "SHOP3"},
		},
	)
}

func newTestPipeline(engine forecast.Engine, sales []domain.SalesRecord, stock []domain.StockRecord) *Pipeline {
	return NewPipeline(
		testNetwork(),
		ledger.NewSalesLedger(sales),
		NewStockAggregator(ledger.NewStockLedger(stock)),
		forecast.NewForecaster(engine),
		2,
	)
}

// octoberSales returns five dated sales for the SKU so the training
// window for a December request is dense enough to fit.
func octoberSales(entity, brand, size string) []domain.SalesRecord {
	var out []domain.SalesRecord
	for d := 1; d <= 5; d++ {
		out = append(out, sale(entity, date(2024, time.October, d), brand, size, 10))
	}
	return out
}

func TestDepotWithoutShopsFails(t *testing.T) {
	p := newTestPipeline(&fixedEngine{perDay: 1}, nil, nil)

	_, err := p.Run(context.Background(), Request{
		Variant: VariantDepot, ID: "DEP9", FromMonth: 6, LookbackMonths: 2,
	})
	if !errors.Is(err, domain.ErrNoRetailShops) {
		t.Errorf("expected ErrNoRetailShops, got %v", err)
	}
}

func TestDistilleryWithoutDepotsFails(t *testing.T) {
	p := newTestPipeline(&fixedEngine{perDay: 1}, nil, nil)

	_, err := p.Run(context.Background(), Request{
		Variant: VariantDistillerySingle, ID: "DIST9", FromMonth: 6, LookbackMonths: 2,
	})
	if !errors.Is(err, domain.ErrNoDepots) {
		t.Errorf("expected ErrNoDepots, got %v", err)
	}
}

func TestDepotWithoutSalesFails(t *testing.T) {
	// Shops exist but none of them has any sales rows.
	p := newTestPipeline(&fixedEngine{perDay: 1}, []domain.SalesRecord{
		sale("SHOP3", date(2024, time.March, 1), "OldOak", "750", 5),
	}, nil)

	_, err := p.Run(context.Background(), Request{
		Variant: VariantDepot, ID: "DEP1", FromMonth: 6, LookbackMonths: 2,
	})
	if !errors.Is(err, domain.ErrNoDepotSales) {
		t.Errorf("expected ErrNoDepotSales, got %v", err)
	}
}

func TestDistilleryWithoutSalesFails(t *testing.T) {
	p := newTestPipeline(&fixedEngine{perDay: 1}, nil, nil)

	_, err := p.Run(context.Background(), Request{
		Variant: VariantDistilleryCumulative, ID: "DIST1", FromMonth: 6, LookbackMonths: 2,
	})
	if !errors.Is(err, domain.ErrNoDistillerySales) {
		t.Errorf("expected ErrNoDistillerySales, got %v", err)
	}
}

func TestDepotSalesOutsideWindowYieldZeroDemand(t *testing.T) {
	// All sales fall in March; a June request with a two-month
	// lookback trains on April-May, which is empty, so every SKU
	// falls back to zero demand and nothing needs raising.
	sales := []domain.SalesRecord{
		sale("SHOP1", date(2024, time.March, 1), "OldOak", "750", 5),
		sale("SHOP1", date(2024, time.March, 2), "OldOak", "750", 6),
		sale("SHOP2", date(2024, time.March, 3), "RiverGold", "375", 7),
	}
	stock := []domain.StockRecord{
		{EntityCode: "DEP1", Brand: "OldOak", PackageSize: "750", ClosedQty: 10},
		{EntityCode: "SHOP1", Brand: "OldOak", PackageSize: "750", ClosedQty: 4},
	}
	p := newTestPipeline(&fixedEngine{perDay: 99}, sales, stock)

	rows, err := p.Run(context.Background(), Request{
		Variant: VariantDepot, ID: "DEP1", FromMonth: 6, LookbackMonths: 2,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 SKUs, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Demand != 0 {
			t.Errorf("%v: demand = %d, want 0", row.SKU, row.Demand)
		}
		if row.Quantity != 0 {
			t.Errorf("%v: quantity = %d, want 0", row.SKU, row.Quantity)
		}
	}
}

func TestDepotVariantNetsDepotAndRetailStock(t *testing.T) {
	sales := octoberSales("SHOP1", "OldOak", "750")
	stock := []domain.StockRecord{
		{EntityCode: "DEP1", Brand: "OldOak", PackageSize: "750", ClosedQty: 20},
		{EntityCode: "SHOP1", Brand: "OldOak", PackageSize: "750", ClosedQty: 5},
		{EntityCode: "SHOP2", Brand: "OldOak", PackageSize: "750", ClosedQty: 3},
		// Stock at entities outside the depot scope must not count.
		{EntityCode: "SHOP3", Brand: "OldOak", PackageSize: "750", ClosedQty: 100},
		{EntityCode: "DIST1", Brand: "OldOak", PackageSize: "750", ClosedQty: 100},
	}
	p := newTestPipeline(&fixedEngine{perDay: 2}, sales, stock)

	// December has 31 days at 2 per day = 62 demand.
	rows, err := p.Run(context.Background(), Request{
		Variant: VariantDepot, ID: "DEP1", FromMonth: 12, LookbackMonths: 2,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 SKU, got %d", len(rows))
	}

	row := rows[0]
	if row.Demand != 62 {
		t.Errorf("demand = %d, want 62", row.Demand)
	}
	if row.RemainingAtDepot != 20 {
		t.Errorf("remaining_at_depot = %d, want 20", row.RemainingAtDepot)
	}
	if row.RemainingAtRetail != 8 {
		t.Errorf("remaining_at_retail = %d, want 8", row.RemainingAtRetail)
	}
	if row.RemainingStock != 28 {
		t.Errorf("remaining_stock = %d, want 28", row.RemainingStock)
	}
	if row.Quantity != 34 {
		t.Errorf("quantity = %d, want 34", row.Quantity)
	}
	if row.RemainingAtDistillery != 0 {
		t.Errorf("remaining_at_distillery = %d, want 0 for depot scope", row.RemainingAtDistillery)
	}
}

func TestDistilleryCumulativeSpansYearBoundary(t *testing.T) {
	sales := octoberSales("SHOP1", "OldOak", "750")
	stock := []domain.StockRecord{
		{EntityCode: "DIST1", Brand: "OldOak", PackageSize: "750", ClosedQty: 10},
		{EntityCode: "DEP1", Brand: "OldOak", PackageSize: "750", ClosedQty: 5},
		{EntityCode: "SHOP3", Brand: "OldOak", PackageSize: "750", ClosedQty: 3},
	}
	p := newTestPipeline(&fixedEngine{perDay: 1}, sales, stock)

	// Horizon is December 2024 plus January 2025: 31 + 31 days.
	rows, err := p.Run(context.Background(), Request{
		Variant: VariantDistilleryCumulative, ID: "DIST1", FromMonth: 12, LookbackMonths: 2,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 SKU, got %d", len(rows))
	}

	row := rows[0]
	if row.Demand != 62 {
		t.Errorf("demand = %d, want 62", row.Demand)
	}
	if row.RemainingAtDistillery != 10 {
		t.Errorf("remaining_at_distillery = %d, want 10", row.RemainingAtDistillery)
	}
	if row.RemainingAtDepot != 5 {
		t.Errorf("remaining_at_depot = %d, want 5", row.RemainingAtDepot)
	}
	if row.RemainingAtRetail != 3 {
		t.Errorf("remaining_at_retail = %d, want 3", row.RemainingAtRetail)
	}
	if row.RemainingStock != 18 {
		t.Errorf("remaining_stock = %d, want 18", row.RemainingStock)
	}
	if row.Quantity != 44 {
		t.Errorf("quantity = %d, want 44", row.Quantity)
	}
}

func TestDistillerySingleUsesOneMonthHorizon(t *testing.T) {
	sales := octoberSales("SHOP1", "OldOak", "750")
	p := newTestPipeline(&fixedEngine{perDay: 1}, sales, nil)

	rows, err := p.Run(context.Background(), Request{
		Variant: VariantDistillerySingle, ID: "DIST1", FromMonth: 12, LookbackMonths: 2,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if rows[0].Demand != 31 {
		t.Errorf("demand = %d, want 31 (December only)", rows[0].Demand)
	}
}

func TestRetailOnlyStockStillCounts(t *testing.T) {
	sales := octoberSales("SHOP1", "OldOak", "750")
	stock := []domain.StockRecord{
		// Never stocked at the depot, only at retail.
		{EntityCode: "SHOP1", Brand: "OldOak", PackageSize: "750", ClosedQty: 7},
	}
	p := newTestPipeline(&fixedEngine{perDay: 1}, sales, stock)

	rows, err := p.Run(context.Background(), Request{
		Variant: VariantDepot, ID: "DEP1", FromMonth: 12, LookbackMonths: 2,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	row := rows[0]
	if row.RemainingAtDepot != 0 {
		t.Errorf("remaining_at_depot = %d, want 0", row.RemainingAtDepot)
	}
	if row.RemainingAtRetail != 7 {
		t.Errorf("remaining_at_retail = %d, want 7", row.RemainingAtRetail)
	}
	if row.RemainingStock != 7 {
		t.Errorf("remaining_stock = %d, want 7", row.RemainingStock)
	}
}

func TestNegativeForecastClampsQuantityAtZero(t *testing.T) {
	sales := octoberSales("SHOP1", "OldOak", "750")
	p := newTestPipeline(&fixedEngine{perDay: -3}, sales, nil)

	rows, err := p.Run(context.Background(), Request{
		Variant: VariantDepot, ID: "DEP1", FromMonth: 12, LookbackMonths: 2,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	row := rows[0]
	if row.Demand >= 0 {
		t.Errorf("demand = %d, expected the raw negative estimate to survive rounding", row.Demand)
	}
	if row.Quantity != 0 {
		t.Errorf("quantity = %d, want 0", row.Quantity)
	}
}

func TestRowsKeepFirstSeenSKUOrder(t *testing.T) {
	sales := []domain.SalesRecord{
		sale("SHOP1", date(2024, time.March, 1), "Zephyr", "1000", 1),
		sale("SHOP1", date(2024, time.March, 1), "OldOak", "750", 1),
		sale("SHOP2", date(2024, time.March, 2), "RiverGold", "375", 1),
		sale("SHOP2", date(2024, time.March, 2), "Zephyr", "1000", 1),
	}
	p := newTestPipeline(&fixedEngine{perDay: 1}, sales, nil)

	rows, err := p.Run(context.Background(), Request{
		Variant: VariantDepot, ID: "DEP1", FromMonth: 6, LookbackMonths: 2,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []domain.SKU{
		{Brand: "Zephyr", PackageSize: "1000"},
		{Brand: "OldOak", PackageSize: "750"},
		{Brand: "RiverGold", PackageSize: "375"},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, sku := range want {
		if rows[i].SKU != sku {
			t.Errorf("row %d: SKU = %v, want %v", i, rows[i].SKU, sku)
		}
	}
}

func TestCancelledContextFailsRequest(t *testing.T) {
	sales := octoberSales("SHOP1", "OldOak", "750")
	p := newTestPipeline(&fixedEngine{perDay: 1}, sales, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Run(ctx, Request{
		Variant: VariantDepot, ID: "DEP1", FromMonth: 12, LookbackMonths: 2,
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
