// backend-go/internal/replenish/pipeline.go
package replenish

import (
	"context"
	"sync"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/forecast"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/ledger"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/network"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// Variant selects one of the three request shapes. All variants run
// the same pipeline; they differ only in scope resolution, forecast
// horizon and which stock levels are netted.
type Variant string

const (
	VariantDepot                Variant = "depot"
	VariantDistilleryCumulative Variant = "distillery-cumulative"
	VariantDistillerySingle     Variant = "distillery-single"
)

type variantSpec struct {
	distilleryScope bool // resolve two hops and net distillery stock
	horizonMonths   int
}

var variants = map[Variant]variantSpec{
	VariantDepot:                {distilleryScope: false, horizonMonths: 1},
	VariantDistilleryCumulative: {distilleryScope: true, horizonMonths: 2},
	VariantDistillerySingle:     {distilleryScope: true, horizonMonths: 1},
}

// Request is a validated replenishment request.
type Request struct {
	Variant        Variant
	ID             string
	FromMonth      int
	LookbackMonths int
}

// Pipeline orchestrates scope resolution, windowing, per-SKU
// forecasting, stock rollup and the shortfall computation over the
// process-wide immutable ledgers.
type Pipeline struct {
	graph      *network.Graph
	sales      *ledger.SalesLedger
	stock      *StockAggregator
	forecaster *forecast.Forecaster
	workers    int
}

func NewPipeline(graph *network.Graph, sales *ledger.SalesLedger, stock *StockAggregator, forecaster *forecast.Forecaster, workers int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		graph:      graph,
		sales:      sales,
		stock:      stock,
		forecaster: forecaster,
		workers:    workers,
	}
}

// scope is the resolved entity sets for one request. Depot-scope
// requests leave distillery empty and hold the single depot id in
// depots.
type scope struct {
	distillery string
	depots     []string
	shops      []string
}

// Run executes the request end to end. Scope and data errors are
// terminal for the whole request: no partial results. Per-SKU
// forecast failures degrade that SKU to zero demand and the batch
// continues.
func (p *Pipeline) Run(ctx context.Context, req Request) ([]domain.ReplenishmentRow, error) {
	spec, ok := variants[req.Variant]
	if !ok {
		spec = variants[VariantDepot]
	}

	sc, err := p.resolveScope(req, spec)
	if err != nil {
		pipelineRuns.WithLabelValues(string(req.Variant), "scope_error").Inc()
		return nil, err
	}

	subtree := p.sales.ForEntities(sc.shops)
	year, ok := subtree.MaxYear()
	if subtree.Empty() || !ok {
		pipelineRuns.WithLabelValues(string(req.Variant), "no_sales").Inc()
		if spec.distilleryScope {
			return nil, domain.ErrNoDistillerySales
		}
		return nil, domain.ErrNoDepotSales
	}

	window := forecast.TrainingWindow(year, req.FromMonth, req.LookbackMonths)

	// SKU enumeration covers the whole subtree, not just the training
	// window: a SKU sold outside the window still gets a row with
	// zero demand.
	skus := subtree.SKUs()
	rows := make([]domain.ReplenishmentRow, len(skus))

	sem := semaphore.NewWeighted(int64(p.workers))
	var wg sync.WaitGroup
	for i, sku := range skus {
		if err := sem.Acquire(ctx, 1); err != nil {
			pipelineRuns.WithLabelValues(string(req.Variant), "timeout").Inc()
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(i int, sku domain.SKU) {
			defer wg.Done()
			defer sem.Release(1)
			rows[i] = p.processSKU(req, spec, sc, subtree, window, year, sku)
		}(i, sku)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		pipelineRuns.WithLabelValues(string(req.Variant), "timeout").Inc()
		return nil, err
	}

	pipelineRuns.WithLabelValues(string(req.Variant), "ok").Inc()
	return rows, nil
}

func (p *Pipeline) resolveScope(req Request, spec variantSpec) (scope, error) {
	if !spec.distilleryScope {
		shops, err := p.graph.RetailShops(req.ID)
		if err != nil {
			return scope{}, err
		}
		return scope{depots: []string{req.ID}, shops: shops}, nil
	}

	depots, err := p.graph.Depots(req.ID)
	if err != nil {
		return scope{}, err
	}
	// An empty shop set under resolved depots is not a scope error at
	// distillery level; it surfaces as an empty sales subtree below.
	shops, err := p.graph.RetailShops(depots...)
	if err != nil {
		shops = nil
	}
	return scope{distillery: req.ID, depots: depots, shops: shops}, nil
}

func (p *Pipeline) processSKU(req Request, spec variantSpec, sc scope, subtree *ledger.SalesLedger, window forecast.Window, year int, sku domain.SKU) domain.ReplenishmentRow {
	series := subtree.DailyTotals(sku, window.Start, window.End)
	demand := p.forecaster.MonthlyDemand(series, year, req.FromMonth, spec.horizonMonths)

	forecastOutcomes.WithLabelValues(string(req.Variant), string(demand.Outcome)).Inc()
	if demand.Outcome == forecast.OutcomeFailed {
		log.Warn().
			Err(demand.Err).
			Str("brand", sku.Brand).
			Str("package_size", sku.PackageSize).
			Msg("forecast degraded to zero demand")
	}

	row := domain.ReplenishmentRow{SKU: sku, Demand: RoundQty(demand.Total)}

	depotStock := p.stock.SumClosing(sc.depots, sku)
	retailStock := p.stock.SumClosing(sc.shops, sku)
	row.RemainingAtDepot = RoundQty(depotStock)
	row.RemainingAtRetail = RoundQty(retailStock)

	remaining := depotStock + retailStock
	if spec.distilleryScope {
		distilleryStock := p.stock.SumClosing([]string{sc.distillery}, sku)
		row.RemainingAtDistillery = RoundQty(distilleryStock)
		remaining += distilleryStock
	}
	row.RemainingStock = RoundQty(remaining)
	row.Quantity = QuantityToRaise(demand.Total, remaining)
	return row
}
