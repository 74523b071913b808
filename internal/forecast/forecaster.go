// backend-go/internal/forecast/forecaster.go
package forecast

import (
	"fmt"
	"time"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
)

// Outcome tags how a SKU's demand estimate was produced.
type Outcome string

const (
	// OutcomeForecasted means the engine fitted and predicted
	// normally.
	OutcomeForecasted Outcome = "forecasted"
	// OutcomeFallback means the SKU had fewer than MinTrainingPoints
	// distinct sales dates and demand defaulted to zero.
	OutcomeFallback Outcome = "fallback"
	// OutcomeFailed means the engine errored or panicked; demand
	// degraded to zero for this SKU only.
	OutcomeFailed Outcome = "failed"
)

// Demand is the horizon total for one SKU with its outcome tag. Total
// is raw model output summed over the horizon: fractional and
// possibly negative; only the final shortfall is floored at zero.
type Demand struct {
	Total   float64
	Outcome Outcome
	Err     error
}

// Forecaster orchestrates an Engine per SKU and horizon.
type Forecaster struct {
	engine Engine
}

func NewForecaster(engine Engine) *Forecaster {
	return &Forecaster{engine: engine}
}

// MonthlyDemand fits once on the training series and sums daily
// predictions over horizonMonths consecutive months starting at
// (year, fromMonth). Advancing past December rolls into January of
// the next year.
//
// A sparse series (< MinTrainingPoints distinct dates) is a fallback,
// not an error. Engine errors and panics are contained here so one
// pathological SKU never aborts the batch.
func (f *Forecaster) MonthlyDemand(series []domain.SalesPoint, year, fromMonth, horizonMonths int) Demand {
	if len(series) < MinTrainingPoints {
		return Demand{Total: 0, Outcome: OutcomeFallback}
	}

	total, err := f.predictHorizon(series, year, fromMonth, horizonMonths)
	if err != nil {
		return Demand{Total: 0, Outcome: OutcomeFailed, Err: err}
	}
	return Demand{Total: total, Outcome: OutcomeForecasted}
}

func (f *Forecaster) predictHorizon(series []domain.SalesPoint, year, fromMonth, horizonMonths int) (total float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("forecast engine panicked: %v", r)
		}
	}()

	model, err := f.engine.Fit(series)
	if err != nil {
		return 0, fmt.Errorf("fit: %w", err)
	}

	y, m := year, fromMonth
	for i := 0; i < horizonMonths; i++ {
		start := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		for _, estimate := range model.Predict(start, end) {
			total += estimate
		}

		m++
		if m > 12 {
			m = 1
			y++
		}
	}
	return total, nil
}
