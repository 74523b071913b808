// backend-go/internal/forecast/engine.go
package forecast

import (
	"errors"
	"time"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
)

// MinTrainingPoints is the minimum number of distinct observation
// dates an engine needs before fitting. SKUs below it are treated as
// dormant and default to zero demand.
const MinTrainingPoints = 5

// ErrInsufficientData is returned by Fit when the series carries
// fewer than MinTrainingPoints distinct dates.
var ErrInsufficientData = errors.New("insufficient training data")

// Model is a fitted per-SKU forecaster.
type Model interface {
	// Predict returns one point estimate per calendar day in the
	// inclusive range. Estimates may be negative; clamping happens
	// only at the final shortfall computation.
	Predict(start, end time.Time) []float64
}

// Engine turns a historical daily series into a Model. The series is
// ordered, one point per distinct date, gaps allowed; no external
// regressors or seasonality hints beyond what the series implies.
type Engine interface {
	Fit(series []domain.SalesPoint) (Model, error)
}
