// backend-go/internal/replenish/metrics.go
package replenish

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	forecastOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "replenish",
		Name:      "forecast_outcomes_total",
		Help:      "Per-SKU forecast outcomes by variant and outcome tag.",
	}, []string{"variant", "outcome"})

	pipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "replenish",
		Name:      "pipeline_runs_total",
		Help:      "Pipeline runs by variant and result.",
	}, []string{"variant", "result"})
)
