// backend-go/internal/service/replenish_service.go
package service

import (
	"context"
	"time"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/cache"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/replenish"
	"github.com/rs/zerolog/log"
)

// ReplenishmentService wraps the pipeline with the response cache and
// the per-request forecasting time bound. Cache failures are warnings,
// never request failures.
type ReplenishmentService struct {
	pipeline *replenish.Pipeline
	cache    cache.ReplenishmentCache
	timeout  time.Duration
}

func NewReplenishmentService(pipeline *replenish.Pipeline, cacheImpl cache.ReplenishmentCache, timeout time.Duration) *ReplenishmentService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReplenishmentCache()
	}
	return &ReplenishmentService{pipeline: pipeline, cache: cacheImpl, timeout: timeout}
}

func (s *ReplenishmentService) Predict(ctx context.Context, req replenish.Request) ([]domain.ReplenishmentRow, error) {
	if rows, ok, err := s.cache.Get(ctx, req); err == nil && ok {
		return rows, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("replenish: cache get failed")
	}

	runCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rows, err := s.pipeline.Run(runCtx, req)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, req, rows); err != nil {
		log.Warn().Err(err).Msg("replenish: cache set failed")
	}

	return rows, nil
}
