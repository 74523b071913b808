// backend-go/internal/api/handlers/replenish_handler.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/replenish"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

const defaultLookbackMonths = 2

type ReplenishmentHandler struct {
	service *service.ReplenishmentService
}

func NewReplenishmentHandler(service *service.ReplenishmentService) *ReplenishmentHandler {
	return &ReplenishmentHandler{service: service}
}

// PredictDepot handles POST /depot/predict: one-month demand for the
// retail shops under a depot, netted against depot and retail stock.
func (h *ReplenishmentHandler) PredictDepot(c *gin.Context) {
	rows, ok := h.run(c, replenish.VariantDepot)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, domain.DepotItems(rows))
}

// PredictDistillery handles POST /distillery/predict: two-month
// cumulative demand for everything downstream of a distillery.
func (h *ReplenishmentHandler) PredictDistillery(c *gin.Context) {
	rows, ok := h.run(c, replenish.VariantDistilleryCumulative)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, domain.ManufactureItems(rows))
}

// PredictIntent handles POST /intent: single-month demand at
// distillery scope.
func (h *ReplenishmentHandler) PredictIntent(c *gin.Context) {
	rows, ok := h.run(c, replenish.VariantDistillerySingle)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, domain.IntentItems(rows))
}

func (h *ReplenishmentHandler) run(c *gin.Context, variant replenish.Variant) ([]domain.ReplenishmentRow, bool) {
	req, ok := h.parseRequest(c, variant)
	if !ok {
		return nil, false
	}

	rows, err := h.service.Predict(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}
	return rows, true
}

// parseRequest validates presence before any coercion: a missing id
// or from_month is a 400, never a zero value silently flowing
// downstream.
func (h *ReplenishmentHandler) parseRequest(c *gin.Context, variant replenish.Variant) (replenish.Request, bool) {
	var body domain.PredictRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return replenish.Request{}, false
	}

	if body.ID == nil || *body.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return replenish.Request{}, false
	}
	if body.FromMonth == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from_month is required"})
		return replenish.Request{}, false
	}
	if *body.FromMonth < 1 || *body.FromMonth > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from_month must be between 1 and 12"})
		return replenish.Request{}, false
	}

	lookback := defaultLookbackMonths
	if body.Month != nil {
		if *body.Month < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be a positive lookback length"})
			return replenish.Request{}, false
		}
		lookback = *body.Month
	}

	return replenish.Request{
		Variant:        variant,
		ID:             *body.ID,
		FromMonth:      *body.FromMonth,
		LookbackMonths: lookback,
	}, true
}

func (h *ReplenishmentHandler) writeError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "forecast did not complete in time"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute replenishment", "details": err.Error()})
	}
}
