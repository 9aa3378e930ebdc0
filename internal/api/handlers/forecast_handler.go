// internal/api/handlers/forecast_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/planwise/ibp-backend/internal/service"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

// Forecast evaluates every available model for one product. A product with no
// history is an empty state, not a failure.
func (h *ForecastHandler) Forecast(c *gin.Context) {
	code := c.Param("code")
	report, err := h.service.Forecast(c.Request.Context(), code)
	if err != nil {
		var noHistory *domain.NoHistoryError
		if errors.As(err, &noHistory) {
			c.JSON(http.StatusOK, gin.H{
				"product_code": code,
				"message":      "no historical data available",
				"results":      []domain.ForecastResult{},
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Models lists the registered forecast strategies.
func (h *ForecastHandler) Models(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"models": h.service.AvailableModels()})
}
