package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/guber-mobility/service-trips/internal/application"
)

// FareHandler handles HTTP requests for standalone fare calculations.
type FareHandler struct {
	service *application.FareService
}

// NewFareHandler creates a new FareHandler.
func NewFareHandler(service *application.FareService) *FareHandler {
	return &FareHandler{service: service}
}

// RegisterRoutes registers the fare routes on the given router group.
func (h *FareHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/api/v1/fare", h.Calculate)
}

// Calculate handles POST /api/v1/fare.
func (h *FareHandler) Calculate(c *gin.Context) {
	var req application.FareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	quote, err := h.service.CalculateFare(req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, quote)
}
