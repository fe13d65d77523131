package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/guber-mobility/service-trips/internal/application"
	"github.com/guber-mobility/service-trips/internal/domain/trip"
)

// EstimateHandler handles HTTP requests for trip estimates, geocoding and
// routing lookups.
type EstimateHandler struct {
	service *application.EstimateService
}

// NewEstimateHandler creates a new EstimateHandler.
func NewEstimateHandler(service *application.EstimateService) *EstimateHandler {
	return &EstimateHandler{service: service}
}

// RegisterRoutes registers all estimate routes on the given router group.
func (h *EstimateHandler) RegisterRoutes(r *gin.RouterGroup) {
	api := r.Group("/api/v1")
	{
		api.POST("/estimate", h.Estimate)
		api.GET("/geocode", h.Geocode)
		api.POST("/route", h.Route)
		api.POST("/route/decode", h.DecodePath)
	}
}

// Estimate handles POST /api/v1/estimate.
func (h *EstimateHandler) Estimate(c *gin.Context) {
	var req application.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Estimate(c.Request.Context(), req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// Geocode handles GET /api/v1/geocode.
func (h *EstimateHandler) Geocode(c *gin.Context) {
	query := c.Query("query")

	result, err := h.service.Geocode(c.Request.Context(), query)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// routeRequest is the body of POST /api/v1/route.
type routeRequest struct {
	Start trip.GeoPoint `json:"start" binding:"required"`
	End   trip.GeoPoint `json:"end" binding:"required"`
}

// Route handles POST /api/v1/route.
func (h *EstimateHandler) Route(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	result, err := h.service.RouteBetween(c.Request.Context(), req.Start, req.End)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, result)
}

// decodePathRequest is the body of POST /api/v1/route/decode.
type decodePathRequest struct {
	Encoded   string `json:"encoded"`
	Precision int    `json:"precision"`
}

// DecodePath handles POST /api/v1/route/decode.
func (h *EstimateHandler) DecodePath(c *gin.Context) {
	var req decodePathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	if req.Precision == 0 {
		req.Precision = trip.Precision6
	}

	points, err := h.service.DecodePath(req.Encoded, req.Precision)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, gin.H{"points": points})
}
