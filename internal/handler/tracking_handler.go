package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/guber-mobility/service-trips/internal/application"
	"github.com/guber-mobility/service-trips/internal/domain/tracking"
)

// TrackingHandler handles HTTP requests for live-position updates and reads.
type TrackingHandler struct {
	service *application.TrackingService
}

// NewTrackingHandler creates a new TrackingHandler.
func NewTrackingHandler(service *application.TrackingService) *TrackingHandler {
	return &TrackingHandler{service: service}
}

// RegisterRoutes registers all tracking routes on the given router group.
func (h *TrackingHandler) RegisterRoutes(r *gin.RouterGroup) {
	api := r.Group("/api/v1/locations")
	{
		api.POST("/driver", h.UpdateDriver)
		api.POST("/rider", h.UpdateRider)
		api.GET("/last", h.LastLocation)
	}
}

// UpdateDriver handles POST /api/v1/locations/driver.
func (h *TrackingHandler) UpdateDriver(c *gin.Context) {
	h.update(c, tracking.KindDriver)
}

// UpdateRider handles POST /api/v1/locations/rider.
func (h *TrackingHandler) UpdateRider(c *gin.Context) {
	h.update(c, tracking.KindRider)
}

func (h *TrackingHandler) update(c *gin.Context, kind tracking.EntityKind) {
	var req application.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}

	record, err := h.service.UpdateLocation(c.Request.Context(), kind, req)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, record)
}

// LastLocation handles GET /api/v1/locations/last.
func (h *TrackingHandler) LastLocation(c *gin.Context) {
	kindParam := c.Query("kind")
	entityID := c.Query("entity_id")
	if kindParam == "" || entityID == "" {
		BadRequest(c, "kind and entity_id are required")
		return
	}

	kind, err := tracking.ParseEntityKind(kindParam)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	record, err := h.service.LastLocation(kind, entityID)
	if err != nil {
		Error(c, err)
		return
	}

	Success(c, record)
}
