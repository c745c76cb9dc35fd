package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/accident-hotspots-go/internal/analysis/hotspot"
	"github.com/jengzang/accident-hotspots-go/internal/models"
	"github.com/jengzang/accident-hotspots-go/internal/service"
	"github.com/jengzang/accident-hotspots-go/pkg/response"
)

// HotspotHandler handles HTTP requests for hotspot and anomaly detection
type HotspotHandler struct {
	service *service.HotspotService
}

// NewHotspotHandler creates a new hotspot handler
func NewHotspotHandler(service *service.HotspotService) *HotspotHandler {
	return &HotspotHandler{service: service}
}

// GetHotspots handles GET /api/v1/hotspots
func (h *HotspotHandler) GetHotspots(c *gin.Context) {
	var filter models.HotspotFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	report, err := h.service.GetHotspots(filter)
	if err != nil {
		response.Error(c, statusFor(err), "Failed to detect hotspots", err)
		return
	}

	response.Success(c, report)
}

// GetAnomalies handles GET /api/v1/anomalies
func (h *HotspotHandler) GetAnomalies(c *gin.Context) {
	var filter models.AnomalyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	report, err := h.service.GetAnomalies(filter)
	if err != nil {
		response.Error(c, statusFor(err), "Failed to detect anomalies", err)
		return
	}

	response.Success(c, report)
}

// GetMetrics handles GET /api/v1/metrics
func (h *HotspotHandler) GetMetrics(c *gin.Context) {
	response.Success(c, gin.H{
		"metrics": h.service.Metrics(),
	})
}

// ClearGridCache handles POST /api/admin/grid-cache/clear
func (h *HotspotHandler) ClearGridCache(c *gin.Context) {
	cleared := h.service.ClearGridCache()
	response.Success(c, gin.H{
		"cleared":    cleared,
		"cleared_by": c.GetString("user"),
	})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidFilter),
		errors.Is(err, hotspot.ErrUnknownMetric),
		errors.Is(err, hotspot.ErrInvalidGridParameters):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoDataSource):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
