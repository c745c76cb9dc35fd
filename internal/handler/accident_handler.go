package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/accident-hotspots-go/internal/models"
	"github.com/jengzang/accident-hotspots-go/internal/service"
	"github.com/jengzang/accident-hotspots-go/pkg/response"
)

// AccidentHandler handles HTTP requests for raw accidents and dataset management
type AccidentHandler struct {
	accidents *service.AccidentService
	dataset   *service.DatasetService
}

// NewAccidentHandler creates a new accident handler
func NewAccidentHandler(accidents *service.AccidentService, dataset *service.DatasetService) *AccidentHandler {
	return &AccidentHandler{
		accidents: accidents,
		dataset:   dataset,
	}
}

// GetAccidents handles GET /api/v1/accidents
func (h *AccidentHandler) GetAccidents(c *gin.Context) {
	var filter models.AccidentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	collections, err := h.accidents.GetAccidents(filter)
	if err != nil {
		response.Error(c, statusFor(err), "Failed to get accidents", err)
		return
	}

	response.Success(c, collections)
}

// GetStats handles GET /api/v1/stats
func (h *AccidentHandler) GetStats(c *gin.Context) {
	response.Success(c, h.accidents.GetStats())
}

// ReloadDataset handles POST /api/admin/dataset/reload
func (h *AccidentHandler) ReloadDataset(c *gin.Context) {
	if err := h.dataset.Reload(); err != nil {
		response.Error(c, statusFor(err), "Failed to reload dataset", err)
		return
	}

	response.Success(c, gin.H{
		"total":       len(h.dataset.Accidents()),
		"bounds":      h.dataset.Bounds(),
		"reloaded_by": c.GetString("user"),
	})
}
