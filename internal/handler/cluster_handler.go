package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/accident-hotspots-go/internal/models"
	"github.com/jengzang/accident-hotspots-go/internal/service"
	"github.com/jengzang/accident-hotspots-go/pkg/response"
)

// ClusterHandler handles HTTP requests for DBSCAN clusters
type ClusterHandler struct {
	service *service.ClusterService
}

// NewClusterHandler creates a new cluster handler
func NewClusterHandler(service *service.ClusterService) *ClusterHandler {
	return &ClusterHandler{service: service}
}

// GetClusters handles GET /api/v1/clusters
func (h *ClusterHandler) GetClusters(c *gin.Context) {
	var filter models.ClusterFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	report, err := h.service.GetClusters(filter)
	if err != nil {
		response.Error(c, statusFor(err), "Failed to compute clusters", err)
		return
	}

	response.Success(c, report)
}
