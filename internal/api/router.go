package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/accident-hotspots-go/internal/config"
	"github.com/jengzang/accident-hotspots-go/internal/handler"
	"github.com/jengzang/accident-hotspots-go/internal/middleware"
)

// Handlers groups the HTTP handlers served by the router
type Handlers struct {
	Hotspots  *handler.HotspotHandler
	Clusters  *handler.ClusterHandler
	Accidents *handler.AccidentHandler
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Accident Hotspots API is running",
		})
	})

	// API 路由组
	api := r.Group("/api/v1")
	if cfg.RateLimit > 0 {
		api.Use(middleware.RateLimit(cfg.RateLimit, time.Minute))
	}
	{
		api.GET("/hotspots", h.Hotspots.GetHotspots)
		api.GET("/anomalies", h.Hotspots.GetAnomalies)
		api.GET("/metrics", h.Hotspots.GetMetrics)
		api.GET("/clusters", h.Clusters.GetClusters)
		api.GET("/accidents", h.Accidents.GetAccidents)
		api.GET("/stats", h.Accidents.GetStats)
	}

	// 管理接口
	admin := r.Group("/api/admin", middleware.RequireJWT(cfg.JWTSecret))
	{
		admin.POST("/grid-cache/clear", h.Hotspots.ClearGridCache)
		admin.POST("/dataset/reload", h.Accidents.ReloadDataset)
	}

	return r
}
