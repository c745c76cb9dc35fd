package main

import (
	"log"

	"github.com/jengzang/accident-hotspots-go/internal/analysis/hotspot"
	"github.com/jengzang/accident-hotspots-go/internal/api"
	"github.com/jengzang/accident-hotspots-go/internal/config"
	"github.com/jengzang/accident-hotspots-go/internal/database"
	"github.com/jengzang/accident-hotspots-go/internal/handler"
	"github.com/jengzang/accident-hotspots-go/internal/loader"
	"github.com/jengzang/accident-hotspots-go/internal/repository"
	"github.com/jengzang/accident-hotspots-go/internal/service"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化数据库
	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer database.Close()

	periods, err := loader.NewPeriodClassifier(cfg.Timezone, cfg.DayStartHour, cfg.DayEndHour)
	if err != nil {
		log.Fatal("Invalid period configuration:", err)
	}

	engine := hotspot.NewEngine(hotspot.BoundingBox{}, hotspot.NewGridCache(), hotspot.Params{
		K:                 cfg.KNNK,
		Alpha:             cfg.Alpha,
		MinAnomalySamples: cfg.MinAnomalySamples,
	})

	// 加载事故数据
	repo := repository.NewAccidentRepository(database.GetDB())
	dataset := service.NewDatasetService(repo, engine, periods, cfg.DataPath)
	if err := dataset.Load(); err != nil {
		log.Fatal("Failed to load accidents:", err)
	}

	// 初始化路由
	router := api.SetupRouter(cfg, api.Handlers{
		Hotspots:  handler.NewHotspotHandler(service.NewHotspotService(dataset, engine, cfg.DefaultCellSizeM)),
		Clusters:  handler.NewClusterHandler(service.NewClusterService(dataset)),
		Accidents: handler.NewAccidentHandler(service.NewAccidentService(dataset), dataset),
	})

	// 启动服务器
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
