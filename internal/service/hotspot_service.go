package service

import (
	"fmt"

	"github.com/jengzang/accident-hotspots-go/internal/analysis/hotspot"
	"github.com/jengzang/accident-hotspots-go/internal/models"
)

// HotspotService runs hotspot and anomaly detection over the filtered dataset
type HotspotService struct {
	dataset         *DatasetService
	engine          *hotspot.Engine
	defaultCellSize float64
}

// NewHotspotService creates a new hotspot service
func NewHotspotService(dataset *DatasetService, engine *hotspot.Engine, defaultCellSize float64) *HotspotService {
	return &HotspotService{
		dataset:         dataset,
		engine:          engine,
		defaultCellSize: defaultCellSize,
	}
}

// GetHotspots finds Day and Night hotspots for the requested metric
func (s *HotspotService) GetHotspots(filter models.HotspotFilter) (*hotspot.HotspotReport, error) {
	points, err := s.dataset.Filter(filter.AccidentFilter)
	if err != nil {
		return nil, err
	}
	if filter.Metric == "" {
		filter.Metric = hotspot.MetricCount
	}

	report, err := s.engine.DetectHotspots(points, s.cellSize(filter.CellSize), filter.Metric)
	if err != nil {
		return nil, fmt.Errorf("failed to detect hotspots: %w", err)
	}
	return report, nil
}

// GetAnomalies finds cells whose night share clusters significantly
func (s *HotspotService) GetAnomalies(filter models.AnomalyFilter) (*hotspot.AnomalyReport, error) {
	points, err := s.dataset.Filter(filter.AccidentFilter)
	if err != nil {
		return nil, err
	}

	report, err := s.engine.DetectAnomalies(points, s.cellSize(filter.CellSize))
	if err != nil {
		return nil, fmt.Errorf("failed to detect anomalies: %w", err)
	}
	return report, nil
}

// Metrics lists the registered hotspot metrics
func (s *HotspotService) Metrics() []string {
	return hotspot.MetricNames()
}

// ClearGridCache drops every cached grid and returns how many were dropped
func (s *HotspotService) ClearGridCache() int {
	n := s.engine.CachedGrids()
	s.engine.ClearCache()
	return n
}

func (s *HotspotService) cellSize(requested float64) float64 {
	if requested == 0 {
		return s.defaultCellSize
	}
	return requested
}
