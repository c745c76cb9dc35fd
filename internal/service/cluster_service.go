package service

import (
	"log"

	"github.com/jengzang/accident-hotspots-go/internal/analysis/cluster"
	"github.com/jengzang/accident-hotspots-go/internal/models"
)

// ClusterReport holds the DBSCAN clusters of each period
type ClusterReport struct {
	Eps         float64           `json:"eps"`
	MinSamples  int               `json:"min_samples"`
	Day         []cluster.Profile `json:"day"`
	Night       []cluster.Profile `json:"night"`
	DayCount    int               `json:"day_count"`
	NightCount  int               `json:"night_count"`
	DayPoints   int               `json:"day_points"`
	NightPoints int               `json:"night_points"`
}

// ClusterService runs exploratory DBSCAN clustering per period
type ClusterService struct {
	dataset *DatasetService
}

// NewClusterService creates a new cluster service
func NewClusterService(dataset *DatasetService) *ClusterService {
	return &ClusterService{dataset: dataset}
}

// GetClusters clusters the filtered Day and Night accidents separately
func (s *ClusterService) GetClusters(filter models.ClusterFilter) (*ClusterReport, error) {
	points, err := s.dataset.Filter(filter.AccidentFilter)
	if err != nil {
		return nil, err
	}

	params := cluster.Params{EpsKm: filter.Eps, MinSamples: filter.MinSamples}.Clamp()
	day, night := splitPeriods(points)

	report := &ClusterReport{
		Eps:         params.EpsKm,
		MinSamples:  params.MinSamples,
		Day:         cluster.Run(day, params),
		Night:       cluster.Run(night, params),
		DayPoints:   len(day),
		NightPoints: len(night),
	}
	report.DayCount = len(report.Day)
	report.NightCount = len(report.Night)

	log.Printf("[ClusterService] eps=%.2fkm min_samples=%d day=%d night=%d clusters",
		params.EpsKm, params.MinSamples, report.DayCount, report.NightCount)
	return report, nil
}

func splitPeriods(points []models.Accident) (day, night []models.Accident) {
	for _, p := range points {
		if p.IsNight() {
			night = append(night, p)
		} else {
			day = append(day, p)
		}
	}
	return day, night
}
