package service

import (
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/jengzang/accident-hotspots-go/internal/models"
)

// AccidentCollections holds the filtered accidents as one GeoJSON collection per period
type AccidentCollections struct {
	Day        *geojson.FeatureCollection `json:"day"`
	Night      *geojson.FeatureCollection `json:"night"`
	DayCount   int                        `json:"day_count"`
	NightCount int                        `json:"night_count"`
}

// AccidentService serves the raw accident points
type AccidentService struct {
	dataset *DatasetService
}

// NewAccidentService creates a new accident service
func NewAccidentService(dataset *DatasetService) *AccidentService {
	return &AccidentService{dataset: dataset}
}

// GetAccidents returns the filtered accidents split into Day and Night collections
func (s *AccidentService) GetAccidents(filter models.AccidentFilter) (*AccidentCollections, error) {
	points, err := s.dataset.Filter(filter)
	if err != nil {
		return nil, err
	}

	day, night := splitPeriods(points)
	return &AccidentCollections{
		Day:        toFeatureCollection(day),
		Night:      toFeatureCollection(night),
		DayCount:   len(day),
		NightCount: len(night),
	}, nil
}

// GetStats summarises the full dataset
func (s *AccidentService) GetStats() *models.DatasetStatistics {
	return s.dataset.Stats()
}

func toFeatureCollection(accidents []models.Accident) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range accidents {
		a := &accidents[i]
		f := geojson.NewFeature(orb.Point{a.Lon, a.Lat})
		f.Properties["id"] = a.ID
		f.Properties["period"] = string(a.Period)
		f.Properties["druh"] = a.Category
		f.Properties["pricina"] = a.Cause
		f.Properties["datetime"] = a.OccurredAt.Format(time.RFC3339)
		f.Properties["hour"] = a.OccurredAt.Hour()
		f.Properties["usmrceno"] = a.Fatalities
		f.Properties["tezce_zraneno"] = a.SeriousInjuries
		f.Properties["lehce_zraneno"] = a.MinorInjuries
		f.Properties["hmotna_skoda"] = a.Damage
		fc.Append(f)
	}
	return fc
}
