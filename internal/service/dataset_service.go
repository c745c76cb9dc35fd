package service

import (
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/jengzang/accident-hotspots-go/internal/analysis/hotspot"
	"github.com/jengzang/accident-hotspots-go/internal/loader"
	"github.com/jengzang/accident-hotspots-go/internal/models"
	"github.com/jengzang/accident-hotspots-go/internal/repository"
	"github.com/jengzang/accident-hotspots-go/internal/spatial"
)

// DatasetService keeps the accident dataset in memory and keeps the engine's
// study area in step with it
type DatasetService struct {
	repo     *repository.AccidentRepository
	engine   *hotspot.Engine
	periods  *loader.PeriodClassifier
	dataPath string

	mu        sync.RWMutex
	accidents []models.Accident
	bounds    hotspot.BoundingBox
}

// NewDatasetService creates a new dataset service. dataPath may be empty.
func NewDatasetService(repo *repository.AccidentRepository, engine *hotspot.Engine,
	periods *loader.PeriodClassifier, dataPath string) *DatasetService {
	return &DatasetService{
		repo:     repo,
		engine:   engine,
		periods:  periods,
		dataPath: dataPath,
	}
}

// Load reads the stored accidents, importing the data file first when the
// store is empty
func (s *DatasetService) Load() error {
	count, err := s.repo.Count()
	if err != nil {
		return err
	}
	if count == 0 && s.dataPath != "" {
		if _, err := s.Import(); err != nil {
			return err
		}
	}
	return s.refresh()
}

// Import replaces the stored accidents with the contents of the data file
func (s *DatasetService) Import() (int, error) {
	if s.dataPath == "" {
		return 0, ErrNoDataSource
	}
	result, err := loader.LoadFile(s.dataPath, s.periods)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.ReplaceAll(result.Accidents)
	if err != nil {
		return 0, fmt.Errorf("failed to store accidents: %w", err)
	}
	log.Printf("[Dataset] Imported %d accidents from %s (%d skipped)", n, s.dataPath, result.Skipped)
	return n, nil
}

// Reload re-imports the data file and swaps the in-memory dataset
func (s *DatasetService) Reload() error {
	if _, err := s.Import(); err != nil {
		return err
	}
	return s.refresh()
}

func (s *DatasetService) refresh() error {
	accidents, err := s.repo.GetAll()
	if err != nil {
		return err
	}
	s.Replace(accidents)
	return nil
}

// Replace swaps the in-memory dataset and moves the study area to its extent
func (s *DatasetService) Replace(accidents []models.Accident) {
	bounds := extent(accidents)

	s.mu.Lock()
	s.accidents = accidents
	s.bounds = bounds
	s.mu.Unlock()

	s.engine.SetBoundingBox(bounds)
	log.Printf("[Dataset] %d accidents in memory, extent %+v", len(accidents), bounds)
}

// Accidents returns the full dataset. The slice must not be modified.
func (s *DatasetService) Accidents() []models.Accident {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accidents
}

// Bounds returns the extent of the full dataset
func (s *DatasetService) Bounds() hotspot.BoundingBox {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bounds
}

// Filter returns the accidents matching f
func (s *DatasetService) Filter(f models.AccidentFilter) ([]models.Accident, error) {
	if err := ValidateFilter(f); err != nil {
		return nil, err
	}
	return FilterAccidents(s.Accidents(), f), nil
}

// Stats summarises the full dataset
func (s *DatasetService) Stats() *models.DatasetStatistics {
	accidents := s.Accidents()
	st := &models.DatasetStatistics{Total: len(accidents), Types: []models.TypeCount{}}

	points := make([]spatial.Point, len(accidents))
	types := make(map[string]int)
	for i := range accidents {
		a := &accidents[i]
		points[i] = spatial.Point{Lat: a.Lat, Lon: a.Lon}
		if a.IsNight() {
			st.Night++
		} else {
			st.Day++
		}
		if a.Damage > st.MaxDamage {
			st.MaxDamage = a.Damage
		}
		st.TotalFatalities += a.Fatalities
		st.TotalSerious += a.SeriousInjuries
		st.TotalMinor += a.MinorInjuries
		if a.Category != "" {
			types[a.Category]++
		}
	}

	center := spatial.Centroid(points)
	st.CenterLat, st.CenterLon = center.Lat, center.Lon

	for name, count := range types {
		st.Types = append(st.Types, models.TypeCount{Name: name, Count: count})
	}
	sort.Slice(st.Types, func(i, j int) bool {
		if st.Types[i].Count != st.Types[j].Count {
			return st.Types[i].Count > st.Types[j].Count
		}
		return st.Types[i].Name < st.Types[j].Name
	})
	return st
}

func extent(accidents []models.Accident) hotspot.BoundingBox {
	points := make([]spatial.Point, len(accidents))
	for i := range accidents {
		points[i] = spatial.Point{Lat: accidents[i].Lat, Lon: accidents[i].Lon}
	}
	minLat, minLon, maxLat, maxLon := spatial.BoundingBox(points)
	return hotspot.BoundingBox{MinLat: minLat, MinLon: minLon, MaxLat: maxLat, MaxLon: maxLon}
}
