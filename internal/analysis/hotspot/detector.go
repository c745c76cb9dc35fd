package hotspot

import (
	"log"
	"sort"
	"sync"

	"github.com/jengzang/accident-hotspots-go/internal/models"
)

// Params holds the tunable parameters of the engine
type Params struct {
	K                 int     // nearest neighbors per cell
	Alpha             float64 // significance level
	MinAnomalySamples int     // minimum accidents per cell for the night ratio test
}

// DefaultParams returns the production defaults
func DefaultParams() Params {
	return Params{
		K:                 DefaultK,
		Alpha:             DefaultAlpha,
		MinAnomalySamples: DefaultMinAnomalySamples,
	}
}

// Engine runs hotspot and anomaly detection over one study area.
// It is safe for concurrent use; the grid cache is its only shared state.
type Engine struct {
	params Params
	cache  *GridCache

	mu   sync.RWMutex
	bbox BoundingBox
}

// NewEngine creates an engine for the study area bbox.
// A nil cache gets a fresh one.
func NewEngine(bbox BoundingBox, cache *GridCache, params Params) *Engine {
	if cache == nil {
		cache = NewGridCache()
	}
	defaults := DefaultParams()
	if params.K < 1 {
		params.K = defaults.K
	}
	if params.Alpha <= 0 || params.Alpha >= 1 {
		params.Alpha = defaults.Alpha
	}
	if params.MinAnomalySamples < 1 {
		params.MinAnomalySamples = defaults.MinAnomalySamples
	}
	return &Engine{params: params, cache: cache, bbox: bbox}
}

// Params returns the engine parameters
func (e *Engine) Params() Params {
	return e.params
}

// BoundingBox returns the current study-area extent
func (e *Engine) BoundingBox() BoundingBox {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.bbox
}

// SetBoundingBox changes the study area and clears the grid cache
func (e *Engine) SetBoundingBox(bbox BoundingBox) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if bbox != e.bbox {
		e.bbox = bbox
		e.cache.Clear()
		log.Printf("[Engine] Study area changed, grid cache cleared: %+v", bbox)
	}
}

// ClearCache drops all cached grids
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// CachedGrids returns the number of cached grids
func (e *Engine) CachedGrids() int {
	return e.cache.Len()
}

// Grid returns the (cached) grid for a cell size over the current study area
func (e *Engine) Grid(cellSizeM float64) (*Grid, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cache.Grid(e.bbox, cellSizeM)
}

// Hotspot is a significant hot or cold cell with its accident breakdown
type Hotspot struct {
	GiResult
	Count            int    `json:"count"`
	Fatalities       int    `json:"fatalities"`
	Serious          int    `json:"serious"`
	Minor            int    `json:"minor"`
	Damage           int64  `json:"damage"`
	SeverityScore    int    `json:"severity_score"`
	DominantCategory string `json:"dominant_category"`
	DominantCause    string `json:"dominant_cause"`
}

// PeriodHotspots is the hotspot outcome for one period
type PeriodHotspots struct {
	Hotspots       []Hotspot `json:"hotspots"`
	Coldspots      []Hotspot `json:"coldspots"`
	Status         string    `json:"status"`
	Points         int       `json:"points"`
	Considered     int       `json:"considered"`
	PopulatedCells int       `json:"populated_cells"`
	EligibleCells  int       `json:"eligible_cells"`
}

// HotspotReport holds the independent Day and Night hotspot passes
type HotspotReport struct {
	Metric    string         `json:"metric"`
	CellSizeM float64        `json:"cell_size_m"`
	Alpha     float64        `json:"alpha"`
	Grid      *Grid          `json:"grid"`
	Day       PeriodHotspots `json:"day"`
	Night     PeriodHotspots `json:"night"`
}

// DetectHotspots finds significant hotspots of metric separately for the Day
// and Night subsets of points
func (e *Engine) DetectHotspots(points []models.Accident, cellSizeM float64, metric string) (*HotspotReport, error) {
	m, err := LookupMetric(metric)
	if err != nil {
		return nil, err
	}
	grid, err := e.Grid(cellSizeM)
	if err != nil {
		return nil, err
	}

	var day, night []models.Accident
	for _, p := range points {
		if p.IsNight() {
			night = append(night, p)
		} else {
			day = append(day, p)
		}
	}

	report := &HotspotReport{
		Metric:    m.Name,
		CellSizeM: cellSizeM,
		Alpha:     e.params.Alpha,
		Grid:      grid,
		Day:       e.detectPeriod(day, grid, m),
		Night:     e.detectPeriod(night, grid, m),
	}

	log.Printf("[HotspotDetector] metric=%s cell_size=%.0fm day=%d/%d night=%d/%d hotspots/points",
		m.Name, cellSizeM, len(report.Day.Hotspots), len(day), len(report.Night.Hotspots), len(night))
	return report, nil
}

func (e *Engine) detectPeriod(points []models.Accident, grid *Grid, m Metric) PeriodHotspots {
	agg := Aggregate(points, grid)
	values := agg.Values(m.Value)

	eligible := eligibleIDs(agg, values, m.Include)
	weights := BuildWeights(agg.Centroids(eligible), e.params.K)
	gi := GiStar(values, weights, m.Include, e.params.Alpha)

	out := PeriodHotspots{
		Hotspots:       []Hotspot{},
		Coldspots:      []Hotspot{},
		Status:         gi.Status,
		Points:         len(points),
		Considered:     agg.Considered,
		PopulatedCells: len(agg.Cells),
		EligibleCells:  gi.Eligible,
	}

	for _, r := range gi.Hotspots() {
		out.Hotspots = append(out.Hotspots, newHotspot(r, agg))
	}
	for _, r := range gi.Coldspots() {
		out.Coldspots = append(out.Coldspots, newHotspot(r, agg))
	}

	if m.RankByValue {
		sort.SliceStable(out.Hotspots, func(i, j int) bool {
			a, b := out.Hotspots[i], out.Hotspots[j]
			if a.Value != b.Value {
				return a.Value > b.Value
			}
			return a.CellID < b.CellID
		})
	}
	return out
}

func newHotspot(r GiResult, agg *Aggregation) Hotspot {
	cell := agg.Cells[r.CellID]
	r.Lat, r.Lon = agg.Grid.Centroid(r.CellID)
	return Hotspot{
		GiResult:         r,
		Count:            cell.Count,
		Fatalities:       cell.Fatalities,
		Serious:          cell.Serious,
		Minor:            cell.Minor,
		Damage:           cell.Damage,
		SeverityScore:    cell.SeverityScore,
		DominantCategory: cell.DominantCategory(),
		DominantCause:    cell.DominantCause(),
	}
}

func eligibleIDs(agg *Aggregation, values map[int]float64, include InclusionPredicate) []int {
	ids := make([]int, 0, len(values))
	for _, id := range agg.CellIDs() {
		if include(id, values[id]) {
			ids = append(ids, id)
		}
	}
	return ids
}
