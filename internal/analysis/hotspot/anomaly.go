package hotspot

import (
	"log"
	"math"
	"sort"

	"github.com/jengzang/accident-hotspots-go/internal/models"
	"github.com/jengzang/accident-hotspots-go/internal/stats"
)

// DefaultMinAnomalySamples is the minimum number of accidents a cell needs
// before its night ratio is tested
const DefaultMinAnomalySamples = 5

// Anomaly classifications
const (
	NightAnomaly = "night_anomaly"
	DayAnomaly   = "day_anomaly"
)

// AnomalyResult is a cell whose day/night composition clusters significantly
type AnomalyResult struct {
	CellID         int     `json:"cell_id"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	DayCount       int     `json:"day_count"`
	NightCount     int     `json:"night_count"`
	ObservedRatio  float64 `json:"observed_ratio"`
	ExpectedRatio  float64 `json:"expected_ratio"`
	ZScore         float64 `json:"z_score"`
	PValue         float64 `json:"p_value"`
	Classification string  `json:"classification"`
}

// AnomalyReport is the outcome of the night ratio test
type AnomalyReport struct {
	CellSizeM     float64         `json:"cell_size_m"`
	Alpha         float64         `json:"alpha"`
	Anomalies     []AnomalyResult `json:"anomalies"`
	DayCount      int             `json:"day_count"`
	NightCount    int             `json:"night_count"`
	ExpectedRatio float64         `json:"expected_ratio"`
	EligibleCells int             `json:"eligible_cells"`
	Status        string          `json:"status"`
}

// DetectAnomalies tests the night ratio of each sufficiently populated cell
// with Gi* over a single grid of all points. The area-wide ratio is reported
// for context only; the statistic standardizes against the eligible cells.
func (e *Engine) DetectAnomalies(points []models.Accident, cellSizeM float64) (*AnomalyReport, error) {
	grid, err := e.Grid(cellSizeM)
	if err != nil {
		return nil, err
	}

	agg := Aggregate(points, grid)

	var dayTotal, nightTotal int
	for _, cell := range agg.Cells {
		dayTotal += cell.DayCount
		nightTotal += cell.NightCount
	}
	expected := stats.Ratio(nightTotal, dayTotal+nightTotal)

	include := MinSamples(agg.Cells, e.params.MinAnomalySamples)
	values := agg.Values((*CellAggregate).NightRatio)
	eligible := eligibleIDs(agg, values, include)
	weights := BuildWeights(agg.Centroids(eligible), e.params.K)
	gi := GiStar(values, weights, include, e.params.Alpha)

	report := &AnomalyReport{
		CellSizeM:     cellSizeM,
		Alpha:         e.params.Alpha,
		Anomalies:     []AnomalyResult{},
		DayCount:      dayTotal,
		NightCount:    nightTotal,
		ExpectedRatio: expected,
		EligibleCells: gi.Eligible,
		Status:        gi.Status,
	}

	for _, r := range gi.Cells {
		if !r.Significant || r.ZScore == 0 {
			continue
		}
		class := NightAnomaly
		if r.ZScore < 0 {
			class = DayAnomaly
		}
		cell := agg.Cells[r.CellID]
		lat, lon := grid.Centroid(r.CellID)
		report.Anomalies = append(report.Anomalies, AnomalyResult{
			CellID:         r.CellID,
			Lat:            lat,
			Lon:            lon,
			DayCount:       cell.DayCount,
			NightCount:     cell.NightCount,
			ObservedRatio:  r.Value,
			ExpectedRatio:  expected,
			ZScore:         r.ZScore,
			PValue:         r.PValue,
			Classification: class,
		})
	}

	sort.Slice(report.Anomalies, func(i, j int) bool {
		a, b := report.Anomalies[i], report.Anomalies[j]
		if math.Abs(a.ZScore) != math.Abs(b.ZScore) {
			return math.Abs(a.ZScore) > math.Abs(b.ZScore)
		}
		return a.CellID < b.CellID
	})

	log.Printf("[AnomalyDetector] cell_size=%.0fm eligible=%d anomalies=%d expected_night_ratio=%.3f",
		cellSizeM, gi.Eligible, len(report.Anomalies), expected)
	return report, nil
}
