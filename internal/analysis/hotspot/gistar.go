package hotspot

import (
	"math"
	"sort"

	"github.com/jengzang/accident-hotspots-go/internal/stats"
)

// DefaultAlpha is the significance level for hotspot and anomaly detection
const DefaultAlpha = 0.05

// spreadTolerance is the relative weight spread below which a neighborhood
// is treated as covering every eligible cell
const spreadTolerance = 1e-12

// InclusionPredicate decides whether a cell takes part in the statistic
type InclusionPredicate func(cellID int, value float64) bool

// AllCells admits every populated cell
func AllCells(int, float64) bool { return true }

// PositiveOnly admits cells whose metric value is strictly positive
func PositiveOnly(_ int, value float64) bool { return value > 0 }

// MinSamples admits cells holding at least min accidents
func MinSamples(cells map[int]*CellAggregate, min int) InclusionPredicate {
	return func(id int, _ float64) bool {
		c, ok := cells[id]
		return ok && c.DayCount+c.NightCount >= min
	}
}

// GiResult is the Gi* outcome for one cell
type GiResult struct {
	CellID      int     `json:"cell_id"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Value       float64 `json:"value"`
	ZScore      float64 `json:"z_score"`
	PValue      float64 `json:"p_value"`
	Significant bool    `json:"significant"`
}

// IsHotspot reports a significant positive cluster
func (r GiResult) IsHotspot() bool { return r.Significant && r.ZScore > 0 }

// IsColdspot reports a significant negative cluster
func (r GiResult) IsColdspot() bool { return r.Significant && r.ZScore < 0 }

// GiStarResult is the Gi* outcome over all eligible cells.
// Cells is empty when Status is not StatusOK. A cell whose neighborhood has
// no spread, because it covers every eligible cell, gets no result; when that
// holds for all cells the status is StatusDegenerateWeights.
type GiStarResult struct {
	Status   string
	Eligible int
	Mean     float64
	StdDev   float64
	Alpha    float64
	Cells    map[int]GiResult
}

// Hotspots returns the significant positive cells, highest z first
func (r *GiStarResult) Hotspots() []GiResult {
	return r.filter(GiResult.IsHotspot)
}

// Coldspots returns the significant negative cells, lowest z first
func (r *GiStarResult) Coldspots() []GiResult {
	cold := r.filter(GiResult.IsColdspot)
	sort.SliceStable(cold, func(i, j int) bool { return cold[i].ZScore < cold[j].ZScore })
	return cold
}

func (r *GiStarResult) filter(keep func(GiResult) bool) []GiResult {
	var out []GiResult
	for _, c := range r.Cells {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ZScore != out[j].ZScore {
			return out[i].ZScore > out[j].ZScore
		}
		return out[i].CellID < out[j].CellID
	})
	return out
}

// GiStar computes the Getis-Ord Gi* z-score and analytical two-tailed p-value
// for every eligible cell. Each cell's neighborhood is itself plus its eligible
// neighbors from weights, all weighted equally. Mean and standard deviation are
// taken over all eligible cells.
func GiStar(values map[int]float64, weights *SpatialWeights, include InclusionPredicate, alpha float64) *GiStarResult {
	if include == nil {
		include = AllCells
	}
	if alpha <= 0 {
		alpha = DefaultAlpha
	}

	eligible := make(map[int]float64, len(values))
	ids := make([]int, 0, len(values))
	for id, v := range values {
		if include(id, v) {
			eligible[id] = v
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	result := &GiStarResult{
		Status:   StatusOK,
		Eligible: len(ids),
		Alpha:    alpha,
		Cells:    make(map[int]GiResult),
	}

	if len(ids) < 2 {
		result.Status = StatusInsufficientSamples
		return result
	}

	xs := make([]float64, len(ids))
	for i, id := range ids {
		xs[i] = eligible[id]
	}
	mean, std := stats.PopMeanStdDev(xs)
	result.Mean, result.StdDev = mean, std
	if stats.IsConstant(mean, std) {
		result.Status = StatusNoVariance
		return result
	}

	n := float64(len(ids))
	for _, id := range ids {
		selfWeight := 1.0
		var row []Neighbor
		if weights != nil {
			row = weights.Row(id)
		}
		if len(row) > 0 {
			selfWeight = row[0].Weight
		}

		sumW := selfWeight
		sumW2 := selfWeight * selfWeight
		sumWX := selfWeight * eligible[id]
		for _, nb := range row {
			x, ok := eligible[nb.ID]
			if !ok {
				continue
			}
			sumW += nb.Weight
			sumW2 += nb.Weight * nb.Weight
			sumWX += nb.Weight * x
		}

		spread := (n*sumW2 - sumW*sumW) / (n - 1)
		if spread <= spreadTolerance*sumW*sumW {
			continue
		}

		z := (sumWX - mean*sumW) / (std * math.Sqrt(spread))
		p := stats.TwoTailedPValue(z)
		result.Cells[id] = GiResult{
			CellID:      id,
			Value:       eligible[id],
			ZScore:      z,
			PValue:      p,
			Significant: stats.IsSignificant(p, alpha),
		}
	}

	if len(result.Cells) == 0 {
		result.Status = StatusDegenerateWeights
	}
	return result
}
