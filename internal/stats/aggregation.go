package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// varianceTolerance is the relative spread below which a sample is treated
// as constant. Summing identical float64 values leaves rounding residue, so an
// exact zero test is not enough.
const varianceTolerance = 1e-12

// PopMeanStdDev returns the mean and population (biased) standard deviation
func PopMeanStdDev(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(values, nil)
}

// IsConstant reports whether the standard deviation is negligible relative to the mean
func IsConstant(mean, std float64) bool {
	return std <= varianceTolerance*math.Max(1, math.Abs(mean))
}

// Ratio returns part/whole, or 0 when whole is zero
func Ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

// Tally counts string occurrences while remembering first-seen order
type Tally struct {
	counts map[string]int
	order  []string
}

// NewTally creates an empty tally
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add counts one occurrence of value. Empty values are ignored.
func (t *Tally) Add(value string) {
	if value == "" {
		return
	}
	if _, seen := t.counts[value]; !seen {
		t.order = append(t.order, value)
	}
	t.counts[value]++
}

// Count returns how many times value was added
func (t *Tally) Count(value string) int {
	return t.counts[value]
}

// Len returns the number of distinct values
func (t *Tally) Len() int {
	return len(t.order)
}

// Mode returns the most frequent value. Ties go to the value seen first.
// Returns fallback when nothing was added.
func (t *Tally) Mode(fallback string) string {
	best, bestCount := fallback, 0
	for _, v := range t.order {
		if c := t.counts[v]; c > bestCount {
			best, bestCount = v, c
		}
	}
	return best
}
