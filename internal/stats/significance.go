package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// TwoTailedPValue converts a standard normal z-score into a two-tailed p-value,
// p = 2 * Phi(-|z|)
func TwoTailedPValue(z float64) float64 {
	if math.IsNaN(z) {
		return 1
	}
	// CDF is built on Erfc and keeps precision far into the lower tail
	p := 2 * distuv.UnitNormal.CDF(-math.Abs(z))
	if p > 1 {
		return 1
	}
	return p
}

// IsSignificant reports whether p is below the significance level alpha
func IsSignificant(p, alpha float64) bool {
	return p < alpha
}
