package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPopMeanStdDev(t *testing.T) {
	t.Parallel()

	mean, std := PopMeanStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	assert.InDelta(t, 5, mean, 1e-12)
	assert.InDelta(t, 2, std, 1e-12)

	mean, std = PopMeanStdDev(nil)
	assert.Zero(t, mean)
	assert.Zero(t, std)
}

func TestIsConstant(t *testing.T) {
	t.Parallel()

	values := make([]float64, 49)
	for i := range values {
		values[i] = 0.35
	}
	mean, std := PopMeanStdDev(values)
	assert.True(t, IsConstant(mean, std))

	values[0] = 0.36
	mean, std = PopMeanStdDev(values)
	assert.False(t, IsConstant(mean, std))

	assert.True(t, IsConstant(1e9, 1e-5))
}

func TestTwoTailedPValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		z    float64
		want float64
	}{
		{0, 1},
		{1.959964, 0.05},
		{-1.959964, 0.05},
		{2.575829, 0.01},
		{3.290527, 0.001},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, TwoTailedPValue(tt.z), 1e-6, "z=%v", tt.z)
	}

	assert.Equal(t, 1.0, TwoTailedPValue(math.NaN()))
	assert.Zero(t, TwoTailedPValue(math.Inf(1)))
	assert.Greater(t, TwoTailedPValue(9), 0.0)
	assert.InEpsilon(t, 2.2571e-19, TwoTailedPValue(-9), 1e-3)
	assert.Greater(t, TwoTailedPValue(30), 0.0)
}

func TestIsSignificant(t *testing.T) {
	t.Parallel()
	assert.True(t, IsSignificant(0.049, 0.05))
	assert.False(t, IsSignificant(0.05, 0.05))
}

func TestRatio(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0.25, Ratio(1, 4))
	assert.Zero(t, Ratio(3, 0))
}

func TestTally(t *testing.T) {
	t.Parallel()

	tally := NewTally()
	assert.Equal(t, "Unknown", tally.Mode("Unknown"))

	for _, v := range []string{"b", "", "a", "a", "b", "c"} {
		tally.Add(v)
	}
	assert.Equal(t, 3, tally.Len())
	assert.Equal(t, 2, tally.Count("a"))
	assert.Zero(t, tally.Count(""))
	assert.Equal(t, "b", tally.Mode("Unknown"))

	tally.Add("a")
	assert.Equal(t, "a", tally.Mode("Unknown"))
}
