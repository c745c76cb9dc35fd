package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	t.Parallel()

	assert.Zero(t, HaversineDistance(50.77, 15.05, 50.77, 15.05))
	assert.InDelta(t, MetersPerDegreeLat(), HaversineDistance(50, 15, 51, 15), 1e-6)
	assert.InDelta(t, 111194.93, MetersPerDegreeLat(), 0.01)

	// Liberec to Prague, roughly 88 km
	d := HaversineDistance(50.7663, 15.0543, 50.0755, 14.4378)
	assert.InDelta(t, 88000, d, 1500)
}

func TestMetersPerDegreeLon(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, MetersPerDegreeLat(), MetersPerDegreeLon(0), 1e-9)
	assert.InDelta(t, MetersPerDegreeLat()/2, MetersPerDegreeLon(60), 1e-6)
	assert.InDelta(t, 0, MetersPerDegreeLon(90), 1e-9)
}

func TestProject(t *testing.T) {
	t.Parallel()

	x1, y1 := Project(50.76, 15.05, 50.76)
	x2, y2 := Project(50.76+300/MetersPerDegreeLat(), 15.05, 50.76)
	assert.InDelta(t, 0, x2-x1, 1e-9)
	assert.InDelta(t, 300, y2-y1, 1e-6)

	x3, _ := Project(50.76, 15.05+300/MetersPerDegreeLon(50.76), 50.76)
	assert.InDelta(t, 300, x3-x1, 1e-6)
}

func TestBoundingBoxSize(t *testing.T) {
	t.Parallel()

	height, width := BoundingBoxSize(50.7, 15.0, 50.8, 15.2)
	assert.InDelta(t, 0.1*MetersPerDegreeLat(), height, 1e-3)
	assert.InDelta(t, 0.2*MetersPerDegreeLon(50.75), width, 0.5)
}

func TestBoundingBoxAndCentroid(t *testing.T) {
	t.Parallel()

	points := []Point{{50.7, 15.1}, {50.9, 15.0}, {50.8, 15.3}}
	minLat, minLon, maxLat, maxLon := BoundingBox(points)
	assert.Equal(t, 50.7, minLat)
	assert.Equal(t, 15.0, minLon)
	assert.Equal(t, 50.9, maxLat)
	assert.Equal(t, 15.3, maxLon)

	c := Centroid(points)
	assert.InDelta(t, 50.8, c.Lat, 1e-12)
	assert.InDelta(t, 15.133333, c.Lon, 1e-6)

	assert.Equal(t, Point{}, Centroid(nil))
}
