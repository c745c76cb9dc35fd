package hotspot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jengzang/accident-hotspots-go/internal/models"
	"github.com/jengzang/accident-hotspots-go/internal/spatial"
)

const (
	baseLat = 50.76
	baseLon = 15.05
)

// studyArea returns a box of roughly heightM x widthM meters near Liberec
func studyArea(heightM, widthM float64) BoundingBox {
	return BoundingBox{
		MinLat: baseLat,
		MinLon: baseLon,
		MaxLat: baseLat + heightM/spatial.MetersPerDegreeLat(),
		MaxLon: baseLon + widthM/spatial.MetersPerDegreeLon(baseLat),
	}
}

func mustGrid(t *testing.T, bbox BoundingBox, cellSizeM float64) *Grid {
	t.Helper()
	g, err := BuildGrid(bbox, cellSizeM)
	require.NoError(t, err)
	return g
}

// accidentsAt places n accidents at the centroid of cell (row, col)
func accidentsAt(g *Grid, row, col, n int, period models.Period) []models.Accident {
	lat, lon := g.Centroid(g.CellID(row, col))
	out := make([]models.Accident, n)
	for i := range out {
		out[i] = models.Accident{Lat: lat, Lon: lon, Period: period}
	}
	return out
}

// mixedAt places day and night accidents at the centroid of cell (row, col)
func mixedAt(g *Grid, row, col, day, night int) []models.Accident {
	out := accidentsAt(g, row, col, day, models.PeriodDay)
	return append(out, accidentsAt(g, row, col, night, models.PeriodNight)...)
}
