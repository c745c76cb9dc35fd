package hotspot

import (
	"sort"

	"github.com/jengzang/accident-hotspots-go/internal/models"
	"github.com/jengzang/accident-hotspots-go/internal/stats"
)

// UnknownCategory is reported when no accident in a cell carries a category
const UnknownCategory = models.UnknownLabel

// CellAggregate accumulates the accidents falling into one grid cell
type CellAggregate struct {
	CellID        int
	Count         int
	Fatalities    int
	Serious       int
	Minor         int
	Damage        int64
	SeverityScore int
	DayCount      int
	NightCount    int

	categories *stats.Tally
	causes     *stats.Tally
}

func newCellAggregate(id int) *CellAggregate {
	return &CellAggregate{
		CellID:     id,
		categories: stats.NewTally(),
		causes:     stats.NewTally(),
	}
}

func (c *CellAggregate) add(a *models.Accident) {
	c.Count++
	c.Fatalities += a.Fatalities
	c.Serious += a.SeriousInjuries
	c.Minor += a.MinorInjuries
	c.Damage += a.Damage
	c.SeverityScore += a.SeverityScore()
	if a.IsNight() {
		c.NightCount++
	} else {
		c.DayCount++
	}
	c.categories.Add(a.Category)
	c.causes.Add(a.Cause)
}

// NightRatio returns the share of night accidents in the cell
func (c *CellAggregate) NightRatio() float64 {
	return stats.Ratio(c.NightCount, c.DayCount+c.NightCount)
}

// DominantCategory returns the most frequent accident type in the cell.
// Ties go to the type encountered first in input order.
func (c *CellAggregate) DominantCategory() string {
	return c.categories.Mode(UnknownCategory)
}

// DominantCause returns the most frequent cause in the cell, ties as DominantCategory
func (c *CellAggregate) DominantCause() string {
	return c.causes.Mode(UnknownCategory)
}

// Aggregation is the result of binning one point set into a grid
type Aggregation struct {
	Grid       *Grid
	Cells      map[int]*CellAggregate
	Considered int // points inside the grid bounding box
	Dropped    int // points outside the bounding box
}

// Aggregate bins points into grid cells by direct index arithmetic.
// Points outside the grid bounding box are dropped and counted.
func Aggregate(points []models.Accident, grid *Grid) *Aggregation {
	agg := &Aggregation{
		Grid:  grid,
		Cells: make(map[int]*CellAggregate),
	}

	for i := range points {
		p := &points[i]
		id, ok := grid.CellIndex(p.Lat, p.Lon)
		if !ok {
			agg.Dropped++
			continue
		}

		cell, exists := agg.Cells[id]
		if !exists {
			cell = newCellAggregate(id)
			agg.Cells[id] = cell
		}
		cell.add(p)
		agg.Considered++
	}

	return agg
}

// CellIDs returns the populated cell ids in ascending order
func (a *Aggregation) CellIDs() []int {
	ids := make([]int, 0, len(a.Cells))
	for id := range a.Cells {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Centroids returns the centroids of the given cells, in the given order
func (a *Aggregation) Centroids(ids []int) []CellCentroid {
	centroids := make([]CellCentroid, len(ids))
	for i, id := range ids {
		lat, lon := a.Grid.Centroid(id)
		centroids[i] = CellCentroid{ID: id, Lat: lat, Lon: lon}
	}
	return centroids
}

// Values extracts one scalar per populated cell
func (a *Aggregation) Values(value func(*CellAggregate) float64) map[int]float64 {
	values := make(map[int]float64, len(a.Cells))
	for id, cell := range a.Cells {
		values[id] = value(cell)
	}
	return values
}
