package hotspot

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/jengzang/accident-hotspots-go/internal/spatial"
)

// MaxGridCells bounds Rows*Cols so cell ids stay within 32 bits
const MaxGridCells = math.MaxInt32

// BoundingBox is the study-area extent in degrees
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether the coordinate lies inside the box, edges included
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

func (b BoundingBox) valid() bool {
	for _, v := range []float64{b.MinLat, b.MinLon, b.MaxLat, b.MaxLon} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.MaxLat > b.MinLat && b.MaxLon > b.MinLon
}

// Grid is an immutable rectangular aggregation grid anchored at (MinLat, MinLon).
// Cell ids are row*Cols + col.
type Grid struct {
	Bounds        BoundingBox `json:"bounds"`
	CellSizeM     float64     `json:"cell_size_m"`
	Rows          int         `json:"rows"`
	Cols          int         `json:"cols"`
	CellHeightDeg float64     `json:"cell_height_deg"`
	CellWidthDeg  float64     `json:"cell_width_deg"`
}

// BuildGrid creates the grid covering bbox with square cells of cellSizeM meters.
// Row and column counts are the box extent divided by the cell size, rounded up.
func BuildGrid(bbox BoundingBox, cellSizeM float64) (*Grid, error) {
	if math.IsNaN(cellSizeM) || math.IsInf(cellSizeM, 0) || cellSizeM <= 0 {
		return nil, fmt.Errorf("%w: cell size %v", ErrInvalidGridParameters, cellSizeM)
	}
	if !bbox.valid() {
		return nil, fmt.Errorf("%w: degenerate bounding box %+v", ErrInvalidGridParameters, bbox)
	}

	heightM, widthM := spatial.BoundingBoxSize(bbox.MinLat, bbox.MinLon, bbox.MaxLat, bbox.MaxLon)
	if heightM <= 0 || widthM <= 0 {
		return nil, fmt.Errorf("%w: bounding box has no extent", ErrInvalidGridParameters)
	}

	rowsF := math.Ceil(heightM / cellSizeM)
	colsF := math.Ceil(widthM / cellSizeM)
	if rowsF*colsF > MaxGridCells {
		return nil, fmt.Errorf("%w: cell size %vm gives %.0f x %.0f cells", ErrInvalidGridParameters, cellSizeM, rowsF, colsF)
	}
	rows, cols := int(rowsF), int(colsF)

	latSpan := bbox.MaxLat - bbox.MinLat
	lonSpan := bbox.MaxLon - bbox.MinLon

	return &Grid{
		Bounds:        bbox,
		CellSizeM:     cellSizeM,
		Rows:          rows,
		Cols:          cols,
		CellHeightDeg: latSpan * cellSizeM / heightM,
		CellWidthDeg:  lonSpan * cellSizeM / widthM,
	}, nil
}

// NumCells returns the total number of cells in the grid
func (g *Grid) NumCells() int {
	return g.Rows * g.Cols
}

// CellID maps a row/column pair to its cell id
func (g *Grid) CellID(row, col int) int {
	return row*g.Cols + col
}

// RowCol maps a cell id back to its row/column pair
func (g *Grid) RowCol(id int) (row, col int) {
	return id / g.Cols, id % g.Cols
}

// CellIndex returns the cell id containing the coordinate.
// Points on the far edge of the box fall into the last row/column;
// points outside the box report ok=false.
func (g *Grid) CellIndex(lat, lon float64) (id int, ok bool) {
	if !g.Bounds.Contains(lat, lon) {
		return 0, false
	}

	row := int(math.Floor((lat - g.Bounds.MinLat) / g.CellHeightDeg))
	col := int(math.Floor((lon - g.Bounds.MinLon) / g.CellWidthDeg))

	if row >= g.Rows {
		row = g.Rows - 1
	}
	if col >= g.Cols {
		col = g.Cols - 1
	}
	return g.CellID(row, col), true
}

// Centroid returns the midpoint of a cell in degrees
func (g *Grid) Centroid(id int) (lat, lon float64) {
	row, col := g.RowCol(id)
	lat = g.Bounds.MinLat + (float64(row)+0.5)*g.CellHeightDeg
	lon = g.Bounds.MinLon + (float64(col)+0.5)*g.CellWidthDeg
	return lat, lon
}

// GridCache memoizes grids by cell size for a single study area.
// Clear it whenever the study-area bounding box changes.
type GridCache struct {
	mu    sync.RWMutex
	grids map[float64]*Grid
}

// NewGridCache creates an empty grid cache
func NewGridCache() *GridCache {
	return &GridCache{grids: make(map[float64]*Grid)}
}

// Grid returns the cached grid for cellSizeM, building it on first use.
// Concurrent first requests may build the same grid twice; construction is
// deterministic so either copy is correct.
func (c *GridCache) Grid(bbox BoundingBox, cellSizeM float64) (*Grid, error) {
	c.mu.RLock()
	g, ok := c.grids[cellSizeM]
	c.mu.RUnlock()
	if ok {
		return g, nil
	}

	g, err := BuildGrid(bbox, cellSizeM)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.grids[cellSizeM] = g
	c.mu.Unlock()

	log.Printf("[GridCache] Built grid: cell_size=%.0fm rows=%d cols=%d cells=%d", cellSizeM, g.Rows, g.Cols, g.NumCells())
	return g, nil
}

// Clear drops every cached grid
func (c *GridCache) Clear() {
	c.mu.Lock()
	c.grids = make(map[float64]*Grid)
	c.mu.Unlock()
}

// Len returns the number of cached grids
func (c *GridCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.grids)
}
