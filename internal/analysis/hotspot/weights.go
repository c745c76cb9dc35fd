package hotspot

import (
	"sort"

	"github.com/jengzang/accident-hotspots-go/internal/spatial"
)

// DefaultK is the number of nearest neighbors used for spatial weights
const DefaultK = 5

// CellCentroid is the centroid of a populated grid cell
type CellCentroid struct {
	ID  int
	Lat float64
	Lon float64
}

// Neighbor is one weighted entry of a spatial weights row
type Neighbor struct {
	ID     int     `json:"id"`
	Weight float64 `json:"weight"`
}

// SpatialWeights holds row-standardized k-nearest-neighbor weights.
// Rows are not symmetric: j being a neighbor of i does not imply the reverse.
type SpatialWeights struct {
	K         int
	Neighbors map[int][]Neighbor
}

// Row returns the neighbors of a cell ordered by distance
func (w *SpatialWeights) Row(id int) []Neighbor {
	return w.Neighbors[id]
}

type projectedCell struct {
	id   int
	x, y float64
}

type candidate struct {
	id    int
	dist2 float64
}

// BuildWeights computes k-nearest-neighbor weights between the given cells.
// Distances are Euclidean on equirectangular-projected centroids; ties go to
// the lower cell id. Cells with fewer than k others use all of them.
func BuildWeights(centroids []CellCentroid, k int) *SpatialWeights {
	if k < 1 {
		k = DefaultK
	}

	w := &SpatialWeights{
		K:         k,
		Neighbors: make(map[int][]Neighbor, len(centroids)),
	}
	if len(centroids) == 0 {
		return w
	}

	var refLat float64
	for _, c := range centroids {
		refLat += c.Lat
	}
	refLat /= float64(len(centroids))

	cells := make([]projectedCell, len(centroids))
	for i, c := range centroids {
		x, y := spatial.Project(c.Lat, c.Lon, refLat)
		cells[i] = projectedCell{id: c.ID, x: x, y: y}
	}
	sort.Slice(cells, func(i, j int) bool { return cells[i].id < cells[j].id })

	candidates := make([]candidate, 0, len(cells))
	for _, c := range cells {
		candidates = candidates[:0]
		for _, o := range cells {
			if o.id == c.id {
				continue
			}
			dx, dy := o.x-c.x, o.y-c.y
			candidates = append(candidates, candidate{id: o.id, dist2: dx*dx + dy*dy})
		}
		sort.Slice(candidates, func(i, j int) bool {
			if candidates[i].dist2 != candidates[j].dist2 {
				return candidates[i].dist2 < candidates[j].dist2
			}
			return candidates[i].id < candidates[j].id
		})

		m := min(k, len(candidates))
		if m == 0 {
			w.Neighbors[c.id] = nil
			continue
		}
		row := make([]Neighbor, m)
		for j := 0; j < m; j++ {
			row[j] = Neighbor{ID: candidates[j].id, Weight: 1 / float64(m)}
		}
		w.Neighbors[c.id] = row
	}

	return w
}
