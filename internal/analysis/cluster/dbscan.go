// Package cluster provides exploratory density clustering of accident points.
// Unlike hotspot detection it carries no significance test.
package cluster

import (
	"math"
	"sort"

	"github.com/jengzang/accident-hotspots-go/internal/models"
	"github.com/jengzang/accident-hotspots-go/internal/spatial"
	"github.com/jengzang/accident-hotspots-go/internal/stats"
)

// Parameter defaults and bounds, eps in kilometers
const (
	DefaultEpsKm      = 0.2
	MinEpsKm          = 0.05
	MaxEpsKm          = 2.0
	DefaultMinSamples = 3
	MinMinSamples     = 2
	MaxMinSamples     = 10000
)

const noise = -1

// Params contains parameters for DBSCAN
type Params struct {
	EpsKm      float64 // neighborhood radius in kilometers
	MinSamples int     // minimum points, the core point included, to form a cluster
}

// DefaultParams returns the default DBSCAN parameters
func DefaultParams() Params {
	return Params{EpsKm: DefaultEpsKm, MinSamples: DefaultMinSamples}
}

// Clamp bounds the parameters to their accepted ranges. Non-positive values
// take the defaults first.
func (p Params) Clamp() Params {
	if p.EpsKm <= 0 || math.IsNaN(p.EpsKm) {
		p.EpsKm = DefaultEpsKm
	}
	if p.MinSamples <= 0 {
		p.MinSamples = DefaultMinSamples
	}
	p.EpsKm = math.Max(MinEpsKm, math.Min(MaxEpsKm, p.EpsKm))
	p.MinSamples = max(MinMinSamples, min(MaxMinSamples, p.MinSamples))
	return p
}

// EpsDegrees converts the radius to degrees with a flat 111 km per degree
func (p Params) EpsDegrees() float64 {
	return p.EpsKm / spatial.KmPerDegree
}

// Profile summarises one cluster
type Profile struct {
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	Count         int     `json:"count"`
	Cause         string  `json:"cause"`
	Fatalities    int     `json:"fatalities"`
	Serious       int     `json:"serious"`
	Minor         int     `json:"minor"`
	Damage        int64   `json:"damage"`
	SeverityScore int     `json:"severity_score"`
}

// index is a uniform grid over (lon, lat) with cells the size of eps
type index struct {
	cellSize float64
	cells    map[[2]int64][]int
}

func newIndex(points []models.Accident, cellSize float64) *index {
	idx := &index{cellSize: cellSize, cells: make(map[[2]int64][]int)}
	for i := range points {
		key := idx.key(points[i].Lon, points[i].Lat)
		idx.cells[key] = append(idx.cells[key], i)
	}
	return idx
}

func (idx *index) key(x, y float64) [2]int64 {
	return [2]int64{int64(math.Floor(x / idx.cellSize)), int64(math.Floor(y / idx.cellSize))}
}

// regionQuery returns every point within eps of points[i], itself included
func (idx *index) regionQuery(points []models.Accident, i int, eps float64) []int {
	p := points[i]
	base := idx.key(p.Lon, p.Lat)
	eps2 := eps * eps

	var neighbors []int
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, j := range idx.cells[[2]int64{base[0] + dx, base[1] + dy}] {
				ddx := points[j].Lon - p.Lon
				ddy := points[j].Lat - p.Lat
				if ddx*ddx+ddy*ddy <= eps2 {
					neighbors = append(neighbors, j)
				}
			}
		}
	}
	return neighbors
}

// Labels runs DBSCAN with Euclidean distance on raw degrees and returns one
// label per point: -1 for noise, otherwise a cluster id counted from 0.
func Labels(points []models.Accident, params Params) []int {
	labels := make([]int, len(points))
	if len(points) == 0 {
		return labels
	}

	eps := params.EpsDegrees()
	idx := newIndex(points, eps)

	// 0 is unvisited while running, cluster ids start at 1
	next := 0
	for i := range points {
		if labels[i] != 0 {
			continue
		}
		neighbors := idx.regionQuery(points, i, eps)
		if len(neighbors) < params.MinSamples {
			labels[i] = noise
			continue
		}
		next++
		expand(points, idx, labels, i, neighbors, next, eps, params.MinSamples)
	}

	for i, l := range labels {
		if l > 0 {
			labels[i] = l - 1
		}
	}
	return labels
}

func expand(points []models.Accident, idx *index, labels []int, seed int, neighbors []int, id int, eps float64, minSamples int) {
	labels[seed] = id
	for j := 0; j < len(neighbors); j++ {
		n := neighbors[j]
		if labels[n] == noise {
			labels[n] = id
		}
		if labels[n] != 0 {
			continue
		}
		labels[n] = id
		if more := idx.regionQuery(points, n, eps); len(more) >= minSamples {
			neighbors = append(neighbors, more...)
		}
	}
}

// Run clusters points and profiles each cluster, largest first.
// Fewer points than MinSamples yield no clusters.
func Run(points []models.Accident, params Params) []Profile {
	if len(points) < params.MinSamples || len(points) == 0 {
		return []Profile{}
	}

	labels := Labels(points, params)

	groups := make(map[int][]int)
	var ids []int
	for i, l := range labels {
		if l == noise {
			continue
		}
		if _, ok := groups[l]; !ok {
			ids = append(ids, l)
		}
		groups[l] = append(groups[l], i)
	}
	sort.Ints(ids)

	profiles := make([]Profile, 0, len(ids))
	for _, id := range ids {
		profiles = append(profiles, profile(points, groups[id]))
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].Count > profiles[j].Count
	})
	return profiles
}

func profile(points []models.Accident, members []int) Profile {
	causes := stats.NewTally()
	var p Profile
	coords := make([]spatial.Point, 0, len(members))
	for _, i := range members {
		a := &points[i]
		coords = append(coords, spatial.Point{Lat: a.Lat, Lon: a.Lon})
		causes.Add(a.Cause)
		p.Fatalities += a.Fatalities
		p.Serious += a.SeriousInjuries
		p.Minor += a.MinorInjuries
		p.Damage += a.Damage
		p.SeverityScore += a.SeverityScore()
	}
	p.Count = len(members)
	center := spatial.Centroid(coords)
	p.Lat, p.Lon = center.Lat, center.Lon
	p.Cause = causes.Mode(models.UnknownLabel)
	return p
}
