package spatial

import "gonum.org/v1/gonum/floats"

// Point represents a 2D point with latitude and longitude
type Point struct {
	Lat float64
	Lon float64
}

// Centroid calculates the arithmetic centroid of a set of points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	lats := make([]float64, len(points))
	lons := make([]float64, len(points))
	for i, p := range points {
		lats[i], lons[i] = p.Lat, p.Lon
	}

	n := float64(len(points))
	return Point{
		Lat: floats.Sum(lats) / n,
		Lon: floats.Sum(lons) / n,
	}
}

// BoundingBox calculates the bounding box of a set of points
// Returns (minLat, minLon, maxLat, maxLon)
func BoundingBox(points []Point) (float64, float64, float64, float64) {
	if len(points) == 0 {
		return 0, 0, 0, 0
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon

	for _, p := range points[1:] {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}

	return minLat, minLon, maxLat, maxLon
}

// BoundingBoxSize returns the height and width of a bounding box in meters.
// Width is measured along the box's middle latitude.
func BoundingBoxSize(minLat, minLon, maxLat, maxLon float64) (height, width float64) {
	midLat := (minLat + maxLat) / 2
	height = HaversineDistance(minLat, minLon, maxLat, minLon)
	width = HaversineDistance(midLat, minLon, midLat, maxLon)
	return height, width
}
