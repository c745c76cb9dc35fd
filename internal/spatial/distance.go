package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// HaversineDistance calculates the great-circle distance between two points in meters
// using the Haversine formula
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// MetersPerDegreeLat returns the length of one degree of latitude in meters
func MetersPerDegreeLat() float64 {
	return EarthRadiusMeters * math.Pi / 180
}

// MetersPerDegreeLon returns the length of one degree of longitude in meters
// at the given latitude
func MetersPerDegreeLon(lat float64) float64 {
	return EarthRadiusMeters * math.Pi / 180 * math.Cos(lat*math.Pi/180)
}

// Project maps a coordinate to planar meters with an equirectangular projection
// centred on refLat. Accurate for city-scale extents.
func Project(lat, lon, refLat float64) (x, y float64) {
	return lon * MetersPerDegreeLon(refLat), lat * MetersPerDegreeLat()
}

// Constants
const (
	EarthRadiusMeters = 6371000.0 // Earth's mean radius in meters
	KmPerDegree       = 111.0     // rough length of one degree, used for DBSCAN eps
)
