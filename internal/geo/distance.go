// Package geo holds great-circle helpers shared by matching and places.
package geo

import (
	"math"

	"driveu/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by Distance.
const EarthRadiusKm = 6371.0

// Distance returns the haversine great-circle distance between a and b in
// kilometres. It is symmetric, zero for identical points and never negative.
func Distance(a, b domain.Location) float64 {
	return DistanceCoords(a.Lat, a.Lng, b.Lat, b.Lng)
}

// DistanceCoords is Distance over raw coordinates.
func DistanceCoords(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*sinLng*sinLng

	// Rounding can push h slightly outside [0, 1] near antipodes.
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
