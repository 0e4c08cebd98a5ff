// internal/fallback/geo.go
package fallback

import (
	"math"

	"route-optimizer/internal/models"
)

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance between two points in
// kilometers.
func Haversine(a, b models.Coordinate) float64 {
	dLat := degToRad(b.Latitude - a.Latitude)
	dLon := degToRad(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Latitude))*math.Cos(degToRad(b.Latitude))*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
