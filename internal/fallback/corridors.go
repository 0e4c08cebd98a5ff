// internal/fallback/corridors.go
package fallback

import (
	"route-optimizer/internal/common/config"
	"route-optimizer/internal/models"
)

// DefaultCorridorToleranceKm is how close both endpoints must lie to a
// corridor's endpoints for the corridor's known distances to apply.
const DefaultCorridorToleranceKm = 50.0

// Corridor is a long-haul city pair with curated road distances for both
// route variants. Matching is direction-insensitive.
type Corridor struct {
	Name        string
	From        models.Coordinate
	To          models.Coordinate
	ShortestKm  float64
	EcoKm       float64
	ToleranceKm float64
}

// DefaultCorridors returns the built-in corridor table. Distances are
// curated road distances, not great-circle values.
func DefaultCorridors() []Corridor {
	return []Corridor{
		{
			Name:       "New York - Los Angeles",
			From:       models.Coordinate{Latitude: 40.7128, Longitude: -74.0060},
			To:         models.Coordinate{Latitude: 34.0522, Longitude: -118.2437},
			ShortestKm: 3944,
			EcoKm:      4256,
		},
		{
			Name:       "New York - Chicago",
			From:       models.Coordinate{Latitude: 40.7128, Longitude: -74.0060},
			To:         models.Coordinate{Latitude: 41.8781, Longitude: -87.6298},
			ShortestKm: 1145,
			EcoKm:      1237,
		},
		{
			Name:       "Chicago - Houston",
			From:       models.Coordinate{Latitude: 41.8781, Longitude: -87.6298},
			To:         models.Coordinate{Latitude: 29.7604, Longitude: -95.3698},
			ShortestKm: 1514,
			EcoKm:      1635,
		},
		{
			Name:       "Los Angeles - San Francisco",
			From:       models.Coordinate{Latitude: 34.0522, Longitude: -118.2437},
			To:         models.Coordinate{Latitude: 37.7749, Longitude: -122.4194},
			ShortestKm: 559,
			EcoKm:      604,
		},
		{
			Name:       "Miami - New York",
			From:       models.Coordinate{Latitude: 25.7617, Longitude: -80.1918},
			To:         models.Coordinate{Latitude: 40.7128, Longitude: -74.0060},
			ShortestKm: 1754,
			EcoKm:      1894,
		},
	}
}

// CorridorsFromConfig converts operator-supplied seeds into corridors.
func CorridorsFromConfig(seeds []config.CorridorSeed) []Corridor {
	out := make([]Corridor, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, Corridor{
			Name:        s.Name,
			From:        models.Coordinate{Latitude: s.FromLat, Longitude: s.FromLon},
			To:          models.Coordinate{Latitude: s.ToLat, Longitude: s.ToLon},
			ShortestKm:  s.ShortestKm,
			EcoKm:       s.EcoKm,
			ToleranceKm: s.ToleranceKm,
		})
	}
	return out
}

// tolerance returns the corridor's match radius, defaulted when unset.
func (c Corridor) tolerance() float64 {
	if c.ToleranceKm > 0 {
		return c.ToleranceKm
	}
	return DefaultCorridorToleranceKm
}

// Matches reports whether the pickup/delivery pair travels this corridor
// in either direction, with both endpoints inside the match radius.
func (c Corridor) Matches(pickup, delivery models.Coordinate) bool {
	tol := c.tolerance()

	forward := Haversine(pickup, c.From) <= tol && Haversine(delivery, c.To) <= tol
	reverse := Haversine(pickup, c.To) <= tol && Haversine(delivery, c.From) <= tol
	return forward || reverse
}

// MatchCorridor finds the first corridor covering the pair, nil when none.
func MatchCorridor(corridors []Corridor, pickup, delivery models.Coordinate) *Corridor {
	for i := range corridors {
		if corridors[i].Matches(pickup, delivery) {
			return &corridors[i]
		}
	}
	return nil
}
