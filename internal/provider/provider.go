// internal/provider/provider.go
package provider

import "context"

// Result is the distance and travel duration between two coordinates as
// reported by a mapping provider.
type Result struct {
	DistanceKm      float64 `json:"distanceKm"`
	DurationMinutes float64 `json:"durationMinutes"`
	Provider        string  `json:"provider"`
}

// DistanceProvider is the contract for retrieving travel distance and
// duration between two points. Implementations may fail with network,
// authentication, rate-limit, or malformed-response errors; callers treat
// every failure as a trigger for fallback, never as a fatal error.
type DistanceProvider interface {
	CalculateDistanceAndTime(ctx context.Context, lat1, lon1, lat2, lon2 float64) (Result, error)
	Name() string
}
