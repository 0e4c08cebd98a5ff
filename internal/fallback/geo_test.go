// internal/fallback/geo_test.go
package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"route-optimizer/internal/models"
)

func TestHaversine(t *testing.T) {
	newYork := models.Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	losAngeles := models.Coordinate{Latitude: 34.0522, Longitude: -118.2437}
	paris := models.Coordinate{Latitude: 48.8566, Longitude: 2.3522}
	london := models.Coordinate{Latitude: 51.5074, Longitude: -0.1278}

	tests := []struct {
		name       string
		a, b       models.Coordinate
		expectedKm float64
		deltaKm    float64
	}{
		{"same point", newYork, newYork, 0, 0.001},
		{"new york to los angeles", newYork, losAngeles, 3936, 15},
		{"paris to london", paris, london, 344, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expectedKm, Haversine(tt.a, tt.b), tt.deltaKm)

			// Distance is symmetric.
			assert.InDelta(t, Haversine(tt.a, tt.b), Haversine(tt.b, tt.a), 1e-9)
		})
	}
}
