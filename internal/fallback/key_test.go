// internal/fallback/key_test.go
package fallback

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"route-optimizer/internal/models"
)

func TestGenerateRouteKey(t *testing.T) {
	pickup := models.Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	delivery := models.Coordinate{Latitude: 34.0522, Longitude: -118.2437}
	opts := models.RouteOptions{FuelType: models.FuelHybrid, CargoWeightKg: 1200}

	key := GenerateRouteKey(pickup, delivery, opts)

	assert.Len(t, key, RouteKeyLength)

	// Identical inputs always produce the identical key.
	assert.Equal(t, key, GenerateRouteKey(pickup, delivery, opts))
}

func TestGenerateRouteKey_SensitiveToEveryField(t *testing.T) {
	pickup := models.Coordinate{Latitude: 40.7128, Longitude: -74.0060}
	delivery := models.Coordinate{Latitude: 34.0522, Longitude: -118.2437}
	base := models.RouteOptions{FuelType: models.FuelStandard}

	baseKey := GenerateRouteKey(pickup, delivery, base)

	variants := map[string]string{
		"swapped endpoints": GenerateRouteKey(delivery, pickup, base),
		"different fuel":    GenerateRouteKey(pickup, delivery, models.RouteOptions{FuelType: models.FuelElectric}),
		"different weight":  GenerateRouteKey(pickup, delivery, models.RouteOptions{FuelType: models.FuelStandard, CargoWeightKg: 10}),
		"traffic flag":      GenerateRouteKey(pickup, delivery, models.RouteOptions{FuelType: models.FuelStandard, IncludeTraffic: true}),
		"time of day":       GenerateRouteKey(pickup, delivery, models.RouteOptions{FuelType: models.FuelStandard, TimeOfDay: "rush"}),
	}

	for name, key := range variants {
		assert.NotEqual(t, baseKey, key, name)
		assert.Len(t, key, RouteKeyLength, name)
	}
}
