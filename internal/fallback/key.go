// internal/fallback/key.go
package fallback

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"

	"route-optimizer/internal/models"
)

// RouteKeyLength is the fixed length of generated cache keys.
const RouteKeyLength = 32

// keyDocument is the canonical form hashed into a cache key. Fields marshal
// in declaration order, so caller-side option ordering cannot change the key.
type keyDocument struct {
	PickupLat      float64 `json:"pickupLat"`
	PickupLon      float64 `json:"pickupLon"`
	DeliveryLat    float64 `json:"deliveryLat"`
	DeliveryLon    float64 `json:"deliveryLon"`
	VehicleType    string  `json:"vehicleType"`
	FuelType       string  `json:"fuelType"`
	CargoWeightKg  float64 `json:"cargoWeightKg"`
	IncludeTraffic bool    `json:"includeTraffic"`
	TimeOfDay      string  `json:"timeOfDay"`
}

// GenerateRouteKey derives a deterministic 32-character key from the request
// content. Pure function: identical inputs always yield the identical key.
func GenerateRouteKey(pickup, delivery models.Coordinate, opts models.RouteOptions) string {
	doc := keyDocument{
		PickupLat:      pickup.Latitude,
		PickupLon:      pickup.Longitude,
		DeliveryLat:    delivery.Latitude,
		DeliveryLon:    delivery.Longitude,
		VehicleType:    opts.VehicleType,
		FuelType:       opts.FuelType,
		CargoWeightKg:  opts.CargoWeightKg,
		IncludeTraffic: opts.IncludeTraffic,
		TimeOfDay:      opts.TimeOfDay,
	}

	raw, _ := json.Marshal(doc)
	sum := sha256.Sum256(raw)
	return base64.RawURLEncoding.EncodeToString(sum[:])[:RouteKeyLength]
}
