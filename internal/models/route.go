// internal/models/route.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Route candidate types.
const (
	RouteTypeShortest    = "shortest"
	RouteTypeEcoFriendly = "ecoFriendly"
)

// Recommendation targets and confidence levels.
const (
	RecommendEco      = "eco"
	RecommendShortest = "shortest"

	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Vehicle categories, derived from cargo weight unless set explicitly.
const (
	VehicleLight  = "light"
	VehicleMedium = "medium"
	VehicleHeavy  = "heavy"
)

// Fuel types.
const (
	FuelStandard = "standard"
	FuelHybrid   = "hybrid"
	FuelElectric = "electric"
)

// Coordinate is a WGS-84 geographic point.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RouteOptions carries the vehicle/fuel parameters of a request.
// IncludeTraffic and TimeOfDay are accepted and participate in cache keys but
// do not alter the deterministic cost/time model.
type RouteOptions struct {
	VehicleType    string  `json:"vehicleType,omitempty"`
	FuelType       string  `json:"fuelType,omitempty"`
	CargoWeightKg  float64 `json:"cargoWeightKg,omitempty"`
	IncludeTraffic bool    `json:"includeTraffic,omitempty"`
	TimeOfDay      string  `json:"timeOfDay,omitempty"`
}

// OptimizationRequest is a single pickup/delivery optimization job.
// Immutable once built; ID correlates logs and batch member results.
type OptimizationRequest struct {
	ID       string       `json:"id,omitempty"`
	Pickup   *Coordinate  `json:"pickup"`
	Delivery *Coordinate  `json:"delivery"`
	Options  RouteOptions `json:"options"`
}

// NewOptimizationRequest builds a request with a generated correlation ID.
func NewOptimizationRequest(pickup, delivery *Coordinate, options RouteOptions) OptimizationRequest {
	return OptimizationRequest{
		ID:       uuid.NewString(),
		Pickup:   pickup,
		Delivery: delivery,
		Options:  options,
	}
}

// CandidateRoute is one of the two computed route options. All numeric
// fields are non-negative; money and carbon are rounded to 2 decimals.
type CandidateRoute struct {
	Type                  string  `json:"type"`
	DistanceKm            float64 `json:"distanceKm"`
	EstimatedTimeMinutes  float64 `json:"estimatedTimeMinutes"`
	CarbonFootprintKg     float64 `json:"carbonFootprintKg"`
	FuelConsumptionLiters float64 `json:"fuelConsumptionLiters"`
	CostEstimate          float64 `json:"costEstimate"`
}

// RoutePair holds both candidates of a result.
type RoutePair struct {
	Shortest CandidateRoute `json:"shortest"`
	Eco      CandidateRoute `json:"eco"`
}

// CarbonSavings is the eco-minus-shortest carbon delta, sign-flipped so that
// savings are positive when the eco candidate emits less.
type CarbonSavings struct {
	Kg         float64 `json:"kg"`
	Percentage float64 `json:"percentage"`
}

// TimeImpact is the extra travel time the eco candidate costs.
type TimeImpact struct {
	AdditionalMinutes float64 `json:"additionalMinutes"`
	Percentage        float64 `json:"percentage"`
}

// CostImpact is the extra monetary cost of the eco candidate.
type CostImpact struct {
	AdditionalCost float64 `json:"additionalCost"`
	Percentage     float64 `json:"percentage"`
}

// Comparison contains all eco-vs-shortest deltas.
type Comparison struct {
	CarbonSavings CarbonSavings `json:"carbonSavings"`
	TimeImpact    TimeImpact    `json:"timeImpact"`
	CostImpact    CostImpact    `json:"costImpact"`
}

// Recommendation is derived from the comparison; never persisted on its own.
type Recommendation struct {
	Recommended string `json:"recommended"`
	Confidence  string `json:"confidence"`
}

// OptimizationResult is the one cross-cutting type both the live and the
// fallback paths produce identically.
type OptimizationResult struct {
	Success        bool           `json:"success"`
	Routes         RoutePair      `json:"routes"`
	Comparison     Comparison     `json:"comparison"`
	Recommendation Recommendation `json:"recommendation"`
	FallbackUsed   bool           `json:"fallbackUsed"`
	FallbackReason string         `json:"fallbackReason,omitempty"`
	CacheUsed      bool           `json:"cacheUsed,omitempty"`
}

// CacheEntry is a cached fallback result. Owned exclusively by the fallback
// service; keys are content-derived, entries immutable once written.
type CacheEntry struct {
	Key       string             `json:"key"`
	Payload   OptimizationResult `json:"payload"`
	Timestamp time.Time          `json:"timestamp"`
	TTL       time.Duration      `json:"ttl"`
}

// Expired reports whether the entry has outlived its TTL at time now.
func (e CacheEntry) Expired(now time.Time) bool {
	return now.Sub(e.Timestamp) >= e.TTL
}

// SystemStatus is the fallback service health snapshot.
type SystemStatus struct {
	MapAPIStatus        string `json:"mapApiStatus"`
	CacheSize           int    `json:"cacheSize"`
	MockRoutesAvailable int    `json:"mockRoutesAvailable"`
	SystemHealth        string `json:"systemHealth"`
}
