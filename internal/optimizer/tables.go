// internal/optimizer/tables.go
package optimizer

import (
	"math"

	"route-optimizer/internal/models"
)

// Business constants of the candidate model. The eco candidate takes an 8%
// detour, cruises at 35 km/h instead of the 45 km/h shortest-route
// assumption, and nets a 35% emission reduction on the adjusted distance.
const (
	EcoDetourFactor       = 1.08
	ShortestSpeedKmh      = 45.0
	EcoSpeedKmh           = 35.0
	EcoEmissionEfficiency = 0.65
)

// Vehicle weight category thresholds (kg).
const (
	lightMaxKg  = 1000.0
	mediumMaxKg = 3000.0
)

// emissionFactors is kg CO2 per km by fuel type and vehicle category.
var emissionFactors = map[string]map[string]float64{
	models.FuelStandard: {models.VehicleLight: 0.22, models.VehicleMedium: 0.28, models.VehicleHeavy: 0.35},
	models.FuelHybrid:   {models.VehicleLight: 0.15, models.VehicleMedium: 0.19, models.VehicleHeavy: 0.25},
	models.FuelElectric: {models.VehicleLight: 0.08, models.VehicleMedium: 0.12, models.VehicleHeavy: 0.18},
}

// consumptionPer100Km is fuel (liters) or energy (kWh) per 100 km by fuel
// type and vehicle category. Electric figures are energy but reported
// uniformly as fuelConsumptionLiters.
var consumptionPer100Km = map[string]map[string]float64{
	models.FuelStandard: {models.VehicleLight: 7, models.VehicleMedium: 12, models.VehicleHeavy: 18},
	models.FuelHybrid:   {models.VehicleLight: 5.5, models.VehicleMedium: 9, models.VehicleHeavy: 14},
	models.FuelElectric: {models.VehicleLight: 16, models.VehicleMedium: 25, models.VehicleHeavy: 38},
}

// costPerKm is currency units per km by fuel type.
var costPerKm = map[string]float64{
	models.FuelStandard: 0.45,
	models.FuelHybrid:   0.35,
	models.FuelElectric: 0.25,
}

// Round2 rounds to 2 decimal places; used for money and carbon values.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GetVehicleCategory maps cargo weight to a vehicle category.
func GetVehicleCategory(cargoWeightKg float64) string {
	switch {
	case cargoWeightKg < lightMaxKg:
		return models.VehicleLight
	case cargoWeightKg <= mediumMaxKg:
		return models.VehicleMedium
	default:
		return models.VehicleHeavy
	}
}

// CategoryLabel returns the human-readable weight band of a category.
func CategoryLabel(category string) string {
	switch category {
	case models.VehicleLight:
		return "<1 ton"
	case models.VehicleMedium:
		return "1-3 tons"
	default:
		return ">3 tons"
	}
}

// CalculateCarbonFootprint is distance times emission factor, rounded to 2
// decimal places.
func CalculateCarbonFootprint(distanceKm, factor float64) float64 {
	return Round2(distanceKm * factor)
}

// EmissionFactor returns the kg CO2/km figure for a fuel/category pair.
func EmissionFactor(fuelType, category string) float64 {
	return emissionFactors[fuelType][category]
}
