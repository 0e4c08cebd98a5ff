// internal/optimizer/candidates.go
package optimizer

import (
	"route-optimizer/internal/models"
)

// BuildRoutes constructs both candidates from one base distance result.
//
// The shortest candidate uses the base distance and duration as-is; when
// baseDurationMinutes is not positive (fallback paths have no provider
// duration) it is derived at the 45 km/h shortest-route assumption. The eco
// candidate takes the 8% detour (or an explicit seeded eco distance) and
// recomputes its time at 35 km/h. Carbon applies the shared fuel-type table
// to each candidate's own distance; the eco candidate additionally applies
// the 35% net emission reduction.
func BuildRoutes(baseDistanceKm, baseDurationMinutes float64, opts models.RouteOptions, ecoDistanceKm float64) models.RoutePair {
	fuelType, category := resolveOptions(opts)

	factor := emissionFactors[fuelType][category]
	consumption := consumptionPer100Km[fuelType][category]
	cost := costPerKm[fuelType]

	if baseDurationMinutes <= 0 {
		baseDurationMinutes = baseDistanceKm / ShortestSpeedKmh * 60
	}
	if ecoDistanceKm <= 0 {
		ecoDistanceKm = baseDistanceKm * EcoDetourFactor
	}

	shortest := models.CandidateRoute{
		Type:                  models.RouteTypeShortest,
		DistanceKm:            baseDistanceKm,
		EstimatedTimeMinutes:  baseDurationMinutes,
		CarbonFootprintKg:     CalculateCarbonFootprint(baseDistanceKm, factor),
		FuelConsumptionLiters: Round2(baseDistanceKm * consumption / 100),
		CostEstimate:          Round2(baseDistanceKm * cost),
	}

	eco := models.CandidateRoute{
		Type:                  models.RouteTypeEcoFriendly,
		DistanceKm:            ecoDistanceKm,
		EstimatedTimeMinutes:  ecoDistanceKm / EcoSpeedKmh * 60,
		CarbonFootprintKg:     Round2(ecoDistanceKm * factor * EcoEmissionEfficiency),
		FuelConsumptionLiters: Round2(ecoDistanceKm * consumption / 100),
		CostEstimate:          Round2(ecoDistanceKm * cost),
	}

	return models.RoutePair{Shortest: shortest, Eco: eco}
}

// Compare computes all eco-minus-shortest deltas. Savings are positive when
// the eco candidate emits less.
func Compare(pair models.RoutePair) models.Comparison {
	savingsKg := Round2(pair.Shortest.CarbonFootprintKg - pair.Eco.CarbonFootprintKg)
	extraMinutes := Round2(pair.Eco.EstimatedTimeMinutes - pair.Shortest.EstimatedTimeMinutes)
	extraCost := Round2(pair.Eco.CostEstimate - pair.Shortest.CostEstimate)

	return models.Comparison{
		CarbonSavings: models.CarbonSavings{
			Kg:         savingsKg,
			Percentage: percentage(savingsKg, pair.Shortest.CarbonFootprintKg),
		},
		TimeImpact: models.TimeImpact{
			AdditionalMinutes: extraMinutes,
			Percentage:        percentage(extraMinutes, pair.Shortest.EstimatedTimeMinutes),
		},
		CostImpact: models.CostImpact{
			AdditionalCost: extraCost,
			Percentage:     percentage(extraCost, pair.Shortest.CostEstimate),
		},
	}
}

func percentage(delta, base float64) float64 {
	if base == 0 {
		return 0
	}
	return Round2(delta / base * 100)
}

// Recommend applies the deterministic multi-criteria policy:
// a time penalty of 25% or more always wins for the shortest route, then
// strong (>=20%) and moderate (>=10% with tolerable delay) carbon savings
// favor the eco route.
func Recommend(c models.Comparison) models.Recommendation {
	switch {
	case c.TimeImpact.Percentage >= 25:
		return models.Recommendation{Recommended: models.RecommendShortest, Confidence: models.ConfidenceHigh}
	case c.CarbonSavings.Percentage >= 20:
		return models.Recommendation{Recommended: models.RecommendEco, Confidence: models.ConfidenceHigh}
	case c.CarbonSavings.Percentage >= 10 && c.TimeImpact.Percentage < 20:
		return models.Recommendation{Recommended: models.RecommendEco, Confidence: models.ConfidenceMedium}
	default:
		return models.Recommendation{Recommended: models.RecommendShortest, Confidence: models.ConfidenceLow}
	}
}

// ComposeResult assembles the cross-cutting result shape shared by the live
// and fallback paths.
func ComposeResult(pair models.RoutePair, fallbackUsed bool, fallbackReason string, cacheUsed bool) models.OptimizationResult {
	comparison := Compare(pair)
	return models.OptimizationResult{
		Success:        true,
		Routes:         pair,
		Comparison:     comparison,
		Recommendation: Recommend(comparison),
		FallbackUsed:   fallbackUsed,
		FallbackReason: fallbackReason,
		CacheUsed:      cacheUsed,
	}
}
