// internal/optimizer/engine_test.go
package optimizer

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"route-optimizer/internal/common/config"
	"route-optimizer/internal/common/errors"
	"route-optimizer/internal/common/logger"
	"route-optimizer/internal/models"
	"route-optimizer/internal/provider"
)

// stubResolver implements FallbackResolver for engine tests.
type stubResolver struct {
	calls      atomic.Int64
	lastStatus atomic.Bool
	fail       bool
}

func (s *stubResolver) CalculateFallbackRoute(_ context.Context, req models.OptimizationRequest) (*models.OptimizationResult, error) {
	s.calls.Add(1)
	if s.fail {
		return nil, fmt.Errorf("no fallback data")
	}

	pair := BuildRoutes(100, 0, req.Options, 0)
	out := ComposeResult(pair, true, "Map API unavailable - calculated fallback", false)
	return &out, nil
}

func (s *stubResolver) SetMapAPIStatus(available bool) {
	s.lastStatus.Store(available)
}

func testEngine(dp provider.DistanceProvider, fb FallbackResolver) *Engine {
	cfg := config.OptimizerConfig{BatchConcurrency: 4}
	return NewEngine(cfg, dp, fb, logger.NewNoOpLogger())
}

func validRequest() models.OptimizationRequest {
	return models.OptimizationRequest{
		ID:       "req-1",
		Pickup:   coord(40.7128, -74.0060),
		Delivery: coord(34.0522, -118.2437),
		Options:  models.RouteOptions{CargoWeightKg: 500},
	}
}

func TestEngine_OptimizeRoute_LivePath(t *testing.T) {
	dp := provider.NewStaticProvider([]provider.StaticPair{{
		FromLat: 40.7128, FromLon: -74.0060,
		ToLat: 34.0522, ToLon: -118.2437,
		DistanceKm: 4488.6, DurationMinutes: 2460,
	}})
	fb := &stubResolver{}
	engine := testEngine(dp, fb)

	out, err := engine.OptimizeRoute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.False(t, out.FallbackUsed)
	assert.Empty(t, out.FallbackReason)
	assert.Equal(t, 4488.6, out.Routes.Shortest.DistanceKm)
	assert.Equal(t, 2460.0, out.Routes.Shortest.EstimatedTimeMinutes)
	assert.Equal(t, int64(0), fb.calls.Load())
	assert.True(t, fb.lastStatus.Load())
}

func TestEngine_OptimizeRoute_FallbackPath(t *testing.T) {
	fb := &stubResolver{}
	engine := testEngine(provider.NewFailingProvider(), fb)

	out, err := engine.OptimizeRoute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.True(t, out.FallbackUsed)
	assert.Equal(t, "Map API unavailable - calculated fallback", out.FallbackReason)
	assert.Equal(t, int64(1), fb.calls.Load())
	assert.False(t, fb.lastStatus.Load())
}

func TestEngine_OptimizeRoute_FallbackFails(t *testing.T) {
	fb := &stubResolver{fail: true}
	engine := testEngine(provider.NewFailingProvider(), fb)

	out, err := engine.OptimizeRoute(context.Background(), validRequest())

	require.Error(t, err)
	assert.Nil(t, out)
	assert.Equal(t, errors.ErrCodeOptimizationFailed, errors.CodeOf(err))
}

func TestEngine_OptimizeRoute_InvalidRequestSkipsFallback(t *testing.T) {
	fb := &stubResolver{}
	engine := testEngine(provider.NewFailingProvider(), fb)

	req := validRequest()
	req.Pickup = coord(91, 0)

	out, err := engine.OptimizeRoute(context.Background(), req)

	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.IsValidationError(err))
	assert.Equal(t, int64(0), fb.calls.Load())
}

func TestEngine_OptimizeMultipleRoutes(t *testing.T) {
	fb := &stubResolver{}
	engine := testEngine(provider.NewFailingProvider(), fb)

	reqs := []models.OptimizationRequest{
		validRequest(),
		{Pickup: coord(91, 0), Delivery: coord(0, 0)}, // invalid member
		{Pickup: coord(48.8566, 2.3522), Delivery: coord(52.5200, 13.4050)},
	}

	results := engine.OptimizeMultipleRoutes(context.Background(), reqs)

	require.Len(t, results, 3)

	assert.True(t, results[0].Success)
	assert.Equal(t, "req-1", results[0].RequestID)
	assert.NotNil(t, results[0].Result)

	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].RequestID, "empty IDs get generated")
	assert.NotEmpty(t, results[1].Error)
	assert.Nil(t, results[1].Result)

	assert.True(t, results[2].Success)
}

func TestEngine_OptimizeMultipleRoutes_Empty(t *testing.T) {
	engine := testEngine(provider.NewFailingProvider(), &stubResolver{})

	results := engine.OptimizeMultipleRoutes(context.Background(), nil)

	assert.Empty(t, results)
}

func TestGetOptimizationStatistics(t *testing.T) {
	success := func(savingsKg, extraMinutes float64, recommended string) models.BatchResult {
		return models.BatchResult{
			Success: true,
			Result: &models.OptimizationResult{
				Success: true,
				Comparison: models.Comparison{
					CarbonSavings: models.CarbonSavings{Kg: savingsKg},
					TimeImpact:    models.TimeImpact{AdditionalMinutes: extraMinutes},
				},
				Recommendation: models.Recommendation{Recommended: recommended},
			},
		}
	}

	results := []models.BatchResult{
		success(10, 30, models.RecommendEco),
		success(5, 12, models.RecommendShortest),
		{Success: false, Error: "bad request"},
	}

	stats := GetOptimizationStatistics(results)

	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Successful)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 15.0, stats.TotalCarbonSavingsKg)
	assert.Equal(t, 7.5, stats.AverageCarbonSavingsKg)
	assert.Equal(t, 42.0, stats.TotalTimeImpactMinutes)
	assert.Equal(t, 21.0, stats.AverageTimeImpactMinutes)
	assert.Equal(t, map[string]int{models.RecommendEco: 1, models.RecommendShortest: 1}, stats.Recommendations)
}

func TestGetOptimizationStatistics_AllFailed(t *testing.T) {
	stats := GetOptimizationStatistics([]models.BatchResult{
		{Success: false, Error: "x"},
	})

	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 0, stats.Successful)
	assert.Equal(t, 0.0, stats.AverageCarbonSavingsKg)
}
