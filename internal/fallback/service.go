// internal/fallback/service.go
package fallback

import (
	"context"
	"sync"

	"route-optimizer/internal/common/errors"
	"route-optimizer/internal/common/logger"
	"route-optimizer/internal/common/metrics"
	"route-optimizer/internal/models"
	"route-optimizer/internal/optimizer"
)

// Reason strings carried on fallback results so callers can tell which
// degraded path produced them.
const (
	ReasonCachedRoute = "Using cached route data"
	ReasonCalculated  = "Map API unavailable - calculated fallback"
)

// Service resolves routes when the live provider is unavailable. Resolution
// order is fixed: cached result, then known corridor, then haversine
// estimate. The haversine tier cannot fail on valid coordinates, so the
// chain always produces a result.
type Service struct {
	cache     RouteCache
	corridors []Corridor
	logger    logger.Logger

	mu           sync.RWMutex
	mapAPIKnown  bool
	mapAPIUp     bool
	lastCacheErr error
}

func NewService(cache RouteCache, corridors []Corridor, log logger.Logger) *Service {
	if corridors == nil {
		corridors = DefaultCorridors()
	}
	return &Service{
		cache:     cache,
		corridors: corridors,
		logger:    log.WithFields(map[string]interface{}{"component": "fallback"}),
	}
}

// CalculateFallbackRoute resolves a request through the degraded chain.
// The computed result is written back to the cache so repeated requests
// during an outage stay cheap.
func (s *Service) CalculateFallbackRoute(ctx context.Context, req models.OptimizationRequest) (*models.OptimizationResult, error) {
	key := GenerateRouteKey(*req.Pickup, *req.Delivery, req.Options)

	if cached, err := s.cache.Get(ctx, key); err != nil {
		s.noteCacheErr(err)
		s.logger.Warn("cache lookup failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	} else if cached != nil {
		metrics.CacheHits.Inc()
		metrics.FallbacksTotal.WithLabelValues("cache").Inc()

		out := *cached
		out.FallbackUsed = true
		out.FallbackReason = ReasonCachedRoute
		out.CacheUsed = true
		return &out, nil
	} else {
		metrics.CacheMisses.Inc()
	}

	result := s.computeRoute(ctx, req)

	if err := s.cache.Put(ctx, key, *result); err != nil {
		s.noteCacheErr(err)
		s.logger.Warn("cache write-back failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	} else {
		s.noteCacheErr(nil)
	}

	return result, nil
}

// computeRoute builds a result from corridor data when the pair travels a
// known corridor, otherwise from a great-circle estimate.
func (s *Service) computeRoute(_ context.Context, req models.OptimizationRequest) *models.OptimizationResult {
	pickup, delivery := *req.Pickup, *req.Delivery

	if corridor := MatchCorridor(s.corridors, pickup, delivery); corridor != nil {
		metrics.FallbacksTotal.WithLabelValues("corridor").Inc()

		s.logger.Debug("corridor fallback", map[string]interface{}{
			"requestId": req.ID,
			"corridor":  corridor.Name,
		})
		pair := optimizer.BuildRoutes(corridor.ShortestKm, 0, req.Options, corridor.EcoKm)
		out := optimizer.ComposeResult(pair, true, ReasonCalculated, false)
		return &out
	}

	metrics.FallbacksTotal.WithLabelValues("haversine").Inc()

	distance := CalculateDistance(pickup, delivery)
	pair := optimizer.BuildRoutes(distance, 0, req.Options, 0)
	out := optimizer.ComposeResult(pair, true, ReasonCalculated, false)
	return &out
}

// CalculateDistance is the great-circle estimator used by the last tier.
func CalculateDistance(a, b models.Coordinate) float64 {
	return optimizer.Round2(Haversine(a, b))
}

// CacheRoute stores a result under the request's content key.
func (s *Service) CacheRoute(ctx context.Context, req models.OptimizationRequest, result models.OptimizationResult) error {
	key := GenerateRouteKey(*req.Pickup, *req.Delivery, req.Options)
	if err := s.cache.Put(ctx, key, result); err != nil {
		s.noteCacheErr(err)
		return err
	}
	s.noteCacheErr(nil)
	return nil
}

// GetCachedRoute returns the cached result for a request, nil on miss.
func (s *Service) GetCachedRoute(ctx context.Context, req models.OptimizationRequest) (*models.OptimizationResult, error) {
	key := GenerateRouteKey(*req.Pickup, *req.Delivery, req.Options)
	return s.cache.Get(ctx, key)
}

// CleanupCache removes expired entries.
func (s *Service) CleanupCache(ctx context.Context) (int, error) {
	removed, err := s.cache.Cleanup(ctx)
	if err != nil {
		s.noteCacheErr(err)
		return 0, errors.NewFallbackFailedError(err)
	}
	return removed, nil
}

// Preload warms the cache with one entry per corridor per vehicle and fuel
// combination used most, so the first outage request is already a hit for
// the seeded lanes.
func (s *Service) Preload(ctx context.Context) int {
	warmed := 0
	for _, c := range s.corridors {
		opts := models.RouteOptions{FuelType: models.FuelStandard}
		key := GenerateRouteKey(c.From, c.To, opts)

		pair := optimizer.BuildRoutes(c.ShortestKm, 0, opts, c.EcoKm)
		out := optimizer.ComposeResult(pair, true, ReasonCalculated, false)

		if err := s.cache.Put(ctx, key, out); err != nil {
			s.noteCacheErr(err)
			s.logger.Warn("corridor preload failed", map[string]interface{}{
				"corridor": c.Name,
				"error":    err.Error(),
			})
			continue
		}
		warmed++
	}

	s.logger.Info("corridor cache preloaded", map[string]interface{}{"entries": warmed})
	return warmed
}

// SetMapAPIStatus records the live provider's last observed availability.
func (s *Service) SetMapAPIStatus(available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mapAPIKnown = true
	s.mapAPIUp = available
}

func (s *Service) noteCacheErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastCacheErr = err
}

// GetSystemStatus reports provider availability, cache population, and
// overall health for the status endpoint.
func (s *Service) GetSystemStatus(ctx context.Context) models.SystemStatus {
	s.mu.RLock()
	known, up := s.mapAPIKnown, s.mapAPIUp
	cacheErr := s.lastCacheErr
	s.mu.RUnlock()

	status := models.SystemStatus{
		MapAPIStatus:        "unknown",
		MockRoutesAvailable: len(s.corridors),
		SystemHealth:        "operational",
	}
	if known {
		if up {
			status.MapAPIStatus = "available"
		} else {
			status.MapAPIStatus = "unavailable"
		}
	}

	size, err := s.cache.Size(ctx)
	if err != nil {
		s.logger.Warn("cache size probe failed", map[string]interface{}{"error": err.Error()})
		status.SystemHealth = "degraded"
		return status
	}
	status.CacheSize = size

	if cacheErr != nil {
		status.SystemHealth = "degraded"
	}
	return status
}
