// internal/optimizer/engine.go
package optimizer

import (
	"context"
	"time"

	"route-optimizer/internal/common/alerting"
	"route-optimizer/internal/common/config"
	"route-optimizer/internal/common/errors"
	"route-optimizer/internal/common/logger"
	"route-optimizer/internal/common/metrics"
	"route-optimizer/internal/common/observability"
	"route-optimizer/internal/models"
	"route-optimizer/internal/provider"
)

// FallbackResolver is the degraded-path contract the engine consults when
// the provider fails. It always returns a result shaped identically to the
// live path.
type FallbackResolver interface {
	CalculateFallbackRoute(ctx context.Context, req models.OptimizationRequest) (*models.OptimizationResult, error)
	SetMapAPIStatus(available bool)
}

// Engine turns a provider (or fallback) distance result into two priced,
// carbon-scored candidate routes and a recommendation. Requests are
// stateless and may be processed fully in parallel.
type Engine struct {
	provider provider.DistanceProvider
	fallback FallbackResolver
	logger   logger.Logger

	notifier *alerting.Notifier
	obs      *observability.Observability
	tracing  *observability.Tracing

	batchConcurrency int
}

func NewEngine(cfg config.OptimizerConfig, dp provider.DistanceProvider, fb FallbackResolver, log logger.Logger) *Engine {
	concurrency := cfg.BatchConcurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Engine{
		provider:         dp,
		fallback:         fb,
		logger:           log.WithFields(map[string]interface{}{"component": "optimizer"}),
		batchConcurrency: concurrency,
	}
}

// WithAlerts attaches the provider outage notifier.
func (e *Engine) WithAlerts(n *alerting.Notifier) *Engine {
	e.notifier = n
	return e
}

// WithObservability attaches otel metering and tracing.
func (e *Engine) WithObservability(obs *observability.Observability, tr *observability.Tracing) *Engine {
	e.obs = obs
	e.tracing = tr
	return e
}

// OptimizeRoute validates the request, asks the provider for distance and
// time, and builds both candidates. Any provider failure is absorbed by the
// fallback path; only invalid caller input is a hard failure.
func (e *Engine) OptimizeRoute(ctx context.Context, req models.OptimizationRequest) (*models.OptimizationResult, error) {
	start := time.Now()
	ctx, span := e.tracing.StartSpan(ctx, "optimizer.OptimizeRoute")
	defer span.End()

	if err := ValidateRequest(req); err != nil {
		e.record(ctx, "invalid", start)
		return nil, err
	}

	res, err := e.provider.CalculateDistanceAndTime(ctx,
		req.Pickup.Latitude, req.Pickup.Longitude,
		req.Delivery.Latitude, req.Delivery.Longitude,
	)
	if err == nil {
		e.fallback.SetMapAPIStatus(true)
		e.notifier.ProviderRecovered(ctx, e.provider.Name())

		pair := BuildRoutes(res.DistanceKm, res.DurationMinutes, req.Options, 0)
		out := ComposeResult(pair, false, "", false)

		e.logger.Debug("route optimized", map[string]interface{}{
			"requestId":   req.ID,
			"provider":    res.Provider,
			"distanceKm":  res.DistanceKm,
			"recommended": out.Recommendation.Recommended,
		})
		e.record(ctx, "live", start)
		return &out, nil
	}

	e.logger.Warn("provider failed, resolving via fallback", map[string]interface{}{
		"requestId": req.ID,
		"provider":  e.provider.Name(),
		"errorCode": string(errors.CodeOf(err)),
		"error":     err.Error(),
	})
	e.fallback.SetMapAPIStatus(false)
	e.notifier.ProviderDown(ctx, e.provider.Name(), err.Error())

	out, ferr := e.fallback.CalculateFallbackRoute(ctx, req)
	if ferr != nil {
		e.logger.Error("fallback resolution failed", map[string]interface{}{
			"requestId": req.ID,
			"error":     ferr.Error(),
		})
		e.record(ctx, "failed", start)
		return nil, errors.NewOptimizationFailedError(ferr)
	}

	e.record(ctx, "fallback", start)
	return out, nil
}

func (e *Engine) record(ctx context.Context, outcome string, start time.Time) {
	elapsed := time.Since(start)
	metrics.OptimizationsTotal.WithLabelValues(outcome).Inc()
	metrics.OptimizationDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if e.obs != nil {
		e.obs.RecordOptimization(ctx, outcome)
		e.obs.RecordOptimizationDuration(ctx, elapsed, outcome)
	}
}
