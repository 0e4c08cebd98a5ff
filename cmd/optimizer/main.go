// cmd/optimizer/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"route-optimizer/internal/api"
	"route-optimizer/internal/common/alerting"
	"route-optimizer/internal/common/config"
	"route-optimizer/internal/common/database"
	"route-optimizer/internal/common/logger"
	"route-optimizer/internal/common/observability"
	"route-optimizer/internal/fallback"
	"route-optimizer/internal/optimizer"
	"route-optimizer/internal/provider"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	zapLog.Info("Starting route optimizer...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Rebuild the logger with the configured level and format.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	tracing, err := observability.NewTracing(cfg.App.Name, cfg.Tracing.CollectorURL)
	if err != nil {
		zapLog.Fatal("tracing init failed", zap.Error(err))
	}
	defer tracing.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Init route cache ---
	var cache fallback.RouteCache
	switch cfg.Cache.Backend {
	case "redis":
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Cache.Redis)
			if err != nil {
				return err
			}
			// Test the connection with context
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")

		cache = fallback.NewRedisCache(redis, config.GetDuration(cfg.Cache.TTL))
	default:
		memCache := fallback.NewMemoryCache(config.GetDuration(cfg.Cache.TTL))
		fallback.StartSweeper(ctx, memCache, config.GetDuration(cfg.Cache.SweepInterval), log)
		cache = memCache
	}

	// --- Init fallback service ---
	corridors := fallback.DefaultCorridors()
	corridors = append(corridors, fallback.CorridorsFromConfig(cfg.Corridors)...)

	fallbackSvc := fallback.NewService(cache, corridors, log)
	if cfg.Cache.Preload {
		fallbackSvc.Preload(ctx)
	}

	// --- Init distance provider ---
	osrm := provider.NewOSRMProvider(cfg.Provider)
	zapLog.Info("Distance provider initialized",
		zap.String("provider", osrm.Name()),
		zap.String("baseURL", cfg.Provider.BaseURL),
	)

	// --- Init engine ---
	engine := optimizer.NewEngine(cfg.Optimizer, osrm, fallbackSvc, log)
	engine.WithObservability(obs, tracing)

	if cfg.Alerting.Enabled && cfg.Alerting.TopicARN != "" {
		notifier, err := alerting.NewNotifier(ctx, cfg.Alerting.Region, cfg.Alerting.TopicARN, log)
		if err != nil {
			zapLog.Fatal("sns notifier init failed", zap.Error(err))
		}
		engine.WithAlerts(notifier)
		zapLog.Info("SNS alerting enabled", zap.String("topic", cfg.Alerting.TopicARN))
	}

	// --- HTTP Server ---
	server := api.NewServer(engine, fallbackSvc, log)
	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: server.Handler(),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Route optimizer stopped gracefully")
}
