// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Provider  ProviderConfig  `mapstructure:"provider"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Optimizer OptimizerConfig `mapstructure:"optimizer"`
	Corridors []CorridorSeed  `mapstructure:"corridors"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Alerting  AlertingConfig  `mapstructure:"alerting"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// ProviderConfig configures the upstream distance/time provider adapter.
type ProviderConfig struct {
	Name       string `mapstructure:"name"`
	BaseURL    string `mapstructure:"base_url"`
	Profile    string `mapstructure:"profile"`
	APIKey     string `mapstructure:"api_key"`
	Timeout    int    `mapstructure:"timeout"`     // milliseconds
	MaxRetries int    `mapstructure:"max_retries"` // transient failures only
}

// CacheConfig configures the fallback route cache.
// Backend is "memory" or "redis".
type CacheConfig struct {
	Backend       string      `mapstructure:"backend"`
	TTL           int         `mapstructure:"ttl"`            // milliseconds
	SweepInterval int         `mapstructure:"sweep_interval"` // milliseconds
	Preload       bool        `mapstructure:"preload"`
	Redis         RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// OptimizerConfig holds engine-level settings.
type OptimizerConfig struct {
	BatchConcurrency int `mapstructure:"batch_concurrency"`
}

// CorridorSeed is an operator-supplied long-haul city pair added to the
// built-in fallback corridor table.
type CorridorSeed struct {
	Name        string  `mapstructure:"name"`
	FromLat     float64 `mapstructure:"from_lat"`
	FromLon     float64 `mapstructure:"from_lon"`
	ToLat       float64 `mapstructure:"to_lat"`
	ToLon       float64 `mapstructure:"to_lon"`
	ShortestKm  float64 `mapstructure:"shortest_km"`
	EcoKm       float64 `mapstructure:"eco_km"`
	ToleranceKm float64 `mapstructure:"tolerance_km"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// AlertingConfig enables SNS notifications on provider availability
// transitions. Disabled when TopicARN is empty.
type AlertingConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Region   string `mapstructure:"region"`
	TopicARN string `mapstructure:"topic_arn"`
}

// TracingConfig enables jaeger-exported spans around engine operations.
// Disabled when CollectorURL is empty.
type TracingConfig struct {
	CollectorURL string `mapstructure:"collector_url"`
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
