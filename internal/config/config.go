// Package config defines process configuration and its loading order.
//
// Conventions:
// - New(ctx) returns a Config holding every default.
// - Load(ctx) layers an optional YAML file and PROSPECT_* env vars on top.
// - Validate rejects values the engine cannot run with.
package config

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/okian/prospect/internal/domain/offers"
	"github.com/okian/prospect/internal/domain/tables"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Model is the default model version when a request names none.
	Model string `koanf:"model"`

	// MOICTargets is the offer schedule, highest multiple first.
	MOICTargets []float64 `koanf:"moic_targets"`

	// EquityStakes are the stake percentages each offer is scaled to.
	EquityStakes []float64 `koanf:"equity_stakes"`

	// CORSAllowedOrigins feeds the API's CORS middleware.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// MaxBatchSize caps POST /v1/valuations/batch.
	MaxBatchSize int `koanf:"max_batch_size"`

	// WorkerCount is the number of goroutines running batch items.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds batch items waiting for a worker; overflow runs inline.
	QueueSize int `koanf:"queue_size"`

	// MetricsEnabled switches Prometheus recording on /metrics.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace prefixes every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
}

// New creates a Config with defaults. Context is accepted first to follow the
// project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		Model:              tables.DefaultVersion,
		MOICTargets:        slices.Clone(offers.DefaultMOICs),
		EquityStakes:       slices.Clone(offers.DefaultStakes),
		CORSAllowedOrigins: []string{"*"},
		MaxBatchSize:       100,
		WorkerCount:        runtime.NumCPU(),
		QueueSize:          1024,
		MetricsEnabled:     true,
		MetricsNamespace:   "prospect",
	}
}

// Validate reports the first value the service cannot start with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q must be text or json", ErrInvalidConfig, c.LogFormat)
	}
	if _, err := tables.Builtin().Get(c.Model); err != nil {
		return fmt.Errorf("%w: model: %v", ErrInvalidConfig, err)
	}
	if len(c.MOICTargets) == 0 {
		return fmt.Errorf("%w: moic_targets must not be empty", ErrInvalidConfig)
	}
	for _, m := range c.MOICTargets {
		if !(m > 0) {
			return fmt.Errorf("%w: moic target %v must be positive", ErrInvalidConfig, m)
		}
	}
	if len(c.EquityStakes) == 0 {
		return fmt.Errorf("%w: equity_stakes must not be empty", ErrInvalidConfig)
	}
	for _, s := range c.EquityStakes {
		if !(s > 0) || s > 100 {
			return fmt.Errorf("%w: equity stake %v must be in (0, 100]", ErrInvalidConfig, s)
		}
	}
	if c.MaxBatchSize <= 0 {
		return fmt.Errorf("%w: max_batch_size must be positive", ErrInvalidConfig)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	}
	if c.MetricsNamespace == "" {
		return fmt.Errorf("%w: metrics_namespace must not be empty", ErrInvalidConfig)
	}
	return nil
}
