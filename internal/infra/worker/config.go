// Package worker provides the operational shell of the digest worker:
// fail-open configuration loading, health endpoints (HTTP and gRPC) and
// Prometheus metrics for job runs.
package worker

import (
	"fmt"
	"log/slog"
	"time"

	"bookshelf/internal/pkg/config"
)

// Config controls the digest worker: when the digest runs, in which
// timezone, how long a run may take, and where the health server listens.
//
// All fields have defaults and the environment loader is fail-open, so
// the worker always starts with a valid configuration even when the
// environment is broken. Invalid values log a warning and fall back.
type Config struct {
	// DigestSchedule is the cron expression driving digest runs.
	// Default: "0 8 * * *" (every day at 08:00).
	DigestSchedule string

	// Timezone is the IANA timezone the schedule is evaluated in.
	// Default: "UTC".
	Timezone string

	// DigestTimeout bounds one digest run. Default: 10 minutes.
	DigestTimeout time.Duration

	// HealthPort is the HTTP health server port. Default: 9091.
	HealthPort int

	// GRPCHealthPort is the gRPC health listener port. Default: 9092.
	GRPCHealthPort int

	// RunOnce runs a single digest immediately and exits instead of
	// scheduling. Default: false.
	RunOnce bool
}

// DefaultConfig returns the production defaults: a daily 08:00 UTC digest
// with a 10 minute timeout and health servers on 9091 (HTTP) and 9092
// (gRPC).
func DefaultConfig() Config {
	return Config{
		DigestSchedule: "0 8 * * *",
		Timezone:       "UTC",
		DigestTimeout:  10 * time.Minute,
		HealthPort:     9091,
		GRPCHealthPort: 9092,
		RunOnce:        false,
	}
}

// Validate reports every invalid field at once rather than stopping at the
// first.
func (c *Config) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.DigestSchedule); err != nil {
		errs = append(errs, fmt.Errorf("digest schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateDuration(c.DigestTimeout, time.Minute, 2*time.Hour); err != nil {
		errs = append(errs, fmt.Errorf("digest timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := config.ValidateIntRange(c.GRPCHealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("grpc health port: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadConfigFromEnv loads the worker configuration from the environment
// with a fail-open strategy: each invalid value logs a warning, increments
// the fallback metrics and reverts to its default. The returned
// configuration is always valid and the error is always nil.
//
// Environment variables:
//   - DIGEST_SCHEDULE: cron expression (default "0 8 * * *")
//   - WORKER_TZ: IANA timezone name (default "UTC")
//   - DIGEST_TIMEOUT: Go duration between 1m and 2h (default "10m")
//   - WORKER_HEALTH_PORT: 1024-65535 (default 9091)
//   - WORKER_GRPC_HEALTH_PORT: 1024-65535 (default 9092)
//   - RUN_ONCE: "true" to run one digest and exit (default false)
func LoadConfigFromEnv(logger *slog.Logger, metrics *Metrics) (*Config, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	apply := func(field string, result config.ConfigLoadResult) config.ConfigLoadResult {
		if result.FallbackApplied {
			fallbackApplied = true
			metrics.RecordValidationError(field)
			metrics.RecordFallback(field, "default")
			for _, warning := range result.Warnings {
				logger.Warn("configuration fallback applied",
					slog.String("field", field),
					slog.String("warning", warning))
			}
		}
		return result
	}

	result := apply("digest_schedule",
		config.LoadEnvWithFallback("DIGEST_SCHEDULE", cfg.DigestSchedule, config.ValidateCronSchedule))
	cfg.DigestSchedule = result.Value.(string)

	result = apply("timezone",
		config.LoadEnvWithFallback("WORKER_TZ", cfg.Timezone, config.ValidateTimezone))
	cfg.Timezone = result.Value.(string)

	result = apply("digest_timeout",
		config.LoadEnvDuration("DIGEST_TIMEOUT", cfg.DigestTimeout, func(d time.Duration) error {
			return config.ValidateDuration(d, time.Minute, 2*time.Hour)
		}))
	cfg.DigestTimeout = result.Value.(time.Duration)

	result = apply("health_port",
		config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
			return config.ValidateIntRange(v, 1024, 65535)
		}))
	cfg.HealthPort = result.Value.(int)

	result = apply("grpc_health_port",
		config.LoadEnvInt("WORKER_GRPC_HEALTH_PORT", cfg.GRPCHealthPort, func(v int) error {
			return config.ValidateIntRange(v, 1024, 65535)
		}))
	cfg.GRPCHealthPort = result.Value.(int)

	result = config.LoadEnvBool("RUN_ONCE", cfg.RunOnce)
	cfg.RunOnce = result.Value.(bool)

	metrics.SetFallbackActive("", fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
