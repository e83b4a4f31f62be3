// Package config defines service configuration and how it is loaded.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/okian/combine/internal/domain/training"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr is the HTTP listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// QueueSize bounds the batch submission queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of assessment workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize caps how many submission ids are remembered.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxBatchSize caps POST /v1/assessments/batch.
	MaxBatchSize int `koanf:"max_batch_size"`

	// MaxSquadLimit caps GET /v1/squad?limit.
	MaxSquadLimit int `koanf:"max_squad_limit"`

	// SnapshotPath enables msgpack persistence of athlete sessions when set.
	SnapshotPath string `koanf:"snapshot_path"`

	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	// DefaultSport is used when a submission names no sport.
	DefaultSport string `koanf:"default_sport"`
}

// New returns a Config populated with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9090",
		QueueSize:          10_000,
		WorkerCount:        runtime.NumCPU() * 2,
		DedupeSize:         100_000,
		MaxBatchSize:       500,
		MaxSquadLimit:      100,
		CORSAllowedOrigins: []string{"*"},
		DefaultSport:       training.FallbackSport,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.QueueSize)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	case c.DedupeSize <= 0:
		return fmt.Errorf("%w: dedupe_size must be positive, got %d", ErrInvalidConfig, c.DedupeSize)
	case c.MaxBatchSize <= 0:
		return fmt.Errorf("%w: max_batch_size must be positive, got %d", ErrInvalidConfig, c.MaxBatchSize)
	case c.MaxSquadLimit <= 0:
		return fmt.Errorf("%w: max_squad_limit must be positive, got %d", ErrInvalidConfig, c.MaxSquadLimit)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	if name, _ := training.ProfileFor(c.DefaultSport); name != c.DefaultSport {
		return fmt.Errorf("%w: default_sport %q has no profile", ErrInvalidConfig, c.DefaultSport)
	}
	return nil
}
