// Package simulate drives a running combine server with a generated squad:
// baseline batches, then retest batches, then the squad ranking.
package simulate

import (
	"errors"
	"time"
)

const (
	defaultAthletes     = 50
	defaultBatchSize    = 100
	defaultWorkers      = 4
	defaultTop          = 10
	defaultTimeout      = 10 * time.Second
	defaultPollInterval = 100 * time.Millisecond
	defaultSettle       = time.Minute
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid simulate config")

// Config controls one simulation run.
type Config struct {
	BaseURL      string        // server root, e.g. http://localhost:9090
	Athletes     int           // squad size
	BatchSize    int           // submissions per batch request
	Workers      int           // concurrent batch requests
	Top          int           // squad entries to fetch at the end
	Seed         uint64        // generator seed; equal seeds give equal squads
	Timeout      time.Duration // per HTTP request
	PollInterval time.Duration // stats polling while workers drain
	Settle       time.Duration // max wait for a phase to be processed
}

// DefaultConfig returns a small run against a local server.
func DefaultConfig() Config {
	return Config{
		BaseURL:      "http://localhost:9090",
		Athletes:     defaultAthletes,
		BatchSize:    defaultBatchSize,
		Workers:      defaultWorkers,
		Top:          defaultTop,
		Seed:         1,
		Timeout:      defaultTimeout,
		PollInterval: defaultPollInterval,
		Settle:       defaultSettle,
	}
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return errors.Join(ErrInvalidConfig, errors.New("base url is required"))
	case c.Athletes < 1:
		return errors.Join(ErrInvalidConfig, errors.New("athletes must be positive"))
	case c.BatchSize < 1:
		return errors.Join(ErrInvalidConfig, errors.New("batch size must be positive"))
	case c.Workers < 1:
		return errors.Join(ErrInvalidConfig, errors.New("workers must be positive"))
	case c.Top < 1:
		return errors.Join(ErrInvalidConfig, errors.New("top must be positive"))
	case c.PollInterval <= 0 || c.Settle <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("poll interval and settle must be positive"))
	}
	return nil
}
