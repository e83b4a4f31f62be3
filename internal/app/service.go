// Package service wires scoring, sessions and batch intake together and
// implements the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/combine/internal/adapters/mq/queue"
	"github.com/okian/combine/internal/adapters/mq/worker"
	"github.com/okian/combine/internal/adapters/repository"
	"github.com/okian/combine/internal/domain/dedupe"
	"github.com/okian/combine/internal/domain/training"
	"github.com/okian/combine/pkg/logger"
	"github.com/okian/combine/pkg/metrics"
)

const (
	defaultQueueSize     = 10_000
	defaultDedupeSize    = 100_000
	defaultMaxBatchSize  = 500
	defaultMaxSquadLimit = 100
)

// Service assesses submissions and keeps athlete sessions.
type Service struct {
	mu sync.RWMutex

	store   repository.Store
	deduper dedupe.Deduper
	queue   queue.Queue
	pool    *worker.Pool

	workerCount   int
	queueSize     int
	dedupeSize    int
	maxBatchSize  int
	maxSquadLimit int
	defaultSport  string
	snapshotPath  string

	now   func() time.Time
	newID func() string

	started bool
	logger  logger.Logger
}

// New constructs a Service. The store is usable immediately for synchronous
// assessments; batch intake needs Start.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:   runtime.NumCPU() * 2,
		queueSize:     defaultQueueSize,
		dedupeSize:    defaultDedupeSize,
		maxBatchSize:  defaultMaxBatchSize,
		maxSquadLimit: defaultMaxSquadLimit,
		defaultSport:  training.FallbackSport,
		now:           time.Now,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	return s
}

// Start restores the snapshot, if configured, and launches the batch workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.snapshotPath != "" {
		n, err := repository.LoadFile(ctx, s.store, s.snapshotPath)
		if err != nil {
			return err
		}
		s.logger.Info(ctx, "sessions restored",
			logger.String("path", s.snapshotPath),
			logger.Int("athletes", n),
		)
	}

	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, s)
	s.pool.Start(context.WithoutCancel(ctx))

	s.started = true
	s.logger.Info(ctx, "combine service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop drains queued submissions and writes the snapshot, if configured.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping combine service...")

	var firstErr error
	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Error(ctx, "worker pool shutdown failed", logger.Error(err))
		firstErr = err
	}

	if s.snapshotPath != "" {
		n, err := repository.SaveFile(ctx, s.store, s.snapshotPath)
		if err != nil {
			s.logger.Error(ctx, "snapshot save failed", logger.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		} else {
			s.logger.Info(ctx, "sessions saved",
				logger.String("path", s.snapshotPath),
				logger.Int("athletes", n),
			)
		}
	}

	s.started = false
	s.logger.Info(ctx, "combine service stopped")
	return firstErr
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	athletes := s.store.Count(ctx)
	stats := map[string]any{
		"started":       s.started,
		"workerCount":   s.workerCount,
		"queueSize":     s.queueSize,
		"dedupeSize":    s.dedupeSize,
		"maxBatchSize":  s.maxBatchSize,
		"athletes":      athletes,
		"seenSubmitted": s.deduper.Size(),
	}

	if s.started {
		processed, failed := s.pool.Stats()
		stats["queueLength"] = s.queue.Len(ctx)
		stats["processed"] = processed
		stats["failed"] = failed
	}
	metrics.UpdateAthletesTracked(athletes)
	return stats
}
