// Package worker runs queued submissions through the assessment pipeline.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/combine/internal/domain/model"
	"github.com/okian/combine/pkg/logger"
	"github.com/okian/combine/pkg/metrics"
)

const (
	defaultWorkerCount  = 4
	poolShutdownTimeout = 30 * time.Second
)

// Processor assesses and stores one submission.
type Processor interface {
	Process(ctx context.Context, s model.Submission) error
}

// Queue is the consumer side of the submission queue.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.Submission
}

// InMemoryWorker reads submissions from a Queue and hands them to a Processor.
type InMemoryWorker struct {
	queue     Queue
	processor Processor
	name      string
	logger    logger.Logger

	processed atomic.Int64
	failed    atomic.Int64

	done chan struct{}
}

// NewInMemoryWorker creates a worker.
func NewInMemoryWorker(q Queue, p Processor, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     q,
		processor: p,
		name:      "worker",
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run consumes until the queue channel closes or ctx is cancelled.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	for s := range w.queue.Dequeue(ctx) {
		w.process(ctx, s)
	}
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} {
	return w.done
}

// Stats returns processed and failed counts.
func (w *InMemoryWorker) Stats() (processed, failed int64) {
	return w.processed.Load(), w.failed.Load()
}

func (w *InMemoryWorker) process(ctx context.Context, s model.Submission) { //nolint:gocritic // hugeParam: received by value from the channel
	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	if err := w.processor.Process(ctx, s); err != nil {
		w.failed.Add(1)
		metrics.RecordWorkerError()
		w.logger.Warn(ctx, "submission rejected",
			logger.String("submission_id", s.ID),
			logger.String("athlete_id", s.AthleteID),
			logger.Error(err),
		)
		return
	}
	w.processed.Add(1)
	w.logger.Debug(ctx, "submission assessed",
		logger.String("submission_id", s.ID),
		logger.String("athlete_id", s.AthleteID),
	)
}

// Pool runs a fixed set of workers over one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger

	startOnce sync.Once
}

// NewPool creates count workers; count < 1 falls back to a small default.
func NewPool(count int, q Queue, p Processor) *Pool {
	if count < 1 {
		count = defaultWorkerCount
	}
	pool := &Pool{
		workers: make([]*InMemoryWorker, count),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range pool.workers {
		pool.workers[i] = NewInMemoryWorker(q, p, WithName("worker-"+strconv.Itoa(i)))
	}
	return pool
}

// Start launches every worker once.
func (p *Pool) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		for _, w := range p.workers {
			go w.Run(ctx)
		}
		metrics.UpdateWorkerCount(len(p.workers))
		p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
	})
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Stats sums processed and failed counts across workers.
func (p *Pool) Stats() (processed, failed int64) {
	for _, w := range p.workers {
		pr, f := w.Stats()
		processed += pr
		failed += f
	}
	return processed, failed
}

// Shutdown closes the queue, lets workers drain what is left, and waits
// until they exit or ctx expires.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.Done():
		case <-waitCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			return fmt.Errorf("worker pool shutdown: %w", waitCtx.Err())
		}
	}
	metrics.UpdateWorkerCount(0)
	return nil
}
