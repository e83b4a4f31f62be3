package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okian/combine/internal/adapters/mq/queue"
	"github.com/okian/combine/internal/adapters/mq/worker"
	"github.com/okian/combine/internal/domain/model"
	logging "github.com/okian/combine/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

type mockProcessor struct {
	mu     sync.Mutex
	seen   []string
	failOn map[string]error
	delay  time.Duration
}

func newMockProcessor() *mockProcessor {
	return &mockProcessor{failOn: make(map[string]error)}
}

func (m *mockProcessor) Process(_ context.Context, s model.Submission) error { //nolint:gocritic // hugeParam: matches Processor
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failOn[s.ID]; ok {
		return err
	}
	m.seen = append(m.seen, s.ID)
	return nil
}

func (m *mockProcessor) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.seen)
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a worker on a queue", t, func() {
		_ = logging.Init()
		q := queue.NewInMemoryQueue(queue.WithCapacity(10))
		p := newMockProcessor()
		w := worker.NewInMemoryWorker(q, p, worker.WithName("test-worker"))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Run(ctx)

		convey.Convey("When submissions are queued", func() {
			_ = q.Enqueue(ctx, model.Submission{ID: "s1"})
			_ = q.Enqueue(ctx, model.Submission{ID: "s2"})

			convey.Convey("Then each should be processed once", func() {
				convey.So(waitFor(func() bool { return p.count() == 2 }), convey.ShouldBeTrue)
				processed, failed := w.Stats()
				convey.So(processed, convey.ShouldEqual, 2)
				convey.So(failed, convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When processing fails", func() {
			p.failOn["bad"] = errors.New("no baseline")
			_ = q.Enqueue(ctx, model.Submission{ID: "bad"})
			_ = q.Enqueue(ctx, model.Submission{ID: "good"})

			convey.Convey("Then the worker should count the failure and keep going", func() {
				convey.So(waitFor(func() bool { return p.count() == 1 }), convey.ShouldBeTrue)
				convey.So(waitFor(func() bool { _, f := w.Stats(); return f == 1 }), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the context is cancelled", func() {
			cancel()

			convey.Convey("Then Run should return", func() {
				stopped := false
				select {
				case <-w.Done():
					stopped = true
				case <-time.After(time.Second):
				}
				convey.So(stopped, convey.ShouldBeTrue)
			})
		})
	})
}

func TestWorkerPool(t *testing.T) {
	convey.Convey("Given a pool of three workers", t, func() {
		_ = logging.Init()
		q := queue.NewInMemoryQueue(queue.WithCapacity(100))
		p := newMockProcessor()
		p.delay = time.Millisecond
		pool := worker.NewPool(3, q, p)
		convey.So(pool.Size(), convey.ShouldEqual, 3)

		ctx := context.Background()
		pool.Start(ctx)
		pool.Start(ctx)
		defer func() { _ = pool.Shutdown(ctx) }()

		convey.Convey("When submissions are queued and the pool shuts down", func() {
			for i := 0; i < 30; i++ {
				convey.So(q.Enqueue(ctx, model.Submission{ID: string(rune('A' + i))}), convey.ShouldBeNil)
			}
			err := pool.Shutdown(ctx)

			convey.Convey("Then everything queued should be drained first", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(p.count(), convey.ShouldEqual, 30)
				processed, failed := pool.Stats()
				convey.So(processed, convey.ShouldEqual, 30)
				convey.So(failed, convey.ShouldEqual, 0)
				convey.So(q.IsClosed(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the pool is created with no workers", func() {
			small := worker.NewPool(0, queue.NewInMemoryQueue(), p)
			convey.So(small.Size(), convey.ShouldBeGreaterThan, 0)
		})
	})
}
