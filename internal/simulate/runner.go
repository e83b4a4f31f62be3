package simulate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	service "github.com/okian/combine/internal/app"
	"github.com/okian/combine/internal/domain/model"
	"github.com/okian/combine/pkg/logger"
)

// ErrNotSettled is returned when the server does not finish a phase in time.
var ErrNotSettled = errors.New("submissions not processed in time")

const retryBackoff = 50 * time.Millisecond

// Tally counts batch outcomes for one phase.
type Tally struct {
	Sent       int
	Accepted   int
	Duplicates int
	Invalid    int
	Retries    int
}

func (t *Tally) add(res service.BatchResult) { //nolint:gocritic // hugeParam: read-only
	t.Accepted += res.Accepted
	t.Duplicates += res.Duplicates
	t.Invalid += res.Invalid
}

// Result is the outcome of a run.
type Result struct {
	Athletes []Athlete
	Baseline Tally
	Retest   Tally
	Squad    []model.SquadEntry
	Duration time.Duration
}

// Run generates a squad, submits baselines, waits for the server to assess
// them, submits retests, waits again and fetches the squad ranking.
// Retests go out only after every baseline is processed, since the batch
// workers give no ordering.
func Run(ctx context.Context, cfg Config) (Result, error) { //nolint:gocritic // hugeParam: read-only
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	start := time.Now()
	log := logger.Get().Named("simulate")
	client := NewClient(cfg.BaseURL, cfg.Timeout)

	if err := client.Health(ctx); err != nil {
		return Result{}, fmt.Errorf("service health check failed: %w", err)
	}

	gen := NewGenerator(cfg.Seed)
	res := Result{Athletes: gen.Squad(cfg.Athletes)}

	baselines := make([]model.Submission, len(res.Athletes))
	retests := make([]model.Submission, len(res.Athletes))
	for i, a := range res.Athletes {
		baselines[i] = gen.Baseline(a)
		retests[i] = gen.Retest(a)
	}

	phases := []struct {
		name  string
		subs  []model.Submission
		tally *Tally
	}{
		{"baseline", baselines, &res.Baseline},
		{"retest", retests, &res.Retest},
	}
	for _, p := range phases {
		before, err := handled(ctx, client)
		if err != nil {
			return res, err
		}
		log.Info(ctx, "submitting phase", logger.String("phase", p.name), logger.Int("submissions", len(p.subs)))
		if err := submit(ctx, client, cfg, p.subs, p.tally); err != nil {
			return res, fmt.Errorf("%s: %w", p.name, err)
		}
		if err := settle(ctx, client, cfg, before+int64(p.tally.Accepted)); err != nil {
			return res, fmt.Errorf("%s: %w", p.name, err)
		}
	}

	squad, err := client.Squad(ctx, cfg.Top)
	if err != nil {
		return res, err
	}
	res.Squad = squad
	if err := VerifySquad(squad); err != nil {
		return res, err
	}
	res.Duration = time.Since(start)
	log.Info(ctx, "simulation finished",
		logger.Int("athletes", len(res.Athletes)),
		logger.Duration("duration", res.Duration),
	)
	return res, nil
}

// submit posts subs in chunks, cfg.Workers at a time. Items rejected on
// backpressure are resent after a short pause.
func submit(ctx context.Context, client *Client, cfg Config, subs []model.Submission, tally *Tally) error { //nolint:gocritic // hugeParam: read-only
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for lo := 0; lo < len(subs); lo += cfg.BatchSize {
		chunk := subs[lo:min(lo+cfg.BatchSize, len(subs))]
		g.Go(func() error {
			pending := chunk
			for len(pending) > 0 {
				res, full, err := client.PostBatch(gctx, pending)
				if err != nil {
					return err
				}

				mu.Lock()
				tally.Sent += len(pending)
				tally.add(res)
				if full {
					tally.Retries++
				}
				mu.Unlock()

				if !full {
					return nil
				}
				pending = rejected(pending, res)
				select {
				case <-gctx.Done():
					return gctx.Err()
				case <-time.After(retryBackoff):
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// rejected picks the submissions the server refused on backpressure.
// Items are reported in request order.
func rejected(sent []model.Submission, res service.BatchResult) []model.Submission { //nolint:gocritic // hugeParam: read-only
	var out []model.Submission
	for i, item := range res.Items {
		if item.Status == service.StatusRejected && i < len(sent) {
			out = append(out, sent[i])
		}
	}
	return out
}

// handled returns processed plus failed submissions from the server stats.
func handled(ctx context.Context, client *Client) (int64, error) {
	stats, err := client.Stats(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, k := range []string{"processed", "failed"} {
		if v, ok := stats[k].(float64); ok {
			n += int64(v)
		}
	}
	return n, nil
}

// settle polls until the server has handled at least target submissions.
func settle(ctx context.Context, client *Client, cfg Config, target int64) error { //nolint:gocritic // hugeParam: read-only
	ctx, cancel := context.WithTimeout(ctx, cfg.Settle)
	defer cancel()

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()
	for {
		n, err := handled(ctx, client)
		if err != nil {
			return err
		}
		if n >= target {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %d of %d", ErrNotSettled, n, target)
		case <-ticker.C:
		}
	}
}
