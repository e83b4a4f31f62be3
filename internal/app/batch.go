package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/combine/internal/adapters/mq/queue"
	"github.com/okian/combine/internal/domain/model"
	"github.com/okian/combine/pkg/logger"
	"github.com/okian/combine/pkg/metrics"
)

// Batch item statuses.
const (
	StatusAccepted  = "accepted"
	StatusDuplicate = "duplicate"
	StatusInvalid   = "invalid"
	StatusRejected  = "rejected"
)

// BatchItem reports what happened to one submission of a batch.
type BatchItem struct {
	SubmissionID string `json:"submission_id"`
	AthleteID    string `json:"athlete_id,omitempty"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
}

// BatchResult summarises a batch request.
type BatchResult struct {
	Accepted   int         `json:"accepted"`
	Duplicates int         `json:"duplicates"`
	Invalid    int         `json:"invalid"`
	Rejected   int         `json:"rejected"`
	Items      []BatchItem `json:"items"`
}

// SubmitBatch validates each submission, drops repeated submission ids and
// queues the rest for the workers. Items are assessed asynchronously and in
// no particular order. When the queue fills up, the remaining items are
// rejected, forgotten by the deduper so they can be resent, and
// ErrBackpressure is returned together with the partial result.
func (s *Service) SubmitBatch(ctx context.Context, subs []model.Submission) (BatchResult, error) {
	if len(subs) == 0 {
		return BatchResult{}, ErrEmptyBatch
	}
	if len(subs) > s.maxBatchSize {
		return BatchResult{}, fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, len(subs), s.maxBatchSize)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return BatchResult{}, ErrNotStarted
	}

	metrics.RecordBatchSubmission()
	res := BatchResult{Items: make([]BatchItem, 0, len(subs))}
	full := false
	for _, sub := range subs {
		a, err := s.validate(sub)
		if err != nil {
			res.Invalid++
			res.Items = append(res.Items, BatchItem{
				SubmissionID: sub.ID,
				AthleteID:    sub.AthleteID,
				Status:       StatusInvalid,
				Error:        err.Error(),
			})
			continue
		}

		item := BatchItem{SubmissionID: a.SubmissionID, AthleteID: a.AthleteID}
		if full {
			res.Rejected++
			item.Status = StatusRejected
			item.Error = ErrBackpressure.Error()
			res.Items = append(res.Items, item)
			continue
		}

		if s.deduper.SeenAndRecord(ctx, a.SubmissionID) {
			metrics.RecordSubmissionDuplicate()
			res.Duplicates++
			item.Status = StatusDuplicate
			res.Items = append(res.Items, item)
			continue
		}

		sub.ID = a.SubmissionID
		sub.AthleteID = a.AthleteID
		sub.SubmittedAt = a.AssessedAt
		if err := s.queue.Enqueue(ctx, sub); err != nil {
			s.deduper.Unrecord(ctx, a.SubmissionID)
			if !errors.Is(err, queue.ErrFull) {
				return res, err
			}
			full = true
			res.Rejected++
			item.Status = StatusRejected
			item.Error = ErrBackpressure.Error()
			res.Items = append(res.Items, item)
			continue
		}
		res.Accepted++
		item.Status = StatusAccepted
		res.Items = append(res.Items, item)
	}

	s.logger.Debug(ctx, "batch queued",
		logger.Int("accepted", res.Accepted),
		logger.Int("duplicates", res.Duplicates),
		logger.Int("invalid", res.Invalid),
		logger.Int("rejected", res.Rejected),
	)
	if full {
		s.logger.Warn(ctx, "submission queue full", logger.Int("rejected", res.Rejected))
		return res, ErrBackpressure
	}
	return res, nil
}
