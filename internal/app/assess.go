package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/okian/combine/internal/adapters/repository"
	"github.com/okian/combine/internal/domain/model"
	"github.com/okian/combine/internal/domain/scoring"
	"github.com/okian/combine/internal/domain/timing"
	"github.com/okian/combine/internal/domain/training"
	"github.com/okian/combine/internal/domain/types"
	"github.com/okian/combine/pkg/logger"
	"github.com/okian/combine/pkg/metrics"
)

// TestScore is one scored test as shown to a coach.
type TestScore struct {
	Test       types.TestID `json:"test"`
	Label      string       `json:"label"`
	Unit       string       `json:"unit"`
	Value      float64      `json:"value"`
	Display    string       `json:"display"`
	Score      types.Score  `json:"score"`
	Category   string       `json:"category"`
	Percentile string       `json:"percentile"`
}

// Report is the full outcome of one assessment.
type Report struct {
	Assessment     model.Assessment        `json:"assessment"`
	Tests          []TestScore             `json:"tests"`
	Summary        scoring.Summary         `json:"summary"`
	Comparison     []scoring.Measurement   `json:"comparison"`
	Recommendation training.Recommendation `json:"recommendation"`
	Strengths      []string                `json:"strengths"`
	Progress       []scoring.Change        `json:"progress,omitempty"`
}

// Assess validates, scores and stores one submission synchronously.
// A retest that names no sport keeps the sport of the athlete's baseline.
func (s *Service) Assess(ctx context.Context, sub model.Submission) (Report, error) { //nolint:gocritic // hugeParam: submissions are passed by value end to end
	start := time.Now()

	if id := strings.TrimSpace(sub.AthleteID); strings.TrimSpace(sub.Sport) == "" && id != "" {
		if kind, err := model.ParseKind(sub.Kind); err == nil && kind == model.KindRetest {
			if sess, err := s.store.Session(ctx, id); err == nil {
				sub.Sport = sess.Baseline.Sport
			}
		}
	}

	a, err := s.validate(sub)
	if err != nil {
		metrics.RecordAssessmentError(errorReason(err))
		return Report{}, err
	}

	res, err := scoring.Calculate(a.Gender, a.AgeGroup, a.Result.Raw)
	if err != nil {
		metrics.RecordAssessmentError("invalid")
		return Report{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}
	a.Result = res

	var session model.Session
	switch a.Kind {
	case model.KindRetest:
		session, err = s.store.AppendRetest(ctx, a)
	default:
		session, err = s.store.SaveBaseline(ctx, a)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNoBaseline) {
			err = fmt.Errorf("%w: %w", ErrNoBaseline, err)
		}
		metrics.RecordAssessmentError(errorReason(err))
		return Report{}, err
	}

	report, err := buildReport(a, session)
	if err != nil {
		return Report{}, err
	}

	metrics.RecordAssessment(string(a.Kind))
	for _, t := range report.Tests {
		metrics.RecordScore(string(t.Test), t.Category)
	}
	metrics.RecordRecommendation(report.Recommendation.Sport, report.Recommendation.Primary.Name)
	metrics.RecordScoringLatency(float64(time.Since(start).Microseconds()) / 1000)

	s.logger.Debug(ctx, "assessment stored",
		logger.String("athlete_id", a.AthleteID),
		logger.String("kind", string(a.Kind)),
		logger.Int("total", res.Total()),
	)
	return report, nil
}

// Process implements worker.Processor for queued batch submissions.
func (s *Service) Process(ctx context.Context, sub model.Submission) error { //nolint:gocritic // hugeParam: matches worker.Processor
	_, err := s.Assess(ctx, sub)
	return err
}

// buildReport renders a against the athlete's session. Progress is filled
// only for a retest.
func buildReport(a model.Assessment, session model.Session) (Report, error) { //nolint:gocritic // hugeParam: read-only
	comparison, err := scoring.CompareToStandard(a.Gender, a.AgeGroup, a.Result.Raw)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}

	tests := make([]TestScore, 0, types.TestCount)
	for i, t := range types.Tests {
		v := a.Result.Raw.Value(t.ID)
		score := a.Result.Scores[i]
		tests = append(tests, TestScore{
			Test:       t.ID,
			Label:      t.Label,
			Unit:       t.Unit,
			Value:      v,
			Display:    displayValue(t, v),
			Score:      score,
			Category:   score.String(),
			Percentile: score.Percentile(),
		})
	}

	rec := training.Recommend(a.Result.Scores, a.Sport)
	report := Report{
		Assessment:     a,
		Tests:          tests,
		Summary:        scoring.Summarize(a.Result),
		Comparison:     comparison,
		Recommendation: rec,
		Strengths:      rec.StrengthsMessage(),
	}
	if a.Kind == model.KindRetest {
		report.Progress = scoring.Progress(session.Baseline.Result, a.Result)
	}
	return report, nil
}

func displayValue(t types.Test, v float64) string {
	if t.ID == types.Endurance {
		return timing.FormatMMSS(v)
	}
	return fmt.Sprintf("%g %s", v, t.Unit)
}

// errorReason labels assessment failures for metrics.
func errorReason(err error) string {
	switch {
	case errors.Is(err, ErrIncompleteInputs):
		return "incomplete"
	case errors.Is(err, ErrNoBaseline):
		return "no_baseline"
	case errors.Is(err, ErrInvalidSubmission):
		return "invalid"
	default:
		return "internal"
	}
}
