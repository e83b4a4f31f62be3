package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/combine/internal/adapters/repository"
	"github.com/okian/combine/internal/domain/model"
	"github.com/okian/combine/internal/domain/timing"
	"github.com/okian/combine/internal/domain/training"
	"github.com/okian/combine/internal/domain/types"
	"github.com/okian/combine/pkg/metrics"
)

// AthleteView is an athlete's history with the report of the latest result.
type AthleteView struct {
	Session model.Session `json:"session"`
	Latest  Report        `json:"latest"`
}

// Athlete returns the athlete's session or ErrNotFound.
func (s *Service) Athlete(ctx context.Context, athleteID string) (AthleteView, error) {
	session, err := s.store.Session(ctx, athleteID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return AthleteView{}, fmt.Errorf("%w: %s", ErrNotFound, athleteID)
		}
		return AthleteView{}, err
	}
	latest, err := buildReport(session.Latest(), session)
	if err != nil {
		return AthleteView{}, err
	}
	return AthleteView{Session: session, Latest: latest}, nil
}

// Squad ranks athletes by their latest result. limit must be positive and
// is capped at the configured maximum.
func (s *Service) Squad(ctx context.Context, limit int) ([]model.SquadEntry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}
	if limit > s.maxSquadLimit {
		limit = s.maxSquadLimit
	}
	return s.store.Squad(ctx, limit)
}

// TestInfo describes one test for form builders.
type TestInfo struct {
	ID            types.TestID    `json:"id"`
	Label         string          `json:"label"`
	ChartLabel    string          `json:"chart_label"`
	Unit          string          `json:"unit"`
	LowerIsBetter bool            `json:"lower_is_better"`
	Dimension     types.Dimension `json:"dimension"`
}

// Options lists the values a submission may use.
type Options struct {
	Genders      []types.Gender   `json:"genders"`
	AgeGroups    []types.AgeGroup `json:"age_groups"`
	Sports       []string         `json:"sports"`
	DefaultSport string           `json:"default_sport"`
	Tests        []TestInfo       `json:"tests"`
	TestLabels   []string         `json:"test_labels"`
	ChartLabels  []string         `json:"chart_labels"`
}

// Options returns the enumerations accepted by Assess.
func (s *Service) Options() Options {
	tests := make([]TestInfo, 0, types.TestCount)
	for _, t := range types.Tests {
		tests = append(tests, TestInfo{
			ID:            t.ID,
			Label:         t.Label,
			ChartLabel:    t.ChartLabel,
			Unit:          t.Unit,
			LowerIsBetter: t.LowerIsBetter,
			Dimension:     t.Dimension,
		})
	}
	return Options{
		Genders:      types.Genders(),
		AgeGroups:    types.AgeGroups(),
		Sports:       training.Sports(),
		DefaultSport: s.defaultSport,
		Tests:        tests,
		TestLabels:   types.TestLabels(),
		ChartLabels:  types.ChartLabels(),
	}
}

// ParsedTime is a parsed 1km time.
type ParsedTime struct {
	Minutes float64 `json:"minutes"`
	Display string  `json:"display"`
}

// ParseTime parses a 1km time entered as mm:ss, mm.ss or whole minutes.
// Failures wrap both ErrInvalidSubmission and timing.ErrInvalidTime.
func (s *Service) ParseTime(text string) (ParsedTime, error) {
	m, err := timing.ParseMinutes(text)
	if err != nil {
		metrics.RecordParseFailure()
		return ParsedTime{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}
	return ParsedTime{Minutes: m, Display: timing.FormatMMSS(m)}, nil
}
