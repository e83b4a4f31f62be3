// Package model contains domain records passed between layers.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/combine/internal/domain/types"
)

// Kind tells whether an assessment starts a new history or extends one.
type Kind string

const (
	KindBaseline Kind = "baseline"
	KindRetest   Kind = "retest"
)

// ParseKind accepts baseline or retest; empty means baseline.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindBaseline:
		return KindBaseline, nil
	case KindRetest:
		return KindRetest, nil
	}
	return "", fmt.Errorf("%w: kind %q", types.ErrUnknownValue, s)
}

// Submission is an assessment as entered, before validation. Numeric
// fields are pointers so a missing value is distinguishable from zero.
type Submission struct {
	ID          string    `json:"submission_id,omitempty"`
	AthleteID   string    `json:"athlete_id,omitempty"`
	Name        string    `json:"name,omitempty"`
	Kind        string    `json:"kind,omitempty"`
	Gender      string    `json:"gender"`
	AgeGroup    string    `json:"age_group"`
	Sport       string    `json:"sport,omitempty"`
	Sprint      *float64  `json:"sprint"`
	Vertical    *float64  `json:"vertical"`
	Broad       *float64  `json:"broad"`
	Strength    *float64  `json:"strength"`
	Endurance   string    `json:"endurance"`
	SubmittedAt time.Time `json:"submitted_at,omitzero"`
}

// Assessment is a validated, scored submission.
type Assessment struct {
	SubmissionID string            `json:"submission_id" msgpack:"submission_id"`
	AthleteID    string            `json:"athlete_id" msgpack:"athlete_id"`
	Name         string            `json:"name,omitempty" msgpack:"name"`
	Kind         Kind              `json:"kind" msgpack:"kind"`
	Gender       types.Gender      `json:"gender" msgpack:"gender"`
	AgeGroup     types.AgeGroup    `json:"age_group" msgpack:"age_group"`
	Sport        string            `json:"sport" msgpack:"sport"`
	Result       types.ScoreResult `json:"result" msgpack:"result"`
	AssessedAt   time.Time         `json:"assessed_at" msgpack:"assessed_at"`
}

// Session is one athlete's history: a baseline and any retests after it.
type Session struct {
	AthleteID string       `json:"athlete_id" msgpack:"athlete_id"`
	Name      string       `json:"name,omitempty" msgpack:"name"`
	Baseline  Assessment   `json:"baseline" msgpack:"baseline"`
	Retests   []Assessment `json:"retests" msgpack:"retests"`
}

// Latest returns the newest retest, or the baseline when there is none.
func (s Session) Latest() Assessment {
	if n := len(s.Retests); n > 0 {
		return s.Retests[n-1]
	}
	return s.Baseline
}

// SquadEntry is one row of the squad ranking.
type SquadEntry struct {
	Rank      int                          `json:"rank"`
	AthleteID string                       `json:"athlete_id"`
	Name      string                       `json:"name,omitempty"`
	Sport     string                       `json:"sport"`
	Kind      Kind                         `json:"kind"`
	Total     int                          `json:"total"`
	Greens    int                          `json:"greens"`
	Scores    [types.TestCount]types.Score `json:"scores"`
}
