package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/combine/internal/domain/model"
	"github.com/okian/combine/internal/domain/timing"
	"github.com/okian/combine/internal/domain/training"
	"github.com/okian/combine/internal/domain/types"
	"github.com/okian/combine/pkg/metrics"
)

// validate turns a raw submission into an unscored assessment. Missing ids
// and timestamps are filled in.
func (s *Service) validate(sub model.Submission) (model.Assessment, error) { //nolint:gocritic // hugeParam: submissions are passed by value end to end
	kind, err := model.ParseKind(sub.Kind)
	if err != nil {
		return model.Assessment{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}
	gender, err := types.ParseGender(sub.Gender)
	if err != nil {
		return model.Assessment{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}
	ageGroup, err := types.ParseAgeGroup(sub.AgeGroup)
	if err != nil {
		return model.Assessment{}, fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}

	raw, err := rawInputs(sub)
	if err != nil {
		return model.Assessment{}, err
	}

	athleteID := strings.TrimSpace(sub.AthleteID)
	if athleteID == "" {
		if kind == model.KindRetest {
			return model.Assessment{}, ErrNoBaseline
		}
		athleteID = s.newID()
	}
	submissionID := strings.TrimSpace(sub.ID)
	if submissionID == "" {
		submissionID = s.newID()
	}

	sport := strings.TrimSpace(sub.Sport)
	if sport == "" {
		sport = s.defaultSport
	}
	sport, _ = training.ProfileFor(sport)

	at := sub.SubmittedAt
	if at.IsZero() {
		at = s.now()
	}

	return model.Assessment{
		SubmissionID: submissionID,
		AthleteID:    athleteID,
		Name:         strings.TrimSpace(sub.Name),
		Kind:         kind,
		Gender:       gender,
		AgeGroup:     ageGroup,
		Sport:        sport,
		Result:       types.ScoreResult{Raw: raw},
		AssessedAt:   at.UTC(),
	}, nil
}

func rawInputs(sub model.Submission) (types.RawInputs, error) { //nolint:gocritic // hugeParam: read-only
	fields := []struct {
		name  string
		value *float64
	}{
		{"sprint", sub.Sprint},
		{"vertical", sub.Vertical},
		{"broad", sub.Broad},
		{"strength", sub.Strength},
	}
	for _, f := range fields {
		if f.value == nil || math.IsNaN(*f.value) || math.IsInf(*f.value, 0) {
			return types.RawInputs{}, fmt.Errorf("%w: %s", ErrIncompleteInputs, f.name)
		}
	}

	endurance, err := timing.ParseMinutes(sub.Endurance)
	if err != nil {
		metrics.RecordParseFailure()
		return types.RawInputs{}, fmt.Errorf("%w: endurance: %w", ErrIncompleteInputs, err)
	}

	return types.RawInputs{
		SprintSeconds:    *sub.Sprint,
		VerticalCm:       *sub.Vertical,
		BroadCm:          *sub.Broad,
		StrengthReps:     *sub.Strength,
		EnduranceMinutes: endurance,
	}, nil
}
