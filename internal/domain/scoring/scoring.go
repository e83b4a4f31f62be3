// Package scoring maps raw test measurements to tiered scores against the
// benchmark table. Everything here is a pure function of its arguments.
package scoring

import (
	"fmt"

	"github.com/okian/combine/internal/domain/benchmark"
	"github.com/okian/combine/internal/domain/types"
)

// ScoreTest places value in a tier using the amber and green thresholds.
// A value equal to a threshold earns that tier. Values are not validated
// or clamped.
func ScoreTest(value, amber, green float64, lowerIsBetter bool) types.Score {
	if lowerIsBetter {
		switch {
		case value <= green:
			return types.Green
		case value <= amber:
			return types.Amber
		default:
			return types.Red
		}
	}
	switch {
	case value >= green:
		return types.Green
	case value >= amber:
		return types.Amber
	default:
		return types.Red
	}
}

// Calculate scores all five tests for the athlete profile. The error is
// only non-nil for a gender or age group outside the published options.
func Calculate(g types.Gender, a types.AgeGroup, raw types.RawInputs) (types.ScoreResult, error) {
	entry, err := benchmark.Lookup(g, a)
	if err != nil {
		return types.ScoreResult{}, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	res := types.ScoreResult{Raw: raw}
	for i, t := range types.Tests {
		th := entry.For(t.ID)
		res.Scores[i] = ScoreTest(raw.Value(t.ID), th.Amber, th.Green, t.LowerIsBetter)
	}
	return res, nil
}

// MustCalculate is Calculate for callers that already validated the enums.
func MustCalculate(g types.Gender, a types.AgeGroup, raw types.RawInputs) types.ScoreResult {
	res, err := Calculate(g, a, raw)
	if err != nil {
		panic(err)
	}
	return res
}
