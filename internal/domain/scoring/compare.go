package scoring

import (
	"fmt"
	"math"
	"strconv"

	"github.com/okian/combine/internal/domain/benchmark"
	"github.com/okian/combine/internal/domain/timing"
	"github.com/okian/combine/internal/domain/types"
)

// Level thresholds on the average tier value.
const (
	highPerformanceAvg = 2.6
	ageStandardAvg     = 1.8
)

// Level names the overall standing of an assessment.
type Level string

const (
	LevelHighPerformance Level = "High Performance"
	LevelAgeStandard     Level = "Age Standard"
	LevelDeveloping      Level = "Developing"
)

// Measurement is one row of the athlete-versus-age-standard table. Diff is
// oriented so that a positive value is always better than the standard.
type Measurement struct {
	Test         types.TestID `json:"test"`
	Label        string       `json:"label"`
	Unit         string       `json:"unit"`
	Athlete      float64      `json:"athlete"`
	Standard     float64      `json:"standard"`
	Diff         float64      `json:"diff"`
	AtOrAbove    bool         `json:"at_or_above"`
	AthleteText  string       `json:"athlete_text"`
	StandardText string       `json:"standard_text"`
	DiffText     string       `json:"diff_text"`
}

// CompareToStandard lists each raw value against the amber threshold of
// the athlete's benchmark row.
func CompareToStandard(g types.Gender, a types.AgeGroup, raw types.RawInputs) ([]Measurement, error) {
	entry, err := benchmark.Lookup(g, a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProfile, err)
	}

	rows := make([]Measurement, 0, types.TestCount)
	for _, t := range types.Tests {
		athlete := raw.Value(t.ID)
		standard := entry.For(t.ID).Amber
		diff := athlete - standard
		if t.LowerIsBetter {
			diff = standard - athlete
		}
		rows = append(rows, Measurement{
			Test:         t.ID,
			Label:        t.Label,
			Unit:         t.Unit,
			Athlete:      athlete,
			Standard:     standard,
			Diff:         diff,
			AtOrAbove:    diff >= 0,
			AthleteText:  formatValue(t, athlete),
			StandardText: formatValue(t, standard),
			DiffText:     formatDiff(t, diff),
		})
	}
	return rows, nil
}

func formatValue(t types.Test, v float64) string {
	switch {
	case t.ID == types.Endurance:
		return timing.FormatMMSS(v)
	case t.Unit == "s":
		return strconv.FormatFloat(v, 'f', 2, 64)
	default:
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
}

func formatDiff(t types.Test, diff float64) string {
	sign := "+"
	if diff < 0 {
		sign = "-"
	}
	abs := math.Abs(diff)
	switch {
	case t.ID == types.Endurance:
		return sign + timing.FormatMMSS(abs)
	case t.Unit == "s":
		return sign + strconv.FormatFloat(abs, 'f', 2, 64) + " " + t.Unit
	default:
		return sign + strconv.FormatFloat(abs, 'f', 0, 64) + " " + t.Unit
	}
}

// Summary is the headline view of one result.
type Summary struct {
	Level       Level   `json:"level"`
	Average     float64 `json:"average"`
	Greens      int     `json:"greens"`
	GreensText  string  `json:"greens_text"`
	TopStrength string  `json:"top_strength"`
}

// Summarize derives the overall level, green count and first strength.
func Summarize(res types.ScoreResult) Summary {
	avg := float64(res.Total()) / types.TestCount

	level := LevelDeveloping
	switch {
	case avg >= highPerformanceAvg:
		level = LevelHighPerformance
	case avg >= ageStandardAvg:
		level = LevelAgeStandard
	}

	top := "Keep training"
	for i, s := range res.Scores {
		if s == types.Green {
			top = types.Tests[i].Label
			break
		}
	}

	greens := res.Greens()
	return Summary{
		Level:       level,
		Average:     avg,
		Greens:      greens,
		GreensText:  fmt.Sprintf("%d/%d at green", greens, types.TestCount),
		TopStrength: top,
	}
}

// Direction of a tier change between two results.
type Direction string

const (
	Improved  Direction = "improved"
	Declined  Direction = "declined"
	Unchanged Direction = "unchanged"
)

// Change is the tier movement of one test from baseline to retest.
type Change struct {
	Test      types.TestID `json:"test"`
	Label     string       `json:"label"`
	Baseline  types.Score  `json:"baseline"`
	Retest    types.Score  `json:"retest"`
	Delta     int          `json:"delta"`
	Direction Direction    `json:"direction"`
}

// Progress compares a retest with its baseline test by test.
func Progress(baseline, retest types.ScoreResult) []Change {
	out := make([]Change, 0, types.TestCount)
	for i, t := range types.Tests {
		delta := int(retest.Scores[i]) - int(baseline.Scores[i])
		dir := Unchanged
		switch {
		case delta > 0:
			dir = Improved
		case delta < 0:
			dir = Declined
		}
		out = append(out, Change{
			Test:      t.ID,
			Label:     t.Label,
			Baseline:  baseline.Scores[i],
			Retest:    retest.Scores[i],
			Delta:     delta,
			Direction: dir,
		})
	}
	return out
}
