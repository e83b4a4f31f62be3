// Package benchmark holds the static per-gender, per-age-group thresholds
// used to categorise test results.
package benchmark

import (
	"fmt"

	"github.com/okian/combine/internal/domain/types"
)

// Threshold is the (amber, green) pair for one test. For lower-is-better
// tests Green < Amber; otherwise Green > Amber.
type Threshold struct {
	Amber float64 `json:"amber"`
	Green float64 `json:"green"`
}

// Entry holds the five thresholds for one gender and age group.
type Entry struct {
	Sprint    Threshold
	Vertical  Threshold
	Broad     Threshold
	Strength  Threshold
	Endurance Threshold
}

// For returns the threshold for the given test.
func (e Entry) For(id types.TestID) Threshold {
	switch id {
	case types.Sprint:
		return e.Sprint
	case types.Vertical:
		return e.Vertical
	case types.Broad:
		return e.Broad
	case types.Strength:
		return e.Strength
	case types.Endurance:
		return e.Endurance
	}
	return Threshold{}
}

func row(sprint, vertical, broad, strength, endurance [2]float64) Entry {
	t := func(p [2]float64) Threshold { return Threshold{Amber: p[0], Green: p[1]} }
	return Entry{
		Sprint:    t(sprint),
		Vertical:  t(vertical),
		Broad:     t(broad),
		Strength:  t(strength),
		Endurance: t(endurance),
	}
}

// table is read-only after package init.
var table = map[types.Gender]map[types.AgeGroup]Entry{
	types.Female: {
		types.Age12to13: row([2]float64{3.9, 3.6}, [2]float64{28, 35}, [2]float64{150, 170}, [2]float64{8, 15}, [2]float64{6.0, 5.0}),
		types.Age14to15: row([2]float64{3.7, 3.4}, [2]float64{32, 40}, [2]float64{165, 185}, [2]float64{12, 20}, [2]float64{5.5, 4.7}),
		types.Age16to17: row([2]float64{3.6, 3.3}, [2]float64{36, 45}, [2]float64{180, 200}, [2]float64{15, 25}, [2]float64{5.2, 4.5}),
		types.Age18to21: row([2]float64{3.5, 3.2}, [2]float64{38, 48}, [2]float64{185, 210}, [2]float64{18, 30}, [2]float64{5.0, 4.3}),
		types.Age22to25: row([2]float64{3.4, 3.1}, [2]float64{40, 50}, [2]float64{190, 215}, [2]float64{20, 35}, [2]float64{4.8, 4.1}),
		types.Age26to30: row([2]float64{3.5, 3.2}, [2]float64{38, 48}, [2]float64{185, 205}, [2]float64{18, 30}, [2]float64{5.0, 4.3}),
	},
	types.Male: {
		types.Age12to13: row([2]float64{3.7, 3.4}, [2]float64{32, 40}, [2]float64{160, 180}, [2]float64{10, 20}, [2]float64{5.8, 4.9}),
		types.Age14to15: row([2]float64{3.5, 3.2}, [2]float64{38, 48}, [2]float64{180, 205}, [2]float64{15, 30}, [2]float64{5.3, 4.6}),
		types.Age16to17: row([2]float64{3.4, 3.1}, [2]float64{45, 55}, [2]float64{200, 225}, [2]float64{20, 40}, [2]float64{5.0, 4.3}),
		types.Age18to21: row([2]float64{3.3, 3.0}, [2]float64{48, 58}, [2]float64{210, 235}, [2]float64{25, 45}, [2]float64{4.67, 4.0}),
		types.Age22to25: row([2]float64{3.2, 2.9}, [2]float64{50, 60}, [2]float64{215, 245}, [2]float64{30, 50}, [2]float64{4.5, 3.92}),
		types.Age26to30: row([2]float64{3.3, 3.0}, [2]float64{48, 58}, [2]float64{210, 235}, [2]float64{25, 45}, [2]float64{4.67, 4.08}),
	},
}

// Lookup returns the benchmark entry for a gender and age group. Every
// published pair is present; anything else is a caller bug reported as
// ErrUnknownProfile.
func Lookup(g types.Gender, a types.AgeGroup) (Entry, error) {
	byAge, ok := table[g]
	if !ok {
		return Entry{}, fmt.Errorf("%w: gender %q", ErrUnknownProfile, g)
	}
	e, ok := byAge[a]
	if !ok {
		return Entry{}, fmt.Errorf("%w: age group %q", ErrUnknownProfile, a)
	}
	return e, nil
}

// MustLookup is Lookup for callers holding validated enums.
func MustLookup(g types.Gender, a types.AgeGroup) Entry {
	e, err := Lookup(g, a)
	if err != nil {
		panic(err)
	}
	return e
}
