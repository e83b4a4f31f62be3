// Package types contains the value types shared by the scoring engine,
// the service layer and the adapters.
package types

import (
	"fmt"
	"strings"
)

// Gender selects a benchmark sub-table.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Genders returns the selectable genders in display order.
func Genders() []Gender {
	return []Gender{Male, Female}
}

// Valid reports whether g is one of the published genders.
func (g Gender) Valid() bool {
	return g == Male || g == Female
}

// ParseGender converts user input into a Gender (case-insensitive).
func ParseGender(s string) (Gender, error) {
	g := Gender(strings.ToLower(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("%w: gender %q", ErrUnknownValue, s)
	}
	return g, nil
}

// AgeGroup is an age band nested under Gender in the benchmark table.
type AgeGroup string

const (
	Age12to13 AgeGroup = "12-13"
	Age14to15 AgeGroup = "14-15"
	Age16to17 AgeGroup = "16-17"
	Age18to21 AgeGroup = "18-21"
	Age22to25 AgeGroup = "22-25"
	Age26to30 AgeGroup = "26-30"
)

// AgeGroups returns the age bands youngest first.
func AgeGroups() []AgeGroup {
	return []AgeGroup{Age12to13, Age14to15, Age16to17, Age18to21, Age22to25, Age26to30}
}

// Valid reports whether a is one of the published age groups.
func (a AgeGroup) Valid() bool {
	for _, v := range AgeGroups() {
		if a == v {
			return true
		}
	}
	return false
}

// ParseAgeGroup converts user input into an AgeGroup.
func ParseAgeGroup(s string) (AgeGroup, error) {
	a := AgeGroup(strings.TrimSpace(s))
	if !a.Valid() {
		return "", fmt.Errorf("%w: age group %q", ErrUnknownValue, s)
	}
	return a, nil
}

// Score is the ordinal category of one test result.
type Score int

const (
	Red   Score = 1 // below age standard
	Amber Score = 2 // at age standard
	Green Score = 3 // above age standard
)

// String returns the status label used for colouring: red, amber or green.
func (s Score) String() string {
	switch s {
	case Green:
		return "green"
	case Amber:
		return "amber"
	default:
		return "red"
	}
}

// Percentile returns the fixed approximate percentile label for the tier.
// It is a lookup, not a statistic.
func (s Score) Percentile() string {
	switch s {
	case Green:
		return "≈80th+"
	case Amber:
		return "≈50–60th"
	default:
		return "≈<30th"
	}
}
