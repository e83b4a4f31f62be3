// Package training ranks scored tests into training priorities for a sport.
package training

import "github.com/okian/combine/internal/domain/types"

// FallbackSport is used for any sport name without its own profile.
const FallbackSport = "Other"

// defaultPriority applies when a profile leaves a dimension unset.
const defaultPriority = 2

// Profile holds the priority weight (1-3) of each training dimension for a
// sport. It is a value type so callers cannot alter the shared table.
type Profile struct {
	Sprint    int `json:"sprint"`
	Power     int `json:"power"`
	Strength  int `json:"strength"`
	Endurance int `json:"endurance"`
}

// Priority returns the weight for d, or 2 when unset or unknown.
func (p Profile) Priority(d types.Dimension) int {
	var v int
	switch d {
	case types.DimSprint:
		v = p.Sprint
	case types.DimPower:
		v = p.Power
	case types.DimStrength:
		v = p.Strength
	case types.DimEndurance:
		v = p.Endurance
	}
	if v == 0 {
		return defaultPriority
	}
	return v
}

type sportProfile struct {
	name    string
	profile Profile
}

// profiles keeps source order so Sports() is stable.
var profiles = []sportProfile{
	{"Football", Profile{Sprint: 3, Power: 3, Strength: 2, Endurance: 2}},
	{"Rugby", Profile{Sprint: 2, Power: 3, Strength: 3, Endurance: 2}},
	{"Athletics", Profile{Sprint: 3, Power: 3, Strength: 2, Endurance: 1}},
	{"Basketball", Profile{Sprint: 3, Power: 3, Strength: 2, Endurance: 2}},
	{"Hockey", Profile{Sprint: 3, Power: 2, Strength: 2, Endurance: 3}},
	{"American Football", Profile{Sprint: 3, Power: 3, Strength: 3, Endurance: 1}},
	{FallbackSport, Profile{Sprint: 2, Power: 2, Strength: 2, Endurance: 2}},
}

// Sports returns the selectable sport names; Other is last.
func Sports() []string {
	out := make([]string, len(profiles))
	for i, p := range profiles {
		out[i] = p.name
	}
	return out
}

// ProfileFor resolves a sport by exact name and reports the name actually
// used. Unknown names resolve to Other.
func ProfileFor(sport string) (string, Profile) {
	for _, p := range profiles {
		if p.name == sport {
			return p.name, p.profile
		}
	}
	fallback := profiles[len(profiles)-1]
	return fallback.name, fallback.profile
}
