package training

import "github.com/okian/combine/internal/domain/types"

// Area is the training focus linked to one test.
type Area struct {
	Test      types.TestID    `json:"test"`
	Dimension types.Dimension `json:"dimension"`
	Name      string          `json:"name"`
	Tips      []string        `json:"tips"`
}

// areas follows types.Tests order.
var areas = [types.TestCount]Area{
	{
		Test:      types.Sprint,
		Dimension: types.DimSprint,
		Name:      "Speed (20m acceleration)",
		Tips: []string{
			"2 sessions/week: 6–10 x 10–30m sprints",
			"Full rest 60–120s",
			"Focus: fast first steps + tall posture",
		},
	},
	{
		Test:      types.Vertical,
		Dimension: types.DimPower,
		Name:      "Vertical Power",
		Tips: []string{
			"2 sessions/week: pogo hops + jump variations",
			"Low reps, high quality",
			"Controlled landings every rep",
		},
	},
	{
		Test:      types.Broad,
		Dimension: types.DimPower,
		Name:      "Horizontal Power",
		Tips: []string{
			"2 sessions/week: broad jumps + bounds",
			"Stick landings, control knees/hips",
			"Progress distance gradually",
		},
	},
	{
		Test:      types.Strength,
		Dimension: types.DimStrength,
		Name:      "Strength (push-ups)",
		Tips: []string{
			"2–3 sessions/week: push-up progression",
			"Add trunk stability (planks/deadbugs)",
			"Aim +2–5 reps over 6 weeks",
		},
	},
	{
		Test:      types.Endurance,
		Dimension: types.DimEndurance,
		Name:      "Endurance (1km)",
		Tips: []string{
			"1 easy run + 1 interval day/week",
			"Example: 6 x 200m fast / 200m easy",
			"Keep easy days easy",
		},
	},
}

// Areas returns copies of the five training areas in test order.
func Areas() []Area {
	out := make([]Area, types.TestCount)
	for i := range areas {
		out[i] = areaAt(i)
	}
	return out
}

// areaAt returns a copy of area i whose tips slice is not shared.
func areaAt(i int) Area {
	a := areas[i]
	a.Tips = append([]string(nil), a.Tips...)
	return a
}
