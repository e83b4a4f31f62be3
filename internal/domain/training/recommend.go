package training

import (
	"sort"

	"github.com/okian/combine/internal/domain/types"
)

// NoStrengthsMessage is shown when no test scored Green.
const NoStrengthsMessage = "No clear GREEN strengths yet — build consistency and retest."

// Ranked is one entry of the focus ranking.
type Ranked struct {
	Area     Area        `json:"area"`
	Score    types.Score `json:"score"`
	Priority int         `json:"priority"`
}

// Recommendation is the training plan derived from one set of scores.
type Recommendation struct {
	Sport     string   `json:"sport"`
	Strengths []Area   `json:"strengths"`
	Primary   Area     `json:"primary"`
	Secondary Area     `json:"secondary"`
	Ranking   []Ranked `json:"ranking"`
}

// HasStrengths reports whether any test scored Green.
func (r Recommendation) HasStrengths() bool {
	return len(r.Strengths) > 0
}

// StrengthsMessage lists the strengths or returns NoStrengthsMessage.
func (r Recommendation) StrengthsMessage() []string {
	if !r.HasStrengths() {
		return []string{NoStrengthsMessage}
	}
	out := make([]string, len(r.Strengths))
	for i, a := range r.Strengths {
		out[i] = a.Name
	}
	return out
}

// Recommend ranks the five areas worst score first and, among equal
// scores, highest sport priority first. Ties on both keep test order.
func Recommend(scores [types.TestCount]types.Score, sport string) Recommendation {
	name, profile := ProfileFor(sport)

	ranking := make([]Ranked, types.TestCount)
	strengths := make([]Area, 0, types.TestCount)
	for i, s := range scores {
		a := areaAt(i)
		ranking[i] = Ranked{Area: a, Score: s, Priority: profile.Priority(a.Dimension)}
		if s == types.Green {
			strengths = append(strengths, a)
		}
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score < ranking[j].Score
		}
		return ranking[i].Priority > ranking[j].Priority
	})

	return Recommendation{
		Sport:     name,
		Strengths: strengths,
		Primary:   ranking[0].Area,
		Secondary: ranking[1].Area,
		Ranking:   ranking,
	}
}
