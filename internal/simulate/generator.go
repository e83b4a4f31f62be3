package simulate

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/combine/internal/domain/benchmark"
	"github.com/okian/combine/internal/domain/model"
	"github.com/okian/combine/internal/domain/timing"
	"github.com/okian/combine/internal/domain/training"
	"github.com/okian/combine/internal/domain/types"
)

// spread scales how far a generated value may land from the amber
// threshold, in units of the amber-to-green gap.
const (
	spread      = 1.5
	improvement = 0.8
)

// Athlete is one generated squad member with their baseline measurements.
type Athlete struct {
	ID       string
	Name     string
	Gender   types.Gender
	AgeGroup types.AgeGroup
	Sport    string
	Values   [types.TestCount]float64
}

// Generator builds reproducible squads from a seed. Ids are derived from
// the seeded stream as well, so equal seeds give equal submissions.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator seeds a generator.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Squad generates n athletes spread across every profile and sport.
func (g *Generator) Squad(n int) []Athlete {
	genders := types.Genders()
	ages := types.AgeGroups()
	sports := training.Sports()

	out := make([]Athlete, n)
	for i := range out {
		a := Athlete{
			ID:       g.uuid().String(),
			Name:     fmt.Sprintf("Athlete %03d", i+1),
			Gender:   genders[g.rng.IntN(len(genders))],
			AgeGroup: ages[g.rng.IntN(len(ages))],
			Sport:    sports[g.rng.IntN(len(sports))],
		}
		entry := benchmark.MustLookup(a.Gender, a.AgeGroup)
		for j, t := range types.Tests {
			th := entry.For(t.ID)
			gap := th.Green - th.Amber
			a.Values[j] = round(t, th.Amber+gap*spread*(g.rng.Float64()*2-1))
		}
		out[i] = a
	}
	return out
}

// Baseline is the athlete's first submission.
func (g *Generator) Baseline(a Athlete) model.Submission { //nolint:gocritic // hugeParam: read-only
	return g.submission(a, model.KindBaseline, a.Values)
}

// Retest moves every measurement some way toward the green threshold.
func (g *Generator) Retest(a Athlete) model.Submission { //nolint:gocritic // hugeParam: read-only
	entry := benchmark.MustLookup(a.Gender, a.AgeGroup)
	var values [types.TestCount]float64
	for j, t := range types.Tests {
		th := entry.For(t.ID)
		values[j] = round(t, a.Values[j]+(th.Green-th.Amber)*improvement*g.rng.Float64())
	}
	return g.submission(a, model.KindRetest, values)
}

func (g *Generator) submission(a Athlete, kind model.Kind, v [types.TestCount]float64) model.Submission { //nolint:gocritic // hugeParam: read-only
	at := func(id types.TestID) *float64 {
		x := v[types.IndexOf(id)]
		return &x
	}
	return model.Submission{
		ID:        g.uuid().String(),
		AthleteID: a.ID,
		Name:      a.Name,
		Kind:      string(kind),
		Gender:    string(a.Gender),
		AgeGroup:  string(a.AgeGroup),
		Sport:     a.Sport,
		Sprint:    at(types.Sprint),
		Vertical:  at(types.Vertical),
		Broad:     at(types.Broad),
		Strength:  at(types.Strength),
		Endurance: timing.FormatMMSS(v[types.IndexOf(types.Endurance)]),
	}
}

func (g *Generator) uuid() uuid.UUID {
	var b [16]byte
	for i := range b {
		b[i] = byte(g.rng.UintN(256))
	}
	id, _ := uuid.FromBytes(b[:])
	id[6] = (id[6] & 0x0f) | 0x40 // version 4
	id[8] = (id[8] & 0x3f) | 0x80 // RFC 4122 variant
	return id
}

// round keeps sprint times to hundredths and everything else whole, and
// never goes below zero.
func round(t types.Test, v float64) float64 {
	v = math.Max(v, 0)
	switch {
	case t.ID == types.Endurance:
		return math.Round(v*60) / 60
	case t.Unit == "s":
		return math.Round(v*100) / 100
	default:
		return math.Round(v)
	}
}
