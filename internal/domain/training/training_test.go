package training_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/okian/combine/internal/domain/training"
	"github.com/okian/combine/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func allOf(s types.Score) [types.TestCount]types.Score {
	return [types.TestCount]types.Score{s, s, s, s, s}
}

func rankedTests(rec training.Recommendation) []types.TestID {
	out := make([]types.TestID, len(rec.Ranking))
	for i, r := range rec.Ranking {
		out[i] = r.Area.Test
	}
	return out
}

func TestProfiles(t *testing.T) {
	Convey("Given the sport profile table", t, func() {
		Convey("Then sports should be listed in source order with Other last", func() {
			want := []string{"Football", "Rugby", "Athletics", "Basketball", "Hockey", "American Football", "Other"}
			So(cmp.Diff(want, training.Sports()), ShouldBeEmpty)
		})

		Convey("When resolving Hockey", func() {
			name, p := training.ProfileFor("Hockey")
			So(name, ShouldEqual, "Hockey")
			So(p, ShouldResemble, training.Profile{Sprint: 3, Power: 2, Strength: 2, Endurance: 3})
		})

		Convey("When resolving an unknown or differently cased sport", func() {
			for _, s := range []string{"Curling", "", "hockey"} {
				name, p := training.ProfileFor(s)
				So(name, ShouldEqual, training.FallbackSport)
				So(p, ShouldResemble, training.Profile{Sprint: 2, Power: 2, Strength: 2, Endurance: 2})
			}
		})

		Convey("When a dimension is unset", func() {
			p := training.Profile{Sprint: 3}
			So(p.Priority(types.DimSprint), ShouldEqual, 3)
			So(p.Priority(types.DimPower), ShouldEqual, 2)
			So(p.Priority("agility"), ShouldEqual, 2)
		})
	})
}

func TestAreas(t *testing.T) {
	Convey("Given the training areas", t, func() {
		areas := training.Areas()

		Convey("Then they should follow test order", func() {
			for i, a := range areas {
				So(a.Test, ShouldEqual, types.Tests[i].ID)
				So(a.Dimension, ShouldEqual, types.Tests[i].Dimension)
				So(len(a.Tips), ShouldEqual, 3)
			}
			So(areas[1].Name, ShouldEqual, "Vertical Power")
			So(areas[2].Name, ShouldEqual, "Horizontal Power")
		})

		Convey("Then mutating a returned copy should not leak into the table", func() {
			areas[0].Tips[0] = "changed"
			So(training.Areas()[0].Tips[0], ShouldEqual, "2 sessions/week: 6–10 x 10–30m sprints")
		})

		Convey("Then ranges in tips should use en dashes", func() {
			fresh := training.Areas()
			So(fresh[0].Tips[1], ShouldEqual, "Full rest 60–120s")
			So(fresh[3].Tips, ShouldResemble, []string{
				"2–3 sessions/week: push-up progression",
				"Add trunk stability (planks/deadbugs)",
				"Aim +2–5 reps over 6 weeks",
			})
			So(training.NoStrengthsMessage, ShouldEqual, "No clear GREEN strengths yet — build consistency and retest.")
		})
	})
}

func TestRecommend(t *testing.T) {
	Convey("Given all-amber scores", t, func() {
		scores := allOf(types.Amber)

		Convey("When recommending for Hockey", func() {
			rec := training.Recommend(scores, "Hockey")

			Convey("Then sprint should rank before endurance among the priority-3 ties", func() {
				So(rec.Primary.Test, ShouldEqual, types.Sprint)
				So(rec.Secondary.Test, ShouldEqual, types.Endurance)
				So(rankedTests(rec), ShouldResemble, []types.TestID{types.Sprint, types.Endurance, types.Vertical, types.Broad, types.Strength})
			})

			Convey("And there should be no strengths", func() {
				So(rec.HasStrengths(), ShouldBeFalse)
				So(rec.Strengths, ShouldNotBeNil)
				So(rec.StrengthsMessage(), ShouldResemble, []string{training.NoStrengthsMessage})
			})
		})

		Convey("When recommending for Other", func() {
			rec := training.Recommend(scores, "Other")

			Convey("Then equal priorities should keep test order", func() {
				So(rankedTests(rec), ShouldResemble, []types.TestID{types.Sprint, types.Vertical, types.Broad, types.Strength, types.Endurance})
			})
		})
	})

	Convey("Given an unrecognised sport", t, func() {
		scores := [types.TestCount]types.Score{types.Green, types.Red, types.Amber, types.Red, types.Green}

		Convey("Then the recommendation should equal the Other recommendation", func() {
			got := training.Recommend(scores, "Underwater Hockey")
			want := training.Recommend(scores, "Other")
			So(cmp.Diff(want, got), ShouldBeEmpty)
		})
	})

	Convey("Given mixed scores for Rugby", t, func() {
		scores := [types.TestCount]types.Score{types.Red, types.Green, types.Amber, types.Red, types.Green}
		rec := training.Recommend(scores, "Rugby")

		Convey("Then worse scores should rank first", func() {
			So(rec.Ranking[0].Score, ShouldEqual, types.Red)
			So(rec.Ranking[1].Score, ShouldEqual, types.Red)
		})

		Convey("Then strength should beat sprint on priority among reds", func() {
			So(rec.Primary.Test, ShouldEqual, types.Strength)
			So(rec.Secondary.Test, ShouldEqual, types.Sprint)
		})

		Convey("Then strengths should be the greens in test order", func() {
			So(rec.HasStrengths(), ShouldBeTrue)
			So(rec.StrengthsMessage(), ShouldResemble, []string{"Vertical Power", "Endurance (1km)"})
		})
	})

	Convey("Given equal scores with different priorities", t, func() {
		Convey("Then the strictly higher priority should rank first for every sport", func() {
			scores := allOf(types.Red)
			for _, sport := range training.Sports() {
				rec := training.Recommend(scores, sport)
				for i := 1; i < len(rec.Ranking); i++ {
					So(rec.Ranking[i-1].Priority, ShouldBeGreaterThanOrEqualTo, rec.Ranking[i].Priority)
				}
			}
		})
	})
}
