package scoring_test

import (
	"testing"

	scoring "github.com/okian/combine/internal/domain/scoring"
	"github.com/okian/combine/internal/domain/timing"
	"github.com/okian/combine/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompareToStandard(t *testing.T) {
	Convey("Given a male 16-17 athlete", t, func() {
		endurance, _ := timing.ParseMinutes("4:40")
		raw := types.RawInputs{SprintSeconds: 3.2, VerticalCm: 50, BroadCm: 195, StrengthReps: 22, EnduranceMinutes: endurance}

		Convey("When comparing against the age standard", func() {
			rows, err := scoring.CompareToStandard(types.Male, types.Age16to17, raw)
			So(err, ShouldBeNil)
			So(len(rows), ShouldEqual, types.TestCount)

			Convey("Then lower-is-better diffs should be positive when faster", func() {
				So(rows[0].Test, ShouldEqual, types.Sprint)
				So(rows[0].Standard, ShouldEqual, 3.4)
				So(rows[0].AtOrAbove, ShouldBeTrue)
				So(rows[0].AthleteText, ShouldEqual, "3.20")
				So(rows[0].DiffText, ShouldEqual, "+0.20 s")
			})

			Convey("Then higher-is-better rows should use whole units", func() {
				So(rows[1].DiffText, ShouldEqual, "+5 cm")
				So(rows[3].DiffText, ShouldEqual, "+2 reps")
			})

			Convey("Then rows below standard should be negative", func() {
				So(rows[2].Diff, ShouldEqual, -5)
				So(rows[2].AtOrAbove, ShouldBeFalse)
				So(rows[2].DiffText, ShouldEqual, "-5 cm")
			})

			Convey("Then the endurance row should render as M:SS", func() {
				So(rows[4].AthleteText, ShouldEqual, "4:40")
				So(rows[4].StandardText, ShouldEqual, "5:00")
				So(rows[4].DiffText, ShouldEqual, "+0:20")
			})
		})
	})

	Convey("Given an unknown profile", t, func() {
		_, err := scoring.CompareToStandard(types.Male, "5-6", types.RawInputs{})
		So(err, ShouldNotBeNil)
	})
}

func TestSummarize(t *testing.T) {
	result := func(s ...types.Score) types.ScoreResult {
		var r types.ScoreResult
		copy(r.Scores[:], s)
		return r
	}

	Convey("Given assessment results", t, func() {
		Convey("When all tests are amber", func() {
			sum := scoring.Summarize(result(types.Amber, types.Amber, types.Amber, types.Amber, types.Amber))

			Convey("Then the level should be age standard with no strength", func() {
				So(sum.Level, ShouldEqual, scoring.LevelAgeStandard)
				So(sum.Greens, ShouldEqual, 0)
				So(sum.GreensText, ShouldEqual, "0/5 at green")
				So(sum.TopStrength, ShouldEqual, "Keep training")
			})
		})

		Convey("When the average is exactly 2.6", func() {
			sum := scoring.Summarize(result(types.Green, types.Green, types.Green, types.Amber, types.Amber))

			Convey("Then the level should be high performance", func() {
				So(sum.Level, ShouldEqual, scoring.LevelHighPerformance)
				So(sum.TopStrength, ShouldEqual, "20m Sprint")
			})
		})

		Convey("When the average is exactly 1.8", func() {
			sum := scoring.Summarize(result(types.Red, types.Red, types.Amber, types.Amber, types.Green))
			So(sum.Level, ShouldEqual, scoring.LevelAgeStandard)
			So(sum.TopStrength, ShouldEqual, "1km Endurance")
		})

		Convey("When the average is below 1.8", func() {
			sum := scoring.Summarize(result(types.Red, types.Red, types.Red, types.Amber, types.Amber))
			So(sum.Level, ShouldEqual, scoring.LevelDeveloping)
		})
	})
}

func TestProgress(t *testing.T) {
	Convey("Given a baseline and a retest", t, func() {
		baseline := types.ScoreResult{Scores: [types.TestCount]types.Score{types.Red, types.Amber, types.Amber, types.Green, types.Amber}}
		retest := types.ScoreResult{Scores: [types.TestCount]types.Score{types.Green, types.Amber, types.Red, types.Green, types.Amber}}

		Convey("When computing progress", func() {
			changes := scoring.Progress(baseline, retest)

			Convey("Then each test should report its tier change", func() {
				So(len(changes), ShouldEqual, types.TestCount)
				So(changes[0].Delta, ShouldEqual, 2)
				So(changes[0].Direction, ShouldEqual, scoring.Improved)
				So(changes[1].Direction, ShouldEqual, scoring.Unchanged)
				So(changes[2].Delta, ShouldEqual, -1)
				So(changes[2].Direction, ShouldEqual, scoring.Declined)
				So(changes[4].Label, ShouldEqual, "1km Endurance")
			})
		})
	})
}
