package benchmark_test

import (
	"errors"
	"testing"

	"github.com/okian/combine/internal/domain/benchmark"
	"github.com/okian/combine/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLookup(t *testing.T) {
	Convey("Given the benchmark table", t, func() {
		Convey("Then every gender and age group pair should be present", func() {
			for _, g := range types.Genders() {
				for _, a := range types.AgeGroups() {
					_, err := benchmark.Lookup(g, a)
					So(err, ShouldBeNil)
				}
			}
		})

		Convey("Then thresholds should point in the right direction for every entry", func() {
			for _, g := range types.Genders() {
				for _, a := range types.AgeGroups() {
					e := benchmark.MustLookup(g, a)
					for _, tt := range types.Tests {
						th := e.For(tt.ID)
						if tt.LowerIsBetter {
							So(th.Green, ShouldBeLessThan, th.Amber)
						} else {
							So(th.Green, ShouldBeGreaterThan, th.Amber)
						}
					}
				}
			}
		})

		Convey("When looking up male 16-17", func() {
			e := benchmark.MustLookup(types.Male, types.Age16to17)

			Convey("Then it should return the published row", func() {
				So(e.Sprint, ShouldResemble, benchmark.Threshold{Amber: 3.4, Green: 3.1})
				So(e.Vertical, ShouldResemble, benchmark.Threshold{Amber: 45, Green: 55})
				So(e.Broad, ShouldResemble, benchmark.Threshold{Amber: 200, Green: 225})
				So(e.Strength, ShouldResemble, benchmark.Threshold{Amber: 20, Green: 40})
				So(e.Endurance, ShouldResemble, benchmark.Threshold{Amber: 5.0, Green: 4.3})
			})
		})

		Convey("When looking up female 22-25", func() {
			e := benchmark.MustLookup(types.Female, types.Age22to25)

			Convey("Then For should resolve by test id", func() {
				So(e.For(types.Endurance), ShouldResemble, benchmark.Threshold{Amber: 4.8, Green: 4.1})
				So(e.For("swim"), ShouldResemble, benchmark.Threshold{})
			})
		})

		Convey("When looking up an unknown pair", func() {
			_, err := benchmark.Lookup("unknown", types.Age16to17)
			So(errors.Is(err, benchmark.ErrUnknownProfile), ShouldBeTrue)

			_, err = benchmark.Lookup(types.Male, "40-45")
			So(errors.Is(err, benchmark.ErrUnknownProfile), ShouldBeTrue)

			Convey("Then MustLookup should panic", func() {
				So(func() { benchmark.MustLookup(types.Female, "99") }, ShouldPanic)
			})
		})
	})
}
