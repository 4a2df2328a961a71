package scoring_test

import (
	"testing"

	scoring "github.com/okian/braincap/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given the default 1-5 Likert scale", t, func() {
		Convey("When raw sits on the scale bounds", func() {
			So(scoring.Normalize(1, 1, 5), ShouldEqual, 0.0)
			So(scoring.Normalize(5, 1, 5), ShouldEqual, 100.0)
			So(scoring.Normalize(3, 1, 5), ShouldEqual, 50.0)
		})

		Convey("When raw is outside the scale", func() {
			Convey("Then it should clamp to exactly 0 or 100", func() {
				So(scoring.Normalize(0, 1, 5), ShouldEqual, 0.0)
				So(scoring.Normalize(-40, 1, 5), ShouldEqual, 0.0)
				So(scoring.Normalize(6, 1, 5), ShouldEqual, 100.0)
				So(scoring.Normalize(1e9, 1, 5), ShouldEqual, 100.0)
			})
		})

		Convey("When raw increases across the scale", func() {
			Convey("Then Normalize never decreases and NormalizeReversed never increases", func() {
				prev, prevRev := -1.0, 101.0
				for raw := 1.0; raw <= 5.0; raw += 0.25 {
					n := scoring.Normalize(raw, scoring.LikertMin, scoring.LikertMax)
					r := scoring.NormalizeReversed(raw, scoring.LikertMin, scoring.LikertMax)
					So(n, ShouldBeGreaterThanOrEqualTo, prev)
					So(r, ShouldBeLessThanOrEqualTo, prevRev)
					prev, prevRev = n, r
				}
			})
		})

		Convey("When the answer is reverse scored", func() {
			So(scoring.NormalizeReversed(1, 1, 5), ShouldEqual, 100.0)
			So(scoring.NormalizeReversed(5, 1, 5), ShouldEqual, 0.0)
			So(scoring.NormalizeReversed(2, 1, 5), ShouldEqual, 75.0)
			So(scoring.NormalizeReversed(9, 1, 5), ShouldEqual, 0.0)
		})
	})

	Convey("Given a degenerate scale", t, func() {
		Convey("Then it should score 0 instead of dividing by zero", func() {
			So(scoring.Normalize(3, 3, 3), ShouldEqual, 0.0)
			So(scoring.Normalize(3, 5, 1), ShouldEqual, 0.0)
		})
	})
}

func TestPillarScore(t *testing.T) {
	Convey("Given weighted items", t, func() {
		Convey("When the sequence is empty", func() {
			So(scoring.PillarScore(nil), ShouldEqual, 0.0)
			So(scoring.PillarScore([]scoring.Item{}), ShouldEqual, 0.0)
		})

		Convey("When all weights are zero", func() {
			items := []scoring.Item{{Score: 80, Weight: 0}, {Score: 20, Weight: 0}}
			So(scoring.PillarScore(items), ShouldEqual, 0.0)
		})

		Convey("When there is a single item of weight 1", func() {
			Convey("Then it should equal the item rounded to one decimal", func() {
				So(scoring.PillarScore([]scoring.Item{{Score: 200.0 / 3, Weight: 1}}), ShouldEqual, 66.7)
				So(scoring.PillarScore([]scoring.Item{{Score: 42, Weight: 1}}), ShouldEqual, 42.0)
			})
		})

		Convey("When items carry different weights", func() {
			items := []scoring.Item{{Score: 100, Weight: 1}, {Score: 50, Weight: 3}}
			So(scoring.PillarScore(items), ShouldEqual, 62.5)
		})

		Convey("When the weighted mean leaves the score range", func() {
			items := []scoring.Item{{Score: 150, Weight: 1}}
			So(scoring.PillarScore(items), ShouldEqual, 100.0)
		})
	})
}

func TestTotalScore(t *testing.T) {
	Convey("Given three pillar scores", t, func() {
		Convey("Then the 0.3/0.4/0.3 policy should hold", func() {
			So(scoring.TotalScore(100, 100, 100), ShouldEqual, 100.0)
			So(scoring.TotalScore(0, 0, 0), ShouldEqual, 0.0)
			So(scoring.TotalScore(80, 50, 80), ShouldEqual, 68.0)
			So(scoring.TotalScore(0, 100, 0), ShouldEqual, 40.0)
			So(scoring.TotalScore(55.5, 62.2, 71.1), ShouldEqual, 62.9)
		})
	})
}

func TestRound1(t *testing.T) {
	Convey("Given values needing one-decimal rounding", t, func() {
		So(scoring.Round1(55.55555), ShouldEqual, 55.6)
		So(scoring.Round1(55.54), ShouldEqual, 55.5)
		So(scoring.Round1(0), ShouldEqual, 0.0)
	})
}
