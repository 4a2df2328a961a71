package scoring_test

import (
	"testing"

	scoring "github.com/okian/braincap/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAttentionScore(t *testing.T) {
	Convey("Given attention test results", t, func() {
		So(scoring.AttentionScore(150, 1.0), ShouldEqual, 100.0)
		So(scoring.AttentionScore(800, 0.0), ShouldEqual, 0.0)
		So(scoring.AttentionScore(475, 0.5), ShouldEqual, 50.0)

		Convey("When reaction time or accuracy exceed their anchors", func() {
			So(scoring.AttentionScore(90, 1.3), ShouldEqual, 100.0)
			So(scoring.AttentionScore(2000, -0.2), ShouldEqual, 0.0)
		})
	})
}

func TestFlexibilityScore(t *testing.T) {
	Convey("Given flexibility test results", t, func() {
		So(scoring.FlexibilityScore(200, 1.0), ShouldEqual, 100.0)
		So(scoring.FlexibilityScore(1000, 0.0), ShouldEqual, 0.0)
		So(scoring.FlexibilityScore(600, 0.8), ShouldEqual, 65.0)
	})
}

func TestMemoryScore(t *testing.T) {
	Convey("Given memory test results", t, func() {
		Convey("When there were no trials", func() {
			So(scoring.MemoryScore(0, 0), ShouldEqual, 0.0)
		})

		Convey("When some answers were correct", func() {
			So(scoring.MemoryScore(7, 10), ShouldEqual, 70.0)
			So(scoring.MemoryScore(2, 3), ShouldEqual, 66.7)
		})

		Convey("When counts are inconsistent", func() {
			So(scoring.MemoryScore(12, 10), ShouldEqual, 100.0)
			So(scoring.MemoryScore(-1, 10), ShouldEqual, 0.0)
		})
	})
}

func TestTestScores(t *testing.T) {
	Convey("Given a batch of measurements", t, func() {
		scores := scoring.TestScores(
			scoring.Attention{AvgReactionMs: 150, CorrectRate: 1, TotalTrials: 20},
			scoring.Memory{CorrectCount: 0, TotalTrials: 0},
			nil,
		)

		Convey("Then each test should be keyed by its kind", func() {
			So(scores, ShouldResemble, map[string]float64{"attention": 100, "memory": 0})
		})

		Convey("Then the measurements should report their kind", func() {
			So(scoring.Flexibility{}.Kind(), ShouldEqual, scoring.TestFlexibility)
		})
	})
}
