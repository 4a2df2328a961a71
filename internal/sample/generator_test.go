package sample_test

import (
	"context"
	"io"
	"math"
	"testing"

	service "github.com/okian/braincap/internal/app"
	"github.com/okian/braincap/internal/domain/model"
	"github.com/okian/braincap/internal/domain/scoring"
	"github.com/okian/braincap/internal/sample"
	"github.com/okian/braincap/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerator(t *testing.T) {
	Convey("Given a seeded generator", t, func() {
		g := sample.NewGenerator(sample.WithSeed(42))
		items := g.Generate(40)

		Convey("Then it should produce the requested number of assessments", func() {
			So(items, ShouldHaveLength, 40)
		})

		Convey("Then the same seed should reproduce the same data", func() {
			again := sample.NewGenerator(sample.WithSeed(42)).Generate(40)
			So(again, ShouldResemble, items)
		})

		Convey("Then answers should stay on the scales of the embedded tables", func() {
			scorer := scoring.NewScorer()
			for _, a := range items {
				for p, answers := range map[model.Pillar]scoring.Responses{
					model.PillarDrivers: a.Drivers,
					model.PillarHealth:  a.Health,
					model.PillarSkills:  a.SkillsSurvey,
				} {
					for id, v := range answers {
						sc := scorer.Scale(p, id)
						So(v, ShouldBeBetweenOrEqual, sc.Min, sc.Max)
					}
				}
			}
			So(items[0].Health, ShouldContainKey, "h7")
		})

		Convey("Then every fourth assessment should be a weekly carry-over", func() {
			So(items[3].SurveyType, ShouldEqual, model.SurveyWeekly)
			So(items[3].Health, ShouldBeNil)
			So(items[3].Previous, ShouldNotBeNil)
			So(items[0].SurveyType, ShouldEqual, model.SurveyBaseline)
			So(items[0].Tests, ShouldNotBeNil)
		})

		Convey("Then submission IDs should be unique without a duplicate rate", func() {
			seen := map[string]bool{}
			for _, a := range items {
				So(seen[a.SubmissionID], ShouldBeFalse)
				seen[a.SubmissionID] = true
			}
		})
	})

	Convey("Given a generator that always duplicates", t, func() {
		items := sample.NewGenerator(sample.WithDuplicateRate(1)).Generate(5)

		Convey("Then every item after the first should reuse the first ID", func() {
			for _, a := range items {
				So(a.SubmissionID, ShouldEqual, "sample-0000")
			}
		})
	})
}

const wideDrivers = `
pillars:
  drivers: {default: {min: 0, max: 10}, items: {d1: {min: 0, max: 10, reversed: true}}}
  health: {default: {min: 1, max: 5, reversed: true}}
  skills: {default: {min: 1, max: 5}}
benchmarks:
  default: all
  brackets: [{bracket: all}]
`

func TestGeneratorFollowsTables(t *testing.T) {
	Convey("Given tables with a 0-10 drivers scale", t, func() {
		tables, err := scoring.ParseTables([]byte(wideDrivers))
		So(err, ShouldBeNil)
		scorer := scoring.NewScorer(scoring.WithTables(tables))

		items := sample.NewGenerator(sample.WithSeed(9), sample.WithScorer(scorer)).Generate(20)

		Convey("Then drivers answers should use the wider scale", func() {
			wide := false
			for _, a := range items {
				for _, v := range a.Drivers {
					So(v, ShouldBeBetweenOrEqual, 0, 10)
					if v > 5 || v < 1 {
						wide = true
					}
				}
			}
			So(wide, ShouldBeTrue)
		})

		Convey("Then a reversed item should mirror the respondent's standing", func() {
			for _, a := range items {
				d1 := scorer.Scale(model.PillarDrivers, "d1").Normalize(a.Drivers["d1"])
				d2 := scorer.Scale(model.PillarDrivers, "d2").Normalize(a.Drivers["d2"])
				So(math.Abs(d1-d2), ShouldBeLessThanOrEqualTo, 40)
			}
		})
	})
}

func TestGeneratorFeedsBatch(t *testing.T) {
	Convey("Given generated assessments with duplicates", t, func() {
		So(logger.Init(logger.WithWriter(io.Discard)), ShouldBeNil)
		items := sample.NewGenerator(sample.WithSeed(7), sample.WithDuplicateRate(0.2)).Generate(100)
		svc := service.New(service.WithWorkerCount(4))

		results, err := svc.AssessBatch(context.Background(), items)

		Convey("Then every item should be scored or skipped", func() {
			So(err, ShouldBeNil)
			scored, dups := 0, 0
			for _, r := range results {
				So(r.Err, ShouldBeNil)
				if r.Duplicate {
					dups++
					continue
				}
				scored++
				So(r.Report.Total, ShouldNotBeNil)
				So(*r.Report.Total, ShouldBeBetweenOrEqual, 0, 100)
			}
			So(scored+dups, ShouldEqual, 100)
			So(dups, ShouldBeGreaterThan, 0)
		})
	})
}
