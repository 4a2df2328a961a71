package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	service "github.com/okian/braincap/internal/app"
	"github.com/okian/braincap/internal/domain/model"
	"github.com/okian/braincap/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestService_AssessBatch(t *testing.T) {
	Convey("Given a service with two workers", t, func() {
		svc, m := newService(service.WithWorkerCount(2))
		ctx := context.Background()

		valid := func(id string) service.Assessment {
			return service.Assessment{
				SubmissionID: id,
				SurveyType:   model.SurveyBaseline,
				Drivers:      scoring.Responses{"d1": 5},
			}
		}
		invalid := valid("y")
		invalid.SurveyType = "daily"

		Convey("When a batch mixes duplicates, missing IDs and invalid items", func() {
			results, err := svc.AssessBatch(ctx, []service.Assessment{
				valid("x"),
				valid("x"),
				valid(""),
				invalid,
				valid("y"),
			})

			Convey("Then each result should keep its input position", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 5)
				for i, r := range results {
					So(r.Index, ShouldEqual, i)
				}
			})

			Convey("Then the first occurrence of an ID should win", func() {
				So(results[0].Report, ShouldNotBeNil)
				So(results[0].Report.SubmissionID, ShouldEqual, "x")
				So(results[1].Duplicate, ShouldBeTrue)
				So(results[1].Report, ShouldBeNil)
				So(metricValue(m.Registry(), "braincap_engine_duplicates_total"), ShouldEqual, 1)
			})

			Convey("Then a missing ID should be generated", func() {
				So(results[2].Report, ShouldNotBeNil)
				So(results[2].Report.SubmissionID, ShouldHaveLength, 36)
			})

			Convey("Then an invalid item should fail alone and free its ID", func() {
				So(errors.Is(results[3].Err, service.ErrInvalidAssessment), ShouldBeTrue)
				So(results[3].Error, ShouldNotBeEmpty)
				So(results[4].Report, ShouldNotBeNil)
				So(results[4].Duplicate, ShouldBeFalse)
			})

			Convey("Then the batch duration should be observed", func() {
				So(metricValue(m.Registry(), "braincap_engine_batch_duration_milliseconds"), ShouldEqual, 1)
				So(metricValue(m.Registry(), "braincap_engine_assessments_total"), ShouldEqual, 3)
			})
		})

		Convey("When a large batch is scored", func() {
			items := make([]service.Assessment, 200)
			for i := range items {
				items[i] = valid(fmt.Sprintf("sub-%d", i))
				items[i].Drivers = scoring.Responses{"d1": float64(1 + i%5)}
			}
			results, err := svc.AssessBatch(ctx, items)

			Convey("Then every item should be scored deterministically", func() {
				So(err, ShouldBeNil)
				for i, r := range results {
					So(r.Report, ShouldNotBeNil)
					So(*r.Report.Pillars.Drivers, ShouldEqual, float64(i%5)*25)
				}
			})
		})

		Convey("When the batch is empty", func() {
			results, err := svc.AssessBatch(ctx, nil)
			So(err, ShouldBeNil)
			So(results, ShouldBeEmpty)
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.AssessBatch(cctx, []service.Assessment{valid("a"), valid("b")})

			Convey("Then the batch should fail with the context error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}
