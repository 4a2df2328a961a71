package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			m := NewManager()

			Convey("Then it should own a private registry", func() {
				So(m, ShouldNotBeNil)
				So(m.Registry(), ShouldNotBeNil)
				So(m.namespace, ShouldEqual, DefaultNamespace)
				So(m.subsystem, ShouldEqual, DefaultSubsystem)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithDurationBuckets([]float64{1, 10, 100}),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(m.Registry(), ShouldEqual, registry)
				So(m.durationBuckets, ShouldResemble, []float64{1, 10, 100})
			})

			Convey("Then metric names should carry namespace and subsystem", func() {
				m.RecordAssessment("baseline")
				n, err := testutil.GatherAndCount(registry, "test_unit_assessments_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 1)
			})
		})

		Convey("When empty option values are passed", func() {
			m := NewManager(WithNamespace(""), WithSubsystem(""), WithDurationBuckets(nil), WithPrometheusRegistry(nil))

			Convey("Then defaults should be kept", func() {
				So(m.namespace, ShouldEqual, DefaultNamespace)
				So(m.subsystem, ShouldEqual, DefaultSubsystem)
				So(m.durationBuckets, ShouldNotBeEmpty)
				So(m.Registry(), ShouldNotBeNil)
			})
		})

		Convey("When two managers are created", func() {
			So(func() {
				NewManager()
				NewManager()
			}, ShouldNotPanic)
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given an enabled manager", t, func() {
		m := NewManager()

		Convey("When assessments are recorded", func() {
			m.RecordAssessment("baseline")
			m.RecordAssessment("baseline")
			m.RecordAssessment("weekly")
			m.RecordAssessmentError("invalid")

			Convey("Then counters should reflect them by label", func() {
				So(testutil.ToFloat64(m.assessments.WithLabelValues("baseline")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.assessments.WithLabelValues("weekly")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.assessmentErrors.WithLabelValues("invalid")), ShouldEqual, 1)
			})
		})

		Convey("When advice, fallbacks and duplicates are recorded", func() {
			m.RecordAdvice("health", "high")
			m.RecordLanguageFallback()
			m.RecordDuplicate()
			m.RecordDuplicate()

			So(testutil.ToFloat64(m.advice.WithLabelValues("health", "high")), ShouldEqual, 1)
			So(testutil.ToFloat64(m.langFallbacks), ShouldEqual, 1)
			So(testutil.ToFloat64(m.duplicates), ShouldEqual, 2)
		})

		Convey("When scores and durations are observed", func() {
			m.ObservePillarScore("drivers", 55)
			m.ObservePillarScore("skills", 72.5)
			m.ObserveTotalScore(63.4)
			m.ObserveBatchDuration(25 * time.Millisecond)

			Convey("Then each histogram should have samples", func() {
				So(testutil.CollectAndCount(m.pillarScore), ShouldEqual, 2)
				So(testutil.CollectAndCount(m.totalScore), ShouldEqual, 1)
				So(testutil.CollectAndCount(m.batchDuration), ShouldEqual, 1)
			})
		})
	})
}

func TestManagerDisabledAndNil(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithMetricsEnabled(false))

		Convey("Then recording should be a no-op", func() {
			So(func() {
				m.RecordAssessment("baseline")
				m.ObservePillarScore("health", 10)
				m.ObserveBatchDuration(time.Second)
			}, ShouldNotPanic)
			mfs, err := m.Registry().Gather()
			So(err, ShouldBeNil)
			So(mfs, ShouldBeEmpty)
		})
	})

	Convey("Given a nil manager", t, func() {
		var m *Manager

		Convey("Then every method should be safe", func() {
			So(func() {
				m.RecordAssessment("baseline")
				m.RecordAssessmentError("x")
				m.ObservePillarScore("health", 10)
				m.ObserveTotalScore(10)
				m.RecordAdvice("health", "low")
				m.RecordLanguageFallback()
				m.RecordDuplicate()
				m.ObserveBatchDuration(time.Second)
			}, ShouldNotPanic)
			So(m.Registry(), ShouldBeNil)
			So(errors.Is(m.WriteTextfile("x.prom"), ErrExportFailed), ShouldBeTrue)
		})
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given a manager with recorded metrics", t, func() {
		m := NewManager()
		m.RecordAssessment("monthly")
		path := filepath.Join(t.TempDir(), "braincap.prom")

		Convey("When the metrics are exported", func() {
			err := m.WriteTextfile(path)

			Convey("Then the file should hold the exposition text", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(path)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `braincap_engine_assessments_total{survey_type="monthly"} 1`)
			})
		})

		Convey("When the target directory does not exist", func() {
			err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
			So(err, ShouldNotBeNil)
			So(errors.Is(err, ErrExportFailed), ShouldBeTrue)
			So(strings.Contains(err.Error(), "missing"), ShouldBeTrue)
		})
	})
}
