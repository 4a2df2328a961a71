// Package metrics provides Prometheus metrics for assessment scoring.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration.
const (
	DefaultNamespace = "braincap"
	DefaultSubsystem = "engine"
)

// Manager owns the scoring metrics and the registry they live in. A nil
// *Manager is valid and records nothing.
type Manager struct {
	namespace       string
	subsystem       string
	durationBuckets []float64
	enabled         bool
	customLabels    map[string]string
	registry        *prometheus.Registry

	assessments      *prometheus.CounterVec
	assessmentErrors *prometheus.CounterVec
	pillarScore      *prometheus.HistogramVec
	totalScore       prometheus.Histogram
	advice           *prometheus.CounterVec
	langFallbacks    prometheus.Counter
	duplicates       prometheus.Counter
	batchDuration    prometheus.Histogram
}

// NewManager creates a metrics manager registered on its own registry unless
// WithPrometheusRegistry is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:       DefaultNamespace,
		subsystem:       DefaultSubsystem,
		durationBuckets: prometheus.ExponentialBuckets(1, 4, 8),
		enabled:         true,
		customLabels:    make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	if m.enabled {
		m.initializeMetrics()
	}
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)
	scoreBuckets := prometheus.LinearBuckets(10, 10, 10)

	m.assessments = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "assessments_total",
		Help:        "Assessments scored, by survey type.",
		ConstLabels: labels,
	}, []string{"survey_type"})

	m.assessmentErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "assessment_errors_total",
		Help:        "Assessments rejected, by reason.",
		ConstLabels: labels,
	}, []string{"reason"})

	m.pillarScore = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pillar_score",
		Help:        "Distribution of pillar scores (0-100).",
		Buckets:     scoreBuckets,
		ConstLabels: labels,
	}, []string{"pillar"})

	m.totalScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "total_score",
		Help:        "Distribution of total Brain Capital scores (0-100).",
		Buckets:     scoreBuckets,
		ConstLabels: labels,
	})

	m.advice = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "advice_total",
		Help:        "Advice records produced, by pillar and severity.",
		ConstLabels: labels,
	}, []string{"pillar", "severity"})

	m.langFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "language_fallbacks_total",
		Help:        "Requests whose language had no text set and used the default.",
		ConstLabels: labels,
	})

	m.duplicates = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duplicates_total",
		Help:        "Batch submissions skipped because their ID was already scored.",
		ConstLabels: labels,
	})

	m.batchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "batch_duration_milliseconds",
		Help:        "Wall time of batch scoring in milliseconds.",
		Buckets:     m.durationBuckets,
		ConstLabels: labels,
	})
}

func (m *Manager) active() bool { return m != nil && m.enabled }

// RecordAssessment counts one scored assessment.
func (m *Manager) RecordAssessment(surveyType string) {
	if m.active() {
		m.assessments.WithLabelValues(surveyType).Inc()
	}
}

// RecordAssessmentError counts one rejected assessment.
func (m *Manager) RecordAssessmentError(reason string) {
	if m.active() {
		m.assessmentErrors.WithLabelValues(reason).Inc()
	}
}

// ObservePillarScore records a pillar score.
func (m *Manager) ObservePillarScore(pillar string, score float64) {
	if m.active() {
		m.pillarScore.WithLabelValues(pillar).Observe(score)
	}
}

// ObserveTotalScore records a total score.
func (m *Manager) ObserveTotalScore(score float64) {
	if m.active() {
		m.totalScore.Observe(score)
	}
}

// RecordAdvice counts one advice record.
func (m *Manager) RecordAdvice(pillar, severity string) {
	if m.active() {
		m.advice.WithLabelValues(pillar, severity).Inc()
	}
}

// RecordLanguageFallback counts one request served in the default language.
func (m *Manager) RecordLanguageFallback() {
	if m.active() {
		m.langFallbacks.Inc()
	}
}

// RecordDuplicate counts one skipped duplicate submission.
func (m *Manager) RecordDuplicate() {
	if m.active() {
		m.duplicates.Inc()
	}
}

// ObserveBatchDuration records how long a batch took.
func (m *Manager) ObserveBatchDuration(d time.Duration) {
	if m.active() {
		m.batchDuration.Observe(float64(d) / float64(time.Millisecond))
	}
}

// Registry returns the registry the metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile writes all gathered metrics to path in the text exposition
// format, for node_exporter's textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if m == nil {
		return fmt.Errorf("%w: no metrics manager", ErrExportFailed)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}
