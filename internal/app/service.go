// Package service scores assessments and produces advice. It ties the pure
// scoring and advice engines to validation, logging and metrics.
package service

import (
	"runtime"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/okian/braincap/internal/domain/advice"
	"github.com/okian/braincap/internal/domain/dedupe"
	"github.com/okian/braincap/internal/domain/model"
	"github.com/okian/braincap/internal/domain/scoring"
	"github.com/okian/braincap/pkg/logger"
	"github.com/okian/braincap/pkg/metrics"
)

// Service scores assessments. It is safe for concurrent use.
type Service struct {
	scorer   *scoring.Scorer
	advisor  *advice.Engine
	metrics  *metrics.Manager
	validate *validator.Validate

	workerCount     int
	dedupeSize      int
	defaultLanguage model.Language
	now             func() time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithScorer sets the scoring engine.
func WithScorer(s *scoring.Scorer) Option {
	return func(svc *Service) {
		if s != nil {
			svc.scorer = s
		}
	}
}

// WithAdviceEngine sets the advice engine.
func WithAdviceEngine(e *advice.Engine) Option {
	return func(svc *Service) {
		if e != nil {
			svc.advisor = e
		}
	}
}

// WithMetrics sets the metrics manager. Without it nothing is recorded.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithWorkerCount bounds how many batch assessments are scored at once.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithDedupeSize bounds the submission IDs remembered within a batch. A size
// of 0 remembers every ID.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.dedupeSize = size
		}
	}
}

// WithDefaultLanguage sets the language used when an assessment names none.
func WithDefaultLanguage(lang model.Language) Option {
	return func(s *Service) {
		if lang != "" {
			s.defaultLanguage = lang
		}
	}
}

// WithClock sets the time source used for assessments without TakenAt.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service. Engines default to the embedded tables; the
// logger defaults to the global one, so logger.Init must have run.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     runtime.NumCPU(),
		dedupeSize:      dedupe.DefaultMaxSize,
		defaultLanguage: model.DefaultLanguage,
		now:             time.Now,
		validate:        newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scorer == nil {
		s.scorer = scoring.NewScorer()
	}
	if s.advisor == nil {
		s.advisor = advice.NewEngine()
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s
}

// Scorer returns the scoring engine in use.
func (s *Service) Scorer() *scoring.Scorer { return s.scorer }

// Advisor returns the advice engine in use.
func (s *Service) Advisor() *advice.Engine { return s.advisor }

// Metrics returns the metrics manager, which may be nil.
func (s *Service) Metrics() *metrics.Manager { return s.metrics }
