package sample

import (
	"time"

	"github.com/okian/braincap/internal/domain/scoring"
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSeed makes the output reproducible for a given seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// WithDuplicateRate sets the share (0-1) of assessments that reuse an
// earlier submission ID.
func WithDuplicateRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate <= 1 {
			g.duplicateRate = rate
		}
	}
}

// WithStart sets the TakenAt of the first assessment; later ones follow a
// week apart.
func WithStart(t time.Time) Option {
	return func(g *Generator) {
		if !t.IsZero() {
			g.start = t
		}
	}
}

// WithScorer sets the scorer whose item scales shape the answers, so a
// tables override also changes what is generated.
func WithScorer(s *scoring.Scorer) Option {
	return func(g *Generator) {
		if s != nil {
			g.scorer = s
		}
	}
}
