package scoring

import (
	"sort"

	"github.com/okian/braincap/internal/domain/model"
)

// Responses maps a survey item identifier to its raw answer.
type Responses map[string]float64

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithTables replaces the embedded tables, e.g. with ones loaded from a file.
func WithTables(t *Tables) Option {
	return func(s *Scorer) {
		if t != nil {
			s.tables = t
		}
	}
}

// Scorer scores survey pillars against a fixed set of tables. It holds no
// mutable state and is safe for concurrent use.
type Scorer struct {
	tables *Tables
}

// NewScorer creates a Scorer over the embedded tables unless WithTables is
// given. It panics if the embedded tables are malformed.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{}
	for _, opt := range opts {
		opt(s)
	}
	if s.tables == nil {
		t, err := BuiltinTables()
		if err != nil {
			panic(err)
		}
		s.tables = t
	}
	return s
}

// Drivers scores the lifestyle pillar. Exposure items are reverse scored;
// every item has weight 1.
func (s *Scorer) Drivers(responses Responses) float64 {
	return PillarScore(s.surveyItems(model.PillarDrivers, responses))
}

// Health scores the brain-health pillar. The item table decides between the
// 0-3 screening scale, the 1-10 stress scale and the reversed 1-5 default.
func (s *Scorer) Health(responses Responses) float64 {
	return PillarScore(s.surveyItems(model.PillarHealth, responses))
}

// Skills scores the skills pillar from survey answers (weight 1) and
// already-normalized cognitive test scores (weight 1.5, passed through).
func (s *Scorer) Skills(survey Responses, tests map[string]float64) float64 {
	items := s.surveyItems(model.PillarSkills, survey)
	for _, name := range sortedKeys(tests) {
		items = append(items, Item{Score: tests[name], Weight: CognitiveTestWeight})
	}
	return PillarScore(items)
}

// Scale returns the scale an answer to itemID is scored on.
func (s *Scorer) Scale(p model.Pillar, itemID string) Scale {
	return s.tables.Pillars[p].ScaleFor(itemID)
}

func (s *Scorer) surveyItems(p model.Pillar, responses Responses) []Item {
	scales := s.tables.Pillars[p]
	items := make([]Item, 0, len(responses))
	// Sorted so the floating-point sum does not depend on map order.
	for _, id := range sortedKeys(responses) {
		items = append(items, Item{
			Score:  scales.ScaleFor(id).Normalize(responses[id]),
			Weight: SurveyItemWeight,
		})
	}
	return items
}

func sortedKeys[M ~map[string]float64](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
