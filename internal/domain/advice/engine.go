package advice

import (
	"github.com/okian/braincap/internal/domain/model"
	"golang.org/x/text/language"
)

// Record is the advice produced for one pillar.
type Record struct {
	Pillar     model.Pillar   `json:"pillar" yaml:"pillar"`
	Score      float64        `json:"score" yaml:"score"`
	Severity   Severity       `json:"severity" yaml:"severity"`
	Language   model.Language `json:"language" yaml:"language"`
	Title      string         `json:"title" yaml:"title"`
	Body       string         `json:"body" yaml:"body"`
	Actions    []string       `json:"actions" yaml:"actions"`
	Disclaimer string         `json:"disclaimer,omitempty" yaml:"disclaimer,omitempty"`
}

// BandLabel is the display band a score falls into.
type BandLabel struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
	Color string `json:"color" yaml:"color"`
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTable replaces the embedded rule table.
func WithTable(t *Table) Option {
	return func(e *Engine) {
		if t != nil {
			e.table = t
		}
	}
}

// Engine evaluates a rule table. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	table   *Table
	langs   []model.Language
	matcher language.Matcher
}

// NewEngine creates an Engine over the embedded table unless WithTable is
// given. It panics if the embedded table is malformed.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.table == nil {
		t, err := Builtin()
		if err != nil {
			panic(err)
		}
		e.table = t
	}
	e.langs = e.table.Languages()
	tags := make([]language.Tag, len(e.langs))
	for i, l := range e.langs {
		tags[i] = language.Make(string(l))
	}
	e.matcher = language.NewMatcher(tags)
	return e
}

// DefaultLanguage returns the language used when a requested one is missing.
func (e *Engine) DefaultLanguage() model.Language {
	return e.table.DefaultLanguage
}

// Rules returns the rules in evaluation order.
func (e *Engine) Rules() []Rule {
	return e.table.Rules
}

// Resolve maps a caller-supplied tag such as "en-US" to a supported text set.
// The second result is true when nothing matched and the default was used.
func (e *Engine) Resolve(lang model.Language) (model.Language, bool) {
	if lang == "" {
		return e.table.DefaultLanguage, false
	}
	tag, err := language.Parse(string(lang))
	if err != nil {
		return e.table.DefaultLanguage, true
	}
	_, idx, conf := e.matcher.Match(tag)
	if conf == language.No {
		return e.table.DefaultLanguage, true
	}
	return e.langs[idx], false
}

// Evaluate returns the advice of the first rule, in table order, whose pillar
// matches and whose closed range contains score. A score on a shared boundary
// takes the earlier rule.
func (e *Engine) Evaluate(p model.Pillar, score float64, lang model.Language) (Record, bool) {
	for _, r := range e.table.Rules {
		if !r.Matches(p, score) {
			continue
		}
		l, _ := e.Resolve(lang)
		txt, ok := r.Text[l]
		if !ok {
			l = e.table.DefaultLanguage
			txt = r.Text[l]
		}
		return Record{
			Pillar:     p,
			Score:      score,
			Severity:   r.Severity,
			Language:   l,
			Title:      txt.Title,
			Body:       txt.Body,
			Actions:    txt.Actions,
			Disclaimer: txt.Disclaimer,
		}, true
	}
	return Record{}, false
}

// EvaluateAll evaluates drivers, health and skills in that order. Pillars
// without a matching rule are omitted.
func (e *Engine) EvaluateAll(drivers, health, skills float64, lang model.Language) []Record {
	scores := map[model.Pillar]float64{
		model.PillarDrivers: drivers,
		model.PillarHealth:  health,
		model.PillarSkills:  skills,
	}
	out := make([]Record, 0, len(scores))
	for _, p := range model.Pillars() {
		if rec, ok := e.Evaluate(p, scores[p], lang); ok {
			out = append(out, rec)
		}
	}
	return out
}

// Band returns the display band for score.
func (e *Engine) Band(score float64, lang model.Language) BandLabel {
	bands := e.table.Bands
	b := bands[len(bands)-1]
	for _, cand := range bands {
		if score >= cand.Min {
			b = cand
			break
		}
	}
	l, _ := e.Resolve(lang)
	label, ok := b.Label[l]
	if !ok {
		label = b.Label[e.table.DefaultLanguage]
	}
	return BandLabel{Key: b.Key, Label: label, Color: b.Color}
}
