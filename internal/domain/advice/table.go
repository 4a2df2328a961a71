// Package advice maps pillar scores to recommendation text using a static,
// ordered rule table.
package advice

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/okian/braincap/internal/domain/model"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/rules.yaml
var builtinFS embed.FS

// ErrInvalidTable is returned when a rule table document fails validation.
var ErrInvalidTable = errors.New("invalid advice table")

// Severity grades how urgently a pillar needs attention.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Text is the language-specific content of a rule.
type Text struct {
	Title      string   `yaml:"title" json:"title"`
	Body       string   `yaml:"body" json:"body"`
	Actions    []string `yaml:"actions" json:"actions"`
	Disclaimer string   `yaml:"disclaimer,omitempty" json:"disclaimer,omitempty"`
}

// Rule matches a pillar score in the closed range [ScoreMin, ScoreMax].
type Rule struct {
	Pillar   model.Pillar            `yaml:"pillar" json:"pillar"`
	ScoreMin float64                 `yaml:"score_min" json:"score_min"`
	ScoreMax float64                 `yaml:"score_max" json:"score_max"`
	Severity Severity                `yaml:"severity" json:"severity"`
	Text     map[model.Language]Text `yaml:"text" json:"text"`
}

// Matches reports whether the rule applies to score for pillar p.
func (r Rule) Matches(p model.Pillar, score float64) bool {
	return r.Pillar == p && score >= r.ScoreMin && score <= r.ScoreMax
}

// Band is a display band for a score. Bands are listed highest first.
type Band struct {
	Key   string                    `yaml:"key"`
	Min   float64                   `yaml:"min"`
	Color string                    `yaml:"color"`
	Label map[model.Language]string `yaml:"label"`
}

// Table is a parsed rule document.
type Table struct {
	DefaultLanguage model.Language `yaml:"default_language"`
	Rules           []Rule         `yaml:"rules"`
	Bands           []Band         `yaml:"bands"`
}

// ParseTable decodes and validates a YAML rule document.
func ParseTable(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("advice.ParseTable: %w", err)
	}
	if t.DefaultLanguage == "" {
		t.DefaultLanguage = model.DefaultLanguage
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadFile reads a rule document from path.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("advice.LoadFile: %w", err)
	}
	return ParseTable(data)
}

var builtin = sync.OnceValues(func() (*Table, error) {
	data, err := builtinFS.ReadFile("builtin/rules.yaml")
	if err != nil {
		return nil, fmt.Errorf("advice.Builtin: %w", err)
	}
	return ParseTable(data)
})

// Builtin returns the embedded rule table. It is parsed once and must not be
// modified by callers.
func Builtin() (*Table, error) {
	return builtin()
}

// Languages returns every language with rule text, default language first.
func (t *Table) Languages() []model.Language {
	seen := map[model.Language]bool{t.DefaultLanguage: true}
	var rest []model.Language
	for _, r := range t.Rules {
		for l := range r.Text {
			if !seen[l] {
				seen[l] = true
				rest = append(rest, l)
			}
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i] < rest[j] })
	return append([]model.Language{t.DefaultLanguage}, rest...)
}

// Validate checks rule ranges, severities and texts, and that the rules of
// every pillar together cover [0, 100] without gaps.
func (t *Table) Validate() error {
	if _, err := language.Parse(string(t.DefaultLanguage)); err != nil {
		return fmt.Errorf("%w: default language %q: %v", ErrInvalidTable, t.DefaultLanguage, err)
	}
	byPillar := make(map[model.Pillar][]Rule)
	for i, r := range t.Rules {
		if !r.Pillar.Valid() {
			return fmt.Errorf("%w: rule %d: unknown pillar %q", ErrInvalidTable, i, r.Pillar)
		}
		if !r.Severity.Valid() {
			return fmt.Errorf("%w: rule %d: unknown severity %q", ErrInvalidTable, i, r.Severity)
		}
		if r.ScoreMin < 0 || r.ScoreMax > 100 || r.ScoreMin > r.ScoreMax {
			return fmt.Errorf("%w: rule %d: bad range [%g, %g]", ErrInvalidTable, i, r.ScoreMin, r.ScoreMax)
		}
		if txt, ok := r.Text[t.DefaultLanguage]; !ok || txt.Title == "" {
			return fmt.Errorf("%w: rule %d: no %q text", ErrInvalidTable, i, t.DefaultLanguage)
		}
		for l := range r.Text {
			if _, err := language.Parse(string(l)); err != nil {
				return fmt.Errorf("%w: rule %d: language %q: %v", ErrInvalidTable, i, l, err)
			}
		}
		byPillar[r.Pillar] = append(byPillar[r.Pillar], r)
	}
	for _, p := range model.Pillars() {
		if err := checkCoverage(p, byPillar[p]); err != nil {
			return err
		}
	}
	return t.validateBands()
}

func checkCoverage(p model.Pillar, rules []Rule) error {
	if len(rules) == 0 {
		return fmt.Errorf("%w: pillar %q has no rules", ErrInvalidTable, p)
	}
	sorted := append([]Rule(nil), rules...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ScoreMin < sorted[j].ScoreMin })
	if sorted[0].ScoreMin > 0 {
		return fmt.Errorf("%w: pillar %q: scores below %g are not covered", ErrInvalidTable, p, sorted[0].ScoreMin)
	}
	reach := sorted[0].ScoreMax
	for _, r := range sorted[1:] {
		if r.ScoreMin > reach {
			return fmt.Errorf("%w: pillar %q: gap between %g and %g", ErrInvalidTable, p, reach, r.ScoreMin)
		}
		if r.ScoreMax > reach {
			reach = r.ScoreMax
		}
	}
	if reach < 100 {
		return fmt.Errorf("%w: pillar %q: scores above %g are not covered", ErrInvalidTable, p, reach)
	}
	return nil
}

func (t *Table) validateBands() error {
	if len(t.Bands) == 0 {
		return fmt.Errorf("%w: no bands", ErrInvalidTable)
	}
	for i, b := range t.Bands {
		if b.Key == "" {
			return fmt.Errorf("%w: band %d has no key", ErrInvalidTable, i)
		}
		if i > 0 && b.Min >= t.Bands[i-1].Min {
			return fmt.Errorf("%w: band %q is out of order", ErrInvalidTable, b.Key)
		}
		if b.Label[t.DefaultLanguage] == "" {
			return fmt.Errorf("%w: band %q: no %q label", ErrInvalidTable, b.Key, t.DefaultLanguage)
		}
	}
	if last := t.Bands[len(t.Bands)-1]; last.Min > 0 {
		return fmt.Errorf("%w: lowest band %q must start at 0", ErrInvalidTable, last.Key)
	}
	return nil
}
