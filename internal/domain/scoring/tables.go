package scoring

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/okian/braincap/internal/domain/model"
	"gopkg.in/yaml.v3"
)

//go:embed builtin/tables.yaml
var builtinFS embed.FS

// ErrInvalidTables is returned when a scoring table document fails validation.
var ErrInvalidTables = errors.New("invalid scoring tables")

// Scale describes how one survey item is normalized.
type Scale struct {
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	Reversed bool    `yaml:"reversed"`
}

// Normalize applies the scale to raw.
func (s Scale) Normalize(raw float64) float64 {
	if s.Reversed {
		return NormalizeReversed(raw, s.Min, s.Max)
	}
	return Normalize(raw, s.Min, s.Max)
}

// PillarScales classifies the survey items of one pillar.
type PillarScales struct {
	Default Scale            `yaml:"default"`
	Items   map[string]Scale `yaml:"items"`
}

// ScaleFor returns the scale for itemID, falling back to the pillar default.
func (p PillarScales) ScaleFor(itemID string) Scale {
	if s, ok := p.Items[itemID]; ok {
		return s
	}
	return p.Default
}

// Bracket is one row of the benchmark table.
type Bracket struct {
	Name     string  `yaml:"bracket"`
	BelowAge *int    `yaml:"below_age"`
	Drivers  float64 `yaml:"drivers"`
	Health   float64 `yaml:"health"`
	Skills   float64 `yaml:"skills"`
	Total    float64 `yaml:"total"`
}

// Benchmarks is the ordered benchmark table.
type Benchmarks struct {
	Default  string    `yaml:"default"`
	Brackets []Bracket `yaml:"brackets"`
}

// Tables holds the static item classification and benchmark data.
type Tables struct {
	Pillars    map[model.Pillar]PillarScales `yaml:"pillars"`
	Benchmarks Benchmarks                    `yaml:"benchmarks"`
}

// ParseTables decodes and validates a YAML tables document. A pillar
// without a default scale uses the 1-5 Likert scale.
func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("scoring.ParseTables: %w", err)
	}
	for p, ps := range t.Pillars {
		if ps.Default == (Scale{}) {
			ps.Default = Scale{Min: LikertMin, Max: LikertMax}
			t.Pillars[p] = ps
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTablesFile reads a tables document from path.
func LoadTablesFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scoring.LoadTablesFile: %w", err)
	}
	return ParseTables(data)
}

var builtinTables = sync.OnceValues(func() (*Tables, error) {
	data, err := builtinFS.ReadFile("builtin/tables.yaml")
	if err != nil {
		return nil, fmt.Errorf("scoring.BuiltinTables: %w", err)
	}
	return ParseTables(data)
})

// BuiltinTables returns the embedded tables. They are parsed once and must
// not be modified by callers.
func BuiltinTables() (*Tables, error) {
	return builtinTables()
}

// Validate checks that every pillar has a usable default scale and that the
// benchmark brackets are ordered, named and end with an open bracket.
func (t *Tables) Validate() error {
	for _, p := range model.Pillars() {
		ps, ok := t.Pillars[p]
		if !ok {
			return fmt.Errorf("%w: pillar %q has no scales", ErrInvalidTables, p)
		}
		if ps.Default.Max <= ps.Default.Min {
			return fmt.Errorf("%w: pillar %q default scale is empty", ErrInvalidTables, p)
		}
		for id, s := range ps.Items {
			if s.Max <= s.Min {
				return fmt.Errorf("%w: item %q scale is empty", ErrInvalidTables, id)
			}
		}
	}
	for p := range t.Pillars {
		if !p.Valid() {
			return fmt.Errorf("%w: unknown pillar %q", ErrInvalidTables, p)
		}
	}

	b := t.Benchmarks.Brackets
	if len(b) == 0 {
		return fmt.Errorf("%w: no benchmark brackets", ErrInvalidTables)
	}
	prev := 0
	found := false
	for i, br := range b {
		if br.Name == "" {
			return fmt.Errorf("%w: bracket %d has no name", ErrInvalidTables, i)
		}
		if br.Name == t.Benchmarks.Default {
			found = true
		}
		last := i == len(b)-1
		switch {
		case last && br.BelowAge != nil:
			return fmt.Errorf("%w: last bracket %q must be open-ended", ErrInvalidTables, br.Name)
		case !last && br.BelowAge == nil:
			return fmt.Errorf("%w: bracket %q needs below_age", ErrInvalidTables, br.Name)
		case !last && i > 0 && *br.BelowAge <= prev:
			return fmt.Errorf("%w: bracket %q is out of order", ErrInvalidTables, br.Name)
		}
		if br.BelowAge != nil {
			prev = *br.BelowAge
		}
	}
	if !found {
		return fmt.Errorf("%w: default bracket %q not found", ErrInvalidTables, t.Benchmarks.Default)
	}
	return nil
}
