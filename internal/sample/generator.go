// Package sample generates synthetic assessments for exercising batch
// scoring. Respondents follow wellness profiles so the scores spread across
// every advice band.
package sample

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	service "github.com/okian/braincap/internal/app"
	"github.com/okian/braincap/internal/domain/model"
	"github.com/okian/braincap/internal/domain/scoring"
)

// Items is the questionnaire per pillar. How each item is scaled comes from
// the scorer's tables.
var Items = map[model.Pillar][]string{
	model.PillarDrivers: {"d1", "d2", "d3", "d4", "d5", "d6"},
	model.PillarHealth:  {"h1", "h2", "h3", "h4", "h5", "h6", "h7", "h8"},
	model.PillarSkills:  {"s1", "s2", "s3", "s4", "s5"},
}

// Profile is a respondent's wellness level range, 0 worst to 1 best.
type Profile struct {
	Name     string
	Min, Max float64
	Weight   int // relative frequency
}

// Profiles are drawn by weight.
var Profiles = []Profile{
	{Name: "struggling", Min: 0.0, Max: 0.3, Weight: 2},
	{Name: "average", Min: 0.3, Max: 0.7, Weight: 5},
	{Name: "thriving", Min: 0.7, Max: 1.0, Weight: 2},
	{Name: "mixed", Min: 0.0, Max: 1.0, Weight: 1},
}

const (
	answerNoise  = 0.15
	memoryTrials = 10
	weekly       = 7 * 24 * time.Hour
)

// Generator produces assessments. It is not safe for concurrent use.
type Generator struct {
	seed          uint64
	duplicateRate float64
	start         time.Time
	scorer        *scoring.Scorer
	rng           *rand.Rand
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		seed:  1,
		start: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.scorer == nil {
		g.scorer = scoring.NewScorer()
	}
	g.rng = rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	return g
}

// Generate returns n assessments. Every fourth one is a weekly survey that
// carries only lifestyle answers plus the previous pillar scores.
func (g *Generator) Generate(n int) []service.Assessment {
	out := make([]service.Assessment, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 && g.rng.Float64() < g.duplicateRate {
			dup := out[g.rng.IntN(i)]
			out = append(out, dup)
			continue
		}
		out = append(out, g.one(i))
	}
	return out
}

func (g *Generator) one(i int) service.Assessment {
	w := g.wellness()
	age := 20 + g.rng.IntN(41)
	a := service.Assessment{
		SubmissionID: fmt.Sprintf("sample-%04d", i),
		UserID:       fmt.Sprintf("user-%04d", i),
		SurveyType:   model.SurveyBaseline,
		Age:          &age,
		Language:     model.LanguageJapanese,
		TakenAt:      g.start.Add(time.Duration(i) * weekly),
		Drivers:      g.answers(model.PillarDrivers, w),
	}
	if i%2 == 1 {
		a.Language = model.LanguageEnglish
	}
	if i%4 == 3 {
		a.SurveyType = model.SurveyWeekly
		h, s := round1(100*w), round1(100*g.jitter(w))
		a.Previous = &service.PillarScores{Health: &h, Skills: &s}
		return a
	}
	a.Health = g.answers(model.PillarHealth, w)
	a.SkillsSurvey = g.answers(model.PillarSkills, w)
	a.Tests = g.tests(w)
	return a
}

func (g *Generator) wellness() float64 {
	total := 0
	for _, p := range Profiles {
		total += p.Weight
	}
	pick := g.rng.IntN(total)
	for _, p := range Profiles {
		if pick < p.Weight {
			return p.Min + g.rng.Float64()*(p.Max-p.Min)
		}
		pick -= p.Weight
	}
	return g.rng.Float64()
}

// jitter moves w by up to answerNoise and keeps it in [0, 1].
func (g *Generator) jitter(w float64) float64 {
	return math.Min(1, math.Max(0, w+(g.rng.Float64()*2-1)*answerNoise))
}

// answers fills every item of p with the whole-number answer that a
// respondent of wellness w would give on that item's scale.
func (g *Generator) answers(p model.Pillar, w float64) scoring.Responses {
	items := Items[p]
	r := make(scoring.Responses, len(items))
	for _, id := range items {
		sc := g.scorer.Scale(p, id)
		step := math.Round(g.jitter(w) * (sc.Max - sc.Min))
		if sc.Reversed {
			r[id] = sc.Max - step
		} else {
			r[id] = sc.Min + step
		}
	}
	return r
}

func (g *Generator) tests(w float64) *service.CognitiveTests {
	return &service.CognitiveTests{
		Attention: &scoring.Attention{
			AvgReactionMs: round1(800 - 650*g.jitter(w)),
			CorrectRate:   round2(0.5 + 0.5*g.jitter(w)),
			TotalTrials:   20,
		},
		Memory: &scoring.Memory{
			CorrectCount: int(math.Round(memoryTrials * g.jitter(w))),
			TotalTrials:  memoryTrials,
		},
		Flexibility: &scoring.Flexibility{
			AvgReactionMs: round1(1000 - 800*g.jitter(w)),
			CorrectRate:   round2(0.5 + 0.5*g.jitter(w)),
			TotalTrials:   20,
		},
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
