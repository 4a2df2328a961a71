package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/okian/braincap/internal/domain/advice"
	"github.com/okian/braincap/internal/domain/model"
	"github.com/okian/braincap/internal/domain/scoring"
)

// CognitiveTests is an optional batch of raw cognitive-test results.
type CognitiveTests struct {
	Attention   *scoring.Attention   `json:"attention,omitempty" yaml:"attention,omitempty"`
	Memory      *scoring.Memory      `json:"memory,omitempty" yaml:"memory,omitempty"`
	Flexibility *scoring.Flexibility `json:"flexibility,omitempty" yaml:"flexibility,omitempty"`
}

// Measurements returns the present results.
func (c *CognitiveTests) Measurements() []scoring.Measurement {
	if c == nil {
		return nil
	}
	var ms []scoring.Measurement
	if c.Attention != nil {
		ms = append(ms, *c.Attention)
	}
	if c.Memory != nil {
		ms = append(ms, *c.Memory)
	}
	if c.Flexibility != nil {
		ms = append(ms, *c.Flexibility)
	}
	return ms
}

// PillarScores holds optional pillar scores, e.g. from a stored snapshot.
type PillarScores struct {
	Drivers *float64 `json:"drivers,omitempty" yaml:"drivers,omitempty" validate:"omitempty,finite"`
	Health  *float64 `json:"health,omitempty" yaml:"health,omitempty" validate:"omitempty,finite"`
	Skills  *float64 `json:"skills,omitempty" yaml:"skills,omitempty" validate:"omitempty,finite"`
}

// Get returns the score for p, or nil.
func (p PillarScores) Get(pillar model.Pillar) *float64 {
	switch pillar {
	case model.PillarDrivers:
		return p.Drivers
	case model.PillarHealth:
		return p.Health
	case model.PillarSkills:
		return p.Skills
	}
	return nil
}

// Complete reports whether all three pillars are present.
func (p PillarScores) Complete() bool {
	return p.Drivers != nil && p.Health != nil && p.Skills != nil
}

// Assessment is one survey submission with optional test results.
type Assessment struct {
	SubmissionID string            `json:"submission_id,omitempty" yaml:"submission_id,omitempty"`
	UserID       string            `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	SurveyType   model.SurveyType  `json:"survey_type" yaml:"survey_type" validate:"required,oneof=baseline weekly monthly"`
	Age          *int              `json:"age,omitempty" yaml:"age,omitempty" validate:"omitempty,gte=0,lte=150"`
	Language     model.Language    `json:"language,omitempty" yaml:"language,omitempty"`
	Drivers      scoring.Responses `json:"drivers,omitempty" yaml:"drivers,omitempty" validate:"omitempty,dive,keys,required,endkeys,finite"`
	Health       scoring.Responses `json:"health,omitempty" yaml:"health,omitempty" validate:"omitempty,dive,keys,required,endkeys,finite"`
	SkillsSurvey scoring.Responses `json:"skills_survey,omitempty" yaml:"skills_survey,omitempty" validate:"omitempty,dive,keys,required,endkeys,finite"`
	Tests        *CognitiveTests   `json:"tests,omitempty" yaml:"tests,omitempty"`
	Previous     *PillarScores     `json:"previous,omitempty" yaml:"previous,omitempty"`
	TakenAt      time.Time         `json:"taken_at,omitempty" yaml:"taken_at,omitempty"`
}

// Report is the scored result of an Assessment.
type Report struct {
	ID           uuid.UUID                         `json:"id" yaml:"id"`
	SubmissionID string                            `json:"submission_id,omitempty" yaml:"submission_id,omitempty"`
	UserID       string                            `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	SurveyType   model.SurveyType                  `json:"survey_type" yaml:"survey_type"`
	Language     model.Language                    `json:"language" yaml:"language"`
	TakenAt      time.Time                         `json:"taken_at" yaml:"taken_at"`
	Pillars      PillarScores                      `json:"pillars" yaml:"pillars"`
	Total        *float64                          `json:"total,omitempty" yaml:"total,omitempty"`
	Snapshot     *scoring.Snapshot                 `json:"snapshot,omitempty" yaml:"snapshot,omitempty"`
	Tests        map[string]float64                `json:"tests,omitempty" yaml:"tests,omitempty"`
	Benchmark    scoring.Benchmark                 `json:"benchmark" yaml:"benchmark"`
	Bands        map[model.Pillar]advice.BandLabel `json:"bands,omitempty" yaml:"bands,omitempty"`
	Advice       []advice.Record                   `json:"advice,omitempty" yaml:"advice,omitempty"`
}

// TestReport is the result of scoring a cognitive-test batch.
type TestReport struct {
	Tests  map[string]float64 `json:"tests" yaml:"tests"`
	Skills float64            `json:"skills" yaml:"skills"`
}

// BatchResult pairs one batch input with its outcome. Exactly one of Report
// and Err is set unless the submission was a skipped duplicate.
type BatchResult struct {
	Index     int     `json:"index" yaml:"index"`
	Report    *Report `json:"report,omitempty" yaml:"report,omitempty"`
	Duplicate bool    `json:"duplicate,omitempty" yaml:"duplicate,omitempty"`
	Err       error   `json:"-" yaml:"-"`
	Error     string  `json:"error,omitempty" yaml:"error,omitempty"`
}
