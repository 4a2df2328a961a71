package service

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/okian/braincap/internal/domain/advice"
	"github.com/okian/braincap/internal/domain/model"
	"github.com/okian/braincap/internal/domain/scoring"
	"github.com/okian/braincap/pkg/logger"
)

// neutralScore stands in for a pillar that has never been scored.
const neutralScore = 50.0

// Assess validates and scores one assessment.
//
// A pillar is scored only when it has input. Weekly surveys usually carry
// only lifestyle answers, so a missing health or skills pillar is taken from
// Previous. The total and snapshot exist only when all three pillars do.
func (s *Service) Assess(ctx context.Context, a Assessment) (*Report, error) {
	if err := s.check(ctx, a); err != nil {
		return nil, err
	}
	return s.score(ctx, a), nil
}

func (s *Service) check(ctx context.Context, a Assessment) error {
	if err := s.validate.StructCtx(ctx, a); err != nil {
		s.metrics.RecordAssessmentError("invalid")
		s.logger.Debug(ctx, "assessment rejected",
			logger.String("submission_id", a.SubmissionID),
			logger.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrInvalidAssessment, err)
	}
	return nil
}

func (s *Service) score(ctx context.Context, a Assessment) *Report {
	lang := s.resolveLanguage(ctx, a.Language)
	takenAt := a.TakenAt
	if takenAt.IsZero() {
		takenAt = s.now().UTC()
	}

	var pillars PillarScores
	if len(a.Drivers) > 0 {
		pillars.Drivers = ptr(s.scorer.Drivers(a.Drivers))
	}
	if len(a.Health) > 0 {
		pillars.Health = ptr(s.scorer.Health(a.Health))
	}
	tests := scoring.TestScores(a.Tests.Measurements()...)
	if len(a.SkillsSurvey) > 0 || len(tests) > 0 {
		pillars.Skills = ptr(s.scorer.Skills(a.SkillsSurvey, tests))
	}
	if a.SurveyType == model.SurveyWeekly && a.Previous != nil {
		if pillars.Health == nil {
			pillars.Health = carry(a.Previous.Health)
		}
		if pillars.Skills == nil {
			pillars.Skills = carry(a.Previous.Skills)
		}
	}

	r := &Report{
		ID:           uuid.New(),
		SubmissionID: a.SubmissionID,
		UserID:       a.UserID,
		SurveyType:   a.SurveyType,
		Language:     lang,
		TakenAt:      takenAt,
		Pillars:      pillars,
		Benchmark:    s.scorer.Benchmark(a.Age),
		Bands:        make(map[model.Pillar]advice.BandLabel, 3),
	}
	if len(tests) > 0 {
		r.Tests = tests
	}
	if pillars.Complete() {
		snap := scoring.NewSnapshot(*pillars.Drivers, *pillars.Health, *pillars.Skills, takenAt)
		r.Snapshot = &snap
		r.Total = ptr(snap.Total)
		s.metrics.ObserveTotalScore(snap.Total)
	}
	for _, p := range model.Pillars() {
		v := pillars.Get(p)
		if v == nil {
			continue
		}
		s.metrics.ObservePillarScore(string(p), *v)
		r.Bands[p] = s.advisor.Band(*v, lang)
		if rec, ok := s.advisor.Evaluate(p, *v, lang); ok {
			r.Advice = append(r.Advice, rec)
			s.metrics.RecordAdvice(string(p), string(rec.Severity))
		}
	}
	s.metrics.RecordAssessment(string(a.SurveyType))

	fields := []logger.Field{
		logger.String("report_id", r.ID.String()),
		logger.String("submission_id", a.SubmissionID),
		logger.String("survey_type", string(a.SurveyType)),
		logger.Int("advice", len(r.Advice)),
	}
	if r.Total != nil {
		fields = append(fields, logger.Float64("total", *r.Total))
	}
	s.logger.Debug(ctx, "assessment scored", fields...)
	return r
}

// ScoreTests scores a cognitive-test batch and the skills pillar it implies,
// optionally combined with skills survey answers.
func (s *Service) ScoreTests(ctx context.Context, tests *CognitiveTests, survey scoring.Responses) (*TestReport, error) {
	if err := s.validate.VarCtx(ctx, survey, "omitempty,dive,keys,required,endkeys,finite"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAssessment, err)
	}
	if tests != nil {
		if err := s.validate.StructCtx(ctx, tests); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidAssessment, err)
		}
	}
	scores := scoring.TestScores(tests.Measurements()...)
	r := &TestReport{
		Tests:  scores,
		Skills: s.scorer.Skills(survey, scores),
	}
	s.metrics.ObservePillarScore(string(model.PillarSkills), r.Skills)
	s.logger.Debug(ctx, "tests scored",
		logger.Int("tests", len(scores)),
		logger.Float64("skills", r.Skills),
	)
	return r, nil
}

// Recommend returns advice for stored pillar scores. Pillars that were never
// scored, or hold NaN or an infinity, are treated as a neutral 50.
func (s *Service) Recommend(ctx context.Context, scores PillarScores, lang model.Language) []advice.Record {
	resolved := s.resolveLanguage(ctx, lang)
	d, h, sk := orNeutral(scores.Drivers), orNeutral(scores.Health), orNeutral(scores.Skills)
	recs := s.advisor.EvaluateAll(d, h, sk, resolved)
	for _, r := range recs {
		s.metrics.RecordAdvice(string(r.Pillar), string(r.Severity))
	}
	return recs
}

// resolveLanguage picks the text set for a request, logging and counting a
// fallback to the default.
func (s *Service) resolveLanguage(ctx context.Context, requested model.Language) model.Language {
	if requested == "" {
		requested = s.defaultLanguage
	}
	lang, fellBack := s.advisor.Resolve(requested)
	if fellBack {
		s.metrics.RecordLanguageFallback()
		s.logger.Warn(ctx, "unsupported language, using default",
			logger.String("requested", string(requested)),
			logger.String("language", string(lang)),
		)
	}
	return lang
}

func ptr(v float64) *float64 { return &v }

func carry(prev *float64) *float64 {
	if prev == nil {
		return nil
	}
	return ptr(scoring.Round1(scoring.Clamp(*prev)))
}

func orNeutral(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return neutralScore
	}
	return *v
}
