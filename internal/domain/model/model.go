// Package model contains domain values shared between the scoring engine,
// the advice engine and their callers.
package model

import "strings"

// Pillar names one of the three Brain Capital pillars.
type Pillar string

const (
	PillarDrivers Pillar = "drivers" // lifestyle and environment
	PillarHealth  Pillar = "health"  // mental and brain health
	PillarSkills  Pillar = "skills"  // cognitive and non-cognitive skills
)

// Pillars returns the pillars in reporting order.
func Pillars() []Pillar {
	return []Pillar{PillarDrivers, PillarHealth, PillarSkills}
}

// Valid reports whether p is a known pillar.
func (p Pillar) Valid() bool {
	switch p {
	case PillarDrivers, PillarHealth, PillarSkills:
		return true
	}
	return false
}

// SurveyType identifies the survey cadence a submission belongs to.
type SurveyType string

const (
	SurveyBaseline SurveyType = "baseline"
	SurveyWeekly   SurveyType = "weekly"
	SurveyMonthly  SurveyType = "monthly"
)

// Valid reports whether t is a known survey type.
func (t SurveyType) Valid() bool {
	switch t {
	case SurveyBaseline, SurveyWeekly, SurveyMonthly:
		return true
	}
	return false
}

// Language is a BCP 47 language code selecting a text set.
type Language string

const (
	LanguageJapanese Language = "ja"
	LanguageEnglish  Language = "en"

	// DefaultLanguage is used whenever a requested text set is missing.
	DefaultLanguage = LanguageJapanese
)

// ParseLanguage trims and lower-cases s. An empty input yields DefaultLanguage.
func ParseLanguage(s string) Language {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultLanguage
	}
	return Language(s)
}
