// Package scoring turns raw survey answers and cognitive-test measurements
// into 0-100 scores and aggregates them into pillar and total scores.
//
// Every function in this package is pure: out-of-range input is clamped,
// empty input scores 0, and nothing is ever rejected.
package scoring

import "math"

// Score bounds and the default 5-point Likert scale.
const (
	MinScore = 0.0
	MaxScore = 100.0

	LikertMin = 1.0
	LikertMax = 5.0
)

// Policy weights for the total score. Health carries the most weight.
const (
	DriversWeight = 0.3
	HealthWeight  = 0.4
	SkillsWeight  = 0.3
)

// Item weights inside the skills pillar. Test evidence counts 50% more than
// self-report.
const (
	SurveyItemWeight    = 1.0
	CognitiveTestWeight = 1.5
)

// Clamp limits v to [MinScore, MaxScore].
func Clamp(v float64) float64 {
	return math.Max(MinScore, math.Min(MaxScore, v))
}

// Round1 rounds v to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Normalize maps raw linearly from [scaleMin, scaleMax] onto [0, 100] and
// clamps the result. A degenerate scale (scaleMax <= scaleMin) scores 0.
func Normalize(raw, scaleMin, scaleMax float64) float64 {
	if scaleMax <= scaleMin {
		return MinScore
	}
	return Clamp((raw - scaleMin) / (scaleMax - scaleMin) * MaxScore)
}

// NormalizeReversed normalizes the scale-reflected value of raw, for items
// where a higher answer means a worse standing.
func NormalizeReversed(raw, scaleMin, scaleMax float64) float64 {
	return Normalize(scaleMax-raw+scaleMin, scaleMin, scaleMax)
}

// Item is one normalized score and its weight inside a pillar.
type Item struct {
	Score  float64
	Weight float64
}

// PillarScore returns the weighted mean of items, clamped and rounded to one
// decimal. It is 0 when items is empty or the weights sum to zero.
func PillarScore(items []Item) float64 {
	if len(items) == 0 {
		return MinScore
	}
	var sum, weights float64
	for _, it := range items {
		sum += it.Score * it.Weight
		weights += it.Weight
	}
	if weights == 0 {
		return MinScore
	}
	return Round1(Clamp(sum / weights))
}

// TotalScore combines the three pillars as 0.3*drivers + 0.4*health +
// 0.3*skills, rounded to one decimal.
func TotalScore(drivers, health, skills float64) float64 {
	return Round1(Clamp(DriversWeight*drivers + HealthWeight*health + SkillsWeight*skills))
}
