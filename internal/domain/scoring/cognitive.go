package scoring

// TestKind names a cognitive test.
type TestKind string

const (
	TestAttention   TestKind = "attention"
	TestMemory      TestKind = "memory"
	TestFlexibility TestKind = "flexibility"
)

// Reaction-time anchors in milliseconds: best maps to 100, worst to 0.
const (
	attentionBestMs    = 150.0
	attentionWorstMs   = 800.0
	flexibilityBestMs  = 200.0
	flexibilityWorstMs = 1000.0

	reactionShare = 0.5
	accuracyShare = 0.5
)

// Measurement is a raw cognitive-test result that can score itself.
type Measurement interface {
	Kind() TestKind
	Score() float64
}

// Attention is a sustained-attention (go/no-go) result.
type Attention struct {
	AvgReactionMs float64 `json:"avg_reaction_ms" yaml:"avg_reaction_ms" validate:"finite"`
	CorrectRate   float64 `json:"correct_rate" yaml:"correct_rate" validate:"finite"`
	TotalTrials   int     `json:"total_trials" yaml:"total_trials"`
}

// Kind implements Measurement.
func (Attention) Kind() TestKind { return TestAttention }

// Score implements Measurement.
func (a Attention) Score() float64 { return AttentionScore(a.AvgReactionMs, a.CorrectRate) }

// Memory is a working-memory recall result.
type Memory struct {
	CorrectCount int `json:"correct_count" yaml:"correct_count"`
	TotalTrials  int `json:"total_trials" yaml:"total_trials"`
}

// Kind implements Measurement.
func (Memory) Kind() TestKind { return TestMemory }

// Score implements Measurement.
func (m Memory) Score() float64 { return MemoryScore(m.CorrectCount, m.TotalTrials) }

// Flexibility is a cognitive-flexibility (Stroop) result.
type Flexibility struct {
	AvgReactionMs float64 `json:"avg_reaction_ms" yaml:"avg_reaction_ms" validate:"finite"`
	CorrectRate   float64 `json:"correct_rate" yaml:"correct_rate" validate:"finite"`
	TotalTrials   int     `json:"total_trials" yaml:"total_trials"`
}

// Kind implements Measurement.
func (Flexibility) Kind() TestKind { return TestFlexibility }

// Score implements Measurement.
func (f Flexibility) Score() float64 { return FlexibilityScore(f.AvgReactionMs, f.CorrectRate) }

// AttentionScore maps 150ms..800ms onto 100..0 and averages it with accuracy.
func AttentionScore(avgReactionMs, correctRate float64) float64 {
	return reactionAccuracy(avgReactionMs, correctRate, attentionBestMs, attentionWorstMs)
}

// FlexibilityScore maps 200ms..1000ms onto 100..0 and averages it with accuracy.
func FlexibilityScore(avgReactionMs, correctRate float64) float64 {
	return reactionAccuracy(avgReactionMs, correctRate, flexibilityBestMs, flexibilityWorstMs)
}

// MemoryScore is the share of correct answers; zero trials score 0.
func MemoryScore(correctCount, totalTrials int) float64 {
	return Round1(Clamp(MaxScore * float64(correctCount) / float64(max(1, totalTrials))))
}

func reactionAccuracy(ms, rate, best, worst float64) float64 {
	rt := NormalizeReversed(ms, best, worst)
	acc := Clamp(rate * MaxScore)
	return Round1(rt*reactionShare + acc*accuracyShare)
}

// TestScores scores each measurement and keys the result by test kind. A
// later measurement of the same kind replaces an earlier one.
func TestScores(ms ...Measurement) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		if m == nil {
			continue
		}
		out[string(m.Kind())] = m.Score()
	}
	return out
}
