package scoring

import "time"

// Snapshot is an immutable record of the three pillar scores and their total
// at a caller-supplied point in time.
type Snapshot struct {
	Drivers   float64   `json:"drivers" yaml:"drivers"`
	Health    float64   `json:"health" yaml:"health"`
	Skills    float64   `json:"skills" yaml:"skills"`
	Total     float64   `json:"total" yaml:"total"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewSnapshot clamps and rounds the pillar scores and derives the total.
func NewSnapshot(drivers, health, skills float64, ts time.Time) Snapshot {
	d, h, s := Round1(Clamp(drivers)), Round1(Clamp(health)), Round1(Clamp(skills))
	return Snapshot{
		Drivers:   d,
		Health:    h,
		Skills:    s,
		Total:     TotalScore(d, h, s),
		Timestamp: ts,
	}
}
