package scoring

// Benchmark holds peer reference scores for one age bracket.
type Benchmark struct {
	Bracket string  `json:"bracket" yaml:"bracket"`
	Drivers float64 `json:"drivers" yaml:"drivers"`
	Health  float64 `json:"health" yaml:"health"`
	Skills  float64 `json:"skills" yaml:"skills"`
	Total   float64 `json:"total" yaml:"total"`
}

// Benchmark returns the reference scores for age. A nil age selects the
// table's default bracket.
func (s *Scorer) Benchmark(age *int) Benchmark {
	b := s.tables.Benchmarks
	if age == nil {
		for _, br := range b.Brackets {
			if br.Name == b.Default {
				return br.benchmark()
			}
		}
	}
	for _, br := range b.Brackets {
		if br.BelowAge == nil || (age != nil && *age < *br.BelowAge) {
			return br.benchmark()
		}
	}
	// Unreachable for validated tables: the last bracket is open-ended.
	return Benchmark{}
}

func (br Bracket) benchmark() Benchmark {
	return Benchmark{
		Bracket: br.Name,
		Drivers: br.Drivers,
		Health:  br.Health,
		Skills:  br.Skills,
		Total:   br.Total,
	}
}
