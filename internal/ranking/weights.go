package ranking

import (
	"fmt"
	"math"
)

// Default weights for scoring components
const (
	skillWeight       = 0.4
	interestWeight    = 0.3
	experienceWeight  = 0.2
	personalityWeight = 0.1
)

// weightSumTolerance absorbs float error when checking the weights sum to 1.
const weightSumTolerance = 1e-9

// Weights sets how much each factor contributes to the overall score.
type Weights struct {
	Skill       float64 `json:"skill" mapstructure:"skill"`
	Interest    float64 `json:"interest" mapstructure:"interest"`
	Experience  float64 `json:"experience" mapstructure:"experience"`
	Personality float64 `json:"personality" mapstructure:"personality"`
}

// DefaultWeights returns the standard 0.4/0.3/0.2/0.1 split.
func DefaultWeights() Weights {
	return Weights{
		Skill:       skillWeight,
		Interest:    interestWeight,
		Experience:  experienceWeight,
		Personality: personalityWeight,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Skill + w.Interest + w.Experience + w.Personality
}

// Validate checks that every weight is in [0,1] and the weights sum to 1.
func (w Weights) Validate() error {
	named := []struct {
		name  string
		value float64
	}{
		{"skill", w.Skill},
		{"interest", w.Interest},
		{"experience", w.Experience},
		{"personality", w.Personality},
	}
	for _, n := range named {
		if math.IsNaN(n.value) || n.value < 0 || n.value > 1 {
			return &WeightsError{Message: fmt.Sprintf("%s weight %v is outside [0,1]", n.name, n.value)}
		}
	}

	if sum := w.Sum(); math.Abs(sum-1) > weightSumTolerance {
		return &WeightsError{Message: fmt.Sprintf("weights sum to %v, expected 1", sum)}
	}
	return nil
}

// Combine returns the weighted overall score for the given sub-scores.
func (w Weights) Combine(s Scores) float64 {
	return w.Skill*s.Skill +
		w.Interest*s.Interest +
		w.Experience*s.Experience +
		w.Personality*s.Personality
}
