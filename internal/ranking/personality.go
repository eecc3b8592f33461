package ranking

import "github.com/jonathan/career-recommender/internal/types"

// DefaultPersonalityScore is the neutral score used until a real model exists.
const DefaultPersonalityScore = 0.5

// PersonalityScorer rates how well a career suits the personality traits in a
// query. Implementations must return a value in [0,1] and must be safe for
// concurrent use.
type PersonalityScorer interface {
	Score(query *types.UserQuery, career *types.CareerRecord) float64
}

// ConstantPersonality ignores its inputs and returns a fixed score.
type ConstantPersonality float64

// Score implements PersonalityScorer.
func (c ConstantPersonality) Score(_ *types.UserQuery, _ *types.CareerRecord) float64 {
	return clamp01(float64(c))
}

// PersonalityFunc adapts a plain function to PersonalityScorer.
type PersonalityFunc func(query *types.UserQuery, career *types.CareerRecord) float64

// Score implements PersonalityScorer.
func (f PersonalityFunc) Score(query *types.UserQuery, career *types.CareerRecord) float64 {
	return clamp01(f(query, career))
}
