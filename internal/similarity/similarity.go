// Package similarity scores how closely a user's skills match a career's skills.
package similarity

import (
	"math"
	"strings"

	"github.com/jonathan/career-recommender/internal/vectorize"
)

// Transformer maps text into a fitted vector space.
type Transformer interface {
	Transform(text string) (vectorize.Vector, error)
}

// Scorer computes cosine similarity between skill texts using a shared,
// already fitted Transformer. It holds no mutable state.
type Scorer struct {
	vectorizer Transformer
}

// NewScorer creates a Scorer backed by vectorizer.
func NewScorer(vectorizer Transformer) *Scorer {
	return &Scorer{vectorizer: vectorizer}
}

// Score returns the similarity in [0,1] between the user's skills, joined with
// spaces, and the career's skill text.
func (s *Scorer) Score(userSkills []string, careerSkills string) (float64, error) {
	return s.Texts(strings.Join(userSkills, " "), careerSkills)
}

// Texts returns the similarity in [0,1] between two raw texts.
func (s *Scorer) Texts(a, b string) (float64, error) {
	va, err := s.vectorizer.Transform(a)
	if err != nil {
		return 0, err
	}
	vb, err := s.vectorizer.Transform(b)
	if err != nil {
		return 0, err
	}
	return Cosine(va, vb), nil
}

// Query transforms the user's skills once so the result can be compared
// against many precomputed career vectors.
func (s *Scorer) Query(userSkills []string) (vectorize.Vector, error) {
	return s.vectorizer.Transform(strings.Join(userSkills, " "))
}

// Cosine returns the cosine of the angle between a and b, clamped to [0,1].
// It is 0 when either vector has zero magnitude or the lengths differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}
