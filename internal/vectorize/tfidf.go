package vectorize

import (
	"math"
	"sort"
)

// DefaultMaxFeatures caps the vocabulary at the most frequent terms in the corpus.
const DefaultMaxFeatures = 1000

// Vector is a dense TF-IDF vector in the fitted vocabulary space.
type Vector []float64

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// IsZero reports whether every component of v is zero.
func (v Vector) IsZero() bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// TFIDF is a term-frequency/inverse-document-frequency vectorizer with a fixed
// vocabulary. Fit must be called exactly once; afterwards the vectorizer is
// read-only and Transform is safe for concurrent use.
type TFIDF struct {
	maxFeatures int
	vocabulary  map[string]int
	terms       []string
	idf         []float64
	fitted      bool
}

// Option configures a TFIDF vectorizer.
type Option func(*TFIDF)

// WithMaxFeatures overrides the vocabulary cap. Values below 1 are ignored.
func WithMaxFeatures(n int) Option {
	return func(v *TFIDF) {
		if n > 0 {
			v.maxFeatures = n
		}
	}
}

// NewTFIDF creates an unfitted vectorizer.
func NewTFIDF(opts ...Option) *TFIDF {
	v := &TFIDF{maxFeatures: DefaultMaxFeatures}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Fit builds the vocabulary and IDF weights from corpus. Empty documents are
// allowed and count towards the document total.
func (v *TFIDF) Fit(corpus []string) error {
	if v.fitted {
		return &FitError{Message: "vectorizer is already fitted"}
	}

	// 1. Count total occurrences and document frequency per term
	termCounts := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, tok := range Tokenize(doc) {
			termCounts[tok]++
			if !seen[tok] {
				docFreq[tok]++
				seen[tok] = true
			}
		}
	}

	// 2. Keep the most frequent terms; ties resolve lexicographically
	candidates := make([]string, 0, len(termCounts))
	for term := range termCounts {
		candidates = append(candidates, term)
	}
	sort.Slice(candidates, func(i, j int) bool {
		ci, cj := termCounts[candidates[i]], termCounts[candidates[j]]
		if ci != cj {
			return ci > cj
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > v.maxFeatures {
		candidates = candidates[:v.maxFeatures]
	}

	// 3. Dimension order follows sorted term order
	sort.Strings(candidates)
	n := float64(len(corpus))
	v.terms = candidates
	v.vocabulary = make(map[string]int, len(candidates))
	v.idf = make([]float64, len(candidates))
	for i, term := range candidates {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	v.fitted = true
	return nil
}

// Transform maps text into the fitted space. Terms outside the vocabulary are
// ignored. The result is L2-normalized unless it is the zero vector.
func (v *TFIDF) Transform(text string) (Vector, error) {
	if !v.fitted {
		return nil, &NotFittedError{Message: "Transform called before Fit"}
	}

	vec := make(Vector, len(v.terms))
	for _, tok := range Tokenize(text) {
		if idx, ok := v.vocabulary[tok]; ok {
			vec[idx]++
		}
	}
	for i := range vec {
		vec[i] *= v.idf[i]
	}

	if norm := vec.Norm(); norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// TransformAll transforms each document in order.
func (v *TFIDF) TransformAll(docs []string) ([]Vector, error) {
	out := make([]Vector, len(docs))
	for i, doc := range docs {
		vec, err := v.Transform(doc)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// Fitted reports whether Fit has completed.
func (v *TFIDF) Fitted() bool {
	return v.fitted
}

// Dim returns the vector dimension, which is the vocabulary size.
func (v *TFIDF) Dim() int {
	return len(v.terms)
}

// Vocabulary returns the fitted terms in dimension order.
func (v *TFIDF) Vocabulary() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// IDF returns the inverse document frequency of term, or false when the term
// is not in the vocabulary.
func (v *TFIDF) IDF(term string) (float64, bool) {
	idx, ok := v.vocabulary[term]
	if !ok {
		return 0, false
	}
	return v.idf[idx], true
}
