// Package vector provides cosine-similarity helpers for numeric vectors.
// It is an independent primitive: the FAQ matcher's ranking path does not
// use it.
package vector

import (
	"fmt"
	"math"
	"sort"
)

// Cosine returns the cosine similarity of a and b.
// Vectors of different lengths are a caller error; a zero-magnitude vector
// yields 0.0.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vectors must be same length: got %d and %d", len(a), len(b))
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	magA := L2Norm(a)
	magB := L2Norm(b)
	if magA == 0 || magB == 0 {
		return 0.0, nil
	}
	return dot / (magA * magB), nil
}

// InnerProduct returns the inner product of two vectors (for normalized
// vectors this equals cosine similarity). Mismatched or empty vectors
// return 0.
func InnerProduct(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}

// L2Norm returns the L2 norm of a vector.
func L2Norm(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// Interpret maps a similarity score to a human-friendly label.
func Interpret(score float64) string {
	switch {
	case score >= 0.9:
		return "Nearly identical!"
	case score >= 0.7:
		return "Very similar"
	case score >= 0.5:
		return "Somewhat similar"
	case score >= 0.3:
		return "A bit related"
	default:
		return "Quite different"
	}
}

// Comparison is one named vector's similarity to a base vector.
type Comparison struct {
	Name  string
	Score float64
}

// CompareMany compares base to every named vector and returns the results
// sorted by descending score. Names tie-break alphabetically so the order
// is deterministic.
func CompareMany(base []float64, others map[string][]float64) ([]Comparison, error) {
	results := make([]Comparison, 0, len(others))
	for name, vec := range others {
		score, err := Cosine(base, vec)
		if err != nil {
			return nil, fmt.Errorf("compare %q: %w", name, err)
		}
		results = append(results, Comparison{Name: name, Score: score})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Name < results[j].Name
	})
	return results, nil
}
