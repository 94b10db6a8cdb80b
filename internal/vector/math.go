// ABOUTME: Pure vector math for embedding similarity
// ABOUTME: Cosine similarity, normalization, and batch scoring over float64 vectors
package vector

import (
	"math"

	"github.com/reverie-journal/reverie/internal/models"
)

// CosineSimilarity returns dot(a,b) / (||a||*||b||). Vectors of different
// lengths fail with DimensionMismatchError. A zero-norm vector yields 0
// rather than an error.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &models.DimensionMismatchError{Expected: len(a), Got: len(b)}
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Normalize returns v scaled to unit length. A zero-norm vector is
// returned unchanged.
func Normalize(v []float64) []float64 {
	var norm float64
	for _, x := range v {
		norm += x * x
	}
	if norm == 0 {
		return v
	}
	norm = math.Sqrt(norm)

	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// Dot returns the dot product of two equal-length vectors.
func Dot(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &models.DimensionMismatchError{Expected: len(a), Got: len(b)}
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot, nil
}

// IsFinite reports whether every component of v is a finite number.
func IsFinite(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// BatchSimilarity scores a query vector against every candidate. Candidates
// whose dimension does not match the query score 0 (they belong to a
// different provider's space and must never mix into the ranking).
func BatchSimilarity(query []float64, candidates [][]float64) []float64 {
	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		sim, err := CosineSimilarity(query, c)
		if err != nil {
			scores[i] = 0
			continue
		}
		scores[i] = sim
	}
	return scores
}
