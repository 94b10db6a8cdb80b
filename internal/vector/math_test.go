// ABOUTME: Tests for vector math primitives
// ABOUTME: Verifies similarity symmetry, self-similarity, and zero-norm guards
package vector

import (
	"errors"
	"math"
	"testing"

	"github.com/reverie-journal/reverie/internal/models"
)

func TestCosineSimilaritySymmetry(t *testing.T) {
	a := []float64{0.3, -1.2, 4.5, 0.01}
	b := []float64{2.2, 0.4, -0.9, 1.7}

	ab, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("CosineSimilarity(a, b) error = %v", err)
	}
	ba, err := CosineSimilarity(b, a)
	if err != nil {
		t.Fatalf("CosineSimilarity(b, a) error = %v", err)
	}

	if math.Abs(ab-ba) > 1e-12 {
		t.Errorf("similarity not symmetric: %v vs %v", ab, ba)
	}
}

func TestCosineSimilaritySelf(t *testing.T) {
	v := []float64{1.5, -2.5, 0.25}

	sim, err := CosineSimilarity(v, v)
	if err != nil {
		t.Fatalf("CosineSimilarity() error = %v", err)
	}
	if math.Abs(sim-1.0) > 1e-12 {
		t.Errorf("self-similarity = %v, want 1.0", sim)
	}
}

func TestCosineSimilarityOrthogonal(t *testing.T) {
	a := []float64{1, 0, 0}
	b := []float64{0, 1, 0}

	sim, err := CosineSimilarity(a, b)
	if err != nil {
		t.Fatalf("CosineSimilarity() error = %v", err)
	}
	if sim != 0 {
		t.Errorf("orthogonal similarity = %v, want 0", sim)
	}
}

func TestCosineSimilarityZeroNorm(t *testing.T) {
	zero := []float64{0, 0, 0}
	v := []float64{1, 2, 3}

	sim, err := CosineSimilarity(zero, v)
	if err != nil {
		t.Fatalf("CosineSimilarity() error = %v", err)
	}
	if sim != 0 {
		t.Errorf("zero-norm similarity = %v, want 0", sim)
	}
}

func TestCosineSimilarityDimensionMismatch(t *testing.T) {
	a := []float64{1, 2}
	b := []float64{1, 2, 3}

	_, err := CosineSimilarity(a, b)
	if err == nil {
		t.Fatal("CosineSimilarity() should fail on mismatched dimensions")
	}

	var dimErr *models.DimensionMismatchError
	if !errors.As(err, &dimErr) {
		t.Errorf("error type = %T, want *DimensionMismatchError", err)
	}
}

func TestNormalize(t *testing.T) {
	v := []float64{3, 4}
	unit := Normalize(v)

	var norm float64
	for _, x := range unit {
		norm += x * x
	}
	if math.Abs(norm-1.0) > 1e-12 {
		t.Errorf("normalized vector norm^2 = %v, want 1.0", norm)
	}

	// Original must be untouched
	if v[0] != 3 || v[1] != 4 {
		t.Errorf("Normalize mutated input: %v", v)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	zero := []float64{0, 0}
	out := Normalize(zero)

	if out[0] != 0 || out[1] != 0 {
		t.Errorf("Normalize(zero) = %v, want zero vector unchanged", out)
	}
}

func TestBatchSimilarity(t *testing.T) {
	query := []float64{1, 0}
	candidates := [][]float64{
		{1, 0},
		{0, 1},
		{1, 0, 0}, // wrong dimension, must score 0
	}

	scores := BatchSimilarity(query, candidates)
	if len(scores) != 3 {
		t.Fatalf("scores length = %d, want 3", len(scores))
	}
	if math.Abs(scores[0]-1.0) > 1e-12 {
		t.Errorf("scores[0] = %v, want 1.0", scores[0])
	}
	if scores[1] != 0 {
		t.Errorf("scores[1] = %v, want 0", scores[1])
	}
	if scores[2] != 0 {
		t.Errorf("scores[2] = %v, want 0 (dimension mismatch)", scores[2])
	}
}
