package vecmath

import (
	"fmt"
	"math"

	appErr "github.com/xxxsen/pkf/internal/pkg/errors"
)

// Cosine returns the cosine similarity of two vectors. A zero-norm
// vector on either side yields 0.0 instead of a division fault.
// Mismatched dimensions are a caller bug and reported as an error.
func Cosine(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", appErr.ErrDimension, len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB))), nil
}

// MeanPool returns the component-wise mean of the given vectors.
func MeanPool(vs [][]float32) ([]float32, error) {
	if len(vs) == 0 {
		return nil, fmt.Errorf("mean pool: no vectors")
	}
	dim := len(vs[0])
	sum := make([]float64, dim)
	for _, v := range vs {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: %d vs %d", appErr.ErrDimension, len(v), dim)
		}
		for i, x := range v {
			sum[i] += float64(x)
		}
	}
	out := make([]float32, dim)
	for i := range sum {
		out[i] = float32(sum[i] / float64(len(vs)))
	}
	return out, nil
}
