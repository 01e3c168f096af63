package vecmath

import (
	"testing"

	"github.com/stretchr/testify/require"

	appErr "github.com/xxxsen/pkf/internal/pkg/errors"
)

func TestCosineSelfSimilarity(t *testing.T) {
	v := []float32{0.3, -1.2, 4.5, 0.01}
	got, err := Cosine(v, v)
	require.NoError(t, err)
	require.InDelta(t, 1.0, got, 1e-6)
}

func TestCosineSymmetric(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-2, 0.5, 7}
	ab, err := Cosine(a, b)
	require.NoError(t, err)
	ba, err := Cosine(b, a)
	require.NoError(t, err)
	require.InDelta(t, ab, ba, 1e-7)
}

func TestCosineZeroVector(t *testing.T) {
	got, err := Cosine([]float32{0, 0, 0}, []float32{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, float32(0), got)
}

func TestCosineDimensionMismatch(t *testing.T) {
	_, err := Cosine([]float32{1, 2}, []float32{1, 2, 3})
	require.ErrorIs(t, err, appErr.ErrDimension)
}

func TestCosineOrthogonal(t *testing.T) {
	got, err := Cosine([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	require.InDelta(t, 0.0, got, 1e-7)
}

func TestMeanPool(t *testing.T) {
	got, err := MeanPool([][]float32{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	require.InDelta(t, 3.0, got[0], 1e-6)
	require.InDelta(t, 4.0, got[1], 1e-6)
}

func TestMeanPoolEmpty(t *testing.T) {
	_, err := MeanPool(nil)
	require.Error(t, err)
}

func TestMeanPoolRagged(t *testing.T) {
	_, err := MeanPool([][]float32{{1, 2}, {3}})
	require.ErrorIs(t, err, appErr.ErrDimension)
}
