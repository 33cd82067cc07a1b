package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCosine_Basic(t *testing.T) {
	require.InDelta(t, 1.0, Cosine([]float64{1, 0}, []float64{1, 0}), 1e-12)
	require.InDelta(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 1}), 1e-12)
	require.InDelta(t, -1.0, Cosine([]float64{1, 2}, []float64{-1, -2}), 1e-12)
}

func TestCosine_SelfAndSymmetry(t *testing.T) {
	vectors := [][]float64{
		{0.5, 0.1, 0.9, 0.3},
		{0.5, 0.99, 0.42, 0.01},
		{3, -4, 0, 12},
	}
	for _, a := range vectors {
		require.InDelta(t, 1.0, Cosine(a, a), 1e-12)
		for _, b := range vectors {
			require.Equal(t, Cosine(a, b), Cosine(b, a))
		}
	}
}

func TestCosine_ZeroNormIsNaN(t *testing.T) {
	require.True(t, math.IsNaN(Cosine([]float64{0, 0}, []float64{1, 1})))
	require.True(t, math.IsNaN(Cosine([]float64{1, 1}, []float64{0, 0})))
	require.True(t, math.IsNaN(Cosine(nil, nil)))
}
