package league

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRandDeterminism(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
}

func TestGaussianMoments(t *testing.T) {
	r := NewRand(7)
	const n = 20000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		x := r.Gaussian(70, 6)
		sum += x
		sumSq += x * x
	}
	mean := sum / n
	std := math.Sqrt(sumSq/n - mean*mean)

	require.InDelta(t, 70, mean, 0.3)
	require.InDelta(t, 6, std, 0.3)
}

func TestUniformRange(t *testing.T) {
	r := NewRand(1)
	for i := 0; i < 1000; i++ {
		x := r.Uniform(60, 75)
		require.GreaterOrEqual(t, x, 60.0)
		require.Less(t, x, 75.0)
	}
}

func TestChoice(t *testing.T) {
	r := NewRand(3)
	items := []string{"a", "b", "c"}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[Choice(r, items)] = true
	}
	require.Len(t, seen, 3)
}
