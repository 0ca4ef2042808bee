package mathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandDeterministic(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.NextU64(), b.NextU64())
	}
}

func TestRandZeroSeed(t *testing.T) {
	r := NewRand(0)
	assert.NotZero(t, r.NextU64())
}

func TestRandRanges(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 1000; i++ {
		f := r.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.Less(t, f, 1.0)

		v := r.RangeF(0.5, 2.0)
		require.GreaterOrEqual(t, v, 0.5)
		require.Less(t, v, 2.0)

		n := r.Intn(5)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, 5)
	}
	assert.Equal(t, 0, r.Intn(0))
	assert.Equal(t, 3.0, r.RangeF(3, 1))
}

func TestChanceExtremes(t *testing.T) {
	r := NewRand(9)
	for i := 0; i < 100; i++ {
		assert.True(t, r.Chance(1))
		assert.False(t, r.Chance(0))
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0, Clamp(-3, 0, 10))
	assert.Equal(t, 10, Clamp(30, 0, 10))
	assert.Equal(t, 4, Clamp(4, 0, 10))
	assert.Equal(t, 1.0, ClampF(1.5, 0, 1))
	assert.Equal(t, 0.0, ClampF(-0.1, 0, 1))
}

func TestEaseInOut(t *testing.T) {
	assert.Equal(t, 0.0, EaseInOut(0))
	assert.Equal(t, 1.0, EaseInOut(1))
	assert.InDelta(t, 0.5, EaseInOut(0.5), 1e-9)
	assert.Less(t, EaseInOut(0.25), 0.25)
	assert.Greater(t, EaseInOut(0.75), 0.75)
}

func TestMixDiffersPerStream(t *testing.T) {
	assert.NotEqual(t, Mix(1, 1), Mix(1, 2))
	assert.Equal(t, Mix(5, 3), Mix(5, 3))
}

func TestKeyframes(t *testing.T) {
	times := []float64{0, 0.3, 0.6, 1}
	values := []float64{0, 0.3, 0.5, 0}

	assert.Equal(t, 0.0, Keyframes(-1, times, values))
	assert.InDelta(t, 0.15, Keyframes(0.15, times, values), 1e-9)
	assert.InDelta(t, 0.5, Keyframes(0.6, times, values), 1e-9)
	assert.InDelta(t, 0.25, Keyframes(0.8, times, values), 1e-9)
	assert.Equal(t, 0.0, Keyframes(2, times, values))
	assert.Equal(t, 0.0, Keyframes(0.5, nil, nil))
}
