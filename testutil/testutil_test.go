package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRNG_Deterministic(t *testing.T) {
	a := NewRNG(14).Sequence(5, 2, 0, 1)
	b := NewRNG(14).Sequence(5, 2, 0, 1)
	assert.Equal(t, a, b)

	r := NewRNG(14)
	first := r.Sequence(5, 2, 0, 1)
	r.Reset()
	second := r.Sequence(5, 2, 0, 1)
	assert.Equal(t, first, second)
}

func TestSeparatedWords(t *testing.T) {
	rng := NewRNG(7)
	sets := rng.SeparatedWords([]string{"a", "b", "c"}, 4, 10, 2, 50)
	require.Len(t, sets, 3)

	for _, set := range sets {
		assert.Equal(t, 4, set.Len())
		assert.Equal(t, 2, set.Dim())
	}

	// Class centers are far apart relative to noise.
	a := sets["a"].Sequence(0)[0][0]
	c := sets["c"].Sequence(0)[0][0]
	assert.Greater(t, c-a, 50.0)
}

func TestTestItems(t *testing.T) {
	rng := NewRNG(9)
	sets := rng.SeparatedWords([]string{"x", "y"}, 3, 8, 2, 20)

	ts := rng.TestItems(sets, []string{"y", "x", "y"})
	assert.Equal(t, 3, ts.Len())
	assert.Len(t, ts.Item(0), 10)

	assert.Panics(t, func() { rng.TestItems(sets, []string{"unknown"}) })
}
