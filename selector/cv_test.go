package selector_test

import (
	"context"
	"testing"

	"github.com/hupe1980/signsel/dataset"
	"github.com/hupe1980/signsel/selector"
	"github.com/hupe1980/signsel/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCV_TwoSequences_SkipsFolding(t *testing.T) {
	// Two training sequences: folding must be skipped and every fit must see
	// the full data.
	set, err := dataset.NewSequenceSet([][][]float64{
		{{1, 1}, {2, 2}, {3, 3}},
		{{1, 1}, {2, 2}},
	})
	require.NoError(t, err)

	var calls []fitCall
	sel := selector.NewCV(selector.Config{
		Word:      "gift",
		Set:       set,
		MinStates: 2,
		MaxStates: 3,
		Fitter:    stubFitter(&calls, flatScore),
	})

	model, err := sel.Select(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)

	require.NotEmpty(t, calls)
	for _, call := range calls {
		assert.Equal(t, set.TotalObservations(), call.observations)
	}
}

func TestCV_ThreeSequences_UsesHeldOutFolds(t *testing.T) {
	set := smallSet(t) // 3 sequences, 10 observations

	var calls []fitCall
	sel := selector.NewCV(selector.Config{
		Word:      "gift",
		Set:       set,
		MinStates: 2,
		MaxStates: 2,
		Fitter:    stubFitter(&calls, flatScore),
	})

	_, err := sel.Select(context.Background())
	require.NoError(t, err)

	// 3 fold fits on partial data plus the final full refit.
	require.Len(t, calls, 4)
	for _, call := range calls[:3] {
		assert.Less(t, call.observations, set.TotalObservations())
	}
	assert.Equal(t, set.TotalObservations(), calls[3].observations)
}

func TestCV_FoldFailureExcludesCandidate(t *testing.T) {
	set := smallSet(t)

	var calls []fitCall
	sel := selector.NewCV(selector.Config{
		Word:      "gift",
		Set:       set,
		MinStates: 2,
		MaxStates: 3,
		Fitter:    stubFitter(&calls, flatScore, 2),
	})

	model, err := sel.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, model.(*stubModel).states)
}

func TestCV_AllCandidatesFail(t *testing.T) {
	var calls []fitCall
	sel := selector.NewCV(selector.Config{
		Word:      "gift",
		Set:       smallSet(t),
		MinStates: 2,
		MaxStates: 3,
		Fitter:    stubFitter(&calls, flatScore, 2, 3),
	})

	_, err := sel.Select(context.Background())
	assert.ErrorIs(t, err, selector.ErrNoViableModel)
}

func TestCV_PrefersGeneralizingCandidate(t *testing.T) {
	// Held-out likelihood peaks at 3 states.
	set := smallSet(t)

	var calls []fitCall
	score := func(states int, _ [][]float64, _ []int) (float64, error) {
		switch states {
		case 3:
			return -50, nil
		default:
			return -200, nil
		}
	}

	sel := selector.NewCV(selector.Config{
		Word:      "gift",
		Set:       set,
		MinStates: 2,
		MaxStates: 5,
		Fitter:    stubFitter(&calls, score),
	})

	model, err := sel.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, model.(*stubModel).states)
}

func TestCV_EndToEnd_TwoSequences(t *testing.T) {
	// Same property against the real fitter: a 2-sequence word still
	// produces a model.
	rng := testutil.NewRNG(14)
	set := rng.WordSet(2, 10, 2, 0)

	sel := selector.NewCV(selector.Config{
		Word:      "hello",
		Set:       set,
		MinStates: 2,
		MaxStates: 3,
		Seed:      14,
	})

	model, err := sel.Select(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)

	x, lengths := set.Concatenated()
	_, err = model.LogLikelihood(x, lengths)
	assert.NoError(t, err)
}
