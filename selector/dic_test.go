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

func TestDIC_SeparationProperty(t *testing.T) {
	// The defining property of the strategy: on well-separated classes, the
	// chosen model explains its own word at least as well as the average of
	// its scores on every other word's data.
	rng := testutil.NewRNG(14)
	words := []string{"hello", "book", "vegetable"}
	sets := rng.SeparatedWords(words, 5, 10, 2, 25)

	sel := selector.NewDIC(selector.Config{
		Word:      "hello",
		Set:       sets["hello"],
		All:       sets,
		MinStates: 2,
		MaxStates: 4,
		Seed:      14,
	})

	model, err := sel.Select(context.Background())
	require.NoError(t, err)

	selfX, selfLengths := sets["hello"].Concatenated()
	selfL, err := model.LogLikelihood(selfX, selfLengths)
	require.NoError(t, err)

	antiSum := 0.0
	for _, word := range []string{"book", "vegetable"} {
		x, lengths := sets[word].Concatenated()
		logL, err := model.LogLikelihood(x, lengths)
		require.NoError(t, err)
		antiSum += logL
	}

	assert.GreaterOrEqual(t, selfL, antiSum/2)
}

func TestDIC_PicksMostDiscriminativeCandidate(t *testing.T) {
	set := smallSet(t)
	other, err := dataset.NewSequenceSet([][][]float64{
		{{9, 9}, {8, 8}, {7, 7}},
	})
	require.NoError(t, err)

	// Self likelihood is flat across candidates but the anti likelihood
	// drops with the state count, so the largest candidate discriminates
	// best and must win.
	var calls []fitCall
	score := func(states int, x [][]float64, _ []int) (float64, error) {
		if len(x) == set.TotalObservations() {
			return -100, nil // own word
		}
		return -100 - 10*float64(states), nil // competing word
	}

	sel := selector.NewDIC(selector.Config{
		Word:      "mine",
		Set:       set,
		All:       map[string]*dataset.SequenceSet{"mine": set, "other": other},
		MinStates: 2,
		MaxStates: 4,
		Fitter:    stubFitter(&calls, score),
	})

	model, err := sel.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, model.(*stubModel).states)
}

func TestDIC_DegeneratesToSelfLikelihoodWhenAntiScoringFails(t *testing.T) {
	set := smallSet(t)
	other, err := dataset.NewSequenceSet([][][]float64{
		{{9, 9, 9}},
	})
	require.NoError(t, err)

	// Competing word scoring always fails; DIC falls back to the self
	// likelihood, which here rises with the state count.
	var calls []fitCall
	score := func(states int, x [][]float64, _ []int) (float64, error) {
		if len(x) != set.TotalObservations() {
			return 0, assert.AnError
		}
		return -100 + float64(states), nil
	}

	sel := selector.NewDIC(selector.Config{
		Word:      "mine",
		Set:       set,
		All:       map[string]*dataset.SequenceSet{"mine": set, "other": other},
		MinStates: 2,
		MaxStates: 4,
		Fitter:    stubFitter(&calls, score),
	})

	model, err := sel.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, model.(*stubModel).states)
}

func TestDIC_NoViableModel(t *testing.T) {
	var calls []fitCall
	sel := selector.NewDIC(selector.Config{
		Word:      "mine",
		Set:       smallSet(t),
		MinStates: 2,
		MaxStates: 3,
		Fitter:    stubFitter(&calls, flatScore, 2, 3),
	})

	_, err := sel.Select(context.Background())
	assert.ErrorIs(t, err, selector.ErrNoViableModel)
}
