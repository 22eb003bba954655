package selector_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/signsel/catalog"
	"github.com/hupe1980/signsel/dataset"
	"github.com/hupe1980/signsel/selector"
	"github.com/hupe1980/signsel/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubModel scores via a closure so tests can shape self and anti likelihoods.
type stubModel struct {
	states int
	score  func(x [][]float64, lengths []int) (float64, error)
}

func (m *stubModel) LogLikelihood(x [][]float64, lengths []int) (float64, error) {
	return m.score(x, lengths)
}

// fitCall records one fitter invocation.
type fitCall struct {
	states       int
	observations int
}

// stubFitter returns a Fitter that records calls and builds stub models with
// the given scoring closure. failFor lists state counts whose fits fail.
func stubFitter(calls *[]fitCall, score func(states int, x [][]float64, lengths []int) (float64, error), failFor ...int) selector.Fitter {
	return func(_ context.Context, x [][]float64, lengths []int, nStates int, _ int64) (catalog.Scorer, error) {
		*calls = append(*calls, fitCall{states: nStates, observations: len(x)})
		for _, n := range failFor {
			if n == nStates {
				return nil, errors.New("synthetic non-convergence")
			}
		}
		n := nStates
		return &stubModel{
			states: n,
			score: func(x [][]float64, lengths []int) (float64, error) {
				return score(n, x, lengths)
			},
		}, nil
	}
}

func flatScore(states int, _ [][]float64, _ []int) (float64, error) {
	return -100, nil
}

func smallSet(t *testing.T) *dataset.SequenceSet {
	t.Helper()
	set, err := dataset.NewSequenceSet([][][]float64{
		{{1, 1}, {2, 2}, {3, 3}, {4, 4}},
		{{1, 1}, {2, 2}, {3, 3}},
		{{2, 2}, {3, 3}, {4, 4}},
	})
	require.NoError(t, err)
	return set
}

func TestConstant_FitsExactlyOneCandidate(t *testing.T) {
	var calls []fitCall
	sel := selector.NewConstant(selector.Config{
		Word:      "book",
		Set:       smallSet(t),
		MinStates: 2,
		MaxStates: 10,
		Fitter:    stubFitter(&calls, flatScore),
	})

	model, err := sel.Select(context.Background())
	require.NoError(t, err)
	require.NotNil(t, model)

	require.Len(t, calls, 1)
	assert.Equal(t, 3, calls[0].states) // default ConstantStates, range ignored
	assert.Equal(t, 10, calls[0].observations)
}

func TestConstant_FitFailure(t *testing.T) {
	var calls []fitCall
	sel := selector.NewConstant(selector.Config{
		Word:   "book",
		Set:    smallSet(t),
		Fitter: stubFitter(&calls, flatScore, 3),
	})

	_, err := sel.Select(context.Background())
	assert.ErrorIs(t, err, selector.ErrNoViableModel)
	assert.Contains(t, err.Error(), "book")
}

func TestBIC_PenaltyPrefersSmallerModels(t *testing.T) {
	// Identical log-likelihood for every candidate: the ln(N) penalty alone
	// decides, so the smallest state count must win.
	var calls []fitCall
	sel := selector.NewBIC(selector.Config{
		Word:      "chocolate",
		Set:       smallSet(t),
		MinStates: 2,
		MaxStates: 5,
		Fitter:    stubFitter(&calls, flatScore),
	})

	model, err := sel.Select(context.Background())
	require.NoError(t, err)

	// Sweep 2..5 plus the final refit of the winner.
	require.Len(t, calls, 5)
	assert.Equal(t, 2, calls[len(calls)-1].states)
	assert.Equal(t, 2, model.(*stubModel).states)
}

func TestBIC_SkipsFailedCandidates(t *testing.T) {
	var calls []fitCall
	sel := selector.NewBIC(selector.Config{
		Word:      "chocolate",
		Set:       smallSet(t),
		MinStates: 2,
		MaxStates: 4,
		Fitter:    stubFitter(&calls, flatScore, 2),
	})

	model, err := sel.Select(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, model.(*stubModel).states)
}

func TestBIC_NoViableModel_RangeAboveObservations(t *testing.T) {
	// 10 total observations; every candidate needs more states than that.
	var calls []fitCall
	sel := selector.NewBIC(selector.Config{
		Word:      "vegetable",
		Set:       smallSet(t),
		MinStates: 11,
		MaxStates: 15,
		Fitter:    stubFitter(&calls, flatScore),
	})

	_, err := sel.Select(context.Background())
	assert.ErrorIs(t, err, selector.ErrNoViableModel)
	assert.Empty(t, calls) // oversized candidates are never fitted
}

func TestBIC_AllCandidatesFail(t *testing.T) {
	var calls []fitCall
	sel := selector.NewBIC(selector.Config{
		Word:      "vegetable",
		Set:       smallSet(t),
		MinStates: 2,
		MaxStates: 3,
		Fitter:    stubFitter(&calls, flatScore, 2, 3),
	})

	_, err := sel.Select(context.Background())
	assert.ErrorIs(t, err, selector.ErrNoViableModel)
}

func TestBIC_Deterministic(t *testing.T) {
	rng := testutil.NewRNG(14)
	set := rng.WordSet(4, 10, 2, 0)

	run := func() float64 {
		sel := selector.NewBIC(selector.Config{
			Word:      "hello",
			Set:       set,
			MinStates: 2,
			MaxStates: 4,
			Seed:      14,
		})
		model, err := sel.Select(context.Background())
		require.NoError(t, err)

		x, lengths := set.Concatenated()
		logL, err := model.LogLikelihood(x, lengths)
		require.NoError(t, err)
		return logL
	}

	assert.Equal(t, run(), run())
}

func TestSelect_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls []fitCall
	cfg := selector.Config{
		Word:   "w",
		Set:    smallSet(t),
		Fitter: stubFitter(&calls, flatScore),
	}

	for _, sel := range []selector.Selector{
		selector.NewBIC(cfg),
		selector.NewDIC(cfg),
		selector.NewCV(cfg),
	} {
		_, err := sel.Select(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	}
}
