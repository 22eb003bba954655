package recognizer_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/hupe1980/signsel/catalog"
	"github.com/hupe1980/signsel/dataset"
	"github.com/hupe1980/signsel/recognizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// meanScorer prefers items whose first feature is near its center.
type meanScorer struct {
	center float64
}

func (s *meanScorer) LogLikelihood(x [][]float64, _ []int) (float64, error) {
	sum := 0.0
	for _, obs := range x {
		d := obs[0] - s.center
		sum -= d * d
	}
	return sum, nil
}

// brokenScorer fails on items whose first feature is negative.
type brokenScorer struct {
	meanScorer
}

func (s *brokenScorer) LogLikelihood(x [][]float64, lengths []int) (float64, error) {
	if x[0][0] < 0 {
		return 0, errors.New("cannot score this item")
	}
	return s.meanScorer.LogLikelihood(x, lengths)
}

func testItems(t *testing.T, firsts ...float64) *dataset.TestSet {
	t.Helper()
	items := make([][][]float64, len(firsts))
	for i, v := range firsts {
		items[i] = [][]float64{{v}, {v}, {v}}
	}
	ts, err := dataset.NewTestSet(items)
	require.NoError(t, err)
	return ts
}

func TestRecognize(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, cat.Add("low", &meanScorer{center: 0}))
	require.NoError(t, cat.Add("high", &meanScorer{center: 10}))
	cat.Freeze()

	test := testItems(t, 1, 9, 5.1)

	results, err := recognizer.Recognize(context.Background(), cat, test)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Every row has exactly one entry per catalog word.
	for _, res := range results {
		assert.Len(t, res.Row, 2)
	}

	assert.Equal(t, "low", results[0].Guess)
	assert.Equal(t, "high", results[1].Guess)
	assert.Equal(t, "high", results[2].Guess) // 5.1 is nearer 10

	// Guess equals the row argmax.
	for _, res := range results {
		for word, score := range res.Row {
			assert.GreaterOrEqual(t, res.Row[res.Guess], score, "word %s", word)
		}
	}
}

func TestRecognize_ScoreFailureBecomesNegInf(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, cat.Add("fragile", &brokenScorer{meanScorer{center: 0}}))
	require.NoError(t, cat.Add("steady", &meanScorer{center: 10}))
	cat.Freeze()

	// First item breaks the fragile model; the steady model wins despite a
	// large negative score of its own.
	test := testItems(t, -1, 0.5)

	results, err := recognizer.Recognize(context.Background(), cat, test)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Len(t, results[0].Row, 2)
	assert.True(t, math.IsInf(results[0].Row["fragile"], -1))
	assert.Equal(t, "steady", results[0].Guess)

	// Second item scores normally and the fragile model wins.
	assert.False(t, math.IsInf(results[1].Row["fragile"], -1))
	assert.Equal(t, "fragile", results[1].Guess)
}

func TestRecognize_TieKeepsCatalogOrder(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, cat.Add("second", &meanScorer{center: 5}))
	require.NoError(t, cat.Add("first", &meanScorer{center: 5}))
	cat.Freeze()

	results, err := recognizer.Recognize(context.Background(), cat, testItems(t, 5))
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Identical scores: insertion order decides.
	assert.Equal(t, "second", results[0].Guess)
}

func TestRecognize_AllModelsFail(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, cat.Add("a", &brokenScorer{}))
	require.NoError(t, cat.Add("b", &brokenScorer{}))
	cat.Freeze()

	results, err := recognizer.Recognize(context.Background(), cat, testItems(t, -3))
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.True(t, math.IsInf(results[0].Row["a"], -1))
	assert.True(t, math.IsInf(results[0].Row["b"], -1))
	assert.Equal(t, "a", results[0].Guess) // deterministic fallback
}

func TestRecognize_EmptyCatalog(t *testing.T) {
	_, err := recognizer.Recognize(context.Background(), catalog.New(), testItems(t, 1))
	assert.ErrorIs(t, err, catalog.ErrEmpty)
}

func TestRecognize_PreservesItemOrder(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, cat.Add("low", &meanScorer{center: 0}))
	require.NoError(t, cat.Add("high", &meanScorer{center: 100}))
	cat.Freeze()

	firsts := make([]float64, 50)
	want := make([]string, 50)
	for i := range firsts {
		if i%2 == 0 {
			firsts[i] = 0
			want[i] = "low"
		} else {
			firsts[i] = 100
			want[i] = "high"
		}
	}

	results, err := recognizer.Recognize(context.Background(), cat, testItems(t, firsts...), func(o *recognizer.Options) {
		o.Concurrency = 8
	})
	require.NoError(t, err)
	require.Len(t, results, 50)

	for i, res := range results {
		assert.Equal(t, want[i], res.Guess, "item %d", i)
	}
}

func TestRecognize_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cat := catalog.New()
	require.NoError(t, cat.Add("a", &meanScorer{}))
	cat.Freeze()

	_, err := recognizer.Recognize(ctx, cat, testItems(t, 1, 2, 3))
	assert.ErrorIs(t, err, context.Canceled)
}
