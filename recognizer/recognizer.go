// Package recognizer classifies unlabeled observation sequences by scoring
// them against every word model in a catalog.
package recognizer

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/signsel/catalog"
	"github.com/hupe1980/signsel/dataset"
)

// ScoreRow maps every catalog word to the item's log-likelihood under that
// word's model. A word whose model could not score the item carries -Inf;
// the row always has exactly one entry per catalog word.
type ScoreRow map[string]float64

// Result is the recognition outcome for one test item.
type Result struct {
	// Row holds the per-word log-likelihoods.
	Row ScoreRow

	// Guess is the word with the maximum score. Ties keep the word that
	// appears first in the catalog's insertion order.
	Guess string
}

// Options configure Recognize.
type Options struct {
	// Concurrency bounds the number of test items scored in parallel.
	// Defaults to GOMAXPROCS.
	Concurrency int
}

// Recognize scores every test item against every word model in the catalog
// and returns one Result per item, in test-item order. Per-(word, item)
// scoring failures are recorded as -Inf and are never fatal.
func Recognize(ctx context.Context, cat *catalog.Catalog, test *dataset.TestSet, optFns ...func(*Options)) ([]Result, error) {
	opts := Options{
		Concurrency: runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	words := cat.Words()
	if len(words) == 0 {
		return nil, catalog.ErrEmpty
	}

	results := make([]Result, test.Len())

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i := 0; i < test.Len(); i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := test.Item(i)
			lengths := []int{len(item)}

			row := make(ScoreRow, len(words))
			guess := ""
			bestScore := math.Inf(-1)
			for _, word := range words {
				model, _ := cat.Scorer(word)

				score, err := model.LogLikelihood(item, lengths)
				if err != nil {
					score = math.Inf(-1)
				}
				row[word] = score

				if guess == "" || score > bestScore {
					guess = word
					bestScore = score
				}
			}

			// Indexed write keeps output order independent of scheduling.
			results[i] = Result{Row: row, Guess: guess}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
