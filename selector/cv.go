package selector

import (
	"context"
	"math"

	"github.com/hupe1980/signsel/catalog"
	"github.com/hupe1980/signsel/dataset"
)

// cvFolds is the fold count used when a word has enough sequences.
const cvFolds = 3

// CV selects the candidate with the highest average held-out log-likelihood
// under deterministic 3-fold cross-validation. Words with fewer than 3
// training sequences skip folding entirely and use a single unfolded
// measurement (fit on the full data, score on the same data).
type CV struct {
	base
}

// NewCV creates a CV selector.
func NewCV(cfg Config) *CV {
	return &CV{base: newBase(cfg)}
}

// Select sweeps the candidate range in increasing order and refits the winner
// on the full data. A candidate is excluded as soon as any of its folds fails
// to fit or score; failed folds never contribute a silent zero to the average.
func (s *CV) Select(ctx context.Context) (catalog.Scorer, error) {
	bestStates := 0
	bestScore := math.Inf(-1)
	for n := s.cfg.MinStates; n <= s.cfg.MaxStates; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		score, ok, err := s.scoreCandidate(ctx, n)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		s.cfg.Logger.Debug("candidate scored",
			"word", s.cfg.Word, "states", n, "cv", score)

		if score > bestScore {
			bestScore = score
			bestStates = n
		}
	}

	if bestStates == 0 {
		return nil, s.noViable()
	}

	x, lengths := s.cfg.Set.Concatenated()
	model, ok, err := s.fit(ctx, x, lengths, bestStates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.noViable()
	}
	return model, nil
}

// scoreCandidate returns the candidate's average held-out log-likelihood.
// ok is false when the candidate is unusable for this word.
func (s *CV) scoreCandidate(ctx context.Context, n int) (score float64, ok bool, err error) {
	numSeqs := s.cfg.Set.Len()

	if numSeqs < cvFolds {
		// Too little data to hold anything out: single unfolded measurement.
		x, lengths := s.cfg.Set.Concatenated()
		model, ok, err := s.fit(ctx, x, lengths, n)
		if err != nil || !ok {
			return 0, false, err
		}
		logL, scoreErr := model.LogLikelihood(x, lengths)
		if scoreErr != nil {
			s.cfg.Logger.Debug("candidate score failed",
				"word", s.cfg.Word, "states", n, "error", scoreErr)
			return 0, false, nil
		}
		return logL, true, nil
	}

	folds, foldErr := dataset.Folds(numSeqs, cvFolds, s.cfg.Seed)
	if foldErr != nil {
		return 0, false, foldErr
	}

	total := 0.0
	for _, fold := range folds {
		trainX, trainLengths, concatErr := s.cfg.Set.Concat(fold.Train)
		if concatErr != nil {
			return 0, false, concatErr
		}
		testX, testLengths, concatErr := s.cfg.Set.Concat(fold.Test)
		if concatErr != nil {
			return 0, false, concatErr
		}

		model, ok, err := s.fit(ctx, trainX, trainLengths, n)
		if err != nil || !ok {
			return 0, false, err
		}

		logL, scoreErr := model.LogLikelihood(testX, testLengths)
		if scoreErr != nil {
			s.cfg.Logger.Debug("fold score failed",
				"word", s.cfg.Word, "states", n, "error", scoreErr)
			return 0, false, nil
		}
		total += logL
	}

	return total / float64(len(folds)), true, nil
}
