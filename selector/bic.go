package selector

import (
	"context"
	"math"

	"github.com/hupe1980/signsel/catalog"
)

// BIC selects the candidate with the lowest Bayesian Information Criterion,
// fitted and scored on the word's full training data:
//
//	BIC(n) = -2*logL + p(n)*ln(N)
//
// where N is the total observation count and p(n) = n² + 2nm - 1 is the free
// parameter count of an n-state model with m-dimensional diagonal-covariance
// Gaussian emissions (n(n-1) transition entries, n-1 initial entries, nm
// means, nm variances).
type BIC struct {
	base
}

// NewBIC creates a BIC selector.
func NewBIC(cfg Config) *BIC {
	return &BIC{base: newBase(cfg)}
}

// Select sweeps the candidate range in increasing order and refits the winner
// on the full data. Candidates with more states than observations are never
// fitted: the sweep stops there, since every larger candidate is equally
// unsupportable.
func (s *BIC) Select(ctx context.Context) (catalog.Scorer, error) {
	x, lengths := s.cfg.Set.Concatenated()
	totalObs := s.cfg.Set.TotalObservations()
	m := s.cfg.Set.Dim()
	logN := math.Log(float64(totalObs))

	bestStates := 0
	bestScore := math.Inf(1)
	for n := s.cfg.MinStates; n <= s.cfg.MaxStates; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if n > totalObs {
			break
		}

		model, ok, err := s.fit(ctx, x, lengths, n)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		logL, err := model.LogLikelihood(x, lengths)
		if err != nil {
			s.cfg.Logger.Debug("candidate score failed",
				"word", s.cfg.Word, "states", n, "error", err)
			continue
		}

		p := float64(n*n + 2*n*m - 1)
		score := -2*logL + p*logN
		s.cfg.Logger.Debug("candidate scored",
			"word", s.cfg.Word, "states", n, "bic", score, "loglik", logL)

		if score < bestScore {
			bestScore = score
			bestStates = n
		}
	}

	if bestStates == 0 {
		return nil, s.noViable()
	}

	model, ok, err := s.fit(ctx, x, lengths, bestStates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.noViable()
	}
	return model, nil
}
