package selector

import (
	"context"
	"math"
	"sort"

	"github.com/hupe1980/signsel/catalog"
)

// DIC selects the candidate with the highest Discriminative Information
// Criterion (Biem 2003):
//
//	DIC(n) = logL(own word) - mean(logL(every other word))
//
// A good model explains its own word well while explaining competing words
// poorly. Each candidate is fitted on the word's full training data; the
// anti-likelihood term scores that same model against every other word's
// full data, read through the Config.All mapping.
type DIC struct {
	base

	// otherWords is the sorted list of competing words, fixed at
	// construction so anti-likelihood accumulation order is deterministic.
	otherWords []string
}

// NewDIC creates a DIC selector.
func NewDIC(cfg Config) *DIC {
	s := &DIC{base: newBase(cfg)}
	for word := range s.cfg.All {
		if word != s.cfg.Word {
			s.otherWords = append(s.otherWords, word)
		}
	}
	sort.Strings(s.otherWords)
	return s
}

// Select sweeps the candidate range in increasing order and refits the winner
// on the full data.
func (s *DIC) Select(ctx context.Context) (catalog.Scorer, error) {
	x, lengths := s.cfg.Set.Concatenated()

	bestStates := 0
	bestScore := math.Inf(-1)
	for n := s.cfg.MinStates; n <= s.cfg.MaxStates; n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		model, ok, err := s.fit(ctx, x, lengths, n)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		selfL, err := model.LogLikelihood(x, lengths)
		if err != nil {
			s.cfg.Logger.Debug("candidate score failed",
				"word", s.cfg.Word, "states", n, "error", err)
			continue
		}

		score := selfL - s.antiLikelihood(model, n)
		s.cfg.Logger.Debug("candidate scored",
			"word", s.cfg.Word, "states", n, "dic", score, "loglik", selfL)

		if score > bestScore {
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

// antiLikelihood averages the model's log-likelihood over every other word's
// full data. Words the model cannot score are dropped from the average; when
// no other word can be scored at all, the anti term is zero and DIC
// degenerates to the self log-likelihood (logged, not silently dropped).
func (s *DIC) antiLikelihood(model catalog.Scorer, nStates int) float64 {
	sum := 0.0
	count := 0
	for _, word := range s.otherWords {
		otherX, otherLengths := s.cfg.All[word].Concatenated()
		logL, err := model.LogLikelihood(otherX, otherLengths)
		if err != nil {
			s.cfg.Logger.Debug("anti-likelihood score failed",
				"word", s.cfg.Word, "against", word, "states", nStates, "error", err)
			continue
		}
		sum += logL
		count++
	}

	if count == 0 {
		if len(s.otherWords) > 0 {
			s.cfg.Logger.Warn("no competing word could be scored, DIC degenerates to self log-likelihood",
				"word", s.cfg.Word, "states", nStates)
		}
		return 0
	}
	return sum / float64(count)
}
