package signsel

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/signsel/catalog"
	"github.com/hupe1980/signsel/dataset"
	"github.com/hupe1980/signsel/recognizer"
	"github.com/hupe1980/signsel/selector"
)

// Strategy identifies a model-selection policy.
type Strategy int

const (
	// StrategyConstant fits one model with a fixed state count.
	StrategyConstant Strategy = iota
	// StrategyBIC minimizes the Bayesian Information Criterion.
	StrategyBIC
	// StrategyDIC maximizes the discriminative score against other words.
	StrategyDIC
	// StrategyCV maximizes cross-validated held-out log-likelihood.
	StrategyCV
)

func (s Strategy) String() string {
	switch s {
	case StrategyConstant:
		return "Constant"
	case StrategyBIC:
		return "BIC"
	case StrategyDIC:
		return "DIC"
	case StrategyCV:
		return "CV"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Train runs one selection per vocabulary word under the given strategy and
// assembles the chosen models into a frozen catalog.
//
// Word selections run in parallel; catalog insertion order is the sorted
// word order, so recognition tie-breaking never depends on scheduling.
// A word whose selection reports no viable model is skipped with a warning;
// Train fails only when no word at all produced a model.
func Train(ctx context.Context, words map[string]*dataset.SequenceSet, strategy Strategy, optFns ...Option) (*catalog.Catalog, error) {
	opts := applyOptions(optFns)

	if len(words) == 0 {
		return nil, ErrNoTrainingData
	}
	if strategy < StrategyConstant || strategy > StrategyCV {
		return nil, &ErrUnknownStrategy{Strategy: strategy}
	}

	ordered := make([]string, 0, len(words))
	for word := range words {
		ordered = append(ordered, word)
	}
	sort.Strings(ordered)

	logger := opts.logger.WithStrategy(strategy)

	models := make([]catalog.Scorer, len(ordered))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency)
	for i, word := range ordered {
		i, word := i, word
		g.Go(func() error {
			sel, err := newSelector(strategy, word, words, opts)
			if err != nil {
				return err
			}

			model, err := sel.Select(gctx)
			if err != nil {
				if errors.Is(err, selector.ErrNoViableModel) {
					logger.Warn("word skipped, no viable model", "word", word)
					return nil
				}
				return err
			}

			logger.Debug("word model selected", "word", word)
			models[i] = model
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cat := catalog.New()
	for i, word := range ordered {
		if models[i] == nil {
			continue
		}
		if err := cat.Add(word, models[i]); err != nil {
			return nil, err
		}
	}
	if cat.Len() == 0 {
		return nil, fmt.Errorf("all %d words skipped: %w", len(ordered), ErrNoViableModel)
	}
	cat.Freeze()

	logger.Info("catalog trained", "words", cat.Len(), "skipped", len(ordered)-cat.Len())
	return cat, nil
}

// Recognize scores every test item against every word model in the catalog.
// Results mirror the test-item order; see the recognizer package for row
// semantics.
func Recognize(ctx context.Context, cat *catalog.Catalog, test *dataset.TestSet, optFns ...Option) ([]recognizer.Result, error) {
	opts := applyOptions(optFns)

	return recognizer.Recognize(ctx, cat, test, func(o *recognizer.Options) {
		o.Concurrency = opts.concurrency
	})
}

func newSelector(strategy Strategy, word string, words map[string]*dataset.SequenceSet, opts options) (selector.Selector, error) {
	cfg := selector.Config{
		Word:           word,
		Set:            words[word],
		All:            words,
		MinStates:      opts.minStates,
		MaxStates:      opts.maxStates,
		ConstantStates: opts.constantStates,
		Seed:           opts.seed,
		Fitter:         opts.fitter,
		Logger:         opts.logger.Logger,
	}

	switch strategy {
	case StrategyConstant:
		return selector.NewConstant(cfg), nil
	case StrategyBIC:
		return selector.NewBIC(cfg), nil
	case StrategyDIC:
		return selector.NewDIC(cfg), nil
	case StrategyCV:
		return selector.NewCV(cfg), nil
	default:
		return nil, &ErrUnknownStrategy{Strategy: strategy}
	}
}
