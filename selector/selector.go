package selector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hupe1980/signsel/catalog"
	"github.com/hupe1980/signsel/dataset"
	"github.com/hupe1980/signsel/hmm"
)

// ErrNoViableModel is returned when every candidate state count failed for a
// word. Callers should exclude the word from the catalog and continue.
var ErrNoViableModel = errors.New("no viable model")

// Selector chooses one fitted model for one word.
type Selector interface {
	// Select runs the strategy and returns the chosen model, or an error
	// wrapping ErrNoViableModel when no candidate survived.
	Select(ctx context.Context) (catalog.Scorer, error)
}

// Fitter fits a sequence model with a fixed hidden-state count to the
// concatenated observations. It must be deterministic given identical inputs
// and seed, and must report failure as an error instead of panicking.
type Fitter func(ctx context.Context, x [][]float64, lengths []int, nStates int, seed int64) (catalog.Scorer, error)

// DefaultFitter fits a diagonal-covariance Gaussian HMM.
func DefaultFitter(ctx context.Context, x [][]float64, lengths []int, nStates int, seed int64) (catalog.Scorer, error) {
	model, err := hmm.Fit(ctx, x, lengths, nStates, func(o *hmm.Options) { o.Seed = seed })
	if err != nil {
		return nil, err
	}
	return model, nil
}

// Config carries the inputs shared by all strategies. All fields except Word
// and Set are optional; zero values fall back to the defaults below.
type Config struct {
	// Word is the vocabulary word being selected for.
	Word string

	// Set is the word's training sequences.
	Set *dataset.SequenceSet

	// All maps every vocabulary word to its training data. Only the DIC
	// strategy reads it (read-only, for anti-likelihood scoring); the word's
	// own entry is ignored.
	All map[string]*dataset.SequenceSet

	// MinStates and MaxStates bound the candidate range, inclusive.
	// Defaults: 2 and 10.
	MinStates int
	MaxStates int

	// ConstantStates is the fixed state count used by the Constant strategy.
	// Default: 3.
	ConstantStates int

	// Seed drives model initialization and fold assignment. Default: 14.
	Seed int64

	// Fitter fits candidate models. Default: DefaultFitter.
	Fitter Fitter

	// Logger receives per-candidate diagnostics at debug level.
	Logger *slog.Logger
}

func (c *Config) applyDefaults() {
	if c.MinStates == 0 {
		c.MinStates = 2
	}
	if c.MaxStates == 0 {
		c.MaxStates = 10
	}
	if c.ConstantStates == 0 {
		c.ConstantStates = 3
	}
	if c.Seed == 0 {
		c.Seed = 14
	}
	if c.Fitter == nil {
		c.Fitter = DefaultFitter
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
}

// base carries the shared fit helper.
type base struct {
	cfg Config
}

func newBase(cfg Config) base {
	cfg.applyDefaults()
	return base{cfg: cfg}
}

// fit runs the configured fitter. Context errors propagate; any other
// failure is logged at debug and reported via the bool so the caller can
// exclude the candidate.
func (b *base) fit(ctx context.Context, x [][]float64, lengths []int, nStates int) (catalog.Scorer, bool, error) {
	model, err := b.cfg.Fitter(ctx, x, lengths, nStates, b.cfg.Seed)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, false, err
		}
		b.cfg.Logger.Debug("candidate fit failed",
			"word", b.cfg.Word, "states", nStates, "error", err)
		return nil, false, nil
	}
	return model, true, nil
}

// noViable wraps ErrNoViableModel with the word for caller-side reporting.
func (b *base) noViable() error {
	return fmt.Errorf("word %q: %w", b.cfg.Word, ErrNoViableModel)
}
