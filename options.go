package signsel

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/signsel/selector"
)

type options struct {
	minStates      int
	maxStates      int
	constantStates int
	seed           int64
	concurrency    int
	fitter         selector.Fitter
	logger         *Logger
}

// Option configures Train and Recognize behavior.
type Option func(*options)

// WithStateRange sets the inclusive candidate range of hidden-state counts
// searched by the BIC, DIC and CV strategies. The default is 2..10.
func WithStateRange(minStates, maxStates int) Option {
	return func(o *options) {
		o.minStates = minStates
		o.maxStates = maxStates
	}
}

// WithConstantStates sets the fixed state count used by StrategyConstant.
// The default is 3.
func WithConstantStates(n int) Option {
	return func(o *options) {
		o.constantStates = n
	}
}

// WithSeed sets the seed driving model initialization and fold assignment.
// Identical data and seed reproduce the same catalog. The default is 14.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithConcurrency bounds how many words are selected (and how many test
// items are scored) in parallel. Defaults to GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithFitter swaps the sequence-fitting capability. The default fits a
// diagonal-covariance Gaussian HMM.
func WithFitter(fitter selector.Fitter) Option {
	return func(o *options) {
		if fitter != nil {
			o.fitter = fitter
		}
	}
}

// WithLogger configures structured logging for selection and recognition.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		minStates:      2,
		maxStates:      10,
		constantStates: 3,
		seed:           14,
		concurrency:    runtime.GOMAXPROCS(0),
		fitter:         selector.DefaultFitter,
		logger:         NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	return o
}
