package hmm

import (
	"context"
	"math"
	"math/rand"

	"github.com/hupe1980/signsel/internal/kmeans"
)

const (
	// Variances are floored at varFloor to keep emission densities finite.
	varFloor = 1e-3

	kmeansMaxIter = 50
)

// Options configure Fit.
type Options struct {
	// MaxIter is the EM iteration budget. Training stops earlier when the
	// log-likelihood improvement drops below Tol.
	MaxIter int

	// Tol is the minimum log-likelihood improvement between iterations.
	Tol float64

	// Seed drives k-means initialization. Identical inputs and seed yield an
	// identical model.
	Seed int64
}

// Model is a fitted Gaussian HMM with diagonal covariance emissions.
// A Model is immutable after Fit returns and safe for concurrent scoring.
type Model struct {
	nStates  int
	dim      int
	logInit  []float64
	logTrans [][]float64
	means    [][]float64
	vars     [][]float64
}

// NStates returns the hidden-state count the model was fitted with.
func (m *Model) NStates() int { return m.nStates }

// Dim returns the observation dimensionality the model was fitted with.
func (m *Model) Dim() int { return m.dim }

// Fit trains a Gaussian HMM with nStates hidden states on the concatenated
// observation matrix x, where lengths gives each sequence's length in the
// concatenation. Emission parameters are initialized by seeded k-means,
// initial and transition distributions start uniform, and parameters are
// re-estimated by Baum-Welch until convergence or the iteration budget.
//
// Any failure is reported as a *FitError; Fit never panics on malformed
// numeric input.
func Fit(ctx context.Context, x [][]float64, lengths []int, nStates int, optFns ...func(*Options)) (*Model, error) {
	opts := Options{
		MaxIter: 100,
		Tol:     1e-2,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if nStates < 1 {
		return nil, &FitError{States: nStates, Observations: len(x), Reason: "state count must be positive"}
	}
	if len(x) == 0 {
		return nil, &FitError{States: nStates, Reason: "no observations"}
	}
	if nStates > len(x) {
		return nil, &FitError{States: nStates, Observations: len(x), Reason: "more states than observations"}
	}
	dim := len(x[0])
	if dim == 0 {
		return nil, &FitError{States: nStates, Observations: len(x), Reason: "zero-dimensional observations"}
	}
	total := 0
	for _, obs := range x {
		if len(obs) != dim {
			return nil, &FitError{States: nStates, Observations: len(x), Reason: "ragged observation dimensionality"}
		}
	}
	for _, l := range lengths {
		if l < 1 {
			return nil, &FitError{States: nStates, Observations: len(x), Reason: "non-positive sequence length"}
		}
		total += l
	}
	if total != len(x) {
		return nil, &FitError{States: nStates, Observations: len(x), Reason: "lengths do not sum to observation count"}
	}

	m, err := initModel(ctx, x, nStates, dim, opts.Seed)
	if err != nil {
		return nil, &FitError{States: nStates, Observations: len(x), Reason: "initialization failed", cause: err}
	}

	prevLogL := math.Inf(-1)
	for iter := 0; iter < opts.MaxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		logL, err := m.emStep(x, lengths)
		if err != nil {
			return nil, &FitError{States: nStates, Observations: len(x), Reason: "EM step degenerated", cause: err}
		}
		if math.IsNaN(logL) || math.IsInf(logL, 0) {
			return nil, &FitError{States: nStates, Observations: len(x), Reason: "degenerate log-likelihood"}
		}

		if iter > 0 && logL-prevLogL < opts.Tol {
			break
		}
		prevLogL = logL
	}

	return m, nil
}

// initModel seeds emission parameters from k-means clusters and starts the
// initial and transition distributions uniform.
func initModel(ctx context.Context, x [][]float64, nStates, dim int, seed int64) (*Model, error) {
	rng := rand.New(rand.NewSource(seed))

	centroids, assignments, err := kmeans.Train(ctx, x, nStates, rng, kmeansMaxIter)
	if err != nil {
		return nil, err
	}

	means := centroids
	vars := make([][]float64, nStates)
	counts := make([]int, nStates)
	for i := range vars {
		vars[i] = make([]float64, dim)
	}
	for i, obs := range x {
		state := assignments[i]
		counts[state]++
		for d, v := range obs {
			diff := v - means[state][d]
			vars[state][d] += diff * diff
		}
	}
	for i := range vars {
		for d := range vars[i] {
			if counts[i] > 0 {
				vars[i][d] /= float64(counts[i])
			}
			if vars[i][d] < varFloor {
				vars[i][d] = varFloor
			}
		}
	}

	logUniform := -math.Log(float64(nStates))
	logInit := make([]float64, nStates)
	logTrans := make([][]float64, nStates)
	for i := range logInit {
		logInit[i] = logUniform
		logTrans[i] = make([]float64, nStates)
		for j := range logTrans[i] {
			logTrans[i][j] = logUniform
		}
	}

	return &Model{
		nStates:  nStates,
		dim:      dim,
		logInit:  logInit,
		logTrans: logTrans,
		means:    means,
		vars:     vars,
	}, nil
}
