// Package hmm implements a Gaussian hidden Markov model with diagonal
// covariance emissions, trained by Baum-Welch expectation maximization.
//
// It provides the sequence-fitting capability consumed by the selection
// strategies: fit a model with a fixed hidden-state count to a word's
// concatenated training sequences, then score arbitrary sequences by
// log-likelihood. Fitting is deterministic given identical inputs and seed,
// runs within a fixed iteration budget, and reports numerical failure as a
// typed error instead of panicking.
package hmm
