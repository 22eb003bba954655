// Package selector implements the model-selection strategies that choose a
// hidden-state count for each vocabulary word's sequence model.
//
// Four strategies are provided behind the common Selector interface:
//
//   - Constant: fit a single fixed state count
//   - BIC: lowest Bayesian Information Criterion on the full training data
//   - DIC: highest Discriminative Information Criterion against other words
//   - CV: highest cross-validated held-out log-likelihood
//
// Every strategy tolerates per-candidate fit and score failures by excluding
// the candidate; only when no candidate survives does selection fail, with
// ErrNoViableModel. Candidates are swept in increasing state count, so ties
// deterministically keep the smallest count.
//
// The DIC formulation here is the discriminative score of Biem (2003),
// maximized: a model should explain its own word well and competing words
// poorly. An older draft that minimized a BIC-like quantity under k-fold
// splitting is deliberately superseded by this coherent form.
package selector
