// Package dataset holds the training and test data model for isolated-sign
// recognition: per-word sequence sets, the concatenated observation layout
// shared with the sequence fitter, and deterministic k-fold splitting.
package dataset
