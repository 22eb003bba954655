// Package kmeans implements seeded k-means clustering (Lloyd's algorithm).
//
// Used internally by the HMM fitter to initialize per-state emission means
// and variances from the training observations. Clustering is deterministic
// given the caller-supplied random source.
package kmeans
