// Package signsel selects per-word sequence-model complexities for isolated
// sign-language recognition and classifies unlabeled sign sequences.
//
// For every vocabulary word, a model-selection strategy picks the best
// hidden-state count for that word's Gaussian HMM from a candidate range,
// producing one fitted model per word. The resulting catalog scores unknown
// sequences against every word model and reports a ranked guess per item.
//
// # Quick Start
//
//	ctx := context.Background()
//
//	// words maps each vocabulary word to its training sequences.
//	cat, _ := signsel.Train(ctx, words, signsel.StrategyBIC)
//
//	results, _ := signsel.Recognize(ctx, cat, testSet)
//	for i, res := range results {
//	    fmt.Println(i, res.Guess)
//	}
//
// # Selection Strategies
//
//	signsel.StrategyConstant  // fixed state count, no search
//	signsel.StrategyBIC       // lowest Bayesian Information Criterion
//	signsel.StrategyDIC       // highest discriminative score vs. other words
//	signsel.StrategyCV        // highest 3-fold held-out log-likelihood
//
// Words whose selection fails entirely are skipped with a warning; the
// catalog is built from the remaining words.
//
// # Persistence
//
// Catalogs snapshot to any blobstore implementation:
//
//	store := blobstore.NewLocalStore("./data")
//	_ = cat.Save(ctx, store, "asl-bic.catalog")
//	cat, _ = catalog.Load(ctx, store, "asl-bic.catalog")
package signsel
