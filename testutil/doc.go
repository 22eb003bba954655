// Package testutil provides testing utilities for signsel.
//
// This package is intended for use in tests only. It provides a seeded,
// thread-safe random source and generators for synthetic sign-language
// datasets whose word classes are well separated in feature space.
//
// # Synthetic Datasets
//
//	rng := testutil.NewRNG(14)
//	words := rng.SeparatedWords([]string{"hello", "book"}, 5, 12, 2, 20)
//	test := rng.TestItems(words, []string{"hello", "book", "hello"})
package testutil
