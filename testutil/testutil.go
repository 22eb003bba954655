package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/signsel/dataset"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// NormFloat64 returns a standard-normal pseudo-random number.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

// Sequence generates one observation sequence of the given length whose
// observations cluster around center in every dimension, with Gaussian noise.
func (r *RNG) Sequence(seqLen, dim int, center, noise float64) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	seq := make([][]float64, seqLen)
	for t := range seq {
		obs := make([]float64, dim)
		for d := range obs {
			obs[d] = center + r.rand.NormFloat64()*noise
		}
		seq[t] = obs
	}
	return seq
}

// WordSet generates a SequenceSet of numSeqs sequences clustered around
// center. Sequence lengths vary slightly so concatenation bookkeeping is
// exercised.
func (r *RNG) WordSet(numSeqs, seqLen, dim int, center float64) *dataset.SequenceSet {
	seqs := make([][][]float64, numSeqs)
	for i := range seqs {
		length := seqLen + r.Intn(3)
		seqs[i] = r.Sequence(length, dim, center, 0.3)
	}

	set, err := dataset.NewSequenceSet(seqs)
	if err != nil {
		panic(fmt.Sprintf("testutil: generated invalid sequence set: %v", err))
	}
	return set
}

// SeparatedWords generates one SequenceSet per word with class centers spaced
// `spacing` apart, so classes are linearly distinguishable.
func (r *RNG) SeparatedWords(words []string, numSeqs, seqLen, dim int, spacing float64) map[string]*dataset.SequenceSet {
	sets := make(map[string]*dataset.SequenceSet, len(words))
	for i, word := range words {
		sets[word] = r.WordSet(numSeqs, seqLen, dim, float64(i)*spacing)
	}
	return sets
}

// TestItems draws one fresh test sequence per requested ground-truth word,
// matching the word's class center, and returns them in order.
func (r *RNG) TestItems(sets map[string]*dataset.SequenceSet, truth []string) *dataset.TestSet {
	items := make([][][]float64, len(truth))
	for i, word := range truth {
		set, ok := sets[word]
		if !ok {
			panic(fmt.Sprintf("testutil: unknown ground-truth word %q", word))
		}

		// Reuse the class center by sampling noise around the first
		// observation of the word's first sequence.
		ref := set.Sequence(0)[0]
		item := make([][]float64, 10)
		for t := range item {
			obs := make([]float64, len(ref))
			for d := range obs {
				obs[d] = ref[d] + r.NormFloat64()*0.3
			}
			item[t] = obs
		}
		items[i] = item
	}

	ts, err := dataset.NewTestSet(items)
	if err != nil {
		panic(fmt.Sprintf("testutil: generated invalid test set: %v", err))
	}
	return ts
}
