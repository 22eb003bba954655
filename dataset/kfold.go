package dataset

import (
	"fmt"
	"math/rand"
	"sort"
)

// Fold is one cross-validation split: disjoint held-out (Test) and training
// (Train) sequence indices. Indices within each slice are sorted ascending.
type Fold struct {
	Train []int
	Test  []int
}

// Folds deterministically partitions n sequence indices into k disjoint test
// folds with their training complements. The assignment is a pure function of
// (n, k, seed): a seeded shuffle split into k near-equal contiguous chunks,
// the first n%k chunks one element larger.
func Folds(n, k int, seed int64) ([]Fold, error) {
	if k < 2 {
		return nil, fmt.Errorf("fold count must be at least 2, got %d", k)
	}
	if k > n {
		return nil, fmt.Errorf("fold count %d exceeds sequence count %d", k, n)
	}

	perm := rand.New(rand.NewSource(seed)).Perm(n)

	folds := make([]Fold, 0, k)
	size := n / k
	rem := n % k
	start := 0
	for i := 0; i < k; i++ {
		end := start + size
		if i < rem {
			end++
		}

		test := append([]int(nil), perm[start:end]...)
		train := make([]int, 0, n-(end-start))
		train = append(train, perm[:start]...)
		train = append(train, perm[end:]...)

		sort.Ints(test)
		sort.Ints(train)
		folds = append(folds, Fold{Train: train, Test: test})

		start = end
	}

	return folds, nil
}
