package kmeans

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

// Train clusters the given vectors into k centroids using Lloyd's algorithm
// and returns the centroids together with the final per-vector assignments.
//
// Centroids are initialized from a seeded permutation of the data points, so
// results are deterministic for a given rng state. Empty clusters are
// re-seeded from a random data point.
func Train(ctx context.Context, vectors [][]float64, k int, rng *rand.Rand, maxIter int) (centroids [][]float64, assignments []int, err error) {
	n := len(vectors)
	if k < 1 {
		return nil, nil, fmt.Errorf("cluster count must be positive, got %d", k)
	}
	if n < k {
		return nil, nil, fmt.Errorf("cannot cluster %d vectors into %d clusters", n, k)
	}
	dim := len(vectors[0])

	centroids = make([][]float64, k)
	perm := rng.Perm(n)
	for i := 0; i < k; i++ {
		centroids[i] = append([]float64(nil), vectors[perm[i]]...)
	}

	assignments = make([]int, n)
	counts := make([]int, k)
	sums := make([][]float64, k)
	for i := range sums {
		sums[i] = make([]float64, dim)
	}

	for iter := 0; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		changed := false

		// Assignment step
		for i, vec := range vectors {
			best := -1
			minDist := math.MaxFloat64
			for j, center := range centroids {
				d := squaredL2(vec, center)
				if d < minDist {
					minDist = d
					best = j
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}

		if !changed && iter > 0 {
			break
		}

		// Update step
		for i := range sums {
			for d := range sums[i] {
				sums[i][d] = 0
			}
			counts[i] = 0
		}
		for i, vec := range vectors {
			cluster := assignments[i]
			for d, v := range vec {
				sums[cluster][d] += v
			}
			counts[cluster]++
		}
		for j := 0; j < k; j++ {
			if counts[j] > 0 {
				scale := 1.0 / float64(counts[j])
				for d := 0; d < dim; d++ {
					centroids[j][d] = sums[j][d] * scale
				}
			} else {
				// Re-seed empty cluster with a random point
				copy(centroids[j], vectors[rng.Intn(n)])
			}
		}
	}

	return centroids, assignments, nil
}

func squaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
