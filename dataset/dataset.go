package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySet is returned when a sequence set is constructed without sequences.
	ErrEmptySet = errors.New("sequence set must contain at least one sequence")

	// ErrEmptySequence is returned when a sequence contains no observations.
	ErrEmptySequence = errors.New("sequence must contain at least one observation")
)

// ErrDimensionMismatch indicates an observation whose dimensionality differs
// from the rest of the set.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// SequenceSet is one word's training data: an ordered list of variable-length
// observation sequences sharing a fixed feature dimensionality, plus the
// concatenated layout (X, Lengths) consumed by the sequence fitter.
//
// A SequenceSet is immutable after construction.
type SequenceSet struct {
	sequences [][][]float64
	x         [][]float64
	lengths   []int
	dim       int
}

// NewSequenceSet builds a SequenceSet from ordered sequences, validating that
// every observation vector shares the same dimensionality.
func NewSequenceSet(sequences [][][]float64) (*SequenceSet, error) {
	if len(sequences) == 0 {
		return nil, ErrEmptySet
	}

	dim := -1
	total := 0
	for _, seq := range sequences {
		if len(seq) == 0 {
			return nil, ErrEmptySequence
		}
		for _, obs := range seq {
			if dim == -1 {
				dim = len(obs)
			}
			if len(obs) != dim {
				return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(obs)}
			}
		}
		total += len(seq)
	}
	if dim == 0 {
		return nil, &ErrDimensionMismatch{Expected: 1, Actual: 0}
	}

	x := make([][]float64, 0, total)
	lengths := make([]int, 0, len(sequences))
	for _, seq := range sequences {
		x = append(x, seq...)
		lengths = append(lengths, len(seq))
	}

	return &SequenceSet{
		sequences: sequences,
		x:         x,
		lengths:   lengths,
		dim:       dim,
	}, nil
}

// Len returns the number of sequences in the set.
func (s *SequenceSet) Len() int { return len(s.sequences) }

// Dim returns the feature dimensionality shared by all observations.
func (s *SequenceSet) Dim() int { return s.dim }

// TotalObservations returns the number of observation vectors across all
// sequences, i.e. the length of the concatenated matrix.
func (s *SequenceSet) TotalObservations() int { return len(s.x) }

// Sequence returns the i-th sequence. The returned slice must not be mutated.
func (s *SequenceSet) Sequence(i int) [][]float64 { return s.sequences[i] }

// Concatenated returns the full concatenated observation matrix and the
// parallel per-sequence lengths. The invariant sum(lengths) == len(X) holds
// by construction. The returned slices must not be mutated.
func (s *SequenceSet) Concatenated() (x [][]float64, lengths []int) {
	return s.x, s.lengths
}

// Concat rebuilds the concatenated layout for a subset of sequence indices,
// preserving the given index order. Used by cross-validation to assemble
// fold-local training and held-out matrices.
func (s *SequenceSet) Concat(indices []int) (x [][]float64, lengths []int, err error) {
	if len(indices) == 0 {
		return nil, nil, ErrEmptySet
	}
	lengths = make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(s.sequences) {
			return nil, nil, fmt.Errorf("sequence index %d out of range [0,%d)", idx, len(s.sequences))
		}
		x = append(x, s.sequences[idx]...)
		lengths = append(lengths, len(s.sequences[idx]))
	}
	return x, lengths, nil
}

// TestSet is an ordered collection of unlabeled observation sequences.
// Item order is significant: recognition results mirror it exactly.
type TestSet struct {
	items [][][]float64
}

// NewTestSet builds a TestSet, validating that every item is a non-empty
// sequence of equal-dimensional observations.
func NewTestSet(items [][][]float64) (*TestSet, error) {
	dim := -1
	for _, item := range items {
		if len(item) == 0 {
			return nil, ErrEmptySequence
		}
		for _, obs := range item {
			if dim == -1 {
				dim = len(obs)
			}
			if len(obs) != dim {
				return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(obs)}
			}
		}
	}
	return &TestSet{items: items}, nil
}

// Len returns the number of test items.
func (t *TestSet) Len() int { return len(t.items) }

// Item returns the i-th test sequence. The returned slice must not be mutated.
func (t *TestSet) Item(i int) [][]float64 { return t.items[i] }
