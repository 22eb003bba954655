// Package catalog holds the finalized word→model mapping used at recognition
// time, with deterministic insertion-ordered iteration and snapshot
// persistence to a blob store.
package catalog

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrFrozen is returned when inserting into a frozen catalog.
	ErrFrozen = errors.New("catalog is frozen")

	// ErrEmpty is returned when an operation requires a non-empty catalog.
	ErrEmpty = errors.New("catalog contains no models")
)

// Scorer is the read-only view of a fitted sequence model: score the
// concatenated observations x (per-sequence lengths in lengths) and return
// the log-likelihood. Implementations must be safe for concurrent use.
type Scorer interface {
	LogLikelihood(x [][]float64, lengths []int) (float64, error)
}

// Catalog maps each vocabulary word to its one chosen fitted model.
// Word iteration order is insertion order, which makes recognition
// tie-breaking deterministic. A Catalog is assembled incrementally, frozen
// once, and read-only thereafter.
type Catalog struct {
	mu     sync.RWMutex
	words  []string
	models map[string]Scorer
	frozen bool
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		models: make(map[string]Scorer),
	}
}

// Add inserts a word's chosen model. Duplicate words and inserts after
// Freeze are rejected.
func (c *Catalog) Add(word string, model Scorer) error {
	if model == nil {
		return fmt.Errorf("nil model for word %q", word)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.frozen {
		return ErrFrozen
	}
	if _, ok := c.models[word]; ok {
		return fmt.Errorf("word %q already in catalog", word)
	}

	c.words = append(c.words, word)
	c.models[word] = model
	return nil
}

// Freeze marks the catalog read-only. Idempotent.
func (c *Catalog) Freeze() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frozen = true
}

// Len returns the number of words in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.words)
}

// Words returns the words in insertion order. The returned slice is a copy.
func (c *Catalog) Words() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.words...)
}

// Scorer returns the model for a word.
func (c *Catalog) Scorer(word string) (Scorer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	model, ok := c.models[word]
	return model, ok
}
