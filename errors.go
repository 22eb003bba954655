package signsel

import (
	"errors"
	"fmt"

	"github.com/hupe1980/signsel/selector"
)

// ErrNoViableModel is returned by a selection strategy when every candidate
// state count failed for a word. Train recovers from it per word; it only
// escapes Train when no word at all produced a model.
var ErrNoViableModel = selector.ErrNoViableModel

// ErrNoTrainingData is returned when Train is called without any words.
var ErrNoTrainingData = errors.New("no training data supplied")

// ErrUnknownStrategy indicates a Strategy value outside the defined set.
type ErrUnknownStrategy struct {
	Strategy Strategy
}

func (e *ErrUnknownStrategy) Error() string {
	return fmt.Sprintf("unknown selection strategy: %d", int(e.Strategy))
}
