package selector

import (
	"context"

	"github.com/hupe1980/signsel/catalog"
)

// Constant fits exactly one model with the configured constant state count on
// the full training data, ignoring the candidate range.
type Constant struct {
	base
}

// NewConstant creates a Constant selector.
func NewConstant(cfg Config) *Constant {
	return &Constant{base: newBase(cfg)}
}

// Select fits the constant-state model.
func (s *Constant) Select(ctx context.Context) (catalog.Scorer, error) {
	x, lengths := s.cfg.Set.Concatenated()

	model, ok, err := s.fit(ctx, x, lengths, s.cfg.ConstantStates)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.noViable()
	}
	return model, nil
}
