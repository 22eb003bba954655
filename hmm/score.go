package hmm

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// LogLikelihood scores the concatenated observation matrix x under the model
// and returns the summed log-likelihood across sequences. A sequence with
// zero probability contributes -Inf, which propagates through the sum.
//
// Malformed input (dimensionality mismatch, inconsistent lengths) is reported
// as a *ScoreError.
func (m *Model) LogLikelihood(x [][]float64, lengths []int) (float64, error) {
	if len(x) == 0 {
		return 0, &ScoreError{Reason: "no observations"}
	}
	total := 0
	for _, l := range lengths {
		if l < 1 {
			return 0, &ScoreError{Reason: "non-positive sequence length"}
		}
		total += l
	}
	if total != len(x) {
		return 0, &ScoreError{Reason: "lengths do not sum to observation count"}
	}
	for _, obs := range x {
		if len(obs) != m.dim {
			return 0, &ScoreError{Reason: "observation dimensionality does not match model"}
		}
	}

	sum := 0.0
	offset := 0
	for _, length := range lengths {
		seq := x[offset : offset+length]
		offset += length

		logAlpha := m.forward(m.logEmissions(seq))
		logL := floats.LogSumExp(logAlpha[length-1])
		if math.IsNaN(logL) {
			return 0, &ScoreError{Reason: "likelihood is not a number"}
		}
		sum += logL
	}
	return sum, nil
}
