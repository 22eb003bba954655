package hmm

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// emStep runs one Baum-Welch iteration over all sequences, updating the model
// parameters in place, and returns the total log-likelihood under the
// pre-update parameters.
func (m *Model) emStep(x [][]float64, lengths []int) (float64, error) {
	n := m.nStates
	dim := m.dim

	initAcc := make([]float64, n)
	xiAcc := make([][]float64, n)
	gammaAcc := make([]float64, n)
	obsAcc := make([][]float64, n)
	obsSqAcc := make([][]float64, n)
	for i := 0; i < n; i++ {
		xiAcc[i] = make([]float64, n)
		obsAcc[i] = make([]float64, dim)
		obsSqAcc[i] = make([]float64, dim)
	}

	totalLogL := 0.0
	offset := 0
	for _, length := range lengths {
		seq := x[offset : offset+length]
		offset += length

		logB := m.logEmissions(seq)
		logAlpha := m.forward(logB)
		logBeta := m.backward(logB)

		logL := floats.LogSumExp(logAlpha[length-1])
		if math.IsNaN(logL) || math.IsInf(logL, 1) {
			return 0, errors.New("sequence likelihood is not finite")
		}
		if math.IsInf(logL, -1) {
			return 0, errors.New("sequence has zero probability under current parameters")
		}
		totalLogL += logL

		// State occupancy accumulation
		for t := 0; t < length; t++ {
			for i := 0; i < n; i++ {
				gamma := math.Exp(logAlpha[t][i] + logBeta[t][i] - logL)
				if t == 0 {
					initAcc[i] += gamma
				}
				gammaAcc[i] += gamma
				for d, v := range seq[t] {
					obsAcc[i][d] += gamma * v
					obsSqAcc[i][d] += gamma * v * v
				}
			}
		}

		// Transition accumulation
		for t := 0; t < length-1; t++ {
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					xiAcc[i][j] += math.Exp(logAlpha[t][i] + m.logTrans[i][j] + logB[t+1][j] + logBeta[t+1][j] - logL)
				}
			}
		}
	}

	m.reestimate(len(lengths), initAcc, xiAcc, gammaAcc, obsAcc, obsSqAcc)

	return totalLogL, nil
}

// reestimate applies the M-step. States that accumulated no occupancy keep
// their previous emission parameters.
func (m *Model) reestimate(numSeqs int, initAcc []float64, xiAcc [][]float64, gammaAcc []float64, obsAcc, obsSqAcc [][]float64) {
	n := m.nStates

	for i := 0; i < n; i++ {
		m.logInit[i] = safeLog(initAcc[i] / float64(numSeqs))

		rowSum := floats.Sum(xiAcc[i])
		if rowSum > 0 {
			for j := 0; j < n; j++ {
				m.logTrans[i][j] = safeLog(xiAcc[i][j] / rowSum)
			}
		}

		if gammaAcc[i] > 0 {
			for d := 0; d < m.dim; d++ {
				mean := obsAcc[i][d] / gammaAcc[i]
				variance := obsSqAcc[i][d]/gammaAcc[i] - mean*mean
				if variance < varFloor {
					variance = varFloor
				}
				m.means[i][d] = mean
				m.vars[i][d] = variance
			}
		}
	}
}

// logEmissions computes the per-step diagonal Gaussian log-densities:
// logB[t][i] = log N(seq[t]; means[i], diag(vars[i])).
func (m *Model) logEmissions(seq [][]float64) [][]float64 {
	n := m.nStates

	// Per-state normalization constant, independent of the observation.
	logNorm := make([]float64, n)
	for i := 0; i < n; i++ {
		for d := 0; d < m.dim; d++ {
			logNorm[i] += -0.5 * math.Log(2*math.Pi*m.vars[i][d])
		}
	}

	logB := make([][]float64, len(seq))
	for t, obs := range seq {
		logB[t] = make([]float64, n)
		for i := 0; i < n; i++ {
			sum := logNorm[i]
			for d, v := range obs {
				diff := v - m.means[i][d]
				sum -= diff * diff / (2 * m.vars[i][d])
			}
			logB[t][i] = sum
		}
	}
	return logB
}

// forward computes log alpha values for one sequence.
func (m *Model) forward(logB [][]float64) [][]float64 {
	n := m.nStates
	length := len(logB)

	logAlpha := make([][]float64, length)
	logAlpha[0] = make([]float64, n)
	for i := 0; i < n; i++ {
		logAlpha[0][i] = m.logInit[i] + logB[0][i]
	}

	work := make([]float64, n)
	for t := 1; t < length; t++ {
		logAlpha[t] = make([]float64, n)
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				work[i] = logAlpha[t-1][i] + m.logTrans[i][j]
			}
			logAlpha[t][j] = floats.LogSumExp(work) + logB[t][j]
		}
	}
	return logAlpha
}

// backward computes log beta values for one sequence.
func (m *Model) backward(logB [][]float64) [][]float64 {
	n := m.nStates
	length := len(logB)

	logBeta := make([][]float64, length)
	logBeta[length-1] = make([]float64, n) // log 1 == 0

	work := make([]float64, n)
	for t := length - 2; t >= 0; t-- {
		logBeta[t] = make([]float64, n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				work[j] = m.logTrans[i][j] + logB[t+1][j] + logBeta[t+1][j]
			}
			logBeta[t][i] = floats.LogSumExp(work)
		}
	}
	return logBeta
}

// safeLog maps a zero probability to -Inf without tripping on negative
// rounding noise.
func safeLog(p float64) float64 {
	if p <= 0 {
		return math.Inf(-1)
	}
	return math.Log(p)
}
