package hmm

import "fmt"

// FitError indicates that training could not produce a usable model:
// malformed input, insufficient data for the requested state count, or a
// numerically degenerate run (NaN or -Inf likelihood).
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type FitError struct {
	States       int
	Observations int
	Reason       string
	cause        error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("fit failed (states=%d, observations=%d): %s", e.States, e.Observations, e.Reason)
}

func (e *FitError) Unwrap() error { return e.cause }

// ScoreError indicates that a fitted model cannot score a given sequence,
// e.g. a dimensionality mismatch or inconsistent length metadata.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ScoreError struct {
	Reason string
	cause  error
}

func (e *ScoreError) Error() string {
	return fmt.Sprintf("score failed: %s", e.Reason)
}

func (e *ScoreError) Unwrap() error { return e.cause }
