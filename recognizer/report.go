package recognizer

import (
	"fmt"
	"math"

	"github.com/hupe1980/signsel/codec"
)

// Report summarizes recognition accuracy against known ground truth.
type Report struct {
	// Items is the number of scored test items.
	Items int `json:"items"`

	// Correct counts items whose guess matched the ground truth.
	Correct int `json:"correct"`

	// WER is the word error rate, (Items-Correct)/Items.
	WER float64 `json:"wer"`

	// Errors lists every misrecognized item.
	Errors []ItemError `json:"errors,omitempty"`
}

// ItemError describes one misrecognized test item.
type ItemError struct {
	Index int    `json:"index"`
	Truth string `json:"truth"`
	Guess string `json:"guess"`

	// TruthScore is the log-likelihood the truth word's model assigned to
	// the item, clamped per BuildReport.
	TruthScore float64 `json:"truth_score"`

	// GuessScore is the winning log-likelihood.
	GuessScore float64 `json:"guess_score"`
}

// BuildReport compares results against the ground-truth words, in order.
// Infinite scores are clamped to ±math.MaxFloat64 so the report stays
// JSON-encodable. A truth word missing from the score row (for example a
// word skipped during training) is reported with a clamped -Inf score.
func BuildReport(results []Result, truth []string) (*Report, error) {
	if len(results) != len(truth) {
		return nil, fmt.Errorf("results/truth length mismatch: %d != %d", len(results), len(truth))
	}

	report := &Report{Items: len(results)}
	for i, res := range results {
		if res.Guess == truth[i] {
			report.Correct++
			continue
		}

		truthScore, ok := res.Row[truth[i]]
		if !ok {
			truthScore = math.Inf(-1)
		}
		report.Errors = append(report.Errors, ItemError{
			Index:      i,
			Truth:      truth[i],
			Guess:      res.Guess,
			TruthScore: clampScore(truthScore),
			GuessScore: clampScore(res.Row[res.Guess]),
		})
	}

	if report.Items > 0 {
		report.WER = float64(report.Items-report.Correct) / float64(report.Items)
	}

	return report, nil
}

// Encode serializes the report with the given codec, or codec.Default when
// c is nil.
func (r *Report) Encode(c codec.Codec) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	return c.Marshal(r)
}

// DecodeReport is the inverse of Encode.
func DecodeReport(c codec.Codec, data []byte) (*Report, error) {
	if c == nil {
		c = codec.Default
	}
	var report Report
	if err := c.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

func clampScore(v float64) float64 {
	switch {
	case math.IsInf(v, -1):
		return -math.MaxFloat64
	case math.IsInf(v, 1):
		return math.MaxFloat64
	default:
		return v
	}
}
