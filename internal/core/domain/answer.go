package domain

import "math"

// Answer is the outcome of one question-answering request.
// It is ephemeral at the core boundary; persistence of the underlying
// question/answer pair is the history store's concern.
type Answer struct {
	// Question is the question as asked.
	Question string

	// Answer is the generated answer text, whitespace-trimmed.
	Answer string

	// Sources lists the names of the documents the retrieved chunks came
	// from, deduplicated. Order is not guaranteed.
	Sources []string

	// Confidence is the retrieval quality score, 1 - min(distance) over the
	// retrieved chunks, rounded to 3 decimals. 0.0 when retrieval was empty
	// or the request degraded.
	Confidence float64

	// ChunksUsed is the number of retrieved chunks included in the prompt.
	ChunksUsed int

	// ProcessTime is the elapsed wall-clock time, formatted like "1.24s".
	// A degraded response carries a "(failed)" marker, e.g. "7.51s (failed)".
	ProcessTime string
}

// RoundConfidence rounds a confidence score to 3 decimal places.
func RoundConfidence(c float64) float64 {
	return math.Round(c*1000) / 1000
}
