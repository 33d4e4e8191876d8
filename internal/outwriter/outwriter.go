// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/spans/internal/contract"
	"github.com/huangsam/spans/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

var _ contract.ResultWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteIntervals prints a time range using the configured output format.
func (ow *OutWriter) WriteIntervals(title string, tr schema.TimeRange, cfg *contract.Config, duration time.Duration) error {
	return WriteIntervalResults(title, tr, cfg, duration)
}

// WriteSquares prints an average-of-squares result using the configured output format.
func (ow *OutWriter) WriteSquares(result schema.SquaresResult, cfg *contract.Config, duration time.Duration) error {
	return WriteSquaresResult(result, cfg, duration)
}

// WriteCheck prints overlap case results using the configured output format.
func (ow *OutWriter) WriteCheck(summary schema.CheckSummary, cfg *contract.Config, duration time.Duration) error {
	return WriteCheckResults(summary, cfg, duration)
}
