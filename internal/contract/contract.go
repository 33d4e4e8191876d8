// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/huangsam/spans/schema"
)

// PassProvider looks up satellite pass windows for a ground location.
// This allows the pass lookup to be tested without network access.
type PassProvider interface {
	// Passes returns the next n pass windows over (lat, lon) as an ordered range.
	Passes(ctx context.Context, lat, lon float64, n int) (schema.TimeRange, error)
}

// ResultWriter renders command results in the configured output mode.
type ResultWriter interface {
	WriteIntervals(title string, tr schema.TimeRange, cfg *Config, duration time.Duration) error
	WriteSquares(result schema.SquaresResult, cfg *Config, duration time.Duration) error
	WriteCheck(summary schema.CheckSummary, cfg *Config, duration time.Duration) error
}

// CacheManager defines the interface for managing persistence stores.
// This allows the storage layer to be mocked for testing.
type CacheManager interface {
	GetCacheStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking runs and the intervals they produced.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(command schema.Command, startTime time.Time, params map[string]any) (string, error)

	// RecordIntervals stores the result intervals of a run in order
	RecordIntervals(runID string, tr schema.TimeRange) error

	// EndRun updates the run with completion data
	EndRun(runID string, endTime time.Time, intervalCount int) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllIntervals returns every recorded interval, ordered by run and position
	GetAllIntervals() ([]schema.IntervalRecord, error)

	// Close closes the underlying connection
	Close() error
}
