package schema

import "time"

// CacheStatus represents the status of the cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus represents the status of the history store.
type HistoryStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalRuns      int              `json:"total_runs"`
	LastRunID      string           `json:"last_run_id"`
	LastRunTime    time.Time        `json:"last_run_time"`
	OldestRunTime  time.Time        `json:"oldest_run_time"`
	TotalIntervals int              `json:"total_intervals"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the spans_runs table.
type RunRecord struct {
	RunID         string
	Command       string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int64
	IntervalCount int64
	Params        *string
}

// IntervalRecord represents a row from the spans_intervals table.
type IntervalRecord struct {
	RunID     string
	Position  int64
	StartTime time.Time
	StopTime  time.Time
}
