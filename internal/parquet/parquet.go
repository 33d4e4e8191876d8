// Package parquet provides row types and writers for exporting spans
// results and run history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/spans/schema"
	"github.com/parquet-go/parquet-go"
)

// IntervalRow is one interval of a computed time range.
type IntervalRow struct {
	// Index is the zero-based position of the interval in its range
	Index int32 `parquet:"index,snappy"`

	Start time.Time `parquet:"start,snappy"`
	Stop  time.Time `parquet:"stop,snappy"`

	// Seconds is the interval length in whole seconds
	Seconds int64 `parquet:"seconds,snappy"`
}

// RunRow maps to the spans_runs history table.
type RunRow struct {
	RunID     string     `parquet:"run_id,snappy"`
	Command   string     `parquet:"command,snappy"`
	StartTime time.Time  `parquet:"start_time,snappy"`
	EndTime   *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is nil for runs that never finished
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	IntervalCount int64 `parquet:"interval_count,snappy"`

	// Params contains the JSON-encoded command parameters
	Params *string `parquet:"params,optional,snappy"`
}

// IntervalRecordRow maps to the spans_intervals history table.
type IntervalRecordRow struct {
	RunID     string    `parquet:"run_id,snappy"`
	Position  int64     `parquet:"seq_no,snappy"`
	StartTime time.Time `parquet:"start_time,snappy"`
	StopTime  time.Time `parquet:"stop_time,snappy"`
}

// SquaresRow is a single average-of-squares result.
type SquaresRow struct {
	Count    int32   `parquet:"count,snappy"`
	Weighted bool    `parquet:"weighted,snappy"`
	Root     bool    `parquet:"root,snappy"`
	Value    float64 `parquet:"value,snappy"`
}

// CheckRow is the outcome of one overlap check case.
type CheckRow struct {
	Name   string  `parquet:"name,snappy"`
	Passed bool    `parquet:"passed,snappy"`
	Got    string  `parquet:"got,snappy"`
	Want   string  `parquet:"want,snappy"`
	Error  *string `parquet:"error,optional,snappy"`
}

// WriteRows writes a slice of rows to a Parquet file. The schema is
// derived from the struct tags of T.
func WriteRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertTimeRange converts a time range into interval rows.
func ConvertTimeRange(tr schema.TimeRange) []IntervalRow {
	result := make([]IntervalRow, len(tr))
	for i, ti := range tr {
		result[i] = IntervalRow{
			Index:   int32(i),
			Start:   ti.Start,
			Stop:    ti.Stop,
			Seconds: int64(ti.Duration().Seconds()),
		}
	}
	return result
}

// ConvertRunRecords converts history runs for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []RunRow {
	result := make([]RunRow, len(records))
	for i, record := range records {
		result[i] = RunRow{
			RunID:         record.RunID,
			Command:       record.Command,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			IntervalCount: record.IntervalCount,
			Params:        record.Params,
		}
	}
	return result
}

// ConvertIntervalRecords converts history intervals for Parquet export.
func ConvertIntervalRecords(records []schema.IntervalRecord) []IntervalRecordRow {
	result := make([]IntervalRecordRow, len(records))
	for i, record := range records {
		result[i] = IntervalRecordRow{
			RunID:     record.RunID,
			Position:  record.Position,
			StartTime: record.StartTime,
			StopTime:  record.StopTime,
		}
	}
	return result
}

// ConvertSquares converts a squares result into a single row.
func ConvertSquares(res schema.SquaresResult) []SquaresRow {
	return []SquaresRow{{
		Count:    int32(res.Count),
		Weighted: res.Weighted,
		Root:     res.Root,
		Value:    res.Value,
	}}
}

// ConvertCheckSummary converts check results into rows.
func ConvertCheckSummary(summary schema.CheckSummary) []CheckRow {
	result := make([]CheckRow, len(summary.Results))
	for i, res := range summary.Results {
		row := CheckRow{
			Name:   res.Name,
			Passed: res.Passed,
			Got:    res.Got.String(),
			Want:   res.Want.String(),
		}
		if res.Error != "" {
			msg := res.Error
			row.Error = &msg
		}
		result[i] = row
	}
	return result
}
