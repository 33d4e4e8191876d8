package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/spans/internal/contract"
	"github.com/huangsam/spans/internal/parquet"
)

// ExecuteHistoryExport exports recorded runs and their intervals to two Parquet files
// named after outputFile.
func ExecuteHistoryExport(w io.Writer, store contract.HistoryStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history store is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total intervals: %d\n", status.TotalIntervals)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	intervals, err := store.GetAllIntervals()
	if err != nil {
		return fmt.Errorf("failed to retrieve intervals: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRows(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(runs), runsFile)

	intervalsFile := outputFile + ".intervals.parquet"
	if err := parquet.WriteRows(parquet.ConvertIntervalRecords(intervals), intervalsFile); err != nil {
		return fmt.Errorf("failed to write intervals: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d intervals to: %s\n", len(intervals), intervalsFile)

	return nil
}
