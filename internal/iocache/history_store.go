package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/spans/internal/contract"
	"github.com/huangsam/spans/schema"
)

// Table names for run history.
const (
	runsTable      = "spans_runs"
	intervalsTable = "spans_intervals"
)

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}

	if err := createHistoryTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables applies every embedded up migration in order.
// Each one is idempotent, so this is safe on an already migrated database.
func createHistoryTables(db *sql.DB) error {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		return err
	}
	sort.Strings(ups)
	for _, name := range ups {
		query, err := migrationsFS.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := db.Exec(strings.TrimSpace(string(query))); err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
	}
	return nil
}

func (hs *HistoryStoreImpl) disabled() bool {
	return hs.backend == schema.NoneBackend || hs.db == nil
}

// BeginRun creates a new run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRun(command schema.Command, startTime time.Time, params map[string]any) (string, error) {
	if hs.disabled() {
		return "", nil
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("failed to marshal run params: %w", err)
	}

	runID := uuid.NewString()
	query := rebind(hs.backend, fmt.Sprintf(`INSERT INTO %s (run_id, command, start_time_ms, interval_count, params) VALUES (?, ?, ?, 0, ?)`,
		quoteTableName(runsTable, hs.backend)))
	if _, err := hs.db.Exec(query, runID, string(command), startTime.UnixMilli(), string(paramsJSON)); err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// RecordIntervals stores the result intervals of a run in order.
func (hs *HistoryStoreImpl) RecordIntervals(runID string, tr schema.TimeRange) error {
	if hs.disabled() || len(tr) == 0 {
		return nil
	}

	tx, err := hs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := rebind(hs.backend, fmt.Sprintf(`INSERT INTO %s (run_id, seq_no, start_time_ms, stop_time_ms) VALUES (?, ?, ?, ?)`,
		quoteTableName(intervalsTable, hs.backend)))
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare interval insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, ti := range tr {
		if _, err := stmt.Exec(runID, i, ti.Start.UnixMilli(), ti.Stop.UnixMilli()); err != nil {
			return fmt.Errorf("failed to insert interval %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// EndRun updates the run with completion data.
func (hs *HistoryStoreImpl) EndRun(runID string, endTime time.Time, intervalCount int) error {
	if hs.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(runsTable, hs.backend)

	var startMs int64
	query := rebind(hs.backend, fmt.Sprintf(`SELECT start_time_ms FROM %s WHERE run_id = ?`, quotedTableName))
	if err := hs.db.QueryRow(query, runID).Scan(&startMs); err != nil {
		return fmt.Errorf("failed to get start time for run %s: %w", runID, err)
	}

	endMs := endTime.UnixMilli()
	update := rebind(hs.backend, fmt.Sprintf(`UPDATE %s SET end_time_ms = ?, run_duration_ms = ?, interval_count = ? WHERE run_id = ?`, quotedTableName))
	if _, err := hs.db.Exec(update, endMs, endMs-startMs, intervalCount, runID); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.disabled() {
		return status, nil
	}

	for _, table := range []string{runsTable, intervalsTable} {
		var count int64
		row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalRuns = int(status.TableSizes[runsTable])
	status.TotalIntervals = int(status.TableSizes[intervalsTable])

	if status.TotalRuns == 0 {
		return status, nil
	}

	quotedRuns := quoteTableName(runsTable, hs.backend)

	var lastMs int64
	row := hs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time_ms FROM %s ORDER BY start_time_ms DESC, run_id DESC LIMIT 1", quotedRuns))
	if err := row.Scan(&status.LastRunID, &lastMs); err != nil {
		return status, fmt.Errorf("failed to get last run info: %w", err)
	}
	status.LastRunTime = time.UnixMilli(lastMs).UTC()

	var oldestMs int64
	row = hs.db.QueryRow(fmt.Sprintf("SELECT MIN(start_time_ms) FROM %s", quotedRuns))
	if err := row.Scan(&oldestMs); err != nil {
		return status, fmt.Errorf("failed to get oldest run time: %w", err)
	}
	status.OldestRunTime = time.UnixMilli(oldestMs).UTC()

	return status, nil
}

// GetAllRuns retrieves all runs from the store, oldest first.
func (hs *HistoryStoreImpl) GetAllRuns() ([]schema.RunRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, command, start_time_ms, end_time_ms, run_duration_ms, interval_count, params
		FROM %s ORDER BY start_time_ms, run_id`, quoteTableName(runsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var startMs int64
		var endMs sql.NullInt64
		var durationMs sql.NullInt64
		var params sql.NullString
		if err := rows.Scan(&record.RunID, &record.Command, &startMs, &endMs, &durationMs, &record.IntervalCount, &params); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		record.StartTime = time.UnixMilli(startMs).UTC()
		if endMs.Valid {
			endTime := time.UnixMilli(endMs.Int64).UTC()
			record.EndTime = &endTime
		}
		if durationMs.Valid {
			record.RunDurationMs = &durationMs.Int64
		}
		if params.Valid {
			record.Params = &params.String
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllIntervals retrieves all recorded intervals, ordered by run and position.
func (hs *HistoryStoreImpl) GetAllIntervals() ([]schema.IntervalRecord, error) {
	if hs.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, seq_no, start_time_ms, stop_time_ms FROM %s ORDER BY run_id, seq_no`,
		quoteTableName(intervalsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query intervals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.IntervalRecord
	for rows.Next() {
		var record schema.IntervalRecord
		var startMs, stopMs int64
		if err := rows.Scan(&record.RunID, &record.Position, &startMs, &stopMs); err != nil {
			return nil, fmt.Errorf("failed to scan interval: %w", err)
		}
		record.StartTime = time.UnixMilli(startMs).UTC()
		record.StopTime = time.UnixMilli(stopMs).UTC()
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating intervals: %w", err)
	}
	return results, nil
}
