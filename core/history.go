package core

import (
	"time"

	"github.com/huangsam/spans/internal/contract"
	"github.com/huangsam/spans/schema"
)

// recordRun stores a finished run and its intervals in the history store.
// Tracking failures are logged and never fail the command.
func recordRun(mgr contract.CacheManager, command schema.Command, start time.Time, params map[string]any, tr schema.TimeRange) {
	if mgr == nil {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}

	runID, err := store.BeginRun(command, start, params)
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return
	}
	if runID == "" {
		return // Tracking disabled
	}

	if err := store.RecordIntervals(runID, tr); err != nil {
		contract.LogWarn("Failed to record run intervals", err)
	}
	if err := store.EndRun(runID, time.Now(), len(tr)); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}

// rangeParams flattens a range spec for history parameters.
func rangeParams(spec schema.RangeSpec) map[string]any {
	return map[string]any{
		"start": schema.FormatTimestamp(spec.Start),
		"stop":  schema.FormatTimestamp(spec.Stop),
		"count": spec.Count,
		"gap":   spec.Gap.String(),
	}
}
