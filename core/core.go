// Package core has core logic for building, intersecting and checking time ranges.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/spans/core/algo"
	"github.com/huangsam/spans/internal/contract"
	"github.com/huangsam/spans/schema"
)

// ErrCheckFailed is returned by ExecuteCheck when at least one case fails.
var ErrCheckFailed = errors.New("overlap check failed")

// ExecuteRange builds the configured range and prints it.
func ExecuteRange(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, w contract.ResultWriter) error {
	tr, duration, err := GetRangeResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return w.WriteIntervals(fmt.Sprintf("Range %s", cfg.Range), tr, cfg, duration)
}

// ExecuteOverlap intersects the configured large and short ranges and prints the result.
func ExecuteOverlap(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, w contract.ResultWriter) error {
	tr, duration, err := GetOverlapResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return w.WriteIntervals(fmt.Sprintf("Overlap of %s with %s", cfg.Short, cfg.Large), tr, cfg, duration)
}

// ExecutePasses looks up satellite passes and prints them.
func ExecutePasses(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, provider contract.PassProvider, w contract.ResultWriter) error {
	tr, duration, err := GetPassesResults(ctx, cfg, mgr, provider)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("Passes over (%g, %g)", cfg.Latitude, cfg.Longitude)
	if !cfg.Within.IsZero() {
		title += fmt.Sprintf(" within %s", cfg.Within)
	}
	return w.WriteIntervals(title, tr, cfg, duration)
}

// ExecuteSquares computes the average of squares of the configured files and prints it.
func ExecuteSquares(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, w contract.ResultWriter) error {
	result, duration, err := GetSquaresResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return w.WriteSquares(result, cfg, duration)
}

// ExecuteCheck evaluates every case of the configured case file and prints the outcome.
// It returns ErrCheckFailed when any case fails.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, w contract.ResultWriter) error {
	summary, duration, err := GetCheckResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	if err := w.WriteCheck(summary, cfg, duration); err != nil {
		return err
	}
	if !summary.OK() {
		return fmt.Errorf("%w: %d of %d case(s)", ErrCheckFailed, summary.Failed, len(summary.Results))
	}
	return nil
}

// GetRangeResults builds cfg.Range and records the run.
func GetRangeResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.TimeRange, time.Duration, error) {
	start := time.Now()
	if cfg.Range.IsZero() {
		return nil, 0, errors.New("range requires a start and a stop")
	}
	logHeader(ctx, "📏", "Splitting %s", cfg.Range)

	tr, err := cfg.Range.Build()
	if err != nil {
		return nil, 0, err
	}

	recordRun(mgr, schema.RangeCommand, start, rangeParams(cfg.Range), tr)
	return tr, time.Since(start), nil
}

// GetOverlapResults computes the overlap of cfg.Short with cfg.Large and records the run.
func GetOverlapResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.TimeRange, time.Duration, error) {
	start := time.Now()
	if cfg.Large.IsZero() || cfg.Short.IsZero() {
		return nil, 0, errors.New("--large and --short are both required")
	}
	logHeader(ctx, "🔀", "Overlapping %s with %s", cfg.Short, cfg.Large)

	large, err := cfg.Large.Build()
	if err != nil {
		return nil, 0, fmt.Errorf("large range: %w", err)
	}
	short, err := cfg.Short.Build()
	if err != nil {
		return nil, 0, fmt.Errorf("short range: %w", err)
	}

	tr := algo.Overlap(large, short)

	params := map[string]any{
		"large": rangeParams(cfg.Large),
		"short": rangeParams(cfg.Short),
	}
	recordRun(mgr, schema.OverlapCommand, start, params, tr)
	return tr, time.Since(start), nil
}

// GetPassesResults looks up satellite passes, optionally clipped to cfg.Within, and records the run.
func GetPassesResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, provider contract.PassProvider) (schema.TimeRange, time.Duration, error) {
	start := time.Now()
	if provider == nil {
		return nil, 0, errors.New("no pass provider configured")
	}
	logHeader(ctx, "🛰️", "Looking up %d passes over (%g, %g)", cfg.PassCount, cfg.Latitude, cfg.Longitude)

	var window schema.TimeRange
	if !cfg.Within.IsZero() {
		var err error
		if window, err = cfg.Within.Build(); err != nil {
			return nil, 0, fmt.Errorf("within range: %w", err)
		}
	}

	passes, err := cachedPasses(ctx, cfg, provider, mgr, start)
	if err != nil {
		return nil, 0, fmt.Errorf("pass lookup failed: %w", err)
	}

	tr := passes
	if window != nil {
		tr = algo.Overlap(window, passes)
	}

	params := map[string]any{
		"lat":    cfg.Latitude,
		"lon":    cfg.Longitude,
		"passes": cfg.PassCount,
	}
	if window != nil {
		params["within"] = rangeParams(cfg.Within)
	}
	recordRun(mgr, schema.PassesCommand, start, params, tr)
	return tr, time.Since(start), nil
}
