package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/huangsam/spans/core/algo"
	"github.com/huangsam/spans/internal/contract"
	"github.com/huangsam/spans/schema"
	"golang.org/x/sync/errgroup"
)

// EvaluateCase builds both inputs of c, overlaps them and compares the result
// with the expected range.
func EvaluateCase(c schema.CheckCase) schema.CheckResult {
	result := schema.CheckResult{Name: c.Name}

	large, err := c.Large.Build()
	if err != nil {
		result.Error = fmt.Sprintf("%s: %v", schema.LargeInputName, err)
		return result
	}
	short, err := c.Short.Build()
	if err != nil {
		result.Error = fmt.Sprintf("%s: %v", schema.ShortInputName, err)
		return result
	}

	switch c.ExpectedRef {
	case schema.LargeInputName:
		result.Want = large
	case schema.ShortInputName:
		result.Want = short
	default:
		result.Want = c.Expected
	}

	result.Got = algo.Overlap(large, short)
	result.Passed = result.Got.Equal(result.Want)
	return result
}

// RunChecks evaluates every case. Cases run concurrently and results keep the
// order of cases.
func RunChecks(cases []schema.CheckCase) schema.CheckSummary {
	results := make([]schema.CheckResult, len(cases))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, c := range cases {
		g.Go(func() error {
			results[i] = EvaluateCase(c)
			return nil
		})
	}
	_ = g.Wait()

	summary := schema.CheckSummary{Results: results}
	for _, r := range results {
		if r.Passed {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}
	return summary
}

// GetCheckResults loads cfg.CasesFile and evaluates it.
// Runs are recorded even when cases fail, with the overlaps of the passing cases.
func GetCheckResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.CheckSummary, time.Duration, error) {
	start := time.Now()
	if cfg.CasesFile == "" {
		return schema.CheckSummary{}, 0, errors.New("a cases file is required")
	}
	logHeader(ctx, "🧪", "Checking cases from %s", cfg.CasesFile)

	data, err := os.ReadFile(cfg.CasesFile)
	if err != nil {
		return schema.CheckSummary{}, 0, fmt.Errorf("failed to read cases: %w", err)
	}
	cases, err := schema.ParseCheckCases(data)
	if err != nil {
		return schema.CheckSummary{}, 0, err
	}
	if len(cases) == 0 {
		return schema.CheckSummary{}, 0, fmt.Errorf("no cases found in %s", cfg.CasesFile)
	}

	summary := RunChecks(cases)

	var produced schema.TimeRange
	for _, r := range summary.Results {
		if r.Passed {
			produced = append(produced, r.Got...)
		}
	}
	params := map[string]any{
		"cases":  cfg.CasesFile,
		"passed": summary.Passed,
		"failed": summary.Failed,
	}
	recordRun(mgr, schema.CheckCommand, start, params, produced)
	return summary, time.Since(start), nil
}
