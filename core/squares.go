package core

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/huangsam/spans/core/algo"
	"github.com/huangsam/spans/internal/contract"
	"github.com/huangsam/spans/schema"
)

// ComputeSquares averages the squares of numbers, optionally weighted, and
// takes the square root of the average when root is set.
func ComputeSquares(numbers, weights []float64, root bool) (schema.SquaresResult, error) {
	avg, err := algo.AverageOfSquares(numbers, weights)
	if err != nil {
		return schema.SquaresResult{}, err
	}

	result := schema.SquaresResult{
		Count:    len(numbers),
		Weighted: weights != nil,
		Root:     root,
		Value:    avg,
	}
	if root {
		if avg < 0 {
			return schema.SquaresResult{}, fmt.Errorf("cannot take the root of a negative average %g", avg)
		}
		result.Value = math.Sqrt(avg)
	}
	return result, nil
}

// GetSquaresResults reads the numbers and optional weights files and averages their squares.
func GetSquaresResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (schema.SquaresResult, time.Duration, error) {
	start := time.Now()
	if cfg.NumbersFile == "" {
		return schema.SquaresResult{}, 0, errors.New("a numbers file is required")
	}
	logHeader(ctx, "🔢", "Averaging squares from %s", cfg.NumbersFile)

	numbers, err := readNumbers(cfg.NumbersFile)
	if err != nil {
		return schema.SquaresResult{}, 0, err
	}

	var weights []float64
	if cfg.WeightsFile != "" {
		if weights, err = readNumbers(cfg.WeightsFile); err != nil {
			return schema.SquaresResult{}, 0, err
		}
	}

	result, err := ComputeSquares(numbers, weights, cfg.Root)
	if err != nil {
		return schema.SquaresResult{}, 0, err
	}

	params := map[string]any{
		"numbers": cfg.NumbersFile,
		"weights": cfg.WeightsFile,
		"root":    cfg.Root,
		"value":   result.Value,
	}
	recordRun(mgr, schema.SquaresCommand, start, params, nil)
	return result, time.Since(start), nil
}

func readNumbers(path string) ([]float64, error) {
	lines, err := contract.ReadLines(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	numbers, err := algo.ConvertNumbers(lines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return numbers, nil
}
