package algo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrLengthMismatch is returned when weights do not pair up with numbers.
	ErrLengthMismatch = errors.New("weights and numbers must have same length")

	// ErrNoNumbers is returned when there is nothing to average.
	ErrNoNumbers = errors.New("no numbers to average")

	// ErrNotFinite is returned for NaN or infinite inputs and results.
	ErrNotFinite = errors.New("number is not finite")
)

// AverageOfSquares returns the weighted mean of the squares of numbers.
// A nil weights slice weighs every number by one.
func AverageOfSquares(numbers, weights []float64) (float64, error) {
	if len(numbers) == 0 {
		return 0, ErrNoNumbers
	}
	if weights != nil && len(weights) != len(numbers) {
		return 0, fmt.Errorf("%w: %d weights for %d numbers", ErrLengthMismatch, len(weights), len(numbers))
	}

	var sum float64
	for i, x := range numbers {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		sum += w * x * x
	}
	avg := sum / float64(len(numbers))
	if math.IsNaN(avg) || math.IsInf(avg, 0) {
		return 0, fmt.Errorf("%w: average is %g", ErrNotFinite, avg)
	}
	return avg, nil
}

// ConvertNumbers parses every whitespace-separated token of lines as a finite float.
func ConvertNumbers(lines []string) ([]float64, error) {
	var numbers []float64
	for lineNo, line := range lines {
		for _, field := range strings.Fields(line) {
			n, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid number %q: %w", lineNo+1, field, err)
			}
			if math.IsNaN(n) || math.IsInf(n, 0) {
				return nil, fmt.Errorf("line %d: %q: %w", lineNo+1, field, ErrNotFinite)
			}
			numbers = append(numbers, n)
		}
	}
	return numbers, nil
}
