package cmd

import (
	"github.com/huangsam/spans/core"
	"github.com/huangsam/spans/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd evaluates data-driven overlap cases.
var checkCmd = &cobra.Command{
	Use:   "check CASES_FILE",
	Short: "Evaluate overlap cases from a YAML file (fails on any mismatch)",
	Long: `Run every case of a YAML case file and compare the overlap with the expectation.

A case file is a list of named cases:

  - given:
      test_input:
        interval_1: ["2010-01-12 10:00:00", "2010-01-12 12:00:00"]
        interval_2: ["2010-01-12 10:30:00", "2010-01-12 10:45:00", 2, 60]
      expected:
        - ["2010-01-12 10:30:00", "2010-01-12 10:37:00"]
        - ["2010-01-12 10:38:00", "2010-01-12 10:45:00"]

expected is either a list of [start, stop] pairs or the name of an input
(interval_1 or interval_2) that the result must equal.

Exits with a non-zero code when any case fails, so it can gate CI pipelines.

Examples:
  spans check cases.yaml
  spans check cases.yaml --output json -o report.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupWith(func(args []string) { input.CasesFile = args[0] }),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCheck(rootCtx, cfg, cacheManager, writer); err != nil {
			contract.LogFatal("Overlap check failed", err)
		}
	},
}

// squaresCmd averages the squares of a file of numbers.
var squaresCmd = &cobra.Command{
	Use:   "squares NUMBERS_FILE",
	Short: "Compute the (weighted) average of squares of a file of numbers",
	Long: `Read whitespace-separated numbers and print the average of their squares.

With --weights, each square is multiplied by the matching weight before the sum
is divided by the number count. With --root, the square root of the average is
printed instead (root mean square).

Examples:
  spans squares numbers.txt
  spans squares numbers.txt -w weights.txt --root --precision 3`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupWith(func(args []string) { input.NumbersFile = args[0] }),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSquares(rootCtx, cfg, cacheManager, writer); err != nil {
			contract.LogFatal("Failed to compute average of squares", err)
		}
	},
}
