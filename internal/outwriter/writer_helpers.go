package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/spans/internal/contract"
	"golang.org/x/term"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		contract.LogInfo("💾", "%s to %s", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatter returns a float formatter bound to the configured precision.
func createFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return contract.FormatFloat(v, precision)
	}
}

// shouldColor reports whether table labels may carry ANSI colors.
// Files and pipes never get them.
func shouldColor(cfg *contract.Config) bool {
	if !cfg.UseColors || cfg.OutputFile != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// passLabel returns the PASS/FAIL label, colored when allowed.
func passLabel(passed, colored bool) string {
	if colored {
		return contract.GetColorLabel(passed)
	}
	return contract.GetPlainLabel(passed)
}
