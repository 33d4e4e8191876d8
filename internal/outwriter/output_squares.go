package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/spans/internal/contract"
	"github.com/huangsam/spans/internal/parquet"
	"github.com/huangsam/spans/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteSquaresResult outputs an average-of-squares result.
func WriteSquaresResult(result schema.SquaresResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSquaresCSV(w, result, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WriteRows(parquet.ConvertSquares(result), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		contract.LogInfo("💾", "Wrote Parquet to %s", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSquaresTable(w, result, fmtFloat, duration)
		}, "Wrote table")
	}
}

func writeSquaresCSV(w io.Writer, result schema.SquaresResult, fmtFloat func(float64) string) error {
	header := []string{"count", "weighted", "root", "value"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		return csvWriter.Write([]string{
			strconv.Itoa(result.Count),
			strconv.FormatBool(result.Weighted),
			strconv.FormatBool(result.Root),
			fmtFloat(result.Value),
		})
	})
}

func writeSquaresTable(w io.Writer, result schema.SquaresResult, fmtFloat func(float64) string, duration time.Duration) error {
	var label string
	switch {
	case result.Weighted && result.Root:
		label = "Weighted root mean square"
	case result.Weighted:
		label = "Weighted average of squares"
	case result.Root:
		label = "Root mean square"
	default:
		label = "Average of squares"
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})
	rows := [][]string{
		{"Numbers", strconv.Itoa(result.Count)},
		{label, fmtFloat(result.Value)},
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Completed in %v\n", duration.Round(time.Microsecond))
	return err
}
