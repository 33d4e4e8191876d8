package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/spans/internal/contract"
	"github.com/huangsam/spans/internal/parquet"
	"github.com/huangsam/spans/schema"
	"github.com/olekukonko/tablewriter"
)

// WriteCheckResults outputs the outcome of every overlap case.
func WriteCheckResults(summary schema.CheckSummary, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, summary)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckCSV(w, summary)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WriteRows(parquet.ConvertCheckSummary(summary), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		contract.LogInfo("💾", "Wrote Parquet to %s", cfg.OutputFile)
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCheckTable(w, summary, shouldColor(cfg), duration)
		}, "Wrote table")
	}
}

func writeCheckCSV(w io.Writer, summary schema.CheckSummary) error {
	header := []string{"name", "result", "got", "want", "error"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, res := range summary.Results {
			rec := []string{
				res.Name,
				contract.GetPlainLabel(res.Passed),
				res.Got.String(),
				res.Want.String(),
				res.Error,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeCheckTable(w io.Writer, summary schema.CheckSummary, colored bool, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Case", "Result", "Detail"})

	data := make([][]string, 0, len(summary.Results))
	for _, res := range summary.Results {
		detail := fmt.Sprintf("%d interval(s)", len(res.Got))
		switch {
		case res.Error != "":
			detail = res.Error
		case !res.Passed:
			detail = fmt.Sprintf("got %s, want %s", res.Got, res.Want)
		}
		data = append(data, []string{res.Name, passLabel(res.Passed, colored), detail})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%d passed, %d failed\n", summary.Passed, summary.Failed); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Completed in %v\n", duration.Round(time.Microsecond))
	return err
}
