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
	"github.com/olekukonko/tablewriter/tw"
)

// WriteIntervalResults outputs a time range, dispatching based on the output format configured.
func WriteIntervalResults(title string, tr schema.TimeRange, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.EnrichIntervals(tr))
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIntervalCSV(w, tr)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := parquet.WriteRows(parquet.ConvertTimeRange(tr), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		contract.LogInfo("💾", "Wrote Parquet to %s", cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIntervalTable(w, title, tr, shouldColor(cfg), duration)
		}, "Wrote table")
	}
	return nil
}

// writeIntervalCSV writes one row per interval.
func writeIntervalCSV(w io.Writer, tr schema.TimeRange) error {
	header := []string{"index", "start", "stop", "seconds"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, ei := range schema.EnrichIntervals(tr) {
			rec := []string{
				strconv.Itoa(ei.Index),
				ei.Start,
				ei.Stop,
				strconv.FormatInt(ei.Seconds, 10),
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeIntervalTable generates and writes the human-readable table.
func writeIntervalTable(w io.Writer, title string, tr schema.TimeRange, colored bool, duration time.Duration) error {
	if title != "" {
		if colored {
			title = contract.HeaderColor.Sprint(title)
		}
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Start", "Stop", "Duration"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(tr))
	for _, ei := range schema.EnrichIntervals(tr) {
		data = append(data, []string{strconv.Itoa(ei.Index), ei.Start, ei.Stop, ei.Duration})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%d interval(s), total %v\n", len(tr), tr.TotalDuration()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Completed in %v\n", duration.Round(time.Microsecond)); err != nil {
		return err
	}
	return nil
}
