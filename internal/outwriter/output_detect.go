package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/protopair/internal/contract"
	"github.com/huangsam/protopair/schema"

	"github.com/olekukonko/tablewriter"
)

// detectCSVHeader is the documented column order for exported detect verdicts.
var detectCSVHeader = []string{
	"dir",
	"uses_protobuf",
	"reason",
}

// PrintDetectResults outputs protobuf detection verdicts, dispatching based
// on the output format configured.
func PrintDetectResults(results []schema.DetectResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, detectCSVHeader, func(cw *csv.Writer) error {
				for _, r := range results {
					row := []string{r.Dir, strconv.FormatBool(r.UsesProtobuf), r.Reason}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMarkdownResultsForDetect(w, results)
		}, "Wrote Markdown")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDetectTable(results, cfg, duration, w)
		}, "Wrote table")
	}
}

// writeDetectTable generates and writes the human-readable verdict table.
func writeDetectTable(results []schema.DetectResult, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Dir", "Protobuf", "Reason"})

	var data [][]string
	usesCount := 0
	for _, r := range results {
		verdict := "no"
		if r.UsesProtobuf {
			verdict = "yes"
			usesCount++
		}
		data = append(data, []string{
			contract.TruncatePath(r.Dir, getMaxTablePathWidth(cfg, 1)),
			verdict,
			r.Reason,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "%d of %d directory(ies) use protobuf\n", usesCount, len(results)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Detection completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// writeMarkdownResultsForDetect writes the verdicts as a Markdown table.
func writeMarkdownResultsForDetect(w io.Writer, results []schema.DetectResult) error {
	if _, err := fmt.Fprintln(w, "| Dir | Protobuf | Reason |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "| --- | --- | --- |"); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "| %s | %t | %s |\n", r.Dir, r.UsesProtobuf, r.Reason); err != nil {
			return err
		}
	}
	return nil
}
