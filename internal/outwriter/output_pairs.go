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
	"github.com/olekukonko/tablewriter/tw"
)

// pairCSVHeader is the documented column order for exported pair metrics.
var pairCSVHeader = []string{
	"repo",
	"proto_file",
	"other_file",
	"pairs",
	"proto_count",
	"other_count",
	"support",
	"confidence",
	"lift",
}

// PrintPairResults outputs the mined pair metrics, dispatching based on the
// output format configured.
func PrintPairResults(results []schema.RepoResult, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForPairs(w, results)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, pairCSVHeader, func(cw *csv.Writer) error {
				return writeCSVResultsForPairs(cw, results, fmtFloat, intFmt)
			})
		}, "Wrote CSV")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMarkdownResultsForPairs(w, results, fmtFloat)
		}, "Wrote Markdown")
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePairTables(results, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// writePairTables generates and writes one human-readable table per repository.
func writePairTables(results []schema.RepoResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	pathWidth := getMaxTablePathWidth(cfg, 2)
	totalPairs := 0

	for _, r := range results {
		if _, err := fmt.Fprintf(writer, "📦 %s (%d transactions)\n", r.Repo, r.Total); err != nil {
			return err
		}

		table := tablewriter.NewWriter(writer)

		// 1. Define Headers
		table.Header([]string{"Rank", "Proto File", "Other File", "Pairs", "Support", "Confidence", "Lift", "Label"})

		// 2. Configure Alignment
		table.Configure(func(tcfg *tablewriter.Config) {
			tcfg.Row.Alignment.Global = tw.AlignRight
		})

		// 3. Populate Rows
		var data [][]string
		for i, rec := range r.Records {
			label := schema.GetPlainLabel(rec.Lift)
			if cfg.UseColors {
				label = contract.GetColorLabel(rec.Lift)
			}
			data = append(data, []string{
				strconv.Itoa(i + 1),
				contract.TruncatePath(rec.ProtoFile, pathWidth),
				contract.TruncatePath(rec.OtherFile, pathWidth),
				fmt.Sprintf(intFmt, rec.Pairs),
				fmtFloat(rec.Support),
				fmtFloat(rec.Confidence),
				fmtFloat(rec.Lift),
				label,
			})
		}

		// 4. Render the table
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
		totalPairs += len(r.Records)
	}

	if _, err := fmt.Fprintf(writer, "Showing %d pair(s) across %d repository(ies)\n", totalPairs, len(results)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Mining completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForPairs writes the mined pair metrics in CSV format.
func writeCSVResultsForPairs(w *csv.Writer, results []schema.RepoResult, fmtFloat func(float64) string, intFmt string) error {
	for _, r := range results {
		for _, rec := range r.Records {
			row := []string{
				r.Repo,
				rec.ProtoFile,
				rec.OtherFile,
				fmt.Sprintf(intFmt, rec.Pairs),
				fmt.Sprintf(intFmt, rec.ProtoCount),
				fmt.Sprintf(intFmt, rec.OtherCount),
				fmtFloat(rec.Support),
				fmtFloat(rec.Confidence),
				fmtFloat(rec.Lift),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeJSONResultsForPairs writes the mined pair metrics in JSON format.
func writeJSONResultsForPairs(w io.Writer, results []schema.RepoResult) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONRepoResult struct {
		Repo  string                        `json:"repo"`
		Total int                           `json:"total_transactions"`
		Pairs []schema.EnrichedMetricRecord `json:"pairs"`
	}

	output := make([]JSONRepoResult, len(results))
	for i, r := range results {
		output[i] = JSONRepoResult{
			Repo:  r.Repo,
			Total: r.Total,
			Pairs: schema.EnrichRecords(r.Records),
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// writeMarkdownResultsForPairs writes the mined pair metrics as one Markdown
// table per repository, suitable for pasting into review docs.
func writeMarkdownResultsForPairs(w io.Writer, results []schema.RepoResult, fmtFloat func(float64) string) error {
	for _, r := range results {
		if _, err := fmt.Fprintf(w, "## %s\n\nTotal transactions: %d\n\n", r.Repo, r.Total); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "| Rank | Proto File | Other File | Pairs | Support | Confidence | Lift | Label |"); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, "| ---: | --- | --- | ---: | ---: | ---: | ---: | --- |"); err != nil {
			return err
		}
		for i, rec := range r.Records {
			if _, err := fmt.Fprintf(w, "| %d | %s | %s | %d | %s | %s | %s | %s |\n",
				i+1, rec.ProtoFile, rec.OtherFile, rec.Pairs,
				fmtFloat(rec.Support), fmtFloat(rec.Confidence), fmtFloat(rec.Lift),
				schema.GetPlainLabel(rec.Lift)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
