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

// protoCSVHeader is the documented column order for exported proto summaries.
var protoCSVHeader = []string{
	"repo",
	"proto_file",
	"pair_count",
	"occurrence",
	"mean_confidence",
	"max_lift",
}

// PrintProtoResults outputs per-proto summaries, dispatching based on the
// output format configured.
func PrintProtoResults(summaries []schema.ProtoSummary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, schema.EnrichSummaries(summaries))
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, protoCSVHeader, func(cw *csv.Writer) error {
				return writeCSVResultsForProtos(cw, summaries, fmtFloat, intFmt)
			})
		}, "Wrote CSV")
	case schema.MarkdownOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeMarkdownResultsForProtos(w, summaries, fmtFloat)
		}, "Wrote Markdown")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProtoTable(summaries, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
}

// writeProtoTable generates and writes the human-readable summary table.
func writeProtoTable(summaries []schema.ProtoSummary, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	pathWidth := getMaxTablePathWidth(cfg, 1)

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Proto File", "Repo", "Pairs", "Occurrence", "Mean Conf", "Max Lift", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, s := range summaries {
		label := schema.GetPlainLabel(s.MaxLift)
		if cfg.UseColors {
			label = contract.GetColorLabel(s.MaxLift)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncatePath(s.ProtoFile, pathWidth),
			contract.TruncatePath(s.Repo, pathWidth),
			fmt.Sprintf(intFmt, s.PairCount),
			fmt.Sprintf(intFmt, s.Occurrence),
			fmtFloat(s.MeanConfidence),
			fmtFloat(s.MaxLift),
			label,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Showing %d proto file(s)\n", len(summaries)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Mining completed in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForProtos writes the proto summaries in CSV format.
func writeCSVResultsForProtos(w *csv.Writer, summaries []schema.ProtoSummary, fmtFloat func(float64) string, intFmt string) error {
	for _, s := range summaries {
		row := []string{
			s.Repo,
			s.ProtoFile,
			fmt.Sprintf(intFmt, s.PairCount),
			fmt.Sprintf(intFmt, s.Occurrence),
			fmtFloat(s.MeanConfidence),
			fmtFloat(s.MaxLift),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// writeMarkdownResultsForProtos writes the proto summaries as a Markdown table.
func writeMarkdownResultsForProtos(w io.Writer, summaries []schema.ProtoSummary, fmtFloat func(float64) string) error {
	if _, err := fmt.Fprintln(w, "| Rank | Proto File | Repo | Pairs | Occurrence | Mean Conf | Max Lift | Label |"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "| ---: | --- | --- | ---: | ---: | ---: | ---: | --- |"); err != nil {
		return err
	}
	for i, s := range summaries {
		if _, err := fmt.Fprintf(w, "| %d | %s | %s | %d | %d | %s | %s | %s |\n",
			i+1, s.ProtoFile, s.Repo, s.PairCount, s.Occurrence,
			fmtFloat(s.MeanConfidence), fmtFloat(s.MaxLift),
			schema.GetPlainLabel(s.MaxLift)); err != nil {
			return err
		}
	}
	return nil
}
