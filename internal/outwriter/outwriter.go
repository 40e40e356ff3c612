// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/protopair/internal/contract"
	"github.com/huangsam/protopair/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WritePairs prints mined pair metrics using the configured output format.
func (ow *OutWriter) WritePairs(results []schema.RepoResult, cfg *contract.Config, duration time.Duration) error {
	return PrintPairResults(results, cfg, duration)
}

// WriteProtos prints per-proto summaries using the configured output format.
func (ow *OutWriter) WriteProtos(summaries []schema.ProtoSummary, cfg *contract.Config, duration time.Duration) error {
	return PrintProtoResults(summaries, cfg, duration)
}

// WriteDetect prints protobuf detection verdicts using the configured output format.
func (ow *OutWriter) WriteDetect(results []schema.DetectResult, cfg *contract.Config, duration time.Duration) error {
	return PrintDetectResults(results, cfg, duration)
}

// LogMineHeader prints a header describing the mining run.
func LogMineHeader(cfg *contract.Config) {
	names := make([]string, 0, len(cfg.RepoPaths))
	for _, p := range cfg.RepoPaths {
		name := filepath.Base(p)
		if name == "" || name == "." {
			name = "current"
		}
		names = append(names, name)
	}

	// Line 1: What is being mined and how protos anchor pairs
	fmt.Printf("🔎 Repos: %s (Anchor: %s)\n", strings.Join(names, ", "), cfg.Anchor)

	// Line 2: The filters applied to the mined pairs
	fmt.Printf("🧪 Ext: %s | Thresholds: support≥%v confidence≥%v lift≥%v\n",
		cfg.ProtoExt, cfg.MinSupport, cfg.MinConfidence, cfg.MinLift)
}

// getMaxTablePathWidth calculates the maximum width for one path column in
// table output based on terminal width. Pair tables carry two path columns,
// so the available space is split between them.
func getMaxTablePathWidth(cfg *contract.Config, pathColumns int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting:
	// Rank + Pairs + Support + Confidence + Lift + Label
	baseWidth := 50

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 20

	if pathColumns < 1 {
		pathColumns = 1
	}
	available := (termWidth - baseWidth) / pathColumns
	if available < 15 {
		// Minimum reasonable path width
		return 15
	}
	if available > 70 {
		// Maximum path width to prevent overly long paths
		return 70
	}
	return available
}
