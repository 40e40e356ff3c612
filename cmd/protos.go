package cmd

import (
	"github.com/huangsam/protopair/core"
	"github.com/huangsam/protopair/internal/contract"
	"github.com/spf13/cobra"
)

// protosCmd summarizes pair metrics per proto file.
var protosCmd = &cobra.Command{
	Use:   "protos [repo-path...]",
	Short: "Summarize co-change activity per proto file.",
	Long: `Aggregate mined pairs into one row per proto file.

For each proto file the summary reports:
- How many qualifying pairs it anchors
- How many commits touched it
- The mean confidence across its pairs
- The strongest lift it participates in

Use this view to answer "which schemas are the biggest coupling magnets"
before drilling into individual pairs.

Examples:
  # Summarize the current repository
  protopair protos

  # Top ten most coupled protos across two repos
  protopair protos ~/src/api ~/src/gateway --limit 10

  # Export for dashboards
  protopair protos --output csv --output-file protos.csv`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSummarizeProtos(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot summarize protos", err)
		}
	},
}
