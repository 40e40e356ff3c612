package cmd

import (
	"github.com/huangsam/protopair/core"
	"github.com/huangsam/protopair/internal/contract"
	"github.com/spf13/cobra"
)

// pairsCmd mines co-change pairs anchored on proto files.
var pairsCmd = &cobra.Command{
	Use:   "pairs [repo-path...]",
	Short: "Show files that co-change with proto files, ranked by lift.",
	Long: `Mine Git history and rank (proto file, other file) co-change pairs.

Every commit becomes a transaction of changed file paths. For each directed
pair of a proto file and another file, protopair computes:
- Support: fraction of all commits touching both files
- Confidence: fraction of the proto file's commits that also touch the other file
- Lift: how much more often the two change together than chance would predict

Pairs are ranked by lift, then confidence, then support, helping you:
- Find generated code and handlers coupled to your proto contracts
- Spot docs or configs that silently drift when schemas evolve
- Audit which services are affected by a schema change

Examples:
  # Mine the current repository
  protopair pairs

  # Mine several repositories in one batch
  protopair pairs ~/src/api ~/src/gateway

  # Only show strongly associated pairs
  protopair pairs --min-lift 2.0 --min-confidence 0.5

  # Treat all proto files as a single anchor
  protopair pairs --anchor merged

  # Export findings to CSV for tracking
  protopair pairs --output csv --output-file pairs.csv`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMinePairs(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot mine pairs", err)
		}
	},
}
