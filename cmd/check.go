package cmd

import (
	"github.com/huangsam/protopair/core"
	"github.com/huangsam/protopair/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd focused on CI/CD policy enforcement.
var checkCmd = &cobra.Command{
	Use:   "check [repo-path...]",
	Short: "Enforce coupling budgets for CI/CD pipelines (fails build on violations)",
	Long: `Mine co-change pairs and fail when a repository exceeds its coupling budget.

Designed for CI/CD integration - exits non-zero when the number of pairs
passing the configured thresholds is larger than --max-pairs. Tighten the
thresholds so that only pairs you consider problematic qualify, then set
the budget to the number you are willing to tolerate.

Default budget: 0 qualifying pairs per repository.

Use cases:
- Pull request gates - block merges that grow schema coupling
- Release validation - ensure generated code stays in sync tooling
- Quality enforcement - keep proto contracts loosely coupled

Examples:
  # Fail if any pair has lift >= 3 and confidence >= 0.8
  protopair check --min-lift 3.0 --min-confidence 0.8

  # Tolerate up to five strongly coupled pairs
  protopair check --min-lift 2.0 --max-pairs 5

  # Gate several repositories in one run
  protopair check ~/src/api ~/src/gateway --min-lift 2.5`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Validation is done in ExecuteCheckPairs
		if err := core.ExecuteCheckPairs(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Coupling check failed", err)
		}
	},
}
