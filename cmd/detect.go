package cmd

import (
	"github.com/huangsam/protopair/core"
	"github.com/huangsam/protopair/internal/contract"
	"github.com/spf13/cobra"
)

// detectCmd checks directories for protobuf usage.
var detectCmd = &cobra.Command{
	Use:   "detect [dir...]",
	Short: "Detect whether directories use protobuf.",
	Long: `Scan directories for evidence of protobuf usage.

Detection looks for proto files matching the configured extension first,
then falls back to scanning text files for well-known protobuf dependency
markers (Go, Java, Python and JavaScript package references).

Use this to pre-filter a fleet of repositories before running the miner
on all of them.

Examples:
  # Check the current directory
  protopair detect

  # Check several checkouts at once
  protopair detect ~/src/api ~/src/frontend ~/src/infra

  # Machine-readable result for scripting
  protopair detect --output json`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDetect(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run detection", err)
		}
	},
}
