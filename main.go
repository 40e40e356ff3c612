// main is the entry point for the protopair CLI.
package main

import (
	"os"

	"github.com/huangsam/protopair/cmd"
	"github.com/huangsam/protopair/internal/contract"
	"github.com/huangsam/protopair/internal/iocache"
)

func main() {
	defer iocache.CloseStores()
	defer func() { _ = cmd.StopProfiling() }()

	if err := cmd.Execute(); err != nil {
		iocache.CloseStores()
		_ = cmd.StopProfiling()
		contract.LogWarn("Command failed", err)
		os.Exit(1)
	}
}
