package core

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/huangsam/protopair/internal/contract"
	"github.com/huangsam/protopair/schema"
)

// checkViolation describes one repository exceeding the pair budget.
type checkViolation struct {
	Repo     string
	Pairs    int
	MaxPairs int
}

// ExecuteCheckPairs enforces a coupling budget for CI pipelines: it mines
// every configured repository and fails when any of them yields more
// qualifying pairs than cfg.MaxPairs allows. It serves as the main entry
// point for the 'check' mode.
func ExecuteCheckPairs(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()

	// The gate counts every qualifying pair, so the display limit must not
	// truncate the mined set.
	cfgFull := cfg.Clone()
	cfgFull.ResultLimit = 0

	results, _, err := GetMinePairsResults(ctx, cfgFull, mgr)
	if err != nil {
		return err
	}

	violations := collectViolations(results, cfg.MaxPairs)
	printCheckResult(results, violations, cfg.MaxPairs, time.Since(start))

	if len(violations) > 0 {
		return fmt.Errorf("%d repository(ies) exceed the budget of %d pair(s)", len(violations), cfg.MaxPairs)
	}
	return nil
}

// collectViolations returns the repositories whose qualifying pair count
// exceeds the budget.
func collectViolations(results []schema.RepoResult, maxPairs int) []checkViolation {
	var violations []checkViolation
	for _, r := range results {
		if len(r.Records) > maxPairs {
			violations = append(violations, checkViolation{
				Repo:     r.Repo,
				Pairs:    len(r.Records),
				MaxPairs: maxPairs,
			})
		}
	}
	return violations
}

// printCheckResult prints one verdict line per repository plus a summary.
func printCheckResult(results []schema.RepoResult, violations []checkViolation, maxPairs int, duration time.Duration) {
	for _, r := range results {
		status := "✅"
		if len(r.Records) > maxPairs {
			status = "❌"
		}
		fmt.Printf("%s %s: %d qualifying pair(s) (budget %d)\n",
			status, filepath.Base(r.Repo), len(r.Records), maxPairs)
	}

	if len(violations) == 0 {
		fmt.Printf("✅ Check passed in %.2fs\n", duration.Seconds())
		return
	}
	fmt.Printf("❌ Check failed in %.2fs: %d violation(s) found\n", duration.Seconds(), len(violations))
}
