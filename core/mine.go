package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/huangsam/protopair/core/assoc"
	"github.com/huangsam/protopair/core/txn"
	"github.com/huangsam/protopair/internal/contract"
	"github.com/huangsam/protopair/schema"
)

// mineAllRepos runs the mining pipeline across all configured repositories
// with a worker pool. Each repository owns a private counter set, so workers
// share no mutable state. Results come back in input order; per-repo failures
// are joined into the returned error while successful repositories still
// produce output.
func mineAllRepos(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) ([]schema.RepoResult, error) {
	repos := cfg.RepoPaths
	results := make([]schema.RepoResult, len(repos))
	errs := make([]error, len(repos))

	idxCh := make(chan int, len(repos))
	var wg sync.WaitGroup

	workers := min(cfg.Workers, len(repos))
	if workers < 1 {
		workers = 1
	}

	// Start worker pool
	for range workers {
		wg.Go(func() {
			for i := range idxCh {
				res, err := mineRepo(ctx, cfg, client, mgr, repos[i])
				if err != nil {
					errs[i] = fmt.Errorf("repository %s: %w", repos[i], err)
					continue
				}
				results[i] = res
			}
		})
	}

	// Send repository indices to worker channel
	for i := range repos {
		idxCh <- i
	}
	close(idxCh)

	// Wait for all workers to finish processing
	wg.Wait()

	// Keep successful repositories in input order
	kept := make([]schema.RepoResult, 0, len(repos))
	for i, r := range results {
		if errs[i] != nil {
			contract.LogWarn("Repository mining failed", errs[i])
			continue
		}
		kept = append(kept, r)
	}

	return kept, errors.Join(errs...)
}

// mineRepo runs the full pipeline for one repository: collect commits,
// build transactions, count co-changes, compute metrics and rank them.
func mineRepo(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager, repoPath string) (schema.RepoResult, error) {
	commits, err := txn.CachedCollectCommits(ctx, client, mgr, repoPath)
	if err != nil {
		return schema.RepoResult{}, err
	}

	// --- 0. Begin run tracking (if configured) ---
	var runID int64
	var resultsStore contract.ResultsStore
	if mgr != nil {
		resultsStore = mgr.GetResultsStore()
	}
	if resultsStore != nil {
		configParams := map[string]any{
			"ext":            cfg.ProtoExt,
			"anchor":         string(cfg.Anchor),
			"min_support":    cfg.MinSupport,
			"min_confidence": cfg.MinConfidence,
			"min_lift":       cfg.MinLift,
			"result_limit":   cfg.ResultLimit,
		}
		runID, err = resultsStore.BeginRun(repoPath, time.Now(), configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
			runID = 0
		}
	}

	// --- 1. Counting phase ---
	counters := buildCounters(cfg, commits)

	// --- 2. Metric computation and ranking ---
	records := assoc.ComputeRecords(counters, assoc.Thresholds{
		MinSupport:    cfg.MinSupport,
		MinConfidence: cfg.MinConfidence,
		MinLift:       cfg.MinLift,
	})
	ranked := assoc.RankRecords(records, cfg.ResultLimit)

	// --- 3. End run tracking ---
	if resultsStore != nil && runID > 0 {
		if err := resultsStore.RecordPairs(runID, repoPath, ranked); err != nil {
			contract.LogWarn("Failed to record mined pairs", err)
		}
		if err := resultsStore.EndRun(runID, time.Now(), counters.Total, len(ranked)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return schema.RepoResult{
		Repo:    repoPath,
		Total:   counters.Total,
		Records: ranked,
	}, nil
}

// buildCounters folds every commit into one counter set. Excluded paths are
// dropped before the transaction forms, so an excluded file neither anchors
// pairs nor appears as a partner.
func buildCounters(cfg *contract.Config, commits []schema.Commit) *assoc.CounterSet {
	counters := assoc.NewCounterSet()
	for _, c := range commits {
		paths := c.ChangedPaths
		if len(cfg.Excludes) > 0 {
			filtered := make([]string, 0, len(paths))
			for _, p := range paths {
				if contract.ShouldIgnore(p, cfg.Excludes) {
					continue
				}
				filtered = append(filtered, p)
			}
			paths = filtered
		}
		tx := assoc.NewTransaction(paths)
		counters.Observe(tx, cfg.ProtoExt, cfg.Anchor)
	}
	return counters
}

// summarizeRepo rolls the pair records of one repository up to one summary
// per proto file.
func summarizeRepo(r schema.RepoResult) []schema.ProtoSummary {
	type acc struct {
		pairCount  int
		occurrence int
		confSum    float64
		maxLift    float64
	}
	accs := make(map[string]*acc)
	for _, rec := range r.Records {
		a := accs[rec.ProtoFile]
		if a == nil {
			a = &acc{}
			accs[rec.ProtoFile] = a
		}
		a.pairCount++
		a.occurrence = rec.ProtoCount
		a.confSum += rec.Confidence
		if rec.Lift > a.maxLift {
			a.maxLift = rec.Lift
		}
	}

	summaries := make([]schema.ProtoSummary, 0, len(accs))
	for proto, a := range accs {
		summaries = append(summaries, schema.ProtoSummary{
			Repo:           r.Repo,
			ProtoFile:      proto,
			PairCount:      a.pairCount,
			Occurrence:     a.occurrence,
			MeanConfidence: a.confSum / float64(a.pairCount),
			MaxLift:        a.maxLift,
		})
	}
	return summaries
}
