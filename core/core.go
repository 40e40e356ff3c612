// Package core has core logic for mining, metric computation and ranking.
package core

import (
	"context"
	"time"

	"github.com/huangsam/protopair/core/assoc"
	"github.com/huangsam/protopair/internal/contract"
	"github.com/huangsam/protopair/internal/outwriter"
	"github.com/huangsam/protopair/schema"
)

// ExecutorFunc defines the function signature for executing different mining modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecuteMinePairs mines every configured repository and prints the ranked
// pair metrics to stdout. It serves as the main entry point for the 'pairs' mode.
func ExecuteMinePairs(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	results, duration, err := GetMinePairsResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintPairResults(results, cfg, duration)
}

// GetMinePairsResults mines every configured repository and returns the ranked
// pair metrics without printing them. The MCP layer builds on this.
func GetMinePairsResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.RepoResult, time.Duration, error) {
	start := time.Now()
	client := contract.NewLocalGitClient()

	if !shouldSuppressHeader(ctx) {
		outwriter.LogMineHeader(cfg)
	}

	results, err := mineAllRepos(ctx, cfg, client, mgr)
	if err != nil {
		return nil, time.Since(start), err
	}
	return results, time.Since(start), nil
}

// ExecuteSummarizeProtos aggregates mined pairs into one row per proto file
// and prints the ranked summaries to stdout. It serves as the main entry
// point for the 'protos' mode.
func ExecuteSummarizeProtos(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	summaries, duration, err := GetProtoSummaryResults(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.PrintProtoResults(summaries, cfg, duration)
}

// GetProtoSummaryResults aggregates mined pairs into per-proto summaries
// without printing them. Summaries are built from the full pair set, so the
// result limit is applied to summaries rather than to the pairs feeding them.
func GetProtoSummaryResults(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.ProtoSummary, time.Duration, error) {
	start := time.Now()
	client := contract.NewLocalGitClient()

	if !shouldSuppressHeader(ctx) {
		outwriter.LogMineHeader(cfg)
	}

	// Mine with an unlimited pair set; a truncated one would skew the means.
	cfgFull := cfg.Clone()
	cfgFull.ResultLimit = 0

	results, err := mineAllRepos(ctx, cfgFull, client, mgr)
	if err != nil {
		return nil, time.Since(start), err
	}

	var summaries []schema.ProtoSummary
	for _, r := range results {
		summaries = append(summaries, summarizeRepo(r)...)
	}
	return assoc.RankSummaries(summaries, cfg.ResultLimit), time.Since(start), nil
}

// ExecuteDetect inspects each configured directory for protobuf usage and
// prints the verdicts to stdout. It serves as the main entry point for the
// 'detect' mode.
func ExecuteDetect(ctx context.Context, cfg *contract.Config) error {
	results, duration, err := GetDetectResults(ctx, cfg)
	if err != nil {
		return err
	}
	return outwriter.PrintDetectResults(results, cfg, duration)
}
