package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/protopair/core"
	"github.com/huangsam/protopair/internal/contract"
	"github.com/huangsam/protopair/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// applyCommonOverrides applies the request fields shared by the mining tools.
func applyCommonOverrides(cfg *contract.Config, request mcp.CallToolRequest) error {
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPaths = []string{p}
	}
	if a := request.GetString("anchor", ""); a != "" {
		policy := schema.AnchorPolicy(a)
		if _, ok := schema.ValidAnchorPolicies[policy]; !ok {
			return fmt.Errorf("invalid anchor policy %q", a)
		}
		cfg.Anchor = policy
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	return nil
}

func (h *toolHandler) handleMineProtoPairs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyCommonOverrides(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid mining parameters: %v", err)), nil
	}
	if s := request.GetFloat("min_support", -1); s >= 0 {
		cfg.MinSupport = s
	}
	if c := request.GetFloat("min_confidence", -1); c >= 0 {
		cfg.MinConfidence = c
	}
	if l := request.GetFloat("min_lift", -1); l >= 0 {
		cfg.MinLift = l
	}

	results, _, err := core.GetMinePairsResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("mining failed: %v", err)), nil
	}

	type enrichedRepoResult struct {
		Repo  string                        `json:"repo"`
		Total int                           `json:"total_transactions"`
		Pairs []schema.EnrichedMetricRecord `json:"pairs"`
	}
	enriched := make([]enrichedRepoResult, len(results))
	for i, r := range results {
		enriched[i] = enrichedRepoResult{
			Repo:  r.Repo,
			Total: r.Total,
			Pairs: schema.EnrichRecords(r.Records),
		}
	}
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleSummarizeProtos(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyCommonOverrides(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid mining parameters: %v", err)), nil
	}

	summaries, _, err := core.GetProtoSummaryResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summarization failed: %v", err)), nil
	}

	enriched := schema.EnrichSummaries(summaries)
	jsonData, _ := json.MarshalIndent(enriched, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDetectProtobuf(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	dir := request.GetString("dir", "")
	if dir == "" {
		return mcp.NewToolResultError("dir is required"), nil
	}
	cfg.RepoPaths = []string{dir}

	results, _, err := core.GetDetectResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("detection failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
