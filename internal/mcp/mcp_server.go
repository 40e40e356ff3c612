// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/protopair/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Protopair MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Protopair Mining Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: mine_proto_pairs ---
	s.AddTool(mcp.NewTool("mine_proto_pairs",
		mcp.WithDescription("Mine git history for files that change together with proto files, ranked by lift."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
		mcp.WithString("anchor", mcp.Description("How proto files anchor pairs (each, merged). Defaults to 'each'."), mcp.Enum("each", "merged")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of pairs returned per repository.")),
		mcp.WithNumber("min_support", mcp.Description("Drop pairs below this support (0-1).")),
		mcp.WithNumber("min_confidence", mcp.Description("Drop pairs below this confidence (0-1).")),
		mcp.WithNumber("min_lift", mcp.Description("Drop pairs below this lift.")),
	), h.handleMineProtoPairs)

	// --- 2. Tool: summarize_protos ---
	s.AddTool(mcp.NewTool("summarize_protos",
		mcp.WithDescription("Summarize mined co-change pairs per proto file, ranked by max lift."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithString("anchor", mcp.Description("How proto files anchor pairs (each, merged)."), mcp.Enum("each", "merged")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of summaries returned.")),
	), h.handleSummarizeProtos)

	// --- 3. Tool: detect_protobuf ---
	s.AddTool(mcp.NewTool("detect_protobuf",
		mcp.WithDescription("Detect whether a directory uses protobuf, via schema files or dependency markers."),
		mcp.WithString("dir", mcp.Description("Directory to inspect (defaults to the configured repositories)."), mcp.Required()),
	), h.handleDetectProtobuf)

	return s
}

// StartMCPServer starts the Protopair MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
