// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/geoqa/geoqa/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the GeoQA MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"GeoQA Assessment Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: profile_dataset ---
	s.AddTool(mcp.NewTool("profile_dataset",
		mcp.WithDescription("Assess the quality of a vector dataset and return the full scored profile."),
		mcp.WithString("dataset", mcp.Description("Path to the dataset file (.geojson, .gpkg or .csv)."), mcp.Required()),
		mcp.WithNumber("workers", mcp.Description("Number of concurrent classification workers.")),
	), h.handleProfileDataset)

	// --- 2. Tool: quality_checks ---
	s.AddTool(mcp.NewTool("quality_checks",
		mcp.WithDescription("Run the quality check battery against a dataset and evaluate the score gate."),
		mcp.WithString("dataset", mcp.Description("Path to the dataset file (.geojson, .gpkg or .csv)."), mcp.Required()),
		mcp.WithNumber("min_score", mcp.Description("Minimum passing score between 0 and 100. Defaults to the configured threshold.")),
	), h.handleQualityChecks)

	// --- 3. Tool: attribute_stats ---
	s.AddTool(mcp.NewTool("attribute_stats",
		mcp.WithDescription("Profile the attribute columns of a dataset: kinds, null counts and value summaries."),
		mcp.WithString("dataset", mcp.Description("Path to the dataset file (.geojson, .gpkg or .csv)."), mcp.Required()),
		mcp.WithString("column", mcp.Description("Restrict the output to a single column.")),
		mcp.WithNumber("top_values", mcp.Description("How many of the most frequent values to list per column.")),
	), h.handleAttributeStats)

	return s
}

// StartMCPServer starts the GeoQA MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
