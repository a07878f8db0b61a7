package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/geoqa/geoqa/core"
	"github.com/geoqa/geoqa/internal/contract"
	"github.com/geoqa/geoqa/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// checkPayload pairs the gate verdict with the full check battery.
type checkPayload struct {
	Gate   schema.GateResult    `json:"gate"`
	Checks []schema.CheckResult `json:"checks"`
}

// statsPayload wraps the column statistics with the dataset they belong to.
type statsPayload struct {
	Dataset string                        `json:"dataset"`
	Columns []schema.AttributeColumnStats `json:"columns"`
}

// datasetConfig clones the base config and points it at the requested
// dataset. Every tool requires the dataset argument.
func (h *toolHandler) datasetConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	path := request.GetString("dataset", "")
	if path == "" {
		return nil, errors.New("dataset is required")
	}
	return h.baseCfg.CloneForDataset(path)
}

func (h *toolHandler) handleProfileDataset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.datasetConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid profile parameters: %v", err)), nil
	}
	if w := request.GetInt("workers", 0); w > 0 {
		cfg.Workers = w
	}

	result, _, err := core.GetProfileResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("assessment failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleQualityChecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.datasetConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid check parameters: %v", err)), nil
	}
	minScore := request.GetFloat("min_score", cfg.MinScore)
	if minScore < 0.0 || minScore > 100.0 {
		return mcp.NewToolResultError(fmt.Sprintf("min_score must be between 0.0 and 100.0 (received %.1f)", minScore)), nil
	}
	cfg.MinScore = minScore

	result, gate, _, err := core.GetCheckResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("check failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(checkPayload{Gate: gate, Checks: result.Checks}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleAttributeStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.datasetConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid stats parameters: %v", err)), nil
	}
	cfg.Column = request.GetString("column", "")
	if tv := request.GetInt("top_values", 0); tv > 0 {
		cfg.TopValues = tv
	}

	dataset, columns, _, err := core.GetStatsResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("stats failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(statsPayload{Dataset: dataset, Columns: columns}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
