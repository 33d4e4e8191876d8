package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/spans/core"
	"github.com/huangsam/spans/core/algo"
	"github.com/huangsam/spans/internal/contract"
	"github.com/huangsam/spans/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg  *contract.Config
	mgr      contract.CacheManager
	provider contract.PassProvider
}

func (h *toolHandler) handleComputeOverlap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	now := time.Now().UTC()

	var err error
	if cfg.Large, err = parseSpecArg(request, "large", now); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if cfg.Short, err = parseSpecArg(request, "short", now); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tr, _, err := core.GetOverlapResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("overlap failed: %v", err)), nil
	}
	return jsonResult(schema.EnrichIntervals(tr)), nil
}

func (h *toolHandler) handleBuildTimeRange(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()

	var err error
	if cfg.Range, err = parseSpecArg(request, "range", time.Now().UTC()); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tr, _, err := core.GetRangeResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("range failed: %v", err)), nil
	}
	return jsonResult(schema.EnrichIntervals(tr)), nil
}

func (h *toolHandler) handleGetSatellitePasses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	cfg.Within = schema.RangeSpec{}

	lat, err := request.RequireFloat("lat")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lon, err := request.RequireFloat("lon")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n := request.GetInt("n", contract.DefaultPassCount)

	if err := contract.RevalidatePassLookup(cfg, lat, lon, n); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid pass parameters: %v", err)), nil
	}

	tr, _, err := core.GetPassesResults(core.WithSuppressHeader(ctx), cfg, h.mgr, h.provider)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(schema.EnrichIntervals(tr)), nil
}

func (h *toolHandler) handleAverageOfSquares(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	numbers, err := parseNumbersArg(request.GetString("numbers", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid numbers: %v", err)), nil
	}

	var weights []float64
	if raw := request.GetString("weights", ""); strings.TrimSpace(raw) != "" {
		if weights, err = parseNumbersArg(raw); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid weights: %v", err)), nil
		}
	}

	result, err := core.ComputeSquares(numbers, weights, request.GetBool("root", false))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("average failed: %v", err)), nil
	}

	return jsonResult(result), nil
}

func parseSpecArg(request mcp.CallToolRequest, name string, now time.Time) (schema.RangeSpec, error) {
	raw := request.GetString(name, "")
	if strings.TrimSpace(raw) == "" {
		return schema.RangeSpec{}, fmt.Errorf("%s is required", name)
	}
	rs, err := contract.ParseRangeSpec(raw, now)
	if err != nil {
		return schema.RangeSpec{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return rs, nil
}

func parseNumbersArg(raw string) ([]float64, error) {
	return algo.ConvertNumbers([]string{strings.ReplaceAll(raw, ",", " ")})
}

// jsonResult renders v as indented JSON, or a tool error if it cannot be encoded.
func jsonResult(v any) *mcp.CallToolResult {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err))
	}
	return mcp.NewToolResultText(string(jsonData))
}
