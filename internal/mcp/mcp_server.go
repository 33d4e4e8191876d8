// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/spans/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Spans MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager, provider contract.PassProvider) *server.MCPServer {
	s := server.NewMCPServer(
		"Spans Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:  baseCfg,
		mgr:      mgr,
		provider: provider,
	}

	// --- 1. Tool: compute_overlap ---
	s.AddTool(mcp.NewTool("compute_overlap",
		mcp.WithDescription("Return the parts of the short range that overlap the large range."),
		mcp.WithString("large", mcp.Description("Large range as START,STOP[,COUNT[,GAP]]."), mcp.Required()),
		mcp.WithString("short", mcp.Description("Short range as START,STOP[,COUNT[,GAP]]."), mcp.Required()),
	), h.handleComputeOverlap)

	// --- 2. Tool: build_time_range ---
	s.AddTool(mcp.NewTool("build_time_range",
		mcp.WithDescription("Split a span into equal intervals separated by a gap."),
		mcp.WithString("range", mcp.Description("Range as START,STOP[,COUNT[,GAP]] (e.g. '2010-01-12 10:30:00,2010-01-12 10:45:00,2,60')."), mcp.Required()),
	), h.handleBuildTimeRange)

	// --- 3. Tool: get_satellite_passes ---
	s.AddTool(mcp.NewTool("get_satellite_passes",
		mcp.WithDescription("Look up the next ISS passes over a ground location."),
		mcp.WithNumber("lat", mcp.Description("Latitude in degrees."), mcp.Required()),
		mcp.WithNumber("lon", mcp.Description("Longitude in degrees."), mcp.Required()),
		mcp.WithNumber("n", mcp.Description("Number of passes (defaults to 5).")),
	), h.handleGetSatellitePasses)

	// --- 4. Tool: average_of_squares ---
	s.AddTool(mcp.NewTool("average_of_squares",
		mcp.WithDescription("Average the squares of a list of numbers, optionally weighted."),
		mcp.WithString("numbers", mcp.Description("Numbers separated by spaces or commas."), mcp.Required()),
		mcp.WithString("weights", mcp.Description("Weights separated by spaces or commas, one per number.")),
		mcp.WithBoolean("root", mcp.Description("Return the square root of the average.")),
	), h.handleAverageOfSquares)

	return s
}

// StartMCPServer starts the Spans MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager, provider contract.PassProvider) error {
	s := NewMCPServer(baseCfg, mgr, provider)
	return server.ServeStdio(s)
}
