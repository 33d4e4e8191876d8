package cmd

import (
	"github.com/huangsam/spans/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Spans MCP server",
	Long: `Launch an MCP server over stdio that lets AI agents build ranges, compute
overlaps, look up satellite passes and average squares via standard tools.`,
	Args:    cobra.NoArgs,
	PreRunE: setupWith(nil),
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager, newPassProvider())
	},
}
