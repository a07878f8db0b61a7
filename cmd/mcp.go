package cmd

import (
	"github.com/geoqa/geoqa/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd starts the stdio MCP server.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the geoqa MCP server",
	Long: `Serve dataset quality assessment over the Model Context Protocol.

Exposes profile_dataset, quality_checks and attribute_stats as MCP tools
on stdio, so agent frontends can assess datasets without shelling out to
the CLI.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		// stdio carries the protocol; each handler suppresses the
		// banner so tool output stays clean JSON.
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
