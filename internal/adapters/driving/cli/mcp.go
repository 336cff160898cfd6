package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/jyotish-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server communicates over stdio using JSON-RPC and exposes the chart,
dasha, transit and match tools plus a profiles resource.

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "jyotish": {
        "command": "/path/to/jyotish",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{
		Profiles: profileService,
		Charts:   chartService,
		Dasha:    dashaService,
		Transit:  transitService,
		Match:    matchService,
		Settings: settingsService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	return server.Run(cmd.Context())
}
