package main

import (
	"github.com/spf13/cobra"

	"github.com/takedsl/take/internal/agent"
)

func init() {
	rootCmd.AddCommand(agentCmd)
}

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Serve the take_extract tool to MCP clients over stdio",
	Long: `Agent speaks the Model Context Protocol on stdin and stdout. Clients
call the take_extract tool with a template and either inline HTML or a
URL to fetch.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return agent.ServeStdio(version)
	},
}
