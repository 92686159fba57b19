package main

import (
	"github.com/drishanroy/resume-analysis-app/internal/mcpserver"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long:  `Run a Model Context Protocol server on stdin/stdout exposing the analyze_resume and health tools.`,
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ctx, stop := signalContext(cmd.Context())
	defer stop()

	a, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	ports := &mcpserver.Ports{Analyzer: a.service, Documents: a.documents}

	srv, err := mcpserver.NewServer(ports, a.logger)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
