package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/widgetlab/widget-cli/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing widget-cli tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes selector
resolution as tools. AI agents can query, find, and inspect the widget tree
directly without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  widget-cli serve --snapshot app.json
  widget-cli serve --snapshot app.json --transport streamable-http --port 8080
  widget-cli serve --snapshot app.json --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Snapshot cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")
	snapshotPath, _ := cmd.Flags().GetString("snapshot")
	ignoreCase, _ := cmd.Flags().GetBool("ignore-case")

	cfg := server.Config{
		Transport:    transport,
		Port:         port,
		CacheTTL:     time.Duration(cacheTTLMs) * time.Millisecond,
		SnapshotPath: snapshotPath,
		IgnoreCase:   ignoreCase,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	return srv.Serve(cfg)
}
