package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/hfwin/handsfree/internal/selector"
	"github.com/hfwin/handsfree/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing handsfree tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes window
enumeration, tree reads, selector resolution, and input synthesis as
tools. Agents call tools in-process, so the UI Automation connection
and the element tree cache persist across calls instead of being
rebuilt per command.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  handsfree serve
  handsfree serve --transport streamable-http --port 8080
  handsfree serve --cache-ttl 0`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
	serveCmd.Flags().Int("cache-ttl", 500, "Element tree cache TTL in milliseconds (0 to disable)")
	addAmbiguityFlag(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")
	ambStr, _ := cmd.Flags().GetString("ambiguity")
	amb, err := selector.ParseAmbiguity(ambStr)
	if err != nil {
		return err
	}

	cfg := server.Config{
		Transport: transport,
		Port:      port,
		CacheTTL:  time.Duration(cacheTTLMs) * time.Millisecond,
		Ambiguity: amb,
		Logger:    slog.Default(),
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("create MCP server: %w", err)
	}
	return srv.Serve(cfg)
}
