package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	markupmcp "github.com/ajitpratap0/safemarkup/internal/mcp"
)

func mcpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP (Model Context Protocol) server over stdio",
		Long: `Starts an MCP JSON-RPC 2.0 server that reads from stdin and writes to stdout.
All diagnostic logs go to stderr so that stdout carries only protocol traffic.

Tools exposed:
  escape         escape text for HTML or XML
  unescape       decode character references
  join           escape items and join them with trusted markup
  lookup_entity  resolve a named reference`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			esc, err := cfg.Escaper()
			if err != nil {
				return fmt.Errorf("mcp: %w", err)
			}

			srv := markupmcp.NewServer(esc, cfg.Escape.Strict, logger)

			errLogger := log.New(os.Stderr, "mcp: ", log.LstdFlags)

			logger.Info("mcp: safemarkup MCP server starting", "transport", "stdio")

			return mcpserver.ServeStdio(
				srv.MCPServer(),
				mcpserver.WithErrorLogger(errLogger),
			)
		},
	}

	return cmd
}
