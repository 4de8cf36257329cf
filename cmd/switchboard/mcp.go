package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/switchboard"
	"github.com/aretw0/switchboard/internal/cli"
	"github.com/aretw0/switchboard/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Exposes the toggles as an MCP Server so AI agents can list, check and reload them.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts, logger := setup(cmd)
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		board, err := cli.CreateBoard(ctx, opts, logger, nil)
		if err != nil {
			log.Fatalf("Error loading toggles: %v", err)
		}

		srv := mcp.NewServer(board, switchboard.Version, logger)

		switch transport {
		case "stdio":
			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting Switchboard MCP Server (Stdio)")
			if err := srv.ServeStdio(); err != nil {
				logger.Error("MCP Server execution failed", "err", err)
				os.Exit(1)
			}
		case "sse":
			logger.Info("Starting Switchboard MCP Server (SSE)", "port", port)
			if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("MCP Server execution failed", "err", err)
				os.Exit(1)
			}
			logger.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
