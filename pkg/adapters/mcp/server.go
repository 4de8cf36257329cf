package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/switchboard/internal/presentation/graph"
	"github.com/aretw0/switchboard/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// TogglesURI is the resource exposing the current toggle statuses.
const TogglesURI = "switchboard://toggles"

// Board defines the interface required by the MCP server.
type Board interface {
	Toggles() []*domain.Toggle
	Lookup(name string) (*domain.Toggle, error)
	Reload(ctx context.Context) error
}

// Server wraps a Board and exposes it as an MCP Server.
type Server struct {
	board     Board
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(board Board, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		board:     board,
		logger:    logger,
		mcpServer: server.NewMCPServer("switchboard-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_toggles",
		mcp.WithDescription("List every feature toggle with its kind, dependencies and whether it is enabled right now."),
	), s.handleListToggles)

	s.mcpServer.AddTool(mcp.NewTool("check_toggle",
		mcp.WithDescription("Check whether a single feature toggle is enabled right now."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Toggle name (case-sensitive)")),
	), s.handleCheckToggle)

	s.mcpServer.AddTool(mcp.NewTool("reload_toggles",
		mcp.WithDescription("Reload toggle definitions from the source. On failure the previous toggles stay active."),
	), s.handleReload)

	s.mcpServer.AddTool(mcp.NewTool("dependency_graph",
		mcp.WithDescription("Get the toggle dependency graph as a Mermaid flowchart."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(graph.GenerateMermaid(s.board.Toggles())), nil
	})
}

func (s *Server) handleListToggles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(domain.Statuses(s.board.Toggles()))
}

func (s *Server) handleCheckToggle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	t, err := s.board.Lookup(name)
	if errors.Is(err, domain.ErrToggleNotFound) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err != nil {
		return nil, err
	}
	return jsonResult(t.Status())
}

func (s *Server) handleReload(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.board.Reload(ctx); err != nil {
		s.logger.Warn("MCP reload failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("reload failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("loaded %d toggles", len(s.board.Toggles()))), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(TogglesURI, "Feature Toggles",
		mcp.WithMIMEType("application/json"),
	), s.readToggles)
}

func (s *Server) readToggles(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(domain.Statuses(s.board.Toggles()))
	if err != nil {
		return nil, fmt.Errorf("failed to encode toggles: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      TogglesURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
