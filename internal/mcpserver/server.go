// Package mcpserver exposes a running onboarding flow as MCP tools so it can
// be driven without a terminal.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mark3labs/onboardr/internal/content"
	"github.com/mark3labs/onboardr/internal/flow"
	"github.com/mark3labs/onboardr/internal/journal"
	"github.com/mark3labs/onboardr/internal/logger"
)

// Server serves flow tools over streamable HTTP on 127.0.0.1.
// The flow is single-threaded, so every tool call holds flowMu.
type Server struct {
	flow    *flow.Flow
	content *content.Content
	journal *journal.Journal // optional

	flowMu sync.Mutex

	mu         sync.Mutex
	mcpServer  *server.MCPServer
	stdServer  *http.Server
	port       int
	requestedP int
}

// New creates a server for f. c supplies step text for status output and j,
// when non-nil, backs the flow-history tool.
func New(f *flow.Flow, c *content.Content, j *journal.Journal, port int) *Server {
	return &Server{
		flow:       f,
		content:    c,
		journal:    j,
		requestedP: port,
	}
}

// Start starts the MCP HTTP server. A configured port of 0 picks a random
// free port. Returns the bound port.
func (s *Server) Start(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return 0, fmt.Errorf("server already started")
	}

	s.mcpServer = server.NewMCPServer(
		"onboardr-flow",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools()

	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", s.requestedP))
	if err != nil {
		return 0, fmt.Errorf("failed to listen: %w", err)
	}
	s.port = listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	))
	s.stdServer = &http.Server{
		Handler:     mux,
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	logger.Info("MCP server ready on port %d", s.port)
	return s.port, nil
}

// Stop shuts the HTTP server down.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}

	if err := s.stdServer.Shutdown(context.Background()); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}
	s.stdServer = nil
	s.mcpServer = nil
	logger.Debug("MCP server stopped")
	return nil
}

// URL returns the HTTP URL for the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://localhost:%d/mcp", s.port)
}
