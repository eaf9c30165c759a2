// ABOUTME: MCP server setup for the fitex training store.
// ABOUTME: Wraps the MCP server with a storage Repository and the recommendation policy.
package mcp

import (
	"context"

	"github.com/fitexapp/fitex/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer  *mcp.Server
	repo       storage.Repository
	thresholds storage.Thresholds
}

// NewServer creates a new MCP server over the given storage.
func NewServer(repo storage.Repository, thresholds storage.Thresholds) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitex",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer:  mcpServer,
		repo:       repo,
		thresholds: thresholds,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
