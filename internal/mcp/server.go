// ABOUTME: MCP server setup for the coach session history.
// ABOUTME: Wraps the MCP server with storage Repository access and the exercise catalog.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/coach/internal/models"
	"github.com/harperreed/coach/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	catalog   *models.Catalog
	now       func() time.Time
}

// NewServer creates a new MCP server with the given storage and catalog.
// A nil catalog uses the built-in program.
func NewServer(repo storage.Repository, catalog *models.Catalog) (*Server, error) {
	if repo == nil {
		return nil, fmt.Errorf("mcp server needs a repository")
	}
	if catalog == nil {
		catalog = models.DefaultCatalog()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "coach",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		catalog:   catalog,
		now:       time.Now,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) history() ([]models.WorkoutSession, error) {
	history, err := s.repo.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return history, nil
}
