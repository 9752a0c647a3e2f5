// ABOUTME: MCP resource implementations for the coach.
// ABOUTME: Provides coach://dashboard and coach://history/recent resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/coach/internal/analytics"
	"github.com/harperreed/coach/internal/session"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	dashboardURI = "coach://dashboard"
	recentURI    = "coach://history/recent"

	recentLimit = 10
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         dashboardURI,
		Name:        "Training Dashboard",
		Description: "Weekly consistency, volume trend and personal records",
		MIMEType:    "application/json",
	}, s.handleDashboardResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "Recent Sessions",
		Description: "Last 10 workout sessions with every set",
		MIMEType:    "application/json",
	}, s.handleRecentResource)
}

func (s *Server) handleDashboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	history, err := s.history()
	if err != nil {
		return nil, err
	}
	return jsonResource(dashboardURI, analytics.BuildDashboard(history, s.catalog.Exercises(), s.now()))
}

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	history, err := s.history()
	if err != nil {
		return nil, err
	}
	return jsonResource(recentURI, map[string]interface{}{
		"total":    len(history),
		"sessions": session.Recent(history, recentLimit),
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
