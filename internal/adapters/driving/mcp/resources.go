package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for Lore resources.
const uriScheme = "lore://"

// historyLimit caps how many past sessions the resource exposes.
const historyLimit = 50

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "history/recent",
		Name:        "recent-sessions",
		Description: "Recent question/answer sessions, newest first",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// handleHistoryResource returns recent session records as JSON.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	text := "[]"
	if s.ports.History != nil {
		records, err := s.ports.History.Recent(ctx, historyLimit)
		if err != nil {
			return nil, err
		}
		if len(records) > 0 {
			data, err := json.Marshal(records)
			if err != nil {
				return nil, err
			}
			text = string(data)
		}
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     text,
		}},
	}, nil
}
