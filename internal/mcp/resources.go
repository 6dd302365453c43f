package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) todayReadiness(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	latest, err := h.ds.LatestSampleDate(ctx)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, fmt.Errorf("no samples ingested yet")
	}

	da, err := h.assessOn(ctx, *latest)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(da)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
