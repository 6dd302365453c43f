package mcp

import (
	"log/slog"

	"github.com/claude/vigor/internal/assess"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, assessor *assess.Assessor, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Vigor", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Vigor daily readiness server. Query recovery scores, strain, baselines, sleep debt, and the raw daily samples behind them. All scores derive from the subject's own rolling history."),
	)

	h := &handlers{ds: ds, assessor: assessor, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetAssessments, Handler: h.getAssessments},
		server.ServerTool{Tool: toolGetDayAssessment, Handler: h.getDayAssessment},
		server.ServerTool{Tool: toolGetBaselines, Handler: h.getBaselines},
		server.ServerTool{Tool: toolGetSleepDebt, Handler: h.getSleepDebt},
		server.ServerTool{Tool: toolGetSamples, Handler: h.getSamples},
		server.ServerTool{Tool: toolGetDataStats, Handler: h.getDataStats},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resTodayReadiness, Handler: h.todayReadiness},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds       DataSource
	assessor *assess.Assessor
	log      *slog.Logger
}

// --- Resource definitions ---

var resTodayReadiness = mcp.NewResource(
	"vigor://today_readiness",
	"Today's Readiness",
	mcp.WithResourceDescription("Full assessment of the most recent sample day: recovery score and zone, strain target, sleep target, sleep debt, baselines, and trends"),
	mcp.WithMIMEType("application/json"),
)
