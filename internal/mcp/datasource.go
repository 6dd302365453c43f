package mcp

import (
	"context"
	"time"

	"github.com/claude/vigor/internal/models"
	"github.com/claude/vigor/internal/storage"
)

// DataSource abstracts the sample store for MCP tools. Both *storage.DB
// (local) and HTTPClient (remote via REST API) satisfy this interface.
// Assessments are always computed in-process from the samples it returns,
// so local and remote mode score identically.
type DataSource interface {
	QueryDailySamples(ctx context.Context, start, end time.Time) ([]models.DailySample, error)
	QuerySampleWindow(ctx context.Context, end time.Time, limit int) ([]models.DailySample, error)
	LatestSampleDate(ctx context.Context) (*time.Time, error)
	GetDataStats(ctx context.Context) (*storage.DataStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
