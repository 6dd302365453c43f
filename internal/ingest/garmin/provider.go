package garmin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/claude/vigor/internal/ingest"
	"github.com/claude/vigor/internal/models"
	"github.com/claude/vigor/internal/storage"
)

// Provider processes Garmin daily-summary payloads from the sync job.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a Garmin ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest converts a payload's dailies and upserts them, one row per date.
// Entries with a bad calendar date are reported, not fatal.
func (p *Provider) Ingest(ctx context.Context, payload *Payload) (*ingest.Result, error) {
	result, samples := Collect(payload)
	for _, rej := range result.RejectedDates {
		p.log.Warn("rejected daily entry", "calendar_date", rej)
	}

	if len(samples) > 0 {
		written, err := p.db.UpsertDailySamples(ctx, samples)
		if err != nil {
			return result, fmt.Errorf("upserting samples: %w", err)
		}
		result.DaysWritten = written
	}

	if result.DaysRejected > 0 {
		result.Message = fmt.Sprintf(
			"%d entries were rejected for missing or malformed calendar dates. Accepted entries are stored.",
			result.DaysRejected)
	}
	return result, nil
}

// Collect converts every daily entry, splitting accepted samples from
// rejected dates. Pure; the DB write happens in Ingest. The bulk importer
// also uses it to parse export files without touching the database.
func Collect(payload *Payload) (*ingest.Result, []models.DailySample) {
	result := &ingest.Result{}
	var samples []models.DailySample

	for _, d := range payload.Data.Dailies {
		result.DaysReceived++
		s, err := convertDaily(d)
		if err != nil {
			result.DaysRejected++
			label := d.CalendarDate
			if label == "" {
				label = "(missing)"
			}
			result.RejectedDates = append(result.RejectedDates, label)
			continue
		}
		samples = append(samples, *s)
	}
	return result, samples
}
