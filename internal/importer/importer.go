package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claude/vigor/internal/ingest/garmin"
	"github.com/claude/vigor/internal/storage"
	"github.com/google/uuid"
)

// Stats tracks import progress.
type Stats struct {
	FilesScanned int
	FilesSkipped int
	FilesErrored int

	SamplesReceived int
	SamplesRejected int
	SamplesWritten  int64

	RejectedDates []string
}

// Importer reads Garmin export JSON files from a directory tree and upserts
// daily samples into the database. A SQLite state database remembers which
// files were already imported so repeated runs only process new or changed
// files.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer. state may be nil, in which case every file is
// processed on every run.
func New(db *storage.DB, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, log: log, dryRun: dryRun}
}

// Import processes all .json files under exportDir and records the batch in
// import_logs. Dry runs parse and count but write nothing.
func (imp *Importer) Import(ctx context.Context, exportDir string) (*Stats, error) {
	started := time.Now()

	var logID int64
	if !imp.dryRun {
		var err error
		logID, err = imp.db.InsertImportLog(ctx, storage.ImportLog{
			BatchID: uuid.New(),
			Source:  "garmin-export",
			Status:  "running",
		})
		if err != nil {
			return &imp.stats, fmt.Errorf("recording import batch: %w", err)
		}
	}

	importErr := imp.walk(ctx, exportDir)

	if !imp.dryRun {
		final := storage.ImportLog{
			Status:          "success",
			FilesScanned:    imp.stats.FilesScanned,
			FilesSkipped:    imp.stats.FilesSkipped,
			SamplesReceived: imp.stats.SamplesReceived,
			SamplesWritten:  imp.stats.SamplesWritten,
		}
		durationMs := int(time.Since(started).Milliseconds())
		final.DurationMs = &durationMs
		if importErr != nil {
			final.Status = "error"
			msg := importErr.Error()
			final.ErrorMessage = &msg
		}
		if err := imp.db.UpdateImportLog(ctx, logID, final); err != nil {
			imp.log.Error("updating import log", "id", logID, "error", err)
		}
	}

	return &imp.stats, importErr
}

// walk finds every .json file under exportDir and imports it.
func (imp *Importer) walk(ctx context.Context, exportDir string) error {
	return filepath.WalkDir(exportDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		return imp.importFile(ctx, exportDir, path)
	})
}

// importFile parses one export file and upserts its samples. Unparseable
// files are logged and counted, not fatal; database errors stop the run.
func (imp *Importer) importFile(ctx context.Context, exportDir, path string) error {
	relPath, err := filepath.Rel(exportDir, path)
	if err != nil {
		relPath = path
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", relPath, err)
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing %s: %w", relPath, err)
	}

	if imp.state != nil {
		done, err := imp.state.IsImported(relPath, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking state for %s: %w", relPath, err)
		}
		if done {
			imp.stats.FilesSkipped++
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", relPath, err)
	}

	var payload garmin.Payload
	if err := json.Unmarshal(data, &payload); err != nil {
		imp.log.Warn("parse failed", "file", relPath, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	result, samples := garmin.Collect(&payload)
	imp.stats.FilesScanned++
	imp.stats.SamplesReceived += result.DaysReceived
	imp.stats.SamplesRejected += result.DaysRejected
	imp.stats.RejectedDates = append(imp.stats.RejectedDates, result.RejectedDates...)
	for _, rej := range result.RejectedDates {
		imp.log.Warn("rejected daily entry", "file", relPath, "calendar_date", rej)
	}

	if imp.dryRun {
		imp.stats.SamplesWritten += int64(len(samples))
		return nil
	}

	if len(samples) > 0 {
		written, err := imp.db.UpsertDailySamples(ctx, samples)
		if err != nil {
			return fmt.Errorf("upserting samples from %s: %w", relPath, err)
		}
		imp.stats.SamplesWritten += written
	}

	if imp.state != nil {
		if err := imp.state.MarkImported(relPath, info.Size(), hash); err != nil {
			return fmt.Errorf("marking %s imported: %w", relPath, err)
		}
	}
	return nil
}
