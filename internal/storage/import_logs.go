package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImportLog records one import batch's outcome.
type ImportLog struct {
	ID              int64     `json:"id"`
	BatchID         uuid.UUID `json:"batch_id"`
	CreatedAt       time.Time `json:"created_at"`
	Source          string    `json:"source"`
	Status          string    `json:"status"`
	FilesScanned    int       `json:"files_scanned"`
	FilesSkipped    int       `json:"files_skipped"`
	SamplesReceived int       `json:"samples_received"`
	SamplesWritten  int64     `json:"samples_written"`
	DurationMs      *int      `json:"duration_ms"`
	ErrorMessage    *string   `json:"error_message"`
}

// InsertImportLog creates a new import log entry and returns its ID.
func (db *DB) InsertImportLog(ctx context.Context, log ImportLog) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO import_logs (batch_id, source, status, files_scanned, files_skipped,
		 samples_received, samples_written, duration_ms, error_message)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING id`,
		log.BatchID, log.Source, log.Status, log.FilesScanned, log.FilesSkipped,
		log.SamplesReceived, log.SamplesWritten, log.DurationMs, log.ErrorMessage,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting import log: %w", err)
	}
	return id, nil
}

// UpdateImportLog updates an existing import log entry (typically from
// "running" to "success" or "error").
func (db *DB) UpdateImportLog(ctx context.Context, id int64, log ImportLog) error {
	_, err := db.Pool.Exec(ctx,
		`UPDATE import_logs SET
		 status = $2, files_scanned = $3, files_skipped = $4,
		 samples_received = $5, samples_written = $6, duration_ms = $7, error_message = $8
		 WHERE id = $1`,
		id, log.Status, log.FilesScanned, log.FilesSkipped,
		log.SamplesReceived, log.SamplesWritten, log.DurationMs, log.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("updating import log %d: %w", id, err)
	}
	return nil
}

// QueryImportLogs returns the most recent import logs.
func (db *DB) QueryImportLogs(ctx context.Context, limit int) ([]ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, batch_id, created_at, source, status, files_scanned, files_skipped,
		 samples_received, samples_written, duration_ms, error_message
		 FROM import_logs
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying import logs: %w", err)
	}
	defer rows.Close()

	var result []ImportLog
	for rows.Next() {
		var l ImportLog
		if err := rows.Scan(&l.ID, &l.BatchID, &l.CreatedAt, &l.Source, &l.Status,
			&l.FilesScanned, &l.FilesSkipped, &l.SamplesReceived, &l.SamplesWritten,
			&l.DurationMs, &l.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scanning import log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
