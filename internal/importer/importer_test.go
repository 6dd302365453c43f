package importer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

const goodExport = `{
  "data": {
    "dailies": [
      {"calendar_date": "2026-08-30", "steps": 10432, "hrv_last_night_avg": 52},
      {"calendar_date": "2026-08-29", "steps": 3200}
    ]
  }
}`

const mixedExport = `{
  "data": {
    "dailies": [
      {"calendar_date": "2026-08-28", "steps": 8800},
      {"calendar_date": "bogus", "steps": 100}
    ]
  }
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// TestImportDryRun walks a directory tree and counts without touching any
// database.
func TestImportDryRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "2026-08/export1.json", goodExport)
	writeFile(t, dir, "2026-08/export2.json", mixedExport)
	writeFile(t, dir, "notes.txt", "ignore me")

	imp := New(nil, nil, testLogger(), true)
	stats, err := imp.Import(context.Background(), dir)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if stats.FilesScanned != 2 {
		t.Errorf("files_scanned = %d, want 2", stats.FilesScanned)
	}
	if stats.SamplesReceived != 4 {
		t.Errorf("samples_received = %d, want 4", stats.SamplesReceived)
	}
	if stats.SamplesRejected != 1 {
		t.Errorf("samples_rejected = %d, want 1", stats.SamplesRejected)
	}
	if stats.SamplesWritten != 3 {
		t.Errorf("samples_written = %d, want 3", stats.SamplesWritten)
	}
	if len(stats.RejectedDates) != 1 || stats.RejectedDates[0] != "bogus" {
		t.Errorf("rejected_dates = %v", stats.RejectedDates)
	}
}

// TestImportDryRunSkipsUnparseable verifies that a malformed file is counted
// as errored but does not stop the run.
func TestImportDryRunSkipsUnparseable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.json", goodExport)
	writeFile(t, dir, "broken.json", "{not json")

	imp := New(nil, nil, testLogger(), true)
	stats, err := imp.Import(context.Background(), dir)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if stats.FilesErrored != 1 {
		t.Errorf("files_errored = %d, want 1", stats.FilesErrored)
	}
	if stats.FilesScanned != 1 {
		t.Errorf("files_scanned = %d, want 1", stats.FilesScanned)
	}
}

// TestStateDBRoundTrip exercises the SQLite skip-list.
func TestStateDBRoundTrip(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("open state db: %v", err)
	}
	defer state.Close()

	done, err := state.IsImported("a/b.json", 100, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if done {
		t.Error("fresh db reports file as imported")
	}

	if err := state.MarkImported("a/b.json", 100, "abc"); err != nil {
		t.Fatal(err)
	}

	done, err = state.IsImported("a/b.json", 100, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Error("marked file not reported as imported")
	}

	// Same path with a different hash means the file changed.
	done, err = state.IsImported("a/b.json", 100, "def")
	if err != nil {
		t.Fatal(err)
	}
	if done {
		t.Error("changed file reported as imported")
	}
}

// TestImportWithStateSkipsSeenFiles verifies a run skips files a prior run
// already recorded.
func TestImportWithStateSkipsSeenFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "export.json", goodExport)

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("open state db: %v", err)
	}
	defer state.Close()

	info, err := os.Stat(filepath.Join(dir, "export.json"))
	if err != nil {
		t.Fatal(err)
	}
	hash, err := HashFile(filepath.Join(dir, "export.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := state.MarkImported("export.json", info.Size(), hash); err != nil {
		t.Fatal(err)
	}

	imp := New(nil, state, testLogger(), true)
	stats, err := imp.Import(context.Background(), dir)
	if err != nil {
		t.Fatalf("import: %v", err)
	}

	if stats.FilesSkipped != 1 {
		t.Errorf("files_skipped = %d, want 1", stats.FilesSkipped)
	}
	if stats.FilesScanned != 0 {
		t.Errorf("files_scanned = %d, want 0", stats.FilesScanned)
	}
}

// TestHashFileStable verifies identical content hashes identically.
func TestHashFileStable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", goodExport)
	writeFile(t, dir, "b.json", goodExport)

	ha, err := HashFile(filepath.Join(dir, "a.json"))
	if err != nil {
		t.Fatal(err)
	}
	hb, err := HashFile(filepath.Join(dir, "b.json"))
	if err != nil {
		t.Fatal(err)
	}
	if ha != hb {
		t.Errorf("hashes differ for identical content: %s vs %s", ha, hb)
	}
	if len(ha) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(ha))
	}
}
