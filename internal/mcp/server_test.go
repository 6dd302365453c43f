package mcp

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/claude/vigor/internal/assess"
	"github.com/claude/vigor/internal/models"
	"github.com/claude/vigor/internal/storage"
)

// TestDefaultDateRange verifies date range defaults (last 7 days) and parsing.
func TestDefaultDateRange(t *testing.T) {
	// Both empty → last 7 days inclusive
	start, end, err := defaultDateRange("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := int(end.Sub(start).Hours() / 24); got != 6 {
		t.Errorf("default range spans %d days between endpoints, want 6", got)
	}

	// Explicit dates
	start, end, err = defaultDateRange("2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Year() != 2026 || start.Month() != 8 || start.Day() != 1 {
		t.Errorf("start = %v, want 2026-08-01", start)
	}
	if end.Day() != 31 {
		t.Errorf("end = %v, want 2026-08-31", end)
	}

	// RFC3339 input is truncated to the calendar day
	start, _, err = defaultDateRange("2026-06-15T10:30:00Z", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Hour() != 0 || start.Day() != 15 {
		t.Errorf("start = %v, want 2026-06-15 midnight", start)
	}

	// Invalid
	if _, _, err = defaultDateRange("not-a-date", ""); err == nil {
		t.Error("expected error for invalid date")
	}

	// Inverted range
	if _, _, err = defaultDateRange("2026-01-10", "2026-01-05"); err == nil {
		t.Error("expected error for start after end")
	}
}

// fakeDataSource serves a fixed sample set from memory.
type fakeDataSource struct {
	samples []models.DailySample
}

func (f *fakeDataSource) QueryDailySamples(_ context.Context, start, end time.Time) ([]models.DailySample, error) {
	var out []models.DailySample
	for _, s := range f.samples {
		if !s.Date.Before(start) && !s.Date.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeDataSource) QuerySampleWindow(_ context.Context, end time.Time, limit int) ([]models.DailySample, error) {
	var out []models.DailySample
	for _, s := range f.samples {
		if !s.Date.After(end) {
			out = append(out, s)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeDataSource) LatestSampleDate(_ context.Context) (*time.Time, error) {
	if len(f.samples) == 0 {
		return nil, nil
	}
	d := f.samples[0].Date
	return &d, nil
}

func (f *fakeDataSource) GetDataStats(_ context.Context) (*storage.DataStats, error) {
	return &storage.DataStats{TotalSamples: int64(len(f.samples))}, nil
}

var _ DataSource = (*fakeDataSource)(nil)

// newTestHandlers builds handlers over 10 days of history ending 2026-08-30,
// newest first.
func newTestHandlers() *handlers {
	day0 := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	ds := &fakeDataSource{}
	for i := 0; i < 10; i++ {
		hrv := 50.0
		sleep := 27000.0
		ds.samples = append(ds.samples, models.DailySample{
			Date:              day0.AddDate(0, 0, -i),
			HRVLastNightAvg:   &hrv,
			SleepTotalSeconds: &sleep,
			Steps:             8000,
		})
	}
	return &handlers{
		ds:       ds,
		assessor: assess.New(assess.DefaultConfig()),
		log:      slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})),
	}
}

// TestAssessOn verifies a single day is scored from the fake store.
func TestAssessOn(t *testing.T) {
	h := newTestHandlers()
	day := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	da, err := h.assessOn(context.Background(), day)
	if err != nil {
		t.Fatalf("assessOn: %v", err)
	}
	if !da.Date.Equal(day) {
		t.Errorf("date = %v, want %v", da.Date, day)
	}
	if !da.HasAnySubScore {
		t.Error("expected sub-scores with HRV and sleep present")
	}
	if da.RecoveryScore < 0 || da.RecoveryScore > 100 {
		t.Errorf("recovery score = %d, out of range", da.RecoveryScore)
	}
}

// TestAssessOnMissingDay verifies a date with no sample is an error, not a
// silent fallback to an older day.
func TestAssessOnMissingDay(t *testing.T) {
	h := newTestHandlers()
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	if _, err := h.assessOn(context.Background(), day); err == nil {
		t.Fatal("expected error for date with no sample")
	}
}

// TestAssessForOptionalDate verifies the empty date falls back to the latest
// sample day.
func TestAssessForOptionalDate(t *testing.T) {
	h := newTestHandlers()

	da, err := h.assessForOptionalDate(context.Background(), "")
	if err != nil {
		t.Fatalf("assessForOptionalDate: %v", err)
	}
	want := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	if !da.Date.Equal(want) {
		t.Errorf("date = %v, want %v", da.Date, want)
	}
}

// TestAssessForOptionalDateEmptyStore verifies the no-data error path.
func TestAssessForOptionalDateEmptyStore(t *testing.T) {
	h := newTestHandlers()
	h.ds = &fakeDataSource{}

	if _, err := h.assessForOptionalDate(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty store")
	}
}
