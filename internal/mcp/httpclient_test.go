package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/claude/vigor/internal/models"
	"github.com/claude/vigor/internal/storage"
)

// newTestServer creates an httptest server that routes requests to handler
// functions keyed by path. Verifies the HTTP client sends correct paths and
// query params.
func newTestServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			t.Errorf("unexpected request path: %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// TestQueryDailySamples verifies the HTTP client sends the right query params
// and correctly parses the JSON array response.
func TestQueryDailySamples(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/samples": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("start"); got != "2026-08-24" {
				t.Errorf("start=%q, want 2026-08-24", got)
			}
			if got := r.URL.Query().Get("end"); got != "2026-08-30" {
				t.Errorf("end=%q, want 2026-08-30", got)
			}

			hrv := 52.0
			writeTestJSON(t, w, []models.DailySample{
				{Date: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), HRVLastNightAvg: &hrv, Steps: 10432},
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	samples, err := client.QueryDailySamples(context.Background(), start, end)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 1 {
		t.Fatalf("got %d samples, want 1", len(samples))
	}
	if samples[0].Steps != 10432 {
		t.Errorf("steps=%d, want 10432", samples[0].Steps)
	}
	if samples[0].HRVLastNightAvg == nil || *samples[0].HRVLastNightAvg != 52 {
		t.Errorf("hrv=%v, want 52", samples[0].HRVLastNightAvg)
	}
}

// TestQuerySampleWindow verifies the window is translated into a start/end
// range covering limit calendar days.
func TestQuerySampleWindow(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/samples": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("start"); got != "2026-08-01" {
				t.Errorf("start=%q, want 2026-08-01", got)
			}
			if got := r.URL.Query().Get("end"); got != "2026-08-30" {
				t.Errorf("end=%q, want 2026-08-30", got)
			}
			writeTestJSON(t, w, []models.DailySample{})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	end := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	if _, err := client.QuerySampleWindow(context.Background(), end, 30); err != nil {
		t.Fatal(err)
	}
}

// TestGetDataStats verifies the stats endpoint parsing.
func TestGetDataStats(t *testing.T) {
	latest := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats": func(w http.ResponseWriter, _ *http.Request) {
			writeTestJSON(t, w, storage.DataStats{
				TotalSamples: 120,
				LatestDate:   &latest,
				DaysWithHRV:  95,
			})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	stats, err := client.GetDataStats(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalSamples != 120 {
		t.Errorf("total_samples=%d, want 120", stats.TotalSamples)
	}
	if stats.DaysWithHRV != 95 {
		t.Errorf("days_with_hrv=%d, want 95", stats.DaysWithHRV)
	}
}

// TestLatestSampleDate verifies the latest date is derived from the stats
// endpoint.
func TestLatestSampleDate(t *testing.T) {
	latest := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats": func(w http.ResponseWriter, _ *http.Request) {
			writeTestJSON(t, w, storage.DataStats{TotalSamples: 1, LatestDate: &latest})
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	got, err := client.LatestSampleDate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || !got.Equal(latest) {
		t.Errorf("latest = %v, want %v", got, latest)
	}
}

// TestHTTPClientServerError verifies the client returns an error on non-200
// responses.
func TestHTTPClientServerError(t *testing.T) {
	ts := newTestServer(t, map[string]http.HandlerFunc{
		"/api/v1/stats": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"database down"}`))
		},
	})
	defer ts.Close()

	client := NewHTTPClient(ts.URL)
	if _, err := client.GetDataStats(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}
