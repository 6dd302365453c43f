package server

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"
)

// TestParseDateRange verifies explicit, partial, and defaulted ranges.
func TestParseDateRange(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/assessments?start=2026-08-01&end=2026-08-07", nil)
	start, end, err := parseDateRange(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Format("2006-01-02") != "2026-08-01" {
		t.Errorf("start = %s", start)
	}
	if end.Format("2006-01-02") != "2026-08-07" {
		t.Errorf("end = %s", end)
	}
}

// TestParseDateRangeDefaults verifies the 7-day default window ending today.
func TestParseDateRangeDefaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/assessments", nil)
	start, end, err := parseDateRange(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := int(end.Sub(start).Hours() / 24); got != 6 {
		t.Errorf("window spans %d days between endpoints, want 6", got)
	}
	now := time.Now().UTC()
	if end.Format("2006-01-02") != now.Format("2006-01-02") {
		t.Errorf("end = %s, want today", end.Format("2006-01-02"))
	}
}

// TestParseDateRangeStartOnly verifies a start with a defaulted end.
func TestParseDateRangeStartOnly(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/samples?start=2026-08-01", nil)
	start, _, err := parseDateRange(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Format("2006-01-02") != "2026-08-01" {
		t.Errorf("start = %s", start)
	}
}

// TestParseDateRangeBadInput verifies rejection of malformed dates.
func TestParseDateRangeBadInput(t *testing.T) {
	for _, q := range []string{"start=yesterday", "end=08/30/2026", "start=2026-13-40"} {
		req := httptest.NewRequest("GET", "/api/v1/assessments?"+q, nil)
		if _, _, err := parseDateRange(req); err == nil {
			t.Errorf("expected error for %q", q)
		}
	}
}

// TestParseDateRangeInverted verifies a start after the end is rejected
// rather than producing a negative span.
func TestParseDateRangeInverted(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/assessments?start=2026-01-10&end=2026-01-05", nil)
	if _, _, err := parseDateRange(req); err == nil {
		t.Fatal("expected error for start after end")
	}
}

// TestWriteJSON verifies status code and content type.
func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, 418, map[string]string{"k": "v"})

	if rec.Code != 418 {
		t.Errorf("status = %d, want 418", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type = %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["k"] != "v" {
		t.Errorf("body = %v", body)
	}
}
