package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/vigor/internal/ingest/garmin"
	"github.com/claude/vigor/internal/models"
)

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var payload garmin.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result, err := s.garmin.Ingest(r.Context(), &payload)
	if err != nil {
		s.log.Error("ingest error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleAssessments scores every sample date inside the requested range.
// The sample window fetched below extends past the range start by the long
// baseline window so the oldest requested day still sees full history.
func (s *Server) handleAssessments(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	spanDays := int(end.Sub(start).Hours()/24) + 1
	lookback := s.assessor.Config().LongWindowDays

	samples, err := s.db.QuerySampleWindow(r.Context(), end, spanDays+lookback)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	assessments := s.assessor.Assess(samples, spanDays)

	// Trim to the range: the window may reach back before start.
	filtered := make([]models.DayAssessment, 0, len(assessments))
	for _, da := range assessments {
		if !da.Date.Before(start) && !da.Date.After(end) {
			filtered = append(filtered, da)
		}
	}
	writeJSON(w, http.StatusOK, filtered)
}

// handleLatestAssessment scores the newest sample date in the store.
func (s *Server) handleLatestAssessment(w http.ResponseWriter, r *http.Request) {
	latest, err := s.db.LatestSampleDate(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if latest == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no samples ingested yet"})
		return
	}

	lookback := s.assessor.Config().LongWindowDays
	samples, err := s.db.QuerySampleWindow(r.Context(), *latest, 1+lookback)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	assessments := s.assessor.Assess(samples, 1)
	if len(assessments) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no samples ingested yet"})
		return
	}
	writeJSON(w, http.StatusOK, assessments[0])
}

func (s *Server) handleQuerySamples(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseDateRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	samples, err := s.db.QueryDailySamples(r.Context(), start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, samples)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.GetDataStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleImports(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	logs, err := s.db.QueryImportLogs(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseDateRange reads start/end query params as YYYY-MM-DD dates,
// defaulting to the 7 most recent days. The range is inclusive.
func parseDateRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if endStr == "" {
		now := time.Now().UTC()
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		end, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if startStr == "" {
		start = end.AddDate(0, 0, -6)
	} else {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start %s is after end %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return
}
