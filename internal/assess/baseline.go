package assess

import (
	"math"
	"sort"
	"time"

	"github.com/claude/vigor/internal/models"
)

// History is a calendar-date-indexed view over a sample window. Indexing by
// date rather than slice position keeps gap days explicit: a missing day
// simply contributes nothing to any window instead of silently shifting it.
type History struct {
	cfg    Config
	byDate map[string]*models.DailySample
	dates  []time.Time // descending (newest first)
}

// NewHistory builds a History from samples in any order. Duplicate dates
// keep the first occurrence.
func NewHistory(cfg Config, samples []models.DailySample) *History {
	h := &History{
		cfg:    cfg,
		byDate: make(map[string]*models.DailySample, len(samples)),
	}
	for i := range samples {
		s := &samples[i]
		key := s.DateKey()
		if _, ok := h.byDate[key]; ok {
			continue
		}
		h.byDate[key] = s
		h.dates = append(h.dates, dateOnly(s.Date))
	}
	sort.Slice(h.dates, func(i, j int) bool { return h.dates[i].After(h.dates[j]) })
	return h
}

// SampleOn returns the sample for the given calendar date, if any.
func (h *History) SampleOn(day time.Time) *models.DailySample {
	return h.byDate[day.Format("2006-01-02")]
}

// Dates returns all sample dates, newest first.
func (h *History) Dates() []time.Time {
	return h.dates
}

// olderThan returns up to LongWindowDays samples strictly older than day,
// newest first. The bound keeps each baseline computation from scanning
// arbitrarily far back.
func (h *History) olderThan(day time.Time) []*models.DailySample {
	day = dateOnly(day)
	out := make([]*models.DailySample, 0, h.cfg.LongWindowDays)
	for _, d := range h.dates {
		if !d.Before(day) {
			continue
		}
		out = append(out, h.byDate[d.Format("2006-01-02")])
		if len(out) == h.cfg.LongWindowDays {
			break
		}
	}
	return out
}

// BaselineAt computes the rolling baselines anchored at day. Only samples
// strictly older than day contribute: the day being scored must never see
// itself or anything newer in its own baseline.
func (h *History) BaselineAt(day time.Time) models.Baseline {
	history := h.olderThan(day)
	short, long := h.cfg.ShortWindowDays, h.cfg.LongWindowDays

	return models.Baseline{
		HRV7d:       h.rollingAvg(history, short, hrvValue),
		HRV30d:      h.rollingAvg(history, long, hrvValue),
		Sleep7d:     h.rollingAvg(history, short, sleepHours),
		Sleep30d:    h.rollingAvg(history, long, sleepHours),
		RHR7d:       h.rollingAvg(history, short, rhrValue),
		RHR30d:      h.rollingAvg(history, long, rhrValue),
		Recovery7d:  h.rollingAvg(history, short, chargedValue),
		Recovery30d: h.rollingAvg(history, long, chargedValue),
	}
}

// rollingAvg averages the metric over the first days entries of history
// (newest first), skipping nulls. Returns nil when fewer than
// MinSamplesForBaseline valid values remain.
func (h *History) rollingAvg(history []*models.DailySample, days int, metric func(*models.DailySample) *float64) *float64 {
	if days > len(history) {
		days = len(history)
	}

	var sum float64
	var n int
	for _, s := range history[:days] {
		v := metric(s)
		if v == nil {
			continue
		}
		sum += *v
		n++
	}
	if n < h.cfg.MinSamplesForBaseline {
		return nil
	}
	avg := round2(sum / float64(n))
	return &avg
}

func hrvValue(s *models.DailySample) *float64 { return s.HRVLastNightAvg }

func rhrValue(s *models.DailySample) *float64 { return s.RestingHeartRate }

func chargedValue(s *models.DailySample) *float64 { return s.BodyBatteryCharged }

// sleepHours converts raw sleep seconds to hours. A zero or missing seconds
// value counts as no data, not as zero hours of sleep.
func sleepHours(s *models.DailySample) *float64 {
	if s.SleepTotalSeconds == nil || *s.SleepTotalSeconds <= 0 {
		return nil
	}
	hr := *s.SleepTotalSeconds / 3600
	return &hr
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
