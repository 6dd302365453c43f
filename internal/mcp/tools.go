package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/vigor/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultDateRange returns start/end defaulting to the last 7 days.
func defaultDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexDate(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		now := time.Now().UTC()
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}

	if startStr != "" {
		start, err = parseFlexDate(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -6)
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start %s is after end %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return start, end, nil
}

func parseFlexDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339, s)
	if err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetAssessments = mcp.NewTool("get_assessments",
	mcp.WithDescription("Score every sample day in a date range. Each assessment includes recovery score/zone, strain score and target, sleep target and debt, baselines, and trend indicators."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetDayAssessment = mcp.NewTool("get_day_assessment",
	mcp.WithDescription("Full assessment for a single date: recovery score and zone, strain, sleep plan, baselines, and trends."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Date to assess (YYYY-MM-DD)")),
)

var toolGetBaselines = mcp.NewTool("get_baselines",
	mcp.WithDescription("Rolling 7-day and 30-day baselines (HRV, sleep, resting HR, recovery energy) as seen from a given date. Baselines use only days before the date."),
	mcp.WithString("date", mcp.Description("Reference date (YYYY-MM-DD). Defaults to the most recent sample day.")),
)

var toolGetSleepDebt = mcp.NewTool("get_sleep_debt",
	mcp.WithDescription("Sleep target and accumulated sleep debt for a date, with the strain and debt-repayment adjustments baked into the target."),
	mcp.WithString("date", mcp.Description("Reference date (YYYY-MM-DD). Defaults to the most recent sample day.")),
)

var toolGetSamples = mcp.NewTool("get_samples",
	mcp.WithDescription("Raw daily samples (HRV, sleep, resting HR, stress, body battery, steps, calories, intensity minutes) for a date range, newest first."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetDataStats = mcp.NewTool("get_data_stats",
	mcp.WithDescription("Aggregate statistics for the stored history: total days, date coverage, and per-metric counts. Useful for explaining thin baselines."),
)

// --- Tool handlers ---

func (h *handlers) getAssessments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultDateRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	spanDays := int(end.Sub(start).Hours()/24) + 1
	lookback := h.assessor.Config().LongWindowDays

	samples, err := h.ds.QuerySampleWindow(ctx, end, spanDays+lookback)
	if err != nil {
		h.log.Error("mcp get_assessments", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	assessments := h.assessor.Assess(samples, spanDays)
	filtered := make([]models.DayAssessment, 0, len(assessments))
	for _, da := range assessments {
		if !da.Date.Before(start) && !da.Date.After(end) {
			filtered = append(filtered, da)
		}
	}

	result, err := mcp.NewToolResultJSON(filtered)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDayAssessment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dateStr, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}
	day, err := parseFlexDate(dateStr)
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	da, err := h.assessOn(ctx, day)
	if err != nil {
		h.log.Error("mcp get_day_assessment", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(da)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getBaselines(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	da, err := h.assessForOptionalDate(ctx, req.GetString("date", ""))
	if err != nil {
		h.log.Error("mcp get_baselines", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"date":     da.Date.Format("2006-01-02"),
		"baseline": da.Baseline,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSleepDebt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	da, err := h.assessForOptionalDate(ctx, req.GetString("date", ""))
	if err != nil {
		h.log.Error("mcp get_sleep_debt", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"date":                         da.Date.Format("2006-01-02"),
		"sleep_target_hours":           da.SleepTargetHours,
		"accumulated_sleep_debt_hours": da.AccumulatedSleepDebtHours,
		"strain_adjustment_min":        da.StrainAdjustmentMin,
		"debt_repayment_min":           da.DebtRepaymentMin,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getSamples(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultDateRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	samples, err := h.ds.QueryDailySamples(ctx, start, end)
	if err != nil {
		h.log.Error("mcp get_samples", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(samples)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getDataStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.ds.GetDataStats(ctx)
	if err != nil {
		h.log.Error("mcp get_data_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(stats)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// assessOn scores a single date, pulling enough history for full baselines.
func (h *handlers) assessOn(ctx context.Context, day time.Time) (*models.DayAssessment, error) {
	lookback := h.assessor.Config().LongWindowDays
	samples, err := h.ds.QuerySampleWindow(ctx, day, 1+lookback)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}

	assessments := h.assessor.Assess(samples, 1)
	if len(assessments) == 0 {
		return nil, fmt.Errorf("no samples on or before %s", day.Format("2006-01-02"))
	}
	da := assessments[0]
	if da.Date.Format("2006-01-02") != day.Format("2006-01-02") {
		return nil, fmt.Errorf("no sample recorded for %s (nearest earlier day is %s)",
			day.Format("2006-01-02"), da.Date.Format("2006-01-02"))
	}
	return &da, nil
}

// assessForOptionalDate scores the given date, or the most recent sample day
// when dateStr is empty.
func (h *handlers) assessForOptionalDate(ctx context.Context, dateStr string) (*models.DayAssessment, error) {
	if dateStr != "" {
		day, err := parseFlexDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid date format: %w", err)
		}
		return h.assessOn(ctx, day)
	}

	latest, err := h.ds.LatestSampleDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	if latest == nil {
		return nil, fmt.Errorf("no samples ingested yet")
	}
	return h.assessOn(ctx, *latest)
}
