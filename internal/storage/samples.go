package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/claude/vigor/internal/models"
	"github.com/jackc/pgx/v5"
)

const sampleColumns = `date, hrv_last_night_avg, hrv_weekly_avg, resting_heart_rate,
	sleep_total_seconds, sleep_deep_seconds, sleep_rem_seconds, sleep_score, sleep_efficiency,
	stress_avg, body_battery_charged, body_battery_drained,
	steps, steps_goal, active_calories, intensity_minutes`

// UpsertDailySamples batch-inserts sample rows, replacing any existing row
// for the same date. The provider re-sends the current day as it fills in,
// so last write wins. Returns the number of rows written.
func (db *DB) UpsertDailySamples(ctx context.Context, rows []models.DailySample) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO daily_samples (` + sampleColumns + `) VALUES `
	args := make([]any, 0, len(rows)*16)
	valueStrings := make([]string, 0, len(rows))

	for i, r := range rows {
		base := i * 16
		placeholders := make([]string, 16)
		for j := range placeholders {
			placeholders[j] = fmt.Sprintf("$%d", base+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		args = append(args, r.Date, r.HRVLastNightAvg, r.HRVWeeklyAvg, r.RestingHeartRate,
			r.SleepTotalSeconds, r.SleepDeepSeconds, r.SleepREMSeconds, r.SleepScore, r.SleepEfficiency,
			r.StressAvg, r.BodyBatteryCharged, r.BodyBatteryDrained,
			r.Steps, r.StepsGoal, r.ActiveCalories, r.IntensityMinutes)
	}

	query += strings.Join(valueStrings, ",") + `
		ON CONFLICT (date) DO UPDATE SET
		hrv_last_night_avg = EXCLUDED.hrv_last_night_avg,
		hrv_weekly_avg = EXCLUDED.hrv_weekly_avg,
		resting_heart_rate = EXCLUDED.resting_heart_rate,
		sleep_total_seconds = EXCLUDED.sleep_total_seconds,
		sleep_deep_seconds = EXCLUDED.sleep_deep_seconds,
		sleep_rem_seconds = EXCLUDED.sleep_rem_seconds,
		sleep_score = EXCLUDED.sleep_score,
		sleep_efficiency = EXCLUDED.sleep_efficiency,
		stress_avg = EXCLUDED.stress_avg,
		body_battery_charged = EXCLUDED.body_battery_charged,
		body_battery_drained = EXCLUDED.body_battery_drained,
		steps = EXCLUDED.steps,
		steps_goal = EXCLUDED.steps_goal,
		active_calories = EXCLUDED.active_calories,
		intensity_minutes = EXCLUDED.intensity_minutes`

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("upserting daily samples: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryDailySamples retrieves samples in [start, end], newest first.
func (db *DB) QueryDailySamples(ctx context.Context, start, end time.Time) ([]models.DailySample, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+sampleColumns+`
		 FROM daily_samples
		 WHERE date >= $1 AND date <= $2
		 ORDER BY date DESC`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying daily samples: %w", err)
	}
	defer rows.Close()

	return scanSampleRows(rows)
}

// QuerySampleWindow returns up to limit samples dated on or before end,
// newest first. Callers sizing a scoring window ask for requested days plus
// the baseline lookback.
func (db *DB) QuerySampleWindow(ctx context.Context, end time.Time, limit int) ([]models.DailySample, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+sampleColumns+`
		 FROM daily_samples
		 WHERE date <= $1
		 ORDER BY date DESC
		 LIMIT $2`,
		end, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sample window: %w", err)
	}
	defer rows.Close()

	return scanSampleRows(rows)
}

// LatestSampleDate returns the newest sample date, or nil when the store is
// empty.
func (db *DB) LatestSampleDate(ctx context.Context) (*time.Time, error) {
	var latest *time.Time
	err := db.Pool.QueryRow(ctx, `SELECT MAX(date) FROM daily_samples`).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("querying latest sample date: %w", err)
	}
	return latest, nil
}

func scanSampleRows(rows pgx.Rows) ([]models.DailySample, error) {
	var result []models.DailySample
	for rows.Next() {
		var s models.DailySample
		if err := rows.Scan(&s.Date, &s.HRVLastNightAvg, &s.HRVWeeklyAvg, &s.RestingHeartRate,
			&s.SleepTotalSeconds, &s.SleepDeepSeconds, &s.SleepREMSeconds, &s.SleepScore, &s.SleepEfficiency,
			&s.StressAvg, &s.BodyBatteryCharged, &s.BodyBatteryDrained,
			&s.Steps, &s.StepsGoal, &s.ActiveCalories, &s.IntensityMinutes); err != nil {
			return nil, fmt.Errorf("scanning daily sample: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}
