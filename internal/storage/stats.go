package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds aggregate statistics about the stored sample history,
// including per-metric coverage so thin baselines can be explained.
type DataStats struct {
	TotalSamples        int64      `json:"total_samples"`
	EarliestDate        *time.Time `json:"earliest_date"`
	LatestDate          *time.Time `json:"latest_date"`
	DaysWithHRV         int64      `json:"days_with_hrv"`
	DaysWithSleep       int64      `json:"days_with_sleep"`
	DaysWithRestingHR   int64      `json:"days_with_resting_hr"`
	DaysWithBodyBattery int64      `json:"days_with_body_battery"`
}

// GetDataStats returns aggregate statistics for the stored sample history.
func (db *DB) GetDataStats(ctx context.Context) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        MIN(date),
		        MAX(date),
		        COUNT(hrv_last_night_avg),
		        COUNT(sleep_total_seconds),
		        COUNT(resting_heart_rate),
		        COUNT(body_battery_charged)
		 FROM daily_samples`,
	).Scan(&stats.TotalSamples, &stats.EarliestDate, &stats.LatestDate,
		&stats.DaysWithHRV, &stats.DaysWithSleep, &stats.DaysWithRestingHR, &stats.DaysWithBodyBattery)
	if err != nil {
		return nil, fmt.Errorf("querying data stats: %w", err)
	}

	return stats, nil
}
