package models

import "time"

// DailySample is one calendar day of raw biometrics as delivered by the
// wearable provider. Every pointer field is nullable: the provider omits
// metrics the watch did not record, and absence must never be coerced to
// zero. Samples are immutable once ingested.
type DailySample struct {
	Date               time.Time `json:"date"`
	HRVLastNightAvg    *float64  `json:"hrv_last_night_avg,omitempty"`
	HRVWeeklyAvg       *float64  `json:"hrv_weekly_avg,omitempty"`
	RestingHeartRate   *float64  `json:"resting_heart_rate,omitempty"`
	SleepTotalSeconds  *float64  `json:"sleep_total_seconds,omitempty"`
	SleepDeepSeconds   *float64  `json:"sleep_deep_seconds,omitempty"`
	SleepREMSeconds    *float64  `json:"sleep_rem_seconds,omitempty"`
	SleepScore         *float64  `json:"sleep_score,omitempty"`
	SleepEfficiency    *float64  `json:"sleep_efficiency,omitempty"`
	StressAvg          *float64  `json:"stress_avg,omitempty"`
	BodyBatteryCharged *float64  `json:"body_battery_charged,omitempty"`
	BodyBatteryDrained *float64  `json:"body_battery_drained,omitempty"`
	Steps              int       `json:"steps"`
	StepsGoal          int       `json:"steps_goal"`
	ActiveCalories     int       `json:"active_calories"`
	IntensityMinutes   int       `json:"intensity_minutes"`
}

// DateKey returns the sample's date formatted as YYYY-MM-DD, the canonical
// key used for calendar-indexed lookups.
func (s DailySample) DateKey() string {
	return s.Date.Format("2006-01-02")
}
