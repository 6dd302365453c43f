package garmin

import (
	"fmt"
	"time"

	"github.com/claude/vigor/internal/models"
)

// Payload is the envelope the wellness sync job posts: one entry per
// calendar day, newest first.
type Payload struct {
	Data struct {
		Dailies []DailySummary `json:"dailies"`
	} `json:"data"`
}

// DailySummary is one day of provider data. Pointer fields are omitted by
// the provider when the watch recorded nothing for that metric.
type DailySummary struct {
	CalendarDate     string       `json:"calendar_date"`
	HRVLastNightAvg  *float64     `json:"hrv_last_night_avg"`
	HRVWeeklyAvg     *float64     `json:"hrv_weekly_avg"`
	RestingHeartRate *float64     `json:"resting_heart_rate"`
	Sleep            *SleepBlock  `json:"sleep"`
	StressAvg        *float64     `json:"stress_avg"`
	BodyBattery      *EnergyBlock `json:"body_battery"`
	Steps            int          `json:"steps"`
	StepsGoal        int          `json:"steps_goal"`
	ActiveCalories   int          `json:"active_calories"`
	IntensityMinutes int          `json:"intensity_minutes"`
}

// SleepBlock groups the night's sleep readings.
type SleepBlock struct {
	TotalSeconds *float64 `json:"total_seconds"`
	DeepSeconds  *float64 `json:"deep_seconds"`
	REMSeconds   *float64 `json:"rem_seconds"`
	Score        *float64 `json:"score"`
	Efficiency   *float64 `json:"efficiency"`
}

// EnergyBlock groups the day's body-battery deltas.
type EnergyBlock struct {
	Charged *float64 `json:"charged"`
	Drained *float64 `json:"drained"`
}

// convertDaily flattens one provider entry into a DailySample. Rejects
// entries whose calendar date is missing or unparseable; everything else is
// passed through, preserving absence as nil.
func convertDaily(d DailySummary) (*models.DailySample, error) {
	if d.CalendarDate == "" {
		return nil, fmt.Errorf("missing calendar_date")
	}
	date, err := time.Parse("2006-01-02", d.CalendarDate)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar_date %q: %w", d.CalendarDate, err)
	}

	s := &models.DailySample{
		Date:             date,
		HRVLastNightAvg:  d.HRVLastNightAvg,
		HRVWeeklyAvg:     d.HRVWeeklyAvg,
		RestingHeartRate: d.RestingHeartRate,
		StressAvg:        d.StressAvg,
		Steps:            d.Steps,
		StepsGoal:        d.StepsGoal,
		ActiveCalories:   d.ActiveCalories,
		IntensityMinutes: d.IntensityMinutes,
	}
	if d.Sleep != nil {
		s.SleepTotalSeconds = d.Sleep.TotalSeconds
		s.SleepDeepSeconds = d.Sleep.DeepSeconds
		s.SleepREMSeconds = d.Sleep.REMSeconds
		s.SleepScore = d.Sleep.Score
		s.SleepEfficiency = d.Sleep.Efficiency
	}
	if d.BodyBattery != nil {
		s.BodyBatteryCharged = d.BodyBattery.Charged
		s.BodyBatteryDrained = d.BodyBattery.Drained
	}
	return s, nil
}
