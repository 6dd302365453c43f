package models

import "time"

// Direction labels a metric's movement relative to its personal baseline.
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// RecoveryZone is the traffic-light band a recovery score falls into.
type RecoveryZone string

const (
	ZoneGreen  RecoveryZone = "GREEN"
	ZoneYellow RecoveryZone = "YELLOW"
	ZoneRed    RecoveryZone = "RED"
)

// Baseline holds the rolling personal averages computed for one day, each
// drawn only from samples strictly older than that day. A field is nil when
// its window held fewer than the minimum number of valid observations.
type Baseline struct {
	HRV7d       *float64 `json:"hrv_7d_avg,omitempty"`
	HRV30d      *float64 `json:"hrv_30d_avg,omitempty"`
	Sleep7d     *float64 `json:"sleep_7d_avg,omitempty"`
	Sleep30d    *float64 `json:"sleep_30d_avg,omitempty"`
	RHR7d       *float64 `json:"rhr_7d_avg,omitempty"`
	RHR30d      *float64 `json:"rhr_30d_avg,omitempty"`
	Recovery7d  *float64 `json:"recovery_7d_avg,omitempty"`
	Recovery30d *float64 `json:"recovery_30d_avg,omitempty"`
}

// DirectionIndicator compares a current value against its baseline.
// Recomputed on every request; carries no identity.
type DirectionIndicator struct {
	Direction Direction `json:"direction"`
	ChangePct float64   `json:"change_pct"`
	Baseline  float64   `json:"baseline"`
	Current   float64   `json:"current"`
}

// TrendSet groups the per-metric direction indicators for one day. A nil
// entry means the metric or its baseline was unavailable.
type TrendSet struct {
	HRV         *DirectionIndicator `json:"hrv,omitempty"`
	Sleep       *DirectionIndicator `json:"sleep,omitempty"`
	RestingHR   *DirectionIndicator `json:"resting_heart_rate,omitempty"`
	BodyBattery *DirectionIndicator `json:"body_battery,omitempty"`
}

// StrainTarget is the recommended strain band for the day.
type StrainTarget struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DayAssessment is the engine's verdict for one day: readiness, exertion,
// and tonight's sleep plan, all relative to the subject's own history.
//
// HasAnySubScore distinguishes a recovery score of 0 computed from real
// (poor) inputs from the degenerate 0 produced when every recovery input
// was missing.
type DayAssessment struct {
	Date           time.Time    `json:"date"`
	RecoveryScore  int          `json:"recovery_score"`
	RecoveryZone   RecoveryZone `json:"recovery_zone"`
	HasAnySubScore bool         `json:"has_any_sub_score"`
	Recommendation string       `json:"recommendation"`

	StrainScore  float64      `json:"strain_score"`
	StrainTarget StrainTarget `json:"strain_target"`

	SleepTargetHours          float64 `json:"sleep_target_hours"`
	AccumulatedSleepDebtHours float64 `json:"accumulated_sleep_debt_hours"`
	StrainAdjustmentMin       int     `json:"strain_adjustment_min"`
	DebtRepaymentMin          int     `json:"debt_repayment_min"`

	Baseline Baseline `json:"baseline"`
	Trends   TrendSet `json:"trends"`
}
