package assess

import (
	"math"
	"time"
)

// Strain-to-sleep conversion: each strain point above this knee adds
// strainAdjPerPoint hours of recommended sleep.
const (
	strainAdjKnee     = 10.0
	strainAdjPerPoint = 0.05
)

// SleepPlan is tonight's sleep recommendation plus the debt bookkeeping
// behind it. The two adjustment terms are exposed in minutes so a caller can
// explain how the target was composed.
type SleepPlan struct {
	TargetHours          float64
	AccumulatedDebtHours float64
	StrainAdjustmentMin  int
	DebtRepaymentMin     int
}

// sleepDebtOn is a single day's shortfall against that day's own rolling
// sleep baseline. Days with no baseline or no sleep data owe nothing.
func (h *History) sleepDebtOn(day time.Time) float64 {
	s := h.SampleOn(day)
	if s == nil {
		return 0
	}
	actual := sleepHours(s)
	base := h.BaselineAt(day).Sleep7d
	if actual == nil || base == nil {
		return 0
	}
	if debt := *base - *actual; debt > 0 {
		return debt
	}
	return 0
}

// AccumulatedSleepDebt sums per-day debt over the trailing debt window
// ending at day (inclusive). Each day is measured against its own
// recomputed baseline, so the subject's drifting norm is tracked rather
// than a single anchored weekly value.
func (h *History) AccumulatedSleepDebt(day time.Time) float64 {
	day = dateOnly(day)
	var total float64
	for i := 0; i < h.cfg.SleepDebtWindowDays; i++ {
		total += h.sleepDebtOn(day.AddDate(0, 0, -i))
	}
	return total
}

// SleepPlanAt proposes tonight's sleep target for day: the day's own sleep
// baseline plus a strain adjustment for the prior day's exertion plus a
// slice of the accumulated debt. Without enough history for a baseline the
// fixed population target seeds the plan.
func (h *History) SleepPlanAt(day time.Time, priorDayStrain float64) SleepPlan {
	base := fixedSleepTargetHours
	if b := h.BaselineAt(day).Sleep7d; b != nil {
		base = *b
	}
	return planFor(h.cfg, base, h.AccumulatedSleepDebt(day), priorDayStrain)
}

// planFor composes the target from its three parts. Holding the baseline
// fixed, the target is non-decreasing in both debt and prior strain.
func planFor(cfg Config, baseline, debt, priorDayStrain float64) SleepPlan {
	strainAdj := (priorDayStrain - strainAdjKnee) * strainAdjPerPoint
	if strainAdj < 0 {
		strainAdj = 0
	}
	if debt < 0 {
		debt = 0
	}
	repay := debt / float64(cfg.SleepDebtWindowDays)

	return SleepPlan{
		TargetHours:          round2(baseline + strainAdj + repay),
		AccumulatedDebtHours: round2(debt),
		StrainAdjustmentMin:  int(math.Round(strainAdj * 60)),
		DebtRepaymentMin:     int(math.Round(repay * 60)),
	}
}
