package assess

import (
	"time"

	"github.com/claude/vigor/internal/models"
)

// Assessor computes day assessments from raw sample windows. It holds only
// configuration: every call is idempotent and safe to issue concurrently.
type Assessor struct {
	cfg Config
}

// New creates an Assessor with the given tuning.
func New(cfg Config) *Assessor {
	return &Assessor{cfg: cfg}
}

// Config returns the engine tuning in use.
func (a *Assessor) Config() Config {
	return a.cfg
}

// Assess scores the requestedDays most recent sample dates in the window.
// Callers should supply requestedDays+LongWindowDays samples so the oldest
// requested day still has a fully seeded baseline; a shorter window degrades
// to null baselines rather than failing.
func (a *Assessor) Assess(samples []models.DailySample, requestedDays int) []models.DayAssessment {
	if requestedDays <= 0 {
		return nil
	}
	h := NewHistory(a.cfg, samples)

	dates := h.Dates()
	if requestedDays < len(dates) {
		dates = dates[:requestedDays]
	}

	out := make([]models.DayAssessment, 0, len(dates))
	for _, day := range dates {
		out = append(out, a.AssessDay(h, day))
	}
	return out
}

// AssessDay produces the full verdict for one calendar day. Missing metrics
// degrade piecewise: null baselines drop trend indicators and recovery
// sub-scores, and an entirely data-free day yields a well-typed assessment
// with HasAnySubScore false.
func (a *Assessor) AssessDay(h *History, day time.Time) models.DayAssessment {
	day = dateOnly(day)
	s := h.SampleOn(day)
	baseline := h.BaselineAt(day)

	recovery, hasAny := RecoveryScore(s, baseline)
	zone := ZoneForScore(a.cfg, recovery)
	strain := StrainScore(a.cfg, s)

	priorStrain := StrainScore(a.cfg, h.SampleOn(day.AddDate(0, 0, -1)))
	plan := h.SleepPlanAt(day, priorStrain)

	return models.DayAssessment{
		Date:           day,
		RecoveryScore:  recovery,
		RecoveryZone:   zone,
		HasAnySubScore: hasAny,
		Recommendation: RecommendationFor(zone),

		StrainScore:  strain,
		StrainTarget: StrainTargetFor(zone),

		SleepTargetHours:          plan.TargetHours,
		AccumulatedSleepDebtHours: plan.AccumulatedDebtHours,
		StrainAdjustmentMin:       plan.StrainAdjustmentMin,
		DebtRepaymentMin:          plan.DebtRepaymentMin,

		Baseline: baseline,
		Trends:   a.trends(s, baseline),
	}
}

// trends classifies each tracked metric against its short baseline. Resting
// heart rate is inverse: a drop below baseline is the favorable direction.
func (a *Assessor) trends(s *models.DailySample, b models.Baseline) models.TrendSet {
	if s == nil {
		return models.TrendSet{}
	}
	threshold := a.cfg.DirectionThresholdPct
	return models.TrendSet{
		HRV:         Classify(s.HRVLastNightAvg, b.HRV7d, threshold, false),
		Sleep:       Classify(sleepHours(s), b.Sleep7d, threshold, false),
		RestingHR:   Classify(s.RestingHeartRate, b.RHR7d, threshold, true),
		BodyBattery: Classify(s.BodyBatteryCharged, b.Recovery7d, threshold, false),
	}
}
