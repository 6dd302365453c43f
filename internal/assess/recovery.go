package assess

import (
	"math"

	"github.com/claude/vigor/internal/models"
)

// Sub-score weights and formula coefficients are fixed by the algorithm and
// deliberately not configurable.
const (
	hrvWeight    = 1.5
	sleepWeight  = 1.0
	energyWeight = 1.0

	fixedSleepTargetHours = 8.0
	fixedDeepPctTarget    = 20.0
)

// scoreStrategy attempts to produce one recovery sub-score from a sample and
// its baseline. Returns nil when its data source is unavailable so the next
// strategy in the chain can be tried.
type scoreStrategy func(s *models.DailySample, b models.Baseline) *float64

// Each sub-score has an ordered fallback chain: the first strategy that
// yields a value wins, and an exhausted chain omits the sub-score entirely.
var (
	hrvChain    = []scoreStrategy{hrvPersonalBaseline, hrvProviderBaseline}
	sleepChain  = []scoreStrategy{sleepPersonalBaseline, sleepFixedTarget}
	energyChain = []scoreStrategy{energyCharged}
)

// hrvPersonalBaseline scores HRV against the subject's own 7-day average.
func hrvPersonalBaseline(s *models.DailySample, b models.Baseline) *float64 {
	if s.HRVLastNightAvg == nil || b.HRV7d == nil || *b.HRV7d == 0 {
		return nil
	}
	score := clamp(*s.HRVLastNightAvg / *b.HRV7d * 80 + 20, 0, 100)
	return &score
}

// hrvProviderBaseline falls back to the provider-supplied weekly HRV average
// when too little history exists for a personal baseline.
func hrvProviderBaseline(s *models.DailySample, b models.Baseline) *float64 {
	if s.HRVLastNightAvg == nil || s.HRVWeeklyAvg == nil || *s.HRVWeeklyAvg == 0 {
		return nil
	}
	score := clamp(*s.HRVLastNightAvg / *s.HRVWeeklyAvg * 75 + 25, 0, 100)
	return &score
}

// sleepPersonalBaseline scores last night against the 7-day sleep average.
func sleepPersonalBaseline(s *models.DailySample, b models.Baseline) *float64 {
	hours := sleepHours(s)
	if hours == nil || b.Sleep7d == nil || *b.Sleep7d == 0 {
		return nil
	}
	score := clamp(*hours / *b.Sleep7d * 85 + 15, 0, 100)
	return &score
}

// sleepFixedTarget scores against a population 8h/20% deep target when no
// personal baseline exists but a sleep sample does.
func sleepFixedTarget(s *models.DailySample, _ models.Baseline) *float64 {
	hours := sleepHours(s)
	if hours == nil {
		return nil
	}
	var deepPct float64
	if s.SleepDeepSeconds != nil && *s.SleepTotalSeconds > 0 {
		deepPct = *s.SleepDeepSeconds / *s.SleepTotalSeconds * 100
	}
	score := clamp(*hours/fixedSleepTargetHours*85+deepPct/fixedDeepPctTarget*15, 0, 100)
	return &score
}

// energyCharged uses overnight body-battery charge directly; the provider
// already normalizes it to 0-100.
func energyCharged(s *models.DailySample, _ models.Baseline) *float64 {
	return s.BodyBatteryCharged
}

func firstScore(chain []scoreStrategy, s *models.DailySample, b models.Baseline) *float64 {
	for _, strategy := range chain {
		if score := strategy(s, b); score != nil {
			return score
		}
	}
	return nil
}

// RecoveryScore blends the HRV, sleep, and energy sub-scores into a 0-100
// readiness estimate. hasAny reports whether any sub-score contributed; a
// score of 0 with hasAny false means "no data", not "terrible recovery".
func RecoveryScore(s *models.DailySample, b models.Baseline) (score int, hasAny bool) {
	if s == nil {
		return 0, false
	}

	var weightedSum, totalWeight float64
	add := func(chain []scoreStrategy, weight float64) {
		if sub := firstScore(chain, s, b); sub != nil {
			weightedSum += *sub * weight
			totalWeight += weight
		}
	}

	add(hrvChain, hrvWeight)
	add(sleepChain, sleepWeight)
	add(energyChain, energyWeight)

	if totalWeight == 0 {
		return 0, false
	}
	return int(math.Round(weightedSum / totalWeight)), true
}

// ZoneForScore maps a recovery score to its traffic-light zone.
func ZoneForScore(cfg Config, score int) models.RecoveryZone {
	switch {
	case score >= cfg.GreenThreshold:
		return models.ZoneGreen
	case score >= cfg.YellowThreshold:
		return models.ZoneYellow
	default:
		return models.ZoneRed
	}
}
