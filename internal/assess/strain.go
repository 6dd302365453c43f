package assess

import "github.com/claude/vigor/internal/models"

// Per-term strain caps and divisors. Fixed by the algorithm.
const (
	stepsCap        = 8.0
	stepsPerPoint   = 2000.0
	drainedCap      = 8.0
	drainedPerPoint = 12.0
	intensityCap    = 5.0
	minutesPerPoint = 20.0
)

// StrainScore sums the day's capped activity contributions into a bounded
// exertion estimate. Purely additive over the day's own counters; no
// baseline is involved. A missing counter simply contributes nothing.
func StrainScore(cfg Config, s *models.DailySample) float64 {
	if s == nil {
		return 0
	}

	sum := capped(float64(s.Steps)/stepsPerPoint, stepsCap)
	if s.BodyBatteryDrained != nil {
		sum += capped(*s.BodyBatteryDrained/drainedPerPoint, drainedCap)
	}
	sum += capped(float64(s.IntensityMinutes)/minutesPerPoint, intensityCap)

	if sum > cfg.StrainCap {
		sum = cfg.StrainCap
	}
	return round1(sum)
}

func capped(v, cap float64) float64 {
	if v > cap {
		return cap
	}
	return v
}
