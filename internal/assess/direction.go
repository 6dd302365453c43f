package assess

import "github.com/claude/vigor/internal/models"

// Classify labels current against baseline as up, down, or stable. Returns
// nil when either value is missing or the baseline is zero (division guard).
// With inverse set, up and down swap — used for resting heart rate, where a
// drop is the favorable direction. Stable is unaffected by inverse.
func Classify(current, baseline *float64, thresholdPct float64, inverse bool) *models.DirectionIndicator {
	if current == nil || baseline == nil || *baseline == 0 {
		return nil
	}

	changePct := round1((*current - *baseline) / *baseline * 100)

	dir := models.DirectionStable
	if changePct >= thresholdPct || -changePct >= thresholdPct {
		if changePct > 0 {
			dir = models.DirectionUp
		} else {
			dir = models.DirectionDown
		}
		if inverse {
			if dir == models.DirectionUp {
				dir = models.DirectionDown
			} else {
				dir = models.DirectionUp
			}
		}
	}

	return &models.DirectionIndicator{
		Direction: dir,
		ChangePct: changePct,
		Baseline:  *baseline,
		Current:   *current,
	}
}
