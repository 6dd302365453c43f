// Package assess turns a window of daily biometric samples into per-day
// readiness verdicts. Every function is a pure transform: no I/O, no clocks,
// no shared state. Missing data degrades to nil baselines and skipped
// sub-scores, never to errors.
package assess

// Config holds the externally tunable knobs of the scoring engine. Formula
// coefficients and sub-score weights are fixed constants so that scores stay
// comparable across runs.
type Config struct {
	DirectionThresholdPct float64 `yaml:"direction_threshold_pct"`
	ShortWindowDays       int     `yaml:"short_window_days"`
	LongWindowDays        int     `yaml:"long_window_days"`
	MinSamplesForBaseline int     `yaml:"min_samples_for_baseline"`
	GreenThreshold        int     `yaml:"green_threshold"`
	YellowThreshold       int     `yaml:"yellow_threshold"`
	StrainCap             float64 `yaml:"strain_cap"`
	SleepDebtWindowDays   int     `yaml:"sleep_debt_window_days"`
}

// DefaultConfig returns the standard engine tuning.
func DefaultConfig() Config {
	return Config{
		DirectionThresholdPct: 5.0,
		ShortWindowDays:       7,
		LongWindowDays:        30,
		MinSamplesForBaseline: 3,
		GreenThreshold:        67,
		YellowThreshold:       34,
		StrainCap:             21.0,
		SleepDebtWindowDays:   7,
	}
}
