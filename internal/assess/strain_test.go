package assess

import (
	"testing"

	"github.com/claude/vigor/internal/models"
)

// TestStrainScore verifies the capped additive terms, including the
// 20000-step / 60-drained / 100-minute reference day scoring 18.0.
func TestStrainScore(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name   string
		sample models.DailySample
		want   float64
	}{
		{
			"reference day",
			models.DailySample{Steps: 20000, BodyBatteryDrained: f64(60), IntensityMinutes: 100},
			18.0, // min(8,10) + min(8,5) + min(5,5)
		},
		{
			"sedentary day",
			models.DailySample{Steps: 2000},
			1.0,
		},
		{
			"no counters at all",
			models.DailySample{},
			0.0,
		},
		{
			"steps term caps at 8",
			models.DailySample{Steps: 1_000_000},
			8.0,
		},
		{
			"drained term caps at 8",
			models.DailySample{BodyBatteryDrained: f64(5000)},
			8.0,
		},
		{
			"intensity term caps at 5",
			models.DailySample{IntensityMinutes: 100000},
			5.0,
		},
		{
			"one decimal rounding",
			models.DailySample{Steps: 2500}, // 1.25
			1.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StrainScore(cfg, &tt.sample); got != tt.want {
				t.Errorf("StrainScore = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

// TestStrainTotalCap verifies that maxing every term still respects the
// overall cap of 21.
func TestStrainTotalCap(t *testing.T) {
	cfg := DefaultConfig()
	s := &models.DailySample{
		Steps:              1_000_000,
		BodyBatteryDrained: f64(10000),
		IntensityMinutes:   100000,
	}
	got := StrainScore(cfg, s)
	if got > cfg.StrainCap {
		t.Errorf("StrainScore = %.2f, exceeds cap %.1f", got, cfg.StrainCap)
	}
	if got != 21.0 {
		t.Errorf("StrainScore = %.2f, want exactly 21.0 when every term maxes", got)
	}
}

// TestStrainNilSample verifies the nil guard.
func TestStrainNilSample(t *testing.T) {
	if got := StrainScore(DefaultConfig(), nil); got != 0 {
		t.Errorf("StrainScore(nil) = %.2f, want 0", got)
	}
}
