package store

import (
	"testing"

	"github.com/rcalderon/recruitops-api-go/pkg/models"
)

func TestZoneStore_ForcesAscendingThresholds(t *testing.T) {
	z := NewZoneStore()
	z.Set(models.Zones{LowRed: 80, LowYellow: 60, HighYellow: 50, HighRed: 40})

	got := z.Get()
	if got.LowYellow < got.LowRed || got.HighYellow < got.LowYellow || got.HighRed < got.HighYellow {
		t.Errorf("expected non-decreasing thresholds, got %+v", got)
	}
}

func TestZoneStore_NotifiesOnlyOnChange(t *testing.T) {
	z := NewZoneStore()
	calls := 0
	z.Subscribe(func() { calls++ })

	z.Set(DefaultZones) // unchanged
	z.Set(models.Zones{LowRed: 60, LowYellow: 85, HighYellow: 115, HighRed: 140})

	if calls != 1 {
		t.Errorf("expected 1 notification, got %d", calls)
	}
}

func TestZones_Band(t *testing.T) {
	z := DefaultZones // 70 / 90 / 110 / 130

	cases := []struct {
		pct  float64
		want string
	}{
		{40, "severe_under"},
		{75, "mild_under"},
		{100, "balanced"},
		{110, "balanced"},
		{120, "mild_over"},
		{150, "severe_over"},
	}
	for _, tc := range cases {
		if got := z.Band(tc.pct); got != tc.want {
			t.Errorf("Band(%f) = %s, want %s", tc.pct, got, tc.want)
		}
	}
}
