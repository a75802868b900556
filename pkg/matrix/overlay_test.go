package matrix

import (
	"testing"
	"time"

	"github.com/rcalderon/recruitops-api-go/pkg/models"
)

func mustDate(t *testing.T, iso string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		t.Fatalf("bad date %s: %v", iso, err)
	}
	return d
}

// testMatrix builds a week with three open demand slots on Monday.
func testMatrix() *models.WeekMatrix {
	m := &models.WeekMatrix{Role: "Cook"}
	for d := 0; d < models.DaysPerWeek; d++ {
		for s := 0; s < models.SlotsPerDay; s++ {
			m.Days[d][s] = models.Slot{Closed: true}
		}
	}
	m.Days[0][16] = models.Slot{Demand: 5, Supply: 2}
	m.Days[0][17] = models.Slot{Demand: 5, Supply: 2}
	m.Days[0][18] = models.Slot{Demand: 5, Supply: 2}
	return m
}

func TestApplyOverlay_EvenSpread(t *testing.T) {
	m := testMatrix()
	ApplyOverlay(m, 0, 30) // 30 half-hours over 3 open slots

	for s := 16; s <= 18; s++ {
		if got := m.Days[0][s].Supply; got != 12 {
			t.Errorf("slot %d: expected supply 12, got %d", s, got)
		}
	}
}

func TestApplyOverlay_ZeroOpenSlots(t *testing.T) {
	m := testMatrix()
	ApplyOverlay(m, 1, 100) // Tuesday is fully closed

	for s := 0; s < models.SlotsPerDay; s++ {
		if m.Days[1][s].Supply != 0 {
			t.Errorf("slot %d: closed day absorbed supply", s)
		}
	}
}

func TestApplyOverlay_SkipsZeroDemandSlots(t *testing.T) {
	m := testMatrix()
	m.Days[0][19] = models.Slot{Demand: 0, Supply: 0} // open but no demand
	ApplyOverlay(m, 0, 30)

	if m.Days[0][19].Supply != 0 {
		t.Error("zero-demand slot should not receive overlay supply")
	}
}

func TestSeverityLevel(t *testing.T) {
	cases := []struct {
		demand, supply, want int
	}{
		{10, 14, 3},  // +40%, top band
		{20, 25, 2},  // +25%
		{20, 23, 1},  // +15%
		{10, 10, 0},  // balanced
		{10, 11, 1},  // exactly +10%
		{20, 17, -1}, // -15%
		{8, 6, -2},   // -25%
		{10, 7, -3},  // exactly -30%
		{10, 6, -3},  // -40%
		{0, 5, 3},    // zero demand guarded by max(1, demand)
	}

	for _, tc := range cases {
		if got := SeverityLevel(tc.demand, tc.supply); got != tc.want {
			t.Errorf("SeverityLevel(%d, %d) = %d, want %d", tc.demand, tc.supply, got, tc.want)
		}
	}
}

func TestCoveragePercent_MayExceedHundred(t *testing.T) {
	if got := CoveragePercent(models.Slot{Demand: 10, Supply: 14}); got != 140 {
		t.Errorf("expected 140, got %f", got)
	}
}

func TestSummarize_ExcludesZeroDemandFromAverage(t *testing.T) {
	m := testMatrix()
	m.Days[0][16] = models.Slot{Demand: 10, Supply: 5}
	m.Days[0][17] = models.Slot{Demand: 0, Supply: 7} // open, no demand
	m.Days[0][18] = models.Slot{Closed: true}

	sum := Summarize(m)
	if sum.CoveragePercent != 50 {
		t.Errorf("expected coverage 50 from the single demand slot, got %f", sum.CoveragePercent)
	}
	// Person-hours still count the open zero-demand slot's supply.
	if sum.SupplyHours[0] != (5+7)*0.5 {
		t.Errorf("expected 6 supply hours, got %f", sum.SupplyHours[0])
	}
	if sum.DemandHours[0] != 5 {
		t.Errorf("expected 5 demand hours, got %f", sum.DemandHours[0])
	}
}

func TestCache_EvictsOldest(t *testing.T) {
	c := NewCache(2)
	m := testMatrix()

	c.Put(Key{Role: "a"}, m)
	c.Put(Key{Role: "b"}, m)
	c.Put(Key{Role: "c"}, m)

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	if _, ok := c.Get(Key{Role: "a"}); ok {
		t.Error("expected oldest entry evicted")
	}
	if _, ok := c.Get(Key{Role: "c"}); !ok {
		t.Error("expected newest entry present")
	}
}
