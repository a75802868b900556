package matrix

import (
	"reflect"
	"testing"

	"github.com/rcalderon/recruitops-api-go/pkg/models"
	"github.com/rcalderon/recruitops-api-go/pkg/store"
)

func TestGenerateWeek_Shape(t *testing.T) {
	m := GenerateWeek("Cook", 0, false, nil, nil)

	if len(m.Days) != models.DaysPerWeek {
		t.Fatalf("expected %d days, got %d", models.DaysPerWeek, len(m.Days))
	}

	for d := 0; d < models.DaysPerWeek; d++ {
		openStart, openEnd := 16, 40
		if d >= 5 {
			openStart, openEnd = 20, 44
		}
		for s := 0; s < models.SlotsPerDay; s++ {
			sl := m.Days[d][s]
			if s < openStart || s >= openEnd {
				if !sl.Closed || sl.Demand != 0 || sl.Supply != 0 {
					t.Errorf("day %d slot %d: expected closed zero slot, got %+v", d, s, sl)
				}
				continue
			}
			if sl.Closed {
				t.Errorf("day %d slot %d: expected open slot", d, s)
			}
			if sl.Demand < 0 || sl.Supply < 0 {
				t.Errorf("day %d slot %d: negative values %+v", d, s, sl)
			}
		}
	}
}

func TestGenerateWeek_Deterministic(t *testing.T) {
	a := GenerateWeek("Server", 2, false, nil, nil)
	b := GenerateWeek("Server", 2, false, nil, nil)

	if !reflect.DeepEqual(a, b) {
		t.Error("expected identical matrices for identical inputs")
	}
}

func TestGenerateWeek_UnknownRoleFallsBack(t *testing.T) {
	m := GenerateWeek("Sommelier", 0, false, nil, nil)

	total := 0
	for d := 0; d < models.DaysPerWeek; d++ {
		for s := 0; s < models.SlotsPerDay; s++ {
			total += m.Days[d][s].Demand
		}
	}
	if total == 0 {
		t.Error("expected nonzero demand for unknown role via default base level")
	}
}

func TestGenerateWeek_OverridePrecedence(t *testing.T) {
	ov := store.NewOverrides()
	ov.Set("Cook", 0, 2, 20, store.OverridePair{Demand: 5, Supply: 3})

	m := GenerateWeek("Cook", 0, false, nil, ov)
	got := m.Days[2][20]
	want := models.Slot{Demand: 5, Supply: 3, Closed: false}
	if got != want {
		t.Errorf("expected override %+v, got %+v", want, got)
	}

	// A (0,0) override is removed and the cell reverts to the baseline.
	ov.Set("Cook", 0, 2, 20, store.OverridePair{})
	if ov.Has("Cook", 0, 2, 20) {
		t.Error("expected (0,0) override to be removed")
	}
	baseline := GenerateWeek("Cook", 0, false, nil, nil)
	reverted := GenerateWeek("Cook", 0, false, nil, ov)
	if reverted.Days[2][20] != baseline.Days[2][20] {
		t.Errorf("expected cell to revert to baseline %+v, got %+v", baseline.Days[2][20], reverted.Days[2][20])
	}
}

func TestGenerateWeek_AnomalyCoversSeverityRange(t *testing.T) {
	m := GenerateWeek("Server", 0, false, nil, nil)

	seen := make(map[int]bool)
	for s := range anomalySlots {
		sl := m.Days[0][s]
		seen[SeverityLevel(sl.Demand, sl.Supply)] = true
	}

	for lvl := -3; lvl <= 3; lvl++ {
		if !seen[lvl] {
			t.Errorf("anomaly fixture missing severity level %d", lvl)
		}
	}
}

func TestWeekStart_MondayAligned(t *testing.T) {
	start := WeekStart(mustDate(t, "2024-01-03"), 0) // a Wednesday
	if got := start.Format("2006-01-02"); got != "2024-01-01" {
		t.Errorf("expected Monday 2024-01-01, got %s", got)
	}

	next := WeekStart(mustDate(t, "2024-01-03"), 1)
	if got := next.Format("2006-01-02"); got != "2024-01-08" {
		t.Errorf("expected next Monday 2024-01-08, got %s", got)
	}
}
