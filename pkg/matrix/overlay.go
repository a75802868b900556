package matrix

import (
	"math"

	"github.com/rcalderon/recruitops-api-go/pkg/models"
)

// ApplyOverlay spreads extra half-hour supply units evenly across every
// open slot of a day that has nonzero demand. The spread is count-based:
// each open slot receives the same rounded add regardless of its demand
// share. A day with zero open slots absorbs nothing.
func ApplyOverlay(m *models.WeekMatrix, day int, extraHalfHours float64) {
	if day < 0 || day >= models.DaysPerWeek || extraHalfHours <= 0 || math.IsNaN(extraHalfHours) {
		return
	}

	open := 0
	for s := 0; s < models.SlotsPerDay; s++ {
		sl := m.Days[day][s]
		if !sl.Closed && sl.Demand > 0 {
			open++
		}
	}
	if open == 0 {
		return
	}

	perSlot := int(math.Round(extraHalfHours / float64(open)))
	if perSlot <= 0 {
		return
	}

	for s := 0; s < models.SlotsPerDay; s++ {
		sl := &m.Days[day][s]
		if !sl.Closed && sl.Demand > 0 {
			sl.Supply += perSlot
		}
	}
}

// CoveragePercent is supply over demand for one slot, as a percentage.
// The ratio may exceed 100. Demand is floored at 1 for the arithmetic
// only; callers must still exclude zero-demand slots from averages.
func CoveragePercent(sl models.Slot) float64 {
	return float64(sl.Supply) / math.Max(1, float64(sl.Demand)) * 100
}

// SeverityLevel buckets the signed relative delta (supply-demand)/demand
// into seven levels from -3 (severe understaffing) to +3 (severe
// overstaffing), with band edges at 10/20/30 percent.
func SeverityLevel(demand, supply int) int {
	delta := float64(supply-demand) / math.Max(1, float64(demand))
	switch {
	case delta <= -0.30:
		return -3
	case delta <= -0.20:
		return -2
	case delta <= -0.10:
		return -1
	case delta >= 0.30:
		return 3
	case delta >= 0.20:
		return 2
	case delta >= 0.10:
		return 1
	default:
		return 0
	}
}

// Summarize computes the aggregate statistics the charts consume: average
// coverage over open slots with nonzero demand, and per-day person-hours
// (each slot unit is half an hour) on both the demand and supply side.
func Summarize(m *models.WeekMatrix) models.WeekSummary {
	sum := models.WeekSummary{Role: m.Role, WeekOffset: m.WeekOffset}

	covSum := 0.0
	covN := 0
	for d := 0; d < models.DaysPerWeek; d++ {
		for s := 0; s < models.SlotsPerDay; s++ {
			sl := m.Days[d][s]
			if sl.Closed {
				continue
			}
			sum.OpenSlots++
			sum.DemandHours[d] += float64(sl.Demand) * 0.5
			sum.SupplyHours[d] += float64(sl.Supply) * 0.5
			if sl.Demand > 0 {
				covSum += CoveragePercent(sl)
				covN++
			}
		}
	}
	if covN > 0 {
		sum.CoveragePercent = covSum / float64(covN)
	}
	return sum
}

// DayCoveragePercent averages coverage across one day's open nonzero-demand
// slots. Returns 0 when the day has no such slots.
func DayCoveragePercent(m *models.WeekMatrix, day int) float64 {
	if day < 0 || day >= models.DaysPerWeek {
		return 0
	}
	covSum := 0.0
	covN := 0
	for s := 0; s < models.SlotsPerDay; s++ {
		sl := m.Days[day][s]
		if sl.Closed || sl.Demand == 0 {
			continue
		}
		covSum += CoveragePercent(sl)
		covN++
	}
	if covN == 0 {
		return 0
	}
	return covSum / float64(covN)
}
