package matrix

import (
	"hash/fnv"
	"math"
	"time"

	"github.com/rcalderon/recruitops-api-go/pkg/models"
)

// OverrideSource resolves a user-edited (demand, supply) pair for a slot.
// Overrides always win over generated values and are applied last.
type OverrideSource interface {
	Get(role string, week, day, slot int) (demand, supply int, ok bool)
}

// CampaignOverlay describes an active recruiting campaign so the generator
// can inject its extra supply. ScheduledOn answers whether hires were being
// generated on a date; ExtraHalfHours is the accumulated workforce stock of
// a date expressed in half-hour labor units per day.
type CampaignOverlay struct {
	Role           string
	HasSpend       bool
	ScheduledOn    func(time.Time) bool
	ExtraHalfHours func(time.Time) float64
}

// Role base demand levels per open slot before curves are applied.
var roleBaseLevels = map[string]float64{
	"Server":     9,
	"Cook":       7,
	"Bartender":  5,
	"Host":       4,
	"Dishwasher": 3,
	"Manager":    2,
}

// defaultBaseLevel is used for roles not in the table.
const defaultBaseLevel = 5

// highTurnoverRoles lose headcount week over week via the attrition factor.
var highTurnoverRoles = map[string]bool{
	"Server":     true,
	"Host":       true,
	"Dishwasher": true,
}

// Demo anomaly: fixed (demand, supply) cells for role=Server, week 0,
// Monday, chosen to exercise the full -3..+3 severity range.
var anomalySlots = map[int][2]int{
	22: {10, 6},  // -40% -> -3
	24: {8, 6},   // -25% -> -2
	26: {20, 17}, // -15% -> -1
	28: {10, 10}, // balanced
	30: {20, 23}, // +15% -> +1
	32: {20, 25}, // +25% -> +2
	34: {10, 14}, // +40% -> +3
}

// WeekStart returns the Monday-aligned start of the week containing now,
// shifted by weekOffset weeks, at midnight UTC.
func WeekStart(now time.Time, weekOffset int) time.Time {
	n := now.UTC()
	day := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
	wd := int(day.Weekday()) // Sunday = 0
	back := (wd + 6) % 7     // days since Monday
	return day.AddDate(0, 0, -back+7*weekOffset)
}

// GenerateWeek produces the baseline week of staffing data for a role and
// week offset. The result is deterministic for fixed inputs: the noise is a
// seeded sinusoidal hash keyed by (role hash, day, slot), so overlapping
// views agree without sharing a random seed. When withCampaign is set and
// the overlay targets this role, scheduled days receive the campaign's
// extra supply; stored overrides are applied as the final step.
func GenerateWeek(role string, weekOffset int, withCampaign bool, overlay *CampaignOverlay, overrides OverrideSource) *models.WeekMatrix {
	m := &models.WeekMatrix{Role: role, WeekOffset: weekOffset}

	base, known := roleBaseLevels[role]
	if !known {
		base = defaultBaseLevel
	}
	seed := roleHash(role)
	weekStart := WeekStart(time.Now(), weekOffset)

	campaign := withCampaign && overlay != nil && overlay.Role == role
	attr := attritionFactor(role, weekOffset, campaign && campaignBump(overlay, weekStart))

	for d := 0; d < models.DaysPerWeek; d++ {
		weekend := d >= 5
		openStart, openEnd := openWindow(weekend)
		wkMult := 1.0
		if weekend {
			wkMult = 1.3
		}
		drift := weeklyPhaseDrift(seed, weekOffset)

		for s := 0; s < models.SlotsPerDay; s++ {
			hour := float64(s) / 2
			if s < openStart || s >= openEnd {
				m.Days[d][s] = models.Slot{Closed: true}
				continue
			}

			demand := base * drift * mealCurve(hour) * wkMult * (0.90 + 0.20*noise(seed, d, s, 0))
			di := int(math.Round(demand))
			if di < 0 {
				di = 0
			}

			sinceOpen := hour - float64(openStart)/2
			supply := float64(di) * staffingCurve(sinceOpen) * attr * (0.85 + 0.30*noise(seed, d, s, 1))
			si := int(math.Round(supply))
			if si < 0 {
				si = 0
			}

			m.Days[d][s] = models.Slot{Demand: di, Supply: si}
		}
	}

	if role == "Server" && weekOffset == 0 {
		for s, pair := range anomalySlots {
			m.Days[0][s] = models.Slot{Demand: pair[0], Supply: pair[1]}
		}
	}

	if campaign {
		for d := 0; d < models.DaysPerWeek; d++ {
			date := weekStart.AddDate(0, 0, d)
			if overlay.ScheduledOn != nil && overlay.ScheduledOn(date) && overlay.ExtraHalfHours != nil {
				ApplyOverlay(m, d, overlay.ExtraHalfHours(date))
			}
		}
	}

	if overrides != nil {
		for d := 0; d < models.DaysPerWeek; d++ {
			for s := 0; s < models.SlotsPerDay; s++ {
				if dem, sup, ok := overrides.Get(role, weekOffset, d, s); ok {
					m.Days[d][s] = models.Slot{Demand: dem, Supply: sup}
				}
			}
		}
	}

	return m
}

// openWindow returns the half-open slot range during which the business
// operates: weekdays 08:00-20:00, weekends 10:00-22:00.
func openWindow(weekend bool) (int, int) {
	if weekend {
		return 20, 44
	}
	return 16, 40
}

func roleHash(role string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(role))
	return h.Sum32()
}

// noise is a hash-like sinusoidal pseudo-random generator in [0, 1).
func noise(seed uint32, day, slot, salt int) float64 {
	n := float64(seed%977)*0.0137 + float64(day)*78.233 + float64(slot)*12.9898 + float64(salt)*37.719
	v := math.Sin(n) * 43758.5453
	return v - math.Floor(v)
}

// weeklyPhaseDrift wobbles the base level slowly across week offsets so
// adjacent weeks are similar but not identical.
func weeklyPhaseDrift(seed uint32, week int) float64 {
	return 1 + 0.08*math.Sin(float64(week)*0.9+float64(seed%7))
}

// mealCurve blends Gaussian bumps at lunch (12:00, weight 0.7) and dinner
// (19:00, weight 1.0) on top of a flat base.
func mealCurve(hour float64) float64 {
	return 1 + 0.7*gauss(hour, 12, 1.5) + 1.0*gauss(hour, 19, 1.8)
}

func gauss(x, center, sigma float64) float64 {
	d := x - center
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}

// staffingCurve is the baseline staffing multiplier over hours since
// opening: ramps up in the first two hours, dips mid-afternoon, recovers
// toward close.
func staffingCurve(sinceOpen float64) float64 {
	switch {
	case sinceOpen < 1:
		return 0.70
	case sinceOpen < 2:
		return 0.85
	case sinceOpen < 5:
		return 1.00
	case sinceOpen < 8:
		return 0.82
	case sinceOpen < 10:
		return 0.90
	default:
		return 0.95
	}
}

// attritionFactor models single-role headcount loss over successive weeks
// for the high-turnover roles, clamped to [0, 1.25]. The +0.10 bump applies
// when a campaign with nonzero spend is actively contributing supply for
// this exact role during this week.
func attritionFactor(role string, week int, campaignBump bool) float64 {
	f := 1.0
	if highTurnoverRoles[role] {
		f = 1 - 0.04*float64(week)
	}
	if campaignBump {
		f += 0.10
	}
	return math.Min(1.25, math.Max(0, f))
}

// campaignBump reports whether any day of the week starting at weekStart is
// a scheduled campaign day with spend behind it.
func campaignBump(overlay *CampaignOverlay, weekStart time.Time) bool {
	if overlay == nil || !overlay.HasSpend || overlay.ScheduledOn == nil {
		return false
	}
	for d := 0; d < models.DaysPerWeek; d++ {
		if overlay.ScheduledOn(weekStart.AddDate(0, 0, d)) {
			return true
		}
	}
	return false
}
