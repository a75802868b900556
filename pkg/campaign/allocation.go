package campaign

import (
	"math"
	"sort"

	"github.com/rcalderon/recruitops-api-go/pkg/models"
)

// Efficiency constants shared by the allocator and the per-source KPI
// derivation. The two must never disagree, or the source list and the
// aggregate rate drift apart.
const (
	cpmClickThroughRate = 0.015 // clicks per impression
	cpcApplyRate        = 0.12  // applications per click (cpc)
	budgetApplyRate     = 0.10  // applications per click / per funded dollar (cpm, daily_budget)
)

// Defaults substituted for invalid (non-finite or non-positive) cost
// fields so bad input never propagates NaN through the pipeline.
const (
	defaultCPC           = 2.0
	defaultCPM           = 12.0
	defaultCPABid        = 25.0
	defaultReferralBonus = 250.0
	defaultSpendCeiling  = 500.0 // per-day ceiling for scalable sources with no budget
)

// Allocate distributes a capped daily spend across the active sources and
// returns the blended applicants/day. Two-tier greedy, order-sensitive:
//
//  1. Organic sources contribute their pinned apps_override regardless of
//     the cap; they consume no budget.
//  2. Threshold sources (flat daily_budget) are sorted by effective
//     cost-per-application and funded all-or-nothing: a source whose full
//     budget does not fit in the remaining cap gets zero.
//  3. Scalable sources (referral, cpc, cpm, cpa) are sorted by effective
//     cost-per-application and funded greedily up to min(remaining cap,
//     source ceiling).
//
// Each source's contribution is rounded to the nearest integer before
// summing, which keeps the result exactly reproducible.
func Allocate(dailySpendCap float64, sources []models.SourceSnapshot, conversionRate float64) float64 {
	remaining := sanitize(dailySpendCap, 0)
	conv := sanitize(conversionRate, 0)

	total := 0.0

	var threshold, scalable []models.SourceSnapshot
	for _, s := range sources {
		if !s.Active {
			continue
		}
		switch s.SpendModel {
		case models.SpendOrganic:
			apps := 0.0
			if s.AppsOverride != nil {
				apps = sanitize(*s.AppsOverride, 0)
			}
			total += math.Round(capApps(s, apps))
		case models.SpendDailyBudget:
			threshold = append(threshold, s)
		case models.SpendReferral, models.SpendCPC, models.SpendCPM, models.SpendCPA:
			scalable = append(scalable, s)
		}
	}

	sortByCostPerApp(threshold, conv)
	for _, s := range threshold {
		budget := sanitize(s.DailyBudget, 0)
		if budget <= 0 || budget > remaining {
			continue
		}
		remaining -= budget
		total += math.Round(capApps(s, modelApps(s, budget, conv)))
	}

	sortByCostPerApp(scalable, conv)
	for _, s := range scalable {
		ceiling := spendCeiling(s, conv)
		spend := math.Min(remaining, ceiling)
		if spend <= 0 {
			continue
		}
		remaining -= spend
		total += math.Round(capApps(s, modelApps(s, spend, conv)))
	}

	return total
}

// SpendCap is the maximum dollars/day the active source set can absorb:
// the sum of source-level spend ceilings. Organic sources absorb nothing.
func SpendCap(sources []models.SourceSnapshot, conversionRate float64) float64 {
	conv := sanitize(conversionRate, 0)
	cap := 0.0
	for _, s := range sources {
		if !s.Active {
			continue
		}
		switch s.SpendModel {
		case models.SpendDailyBudget:
			cap += sanitize(s.DailyBudget, 0)
		case models.SpendReferral, models.SpendCPC, models.SpendCPM, models.SpendCPA:
			cap += spendCeiling(s, conv)
		}
	}
	return cap
}

// spendCeiling is the most a scalable source can usefully absorb per day.
// Referral sources are bounded by bounty x pinned apps x conversion; the
// click/impression models by their configured daily budget.
func spendCeiling(s models.SourceSnapshot, conv float64) float64 {
	if s.SpendModel == models.SpendReferral {
		if s.AppsOverride == nil || conv <= 0 {
			return 0
		}
		return sanitizePos(s.ReferralBonusPerHire, defaultReferralBonus) * sanitize(*s.AppsOverride, 0) * conv
	}
	if b := sanitize(s.DailyBudget, 0); b > 0 {
		return b
	}
	return defaultSpendCeiling
}

// costPerApp is the effective cost of one application under a source's
// model, used only for greedy ordering.
func costPerApp(s models.SourceSnapshot, conv float64) float64 {
	switch s.SpendModel {
	case models.SpendDailyBudget:
		b := sanitize(s.DailyBudget, 0)
		if s.AppsOverride != nil && *s.AppsOverride > 0 {
			return b / *s.AppsOverride
		}
		return 1 / budgetApplyRate
	case models.SpendCPC:
		return sanitizePos(s.CPC, defaultCPC) / cpcApplyRate
	case models.SpendCPM:
		return sanitizePos(s.CPM, defaultCPM) / (1000 * cpmClickThroughRate * budgetApplyRate)
	case models.SpendCPA:
		return sanitizePos(s.CPABid, defaultCPABid)
	case models.SpendReferral:
		if conv <= 0 {
			return math.Inf(1)
		}
		return sanitizePos(s.ReferralBonusPerHire, defaultReferralBonus) * conv
	}
	return math.Inf(1)
}

// modelApps converts funded spend into applications/day for one source.
// A pinned apps_override short-circuits the model's own volume estimate
// while the budget share stays proportional to the funded fraction.
func modelApps(s models.SourceSnapshot, spend, conv float64) float64 {
	if s.SpendModel != models.SpendReferral && s.AppsOverride != nil {
		ceiling := spendCeiling(s, conv)
		if ceiling <= 0 {
			return 0
		}
		return sanitize(*s.AppsOverride, 0) * (spend / ceiling)
	}

	switch s.SpendModel {
	case models.SpendDailyBudget:
		return spend * budgetApplyRate
	case models.SpendCPC:
		clicks := spend / sanitizePos(s.CPC, defaultCPC)
		return clicks * cpcApplyRate
	case models.SpendCPM:
		impressions := spend / sanitizePos(s.CPM, defaultCPM) * 1000
		return impressions * cpmClickThroughRate * budgetApplyRate
	case models.SpendCPA:
		return spend / sanitizePos(s.CPABid, defaultCPABid)
	case models.SpendReferral:
		if conv <= 0 {
			return 0
		}
		apps := spend / (sanitizePos(s.ReferralBonusPerHire, defaultReferralBonus) * conv)
		if s.AppsOverride != nil {
			apps = math.Min(apps, sanitize(*s.AppsOverride, 0))
		}
		return apps
	}
	return 0
}

func capApps(s models.SourceSnapshot, apps float64) float64 {
	if s.DailyCapApps > 0 {
		return math.Min(apps, s.DailyCapApps)
	}
	return apps
}

// sortByCostPerApp orders ascending by effective cost-per-application,
// breaking ties by ID so the allocation is deterministic.
func sortByCostPerApp(sources []models.SourceSnapshot, conv float64) {
	sort.SliceStable(sources, func(i, j int) bool {
		ci, cj := costPerApp(sources[i], conv), costPerApp(sources[j], conv)
		if ci != cj {
			return ci < cj
		}
		return sources[i].ID < sources[j].ID
	})
}

// DeriveKPIs mirrors the per-model formulas for one source in isolation
// (full standalone funding, no cross-source competition) so the editor can
// show a source's theoretical output with the same constants the
// allocator uses.
func DeriveKPIs(src models.Source, conversionRate float64) models.SourceKPIs {
	s := src.Snapshot()
	conv := sanitize(conversionRate, 0)

	spend := 0.0
	switch s.SpendModel {
	case models.SpendOrganic:
		spend = 0
	default:
		spend = spendCeiling(s, conv)
		if s.SpendModel == models.SpendDailyBudget {
			spend = sanitize(s.DailyBudget, 0)
		}
	}

	apps := 0.0
	if s.SpendModel == models.SpendOrganic {
		if s.AppsOverride != nil {
			apps = sanitize(*s.AppsOverride, 0)
		}
	} else {
		apps = modelApps(s, spend, conv)
	}
	apps = math.Round(capApps(s, apps))

	quality := sanitizePos(src.QualityPercent, 100) / 100
	hires := apps * src.Funnel.HireRate() * quality

	kpis := models.SourceKPIs{
		AppsPerDay:  apps,
		HiresPerDay: hires,
		CostPerDay:  spend,
	}
	if hires > 0 {
		kpis.CostPerHire = spend / hires
	}
	return kpis
}

// sanitizePos clamps non-finite or non-positive values to a default.
func sanitizePos(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return def
	}
	return v
}
