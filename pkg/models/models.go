package models

// SlotsPerDay is the number of half-hour slots in one calendar day.
const SlotsPerDay = 48

// DaysPerWeek is the number of days in a week matrix, Monday first.
const DaysPerWeek = 7

// Slot is one half-hour staffing unit for one role on one day.
// A closed slot always carries demand=0 and supply=0 and is excluded
// from coverage statistics.
type Slot struct {
	Demand int  `json:"demand"`
	Supply int  `json:"supply"`
	Closed bool `json:"closed"`
}

// WeekMatrix is a full week of slots for one role and one week offset.
// Days[0] is Monday; slots run chronologically from 00:00 to 24:00.
type WeekMatrix struct {
	Role       string                         `json:"role"`
	WeekOffset int                            `json:"week_offset"`
	Days       [DaysPerWeek][SlotsPerDay]Slot `json:"days"`
}

// EndType selects which campaign end criterion is authoritative.
type EndType string

const (
	EndDate   EndType = "date"
	EndHires  EndType = "hires"
	EndBudget EndType = "budget"
)

// PlannerInputs is the campaign configuration, matching the persisted shape.
// StartDate is an ISO date (YYYY-MM-DD) or nil when unset; EndValue's meaning
// depends on EndType (days from start, target hires, or cumulative budget).
type PlannerInputs struct {
	StartDate      *string  `json:"start_date"`
	EndType        EndType  `json:"end_type"`
	EndValue       *float64 `json:"end_value"`
	DailySpend     float64  `json:"daily_spend"`
	ConversionRate float64  `json:"conversion_rate"`
	Role           string   `json:"role"`
}

// Derived is the set of mutually-consistent end-criterion projections
// computed from whichever criterion is authoritative.
type Derived struct {
	Days    int     `json:"days"`
	Budget  float64 `json:"budget"`
	Hires   float64 `json:"hires"`
	EndDate string  `json:"end_date"`
	Open    bool    `json:"open_ended"`
}

// SpendModel is the cost-accounting method for an acquisition source.
type SpendModel string

const (
	SpendOrganic     SpendModel = "organic"
	SpendDailyBudget SpendModel = "daily_budget"
	SpendCPC         SpendModel = "cpc"
	SpendCPM         SpendModel = "cpm"
	SpendCPA         SpendModel = "cpa"
	SpendReferral    SpendModel = "referral"
)

// Funnel is the four-stage conversion chain from application to hire.
// Each stage is a percentage in [0, 100].
type Funnel struct {
	AppToInterview    float64 `json:"app_to_interview"`
	InterviewToOffer  float64 `json:"interview_to_offer"`
	OfferToBackground float64 `json:"offer_to_background"`
	BackgroundToHire  float64 `json:"background_to_hire"`
}

// HireRate returns the end-to-end applicant-to-hire fraction.
func (f Funnel) HireRate() float64 {
	return (f.AppToInterview / 100) * (f.InterviewToOffer / 100) *
		(f.OfferToBackground / 100) * (f.BackgroundToHire / 100)
}

// Source is the full editable acquisition-channel record. Cost fields are
// only meaningful for the matching spend model; the rest are ignored.
type Source struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Active               bool       `json:"active"`
	SpendModel           SpendModel `json:"spend_model"`
	Color                string     `json:"color,omitempty"`
	CPC                  float64    `json:"cpc,omitempty"`
	CPM                  float64    `json:"cpm,omitempty"`
	CPABid               float64    `json:"cpa_bid,omitempty"`
	ReferralBonusPerHire float64    `json:"referral_bonus_per_hire,omitempty"`
	DailyBudget          float64    `json:"daily_budget,omitempty"`
	AppsOverride         *float64   `json:"apps_override,omitempty"`
	DailyCapApps         float64    `json:"daily_cap_apps,omitempty"`
	Funnel               Funnel     `json:"funnel"`
	QualityPercent       float64    `json:"quality_percent,omitempty"`
	StartDate            *string    `json:"start_date,omitempty"`
	EndType              EndType    `json:"end_type,omitempty"`
	EndValue             *float64   `json:"end_value,omitempty"`
}

// SourceSnapshot is the flattened shape the allocation model consumes,
// decoupled from the richer editable Source record.
type SourceSnapshot struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Active               bool       `json:"active"`
	SpendModel           SpendModel `json:"spend_model"`
	Color                string     `json:"color,omitempty"`
	CPABid               float64    `json:"cpa_bid"`
	CPC                  float64    `json:"cpc"`
	CPM                  float64    `json:"cpm"`
	DailyBudget          float64    `json:"daily_budget"`
	ReferralBonusPerHire float64    `json:"referral_bonus_per_hire"`
	AppsOverride         *float64   `json:"apps_override,omitempty"`
	DailyCapApps         float64    `json:"daily_cap_apps"`
	Funnel               Funnel     `json:"funnel"`
}

// Snapshot flattens a Source into the consumption shape.
func (s Source) Snapshot() SourceSnapshot {
	return SourceSnapshot{
		ID:                   s.ID,
		Name:                 s.Name,
		Active:               s.Active,
		SpendModel:           s.SpendModel,
		Color:                s.Color,
		CPABid:               s.CPABid,
		CPC:                  s.CPC,
		CPM:                  s.CPM,
		DailyBudget:          s.DailyBudget,
		ReferralBonusPerHire: s.ReferralBonusPerHire,
		AppsOverride:         s.AppsOverride,
		DailyCapApps:         s.DailyCapApps,
		Funnel:               s.Funnel,
	}
}

// SourceKPIs is a single source's theoretical standalone output, shown in
// the source list so it agrees with the aggregate allocation math.
type SourceKPIs struct {
	AppsPerDay  float64 `json:"apps_per_day"`
	HiresPerDay float64 `json:"hires_per_day"`
	CostPerDay  float64 `json:"cost_per_day"`
	CostPerHire float64 `json:"cost_per_hire"`
}

// Zones are ascending coverage-percentage thresholds used to classify a
// coverage value into a 5-band severity for display. They have no effect
// on the simulation math.
type Zones struct {
	LowRed     float64 `json:"lowRed"`
	LowYellow  float64 `json:"lowYellow"`
	HighYellow float64 `json:"highYellow"`
	HighRed    float64 `json:"highRed"`
}

// Band classifies a coverage percentage against the zone thresholds.
func (z Zones) Band(pct float64) string {
	switch {
	case pct < z.LowRed:
		return "severe_under"
	case pct < z.LowYellow:
		return "mild_under"
	case pct <= z.HighYellow:
		return "balanced"
	case pct < z.HighRed:
		return "mild_over"
	default:
		return "severe_over"
	}
}

// WeekSummary aggregates a week matrix for chart consumption.
type WeekSummary struct {
	Role            string               `json:"role"`
	WeekOffset      int                  `json:"week_offset"`
	CoveragePercent float64              `json:"coverage_percent"`
	DemandHours     [DaysPerWeek]float64 `json:"demand_hours"`
	SupplyHours     [DaysPerWeek]float64 `json:"supply_hours"`
	OpenSlots       int                  `json:"open_slots"`
}

// SeriesPoint is one day of the long-range projection series.
type SeriesPoint struct {
	Date            string  `json:"date"`
	Scheduled       bool    `json:"scheduled"`
	Stock           float64 `json:"stock"`
	ExtraHalfHours  float64 `json:"extra_half_hours"`
	CoveragePercent float64 `json:"coverage_percent"`
	CoverageAfter   float64 `json:"coverage_after"`
}
