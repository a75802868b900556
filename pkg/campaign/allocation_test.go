package campaign

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcalderon/recruitops-api-go/pkg/models"
)

func fptr(v float64) *float64 { return &v }

func cpcSource(budget float64) models.SourceSnapshot {
	return models.SourceSnapshot{
		ID: "cpc-1", Name: "Social Ads", Active: true,
		SpendModel: models.SpendCPC, CPC: 2, DailyBudget: budget,
	}
}

func TestAllocate_CPCExample(t *testing.T) {
	// 100 / 2 = 50 clicks, 12% apply -> 6 applications.
	apps := Allocate(100, []models.SourceSnapshot{cpcSource(100)}, 0.05)
	assert.Equal(t, 6.0, apps)
}

func TestAllocate_ThresholdAllOrNothing(t *testing.T) {
	src := models.SourceSnapshot{
		ID: "board-1", Active: true,
		SpendModel: models.SpendDailyBudget, DailyBudget: 300,
	}

	// A $300/day source funded from a $250 cap contributes nothing.
	assert.Equal(t, 0.0, Allocate(250, []models.SourceSnapshot{src}, 0.05))
	// At $300 it is fully funded: 300 * 10% = 30 applications.
	assert.Equal(t, 30.0, Allocate(300, []models.SourceSnapshot{src}, 0.05))
}

func TestAllocate_OrganicIgnoresCap(t *testing.T) {
	src := models.SourceSnapshot{
		ID: "organic-1", Active: true,
		SpendModel: models.SpendOrganic, AppsOverride: fptr(4),
	}
	assert.Equal(t, 4.0, Allocate(0, []models.SourceSnapshot{src}, 0.05))
}

func TestAllocate_InactiveContributesNothing(t *testing.T) {
	src := cpcSource(100)
	src.Active = false
	assert.Equal(t, 0.0, Allocate(100, []models.SourceSnapshot{src}, 0.05))
}

func TestAllocate_ReferralCappedByOverride(t *testing.T) {
	src := models.SourceSnapshot{
		ID: "ref-1", Active: true,
		SpendModel:           models.SpendReferral,
		ReferralBonusPerHire: 250,
		AppsOverride:         fptr(2),
	}

	// Ceiling = 250 * 2 * 0.04 = $20/day, so a large cap still yields 2 apps.
	assert.Equal(t, 2.0, Allocate(1000, []models.SourceSnapshot{src}, 0.04))
}

func TestAllocate_DailyCapApps(t *testing.T) {
	src := cpcSource(100)
	src.DailyCapApps = 4
	assert.Equal(t, 4.0, Allocate(100, []models.SourceSnapshot{src}, 0.05))
}

func TestAllocate_InvalidCostFallsBack(t *testing.T) {
	src := cpcSource(100)
	src.CPC = 0 // invalid, defaults to 2.0
	assert.Equal(t, 6.0, Allocate(100, []models.SourceSnapshot{src}, 0.05))
}

func TestAllocate_CheaperSourcesFundedFirst(t *testing.T) {
	cheap := models.SourceSnapshot{
		ID: "cpa-cheap", Active: true,
		SpendModel: models.SpendCPA, CPABid: 10, DailyBudget: 100,
	}
	pricey := models.SourceSnapshot{
		ID: "cpa-pricey", Active: true,
		SpendModel: models.SpendCPA, CPABid: 50, DailyBudget: 100,
	}

	// $100 cap covers only the cheap source: 100 / 10 = 10 apps.
	apps := Allocate(100, []models.SourceSnapshot{pricey, cheap}, 0.05)
	assert.Equal(t, 10.0, apps)
}

func TestAllocate_MonotonicInSpend(t *testing.T) {
	sources := []models.SourceSnapshot{
		{ID: "a", Active: true, SpendModel: models.SpendOrganic, AppsOverride: fptr(3)},
		{ID: "b", Active: true, SpendModel: models.SpendDailyBudget, DailyBudget: 120},
		cpcSource(100),
		{ID: "d", Active: true, SpendModel: models.SpendCPA, CPABid: 25, DailyBudget: 150},
		{ID: "e", Active: true, SpendModel: models.SpendReferral, ReferralBonusPerHire: 250, AppsOverride: fptr(2)},
	}

	prev := -1.0
	for spend := 0.0; spend <= 1000; spend += 25 {
		apps := Allocate(spend, sources, 0.05)
		assert.GreaterOrEqualf(t, apps, prev, "apps dropped at spend %.0f", spend)
		prev = apps
	}
}

func TestAllocate_NoSources(t *testing.T) {
	assert.Equal(t, 0.0, Allocate(500, nil, 0.05))
	assert.Equal(t, 0.0, SpendCap(nil, 0.05))
}

func TestSpendCap_SumsCeilings(t *testing.T) {
	sources := []models.SourceSnapshot{
		{ID: "a", Active: true, SpendModel: models.SpendOrganic, AppsOverride: fptr(3)}, // absorbs nothing
		{ID: "b", Active: true, SpendModel: models.SpendDailyBudget, DailyBudget: 120},
		cpcSource(100),
		{ID: "e", Active: true, SpendModel: models.SpendReferral, ReferralBonusPerHire: 250, AppsOverride: fptr(2)},
	}

	// 120 + 100 + (250 * 2 * 0.04) = 240
	assert.InDelta(t, 240, SpendCap(sources, 0.04), 1e-9)
}

func TestDeriveKPIs_MatchesAllocatorConstants(t *testing.T) {
	src := models.Source{
		ID: "cpc-1", Name: "Social Ads", Active: true,
		SpendModel: models.SpendCPC, CPC: 2, DailyBudget: 100,
		Funnel: models.Funnel{
			AppToInterview:    30,
			InterviewToOffer:  40,
			OfferToBackground: 80,
			BackgroundToHire:  90,
		},
		QualityPercent: 80,
	}

	kpis := DeriveKPIs(src, 0.05)
	assert.Equal(t, 6.0, kpis.AppsPerDay) // same constants as the allocator
	assert.InDelta(t, 6*0.0864*0.8, kpis.HiresPerDay, 1e-9)
	assert.Equal(t, 100.0, kpis.CostPerDay)
	assert.InDelta(t, 100/(6*0.0864*0.8), kpis.CostPerHire, 1e-6)
}

func TestDeriveKPIs_Organic(t *testing.T) {
	src := models.Source{
		ID: "org-1", Active: true,
		SpendModel:   models.SpendOrganic,
		AppsOverride: fptr(4),
		Funnel:       models.Funnel{AppToInterview: 100, InterviewToOffer: 100, OfferToBackground: 100, BackgroundToHire: 100},
	}

	kpis := DeriveKPIs(src, 0.05)
	assert.Equal(t, 4.0, kpis.AppsPerDay)
	assert.Equal(t, 0.0, kpis.CostPerDay)
	assert.Equal(t, 0.0, kpis.CostPerHire)
}
