package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rcalderon/recruitops-api-go/pkg/campaign"
	"github.com/rcalderon/recruitops-api-go/pkg/matrix"
	"github.com/rcalderon/recruitops-api-go/pkg/models"
	"github.com/rcalderon/recruitops-api-go/pkg/store"
)

func seededSim() *Sim {
	s := New()
	s.Sources.SeedDefaults()
	return s
}

func TestSeedingPushesSnapshotsToPlanner(t *testing.T) {
	s := seededSim()
	assert.Greater(t, s.Planner.MaxDailySpendCap(), 0.0)
	assert.Greater(t, s.Planner.ApplicantsPerDay(), 0.0)
}

func TestWeekIsMemoized(t *testing.T) {
	s := seededSim()
	first := s.Week("Server", 0, false)
	second := s.Week("Server", 0, false)
	assert.Same(t, first, second)
}

func TestOverrideChangeInvalidatesWeek(t *testing.T) {
	s := seededSim()
	before := s.Week("Server", 1, false)
	s.Overrides.Set("Server", 1, 2, 20, store.OverridePair{Demand: 9, Supply: 9})
	after := s.Week("Server", 1, false)

	assert.NotSame(t, before, after)
	assert.Equal(t, 9, after.Days[2][20].Demand)
	assert.Equal(t, 9, after.Days[2][20].Supply)
}

func TestPlannerChangeInvalidatesWeek(t *testing.T) {
	s := seededSim()
	before := s.Week("Server", 0, true)
	spend := 75.0
	s.Planner.Apply(campaign.Patch{DailySpend: &spend})
	after := s.Week("Server", 0, true)
	assert.NotSame(t, before, after)
}

func TestCampaignOverlayAddsSupply(t *testing.T) {
	s := seededSim()

	// Open-ended campaign for Cook starting at the top of the current
	// schedule window, with a conversion rate high enough to build stock
	// well past the onboarding lag within the displayed week.
	start := matrix.WeekStart(time.Now(), 0).Format("2006-01-02")
	conv := 1.0
	role := "Cook"
	s.Planner.Apply(campaign.Patch{
		StartDate:      &start,
		ClearEndValue:  true,
		ConversionRate: &conv,
		Role:           &role,
	})

	plain := s.Week("Cook", 1, false)
	boosted := s.Week("Cook", 1, true)

	plainSupply, boostedSupply := 0, 0
	for d := 0; d < models.DaysPerWeek; d++ {
		for sl := 0; sl < models.SlotsPerDay; sl++ {
			plainSupply += plain.Days[d][sl].Supply
			boostedSupply += boosted.Days[d][sl].Supply
		}
	}
	assert.Greater(t, boostedSupply, plainSupply)
}

func TestOverlayTargetsRoleOnly(t *testing.T) {
	s := seededSim()
	start := matrix.WeekStart(time.Now(), 0).Format("2006-01-02")
	conv := 1.0
	role := "Cook"
	s.Planner.Apply(campaign.Patch{
		StartDate:      &start,
		ClearEndValue:  true,
		ConversionRate: &conv,
		Role:           &role,
	})

	plain := s.Week("Server", 1, false)
	withCampaign := s.Week("Server", 1, true)
	for d := 0; d < models.DaysPerWeek; d++ {
		for sl := 0; sl < models.SlotsPerDay; sl++ {
			assert.Equal(t, plain.Days[d][sl].Supply, withCampaign.Days[d][sl].Supply)
		}
	}
}

func TestSeriesShapeAndFlags(t *testing.T) {
	s := seededSim()
	start := matrix.WeekStart(time.Now(), 0).Format("2006-01-02")
	days := 10.0
	spend := 100.0
	endDate := models.EndDate
	s.Planner.Apply(campaign.Patch{
		StartDate:  &start,
		EndType:    &endDate,
		EndValue:   &days,
		DailySpend: &spend,
	})

	points := s.Series("Server", 14)
	assert.Len(t, points, 14)
	assert.Equal(t, start, points[0].Date)
	assert.True(t, points[0].Scheduled)
	assert.False(t, points[13].Scheduled)

	// Stock stays at zero through the onboarding lag, then accumulates.
	assert.Zero(t, points[0].Stock)
	assert.Greater(t, points[9].Stock, 0.0)
}

func TestSeriesRejectsNonPositiveDays(t *testing.T) {
	s := seededSim()
	assert.Nil(t, s.Series("Server", 0))
	assert.Nil(t, s.Series("Server", -3))
}
