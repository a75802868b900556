package campaign

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var accStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func always(time.Time) bool { return true }

func TestStockAt_BeforeStartIsZero(t *testing.T) {
	got := StockAt(accStart, accStart.AddDate(0, 0, -1), 2, always)
	assert.Equal(t, 0.0, got)
}

func TestStockAt_OnboardingLag(t *testing.T) {
	// Hires generated only on the start day itself.
	startOnly := func(d time.Time) bool { return d.Equal(accStart) }

	for offset := 0; offset < OnboardingLagDays; offset++ {
		got := StockAt(accStart, accStart.AddDate(0, 0, offset), 2, startOnly)
		assert.Zerof(t, got, "stock must be empty %d days after start", offset)
	}

	// The start-day hire lands exactly lag days later.
	got := StockAt(accStart, accStart.AddDate(0, 0, OnboardingLagDays), 2, startOnly)
	assert.Equal(t, 2.0, got)
}

func TestStockAt_DecayAfterCampaignEnds(t *testing.T) {
	end := accStart.AddDate(0, 0, 10)
	during := func(d time.Time) bool { return !d.Before(accStart) && d.Before(end) }

	series := StockSeries(accStart, 60, 1.5, during)

	// Once the lagged contributions stop, the stock strictly decreases
	// toward zero (geometric decay).
	for i := 10 + OnboardingLagDays; i < 59; i++ {
		assert.Lessf(t, series[i+1], series[i], "stock must decay at day %d", i)
		assert.Positive(t, series[i+1])
	}
}

func TestStockAt_SteadyState(t *testing.T) {
	// Fixed point of x = x(1-q) + h is h/q.
	const hiresPerDay = 1.0
	steady := hiresPerDay / DailyQuitRate

	got := StockAt(accStart, accStart.AddDate(0, 0, 3000), hiresPerDay, always)
	assert.InDelta(t, steady, got, steady*0.001)
}

func TestStockAt_DecayBeforeAddOrdering(t *testing.T) {
	// One scheduled day feeding one lagged contribution: the add happens
	// after the decay, so the first contributing day holds the full rate.
	startOnly := func(d time.Time) bool { return d.Equal(accStart) }
	got := StockAt(accStart, accStart.AddDate(0, 0, OnboardingLagDays), 5, startOnly)
	assert.Equal(t, 5.0, got)

	// One day later the contribution has decayed exactly once.
	next := StockAt(accStart, accStart.AddDate(0, 0, OnboardingLagDays+1), 5, startOnly)
	assert.InDelta(t, 5*(1-DailyQuitRate), next, 1e-12)
}

func TestStockSeries_MatchesStockAt(t *testing.T) {
	series := StockSeries(accStart, 30, 2, always)
	assert.Len(t, series, 30)

	for _, i := range []int{0, 3, 7, 15, 29} {
		direct := StockAt(accStart, accStart.AddDate(0, 0, i), 2, always)
		assert.InDeltaf(t, direct, series[i], 1e-9, "series diverges from direct computation at day %d", i)
	}
}

func TestExtraHalfHours(t *testing.T) {
	// Each hire contributes 30 hours/week: 30/7 hours/day, times two for
	// half-hour units.
	assert.InDelta(t, 60.0, ExtraHalfHours(7), 1e-9)
	assert.Equal(t, 0.0, ExtraHalfHours(0))
}
