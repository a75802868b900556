package campaign

import "time"

// Workforce accumulation constants.
const (
	// DailyQuitRate compounds to roughly 10% attrition per 30-day month.
	DailyQuitRate = 0.10 / 30.0
	// OnboardingLagDays is the ramp-up delay: a hire made on day X starts
	// contributing to the stock on day X+OnboardingLagDays.
	OnboardingLagDays = 3
	// hoursPerHireWeek is the labor each accumulated hire contributes.
	hoursPerHireWeek = 30.0
)

// StockAt returns the accumulated workforce stock as of target, given the
// campaign start, a constant hires/day rate, and the scheduled-day
// predicate. Per simulated day the decay is applied first, then that day's
// onboarding-lagged hire contribution; the order is load-bearing and must
// not change.
//
// This is the single shared accumulation routine; every consumer (heatmap
// overlay, line-chart series, long-range aggregation) goes through it or
// through StockSeries.
func StockAt(start, target time.Time, hiresPerDay float64, scheduled func(time.Time) bool) float64 {
	s := midnight(start)
	t := midnight(target)
	if t.Before(s) || scheduled == nil {
		return 0
	}

	stock := 0.0
	for d := s; !d.After(t); d = d.AddDate(0, 0, 1) {
		stock *= 1 - DailyQuitRate
		if hiresPerDay > 0 && scheduled(d.AddDate(0, 0, -OnboardingLagDays)) {
			stock += hiresPerDay
		}
	}
	return stock
}

// StockSeries is the incremental day-stepped variant: one linear sweep
// carrying the running stock forward, O(days) total instead of
// recomputing the full history at every point. Element i is the stock at
// start+i days.
func StockSeries(start time.Time, days int, hiresPerDay float64, scheduled func(time.Time) bool) []float64 {
	if days <= 0 || scheduled == nil {
		return nil
	}
	s := midnight(start)
	series := make([]float64, days)
	stock := 0.0
	for i := 0; i < days; i++ {
		d := s.AddDate(0, 0, i)
		stock *= 1 - DailyQuitRate
		if hiresPerDay > 0 && scheduled(d.AddDate(0, 0, -OnboardingLagDays)) {
			stock += hiresPerDay
		}
		series[i] = stock
	}
	return series
}

// ExtraHalfHours converts a workforce stock (headcount) into extra
// half-hour labor units per day: each hire contributes 30 hours/week.
func ExtraHalfHours(stock float64) float64 {
	return stock * (hoursPerHireWeek / 7.0) * 2
}
