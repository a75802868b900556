package sim

import (
	"time"

	"github.com/rcalderon/recruitops-api-go/pkg/campaign"
	"github.com/rcalderon/recruitops-api-go/pkg/matrix"
	"github.com/rcalderon/recruitops-api-go/pkg/metrics"
	"github.com/rcalderon/recruitops-api-go/pkg/models"
	"github.com/rcalderon/recruitops-api-go/pkg/store"
)

// Sim binds the planner, source list, override store, and zone store into
// one consistent simulation: every view derived from a Sim instance reads
// the same versions of the same stores. Instances are independent, so
// tests can run simulations side by side without cross-contamination.
type Sim struct {
	Planner   *campaign.Planner
	Sources   *campaign.SourceList
	Overrides *store.Overrides
	Zones     *store.ZoneStore

	cache *matrix.Cache
}

// New wires an empty simulation. The source list is seeded separately so
// hydration from storage can install persisted records first.
func New() *Sim {
	s := &Sim{
		Planner:   campaign.NewPlanner(),
		Sources:   campaign.NewSourceList(),
		Overrides: store.NewOverrides(),
		Zones:     store.NewZoneStore(),
		cache:     matrix.NewCache(256),
	}
	// Keep the planner's flattened snapshots in sync with the editable list.
	s.Sources.Subscribe(func() {
		s.Planner.SetSources(s.Sources.Snapshots())
	})
	return s
}

// Overlay builds the campaign overlay the generator consumes: the target
// role, the active-day predicate, and a per-date extra-supply function
// backed by the shared accumulation routine.
func (s *Sim) Overlay() *matrix.CampaignOverlay {
	in := s.Planner.Inputs()
	hpd := s.Planner.HiresPerDay()
	start, hasStart := s.Planner.StartTime()

	return &matrix.CampaignOverlay{
		Role:        in.Role,
		HasSpend:    in.DailySpend > 0,
		ScheduledOn: s.Planner.IsActiveOn,
		ExtraHalfHours: func(date time.Time) float64 {
			if !hasStart {
				return 0
			}
			stock := campaign.StockAt(start, date, hpd, s.Planner.IsScheduledOn)
			return campaign.ExtraHalfHours(stock)
		},
	}
}

// Week returns the (possibly campaign-overlaid) matrix for a role and
// week offset, memoized by a composite key of the inputs plus the
// override and planner versions so a store change invalidates exactly the
// derived state and nothing has to be diffed.
func (s *Sim) Week(role string, weekOffset int, withCampaign bool) *models.WeekMatrix {
	key := matrix.Key{
		Role:            role,
		Week:            weekOffset,
		Campaign:        withCampaign,
		OverrideVersion: s.Overrides.Version(),
		PlanVersion:     s.Planner.Version(),
	}
	if m, ok := s.cache.Get(key); ok {
		metrics.MatrixCacheHits.Inc()
		return m
	}
	metrics.MatrixCacheMisses.Inc()

	var overlay *matrix.CampaignOverlay
	if withCampaign {
		overlay = s.Overlay()
	}
	m := matrix.GenerateWeek(role, weekOffset, withCampaign, overlay, s.Overrides)
	metrics.MatricesGenerated.Inc()

	sum := matrix.Summarize(m)
	metrics.DemandHalfHours.Set(sumHours(sum.DemandHours) * 2)
	metrics.SupplyHalfHours.Set(sumHours(sum.SupplyHours) * 2)
	metrics.CoveragePercent.Set(sum.CoveragePercent)

	s.cache.Put(key, m)
	return m
}

// Summary aggregates one week for chart consumption.
func (s *Sim) Summary(role string, weekOffset int, withCampaign bool) models.WeekSummary {
	return matrix.Summarize(s.Week(role, weekOffset, withCampaign))
}

// Series builds the day-stepped long-range projection over days starting
// at the campaign start (or today when unset): workforce stock, extra
// half-hours, and before/after day coverage. One linear sweep carries the
// stock forward.
func (s *Sim) Series(role string, days int) []models.SeriesPoint {
	if days <= 0 {
		return nil
	}
	start, ok := s.Planner.StartTime()
	if !ok {
		start = time.Now().UTC()
	}
	hpd := s.Planner.HiresPerDay()
	stocks := campaign.StockSeries(start, days, hpd, s.Planner.IsScheduledOn)

	points := make([]models.SeriesPoint, days)
	base := matrix.WeekStart(time.Now(), 0)
	for i := 0; i < days; i++ {
		date := midnight(start).AddDate(0, 0, i)

		// Locate the (week offset, day) cell this date falls in.
		offsetDays := int(date.Sub(base).Hours() / 24)
		week := offsetDays / 7
		day := offsetDays % 7
		if day < 0 {
			day += 7
			week--
		}

		before := matrix.DayCoveragePercent(s.Week(role, week, false), day)
		after := matrix.DayCoveragePercent(s.Week(role, week, true), day)

		points[i] = models.SeriesPoint{
			Date:            date.Format("2006-01-02"),
			Scheduled:       s.Planner.IsScheduledOn(date),
			Stock:           stocks[i],
			ExtraHalfHours:  campaign.ExtraHalfHours(stocks[i]),
			CoveragePercent: before,
			CoverageAfter:   after,
		}
	}
	return points
}

// Warm prefetches the matrices of the weeks adjacent to weekOffset during
// idle time. Pure latency optimization; skipping it changes nothing.
func (s *Sim) Warm(role string, weekOffset int) {
	for _, w := range []int{weekOffset - 1, weekOffset + 1} {
		s.Week(role, w, false)
		s.Week(role, w, true)
	}
}

func sumHours(hours [models.DaysPerWeek]float64) float64 {
	total := 0.0
	for _, h := range hours {
		total += h
	}
	return total
}

func midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
