package campaign

import (
	"math"
	"sync"
	"time"

	"github.com/rcalderon/recruitops-api-go/pkg/models"
)

const isoDate = "2006-01-02"

// Planner holds the campaign configuration and the flattened source
// snapshots the allocation model consumes. It is an explicit store object
// (no package-level singleton) so independent simulations never
// cross-contaminate. Every mutation goes through a single merge-patch
// setter, bumps a version counter, and synchronously notifies subscribers;
// consumers treat a notification as "recompute from scratch".
type Planner struct {
	mu        sync.RWMutex
	inputs    models.PlannerInputs
	liveView  bool
	snapshots []models.SourceSnapshot
	version   uint64
	listeners []func()
}

// Patch is a merge-patch for the planner configuration. Nil fields are
// left untouched; the Clear flags unset their pointer counterparts.
type Patch struct {
	StartDate      *string
	ClearStartDate bool
	EndType        *models.EndType
	EndValue       *float64
	ClearEndValue  bool
	DailySpend     *float64
	ConversionRate *float64
	Role           *string
	LiveView       *bool
}

// NewPlanner creates a planner with the default configuration: an unset
// start date, an open-ended date criterion, and live view on.
func NewPlanner() *Planner {
	return &Planner{
		inputs: models.PlannerInputs{
			EndType:        models.EndDate,
			DailySpend:     200,
			ConversionRate: 0.05,
			Role:           "Server",
		},
		liveView: true,
	}
}

// Inputs returns a copy of the current configuration.
func (p *Planner) Inputs() models.PlannerInputs {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.inputs
}

// LiveView reports the global live-view toggle.
func (p *Planner) LiveView() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.liveView
}

// Version returns the monotonically increasing change counter.
func (p *Planner) Version() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.version
}

// Subscribe registers a listener invoked synchronously after every change.
func (p *Planner) Subscribe(fn func()) {
	p.mu.Lock()
	p.listeners = append(p.listeners, fn)
	p.mu.Unlock()
}

// Apply merges a patch into the configuration, clamps numeric fields to
// safe values, and notifies subscribers.
func (p *Planner) Apply(patch Patch) {
	p.mu.Lock()
	if patch.ClearStartDate {
		p.inputs.StartDate = nil
	} else if patch.StartDate != nil {
		if _, err := time.Parse(isoDate, *patch.StartDate); err == nil {
			v := *patch.StartDate
			p.inputs.StartDate = &v
		} else {
			// Corrupted date: treat as unset rather than propagate.
			p.inputs.StartDate = nil
		}
	}
	if patch.EndType != nil {
		switch *patch.EndType {
		case models.EndDate, models.EndHires, models.EndBudget:
			p.inputs.EndType = *patch.EndType
		}
	}
	if patch.ClearEndValue {
		p.inputs.EndValue = nil
	} else if patch.EndValue != nil {
		v := sanitize(*patch.EndValue, 0)
		p.inputs.EndValue = &v
	}
	if patch.DailySpend != nil {
		p.inputs.DailySpend = sanitize(*patch.DailySpend, 0)
	}
	if patch.ConversionRate != nil {
		p.inputs.ConversionRate = math.Min(1, sanitize(*patch.ConversionRate, 0))
	}
	if patch.Role != nil && *patch.Role != "" {
		p.inputs.Role = *patch.Role
	}
	if patch.LiveView != nil {
		p.liveView = *patch.LiveView
	}
	p.clampSpendLocked()
	p.bumpLocked()
	listeners := append([]func(){}, p.listeners...)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// SetSources replaces the flattened source snapshots. The daily spend is
// re-clamped against the new cap so a shrinking source set cannot leave a
// spend level no source can absorb.
func (p *Planner) SetSources(snapshots []models.SourceSnapshot) {
	p.mu.Lock()
	p.snapshots = append([]models.SourceSnapshot{}, snapshots...)
	p.clampSpendLocked()
	p.bumpLocked()
	listeners := append([]func(){}, p.listeners...)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Sources returns a copy of the current snapshots.
func (p *Planner) Sources() []models.SourceSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.SourceSnapshot{}, p.snapshots...)
}

func (p *Planner) bumpLocked() {
	p.version++
}

func (p *Planner) clampSpendLocked() {
	cap := SpendCap(p.snapshots, p.inputs.ConversionRate)
	if p.inputs.DailySpend > cap {
		p.inputs.DailySpend = cap
	}
}

// ApplicantsPerDay is the blended applicants/day across active sources
// under the current daily spend cap.
func (p *Planner) ApplicantsPerDay() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Allocate(p.inputs.DailySpend, p.snapshots, p.inputs.ConversionRate)
}

// HiresPerDay converts the blended applicant rate into hires.
func (p *Planner) HiresPerDay() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Allocate(p.inputs.DailySpend, p.snapshots, p.inputs.ConversionRate) * p.inputs.ConversionRate
}

// MaxDailySpendCap is the maximum dollars/day the active source set can
// absorb; the UI clamps its budget slider to this.
func (p *Planner) MaxDailySpendCap() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return SpendCap(p.snapshots, p.inputs.ConversionRate)
}

// StartTime parses the configured start date. ok is false when unset or
// invalid.
func (p *Planner) StartTime() (time.Time, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.startTimeLocked()
}

func (p *Planner) startTimeLocked() (time.Time, bool) {
	if p.inputs.StartDate == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(isoDate, *p.inputs.StartDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// windowDaysLocked resolves the end criterion into a day count. open
// reports an unset end value (campaign runs until stopped). A zero rate or
// zero spend resolves to a zero-length window, never a crash.
func (p *Planner) windowDaysLocked() (days int, open bool) {
	if p.inputs.EndValue == nil {
		return 0, true
	}
	v := *p.inputs.EndValue
	switch p.inputs.EndType {
	case models.EndDate:
		return int(v), false
	case models.EndHires:
		hpd := Allocate(p.inputs.DailySpend, p.snapshots, p.inputs.ConversionRate) * p.inputs.ConversionRate
		if hpd <= 0 {
			return 0, false
		}
		return int(math.Ceil(v / hpd)), false
	case models.EndBudget:
		if p.inputs.DailySpend <= 0 {
			return 0, false
		}
		return int(math.Ceil(v / p.inputs.DailySpend)), false
	}
	return 0, false
}

// IsScheduledOn reports whether the campaign generates hires on a date:
// the date is at or after the start and inside the window implied by the
// end criterion. The window is half-open, [start, start+days).
func (p *Planner) IsScheduledOn(date time.Time) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isScheduledLocked(date)
}

func (p *Planner) isScheduledLocked(date time.Time) bool {
	start, ok := p.startTimeLocked()
	if !ok {
		return false
	}
	d := midnight(date)
	if d.Before(start) {
		return false
	}
	days, open := p.windowDaysLocked()
	if open {
		return true
	}
	if days <= 0 {
		return false
	}
	return d.Before(start.AddDate(0, 0, days))
}

// IsActiveOn is IsScheduledOn additionally gated by the live-view toggle,
// so the UI can preview "campaign off" without discarding the plan.
func (p *Planner) IsActiveOn(date time.Time) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.liveView && p.isScheduledLocked(date)
}

// DeriveRequest names one end-criterion interpretation to project from.
type DeriveRequest struct {
	StartISO   string
	EndType    models.EndType
	EndValue   *float64
	DailySpend float64
}

// Derive computes the two non-authoritative end criteria plus the absolute
// end date from the one given, using the current applicant/hire rates.
// The math round-trips: feeding a derived value back as the authoritative
// criterion reproduces the others without drift.
func (p *Planner) Derive(req DeriveRequest) models.Derived {
	p.mu.RLock()
	apps := Allocate(sanitize(req.DailySpend, 0), p.snapshots, p.inputs.ConversionRate)
	hpd := apps * p.inputs.ConversionRate
	p.mu.RUnlock()

	spend := sanitize(req.DailySpend, 0)
	start, err := time.Parse(isoDate, req.StartISO)
	if err != nil {
		return models.Derived{Open: true}
	}

	if req.EndValue == nil {
		return models.Derived{Open: true}
	}
	v := sanitize(*req.EndValue, 0)

	var days int
	switch req.EndType {
	case models.EndHires:
		if hpd <= 0 {
			return models.Derived{Open: true}
		}
		days = int(math.Ceil(v / hpd))
	case models.EndBudget:
		if spend <= 0 {
			return models.Derived{Open: true}
		}
		days = int(math.Ceil(v / spend))
	default:
		days = int(v)
	}
	if days < 0 {
		days = 0
	}

	return models.Derived{
		Days:    days,
		Budget:  float64(days) * spend,
		Hires:   float64(days) * hpd,
		EndDate: start.AddDate(0, 0, days).Format(isoDate),
	}
}

func midnight(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// sanitize clamps non-finite or negative values to a default.
func sanitize(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return def
	}
	return v
}
