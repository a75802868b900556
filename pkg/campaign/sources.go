package campaign

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rcalderon/recruitops-api-go/pkg/models"
)

// SourceList holds the editable acquisition-source records. The richer
// records live here; the allocation model only ever sees the flattened
// snapshots, which the owner pushes into the planner on every change.
type SourceList struct {
	mu        sync.RWMutex
	sources   []models.Source
	version   uint64
	listeners []func()
}

// NewSourceList creates an empty source list.
func NewSourceList() *SourceList {
	return &SourceList{}
}

// defaultFunnel is the seeded four-stage conversion chain.
var defaultFunnel = models.Funnel{
	AppToInterview:    30,
	InterviewToOffer:  40,
	OfferToBackground: 80,
	BackgroundToHire:  90,
}

// SeedDefaults installs a realistic starter source set when the list is
// empty. No-op otherwise.
func (l *SourceList) SeedDefaults() {
	l.mu.Lock()
	if len(l.sources) > 0 {
		l.mu.Unlock()
		return
	}
	organic := 4.0
	referralApps := 2.0
	l.sources = []models.Source{
		{ID: uuid.NewString(), Name: "Job Board (organic)", Active: true, SpendModel: models.SpendOrganic, Color: "#4caf50", AppsOverride: &organic, Funnel: defaultFunnel, QualityPercent: 100},
		{ID: uuid.NewString(), Name: "Sponsored Job Board", Active: true, SpendModel: models.SpendDailyBudget, Color: "#2196f3", DailyBudget: 120, Funnel: defaultFunnel, QualityPercent: 90},
		{ID: uuid.NewString(), Name: "Social Ads (CPC)", Active: true, SpendModel: models.SpendCPC, Color: "#9c27b0", CPC: 2, DailyBudget: 100, Funnel: defaultFunnel, QualityPercent: 80},
		{ID: uuid.NewString(), Name: "Display Network (CPM)", Active: false, SpendModel: models.SpendCPM, Color: "#ff9800", CPM: 12, DailyBudget: 80, Funnel: defaultFunnel, QualityPercent: 70},
		{ID: uuid.NewString(), Name: "Aggregator (CPA)", Active: true, SpendModel: models.SpendCPA, Color: "#795548", CPABid: 25, DailyBudget: 150, Funnel: defaultFunnel, QualityPercent: 85},
		{ID: uuid.NewString(), Name: "Employee Referral", Active: true, SpendModel: models.SpendReferral, Color: "#e91e63", ReferralBonusPerHire: 250, AppsOverride: &referralApps, Funnel: defaultFunnel, QualityPercent: 100},
	}
	l.version++
	listeners := append([]func(){}, l.listeners...)
	l.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// All returns a copy of every source record.
func (l *SourceList) All() []models.Source {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]models.Source{}, l.sources...)
}

// Get returns the source with the given ID.
func (l *SourceList) Get(id string) (models.Source, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, s := range l.sources {
		if s.ID == id {
			return s, true
		}
	}
	return models.Source{}, false
}

// Add inserts a source, assigning an ID when missing.
func (l *SourceList) Add(s models.Source) models.Source {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.QualityPercent <= 0 {
		s.QualityPercent = 100
	}
	l.mu.Lock()
	l.sources = append(l.sources, s)
	l.version++
	listeners := append([]func(){}, l.listeners...)
	l.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
	return s
}

// Update replaces the record with the same ID. Returns false when absent.
func (l *SourceList) Update(s models.Source) bool {
	l.mu.Lock()
	found := false
	for i := range l.sources {
		if l.sources[i].ID == s.ID {
			l.sources[i] = s
			found = true
			break
		}
	}
	var listeners []func()
	if found {
		l.version++
		listeners = append([]func(){}, l.listeners...)
	}
	l.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
	return found
}

// Delete removes the record with the given ID. Returns false when absent.
func (l *SourceList) Delete(id string) bool {
	l.mu.Lock()
	found := false
	for i := range l.sources {
		if l.sources[i].ID == id {
			l.sources = append(l.sources[:i], l.sources[i+1:]...)
			found = true
			break
		}
	}
	var listeners []func()
	if found {
		l.version++
		listeners = append([]func(){}, l.listeners...)
	}
	l.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
	return found
}

// Replace swaps the whole list, used when hydrating from storage.
func (l *SourceList) Replace(sources []models.Source) {
	l.mu.Lock()
	l.sources = append([]models.Source{}, sources...)
	l.version++
	listeners := append([]func(){}, l.listeners...)
	l.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// Snapshots flattens every source into the consumption shape.
func (l *SourceList) Snapshots() []models.SourceSnapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]models.SourceSnapshot, 0, len(l.sources))
	for _, s := range l.sources {
		out = append(out, s.Snapshot())
	}
	return out
}

// Version returns the change counter.
func (l *SourceList) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

// Subscribe registers a listener invoked synchronously after every change.
func (l *SourceList) Subscribe(fn func()) {
	l.mu.Lock()
	l.listeners = append(l.listeners, fn)
	l.mu.Unlock()
}
