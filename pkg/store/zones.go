package store

import (
	"sync"

	"github.com/rcalderon/recruitops-api-go/pkg/models"
)

// ZoneStore holds the user-configured coverage severity thresholds.
// Purely a presentation policy; the simulation math never reads it.
type ZoneStore struct {
	mu        sync.RWMutex
	zones     models.Zones
	version   uint64
	listeners []func()
}

// DefaultZones are the seeded coverage thresholds.
var DefaultZones = models.Zones{LowRed: 70, LowYellow: 90, HighYellow: 110, HighRed: 130}

// NewZoneStore creates a store with the default thresholds.
func NewZoneStore() *ZoneStore {
	return &ZoneStore{zones: DefaultZones}
}

// Get returns the current thresholds.
func (z *ZoneStore) Get() models.Zones {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.zones
}

// Set installs new thresholds after forcing them monotonically
// non-decreasing, and notifies on an actual change.
func (z *ZoneStore) Set(zones models.Zones) {
	if zones.LowYellow < zones.LowRed {
		zones.LowYellow = zones.LowRed
	}
	if zones.HighYellow < zones.LowYellow {
		zones.HighYellow = zones.LowYellow
	}
	if zones.HighRed < zones.HighYellow {
		zones.HighRed = zones.HighYellow
	}

	z.mu.Lock()
	var listeners []func()
	if z.zones != zones {
		z.zones = zones
		z.version++
		listeners = append([]func(){}, z.listeners...)
	}
	z.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Version returns the change counter.
func (z *ZoneStore) Version() uint64 {
	z.mu.RLock()
	defer z.mu.RUnlock()
	return z.version
}

// Subscribe registers a listener invoked synchronously after every change.
func (z *ZoneStore) Subscribe(fn func()) {
	z.mu.Lock()
	z.listeners = append(z.listeners, fn)
	z.mu.Unlock()
}
