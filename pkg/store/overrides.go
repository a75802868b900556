package store

import "sync"

// OverrideKey addresses one half-hour slot of one role's week.
type OverrideKey struct {
	Role string
	Week int
	Day  int
	Slot int
}

// OverridePair is the user-edited replacement for a generated slot.
type OverridePair struct {
	Demand int `json:"demand"`
	Supply int `json:"supply"`
}

// Overrides is the sparse store of user slot edits. A (0,0) pair means
// "no override" and is removed rather than stored. Subscribers get a
// coarse version bump: any change means re-derive everything.
type Overrides struct {
	mu        sync.RWMutex
	entries   map[OverrideKey]OverridePair
	version   uint64
	listeners []func()
}

// NewOverrides creates an empty override store.
func NewOverrides() *Overrides {
	return &Overrides{entries: make(map[OverrideKey]OverridePair)}
}

// Get returns the override for one slot, matching the generator's
// OverrideSource interface.
func (o *Overrides) Get(role string, week, day, slot int) (demand, supply int, ok bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	p, ok := o.entries[OverrideKey{role, week, day, slot}]
	return p.Demand, p.Supply, ok
}

// Has reports whether a slot carries an override.
func (o *Overrides) Has(role string, week, day, slot int) bool {
	_, _, ok := o.Get(role, week, day, slot)
	return ok
}

// Set clamps both fields to non-negative integers and upserts the entry,
// deleting it when the clamped pair is (0,0). Subscribers are notified
// only on an actual change.
func (o *Overrides) Set(role string, week, day, slot int, pair OverridePair) {
	if pair.Demand < 0 {
		pair.Demand = 0
	}
	if pair.Supply < 0 {
		pair.Supply = 0
	}
	key := OverrideKey{role, week, day, slot}

	o.mu.Lock()
	prev, existed := o.entries[key]
	changed := false
	if pair.Demand == 0 && pair.Supply == 0 {
		if existed {
			delete(o.entries, key)
			changed = true
		}
	} else if !existed || prev != pair {
		o.entries[key] = pair
		changed = true
	}
	var listeners []func()
	if changed {
		o.version++
		listeners = append([]func(){}, o.listeners...)
	}
	o.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Clear removes one slot's override.
func (o *Overrides) Clear(role string, week, day, slot int) {
	o.Set(role, week, day, slot, OverridePair{})
}

// ClearWeek removes every override for one role and week, notifying once
// if anything was removed.
func (o *Overrides) ClearWeek(role string, week int) {
	o.clearWhere(func(k OverrideKey) bool { return k.Role == role && k.Week == week })
}

// ClearRole removes every override for a role.
func (o *Overrides) ClearRole(role string) {
	o.clearWhere(func(k OverrideKey) bool { return k.Role == role })
}

func (o *Overrides) clearWhere(match func(OverrideKey) bool) {
	o.mu.Lock()
	removed := false
	for k := range o.entries {
		if match(k) {
			delete(o.entries, k)
			removed = true
		}
	}
	var listeners []func()
	if removed {
		o.version++
		listeners = append([]func(){}, o.listeners...)
	}
	o.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// All returns a copy of every entry, for persistence.
func (o *Overrides) All() map[OverrideKey]OverridePair {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make(map[OverrideKey]OverridePair, len(o.entries))
	for k, v := range o.entries {
		out[k] = v
	}
	return out
}

// Replace swaps the whole map, used when hydrating from storage.
func (o *Overrides) Replace(entries map[OverrideKey]OverridePair) {
	o.mu.Lock()
	o.entries = make(map[OverrideKey]OverridePair, len(entries))
	for k, v := range entries {
		if v.Demand < 0 || v.Supply < 0 || (v.Demand == 0 && v.Supply == 0) {
			continue
		}
		o.entries[k] = v
	}
	o.version++
	listeners := append([]func(){}, o.listeners...)
	o.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Len reports the number of stored overrides.
func (o *Overrides) Len() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.entries)
}

// Version returns the monotonically increasing change counter.
func (o *Overrides) Version() uint64 {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.version
}

// Subscribe registers a listener invoked synchronously after every change.
func (o *Overrides) Subscribe(fn func()) {
	o.mu.Lock()
	o.listeners = append(o.listeners, fn)
	o.mu.Unlock()
}
