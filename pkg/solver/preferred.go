package solver

import (
	"maps"
	"slices"
	"sync"
)

// Preferred is an immutable set of aspects whose weight counts as 0 during
// a search. The zero value is the empty set.
type Preferred struct {
	set map[Aspect]struct{}
}

// NewPreferred returns a set containing the given aspects.
func NewPreferred(aspects ...Aspect) Preferred {
	if len(aspects) == 0 {
		return Preferred{}
	}
	set := make(map[Aspect]struct{}, len(aspects))
	for _, a := range aspects {
		set[a] = struct{}{}
	}
	return Preferred{set: set}
}

// Contains reports whether a is preferred.
func (p Preferred) Contains(a Aspect) bool {
	_, ok := p.set[a]
	return ok
}

// Len returns the number of preferred aspects.
func (p Preferred) Len() int { return len(p.set) }

// Sorted returns the preferred aspects in sorted order.
func (p Preferred) Sorted() []Aspect {
	return slices.Sorted(maps.Keys(p.set))
}

// Preferences is the mutable preferred set toggled by a user interface.
// It is safe for concurrent use. Searches never read it directly; callers
// pass a [Preferences.Snapshot] so that a toggle cannot change a search
// that is already running.
type Preferences struct {
	mu  sync.RWMutex
	set map[Aspect]struct{}
}

// NewPreferences returns a mutable set seeded with the given aspects.
func NewPreferences(aspects ...Aspect) *Preferences {
	p := &Preferences{set: make(map[Aspect]struct{}, len(aspects))}
	for _, a := range aspects {
		p.set[a] = struct{}{}
	}
	return p
}

// Add marks a as preferred.
func (p *Preferences) Add(a Aspect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.set[a] = struct{}{}
}

// Remove unmarks a.
func (p *Preferences) Remove(a Aspect) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.set, a)
}

// Toggle flips the membership of a and reports whether it is now preferred.
func (p *Preferences) Toggle(a Aspect) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.set[a]; ok {
		delete(p.set, a)
		return false
	}
	p.set[a] = struct{}{}
	return true
}

// Contains reports whether a is currently preferred.
func (p *Preferences) Contains(a Aspect) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.set[a]
	return ok
}

// Clear removes every aspect.
func (p *Preferences) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.set)
}

// Snapshot returns an immutable copy of the current set.
func (p *Preferences) Snapshot() Preferred {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.set) == 0 {
		return Preferred{}
	}
	return Preferred{set: maps.Clone(p.set)}
}
