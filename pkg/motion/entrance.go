package motion

import (
	"sync"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
)

// EntranceTracker hands out entrance delays once per element key.
// A later Start with the same key reports false so re-renders do not replay
// the animation; Forget re-arms a key (e.g. when a page becomes active again).
type EntranceTracker struct {
	spec Spec

	mu     sync.Mutex
	played map[string]bool
}

// Entrance returns a tracker for one presentation.
func (s *Sequencer) Entrance(reduceMotion bool) *EntranceTracker {
	return &EntranceTracker{
		spec:   s.Plan(Entrance, domain.Forward, reduceMotion),
		played: make(map[string]bool),
	}
}

// Spec returns the entrance Spec shared by every element.
func (e *EntranceTracker) Spec() Spec {
	return e.spec
}

// Start marks key as played and returns its delay. ok is false when the key
// already played.
func (e *EntranceTracker) Start(key string, index int) (delay time.Duration, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.played[key] {
		return 0, false
	}
	e.played[key] = true
	return e.spec.ItemDelay(index), true
}

// StartAfter is Start with an explicit delay, for elements whose timing does
// not follow the shared stagger. Under reduce motion the delay is dropped.
func (e *EntranceTracker) StartAfter(key string, delay time.Duration) (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.played[key] {
		return 0, false
	}
	e.played[key] = true
	if e.spec.Instant {
		return 0, true
	}
	return clamp(delay), true
}

// Played reports whether key already ran its entrance.
func (e *EntranceTracker) Played(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.played[key]
}

// Forget re-arms key.
func (e *EntranceTracker) Forget(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.played, key)
}
