package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPresent    EventType = "present"
	EventPageChange EventType = "page_change"
	EventAction     EventType = "page_action"
	EventFinish     EventType = "finish"
	EventReset      EventType = "reset"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Flow      FlowKind  `json:"flow"`
}

// PresentEvent is emitted when a host decides which flow to present.
type PresentEvent struct {
	EventBase
	LastSeen       string `json:"last_seen"`
	CurrentVersion string `json:"current_version"`
	ReduceMotion   bool   `json:"reduce_motion"`
}

// PageEvent is emitted on page transitions and page actions.
type PageEvent struct {
	EventBase
	From      int       `json:"from"`
	To        int       `json:"to"`
	Direction Direction `json:"direction"`
	// Haptic is true when the motion policy allows tactile feedback for this change.
	Haptic bool `json:"haptic,omitempty"`
}

// FinishEvent is emitted once per presentation when its flow completes.
type FinishEvent struct {
	EventBase
	// Skipped is true when the user left the tour through Skip.
	Skipped bool `json:"skipped,omitempty"`
	// Page is the index the flow finished on (0 for feature sheets).
	Page int `json:"page"`
}

// ResetEvent is emitted when a host clears its version marker.
type ResetEvent struct {
	EventBase
	Key string `json:"key"`
}

// LifecycleHooks defines callbacks for onboarding observability.
// Every field is optional.
type LifecycleHooks struct {
	OnPresent    func(context.Context, *PresentEvent)
	OnPageChange func(context.Context, *PageEvent)
	OnPageAction func(context.Context, *PageEvent)
	OnFinish     func(context.Context, *FinishEvent)
	OnReset      func(context.Context, *ResetEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnPresent:    chain(h.OnPresent, other.OnPresent),
		OnPageChange: chain(h.OnPageChange, other.OnPageChange),
		OnPageAction: chain(h.OnPageAction, other.OnPageAction),
		OnFinish:     chain(h.OnFinish, other.OnFinish),
		OnReset:      chain(h.OnReset, other.OnReset),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
