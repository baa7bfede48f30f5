package domain

import "fmt"

// FlowKind identifies which onboarding experience a host should present.
type FlowKind int

const (
	FlowNone        FlowKind = iota // Nothing to show.
	FlowFirstLaunch                 // Paged first-launch tour.
	FlowWhatsNew                    // "What's New" feature sheet.
)

// String returns the wire name of the flow kind.
func (k FlowKind) String() string {
	switch k {
	case FlowNone:
		return "none"
	case FlowFirstLaunch:
		return "first_launch"
	case FlowWhatsNew:
		return "whats_new"
	default:
		return fmt.Sprintf("FlowKind(%d)", int(k))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k FlowKind) MarshalText() ([]byte, error) {
	switch k {
	case FlowNone, FlowFirstLaunch, FlowWhatsNew:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("invalid flow kind %d", int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *FlowKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none", "":
		*k = FlowNone
	case "first_launch":
		*k = FlowFirstLaunch
	case "whats_new":
		*k = FlowWhatsNew
	default:
		return fmt.Errorf("unknown flow kind %q", string(text))
	}
	return nil
}

// Direction is the direction of the most recent page transition.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Sign returns +1 for Forward and -1 for Backward.
func (d Direction) Sign() float64 {
	if d == Backward {
		return -1
	}
	return 1
}
