// Package gate decides which onboarding flow to present for a version pair.
package gate

import "github.com/aretw0/waypoint/pkg/domain"

// Decide compares the last version the user completed onboarding for with the
// running version. Versions are opaque tokens: only exact equality matters.
//
// An empty lastSeen means the user never onboarded.
func Decide(lastSeen, current string) domain.FlowKind {
	switch {
	case lastSeen == "":
		return domain.FlowFirstLaunch
	case lastSeen != current:
		return domain.FlowWhatsNew
	default:
		return domain.FlowNone
	}
}
