package domain

import (
	"fmt"
	"strings"
)

// IconKind distinguishes named symbols from bundled assets.
type IconKind string

const (
	IconSymbol IconKind = "symbol" // Named glyph resolved by the presenter (e.g. "star").
	IconAsset  IconKind = "asset"  // Application-provided asset (e.g. an image or ASCII art file).
)

// Icon references the visual shown next to a page or feature row.
type Icon struct {
	Kind IconKind `json:"kind" yaml:"kind"`
	Name string   `json:"name" yaml:"name"`
}

// SymbolIcon returns an Icon that refers to a named symbol.
func SymbolIcon(name string) Icon {
	return Icon{Kind: IconSymbol, Name: name}
}

// AssetIcon returns an Icon that refers to an application asset.
func AssetIcon(name string) Icon {
	return Icon{Kind: IconAsset, Name: name}
}

// IsZero reports whether the icon is unset.
func (i Icon) IsZero() bool {
	return i.Name == ""
}

// String renders the icon in the "kind:name" form accepted by ParseIcon.
func (i Icon) String() string {
	if i.IsZero() {
		return ""
	}
	return string(i.Kind) + ":" + i.Name
}

// ParseIcon parses "symbol:name" or "asset:name". A bare name is a symbol.
func ParseIcon(s string) (Icon, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Icon{}, nil
	}

	kind, name, found := strings.Cut(s, ":")
	if !found {
		return SymbolIcon(s), nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return Icon{}, fmt.Errorf("icon %q has no name", s)
	}

	switch IconKind(strings.ToLower(strings.TrimSpace(kind))) {
	case IconSymbol:
		return SymbolIcon(name), nil
	case IconAsset:
		return AssetIcon(name), nil
	default:
		return Icon{}, fmt.Errorf("unknown icon kind %q", kind)
	}
}
