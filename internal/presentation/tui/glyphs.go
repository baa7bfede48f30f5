package tui

import (
	"io/fs"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Glyphs for named symbols. Unknown names fall back to IconDefault.
const (
	IconDefault = "●"
	IconAsset   = "▣"
)

var symbolGlyphs = map[string]string{
	"star":      "★",
	"sparkles":  "✦",
	"check":     "✓",
	"checkmark": "✓",
	"xmark":     "✗",
	"warning":   "⚠",
	"info":      "ℹ",
	"bell":      "🔔",
	"bolt":      "⚡",
	"cloud":     "☁",
	"heart":     "♥",
	"gear":      "⚙",
	"lock":      "🔒",
	"key":       "🔑",
	"rocket":    "🚀",
	"gift":      "🎁",
	"arrow":     "➜",
	"flag":      "⚑",
	"globe":     "🌐",
	"sync":      "⟳",
	"terminal":  "❯",
}

// Glyph returns the single-cell representation of icon.
func Glyph(icon domain.Icon) string {
	switch {
	case icon.IsZero():
		return IconDefault
	case icon.Kind == domain.IconAsset:
		return IconAsset
	}
	if g, ok := symbolGlyphs[strings.ToLower(icon.Name)]; ok {
		return g
	}
	return IconDefault
}

// Art returns the multi-line artwork of an asset icon read from assets, or
// the glyph when icon is a symbol or the asset is missing.
func Art(assets fs.FS, icon domain.Icon) string {
	if icon.Kind == domain.IconAsset && assets != nil && !icon.IsZero() {
		if b, err := fs.ReadFile(assets, icon.Name); err == nil {
			return strings.TrimRight(string(b), "\n")
		}
	}
	return Glyph(icon)
}
