package tui

import (
	"github.com/charmbracelet/glamour"
)

// ContentRenderer turns markdown into terminal output.
type ContentRenderer func(string) (string, error)

// NewRenderer returns a glamour markdown renderer wrapping at width columns.
// If glamour cannot be initialized the text is returned unchanged.
func NewRenderer(width int) ContentRenderer {
	if width <= 0 {
		width = 72
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return PlainRenderer
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// PlainRenderer returns the text as is.
func PlainRenderer(s string) (string, error) {
	return s, nil
}
