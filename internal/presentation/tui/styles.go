package tui

import (
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/charmbracelet/lipgloss"
)

const defaultAccent = "#6366f1"

// Styles holds the lipgloss styles of one presentation.
type Styles struct {
	Header      lipgloss.Style
	Title       lipgloss.Style
	Description lipgloss.Style
	Icon        lipgloss.Style
	Button      lipgloss.Style
	Dot         lipgloss.Style
	DotActive   lipgloss.Style
	Card        lipgloss.Style
	Faint       lipgloss.Style
	Error       lipgloss.Style
}

// NewStyles builds styles around the accent color.
func NewStyles(accent domain.Color) Styles {
	a := lipgloss.Color(defaultAccent)
	if accent != "" {
		a = lipgloss.Color(string(accent))
	}

	return Styles{
		Header:      lipgloss.NewStyle().Bold(true).Foreground(a).MarginBottom(1),
		Title:       lipgloss.NewStyle().Bold(true),
		Description: lipgloss.NewStyle(),
		Icon:        lipgloss.NewStyle().Foreground(a).Bold(true),
		Button: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(a).
			Padding(0, 2),
		Dot:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		DotActive: lipgloss.NewStyle().Foreground(a),
		Card:      lipgloss.NewStyle().Padding(1, 2),
		Faint:     lipgloss.NewStyle().Faint(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444")),
	}
}

// card returns the card style with the item's background applied.
func (s Styles) card(bg domain.Color) lipgloss.Style {
	if bg == "" {
		return s.Card
	}
	return s.Card.Background(lipgloss.Color(string(bg)))
}

// icon returns the icon style with the item's color override applied.
func (s Styles) icon(c domain.Color) lipgloss.Style {
	if c == "" {
		return s.Icon
	}
	return s.Icon.Foreground(lipgloss.Color(string(c)))
}
