package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/muesli/termenv"
)

var bannerGradient = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6", "#fb7185"}

// PrintBanner writes title with a color gradient, degraded to what the
// terminal behind w supports. A non-empty accent replaces the gradient.
func PrintBanner(w io.Writer, title string, accent domain.Color) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	runes := []rune(title)
	fmt.Fprintln(w)
	fmt.Fprint(w, "  ")
	for i, r := range runes {
		hex := string(accent)
		if hex == "" {
			hex = bannerGradient[i*len(bannerGradient)/max(len(runes), 1)]
		}
		fmt.Fprint(w, termenv.String(string(r)).Foreground(p.Color(hex)).Bold())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)
}
