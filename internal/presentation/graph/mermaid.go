package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Overlay contains progress data to visualize on the graph.
type Overlay struct {
	VisitedPages []int
	// CurrentPage is the page being shown, or -1.
	CurrentPage int
}

// GenerateMermaid produces a Mermaid flowchart of a paged tour.
// It applies semantic styling:
// - Start and Finish: ((Circle))
// - Pages with an action: [[Subroutine]]
// - Other pages: [Rectangle]
// Primary transitions are solid, Back and Skip are dotted.
func GenerateMermaid(pages []domain.Page, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    start((\"start\"))\n")
	sb.WriteString("    finish((\"finish\"))\n")

	if len(pages) == 0 {
		sb.WriteString("    start --> finish\n")
		return sb.String()
	}

	n := len(pages)
	for i, page := range pages {
		opener, closer := "[", "]"
		if page.HasAction() || page.ActionTitle != "" {
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", pageID(i), opener, escapeLabel(page.Title), closer))
	}

	sb.WriteString(fmt.Sprintf("    start --> %s\n", pageID(0)))
	for i, page := range pages {
		label := page.ActionTitle
		last := i == n-1
		switch {
		case label != "":
		case last:
			label = "Get Started"
		default:
			label = "Next"
		}

		target := "finish"
		if !last {
			target = pageID(i + 1)
		}
		sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", pageID(i), escapeLabel(label), target))

		if i > 0 {
			sb.WriteString(fmt.Sprintf("    %s -. \"Back\" .-> %s\n", pageID(i), pageID(i-1)))
		}
		if n > 1 && !last {
			sb.WriteString(fmt.Sprintf("    %s -. \"Skip\" .-> finish\n", pageID(i)))
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, i := range overlay.VisitedPages {
			if i < 0 || i >= n || seen[i] {
				continue
			}
			seen[i] = true
			sb.WriteString(fmt.Sprintf("    class %s visited;\n", pageID(i)))
		}
		if overlay.CurrentPage >= 0 && overlay.CurrentPage < n {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", pageID(overlay.CurrentPage)))
		}
	}

	return sb.String()
}

// GenerateDecisionMermaid produces the activation decision as a flowchart.
func GenerateDecisionMermaid(currentVersion string) string {
	v := escapeLabel(currentVersion)

	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString("    activate((\"activate\"))\n")
	sb.WriteString("    marker{\"last seen version\"}\n")
	sb.WriteString("    first_launch[\"first-launch tour\"]\n")
	sb.WriteString("    whats_new[\"What's New sheet\"]\n")
	sb.WriteString("    none((\"nothing\"))\n")
	sb.WriteString(fmt.Sprintf("    write[/\"write %s\"/]\n", v))
	sb.WriteString("    activate --> marker\n")
	sb.WriteString("    marker -- \"empty\" --> first_launch\n")
	sb.WriteString(fmt.Sprintf("    marker -- \"!= %s\" --> whats_new\n", v))
	sb.WriteString(fmt.Sprintf("    marker -- \"== %s\" --> none\n", v))
	sb.WriteString("    first_launch -- \"finish\" --> write\n")
	sb.WriteString("    whats_new -- \"continue\" --> write\n")
	return sb.String()
}

func pageID(i int) string {
	return fmt.Sprintf("page_%d", i)
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
