package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/waypoint/internal/presentation/graph"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		pages       []domain.Page
		overlay     *graph.Overlay
		contains    []string
		notContains []string
	}{
		{
			name:     "Empty Tour",
			contains: []string{"start --> finish"},
		},
		{
			name:  "Single Page Has No Skip",
			pages: []domain.Page{{Title: "Only"}},
			contains: []string{
				`page_0["Only"]`,
				"start --> page_0",
				`page_0 -- "Get Started" --> finish`,
			},
			notContains: []string{"Skip", "Back"},
		},
		{
			name: "Paged Tour",
			pages: []domain.Page{
				{Title: "One"},
				{Title: `Say "hi"`, ActionTitle: "Enable"},
				{Title: "Three"},
			},
			contains: []string{
				`page_1[["Say 'hi'"]]`,
				`page_0 -- "Next" --> page_1`,
				`page_1 -- "Enable" --> page_2`,
				`page_2 -- "Get Started" --> finish`,
				`page_0 -. "Skip" .-> finish`,
				`page_1 -. "Skip" .-> finish`,
				`page_2 -. "Back" .-> page_1`,
			},
			notContains: []string{`page_2 -. "Skip"`, `page_0 -. "Back"`},
		},
		{
			name:    "Overlay",
			pages:   []domain.Page{{Title: "A"}, {Title: "B"}},
			overlay: &graph.Overlay{VisitedPages: []int{0, 0, 5}, CurrentPage: 1},
			contains: []string{
				"class page_0 visited;",
				"class page_1 current;",
			},
			notContains: []string{"page_5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.pages, tt.overlay)
			assert.True(t, strings.HasPrefix(got, "graph TD\n"))
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.notContains {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestGenerateMermaid_OverlayDeduplicates(t *testing.T) {
	got := graph.GenerateMermaid([]domain.Page{{Title: "A"}, {Title: "B"}}, &graph.Overlay{VisitedPages: []int{0, 0}, CurrentPage: -1})
	assert.Equal(t, 1, strings.Count(got, "class page_0 visited;"))
	assert.NotContains(t, got, "class page_1 current;")
}

func TestGenerateDecisionMermaid(t *testing.T) {
	got := graph.GenerateDecisionMermaid("2.0")
	assert.Contains(t, got, `marker -- "empty" --> first_launch`)
	assert.Contains(t, got, `marker -- "!= 2.0" --> whats_new`)
	assert.Contains(t, got, `marker -- "== 2.0" --> none`)
}
