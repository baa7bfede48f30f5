package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/waypoint/internal/presentation/graph"
	"github.com/aretw0/waypoint/pkg/content"
	"github.com/aretw0/waypoint/pkg/domain"
)

// Check prints the flow the next run would present.
func Check(ctx context.Context, opts Options, w io.Writer) (domain.FlowKind, error) {
	store, closer, err := openMarkerStore(ctx, opts)
	if err != nil {
		return domain.FlowNone, err
	}
	defer closer.Close()

	host, err := createHost(opts, store, createLogger(opts), domain.LifecycleHooks{})
	if err != nil {
		return domain.FlowNone, err
	}

	lastSeen, err := host.LastSeen(ctx)
	if err != nil {
		return domain.FlowNone, err
	}
	kind, err := host.Check(ctx)
	if err != nil {
		return domain.FlowNone, err
	}

	if lastSeen == "" {
		lastSeen = "(never)"
	}
	fmt.Fprintf(w, "last seen: %s\ncurrent:   %s\nflow:      %s\n", lastSeen, host.Version(), kind)
	return kind, nil
}

// Reset clears the marker so the next run shows the first-launch tour.
func Reset(ctx context.Context, opts Options, w io.Writer) error {
	store, closer, err := openMarkerStore(ctx, opts)
	if err != nil {
		return err
	}
	defer closer.Close()

	host, err := createHost(opts, store, createLogger(opts), domain.LifecycleHooks{})
	if err != nil {
		return err
	}
	if err := host.Reset(ctx); err != nil {
		return err
	}
	printSystemMessage(w, "Reset %q; the first-launch tour will show on the next run.", host.Key())
	return nil
}

// GraphOptions selects what Graph draws.
type GraphOptions struct {
	// Decision draws the activation decision instead of the tour.
	Decision bool
	// Page highlights a tour page as current and the pages before it as
	// visited. Negative means no highlight.
	Page int
}

// Graph writes a Mermaid diagram of the tour in the content document, or of
// the activation decision.
func Graph(ctx context.Context, opts Options, g GraphOptions, w io.Writer) error {
	if g.Decision {
		version, err := opts.resolveVersion()
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, graph.GenerateDecisionMermaid(version))
		return err
	}

	c, err := loadContent(opts)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("--content is required")
	}
	pages, err := c.BuildPages(ctx, builtinActions(createLogger(opts)))
	if err != nil {
		return err
	}

	var overlay *graph.Overlay
	if g.Page >= 0 {
		if g.Page >= len(pages) {
			return fmt.Errorf("page %d out of range (tour has %d pages)", g.Page, len(pages))
		}
		overlay = &graph.Overlay{CurrentPage: g.Page}
		for i := 0; i < g.Page; i++ {
			overlay.VisitedPages = append(overlay.VisitedPages, i)
		}
	}
	_, err = io.WriteString(w, graph.GenerateMermaid(pages, overlay))
	return err
}

// Init writes a starter content document to path. It refuses to overwrite.
func Init(path string, w io.Writer) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, content.ExampleYAML); err != nil {
		return err
	}
	printSystemMessage(w, "Wrote %s. Try: waypoint run --content %s --version 1.0", path, path)
	return nil
}
