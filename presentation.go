package waypoint

import (
	"context"
	"sync"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/flow"
	"github.com/aretw0/waypoint/pkg/motion"
)

// Presentation is one shown flow. Exactly one of Flow and Sheet is set,
// matching Kind.
type Presentation struct {
	Kind         domain.FlowKind
	AppName      string
	Accent       domain.Color
	ReduceMotion bool

	Flow      *flow.PageFlow
	Sheet     *flow.FeatureSheet
	Sequencer *motion.Sequencer

	host *Host
	ctx  context.Context

	once sync.Once
	done chan struct{}
	mu   sync.Mutex
	err  error
}

func newPresentation(ctx context.Context, h *Host, kind domain.FlowKind, reduce bool) *Presentation {
	return &Presentation{
		Kind:         kind,
		AppName:      h.appName,
		Accent:       h.accent,
		ReduceMotion: reduce,
		host:         h,
		ctx:          context.WithoutCancel(ctx),
		done:         make(chan struct{}),
	}
}

// Header returns the sheet title ("What's New in <app>"), or the app name for
// the first-launch tour.
func (p *Presentation) Header() string {
	if p.Kind == domain.FlowWhatsNew {
		return "What's New in " + p.AppName
	}
	return p.AppName
}

// Finished reports whether the underlying flow reached its terminal state.
// Completion may still be waiting for the exit animation.
func (p *Presentation) Finished() bool {
	switch {
	case p.Flow != nil:
		return p.Flow.Finished()
	case p.Sheet != nil:
		return p.Sheet.Finished()
	}
	return false
}

// Done is closed once the presentation completed (marker written) or was
// dismissed.
func (p *Presentation) Done() <-chan struct{} {
	return p.done
}

// Err returns the outcome once Done is closed: nil after a successful
// completion, the store error if the marker could not be written, or
// domain.ErrDismissed.
func (p *Presentation) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Wait blocks until Done is closed or ctx ends, and returns Err.
func (p *Presentation) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dismiss closes the presentation from outside. A finished flow whose exit
// animation is still running completes immediately and writes the marker.
// An unfinished flow closes without writing it, so the next activation shows
// it again.
func (p *Presentation) Dismiss() {
	if pending := p.pending(); pending != nil {
		pending.Flush()
		return
	}
	p.close(domain.ErrDismissed)
}

func (p *Presentation) pending() *motion.Pending {
	switch {
	case p.Flow != nil:
		return p.Flow.Pending()
	case p.Sheet != nil:
		return p.Sheet.Pending()
	}
	return nil
}

// complete is the flow's completion callback.
func (p *Presentation) complete() {
	p.once.Do(func() {
		err := p.host.MarkSeen(p.ctx)
		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		close(p.done)
	})
}

func (p *Presentation) close(err error) {
	p.once.Do(func() {
		p.mu.Lock()
		p.err = err
		p.mu.Unlock()
		close(p.done)
	})
}
