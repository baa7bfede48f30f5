package flow

import (
	"fmt"
	"slices"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/motion"
)

const (
	LabelNext       = "Next"
	LabelGetStarted = "Get Started"
	LabelSkip       = "Skip"
	LabelContinue   = "Continue"
)

// PageFlow drives the paged first-launch tour.
//
// States are the page indices 0..N-1 plus a terminal "finished" state. Once
// finished, every navigation method returns domain.ErrFlowFinished.
type PageFlow struct {
	opts options

	pages     []domain.Page
	current   int
	previous  int
	direction domain.Direction

	finished bool
	skipped  bool
	pending  *motion.Pending
}

// NewPageFlow creates a flow positioned on the first page.
// It returns domain.ErrEmptyFlow when pages is empty.
func NewPageFlow(pages []domain.Page, opts ...Option) (*PageFlow, error) {
	if len(pages) == 0 {
		return nil, domain.ErrEmptyFlow
	}
	return &PageFlow{
		opts:  newOptions(domain.FlowFirstLaunch, opts),
		pages: slices.Clone(pages),
	}, nil
}

// Len returns the number of pages.
func (f *PageFlow) Len() int { return len(f.pages) }

// Pages returns a copy of the pages.
func (f *PageFlow) Pages() []domain.Page { return slices.Clone(f.pages) }

// Index returns the current page index.
func (f *PageFlow) Index() int { return f.current }

// PreviousIndex returns the index before the last transition.
func (f *PageFlow) PreviousIndex() int { return f.previous }

// Direction returns the direction of the last transition.
func (f *PageFlow) Direction() domain.Direction { return f.direction }

// ReduceMotion reports whether transitions are instant.
func (f *PageFlow) ReduceMotion() bool { return f.opts.reduceMotion }

// Finished reports whether the flow reached its terminal state.
func (f *PageFlow) Finished() bool { return f.finished }

// Skipped reports whether the flow was finished through Skip.
func (f *PageFlow) Skipped() bool { return f.skipped }

// Pending returns the completion handle once the flow finished, nil before.
func (f *PageFlow) Pending() *motion.Pending { return f.pending }

// IsLast reports whether the current page is the final one.
func (f *PageFlow) IsLast() bool { return f.current == len(f.pages)-1 }

// CurrentPage returns the page being shown.
func (f *PageFlow) CurrentPage() (domain.Page, error) {
	if len(f.pages) == 0 {
		return domain.Page{}, domain.ErrEmptyFlow
	}
	return f.pages[f.current], nil
}

// ButtonLabel returns the primary button title for the current page.
func (f *PageFlow) ButtonLabel() string {
	page, err := f.CurrentPage()
	if err != nil {
		return LabelGetStarted
	}
	if page.ActionTitle != "" {
		return page.ActionTitle
	}
	if f.IsLast() {
		return LabelGetStarted
	}
	return LabelNext
}

// CanSkip reports whether a skip control should be offered.
func (f *PageFlow) CanSkip() bool {
	return !f.finished && len(f.pages) > 1 && f.current < len(f.pages)-1
}

// Transition returns the motion Spec for the last page change.
func (f *PageFlow) Transition() motion.Spec {
	return f.opts.sequencer.Plan(motion.PageChange, f.direction, f.opts.reduceMotion)
}

// PrimaryAction runs the current page's action, if any, then advances. On the
// last page it finishes the flow instead.
func (f *PageFlow) PrimaryAction() error {
	if f.finished {
		return domain.ErrFlowFinished
	}

	page := f.pages[f.current]
	if page.Action != nil {
		f.opts.logger.Debug("running page action", "page", f.current, "title", page.Title)
		if f.opts.hooks.OnPageAction != nil {
			f.opts.hooks.OnPageAction(f.opts.ctx, &domain.PageEvent{
				EventBase: f.opts.base(domain.EventAction),
				From:      f.current,
				To:        f.current,
				Direction: f.direction,
			})
		}
		page.Action.Run()
	}

	if f.IsLast() {
		f.finish(false)
		return nil
	}
	return f.Advance(f.current + 1)
}

// Advance moves to page index to. Moving to the current page is a no-op that
// leaves PreviousIndex untouched. Out-of-range targets are rejected with
// domain.ErrInvalidTarget and leave the state unchanged.
func (f *PageFlow) Advance(to int) error {
	if f.finished {
		return domain.ErrFlowFinished
	}
	if to < 0 || to >= len(f.pages) {
		return fmt.Errorf("advance to %d of %d pages: %w", to, len(f.pages), domain.ErrInvalidTarget)
	}
	if to == f.current {
		return nil
	}

	f.previous = f.current
	f.current = to
	if to > f.previous {
		f.direction = domain.Forward
	} else {
		f.direction = domain.Backward
	}

	spec := f.Transition()
	f.opts.logger.Debug("page changed", "from", f.previous, "to", f.current, "direction", f.direction)
	if f.opts.hooks.OnPageChange != nil {
		f.opts.hooks.OnPageChange(f.opts.ctx, &domain.PageEvent{
			EventBase: f.opts.base(domain.EventPageChange),
			From:      f.previous,
			To:        f.current,
			Direction: f.direction,
			Haptic:    spec.Haptics,
		})
	}
	return nil
}

// Back moves to the previous page.
func (f *PageFlow) Back() error {
	if f.finished {
		return domain.ErrFlowFinished
	}
	if f.current == 0 {
		return fmt.Errorf("back from first page: %w", domain.ErrInvalidTarget)
	}
	return f.Advance(f.current - 1)
}

// Skip finishes the flow early. It returns domain.ErrSkipUnavailable, without
// changing state, on the last page or in a single-page flow.
func (f *PageFlow) Skip() error {
	if f.finished {
		return domain.ErrFlowFinished
	}
	if !f.CanSkip() {
		return domain.ErrSkipUnavailable
	}
	f.finish(true)
	return nil
}

func (f *PageFlow) finish(skipped bool) {
	f.finished = true
	f.skipped = skipped

	f.opts.logger.Debug("flow finished", "page", f.current, "skipped", skipped)
	if f.opts.hooks.OnFinish != nil {
		f.opts.hooks.OnFinish(f.opts.ctx, &domain.FinishEvent{
			EventBase: f.opts.base(domain.EventFinish),
			Skipped:   skipped,
			Page:      f.current,
		})
	}

	f.pending = f.opts.sequencer.Exit(f.opts.reduceMotion, f.opts.onFinish)
}
