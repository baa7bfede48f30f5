package flow_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/flow"
	"github.com/aretw0/waypoint/pkg/motion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePages(n int) []domain.Page {
	pages := make([]domain.Page, n)
	for i := range pages {
		pages[i] = domain.Page{
			Title: fmt.Sprintf("Page %d", i),
			Icon:  domain.SymbolIcon("star"),
		}
	}
	return pages
}

func newInstantFlow(t *testing.T, pages []domain.Page, finished *int, opts ...flow.Option) *flow.PageFlow {
	t.Helper()
	opts = append([]flow.Option{
		flow.WithReduceMotion(true),
		flow.WithOnFinish(func() { *finished++ }),
	}, opts...)
	f, err := flow.NewPageFlow(pages, opts...)
	require.NoError(t, err)
	return f
}

func TestNewPageFlow_Empty(t *testing.T) {
	f, err := flow.NewPageFlow(nil)
	assert.Nil(t, f)
	assert.ErrorIs(t, err, domain.ErrEmptyFlow)
}

func TestPageFlow_PrimaryActionWalksAllPages(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		t.Run(fmt.Sprintf("%d pages", n), func(t *testing.T) {
			finished := 0
			f := newInstantFlow(t, makePages(n), &finished)

			for i := 0; i < n; i++ {
				assert.Equal(t, i, f.Index())
				assert.False(t, f.Finished())
				assert.Zero(t, finished)
				require.NoError(t, f.PrimaryAction())
			}

			assert.True(t, f.Finished())
			assert.Equal(t, 1, finished, "completion fires exactly once, on the Nth call")
			assert.ErrorIs(t, f.PrimaryAction(), domain.ErrFlowFinished)
			assert.Equal(t, 1, finished)
		})
	}
}

func TestPageFlow_ButtonLabel(t *testing.T) {
	pages := makePages(3)
	pages[1].ActionTitle = "Allow Notifications"
	finished := 0
	f := newInstantFlow(t, pages, &finished)

	assert.Equal(t, flow.LabelNext, f.ButtonLabel())
	require.NoError(t, f.Advance(1))
	assert.Equal(t, "Allow Notifications", f.ButtonLabel())
	require.NoError(t, f.Advance(2))
	assert.Equal(t, flow.LabelGetStarted, f.ButtonLabel())
}

func TestPageFlow_SinglePage(t *testing.T) {
	finished := 0
	f := newInstantFlow(t, makePages(1), &finished)

	assert.False(t, f.CanSkip())
	assert.Equal(t, flow.LabelGetStarted, f.ButtonLabel())
	assert.ErrorIs(t, f.Skip(), domain.ErrSkipUnavailable)
	assert.False(t, f.Finished())

	require.NoError(t, f.PrimaryAction())
	assert.True(t, f.Finished())
	assert.Equal(t, 1, finished)
}

func TestPageFlow_PageActionRunsBeforeAdvance(t *testing.T) {
	var seen []int
	pages := makePages(2)
	finished := 0
	var f *flow.PageFlow
	pages[0].Action = domain.ActionFunc(func() { seen = append(seen, f.Index()) })
	pages[1].Action = domain.ActionFunc(func() { seen = append(seen, f.Index()) })
	f = newInstantFlow(t, pages, &finished)

	require.NoError(t, f.PrimaryAction())
	require.NoError(t, f.PrimaryAction())

	assert.Equal(t, []int{0, 1}, seen)
	assert.Equal(t, 1, finished)
}

func TestPageFlow_Advance(t *testing.T) {
	finished := 0
	f := newInstantFlow(t, makePages(4), &finished)

	require.NoError(t, f.Advance(2))
	assert.Equal(t, 2, f.Index())
	assert.Equal(t, 0, f.PreviousIndex())
	assert.Equal(t, domain.Forward, f.Direction())

	require.NoError(t, f.Advance(2), "advancing to the current page is a no-op")
	assert.Equal(t, 0, f.PreviousIndex())
	assert.Equal(t, domain.Forward, f.Direction())

	require.NoError(t, f.Advance(1))
	assert.Equal(t, 2, f.PreviousIndex())
	assert.Equal(t, domain.Backward, f.Direction())

	require.NoError(t, f.Back())
	assert.Equal(t, 0, f.Index())
	assert.ErrorIs(t, f.Back(), domain.ErrInvalidTarget)

	assert.ErrorIs(t, f.Advance(4), domain.ErrInvalidTarget)
	assert.ErrorIs(t, f.Advance(-1), domain.ErrInvalidTarget)
	assert.Equal(t, 0, f.Index(), "rejected targets leave the state unchanged")
	assert.Equal(t, 1, f.PreviousIndex())
}

func TestPageFlow_Skip(t *testing.T) {
	finished := 0
	f := newInstantFlow(t, makePages(3), &finished)

	require.NoError(t, f.PrimaryAction())
	assert.Equal(t, 1, f.Index())
	assert.Equal(t, domain.Forward, f.Direction())
	assert.True(t, f.CanSkip())

	require.NoError(t, f.Skip())
	assert.True(t, f.Finished())
	assert.True(t, f.Skipped())
	assert.Equal(t, 1, finished)

	assert.ErrorIs(t, f.Skip(), domain.ErrFlowFinished)
	assert.ErrorIs(t, f.Advance(0), domain.ErrFlowFinished)
	assert.False(t, f.CanSkip())
	assert.Equal(t, 1, finished)
}

func TestPageFlow_SkipOnLastPage(t *testing.T) {
	finished := 0
	f := newInstantFlow(t, makePages(3), &finished)

	require.NoError(t, f.Advance(2))
	assert.False(t, f.CanSkip())
	assert.ErrorIs(t, f.Skip(), domain.ErrSkipUnavailable)
	assert.False(t, f.Finished())
	assert.Zero(t, finished)
}

func TestPageFlow_ExitAnimationDelaysCompletion(t *testing.T) {
	clock := motion.NewManualScheduler()
	seq := motion.NewSequencer(motion.DefaultConfig(), motion.WithScheduler(clock))

	finished := 0
	f, err := flow.NewPageFlow(makePages(2),
		flow.WithSequencer(seq),
		flow.WithOnFinish(func() { finished++ }),
	)
	require.NoError(t, err)

	require.NoError(t, f.Skip())
	assert.True(t, f.Finished(), "navigation is closed as soon as the flow finishes")
	assert.Zero(t, finished)
	require.NotNil(t, f.Pending())

	clock.Advance(300 * time.Millisecond)
	assert.Equal(t, 1, finished)

	f.Pending().Flush()
	assert.Equal(t, 1, finished)
}

func TestPageFlow_Hooks(t *testing.T) {
	var changes []domain.PageEvent
	var finishes []domain.FinishEvent
	actions := 0
	hooks := domain.LifecycleHooks{
		OnPageChange: func(_ context.Context, e *domain.PageEvent) { changes = append(changes, *e) },
		OnPageAction: func(context.Context, *domain.PageEvent) { actions++ },
		OnFinish:     func(_ context.Context, e *domain.FinishEvent) { finishes = append(finishes, *e) },
	}

	pages := makePages(3)
	pages[0].Action = domain.ActionFunc(func() {})
	f, err := flow.NewPageFlow(pages, flow.WithLifecycleHooks(hooks), flow.WithReduceMotion(false),
		flow.WithSequencer(motion.NewSequencer(motion.DefaultConfig(), motion.WithScheduler(motion.NewManualScheduler()))))
	require.NoError(t, err)

	require.NoError(t, f.PrimaryAction())
	require.NoError(t, f.Back())
	require.NoError(t, f.Advance(2))
	require.NoError(t, f.PrimaryAction())

	assert.Equal(t, 1, actions)
	require.Len(t, changes, 3)
	assert.Equal(t, domain.Forward, changes[0].Direction)
	assert.True(t, changes[0].Haptic)
	assert.Equal(t, domain.Backward, changes[1].Direction)
	assert.Equal(t, 2, changes[2].To)
	assert.Equal(t, domain.FlowFirstLaunch, changes[2].Flow)

	require.Len(t, finishes, 1)
	assert.False(t, finishes[0].Skipped)
	assert.Equal(t, 2, finishes[0].Page)
}

func TestPageFlow_TransitionFollowsDirection(t *testing.T) {
	f, err := flow.NewPageFlow(makePages(3))
	require.NoError(t, err)

	require.NoError(t, f.Advance(2))
	assert.Positive(t, f.Transition().Offset)

	require.NoError(t, f.Advance(0))
	assert.Negative(t, f.Transition().Offset)

	reduced, err := flow.NewPageFlow(makePages(3), flow.WithReduceMotion(true))
	require.NoError(t, err)
	require.NoError(t, reduced.Advance(1))
	assert.True(t, reduced.Transition().Instant)
	assert.False(t, reduced.Transition().Haptics)
}

func TestPageFlow_PagesAreCopied(t *testing.T) {
	pages := makePages(2)
	f, err := flow.NewPageFlow(pages)
	require.NoError(t, err)

	pages[0].Title = "mutated"
	page, err := f.CurrentPage()
	require.NoError(t, err)
	assert.Equal(t, "Page 0", page.Title)

	out := f.Pages()
	out[0].Title = "mutated"
	page, _ = f.CurrentPage()
	assert.Equal(t, "Page 0", page.Title)
}
