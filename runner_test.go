package waypoint_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_WalksTour(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	h := newHost(t, "1.0", store)

	p, err := h.Activate(ctx)
	require.NoError(t, err)

	var out bytes.Buffer
	r := waypoint.NewRunner()
	r.Input = strings.NewReader("\nb\nx\n\n\n\n")
	r.Output = &out

	require.NoError(t, r.Run(ctx, p))

	text := out.String()
	assert.Contains(t, text, "(1/3) [star] P0")
	assert.Contains(t, text, "(3/3) [check] P2")
	assert.Contains(t, text, "[enter] Get Started")
	assert.Contains(t, text, `unknown command "x"`)

	marker, err := store.Get(ctx, waypoint.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "1.0", marker)
}

func TestRunner_SkipUnavailableOnLastPage(t *testing.T) {
	ctx := context.Background()
	h := newHost(t, "1.0", memory.NewStore(), waypoint.WithPages(threePages()[:1]))

	p, err := h.Activate(ctx)
	require.NoError(t, err)

	var out bytes.Buffer
	r := &waypoint.Runner{Input: strings.NewReader("s\n\n"), Output: &out}
	require.NoError(t, r.Run(ctx, p))

	assert.Contains(t, out.String(), domain.ErrSkipUnavailable.Error())
	assert.True(t, p.Flow.Finished())
	assert.False(t, p.Flow.Skipped())
}

func TestRunner_QuitLeavesMarkerUnset(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	h := newHost(t, "1.0", store)

	p, err := h.Activate(ctx)
	require.NoError(t, err)

	var out bytes.Buffer
	r := &waypoint.Runner{Input: strings.NewReader("q\n"), Output: &out}
	require.NoError(t, r.Run(ctx, p))

	assert.ErrorIs(t, p.Err(), domain.ErrDismissed)
	_, err = store.Get(ctx, waypoint.DefaultKey)
	assert.ErrorIs(t, err, domain.ErrMarkerNotFound)
}

func TestRunner_EOFDismisses(t *testing.T) {
	ctx := context.Background()
	h := newHost(t, "1.0", memory.NewStore())

	p, err := h.Activate(ctx)
	require.NoError(t, err)

	r := &waypoint.Runner{Input: strings.NewReader(""), Output: &bytes.Buffer{}}
	require.NoError(t, r.Run(ctx, p))
	assert.ErrorIs(t, p.Err(), domain.ErrDismissed)
}

func TestRunner_HeadlessSheet(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Set(ctx, waypoint.DefaultKey, "0.9"))
	h := newHost(t, "1.0", store)

	p, err := h.Activate(ctx)
	require.NoError(t, err)

	var out bytes.Buffer
	r := &waypoint.Runner{
		Output:   &out,
		Headless: true,
		Renderer: func(s string) (string, error) { return strings.ToUpper(s), nil },
	}
	require.NoError(t, r.Run(ctx, p))

	assert.Contains(t, out.String(), "What's New in Demo")
	assert.Contains(t, out.String(), "* F1")

	marker, err := store.Get(ctx, waypoint.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "1.0", marker)
}

func TestRunner_RequiresIO(t *testing.T) {
	h := newHost(t, "1.0", memory.NewStore())
	p, err := h.Activate(context.Background())
	require.NoError(t, err)

	assert.Error(t, waypoint.NewRunner().Run(context.Background(), p))
	assert.NoError(t, waypoint.NewRunner().Run(context.Background(), nil))
}
