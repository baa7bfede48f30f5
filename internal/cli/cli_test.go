package cli_test

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/waypoint/internal/cli"
	"github.com/aretw0/waypoint/pkg/content"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeContent(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tour.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content.ExampleYAML), 0o644))
	return path
}

func baseOptions(t *testing.T) cli.Options {
	return cli.Options{
		Version:      "1.0",
		ContentPath:  writeContent(t),
		Store:        "file:" + t.TempDir(),
		ReduceMotion: true,
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	locations := []string{
		"memory:",
		"file:" + t.TempDir(),
		t.TempDir(),
		"sqlite:" + filepath.Join(t.TempDir(), "markers.db"),
		"redis://" + mr.Addr() + "/0",
	}

	for _, loc := range locations {
		t.Run(loc, func(t *testing.T) {
			store, closer, err := cli.OpenStore(ctx, loc)
			require.NoError(t, err)
			defer closer.Close()

			require.NoError(t, store.Set(ctx, "k", "v1"))
			v, err := store.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v1", v)
		})
	}
}

func TestOpenStore_Errors(t *testing.T) {
	ctx := context.Background()

	_, _, err := cli.OpenStore(ctx, "sqlite:")
	assert.Error(t, err)

	_, _, err = cli.OpenStore(ctx, "redis://127.0.0.1:1/0")
	assert.Error(t, err)
}

func TestRun_HeadlessMarksSeen(t *testing.T) {
	ctx := context.Background()
	opts := baseOptions(t)
	opts.Headless = true

	var out bytes.Buffer
	require.NoError(t, cli.Run(ctx, opts, cli.IO{In: strings.NewReader(""), Out: &out, Err: io.Discard}))
	assert.Contains(t, out.String(), "Welcome to Acme")

	var check bytes.Buffer
	kind, err := cli.Check(ctx, opts, &check)
	require.NoError(t, err)
	assert.Equal(t, domain.FlowNone, kind)
	assert.Contains(t, check.String(), "last seen: 1.0")

	opts.Version = "1.1"
	kind, err = cli.Check(ctx, opts, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, domain.FlowWhatsNew, kind)

	out.Reset()
	require.NoError(t, cli.Run(ctx, opts, cli.IO{Out: &out}))
	assert.Contains(t, out.String(), "What's New in Acme CLI")
	assert.Contains(t, out.String(), "Faster sync")
}

func TestRun_PlainQuitKeepsMarker(t *testing.T) {
	ctx := context.Background()
	opts := baseOptions(t)
	opts.Plain = true

	var out bytes.Buffer
	require.NoError(t, cli.Run(ctx, opts, cli.IO{In: strings.NewReader("q\n"), Out: &out}))
	assert.Contains(t, out.String(), "it will show again")

	kind, err := cli.Check(ctx, opts, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, domain.FlowFirstLaunch, kind)
}

func TestRun_NothingToShow(t *testing.T) {
	ctx := context.Background()
	opts := baseOptions(t)
	opts.Headless = true
	require.NoError(t, cli.Run(ctx, opts, cli.IO{Out: io.Discard}))

	opts.Headless = false
	opts.Plain = true
	var out bytes.Buffer
	require.NoError(t, cli.Run(ctx, opts, cli.IO{In: strings.NewReader(""), Out: &out}))
	assert.Contains(t, out.String(), "Nothing new")
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	opts := baseOptions(t)
	opts.Headless = true
	require.NoError(t, cli.Run(ctx, opts, cli.IO{Out: io.Discard}))

	var out bytes.Buffer
	require.NoError(t, cli.Reset(ctx, opts, &out))
	require.NoError(t, cli.Reset(ctx, opts, &out))
	assert.Contains(t, out.String(), "Reset")

	kind, err := cli.Check(ctx, opts, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, domain.FlowFirstLaunch, kind)
}

func TestRun_SealedAndNamespacedMarkers(t *testing.T) {
	ctx := context.Background()
	opts := baseOptions(t)
	opts.Headless = true
	opts.Namespace = "acme:"
	opts.StoreSecret = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="
	require.NoError(t, cli.Run(ctx, opts, cli.IO{Out: io.Discard}))

	kind, err := cli.Check(ctx, opts, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, domain.FlowNone, kind)

	other := opts
	other.Namespace = "other:"
	kind, err = cli.Check(ctx, other, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, domain.FlowFirstLaunch, kind)

	wrongKey := opts
	wrongKey.StoreSecret = "ZmVkY2JhOTg3NjU0MzIxMGZlZGNiYTk4NzY1NDMyMTA="
	_, err = cli.Check(ctx, wrongKey, io.Discard)
	assert.Error(t, err)

	badKey := opts
	badKey.StoreSecret = "short"
	_, err = cli.Check(ctx, badKey, io.Discard)
	assert.Error(t, err)
}

func TestMissingVersion(t *testing.T) {
	t.Setenv("WAYPOINT_VERSION", "")
	opts := baseOptions(t)
	opts.Version = ""

	_, err := cli.Check(context.Background(), opts, io.Discard)
	assert.ErrorIs(t, err, cli.ErrNoVersion)

	t.Setenv("WAYPOINT_VERSION", "9.9")
	var out bytes.Buffer
	_, err = cli.Check(context.Background(), opts, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "9.9")
}

func TestGraph(t *testing.T) {
	ctx := context.Background()
	opts := baseOptions(t)

	var out bytes.Buffer
	require.NoError(t, cli.Graph(ctx, opts, cli.GraphOptions{Page: -1}, &out))
	assert.Contains(t, out.String(), `page_1[["Stay in the loop"]]`)
	assert.NotContains(t, out.String(), "classDef")

	out.Reset()
	require.NoError(t, cli.Graph(ctx, opts, cli.GraphOptions{Decision: true}, &out))
	assert.Contains(t, out.String(), `"== 1.0"`)

	out.Reset()
	require.NoError(t, cli.Graph(ctx, opts, cli.GraphOptions{Page: 2}, &out))
	assert.Contains(t, out.String(), "class page_0 visited;")
	assert.Contains(t, out.String(), "class page_1 visited;")
	assert.Contains(t, out.String(), "class page_2 current;")

	assert.Error(t, cli.Graph(ctx, opts, cli.GraphOptions{Page: 3}, io.Discard))

	opts.ContentPath = ""
	assert.Error(t, cli.Graph(ctx, opts, cli.GraphOptions{Page: -1}, io.Discard))
}

func TestGraph_ActionWithoutTitle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	doc := "pages:\n  - title: Hello\n    action: noop\n  - title: Bye\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	opts := baseOptions(t)
	opts.ContentPath = path

	var out bytes.Buffer
	require.NoError(t, cli.Graph(context.Background(), opts, cli.GraphOptions{Page: -1}, &out))
	assert.Contains(t, out.String(), `page_0[["Hello"]]`)
	assert.Contains(t, out.String(), `page_1["Bye"]`)
	assert.Contains(t, out.String(), `page_0 -- "Next" --> page_1`)

	require.NoError(t, os.WriteFile(path, []byte("pages:\n  - title: Hello\n    action: missing\n"), 0o644))
	assert.Error(t, cli.Graph(context.Background(), opts, cli.GraphOptions{Page: -1}, io.Discard))
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "waypoint.yaml")
	require.NoError(t, cli.Init(path, io.Discard))

	c, err := content.LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, c.Pages, 3)

	assert.Error(t, cli.Init(path, io.Discard), "existing files are not overwritten")
}

func TestServeHandler(t *testing.T) {
	opts := baseOptions(t)
	handler, closer, err := cli.NewServeHandler(context.Background(), opts)
	require.NoError(t, err)
	defer closer.Close()

	ts := httptest.NewServer(handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/decision?client=abc")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), "waypoint_presentations_total")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestServe_StopsOnCancel(t *testing.T) {
	opts := baseOptions(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- cli.Serve(ctx, opts, "127.0.0.1:0", io.Discard) }()
	cancel()

	assert.NoError(t, <-done)
}

func TestServe_ShutdownClosesEventStreams(t *testing.T) {
	opts := baseOptions(t)
	opts.Store = "memory:"
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- cli.ServeListener(ctx, opts, ln, io.Discard) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String() + "/events?client=abc")
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	defer resp.Body.Close()

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: ping\n", line)

	start := time.Now()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.Less(t, time.Since(start), 2*time.Second)
	case <-time.After(4 * time.Second):
		t.Fatal("serve did not return with a subscriber connected")
	}
}
