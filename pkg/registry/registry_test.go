package registry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/waypoint/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Bind(t *testing.T) {
	r := registry.NewRegistry()

	var got map[string]any
	r.Register("enable_sync", func(ctx context.Context, args map[string]any) error {
		got = args
		return nil
	})

	action, err := r.Bind(context.Background(), "enable_sync", map[string]any{"interval": 5})
	require.NoError(t, err)

	action.Run()
	assert.Equal(t, map[string]any{"interval": 5}, got)
	assert.Equal(t, []string{"enable_sync"}, r.Names())
}

func TestRegistry_BindUnknown(t *testing.T) {
	r := registry.NewRegistry()
	_, err := r.Bind(context.Background(), "missing", nil)
	assert.ErrorContains(t, err, "missing")
}

func TestRegistry_ErrorHandler(t *testing.T) {
	r := registry.NewRegistry()
	boom := errors.New("boom")
	r.Register("fail", func(context.Context, map[string]any) error { return boom })

	var failed string
	var failure error
	r.OnError(func(name string, err error) {
		failed, failure = name, err
	})

	action, err := r.Bind(context.Background(), "fail", nil)
	require.NoError(t, err)
	action.Run()

	assert.Equal(t, "fail", failed)
	assert.ErrorIs(t, failure, boom)
}
