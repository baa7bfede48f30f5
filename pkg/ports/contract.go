package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunMarkerStoreContract runs a suite of tests to verify that a MarkerStore
// implementation adheres to the defined interface contract.
func RunMarkerStoreContract(t *testing.T, store MarkerStore) {
	ctx := context.Background()
	key := "contract.last_seen_version." + time.Now().Format("20060102150405.000000000")

	t.Run("Get Missing", func(t *testing.T) {
		_, err := store.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, domain.ErrMarkerNotFound)
	})

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, "1.0"))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "1.0", got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, "1.0"))
		require.NoError(t, store.Set(ctx, key, "2.0-beta+build.7"))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "2.0-beta+build.7", got)
	})

	t.Run("Empty Value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, ""))

		got, err := store.Get(ctx, key)
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrMarkerNotFound)
		} else {
			assert.Empty(t, got)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, key, "3.0"))
		require.NoError(t, store.Delete(ctx, key))

		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrMarkerNotFound, "Get after Delete should return ErrMarkerNotFound")

		require.NoError(t, store.Delete(ctx, key), "Delete is idempotent")
	})

	t.Run("Keys Are Independent", func(t *testing.T) {
		a, b := key+".a", key+".b"
		defer func() {
			_ = store.Delete(ctx, a)
			_ = store.Delete(ctx, b)
		}()

		require.NoError(t, store.Set(ctx, a, "1.0"))
		require.NoError(t, store.Set(ctx, b, "2.0"))
		require.NoError(t, store.Delete(ctx, a))

		got, err := store.Get(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, "2.0", got)
	})
}
