package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/waypoint/pkg/adapters/file"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunMarkerStoreContract(t, store)
}

func TestFileStore_OnDiskFormat(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "markers")
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "last_seen_version", "1.4.2"))

	data, err := os.ReadFile(filepath.Join(dir, "last_seen_version.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"last_seen_version","version":"1.4.2"}`, string(data))
}

func TestFileStore_RejectsUnsafeKeys(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, key := range []string{"", "../escape", `a\b`, ".."} {
		assert.Error(t, store.Set(ctx, key, "1.0"), key)
		_, err := store.Get(ctx, key)
		assert.Error(t, err, key)
		assert.NotErrorIs(t, err, domain.ErrMarkerNotFound, key)
	}
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644))
	_, err := store.Get(context.Background(), "broken")
	assert.Error(t, err)
}
