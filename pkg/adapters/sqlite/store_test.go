package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/aretw0/waypoint/pkg/adapters/sqlite"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("sql.Open failed: %v", err)
	}
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestSQLiteStore_Contract(t *testing.T) {
	store, err := sqlite.New(openDB(t, ":memory:"))
	require.NoError(t, err)

	ports.RunMarkerStoreContract(t, store)
}

func TestSQLiteStore_PersistsAcrossConnections(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "markers.db")
	ctx := context.Background()

	first, err := sqlite.New(openDB(t, dsn))
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "last_seen_version", "1.1"))

	second, err := sqlite.New(openDB(t, dsn))
	require.NoError(t, err, "schema creation is idempotent")

	got, err := second.Get(ctx, "last_seen_version")
	require.NoError(t, err)
	assert.Equal(t, "1.1", got)
}
