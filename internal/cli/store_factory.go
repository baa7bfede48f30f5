package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/waypoint/pkg/adapters/file"
	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/persistence/middleware"
	redisAdapter "github.com/aretw0/waypoint/pkg/adapters/redis"
	sqliteAdapter "github.com/aretw0/waypoint/pkg/adapters/sqlite"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStore initializes a marker store from a location string:
//
//	""                  file store under the user config dir
//	memory:             in-process, forgotten on exit
//	file:DIR or DIR     JSON files in DIR
//	redis://host:6379/0 Redis
//	sqlite:PATH         SQLite database file
//
// The returned closer releases connections and must be called.
func OpenStore(ctx context.Context, location string) (ports.MarkerStore, io.Closer, error) {
	switch {
	case location == "":
		return file.New(file.DefaultPath()), nopCloser{}, nil

	case location == "memory:" || location == "memory":
		return memory.NewStore(), nopCloser{}, nil

	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		opt, err := redis.ParseURL(location)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis url: %w", err)
		}
		store := redisAdapter.NewFromClient(redis.NewClient(opt))
		if err := store.Ping(ctx); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return store, store, nil

	case strings.HasPrefix(location, "sqlite:"):
		path := strings.TrimPrefix(location, "sqlite:")
		if path == "" {
			return nil, nil, fmt.Errorf("sqlite store needs a path (sqlite:PATH)")
		}
		db, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		store, err := sqliteAdapter.New(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db, nil

	default:
		return file.New(strings.TrimPrefix(location, "file:")), nopCloser{}, nil
	}
}

// openMarkerStore opens opts.Store and applies the namespace and sealing
// middlewares. The secret falls back to WAYPOINT_STORE_SECRET.
func openMarkerStore(ctx context.Context, opts Options) (ports.MarkerStore, io.Closer, error) {
	store, closer, err := OpenStore(ctx, opts.Store)
	if err != nil {
		return nil, nil, err
	}

	mws := []middleware.Middleware{middleware.NewNamespaceMiddleware(opts.Namespace)}

	secret := opts.StoreSecret
	if secret == "" {
		secret = os.Getenv("WAYPOINT_STORE_SECRET")
	}
	if secret != "" {
		key, err := middleware.ParseKey(secret)
		if err != nil {
			closer.Close()
			return nil, nil, fmt.Errorf("store secret: %w", err)
		}
		sealed, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			closer.Close()
			return nil, nil, err
		}
		mws = append(mws, sealed)
	}

	return middleware.Chain(store, mws...), closer, nil
}
