package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/waypoint"
	"github.com/aretw0/waypoint/pkg/content"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/aretw0/waypoint/pkg/registry"
)

// loadContent reads the onboarding document, if one was given.
func loadContent(opts Options) (*content.Content, error) {
	if opts.ContentPath == "" {
		return nil, nil
	}
	c, err := content.LoadFile(opts.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("error loading content: %w", err)
	}
	return c, nil
}

// builtinActions returns the actions content documents can name.
func builtinActions(logger *slog.Logger) *registry.Registry {
	reg := registry.NewRegistry()
	reg.Register("log", func(ctx context.Context, args map[string]any) error {
		logger.InfoContext(ctx, "page action", "message", args["message"])
		return nil
	})
	reg.Register("noop", func(context.Context, map[string]any) error { return nil })
	reg.OnError(func(name string, err error) {
		logger.Error("page action failed", "action", name, "err", err)
	})
	return reg
}

// createHost initializes a Host with standard CLI conventions.
func createHost(opts Options, store ports.MarkerStore, logger *slog.Logger, hooks domain.LifecycleHooks) (*waypoint.Host, error) {
	version, err := opts.resolveVersion()
	if err != nil {
		return nil, err
	}
	c, err := loadContent(opts)
	if err != nil {
		return nil, err
	}

	hostOpts := []waypoint.Option{
		waypoint.WithStore(store),
		waypoint.WithLogger(logger),
		waypoint.WithLifecycleHooks(hooks),
		waypoint.WithRegistry(builtinActions(logger)),
	}
	if c != nil {
		hostOpts = append(hostOpts, waypoint.WithContent(c))
	}
	if opts.Key != "" {
		hostOpts = append(hostOpts, waypoint.WithKey(opts.Key))
	}
	if opts.AppName != "" {
		hostOpts = append(hostOpts, waypoint.WithAppName(opts.AppName))
	}
	if opts.ReduceMotion {
		hostOpts = append(hostOpts, waypoint.WithReduceMotionProbe(func() bool { return true }))
	}

	host, err := waypoint.New(version, hostOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing host: %w", err)
	}
	return host, nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPresent: func(ctx context.Context, e *domain.PresentEvent) {
			logger.Debug("Present", "flow", e.Flow, "last_seen", e.LastSeen, "reduce_motion", e.ReduceMotion)
		},
		OnPageChange: func(ctx context.Context, e *domain.PageEvent) {
			logger.Debug("Page Change", "from", e.From, "to", e.To, "direction", e.Direction)
		},
		OnPageAction: func(ctx context.Context, e *domain.PageEvent) {
			logger.Debug("Page Action", "page", e.From)
		},
		OnFinish: func(ctx context.Context, e *domain.FinishEvent) {
			logger.Debug("Finish", "flow", e.Flow, "skipped", e.Skipped, "page", e.Page)
		},
		OnReset: func(ctx context.Context, e *domain.ResetEvent) {
			logger.Debug("Reset", "key", e.Key)
		},
	}
}
