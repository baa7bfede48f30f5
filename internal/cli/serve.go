package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/waypoint/pkg/adapters/http"
	"github.com/aretw0/waypoint/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 5 * time.Second

// NewServeHandler builds the HTTP decision service with a metrics registry.
func NewServeHandler(ctx context.Context, opts Options) (http.Handler, io.Closer, error) {
	server, closer, err := newServer(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	return httpAdapter.NewHandler(server), closer, nil
}

func newServer(ctx context.Context, opts Options) (*httpAdapter.Server, io.Closer, error) {
	version, err := opts.resolveVersion()
	if err != nil {
		return nil, nil, err
	}
	logger := createLogger(opts)

	store, closer, err := openMarkerStore(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	c, err := loadContent(opts)
	if err != nil {
		closer.Close()
		return nil, nil, err
	}

	metrics := observability.NewMetrics()
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics.MustRegister(reg)

	hooks := metrics.Hooks()
	if opts.Debug {
		hooks = hooks.Merge(createDebugHooks(logger))
	}

	serverOpts := []httpAdapter.Option{
		httpAdapter.WithLogger(logger),
		httpAdapter.WithLifecycleHooks(hooks),
		httpAdapter.WithMetrics(reg),
	}
	if c != nil {
		serverOpts = append(serverOpts, httpAdapter.WithContent(c))
	}
	if opts.Key != "" {
		serverOpts = append(serverOpts, httpAdapter.WithKeyPrefix(opts.Key+":"))
	}

	return httpAdapter.NewServer(store, version, serverOpts...), closer, nil
}

// Serve runs the HTTP decision service on addr until ctx ends, then shuts
// down gracefully.
func Serve(ctx context.Context, opts Options, addr string, w io.Writer) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ServeListener(ctx, opts, ln, w)
}

// ServeListener is Serve on an open listener, which it takes ownership of.
func ServeListener(ctx context.Context, opts Options, ln net.Listener, w io.Writer) error {
	server, closer, err := newServer(ctx, opts)
	if err != nil {
		ln.Close()
		return err
	}
	defer closer.Close()

	srv := &http.Server{
		Handler:           httpAdapter.NewHandler(server),
		ReadHeaderTimeout: 10 * time.Second,
	}
	// Event streams never go idle on their own.
	srv.RegisterOnShutdown(server.Streams.Close)

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(w, "Starting waypoint server on %s", ln.Addr())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		printSystemMessage(w, "Shutting down...")

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
			return fmt.Errorf("graceful shutdown did not complete in %v: %w", shutdownTimeout, err)
		}
		printSystemMessage(w, "Server stopped gracefully")
		return nil
	}
}
