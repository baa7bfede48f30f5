package waypoint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/waypoint/pkg/adapters/memory"
	"github.com/aretw0/waypoint/pkg/content"
	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/flow"
	"github.com/aretw0/waypoint/pkg/gate"
	"github.com/aretw0/waypoint/pkg/motion"
	"github.com/aretw0/waypoint/pkg/ports"
	"github.com/aretw0/waypoint/pkg/registry"
)

// DefaultKey is the store key holding the last seen version.
const DefaultKey = "waypoint.last_seen_version"

// Environment variables consulted by the default reduce-motion probe.
const (
	EnvReduceMotion       = "WAYPOINT_REDUCE_MOTION"
	EnvReduceMotionGlobal = "REDUCE_MOTION"
)

// Host decides which onboarding flow to present and records completion.
type Host struct {
	version  string
	store    ports.MarkerStore
	key      string
	appName  string
	accent   domain.Color
	pages    []domain.Page
	features []domain.FeatureRow
	content  *content.Content
	registry *registry.Registry

	animation    motion.Config
	scheduler    motion.Scheduler
	reduceMotion func() bool

	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option defines a functional option for configuring the Host.
type Option func(*Host)

// WithStore sets where the version marker is kept (default: in memory).
func WithStore(s ports.MarkerStore) Option {
	return func(h *Host) {
		h.store = s
	}
}

// WithKey overrides the marker key (default: DefaultKey).
func WithKey(key string) Option {
	return func(h *Host) {
		h.key = key
	}
}

// WithAppName sets the name used in headers (default: the executable name).
func WithAppName(name string) Option {
	return func(h *Host) {
		h.appName = name
	}
}

// WithAccent sets the accent color of buttons and indicators.
func WithAccent(c domain.Color) Option {
	return func(h *Host) {
		h.accent = c
	}
}

// WithPages sets the first-launch tour.
func WithPages(pages []domain.Page) Option {
	return func(h *Host) {
		h.pages = slices.Clone(pages)
	}
}

// WithFeatures sets the rows of the "What's New" sheet.
func WithFeatures(rows []domain.FeatureRow) Option {
	return func(h *Host) {
		h.features = slices.Clone(rows)
	}
}

// WithContent uses a loaded content document for pages, features, app name
// and accent. Explicit WithPages, WithFeatures, WithAppName and WithAccent
// take precedence.
func WithContent(c *content.Content) Option {
	return func(h *Host) {
		h.content = c
	}
}

// WithRegistry resolves the named actions declared in content.
func WithRegistry(r *registry.Registry) Option {
	return func(h *Host) {
		h.registry = r
	}
}

// WithAnimation sets the motion configuration (default: motion.DefaultConfig()).
func WithAnimation(cfg motion.Config) Option {
	return func(h *Host) {
		h.animation = cfg
	}
}

// WithScheduler sets the scheduler used for exit animations.
func WithScheduler(s motion.Scheduler) Option {
	return func(h *Host) {
		h.scheduler = s
	}
}

// WithReduceMotionProbe sets the function asked, on every activation, whether
// the user prefers reduced motion.
func WithReduceMotionProbe(probe func() bool) Option {
	return func(h *Host) {
		h.reduceMotion = probe
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(h *Host) {
		h.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// New creates a Host for the running version.
// It returns domain.ErrMissingVersion when currentVersion is empty.
func New(currentVersion string, opts ...Option) (*Host, error) {
	if strings.TrimSpace(currentVersion) == "" {
		return nil, domain.ErrMissingVersion
	}

	h := &Host{
		version:      currentVersion,
		key:          DefaultKey,
		animation:    motion.DefaultConfig(),
		reduceMotion: EnvReduceMotionProbe,
	}
	for _, opt := range opts {
		opt(h)
	}

	if h.key == "" {
		return nil, errors.New("marker key must not be empty")
	}
	if h.store == nil {
		h.store = memory.NewStore()
	}
	if h.logger == nil {
		h.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if h.content != nil {
		if h.pages == nil {
			// Surface unknown actions now rather than at the first activation.
			if _, err := h.content.BuildPages(context.Background(), h.registry); err != nil {
				return nil, fmt.Errorf("invalid content: %w", err)
			}
		}
		if h.features == nil {
			h.features = h.content.BuildFeatures()
		}
		if h.appName == "" {
			h.appName = h.content.AppName
		}
		if h.accent == "" {
			h.accent = h.content.Accent
		}
	}
	if h.appName == "" {
		h.appName = executableName()
	}

	h.logger = h.logger.With("version", h.version)
	return h, nil
}

// Version returns the running version.
func (h *Host) Version() string { return h.version }

// Key returns the marker key.
func (h *Host) Key() string { return h.key }

// AppName returns the resolved application name.
func (h *Host) AppName() string { return h.appName }

// Sequencer returns a sequencer for the host's motion configuration.
func (h *Host) Sequencer() *motion.Sequencer {
	var opts []motion.SequencerOption
	if h.scheduler != nil {
		opts = append(opts, motion.WithScheduler(h.scheduler))
	}
	return motion.NewSequencer(h.animation, opts...)
}

// LastSeen returns the stored marker, or "" if the user was never onboarded.
func (h *Host) LastSeen(ctx context.Context) (string, error) {
	v, err := h.store.Get(ctx, h.key)
	if errors.Is(err, domain.ErrMarkerNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read version marker: %w", err)
	}
	return v, nil
}

// Check reports which flow the next activation would present, without
// presenting it.
func (h *Host) Check(ctx context.Context) (domain.FlowKind, error) {
	lastSeen, err := h.LastSeen(ctx)
	if err != nil {
		return domain.FlowNone, err
	}
	return gate.Decide(lastSeen, h.version), nil
}

// Activate decides the flow and builds its controller. It returns a nil
// Presentation when nothing needs to be shown. The reduce-motion probe is
// consulted on every call.
func (h *Host) Activate(ctx context.Context) (*Presentation, error) {
	lastSeen, err := h.LastSeen(ctx)
	if err != nil {
		return nil, err
	}

	kind := gate.Decide(lastSeen, h.version)
	reduce := h.reduceMotion != nil && h.reduceMotion()

	h.logger.Info("onboarding decision", "flow", kind, "last_seen", lastSeen, "reduce_motion", reduce)
	if h.hooks.OnPresent != nil {
		h.hooks.OnPresent(ctx, &domain.PresentEvent{
			EventBase:      domain.EventBase{Timestamp: time.Now(), Type: domain.EventPresent, Flow: kind},
			LastSeen:       lastSeen,
			CurrentVersion: h.version,
			ReduceMotion:   reduce,
		})
	}

	if kind == domain.FlowNone {
		return nil, nil
	}

	p := newPresentation(ctx, h, kind, reduce)
	seq := h.Sequencer()
	flowOpts := []flow.Option{
		flow.WithContext(ctx),
		flow.WithOnFinish(p.complete),
		flow.WithReduceMotion(reduce),
		flow.WithSequencer(seq),
		flow.WithLifecycleHooks(h.hooks),
		flow.WithLogger(h.logger.With("flow", kind.String())),
	}
	p.Sequencer = seq

	switch kind {
	case domain.FlowFirstLaunch:
		pages, err := h.resolvePages(ctx)
		if err != nil {
			return nil, err
		}
		pf, err := flow.NewPageFlow(pages, flowOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to build first-launch flow: %w", err)
		}
		p.Flow = pf
	case domain.FlowWhatsNew:
		p.Sheet = flow.NewFeatureSheet(h.features, flowOpts...)
	}
	return p, nil
}

func (h *Host) resolvePages(ctx context.Context) ([]domain.Page, error) {
	if h.pages != nil || h.content == nil {
		return h.pages, nil
	}
	pages, err := h.content.BuildPages(ctx, h.registry)
	if err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}
	return pages, nil
}

// MarkSeen records the running version as onboarded.
func (h *Host) MarkSeen(ctx context.Context) error {
	if err := h.store.Set(ctx, h.key, h.version); err != nil {
		return fmt.Errorf("failed to write version marker: %w", err)
	}
	h.logger.Debug("version marker written", "key", h.key)
	return nil
}

// Reset clears the marker so the next activation presents the first-launch
// tour again. Resetting an empty store is not an error.
func (h *Host) Reset(ctx context.Context) error {
	if err := h.store.Delete(ctx, h.key); err != nil {
		return fmt.Errorf("failed to reset version marker: %w", err)
	}

	h.logger.Info("version marker reset", "key", h.key)
	if h.hooks.OnReset != nil {
		h.hooks.OnReset(ctx, &domain.ResetEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventReset, Flow: domain.FlowNone},
			Key:       h.key,
		})
	}
	return nil
}

// EnvReduceMotionProbe reports whether WAYPOINT_REDUCE_MOTION or
// REDUCE_MOTION is set to a true value.
func EnvReduceMotionProbe() bool {
	for _, name := range []string{EnvReduceMotion, EnvReduceMotionGlobal} {
		if v, ok := os.LookupEnv(name); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil && b {
				return true
			}
		}
	}
	return false
}

func executableName() string {
	name := filepath.Base(os.Args[0])
	return strings.TrimSuffix(name, filepath.Ext(name))
}
