package flow

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/motion"
)

type options struct {
	ctx          context.Context
	onFinish     func()
	reduceMotion bool
	sequencer    *motion.Sequencer
	hooks        domain.LifecycleHooks
	logger       *slog.Logger
	kind         domain.FlowKind
}

// Option configures a PageFlow or a FeatureSheet.
type Option func(*options)

// WithOnFinish sets the completion callback. It runs exactly once, after the
// exit animation.
func WithOnFinish(fn func()) Option {
	return func(o *options) {
		o.onFinish = fn
	}
}

// WithReduceMotion makes every transition instant.
func WithReduceMotion(reduce bool) Option {
	return func(o *options) {
		o.reduceMotion = reduce
	}
}

// WithSequencer sets the motion policy (default: motion.Default()).
func WithSequencer(seq *motion.Sequencer) Option {
	return func(o *options) {
		o.sequencer = seq
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithLogger sets a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithContext sets the context passed to lifecycle hooks.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

func newOptions(kind domain.FlowKind, opts []Option) options {
	o := options{kind: kind}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ctx == nil {
		o.ctx = context.Background()
	}
	if o.sequencer == nil {
		o.sequencer = motion.Default()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

func (o *options) base(t domain.EventType) domain.EventBase {
	return domain.EventBase{
		Timestamp: time.Now(),
		Type:      t,
		Flow:      o.kind,
	}
}
