package motion

import (
	"time"

	"github.com/aretw0/waypoint/pkg/domain"
)

const (
	slideDistance   = 10.0 // Parallax offset, in presenter units, for Slide.
	scaleDistance   = 12.0 // Directional offset for Scale.
	scaleFrom       = 0.98
	entranceRise    = 18.0 // Vertical offset entrance elements rise from.
	microPulseRange = 2.0
)

// Spec is the resolved animation policy for one transition.
type Spec struct {
	Kind      TransitionKind
	Style     TransitionStyle
	Direction domain.Direction
	Easing    Easing

	Duration time.Duration
	Delay    time.Duration // Delay before the first element starts.
	Step     time.Duration // Extra delay per element index.
	Spring   Spring

	// Offset is where the incoming element starts, relative to its resting
	// position. Positive values are towards the trailing edge.
	Offset float64
	// ScaleFrom is the starting scale of the incoming element (1 = no zoom).
	ScaleFrom float64

	// Instant means the state change applies immediately with no animation.
	Instant bool
	Haptics bool
}

// ItemDelay returns the stagger delay for the element at index.
func (s Spec) ItemDelay(index int) time.Duration {
	if s.Instant || index < 0 {
		return 0
	}
	return clamp(s.Delay + time.Duration(index)*s.Step)
}

// Sequencer resolves Specs from a Config.
type Sequencer struct {
	cfg       Config
	scheduler Scheduler
}

// SequencerOption configures a Sequencer.
type SequencerOption func(*Sequencer)

// WithScheduler replaces the timer used for exit delays.
func WithScheduler(s Scheduler) SequencerOption {
	return func(seq *Sequencer) {
		if s != nil {
			seq.scheduler = s
		}
	}
}

// NewSequencer creates a Sequencer. Negative durations in cfg are clamped to zero.
func NewSequencer(cfg Config, opts ...SequencerOption) *Sequencer {
	seq := &Sequencer{
		cfg:       cfg.normalized(),
		scheduler: realScheduler{},
	}
	for _, opt := range opts {
		opt(seq)
	}
	return seq
}

// Default returns a Sequencer with DefaultConfig and real timers.
func Default() *Sequencer {
	return NewSequencer(DefaultConfig())
}

// Config returns the normalized configuration.
func (s *Sequencer) Config() Config {
	return s.cfg
}

// Plan resolves the animation for a transition.
// Direction only matters for PageChange.
func (s *Sequencer) Plan(kind TransitionKind, dir domain.Direction, reduceMotion bool) Spec {
	if reduceMotion {
		return Spec{
			Kind:      kind,
			Style:     s.cfg.ReducedStyle,
			Direction: dir,
			Easing:    EaseNone,
			ScaleFrom: 1,
			Instant:   true,
		}
	}

	switch kind {
	case Entrance:
		return Spec{
			Kind:      kind,
			Style:     Fade,
			Direction: dir,
			Easing:    EaseOut,
			Duration:  s.cfg.Duration,
			Delay:     s.cfg.EntranceBase,
			Step:      s.cfg.EntranceStep,
			Spring:    s.cfg.PageSpring,
			Offset:    entranceRise,
			ScaleFrom: 1,
		}

	case PageChange:
		spec := Spec{
			Kind:      kind,
			Style:     s.cfg.Style,
			Direction: dir,
			Easing:    EaseSpring,
			Duration:  s.cfg.PageSpring.Response,
			Spring:    s.cfg.PageSpring,
			ScaleFrom: 1,
			Haptics:   s.cfg.Haptics,
		}
		switch s.cfg.Style {
		case Slide:
			spec.Offset = dir.Sign() * slideDistance
		case Scale:
			spec.Offset = dir.Sign() * scaleDistance
			spec.ScaleFrom = scaleFrom
		}
		return spec

	case Exit:
		return Spec{
			Kind:      kind,
			Style:     Fade,
			Direction: dir,
			Easing:    EaseOut,
			Duration:  s.cfg.ExitDuration,
			ScaleFrom: 1,
		}

	default:
		return Spec{
			Kind:      Micro,
			Style:     Fade,
			Direction: dir,
			Easing:    EaseSpring,
			Duration:  s.cfg.MicroSpring.Response,
			Spring:    s.cfg.MicroSpring,
			Offset:    -microPulseRange,
			ScaleFrom: 1,
		}
	}
}

// Delay returns the entrance stagger for the element at index:
// EntranceBase + index*EntranceStep, or zero under reduce motion.
func (s *Sequencer) Delay(index int, reduceMotion bool) time.Duration {
	return s.Plan(Entrance, domain.Forward, reduceMotion).ItemDelay(index)
}

// Button resolves the entrance of the feature sheet's continue button: a
// spring rise that starts after ButtonDelay. Under reduce motion it is Instant
// with no delay and no spring.
func (s *Sequencer) Button(reduceMotion bool) Spec {
	if reduceMotion {
		return s.Plan(Entrance, domain.Forward, true)
	}
	return Spec{
		Kind:      Entrance,
		Style:     Fade,
		Direction: domain.Forward,
		Easing:    EaseSpring,
		Duration:  s.cfg.ButtonSpring.Response,
		Delay:     s.cfg.ButtonDelay,
		Spring:    s.cfg.ButtonSpring,
		Offset:    entranceRise,
		ScaleFrom: 1,
	}
}

// Exit schedules done after the exit animation. Under reduce motion done runs
// before Exit returns. The returned Pending runs done at most once.
func (s *Sequencer) Exit(reduceMotion bool, done func()) *Pending {
	p := newPending(done)
	spec := s.Plan(Exit, domain.Forward, reduceMotion)
	if spec.Instant || spec.Duration == 0 {
		p.fire()
		return p
	}
	p.setTimer(s.scheduler.AfterFunc(spec.Duration, p.fire))
	return p
}
