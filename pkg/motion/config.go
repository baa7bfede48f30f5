package motion

import "time"

// TransitionKind is the moment in a flow's lifecycle being animated.
type TransitionKind int

const (
	Entrance   TransitionKind = iota // Elements appearing for the first time.
	PageChange                       // Moving between pages.
	Exit                             // Flow completion, before teardown.
	Micro                            // Small feedback such as the page indicator pulse.
)

// String implements fmt.Stringer.
func (k TransitionKind) String() string {
	switch k {
	case Entrance:
		return "entrance"
	case PageChange:
		return "page_change"
	case Exit:
		return "exit"
	case Micro:
		return "micro"
	default:
		return "unknown"
	}
}

// TransitionStyle is the visual treatment of a page change.
type TransitionStyle string

const (
	Slide TransitionStyle = "slide" // Directional slide combined with a fade.
	Fade  TransitionStyle = "fade"  // Opacity only.
	Scale TransitionStyle = "scale" // Slight zoom with a directional offset.
)

// Easing names the timing curve of a Spec.
type Easing string

const (
	EaseNone   Easing = "none"
	EaseOut    Easing = "ease_out"
	EaseSpring Easing = "spring"
)

// Spring holds response/damping parameters:
// Response is the period of the undamped oscillation, Damping the damping ratio.
type Spring struct {
	Response time.Duration
	Damping  float64
}

// IsZero reports whether the spring is unset.
func (s Spring) IsZero() bool {
	return s.Response <= 0
}

// Config tunes the onboarding animations.
type Config struct {
	// Style is used for page changes when motion is allowed.
	Style TransitionStyle
	// ReducedStyle is reported for page changes under reduce motion. Those
	// changes are still Instant.
	ReducedStyle TransitionStyle

	Duration     time.Duration // Ease-based animations such as fades.
	ExitDuration time.Duration // Exit animation before the completion callback.
	EntranceBase time.Duration // Delay before the first staggered element.
	EntranceStep time.Duration // Additional delay per element index.

	PageSpring  Spring
	MicroSpring Spring

	// ButtonSpring animates the continue button of the feature sheet, which
	// enters ButtonDelay after the sheet appears regardless of its row count.
	ButtonSpring Spring
	ButtonDelay  time.Duration

	// Haptics enables tactile (or terminal bell) feedback on page changes.
	Haptics bool
}

// DefaultConfig returns timings tuned to feel like system onboarding.
func DefaultConfig() Config {
	return Config{
		Style:        Slide,
		ReducedStyle: Fade,
		Duration:     350 * time.Millisecond,
		ExitDuration: 300 * time.Millisecond,
		EntranceBase: 200 * time.Millisecond,
		EntranceStep: 100 * time.Millisecond,
		PageSpring:   Spring{Response: 550 * time.Millisecond, Damping: 0.82},
		MicroSpring:  Spring{Response: 440 * time.Millisecond, Damping: 0.9},
		ButtonSpring: Spring{Response: 600 * time.Millisecond, Damping: 0.7},
		ButtonDelay:  600 * time.Millisecond,
		Haptics:      true,
	}
}

// normalized clamps negative values and fills unset styles.
func (c Config) normalized() Config {
	c.Duration = clamp(c.Duration)
	c.ExitDuration = clamp(c.ExitDuration)
	c.EntranceBase = clamp(c.EntranceBase)
	c.EntranceStep = clamp(c.EntranceStep)
	c.PageSpring.Response = clamp(c.PageSpring.Response)
	c.MicroSpring.Response = clamp(c.MicroSpring.Response)
	c.ButtonSpring.Response = clamp(c.ButtonSpring.Response)
	c.ButtonDelay = clamp(c.ButtonDelay)
	for _, sp := range []*Spring{&c.PageSpring, &c.MicroSpring, &c.ButtonSpring} {
		if sp.Damping < 0 {
			sp.Damping = 0
		}
	}
	if c.Style == "" {
		c.Style = Slide
	}
	if c.ReducedStyle == "" {
		c.ReducedStyle = Fade
	}
	return c
}

func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}
