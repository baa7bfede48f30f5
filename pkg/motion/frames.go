package motion

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	maxAnimationTime = 3 * time.Second
	settleEpsilon    = 0.01
)

// Frames samples the animated value from `from` to `to` at fps frames per
// second. Spring specs are simulated with a damped harmonic oscillator; ease
// specs follow a cubic ease-out over Duration. The last frame is always `to`,
// and instant specs yield only `to`.
func (s Spec) Frames(from, to float64, fps int) []float64 {
	if fps <= 0 {
		fps = 60
	}
	if s.Instant || s.Easing == EaseNone {
		return []float64{to}
	}
	if s.Easing == EaseSpring && !s.Spring.IsZero() {
		return springFrames(s.Spring, from, to, fps)
	}
	return easeOutFrames(s.Duration, from, to, fps)
}

func springFrames(sp Spring, from, to float64, fps int) []float64 {
	angular := 2 * math.Pi / sp.Response.Seconds()
	spring := harmonica.NewSpring(harmonica.FPS(fps), angular, sp.Damping)

	limit := int(maxAnimationTime.Seconds() * float64(fps))
	frames := make([]float64, 0, fps)
	pos, vel := from, 0.0
	for i := 0; i < limit; i++ {
		pos, vel = spring.Update(pos, vel, to)
		if math.Abs(pos-to) < settleEpsilon && math.Abs(vel) < settleEpsilon {
			break
		}
		frames = append(frames, pos)
	}
	return append(frames, to)
}

func easeOutFrames(d time.Duration, from, to float64, fps int) []float64 {
	n := int(math.Ceil(d.Seconds() * float64(fps)))
	if n <= 1 {
		return []float64{to}
	}
	frames := make([]float64, 0, n)
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n)
		eased := 1 - math.Pow(1-t, 3)
		frames = append(frames, from+(to-from)*eased)
	}
	return append(frames, to)
}
