/*
Package motion describes how onboarding transitions should animate.

It is a policy package rather than an animation engine: a Sequencer turns a
Config, a transition kind, a direction and the user's reduce-motion preference
into a Spec (durations, stagger, easing, spring parameters). Presenters read
the Spec and animate however their toolkit allows.

Two pieces carry behavior of their own:

  - Entrance tracks which elements already played their entrance so that a
    re-render never replays it.
  - Sequencer.Exit schedules the completion callback after the exit animation
    and returns a Pending handle that guarantees the callback runs at most once,
    even when the presentation is torn down early (Flush) or abandoned (Cancel).

When reduce motion is requested every Spec is Instant: zero duration, zero
delay, zero stagger and no haptics.
*/
package motion
