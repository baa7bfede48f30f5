package motion

import (
	"context"
	"sync"
	"time"
)

// Timer is a scheduled callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d without blocking the caller.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Pending is a completion callback waiting for its exit animation.
// The callback runs at most once, whichever of the timer, Flush or Cancel
// gets there first.
type Pending struct {
	once sync.Once
	done chan struct{}
	fn   func()

	mu        sync.Mutex
	timer     Timer
	fired     bool
	cancelled bool
}

func newPending(fn func()) *Pending {
	return &Pending{
		fn:   fn,
		done: make(chan struct{}),
	}
}

func (p *Pending) setTimer(t Timer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timer = t
}

func (p *Pending) stopTimer() {
	p.mu.Lock()
	t := p.timer
	p.mu.Unlock()
	if t != nil {
		t.Stop()
	}
}

func (p *Pending) fire() {
	p.once.Do(func() {
		p.mu.Lock()
		p.fired = true
		p.mu.Unlock()
		if p.fn != nil {
			p.fn()
		}
		close(p.done)
	})
}

// Flush runs the callback now if it has not run or been cancelled yet.
// Use it when the presentation is dismissed before the exit animation ends.
func (p *Pending) Flush() {
	p.stopTimer()
	p.fire()
}

// Cancel drops the callback if it has not run yet. It reports whether the
// callback was prevented.
func (p *Pending) Cancel() bool {
	p.stopTimer()
	prevented := false
	p.once.Do(func() {
		p.mu.Lock()
		p.cancelled = true
		p.mu.Unlock()
		prevented = true
		close(p.done)
	})
	return prevented
}

// Done is closed once the callback ran or was cancelled.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Fired reports whether the callback ran.
func (p *Pending) Fired() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fired
}

// Cancelled reports whether the callback was dropped by Cancel.
func (p *Pending) Cancelled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancelled
}

// Wait blocks until the callback ran or was cancelled, or ctx is done.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
