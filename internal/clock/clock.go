// Package clock provides the time source and cancellable scheduled tasks used by the engine.
package clock

import (
	"sync/atomic"
	"time"
)

// Timer is a cancellable scheduled task.
type Timer interface {
	// Stop cancels the task. Stopping twice, or after it ran, is harmless.
	Stop()
}

// Clock supplies the current time and one-shot scheduling.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type repeating struct {
	c       Clock
	d       time.Duration
	f       func()
	current Timer
	stopped bool
}

// Every runs f every d until the returned Timer is stopped.
func Every(c Clock, d time.Duration, f func()) Timer {
	r := &repeating{c: c, d: d, f: f}
	r.arm()
	return r
}

func (r *repeating) arm() {
	r.current = r.c.AfterFunc(r.d, func() {
		if r.stopped {
			return
		}
		r.arm()
		r.f()
	})
}

func (r *repeating) Stop() {
	r.stopped = true
	if r.current != nil {
		r.current.Stop()
	}
}

// Dispatch is a wall-clock Clock whose callbacks are handed to a dispatch
// function instead of running on the timer goroutine. The dispatch function
// must deliver them to the goroutine that owns the engine.
type Dispatch struct {
	dispatch func(func())
}

// NewDispatch returns a Dispatch clock posting fired callbacks through dispatch.
func NewDispatch(dispatch func(func())) *Dispatch {
	return &Dispatch{dispatch: dispatch}
}

// Now implements Clock.
func (d *Dispatch) Now() time.Time {
	return time.Now()
}

type dispatchTimer struct {
	t       *time.Timer
	stopped atomic.Bool
}

func (t *dispatchTimer) Stop() {
	t.stopped.Store(true)
	t.t.Stop()
}

// AfterFunc implements Clock. A callback already queued for dispatch when the
// timer is stopped is dropped on delivery.
func (d *Dispatch) AfterFunc(delay time.Duration, f func()) Timer {
	dt := &dispatchTimer{}
	dt.t = time.AfterFunc(delay, func() {
		d.dispatch(func() {
			if dt.stopped.Load() {
				return
			}
			f()
		})
	})
	return dt
}
