// Package event provides a small named-event publish/subscribe facility.
package event

import (
	"sync"

	"github.com/rs/zerolog"
)

// Listener receives the payload of an emitted event.
type Listener func(payload any)

// Handle identifies a single registration.
type Handle uint64

type registration struct {
	handle Handle
	fn     Listener
}

// Emitter dispatches named events to registered listeners synchronously.
type Emitter struct {
	mu        sync.Mutex
	next      Handle
	listeners map[string][]registration
	log       zerolog.Logger
}

// NewEmitter returns an Emitter that reports listener panics to log.
func NewEmitter(log zerolog.Logger) *Emitter {
	return &Emitter{
		listeners: map[string][]registration{},
		log:       log,
	}
}

// Subscribe registers fn for name and returns the handle of that registration.
func (e *Emitter) Subscribe(name string, fn Listener) Handle {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.next++
	h := e.next
	e.listeners[name] = append(e.listeners[name], registration{handle: h, fn: fn})
	return h
}

// On registers fn for name and returns a function removing exactly that registration.
func (e *Emitter) On(name string, fn Listener) func() {
	h := e.Subscribe(name, fn)
	return func() { e.Off(name, h) }
}

// Off removes the registration h for name. Unknown handles are ignored.
func (e *Emitter) Off(name string, h Handle) {
	e.mu.Lock()
	defer e.mu.Unlock()
	regs := e.listeners[name]
	for i, reg := range regs {
		if reg.handle != h {
			continue
		}
		out := make([]registration, 0, len(regs)-1)
		out = append(out, regs[:i]...)
		out = append(out, regs[i+1:]...)
		if len(out) == 0 {
			delete(e.listeners, name)
		} else {
			e.listeners[name] = out
		}
		return
	}
}

// Once registers fn to run on the first emission of name only.
func (e *Emitter) Once(name string, fn Listener) func() {
	var unsubscribe func()
	unsubscribe = e.On(name, func(payload any) {
		unsubscribe()
		fn(payload)
	})
	return unsubscribe
}

// Emit invokes the listeners registered for name in registration order.
// Listeners added or removed during emission take effect on the next Emit.
// A panicking listener is logged and does not stop the remaining ones.
func (e *Emitter) Emit(name string, payload any) {
	e.mu.Lock()
	regs := e.listeners[name]
	e.mu.Unlock()
	for _, reg := range regs {
		e.invoke(name, reg.fn, payload)
	}
}

// listenerCount reports how many listeners are registered for name.
func (e *Emitter) listenerCount(name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[name])
}

func (e *Emitter) invoke(name string, fn Listener, payload any) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Str("event", name).Interface("panic", r).Msg("event listener failed")
		}
	}()
	fn(payload)
}
