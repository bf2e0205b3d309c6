package event

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestEmitInRegistrationOrder(t *testing.T) {
	e := NewEmitter(zerolog.Nop())
	var got []string
	e.On("tick", func(payload any) { got = append(got, "a:"+payload.(string)) })
	e.On("tick", func(payload any) { got = append(got, "b:"+payload.(string)) })
	e.Emit("tick", "1")
	if strings.Join(got, ",") != "a:1,b:1" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestUnsubscribeRemovesOnlyThatRegistration(t *testing.T) {
	e := NewEmitter(zerolog.Nop())
	calls := 0
	fn := func(any) { calls++ }
	off := e.On("x", fn)
	e.On("x", fn)
	off()
	off()
	e.Emit("x", nil)
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if e.listenerCount("x") != 1 {
		t.Fatalf("expected 1 listener, got %d", e.listenerCount("x"))
	}
}

func TestOffUnknownHandleIsNoop(t *testing.T) {
	e := NewEmitter(zerolog.Nop())
	h := e.Subscribe("x", func(any) {})
	e.Off("y", h)
	e.Off("x", h+100)
	if e.listenerCount("x") != 1 {
		t.Fatalf("expected listener to remain")
	}
	e.Off("x", h)
	if e.listenerCount("x") != 0 {
		t.Fatalf("expected listener to be removed")
	}
}

func TestOnceFiresOnce(t *testing.T) {
	e := NewEmitter(zerolog.Nop())
	calls := 0
	after := 0
	e.Once("x", func(any) { calls++ })
	e.On("x", func(any) { after++ })
	e.Emit("x", nil)
	e.Emit("x", nil)
	if calls != 1 {
		t.Fatalf("expected once listener to fire once, got %d", calls)
	}
	if after != 2 {
		t.Fatalf("expected following listener to fire on every emit, got %d", after)
	}
}

func TestPanickingListenerIsLoggedAndIsolated(t *testing.T) {
	var buf bytes.Buffer
	e := NewEmitter(zerolog.New(&buf))
	reached := false
	e.On("boom", func(any) { panic("listener exploded") })
	e.On("boom", func(any) { reached = true })
	e.Emit("boom", nil)
	if !reached {
		t.Fatalf("expected second listener to run")
	}
	out := buf.String()
	if !strings.Contains(out, "listener exploded") || !strings.Contains(out, `"event":"boom"`) {
		t.Fatalf("expected panic to be logged, got %q", out)
	}
}

func TestEmitWithoutListeners(t *testing.T) {
	e := NewEmitter(zerolog.Nop())
	e.Emit("nobody", 42)
}
