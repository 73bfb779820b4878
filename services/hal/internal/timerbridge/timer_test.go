package timerbridge

import (
	"sync/atomic"
	"testing"
	"time"
)

// drain handles every token that arrives within window and returns the outcomes.
func drain(t *testing.T, tm *Timer, window time.Duration) []Outcome {
	t.Helper()
	var out []Outcome
	deadline := time.After(window)
	for {
		select {
		case tok := <-tm.C():
			out = append(out, tm.Handle(tok))
		case <-deadline:
			return out
		}
	}
}

func TestTimerFiresOnce(t *testing.T) {
	tm := New(nil)
	var calls int
	var got any
	tm.Start(5*time.Millisecond, func(a any) { calls++; got = a }, "ctx")

	out := drain(t, tm, 60*time.Millisecond)
	if len(out) != 1 || out[0] != Fired {
		t.Fatalf("outcomes %v", out)
	}
	if calls != 1 || got != "ctx" {
		t.Fatalf("calls=%d arg=%v", calls, got)
	}
	if tm.Fired() != 1 {
		t.Fatalf("Fired counter %d", tm.Fired())
	}
}

func TestTimerRestartReplacesPrevious(t *testing.T) {
	tm := New(nil)
	var first, second int
	tm.Start(5*time.Millisecond, func(any) { first++ }, nil)
	tm.Start(10*time.Millisecond, func(any) { second++ }, nil)

	drain(t, tm, 60*time.Millisecond)
	if first != 0 || second != 1 {
		t.Fatalf("first=%d second=%d", first, second)
	}
}

func TestTimerStaleTokenIgnored(t *testing.T) {
	tm := New(nil)
	var first, second int
	tm.Start(time.Millisecond, func(any) { first++ }, nil)

	// Let the first expiry post its token, then re-arm before handling it.
	var tok uint32
	select {
	case tok = <-tm.C():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for expiry")
	}
	tm.Start(5*time.Millisecond, func(any) { second++ }, nil)

	if o := tm.Handle(tok); o != Stale {
		t.Fatalf("old token outcome %v", o)
	}
	drain(t, tm, 60*time.Millisecond)
	if first != 0 || second != 1 || tm.Stale() != 1 {
		t.Fatalf("first=%d second=%d stale=%d", first, second, tm.Stale())
	}
}

func TestTimerStopBeforeExpiry(t *testing.T) {
	tm := New(nil)
	var calls int
	tm.Start(20*time.Millisecond, func(any) { calls++ }, nil)
	tm.Stop()
	tm.Stop()

	if out := drain(t, tm, 50*time.Millisecond); len(out) != 0 || calls != 0 {
		t.Fatalf("outcomes %v calls=%d", out, calls)
	}
}

func TestTimerStopAfterExpiryIsBestEffort(t *testing.T) {
	tm := New(nil)
	var calls int
	tm.Start(time.Millisecond, func(any) { calls++ }, nil)

	var tok uint32
	select {
	case tok = <-tm.C():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timeout waiting for expiry")
	}
	tm.Stop()
	if o := tm.Handle(tok); o != Fired || calls != 1 {
		t.Fatalf("queued token after Stop: outcome=%v calls=%d", o, calls)
	}
}

// Expiry while modem IRQs are disabled loses the callback; re-enabling does
// not bring it back.
func TestTimerDroppedWhileDisabled(t *testing.T) {
	var enabled atomic.Bool
	tm := New(enabled.Load)
	var calls int
	tm.Start(2*time.Millisecond, func(any) { calls++ }, nil)

	out := drain(t, tm, 40*time.Millisecond)
	if len(out) != 1 || out[0] != Dropped {
		t.Fatalf("outcomes %v", out)
	}
	enabled.Store(true)
	if out := drain(t, tm, 20*time.Millisecond); len(out) != 0 || calls != 0 {
		t.Fatalf("dropped callback resurfaced: %v calls=%d", out, calls)
	}
	if tm.Dropped() != 1 {
		t.Fatalf("Dropped counter %d", tm.Dropped())
	}
}

func TestOutcomeString(t *testing.T) {
	if Fired.String() != "fired" || Dropped.String() != "dropped" || Stale.String() != "stale" {
		t.Fatal("Outcome names")
	}
}
