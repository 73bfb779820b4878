// services/hal/internal/timerbridge/timer.go
package timerbridge

import (
	"sync"
	"sync/atomic"
	"time"
)

// Outcome reports what Handle did with a token.
type Outcome uint8

const (
	Fired   Outcome = iota // callback ran
	Dropped                // modem IRQs disabled, callback discarded
	Stale                  // token from a replaced registration
)

func (o Outcome) String() string {
	switch o {
	case Fired:
		return "fired"
	case Dropped:
		return "dropped"
	default:
		return "stale"
	}
}

// Timer is a single-slot one-shot timer. Expiry happens on the runtime's
// timer goroutine and only posts a generation token to a capacity-1
// mailbox; the callback runs later when the worker passes the token to
// Handle.
type Timer struct {
	gen     atomic.Uint32
	mailbox chan uint32
	enabled func() bool

	mu  sync.Mutex
	t   *time.Timer
	cb  func(any)
	arg any

	fired   atomic.Uint32
	dropped atomic.Uint32
	stale   atomic.Uint32
}

// New returns an idle timer. enabled is consulted on the worker side for
// every expiry; nil means always enabled.
func New(enabled func() bool) *Timer {
	if enabled == nil {
		enabled = func() bool { return true }
	}
	return &Timer{
		mailbox: make(chan uint32, 1),
		enabled: enabled,
	}
}

// Start arms the slot, replacing any previous registration without
// invoking it.
func (t *Timer) Start(d time.Duration, cb func(any), arg any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.t != nil {
		t.t.Stop()
	}
	g := t.gen.Add(1)
	t.cb, t.arg = cb, arg
	t.t = time.AfterFunc(d, func() { t.expire(g) })
}

// Stop cancels a pending expiry. A token already in the mailbox is not
// retracted.
func (t *Timer) Stop() {
	t.mu.Lock()
	if t.t != nil {
		t.t.Stop()
		t.t = nil
	}
	t.mu.Unlock()
}

// C delivers expiry tokens to the worker.
func (t *Timer) C() <-chan uint32 { return t.mailbox }

// Handle runs on the worker for a token received from C.
func (t *Timer) Handle(tok uint32) Outcome {
	if tok != t.gen.Load() {
		t.stale.Add(1)
		return Stale
	}
	if !t.enabled() {
		t.dropped.Add(1)
		return Dropped
	}
	t.mu.Lock()
	cb, arg := t.cb, t.arg
	t.mu.Unlock()
	t.fired.Add(1)
	if cb != nil {
		cb(arg)
	}
	return Fired
}

// expire runs on the timer goroutine: never blocks, never calls back.
func (t *Timer) expire(g uint32) {
	if g != t.gen.Load() {
		t.stale.Add(1)
		return
	}
	for {
		select {
		case t.mailbox <- g:
			return
		default:
		}
		// Slot occupied: the newer token wins.
		select {
		case <-t.mailbox:
		default:
		}
	}
}

func (t *Timer) Fired() uint32   { return t.fired.Load() }
func (t *Timer) Dropped() uint32 { return t.dropped.Load() }
func (t *Timer) Stale() uint32   { return t.stale.Load() }
