// services/hal/internal/irqbridge/bridge.go
package irqbridge

import (
	"sync"
	"sync/atomic"

	"modemhal-go/services/hal/internal/halcore"
)

// Outcome reports what Handle did with one raw signal.
type Outcome uint8

const (
	Invoked    Outcome = iota // callback ran
	Suppressed                // swallowed by the suppress-next latch
	Ignored                   // no callback configured
)

func (o Outcome) String() string {
	switch o {
	case Invoked:
		return "invoked"
	case Suppressed:
		return "suppressed"
	default:
		return "ignored"
	}
}

// Bridge owns the radio event line. The ISR only enqueues; callbacks run
// on the worker through Handle.
type Bridge struct {
	pin  halcore.IRQPin
	edge halcore.Edge

	// Written by ISR; MUST NOT block the ISR:
	sigQ  chan struct{}
	drops atomic.Uint32

	mu         sync.Mutex
	cb         func(any)
	arg        any
	configured bool
	enabled    bool // line unmasked (handler attached)

	// Set by MarkPendingConsumed, cleared by the next signal handled.
	suppressNext bool
}

func New(pin halcore.IRQPin, edge halcore.Edge, queue int) *Bridge {
	if queue <= 0 {
		queue = 8
	}
	if edge == halcore.EdgeNone {
		edge = halcore.EdgeRising
	}
	return &Bridge{
		pin:  pin,
		edge: edge,
		sigQ: make(chan struct{}, queue),
	}
}

// ISR handler: non-blocking channel send.
func (b *Bridge) isr() {
	select {
	case b.sigQ <- struct{}{}:
	default:
		b.drops.Add(1) // protect ISR path
	}
}

// Configure stores the callback and unmasks the line.
func (b *Bridge) Configure(cb func(any), arg any) error {
	b.mu.Lock()
	b.cb, b.arg = cb, arg
	b.configured = cb != nil
	b.mu.Unlock()
	return b.Enable()
}

// Enable unmasks the line. Calling it while enabled does nothing.
func (b *Bridge) Enable() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.enabled {
		return nil
	}
	if err := b.pin.SetIRQ(b.edge, b.isr); err != nil {
		return err
	}
	b.enabled = true
	return nil
}

// Disable masks the line. Calling it while disabled does nothing.
func (b *Bridge) Disable() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.enabled {
		return nil
	}
	if err := b.pin.ClearIRQ(); err != nil {
		return err
	}
	b.enabled = false
	return nil
}

// Reset detaches the handler, drops queued signals and the suppress
// latch, then reattaches if the line was enabled.
func (b *Bridge) Reset() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.pin.ClearIRQ(); err != nil {
		return err
	}
drain:
	for {
		select {
		case <-b.sigQ:
		default:
			break drain
		}
	}
	b.suppressNext = false
	if b.enabled {
		return b.pin.SetIRQ(b.edge, b.isr)
	}
	return nil
}

// MarkPendingConsumed makes the next raw signal a no-op. It stands in for
// clearing a latched interrupt, which the platforms here cannot do.
func (b *Bridge) MarkPendingConsumed() {
	b.mu.Lock()
	b.suppressNext = true
	b.mu.Unlock()
}

// Signals delivers raw line events to the worker.
func (b *Bridge) Signals() <-chan struct{} { return b.sigQ }

// Handle consumes one signal received from Signals.
func (b *Bridge) Handle() Outcome {
	b.mu.Lock()
	if b.suppressNext {
		b.suppressNext = false
		b.mu.Unlock()
		return Suppressed
	}
	cb, arg, ok := b.cb, b.arg, b.configured
	b.mu.Unlock()
	if !ok {
		return Ignored
	}
	cb(arg)
	return Invoked
}

func (b *Bridge) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

func (b *Bridge) Configured() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.configured
}

func (b *Bridge) ISRDrops() uint32 { return b.drops.Load() }
