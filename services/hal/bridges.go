// services/hal/bridges.go
package hal

import (
	"context"
	"time"

	"modemhal-go/services/hal/internal/irqbridge"
	"modemhal-go/services/hal/internal/timerbridge"
)

// -----------------------------------------------------------------------------
// Timer
// -----------------------------------------------------------------------------

// StartTimer arms the single modem timer. A pending timer is replaced and its
// callback never runs.
func (h *HAL) StartTimer(delay time.Duration, cb func(any), arg any) {
	h.timer.Start(delay, cb, arg)
}

// StopTimer cancels the pending expiry. An expiry already waiting for
// Dispatch is not retracted.
func (h *HAL) StopTimer() { h.timer.Stop() }

// -----------------------------------------------------------------------------
// Radio IRQ
// -----------------------------------------------------------------------------

// ConfigureRadioIRQ stores the radio event callback and unmasks the line.
func (h *HAL) ConfigureRadioIRQ(cb func(any), arg any) {
	if err := h.irq.Configure(cb, arg); err != nil {
		h.log.Error("radio irq attach failed", "pin", h.cfg.EventPin.Number(), "err", err)
	}
}

// EnableModemIRQ re-enables timer callbacks and unmasks the radio line.
func (h *HAL) EnableModemIRQ() {
	h.irqOn.Store(true)
	if err := h.irq.Enable(); err != nil {
		h.log.Error("radio irq enable failed", "err", err)
	}
}

// DisableModemIRQ masks the radio line; timer expiries handled while
// disabled are discarded, not deferred.
func (h *HAL) DisableModemIRQ() {
	h.irqOn.Store(false)
	if err := h.irq.Disable(); err != nil {
		h.log.Error("radio irq disable failed", "err", err)
	}
}

// ModemIRQEnabled reports the modem-level enable flag.
func (h *HAL) ModemIRQEnabled() bool { return h.irqOn.Load() }

// ResetRadioIRQ detaches and reattaches the radio line handler.
func (h *HAL) ResetRadioIRQ() {
	if err := h.irq.Reset(); err != nil {
		h.log.Error("radio irq reset failed", "err", err)
	}
}

// ClearPendingRadioIRQ swallows the next radio signal.
func (h *HAL) ClearPendingRadioIRQ() { h.irq.MarkPendingConsumed() }

// -----------------------------------------------------------------------------
// Deferred dispatch
// -----------------------------------------------------------------------------

// Dispatch waits up to wait for one unit of deferred work (a timer expiry or
// a radio signal) and handles it on the calling goroutine. wait < 0 blocks
// until work arrives or ctx ends; wait == 0 only polls. It reports whether a
// unit was consumed, including expiries that were dropped.
func (h *HAL) Dispatch(ctx context.Context, wait time.Duration) bool {
	// Ready work first, so a zero wait never races the wake timer.
	select {
	case tok := <-h.timer.C():
		h.runTimer(tok)
		return true
	case <-h.irq.Signals():
		h.runIRQ()
		return true
	default:
	}
	if wait == 0 {
		return false
	}

	var wake <-chan time.Time
	if wait > 0 {
		h.armWake(wait)
		defer h.wake.Stop()
		wake = h.wake.C
	}
	select {
	case tok := <-h.timer.C():
		h.runTimer(tok)
		return true
	case <-h.irq.Signals():
		h.runIRQ()
		return true
	case <-wake:
		return false
	case <-ctx.Done():
		return false
	}
}

func (h *HAL) runTimer(tok uint32) {
	switch h.timer.Handle(tok) {
	case timerbridge.Dropped:
		h.log.Debug("timer callback dropped, modem irq disabled")
	case timerbridge.Stale:
		h.log.Debug("stale timer expiry ignored")
	}
}

func (h *HAL) runIRQ() {
	switch h.irq.Handle() {
	case irqbridge.Suppressed:
		h.log.Info("radio irq suppressed (pending cleared)")
	case irqbridge.Ignored:
		h.log.Debug("radio irq with no callback")
	}
}

// armWake stops, drains and rearms the reusable wake timer.
func (h *HAL) armWake(d time.Duration) {
	if !h.wake.Stop() {
		select {
		case <-h.wake.C:
		default:
		}
	}
	h.wake.Reset(d)
}
