package hal

import (
	"math"

	"modemhal-go/x/mathx"
	"modemhal-go/x/timex"
)

// TimeS is the time since boot in seconds.
func (h *HAL) TimeS() uint32 { return timex.Seconds32(h.cfg.Clock()) }

// CompensatedTimeS is TimeS; no drift compensation is applied.
func (h *HAL) CompensatedTimeS() uint32 { return h.TimeS() }

func (h *HAL) TimeCompensationS() int32 { return 0 }

// TimeMS wraps after ~49.7 days.
func (h *HAL) TimeMS() uint32 { return timex.Millis32(h.cfg.Clock()) }

// Time100us wraps after ~4.97 days.
func (h *HAL) Time100us() uint32 { return timex.Units100us32(h.cfg.Clock()) }

// RadioIRQTimestamp100us returns the current 100 µs time, not the time of
// the last radio edge.
func (h *HAL) RadioIRQTimestamp100us() uint32 { return h.Time100us() }

// BoardDelayMS is the settle delay the engine inserts around radio wake-up.
func (h *HAL) BoardDelayMS() uint32 { return 1 }

// -----------------------------------------------------------------------------
// Random
// -----------------------------------------------------------------------------

func (h *HAL) Random() uint32 {
	h.rngMu.Lock()
	defer h.rngMu.Unlock()
	return h.rng.Uint32()
}

// RandomInRange returns a value in [a, b] (either order).
func (h *HAL) RandomInRange(a, b uint32) uint32 {
	lo, hi := mathx.Ordered(a, b)
	h.rngMu.Lock()
	defer h.rngMu.Unlock()
	if lo == 0 && hi == math.MaxUint32 {
		return h.rng.Uint32()
	}
	return lo + h.rng.Uint32N(hi-lo+1)
}

// SignedRandomInRange returns a value in [a, b] (either order).
func (h *HAL) SignedRandomInRange(a, b int32) int32 {
	lo, hi := mathx.Ordered(a, b)
	span := uint32(int64(hi) - int64(lo))
	h.rngMu.Lock()
	defer h.rngMu.Unlock()
	if span == math.MaxUint32 {
		return int32(h.rng.Uint32())
	}
	return int32(int64(lo) + int64(h.rng.Uint32N(span+1)))
}

// -----------------------------------------------------------------------------
// Environment
// -----------------------------------------------------------------------------

// BatteryLevel returns the charge level, or 0 when it cannot be read.
func (h *HAL) BatteryLevel() uint8 {
	v, err := h.cfg.Battery()
	if err != nil {
		h.log.Warn("battery level unavailable", "err", err)
		return 0
	}
	return v
}

// Temperature returns degrees Celsius saturated to int8, or -128 when it
// cannot be read.
func (h *HAL) Temperature() int8 {
	v, err := h.cfg.Temperature()
	if err != nil {
		h.log.Warn("temperature unavailable", "err", err)
		return math.MinInt8
	}
	return mathx.SatInt8(v)
}

// Voltage returns the supply voltage in 20 mV steps, saturated at 255, or 0
// when it cannot be read.
func (h *HAL) Voltage() uint8 {
	mv, err := h.cfg.VoltageMV()
	if err != nil {
		h.log.Warn("voltage unavailable", "err", err)
		return 0
	}
	return mathx.SatUint8(mv / 20)
}
