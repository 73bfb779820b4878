package timex

import (
	"time"

	"modemhal-go/x/mathx"
)

// RTCHz is the LR11xx real-time clock rate used for radio-side timeouts.
const RTCHz = 32768

// MsToRTCSteps converts milliseconds to RTC steps, truncating.
func MsToRTCSteps(ms uint32) uint32 {
	return mathx.MulDiv(ms, RTCHz, 1000)
}

// Seconds32 returns whole seconds of d, truncated to 32 bits.
func Seconds32(d time.Duration) uint32 { return uint32(d / time.Second) }

// Millis32 returns d in milliseconds modulo 2^32 (wraps after ~49.7 days).
func Millis32(d time.Duration) uint32 { return uint32(d / time.Millisecond) }

// Units100us32 returns d in 100 µs units modulo 2^32 (wraps after ~4.97 days).
func Units100us32(d time.Duration) uint32 { return uint32(d / (100 * time.Microsecond)) }
