package timex

import (
	"testing"
	"time"
)

func TestMsToRTCSteps(t *testing.T) {
	cases := map[uint32]uint32{0: 0, 1: 32, 5: 163, 1000: 32768}
	for ms, want := range cases {
		if got := MsToRTCSteps(ms); got != want {
			t.Errorf("MsToRTCSteps(%d)=%d want %d", ms, got, want)
		}
	}
}

func TestTruncatingUnits(t *testing.T) {
	d := 3*time.Second + 250*time.Millisecond + 30*time.Microsecond
	if Seconds32(d) != 3 {
		t.Fatalf("Seconds32 = %d", Seconds32(d))
	}
	if Millis32(d) != 3250 {
		t.Fatalf("Millis32 = %d", Millis32(d))
	}
	if Units100us32(d) != 32500 {
		t.Fatalf("Units100us32 = %d", Units100us32(d))
	}
	// 2^32 ms later the counter is back where it started.
	wrap := time.Duration(1<<32) * time.Millisecond
	if Millis32(d+wrap) != Millis32(d) {
		t.Fatal("Millis32 should wrap modulo 2^32")
	}
}
