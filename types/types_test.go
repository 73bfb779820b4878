package types

import "testing"

func TestEventKindNames(t *testing.T) {
	if EventDownData.String() != "down_data" || EventMiddleware3.String() != "middleware_3" {
		t.Fatal("event names out of step with kinds")
	}
	if EventKind(200).String() != "unknown" {
		t.Fatal("out of range kind should be unknown")
	}
	for k := EventNone; k <= EventMiddleware3; k++ {
		if k.String() == "" {
			t.Fatalf("kind %d has no name", k)
		}
	}
}

func TestDownlinkScaling(t *testing.T) {
	d := &Downlink{RSSI: 10, SNR: -22}
	if d.RSSIdBm() != -54 {
		t.Fatalf("RSSIdBm = %d", d.RSSIdBm())
	}
	if d.SNRdB() != -5 {
		t.Fatalf("SNRdB = %d", d.SNRdB())
	}
}
