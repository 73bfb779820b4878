package logx

import (
	"bytes"
	"errors"
	"testing"
)

func capture(t *testing.T, level Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(level)
	t.Cleanup(func() {
		SetOutput(nil)
		SetLevel(LevelInfo)
	})
	return &buf
}

func TestLineFormat(t *testing.T) {
	buf := capture(t, LevelDebug)
	New("hal").Info("timer armed", "delay_ms", uint32(250), "ok", true, "err", errors.New("boom"))
	want := "[hal] info: timer armed delay_ms=250 ok=true err=boom\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestThresholdFilters(t *testing.T) {
	buf := capture(t, LevelWarn)
	l := New("x")
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown", "n", -3)
	if buf.String() != "[x] warn: shown n=-3\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestHexDump(t *testing.T) {
	buf := capture(t, LevelDebug)
	New("trace").Hex(LevelInfo, "DevEui", []byte{0x00, 0x16, 0xC0})
	if buf.String() != "[trace] info: DevEui: 00 16 C0\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestOddKeyValues(t *testing.T) {
	buf := capture(t, LevelDebug)
	New("m").Error("lonely", "dangling")
	if buf.String() != "[m] error: lonely dangling\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
