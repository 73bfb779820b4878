//go:build !rp2040 && !rp2350 && !(linux && arm64)

package hal

import (
	"testing"

	"modemhal-go/services/hal/internal/platform"
)

func TestBoardConfigHost(t *testing.T) {
	cfg, err := BoardConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.EventPin == nil || cfg.Radio == nil {
		t.Fatalf("incomplete config %+v", cfg)
	}
	if BoardName() != platform.Setup().Name {
		t.Fatal("board name")
	}
	if Console() != nil {
		t.Fatal("host builds log to stderr")
	}

	cfg.Battery = func() (uint8, error) { return 0, ErrUnavailable }
	cfg.Temperature = func() (int32, error) { return 0, ErrUnavailable }
	cfg.VoltageMV = func() (uint32, error) { return 0, ErrUnavailable }
	h := New(cfg)
	h.StartTCXO()

	bus, ok := cfg.Radio.(*platform.HostSPI)
	if !ok {
		t.Fatalf("radio bus %T", cfg.Radio)
	}
	want := 0
	if cfg.TCXO.Present {
		want = 1
	}
	if got := len(bus.Frames()); got != want {
		t.Fatalf("tcxo frames %d want %d", got, want)
	}
	if cfg.RadioCS != nil {
		cfg.RadioCS(true)
		cfg.RadioCS(false)
	}
}
