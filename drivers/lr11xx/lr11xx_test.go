package lr11xx

import (
	"errors"
	"math"
	"testing"

	"modemhal-go/types"
)

func TestTxConfigBoundaries(t *testing.T) {
	cases := []struct {
		name     string
		freq     uint32
		target   int16
		class    types.PAClass
		sel      types.PASel
		supply   types.Supply
		expected int8
	}{
		{"floor", 868_100_000, -100, types.PAClassLPHP, types.PASelLP, types.SupplyRegulated, -17},
		{"ceiling", 868_100_000, 30, types.PAClassLPHP, types.PASelHP, types.SupplyBattery, 22},
		{"lp top", 868_100_000, 15, types.PAClassLPHP, types.PASelLP, types.SupplyRegulated, 15},
		{"hp first", 868_100_000, 16, types.PAClassLPHP, types.PASelHP, types.SupplyBattery, 16},
		{"us915", 915_000_000, 14, types.PAClassLPHP, types.PASelLP, types.SupplyRegulated, 14},
		{"hf zero", 2_450_000_000, 0, types.PAClassHF, types.PASelHF, types.SupplyRegulated, 0},
		{"hf ceiling", 2_450_000_000, 20, types.PAClassHF, types.PASelHF, types.SupplyRegulated, 13},
		{"hf floor", 2_400_000_000, -40, types.PAClassHF, types.PASelHF, types.SupplyRegulated, -18},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := ComputeTxConfig(c.freq, c.target, nil)
			if cfg.Class != c.class || cfg.PASel != c.sel || cfg.Supply != c.supply {
				t.Fatalf("got class=%v sel=%v supply=%v", cfg.Class, cfg.PASel, cfg.Supply)
			}
			if cfg.ExpectedDBm != c.expected {
				t.Fatalf("expected %d, got %d", c.expected, cfg.ExpectedDBm)
			}
			if cfg.Ramp != Ramp48us {
				t.Fatalf("ramp = %d", cfg.Ramp)
			}
		})
	}
}

func TestTxConfigHPSupplySwitch(t *testing.T) {
	for p := HPMinDBm; p <= HPMaxDBm; p++ {
		cfg := TxConfigFor(types.PAClassHP, p)
		want := types.SupplyRegulated
		if p > HPRegulatedMaxDBm {
			want = types.SupplyBattery
		}
		if cfg.Supply != want || cfg.PASel != types.PASelHP {
			t.Fatalf("%d dBm: supply=%v sel=%v", p, cfg.Supply, cfg.PASel)
		}
	}
	if TxConfigFor(types.PAClassLP, 30).Supply != types.SupplyRegulated {
		t.Fatal("lp stage must stay on the regulator")
	}
}

func TestTxConfigSweepStaysInRange(t *testing.T) {
	freqs := []uint32{433_000_000, 868_100_000, 915_000_000, 2_400_000_000, 2_480_000_000}
	for _, f := range freqs {
		lo, hi := PowerRange(ClassFor(f))
		for target := int16(-60); target <= 60; target++ {
			cfg := ComputeTxConfig(f, target, nil)
			if int16(cfg.ExpectedDBm) < lo || int16(cfg.ExpectedDBm) > hi {
				t.Fatalf("f=%d target=%d: expected %d outside [%d,%d]", f, target, cfg.ExpectedDBm, lo, hi)
			}
			if int16(cfg.ConfiguredDBm) < lo || int16(cfg.ConfiguredDBm) > hi {
				t.Fatalf("f=%d target=%d: configured %d outside [%d,%d]", f, target, cfg.ConfiguredDBm, lo, hi)
			}
			if cfg.DutyCycle > 0x07 || cfg.HPSel > 0x07 {
				t.Fatalf("f=%d target=%d: register values out of range %+v", f, target, cfg)
			}
		}
	}
}

func TestTxConfigOffset(t *testing.T) {
	plus3 := func() (int8, bool) { return 3, true }
	cfg := ComputeTxConfig(868_100_000, 10, plus3)
	if cfg.ExpectedDBm != 13 {
		t.Fatalf("offset not applied: %d", cfg.ExpectedDBm)
	}

	unavailable := func() (int8, bool) { return 99, false }
	cfg = ComputeTxConfig(868_100_000, 10, unavailable)
	if cfg.ExpectedDBm != 10 {
		t.Fatalf("unavailable offset should count as 0, got %d", cfg.ExpectedDBm)
	}

	minus := func() (int8, bool) { return -128, true }
	cfg = ComputeTxConfig(868_100_000, -17, minus)
	if cfg.ExpectedDBm != int8(LPMinDBm) {
		t.Fatalf("large negative offset should saturate, got %d", cfg.ExpectedDBm)
	}
}

func TestTxConfigOffsetAtInt16Limits(t *testing.T) {
	plusOne := func() (int8, bool) { return 1, true }
	cfg := ComputeTxConfig(868_100_000, math.MaxInt16, plusOne)
	if cfg.ExpectedDBm != int8(HPMaxDBm) || cfg.PASel != types.PASelHP || cfg.Supply != types.SupplyBattery {
		t.Fatalf("max request: expected=%d sel=%v supply=%v", cfg.ExpectedDBm, cfg.PASel, cfg.Supply)
	}

	minus := func() (int8, bool) { return math.MinInt8, true }
	cfg = ComputeTxConfig(868_100_000, math.MinInt16, minus)
	if cfg.ExpectedDBm != int8(LPMinDBm) || cfg.PASel != types.PASelLP {
		t.Fatalf("min request: expected=%d sel=%v", cfg.ExpectedDBm, cfg.PASel)
	}

	cfg = ComputeTxConfig(2_450_000_000, math.MaxInt16, plusOne)
	if cfg.ExpectedDBm != int8(HFMaxDBm) {
		t.Fatalf("hf max request: expected=%d", cfg.ExpectedDBm)
	}
}

func TestTxConfigUsesTableRow(t *testing.T) {
	cfg := TxConfigFor(types.PAClassLPHP, 22)
	e, ok := PowerEntry(types.PAClassHP, 22)
	if !ok {
		t.Fatal("hp table has no +22 row")
	}
	if cfg.DutyCycle != e.DutyCycle || cfg.HPSel != e.HPSel || cfg.ConfiguredDBm != e.Power {
		t.Fatalf("config %+v does not match row %+v", cfg, e)
	}
	if _, ok := PowerEntry(types.PAClassLP, 16); ok {
		t.Fatal("lp table must not have a +16 row")
	}
	if _, ok := PowerEntry(types.PAClassLPHP, 0); ok {
		t.Fatal("combined class has no table of its own")
	}
}

func TestSelectRSSICalibrationBands(t *testing.T) {
	cases := []struct {
		freq uint32
		want types.RSSICalibration
	}{
		{0, rssiCalLow},
		{433_000_000, rssiCalLow},
		{600_000_000, rssiCalLow},
		{600_000_001, rssiCalMid},
		{868_100_000, rssiCalMid},
		{2_000_000_000, rssiCalMid},
		{2_000_000_001, rssiCalHigh},
		{2_450_000_000, rssiCalHigh},
		{^uint32(0), rssiCalHigh},
	}
	for _, c := range cases {
		if got := SelectRSSICalibration(c.freq); got != c.want {
			t.Fatalf("%d Hz: got %+v", c.freq, got)
		}
	}
	if SelectRSSICalibration(2_450_000_000).GainOffset != 2030 {
		t.Fatal("2.4 GHz gain offset")
	}
}

type fakeSPI struct {
	w   []byte
	err error
}

func (f *fakeSPI) Tx(w, r []byte) error {
	f.w = append([]byte(nil), w...)
	return f.err
}

func (f *fakeSPI) Transfer(b byte) (byte, error) { return 0, f.err }

func TestSetTCXOModeFrame(t *testing.T) {
	bus := &fakeSPI{}
	var edges []bool
	d := New(bus, func(active bool) { edges = append(edges, active) })

	if err := d.SetTCXOMode(types.TCXO1V8, 5); err != nil {
		t.Fatal(err)
	}
	// 5 ms = 163 RTC steps = 0x0000A3
	want := []byte{0x01, 0x17, 0x02, 0x00, 0x00, 0xA3}
	if string(bus.w) != string(want) {
		t.Fatalf("frame % X, want % X", bus.w, want)
	}
	if len(edges) != 2 || !edges[0] || edges[1] {
		t.Fatalf("chip select sequence %v", edges)
	}

	if err := d.SetTCXOMode(types.TCXO1V8, 0); err != nil {
		t.Fatal(err)
	}
	if bus.w[3] != 0 || bus.w[4] != 0 || bus.w[5] != 0 {
		t.Fatalf("disable frame % X", bus.w)
	}
}

func TestSetTCXOModeErrors(t *testing.T) {
	boom := errors.New("boom")
	d := New(&fakeSPI{err: boom}, nil)
	if err := d.SetTCXOMode(types.TCXO3V3, 10); !errors.Is(err, boom) {
		t.Fatalf("want bus error, got %v", err)
	}
	if err := d.SetTCXOMode(types.TCXO3V3, 600_000); !errors.Is(err, ErrTimeoutTooLarge) {
		t.Fatalf("want ErrTimeoutTooLarge, got %v", err)
	}
	var nilDev *Device
	if err := nilDev.SetTCXOMode(types.TCXO3V3, 10); !errors.Is(err, ErrNoBus) {
		t.Fatalf("want ErrNoBus, got %v", err)
	}
}
