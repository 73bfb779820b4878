package main

import (
	"context"
	"time"

	"modemhal-go/bus"
	"modemhal-go/errcode"
	"modemhal-go/services/config"
	"modemhal-go/services/hal"
	"modemhal-go/services/heartbeat"
	"modemhal-go/services/modem"
	"modemhal-go/types"
	"modemhal-go/x/logx"
)

var log = logx.New("app")

// demoEngine stands in for the protocol engine: a periodic alarm from the HAL
// timer and a down_data event per radio IRQ.
type demoEngine struct {
	h      *hal.HAL
	period time.Duration
	armed  bool
	q      []types.ModemEvent
	ticks  uint32
}

func (e *demoEngine) Run() time.Duration {
	if !e.armed {
		e.armed = true
		e.h.ConfigureRadioIRQ(func(any) {
			e.push(types.ModemEvent{
				Kind:     types.EventDownData,
				Downlink: &types.Downlink{RSSI: 64 - 90, SNR: 28, Port: 1, Payload: []byte("ping")},
			})
		}, nil)
		e.arm()
	}
	return e.period
}

func (e *demoEngine) arm() {
	e.h.StartTimer(e.period, func(any) {
		e.ticks++
		e.push(types.ModemEvent{Kind: types.EventAlarm, TimestampMS: e.h.TimeMS()})
		e.arm()
	}, nil)
}

func (e *demoEngine) push(ev types.ModemEvent) { e.q = append(e.q, ev) }

func (e *demoEngine) NextEvent() (types.ModemEvent, int, error) {
	if len(e.q) == 0 {
		return types.ModemEvent{}, 0, errcode.NoEvent
	}
	ev := e.q[0]
	e.q = e.q[1:]
	return ev, len(e.q), nil
}

func (e *demoEngine) TxPowerOffset() (int8, bool) { return 0, false }

// demoStack accepts every parameter and reports a fixed chip EUI.
type demoStack struct{}

func (demoStack) ChipEUI() ([8]byte, int) {
	return [8]byte{0x00, 0x16, 0xC0, 0x01, 0x00, 0x00, 0x00, 0x01}, 0
}
func (demoStack) SetDevEUI(eui [8]byte) int {
	log.Hex(logx.LevelInfo, "dev eui", eui[:])
	return 0
}
func (demoStack) SetJoinEUI([8]byte) int { return 0 }
func (demoStack) SetNwkKey([16]byte) int { return 0 }
func (demoStack) SetClass(c types.LoRaWANClass) int {
	log.Info("class", "c", c)
	return 0
}
func (demoStack) SetRegion(r types.Region) int {
	log.Info("region", "r", uint8(r))
	return 0
}

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	logx.SetOutput(hal.Console())
	log.Info("boot", "board", hal.BoardName())

	cfg, err := hal.BoardConfig()
	if err != nil {
		log.Error("board config failed", "err", err)
		return
	}
	modem.Environment{
		VoltageMV: func() (uint32, error) { return 3300, nil },
	}.Apply(&cfg)

	eng := &demoEngine{period: 500 * time.Millisecond}
	cfg.TxPowerOffset = eng.TxPowerOffset
	h := hal.New(cfg)
	eng.h = h

	checkRadio(h)
	checkStore(h)

	b := bus.NewBus(8)
	mon := b.NewConnection("monitor").Subscribe(bus.T("modem", "#"))
	go func() {
		for m := range mon.Channel() {
			log.Info("<-", "topic", m.Topic.String())
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	config.NewConfigService().Start(context.WithValue(ctx, config.CtxDeviceKey, hal.BoardName()), b.NewConnection("config"))
	_ = heartbeat.New(h, time.Second).Start(ctx, b.NewConnection("heartbeat"))
	svc := modem.New(h, eng, b.NewConnection("modem"), modem.Options{Stack: demoStack{}})
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	// The host event pin is a fake that fires on a driven rising edge; on
	// hardware the radio owns the line and these writes are ignored.
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(1500 * time.Millisecond):
				cfg.EventPin.Set(true)
				cfg.EventPin.Set(false)
			}
		}
	}()

	cli := b.NewConnection("cli")
	time.Sleep(3 * time.Second)
	rctx, rcancel := context.WithTimeout(ctx, time.Second)
	if reply, err := cli.RequestWait(rctx, cli.NewMessage(bus.T("modem", "cmd", "stats"), nil, false)); err != nil {
		log.Warn("stats request failed", "err", err)
	} else if st, ok := reply.Payload.(hal.Stats); ok {
		log.Info("stats", "fired", st.TimerFired, "dropped", st.TimerDropped, "stale", st.TimerStale, "irq_drops", st.IRQDrops)
	}
	rcancel()

	<-done
	log.Info("selftest done", "alarms", eng.ticks)
}

func checkRadio(h *hal.HAL) {
	for _, f := range []uint32{868_100_000, 2_450_000_000} {
		for _, p := range []int16{-20, 0, 14, 15, 16, 22, 30} {
			tc := h.TxConfig(f, p)
			log.Info("tx config",
				"freq", f, "req", p,
				"class", tc.Class, "duty", tc.DutyCycle, "hp_sel", tc.HPSel,
				"cfg", tc.ConfiguredDBm, "expect", tc.ExpectedDBm)
		}
		rc := h.RSSICalibration(f)
		log.Info("rssi calibration", "freq", f, "gain_offset", rc.GainOffset)
	}
	h.StartTCXO()
	log.Info("tcxo started", "startup_ms", h.TCXOStartupDelayMS())
	h.StopTCXO()
	log.Info("env", "battery", h.BatteryLevel(), "temp", h.Temperature(), "voltage", h.Voltage())
}

func checkStore(h *hal.HAL) {
	in := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if err := h.ContextStore(1, in); err != nil {
		log.Error("context store failed", "err", err)
		return
	}
	out := make([]byte, len(in))
	if err := h.ContextRestore(1, out); err != nil {
		log.Error("context restore failed", "err", err)
		return
	}
	log.Hex(logx.LevelInfo, "context restored", out)
}
