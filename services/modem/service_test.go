package modem

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"modemhal-go/bus"
	"modemhal-go/errcode"
	"modemhal-go/services/hal"
	"modemhal-go/types"
)

// ---- fakes ----

type fakePin struct {
	mu sync.Mutex
	h  func()
}

func (p *fakePin) ConfigureInput(hal.Pull) error { return nil }
func (p *fakePin) ConfigureOutput(bool) error    { return nil }
func (p *fakePin) Set(bool)                      {}
func (p *fakePin) Get() bool                     { return false }
func (p *fakePin) Toggle()                       {}
func (p *fakePin) Number() int                   { return 14 }
func (p *fakePin) SetIRQ(_ hal.Edge, h func()) error {
	p.mu.Lock()
	p.h = h
	p.mu.Unlock()
	return nil
}
func (p *fakePin) ClearIRQ() error {
	p.mu.Lock()
	p.h = nil
	p.mu.Unlock()
	return nil
}
func (p *fakePin) fire() {
	p.mu.Lock()
	h := p.h
	p.mu.Unlock()
	if h != nil {
		h()
	}
}

// fakeEngine arms one HAL timer on its first run; the timer callback queues a
// tx_done event, and every radio IRQ queues a down_data event.
type fakeEngine struct {
	h      *hal.HAL
	armed  bool
	events []types.ModemEvent
	runs   int
	gps    uint32
}

func (e *fakeEngine) Run() time.Duration {
	e.runs++
	if !e.armed {
		e.armed = true
		e.h.ConfigureRadioIRQ(func(any) {
			e.events = append(e.events, types.ModemEvent{
				Kind:     types.EventDownData,
				Downlink: &types.Downlink{Port: 2, Payload: []byte{0xCA, 0xFE}},
			})
		}, nil)
		e.h.StartTimer(5*time.Millisecond, func(any) {
			e.events = append(e.events, types.ModemEvent{Kind: types.EventTxDone, Status: 1})
		}, nil)
	}
	return time.Hour
}

func (e *fakeEngine) NextEvent() (types.ModemEvent, int, error) {
	if len(e.events) == 0 {
		return types.ModemEvent{}, 0, errcode.NoEvent
	}
	ev := e.events[0]
	e.events = e.events[1:]
	return ev, len(e.events), nil
}

func (e *fakeEngine) TxPowerOffset() (int8, bool) { return 0, false }

func (e *fakeEngine) GPSTime() (uint32, error) {
	if e.gps == 0 {
		return 0, errcode.NoTime
	}
	return e.gps, nil
}

type fakeStack struct {
	calls   []string
	failOp  string
	chipEUI [8]byte
	devEUI  [8]byte
}

func (s *fakeStack) rc(op string) int {
	s.calls = append(s.calls, op)
	if op == s.failOp {
		return 4 // fail
	}
	return 0
}

func (s *fakeStack) ChipEUI() ([8]byte, int) { return s.chipEUI, s.rc("get_chip_eui") }
func (s *fakeStack) SetDevEUI(e [8]byte) int { s.devEUI = e; return s.rc("set_deveui") }
func (s *fakeStack) SetJoinEUI([8]byte) int  { return s.rc("set_joineui") }
func (s *fakeStack) SetNwkKey([16]byte) int  { return s.rc("set_nwkkey") }
func (s *fakeStack) SetClass(types.LoRaWANClass) int {
	return s.rc("set_class")
}
func (s *fakeStack) SetRegion(types.Region) int { return s.rc("set_region") }

func newService(t *testing.T, opts Options) (*Service, *fakeEngine, *fakePin, *bus.Bus) {
	t.Helper()
	pin := &fakePin{}
	eng := &fakeEngine{}
	cfg := hal.Config{EventPin: pin, TxPowerOffset: eng.TxPowerOffset}
	Environment{}.Apply(&cfg)
	h := hal.New(cfg)
	eng.h = h
	b := bus.NewBus(16)
	return New(h, eng, b.NewConnection("modem"), opts), eng, pin, b
}

func expect(t *testing.T, sub *bus.Subscription, d time.Duration) *bus.Message {
	t.Helper()
	select {
	case m := <-sub.Channel():
		return m
	case <-time.After(d):
		t.Fatalf("timeout waiting on %s", sub.Topic())
		return nil
	}
}

// ---- tests ----

func TestRunPublishesTimerAndIRQEvents(t *testing.T) {
	var seen []types.EventKind
	var mu sync.Mutex
	s, _, pin, b := newService(t, Options{
		MaxSleep: 20 * time.Millisecond,
		OnEvent: func(ev types.ModemEvent) {
			mu.Lock()
			seen = append(seen, ev.Kind)
			mu.Unlock()
		},
	})
	obs := b.NewConnection("obs")
	evSub := obs.Subscribe(bus.T("modem", "event", "+"))
	stSub := obs.Subscribe(bus.T("modem", "state"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() { s.Run(ctx); close(done) }()

	if st := expect(t, stSub, 200*time.Millisecond).Payload.(types.ModemState); st.Level != "running" {
		t.Fatalf("state %+v", st)
	}

	m := expect(t, evSub, 500*time.Millisecond)
	if m.Topic.String() != "modem/event/tx_done" {
		t.Fatalf("first event on %s", m.Topic)
	}
	if ev := m.Payload.(types.ModemEvent); ev.Status != 1 {
		t.Fatalf("event %+v", ev)
	}

	pin.fire()
	m = expect(t, evSub, 500*time.Millisecond)
	ev := m.Payload.(types.ModemEvent)
	if ev.Kind != types.EventDownData || ev.Downlink == nil || ev.Downlink.Port != 2 {
		t.Fatalf("downlink event %+v", ev)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
	if m, ok := b.Retained(bus.T("modem", "state")); !ok || m.Payload.(types.ModemState).Level != "stopped" {
		t.Fatal("stopped state not retained")
	}
	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 || seen[0] != types.EventTxDone || seen[1] != types.EventDownData {
		t.Fatalf("OnEvent saw %v", seen)
	}
}

func TestCommandsAndConfigOverBus(t *testing.T) {
	st := &fakeStack{}
	s, eng, _, b := newService(t, Options{MaxSleep: 10 * time.Millisecond, Stack: st})
	eng.gps = 1_300_000_000

	c := b.NewConnection("client")
	stSub := c.Subscribe(bus.T("modem", "state"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	// Run subscribes to its request topics before publishing "running".
	if st := expect(t, stSub, time.Second).Payload.(types.ModemState); st.Level != "running" {
		t.Fatalf("state %+v", st)
	}
	c.Unsubscribe(stSub)

	rctx, rcancel := context.WithTimeout(ctx, time.Second)
	defer rcancel()

	reply, err := c.RequestWait(rctx, c.NewMessage(bus.T("modem", "cmd", "time"), nil, false))
	if err != nil {
		t.Fatal(err)
	}
	tr := reply.Payload.(TimeReply)
	if tr.Code != "ok" || tr.GPS != 1_300_000_000 || tr.Unix != 1_615_964_782 {
		t.Fatalf("time reply %+v", tr)
	}

	reply, err = c.RequestWait(rctx, c.NewMessage(bus.T("modem", "cmd", "stats"), nil, false))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := reply.Payload.(hal.Stats); !ok {
		t.Fatalf("stats reply %T", reply.Payload)
	}

	reply, err = c.RequestWait(rctx, c.NewMessage(bus.T("modem", "cmd", "reboot"), nil, false))
	if err != nil {
		t.Fatal(err)
	}
	if r := reply.Payload.(Result); r.Code != string(errcode.InvalidParams) {
		t.Fatalf("unknown command reply %+v", r)
	}

	reply, err = c.RequestWait(rctx, c.NewMessage(bus.T("config", "modem"), types.LoRaWANConfig{
		Class:  types.ClassA,
		Region: types.RegionEU868,
	}, false))
	if err != nil {
		t.Fatal(err)
	}
	if r := reply.Payload.(Result); r.Code != "ok" {
		t.Fatalf("config reply %+v", r)
	}
}

func TestConfigureLoRaWAN(t *testing.T) {
	st := &fakeStack{chipEUI: [8]byte{0, 0x16, 0xC0, 1, 2, 3, 4, 5}}
	cfg := &types.LoRaWANConfig{UseChipEUIAsDevEUI: true, Class: types.ClassC, Region: types.RegionUS915}
	if err := ConfigureLoRaWAN(st, cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.DevEUI != st.chipEUI || st.devEUI != st.chipEUI {
		t.Fatal("chip EUI not used as DevEUI")
	}
	want := []string{"get_chip_eui", "set_deveui", "set_joineui", "set_nwkkey", "set_class", "set_region"}
	if len(st.calls) != len(want) {
		t.Fatalf("calls %v", st.calls)
	}
	for i := range want {
		if st.calls[i] != want[i] {
			t.Fatalf("calls %v", st.calls)
		}
	}
}

func TestConfigureLoRaWANStopsAtFirstFailure(t *testing.T) {
	st := &fakeStack{failOp: "set_joineui"}
	err := ConfigureLoRaWAN(st, &types.LoRaWANConfig{})
	var e *errcode.E
	if !errors.As(err, &e) || e.Op != "set_joineui" || e.C != errcode.Fail {
		t.Fatalf("err %v", err)
	}
	if len(st.calls) != 2 {
		t.Fatalf("steps after failure ran: %v", st.calls)
	}
}

func TestGPSTime(t *testing.T) {
	if GPSToUnix(0) != 315964782 {
		t.Fatalf("GPSToUnix(0) = %d", GPSToUnix(0))
	}
	s, eng, _, _ := newService(t, Options{})
	if _, err := s.UTCTime(); errcode.Of(err) != errcode.NoTime {
		t.Fatalf("unsynced time err %v", err)
	}
	eng.gps = 1_300_000_000
	u, err := s.UTCTime()
	if err != nil || u.Unix() != 1_615_964_782 {
		t.Fatalf("UTCTime %v %v", u, err)
	}
}

func TestEnvironmentDefaultsUnavailable(t *testing.T) {
	var cfg hal.Config
	Environment{VoltageMV: func() (uint32, error) { return 3600, nil }}.Apply(&cfg)
	if _, err := cfg.Battery(); !errors.Is(err, hal.ErrUnavailable) {
		t.Fatal("missing battery reader must report unavailable")
	}
	if _, err := cfg.Temperature(); !errors.Is(err, hal.ErrUnavailable) {
		t.Fatal("missing temperature reader must report unavailable")
	}
	cfg.EventPin = &fakePin{}
	h := hal.New(cfg)
	if h.BatteryLevel() != 0 || h.Temperature() != -128 || h.Voltage() != 180 {
		t.Fatalf("env b=%d t=%d v=%d", h.BatteryLevel(), h.Temperature(), h.Voltage())
	}
}
