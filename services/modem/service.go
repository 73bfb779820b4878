package modem

import (
	"context"
	"time"

	"modemhal-go/bus"
	"modemhal-go/errcode"
	"modemhal-go/services/hal"
	"modemhal-go/types"
	"modemhal-go/x/logx"
	"modemhal-go/x/mathx"
)

var (
	topicState       = bus.T("modem", "state")
	topicEventPrefix = bus.T("modem", "event")
	topicCmd         = bus.T("modem", "cmd", "+")
	topicConfig      = bus.T("config", "modem")
)

// Engine is the protocol engine driven by the service. It is not safe for
// concurrent use; the service calls it only from Run's goroutine.
type Engine interface {
	// Run executes pending engine work and returns how long the engine can
	// sleep before it must run again.
	Run() time.Duration
	// NextEvent pops one event. pending is the number still queued after it.
	// An errcode.NoEvent error means the queue is empty.
	NextEvent() (ev types.ModemEvent, pending int, err error)
	// TxPowerOffset is the engine's software TX power offset, if any.
	TxPowerOffset() (offset int8, ok bool)
}

// GPSClock is implemented by engines that track network time.
type GPSClock interface {
	GPSTime() (seconds uint32, err error)
}

type Options struct {
	MaxSleep time.Duration          // upper bound on one idle wait, default 1s
	Stack    Stack                  // LoRaWAN parameters sink for config/modem; optional
	OnEvent  func(types.ModemEvent) // called on Run's goroutine after publishing
}

type Service struct {
	h    *hal.HAL
	eng  Engine
	conn *bus.Connection
	opts Options
	log  logx.Logger
}

func New(h *hal.HAL, eng Engine, conn *bus.Connection, opts Options) *Service {
	if opts.MaxSleep <= 0 {
		opts.MaxSleep = time.Second
	}
	return &Service{h: h, eng: eng, conn: conn, opts: opts, log: logx.New("app")}
}

// Run drives the engine until ctx ends. The calling goroutine is the only
// context in which engine work and HAL callbacks execute.
func (s *Service) Run(ctx context.Context) {
	cfgSub := s.conn.Subscribe(topicConfig)
	defer s.conn.Unsubscribe(cfgSub)
	cmdSub := s.conn.Subscribe(topicCmd)
	defer s.conn.Unsubscribe(cmdSub)

	s.publishState("running", "ok")
	defer s.publishState("stopped", "ok")
	s.log.Info("modem service running", "board", hal.BoardName())

	s.h.EnableModemIRQ()
	for ctx.Err() == nil {
		sleep := s.eng.Run()
		s.drainEvents()

		select {
		case m := <-cfgSub.Channel():
			s.onConfig(m)
			continue
		case m := <-cmdSub.Channel():
			s.onCommand(m)
			continue
		default:
		}
		s.h.Dispatch(ctx, mathx.Clamp(sleep, 0, s.opts.MaxSleep))
	}
	s.log.Info("modem service stopping")
}

func (s *Service) drainEvents() {
	for {
		ev, pending, err := s.eng.NextEvent()
		if err != nil {
			if errcode.Of(err) != errcode.NoEvent {
				s.log.Warn("get event failed", "err", err)
			}
			return
		}
		if ev.Kind == types.EventNone {
			return
		}
		s.publishEvent(ev)
		if pending == 0 {
			return
		}
	}
}

func (s *Service) publishEvent(ev types.ModemEvent) {
	s.log.Info("event", "kind", ev.Kind, "status", ev.Status)
	if ev.Kind == types.EventDownData && ev.Downlink != nil {
		s.log.Info("downlink", "port", ev.Downlink.Port, "rssi", ev.Downlink.RSSIdBm(), "snr", ev.Downlink.SNRdB())
		s.log.Hex(logx.LevelDebug, "payload", ev.Downlink.Payload)
	}
	t := append(append(bus.Topic{}, topicEventPrefix...), ev.Kind.String())
	s.conn.Publish(s.conn.NewMessage(t, ev, false))
	if s.opts.OnEvent != nil {
		s.opts.OnEvent(ev)
	}
}

func (s *Service) publishState(level string, status errcode.Code) {
	s.conn.Publish(s.conn.NewMessage(topicState, types.ModemState{
		Level:  level,
		Status: string(status),
		TS:     time.Now().UnixNano(),
	}, true))
}
