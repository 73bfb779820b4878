package heartbeat

import (
	"context"
	"time"

	"modemhal-go/bus"
	"modemhal-go/services/hal"
	"modemhal-go/x/logx"
)

var (
	topicConfigHeartbeat = bus.T("config", "heartbeat")
	topicHealth          = bus.T("modem", "health")
)

const DefaultInterval = 10 * time.Second

// Health is the retained snapshot published on modem/health.
type Health struct {
	UptimeS   uint32    `json:"uptime_s"`
	Battery   uint8     `json:"battery"`
	TempC     int8      `json:"temp_c"`
	Voltage   uint8     `json:"voltage"` // 20 mV steps
	IRQOn     bool      `json:"irq_on"`
	Stats     hal.Stats `json:"stats"`
	Crashlog  bool      `json:"crashlog"`
	Timestamp int64     `json:"ts"`
}

// Config is accepted on config/heartbeat. A map with a numeric "interval"
// in seconds is accepted too.
type Config struct {
	Interval time.Duration
}

type Service struct {
	h        *hal.HAL
	interval time.Duration
	log      logx.Logger
}

func New(h *hal.HAL, interval time.Duration) *Service {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Service{h: h, interval: interval, log: logx.New("app")}
}

func (s *Service) serviceLoop(ctx context.Context, conn *bus.Connection) {
	cfgSub := conn.Subscribe(topicConfigHeartbeat)
	defer conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(s.interval)
	defer tick.Stop()

	s.publish(conn)
	for {
		select {
		case <-ctx.Done():
			s.log.Info("heartbeat service stopping")
			return
		case <-tick.C:
			s.publish(conn)
		case msg := <-cfgSub.Channel():
			iv, ok := intervalOf(msg.Payload)
			if !ok {
				s.log.Warn("heartbeat config ignored")
				continue
			}
			s.interval = iv
			tick.Reset(iv)
			s.log.Info("heartbeat interval set", "ms", uint32(iv/time.Millisecond))
		}
	}
}

func intervalOf(p any) (time.Duration, bool) {
	var iv time.Duration
	switch v := p.(type) {
	case Config:
		iv = v.Interval
	case *Config:
		if v != nil {
			iv = v.Interval
		}
	case map[string]any:
		if f, ok := v["interval"].(float64); ok {
			iv = time.Duration(f * float64(time.Second))
		}
	}
	return iv, iv > 0
}

func (s *Service) publish(conn *bus.Connection) {
	conn.Publish(conn.NewMessage(topicHealth, s.Snapshot(), true))
}

// Snapshot reads the HAL counters and environment.
func (s *Service) Snapshot() Health {
	return Health{
		UptimeS:   s.h.TimeS(),
		Battery:   s.h.BatteryLevel(),
		TempC:     s.h.Temperature(),
		Voltage:   s.h.Voltage(),
		IRQOn:     s.h.ModemIRQEnabled(),
		Stats:     s.h.Stats(),
		Crashlog:  s.h.CrashlogStatus(),
		Timestamp: time.Now().UnixNano(),
	}
}

// Start the heartbeat service.
func (s *Service) Start(ctx context.Context, conn *bus.Connection) error {
	go s.serviceLoop(ctx, conn)
	return nil
}
