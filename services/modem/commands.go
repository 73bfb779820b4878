package modem

import (
	"time"

	"modemhal-go/bus"
	"modemhal-go/errcode"
	"modemhal-go/types"
)

// GPS epoch (1980-01-06) in Unix seconds, and the GPS-UTC leap second offset.
const (
	gpsEpochUnix = 315964800
	gpsLeapS     = 18
)

// GPSToUnix converts GPS seconds to Unix (UTC) seconds.
func GPSToUnix(gps uint32) int64 { return int64(gps) + gpsEpochUnix - gpsLeapS }

// GPSTime returns the engine's GPS time in seconds.
func (s *Service) GPSTime() (uint32, error) {
	c, ok := s.eng.(GPSClock)
	if !ok {
		return 0, errcode.Unavailable
	}
	return c.GPSTime()
}

// UTCTime returns the network-synchronised wall time.
func (s *Service) UTCTime() (time.Time, error) {
	gps, err := s.GPSTime()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(GPSToUnix(gps), 0).UTC(), nil
}

// Reply payloads.
type Result struct {
	Code  string `json:"code"`
	Error string `json:"error,omitempty"`
}

type TimeReply struct {
	Result
	GPS  uint32 `json:"gps,omitempty"`
	Unix int64  `json:"unix,omitempty"`
}

func resultOf(err error) Result {
	r := Result{Code: string(errcode.Of(err))}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

// onConfig applies LoRaWAN parameters published on config/modem.
func (s *Service) onConfig(m *bus.Message) {
	var cfg types.LoRaWANConfig
	switch p := m.Payload.(type) {
	case types.LoRaWANConfig:
		cfg = p
	case *types.LoRaWANConfig:
		if p == nil {
			s.conn.Reply(m, resultOf(errcode.InvalidParams), false)
			return
		}
		cfg = *p
	default:
		s.log.Warn("config ignored, unexpected payload")
		s.conn.Reply(m, resultOf(errcode.InvalidParams), false)
		return
	}
	if s.opts.Stack == nil {
		s.conn.Reply(m, resultOf(errcode.Unavailable), false)
		return
	}
	err := ConfigureLoRaWAN(s.opts.Stack, &cfg)
	s.conn.Reply(m, resultOf(err), false)
}

// onCommand answers modem/cmd/<name> requests.
func (s *Service) onCommand(m *bus.Message) {
	name := m.Topic[len(m.Topic)-1]
	switch name {
	case "stats":
		s.conn.Reply(m, s.h.Stats(), false)
	case "time":
		gps, err := s.GPSTime()
		r := TimeReply{Result: resultOf(err)}
		if err == nil {
			r.GPS, r.Unix = gps, GPSToUnix(gps)
		}
		s.conn.Reply(m, r, false)
	case "env":
		s.conn.Reply(m, map[string]any{
			"battery":     s.h.BatteryLevel(),
			"temperature": s.h.Temperature(),
			"voltage":     s.h.Voltage(),
		}, false)
	default:
		s.log.Warn("unknown command", "cmd", name)
		s.conn.Reply(m, resultOf(errcode.InvalidParams), false)
	}
}
