package config

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"modemhal-go/bus"
	"modemhal-go/services/heartbeat"
	"modemhal-go/types"
	"modemhal-go/x/logx"
)

const (
	serviceName  = "config"
	configPrefix = "config"
	CtxDeviceKey = "device" // context key used for device ID
)

var (
	ErrNoDevice  = errors.New("config: missing device ID in context")
	ErrNoConfig  = errors.New("config: no embedded config for device")
	ErrBadEUI    = errors.New("config: EUI must be 16 hex digits")
	ErrBadKey    = errors.New("config: key must be 32 hex digits")
	ErrBadClass  = errors.New("config: unknown LoRaWAN class")
	ErrBadRegion = errors.New("config: unknown region")
)

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

// File is the YAML layout of one device's defaults.
type File struct {
	Modem     ModemFile     `yaml:"modem"`
	Heartbeat HeartbeatFile `yaml:"heartbeat"`
}

type ModemFile struct {
	UseChipEUI bool   `yaml:"use_chip_eui"`
	DevEUI     string `yaml:"dev_eui"`
	JoinEUI    string `yaml:"join_eui"`
	AppKey     string `yaml:"app_key"`
	Class      string `yaml:"class"`
	Region     string `yaml:"region"`
}

type HeartbeatFile struct {
	IntervalS float64 `yaml:"interval"`
}

// Parse decodes raw YAML. Missing sections keep their zero values.
func Parse(raw []byte) (File, error) {
	var f File
	err := yaml.UnmarshalStrict(raw, &f)
	return f, err
}

var regions = map[string]types.Region{
	"EU868": types.RegionEU868,
	"AS923": types.RegionAS923,
	"US915": types.RegionUS915,
	"AU915": types.RegionAU915,
	"CN470": types.RegionCN470,
	"WW2G4": types.RegionWW2G4,
	"KR920": types.RegionKR920,
	"IN865": types.RegionIN865,
	"RU864": types.RegionRU864,
}

// LoRaWAN converts the modem section into engine parameters.
func (m ModemFile) LoRaWAN() (types.LoRaWANConfig, error) {
	cfg := types.LoRaWANConfig{UseChipEUIAsDevEUI: m.UseChipEUI}
	if !m.UseChipEUI || m.DevEUI != "" {
		if err := decodeHex(cfg.DevEUI[:], m.DevEUI, ErrBadEUI); err != nil {
			return cfg, err
		}
	}
	if err := decodeHex(cfg.JoinEUI[:], m.JoinEUI, ErrBadEUI); err != nil {
		return cfg, err
	}
	if err := decodeHex(cfg.AppKey[:], m.AppKey, ErrBadKey); err != nil {
		return cfg, err
	}

	switch strings.ToUpper(m.Class) {
	case "", "A":
		cfg.Class = types.ClassA
	case "B":
		cfg.Class = types.ClassB
	case "C":
		cfg.Class = types.ClassC
	default:
		return cfg, ErrBadClass
	}

	r, ok := regions[strings.ToUpper(m.Region)]
	if !ok {
		return cfg, ErrBadRegion
	}
	cfg.Region = r
	return cfg, nil
}

// decodeHex fills dst from s, which must encode exactly len(dst) bytes.
func decodeHex(dst []byte, s string, bad error) error {
	if len(s) != 2*len(dst) {
		return bad
	}
	if _, err := hex.Decode(dst, []byte(s)); err != nil {
		return bad
	}
	return nil
}

// -----------------------------------------------------------------------------
// Config Service
// -----------------------------------------------------------------------------

type ConfigService struct {
	Name string
	log  logx.Logger
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName, log: logx.New(serviceName)}
}

// publishConfig reads the device config from embedded data and publishes
// each section as a retained message.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	device, _ := ctx.Value(CtxDeviceKey).(string)
	if device == "" {
		return ErrNoDevice
	}

	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return ErrNoConfig
	}

	f, err := Parse(raw)
	if err != nil {
		return err
	}
	lw, err := f.Modem.LoRaWAN()
	if err != nil {
		return err
	}
	conn.Publish(conn.NewMessage(bus.T(configPrefix, "modem"), lw, true))

	if f.Heartbeat.IntervalS > 0 {
		iv := time.Duration(f.Heartbeat.IntervalS * float64(time.Second))
		conn.Publish(conn.NewMessage(bus.T(configPrefix, "heartbeat"), heartbeat.Config{Interval: iv}, true))
	}
	return nil
}

// Start launches the config publisher in a goroutine.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			s.log.Error("publish failed", "err", err)
		}
	}()
}
