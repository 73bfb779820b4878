package modem

import "modemhal-go/services/hal"

// Environment holds the application's optional sensor readers.
type Environment struct {
	Battery     func() (uint8, error)
	Temperature func() (int32, error)
	VoltageMV   func() (uint32, error)
}

// Apply installs the readers into cfg. Missing readers report
// hal.ErrUnavailable, which the HAL maps to its sentinel values.
func (e Environment) Apply(cfg *hal.Config) {
	cfg.Battery = e.Battery
	if cfg.Battery == nil {
		cfg.Battery = func() (uint8, error) { return 0, hal.ErrUnavailable }
	}
	cfg.Temperature = e.Temperature
	if cfg.Temperature == nil {
		cfg.Temperature = func() (int32, error) { return 0, hal.ErrUnavailable }
	}
	cfg.VoltageMV = e.VoltageMV
	if cfg.VoltageMV == nil {
		cfg.VoltageMV = func() (uint32, error) { return 0, hal.ErrUnavailable }
	}
}
