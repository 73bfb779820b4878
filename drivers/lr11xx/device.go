package lr11xx

import (
	"errors"

	"tinygo.org/x/drivers"

	"modemhal-go/types"
	"modemhal-go/x/timex"
)

var (
	ErrNoBus           = errors.New("lr11xx: no spi bus")
	ErrTimeoutTooLarge = errors.New("lr11xx: tcxo timeout out of range")
)

// Device issues the few raw commands the HAL owns. Everything else on the
// radio belongs to the modem engine, which shares the same bus.
type Device struct {
	spi drivers.SPI
	cs  func(active bool) // nil when the bus controller drives NSS

	// Fixed buffer to avoid per-call heap allocations.
	w [6]byte
}

func New(spi drivers.SPI, cs func(active bool)) *Device {
	return &Device{spi: spi, cs: cs}
}

// SetTCXOMode drives the TCXO supply and sets the start-up timeout.
// A timeout of 0 turns TCXO control off.
func (d *Device) SetTCXOMode(supply types.TCXOSupply, timeoutMS uint32) error {
	if d == nil || d.spi == nil {
		return ErrNoBus
	}
	steps := timex.MsToRTCSteps(timeoutMS)
	if steps > tcxoTimeoutMax {
		return ErrTimeoutTooLarge
	}
	d.w[0] = byte(cmdSetTcxoMode >> 8)
	d.w[1] = byte(cmdSetTcxoMode & 0xFF)
	d.w[2] = byte(supply)
	d.w[3] = byte(steps >> 16)
	d.w[4] = byte(steps >> 8)
	d.w[5] = byte(steps)
	return d.command(d.w[:6])
}

func (d *Device) command(w []byte) error {
	if d.cs != nil {
		d.cs(true)
		defer d.cs(false)
	}
	return d.spi.Tx(w, nil)
}
