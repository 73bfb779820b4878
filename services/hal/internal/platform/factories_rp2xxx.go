// services/hal/internal/platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"io"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers"

	"modemhal-go/services/hal/internal/halcore"
	"modemhal-go/services/hal/internal/platform/boards"
	"modemhal-go/services/hal/internal/platform/setups"
)

// -----------------------------------------------------------------------------
// Defaults on Raspberry Pi Pico / Pico 2 (RP2 family)
// -----------------------------------------------------------------------------

// DefaultPinFactory returns a GPIO factory that maps logical numbers directly
// to machine.Pin(n). This matches Pico/Pico 2 GP numbering.
func DefaultPinFactory() halcore.PinFactory { return rp2PinFactory{} }

// DefaultSPIFactory configures the planned SPI controller on first use.
func DefaultSPIFactory(plan setups.SPIPlan) halcore.SPIBusFactory {
	return &rp2SPIFactory{plan: plan}
}

// Console configures the planned UART as the log console. nil plan means
// no console; logs go to the USB-CDC stdout.
func Console(plan *setups.UARTPlan) io.Writer {
	if plan == nil || !boards.Pico.HasUART(plan.ID) {
		return nil
	}
	var hw *uartx.UART
	switch plan.ID {
	case "uart0":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		return nil
	}
	// Defaults inside uartx will apply if zero.
	_ = hw.Configure(uartx.UARTConfig{
		BaudRate: plan.Baud,
		TX:       machine.Pin(plan.TX),
		RX:       machine.Pin(plan.RX),
	})
	return hw
}

// ---- SPI implementation ----

type rp2SPIFactory struct {
	plan setups.SPIPlan
	bus  *machine.SPI
}

func (f *rp2SPIFactory) ByID(id string) (drivers.SPI, bool) {
	if id != f.plan.ID || !boards.Pico.HasSPI(id) {
		return nil, false
	}
	if f.bus != nil {
		return f.bus, true
	}
	var hw *machine.SPI
	switch id {
	case "spi0":
		hw = machine.SPI0
	case "spi1":
		hw = machine.SPI1
	default:
		return nil, false
	}
	err := hw.Configure(machine.SPIConfig{
		Frequency: f.plan.Hz,
		SCK:       machine.Pin(f.plan.SCK),
		SDO:       machine.Pin(f.plan.SDO),
		SDI:       machine.Pin(f.plan.SDI),
		Mode:      0,
	})
	if err != nil {
		return nil, false
	}
	f.bus = hw
	return hw, true
}

// ---- GPIO implementation (includes IRQ support) ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	if !boards.Pico.ValidPin(n) {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Toggle()        { r.p.Set(!r.p.Get()) }
func (r *rp2Pin) Number() int    { return r.n }

// IRQ support. The RP2 port provides SetInterrupt with PinChange flags.
func (r *rp2Pin) SetIRQ(edge halcore.Edge, handler func()) error {
	return r.p.SetInterrupt(toPinChange(edge), func(machine.Pin) { handler() })
}

func (r *rp2Pin) ClearIRQ() error {
	var zero machine.PinChange
	return r.p.SetInterrupt(zero, nil)
}

func toPinChange(e halcore.Edge) machine.PinChange {
	switch e {
	case halcore.EdgeRising:
		return machine.PinRising
	case halcore.EdgeFalling:
		return machine.PinFalling
	case halcore.EdgeBoth:
		return machine.PinToggle
	default:
		var zero machine.PinChange
		return zero
	}
}
