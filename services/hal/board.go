// services/hal/board.go
package hal

import (
	"io"

	"modemhal-go/services/hal/internal/halcore"
	"modemhal-go/services/hal/internal/platform"
)

func platformReset() { platform.Reset() }

// BoardConfig assembles a Config from the selected board setup: radio
// event pin, SPI bus with software chip select and the fixed radio facts.
// Environment getters are left for the caller.
func BoardConfig() (Config, error) {
	plan := platform.Plan()
	setup := platform.Setup()
	pins := platform.DefaultPinFactory()

	ev, ok := pins.ByNumber(plan.Event)
	if !ok {
		return Config{}, ErrUnknownPin
	}
	evIRQ, ok := ev.(halcore.IRQPin)
	if !ok {
		return Config{}, ErrPinNoIRQ
	}
	if err := evIRQ.ConfigureInput(halcore.PullDown); err != nil {
		return Config{}, err
	}

	bus, ok := platform.DefaultSPIFactory(plan.Radio).ByID(plan.Radio.ID)
	if !ok {
		return Config{}, ErrUnknownBus
	}

	var cs func(bool)
	if plan.Radio.NSS >= 0 {
		nss, ok := pins.ByNumber(plan.Radio.NSS)
		if !ok {
			return Config{}, ErrUnknownPin
		}
		if err := nss.ConfigureOutput(true); err != nil {
			return Config{}, err
		}
		cs = func(active bool) { nss.Set(!active) } // NSS is active low
	}

	return Config{
		EventPin:   evIRQ,
		EventEdge:  EdgeRising,
		Radio:      bus,
		RadioCS:    cs,
		TCXO:       setup.TCXO,
		RegMode:    setup.RegMode,
		RFSwitch:   setup.RFSwitch,
		CRCOverSPI: setup.CRCOverSPI,
	}, nil
}

// BoardName is the selected board setup.
func BoardName() string { return platform.Setup().Name }

// Console returns the board's log console, or nil to keep the default.
func Console() io.Writer { return platform.Console(platform.Plan().Console) }
