// services/hal/internal/platform/factories_host.go
//go:build !rp2040 && !rp2350 && !(linux && arm64)

package platform

import (
	"io"

	"modemhal-go/services/hal/internal/halcore"
	"modemhal-go/services/hal/internal/platform/setups"

	"tinygo.org/x/drivers"
)

// DefaultPinFactory provides a host GPIO factory backed by FakePin.
func DefaultPinFactory() halcore.PinFactory {
	return &HostPinFactory{pins: make(map[int]*FakePin)}
}

// DefaultSPIFactory exposes one inert HostSPI under the planned id.
func DefaultSPIFactory(plan setups.SPIPlan) halcore.SPIBusFactory {
	return &hostSPIFactory{id: plan.ID, bus: &HostSPI{}}
}

// Console returns nil on host builds: logs stay on stderr.
func Console(*setups.UARTPlan) io.Writer { return nil }

type hostSPIFactory struct {
	id  string
	bus *HostSPI
}

func (f *hostSPIFactory) ByID(id string) (drivers.SPI, bool) {
	if id != f.id {
		return nil, false
	}
	return f.bus, true
}
