package setups

import "modemhal-go/types"

// ResourcePlan is the wiring between the MCU/SoC and the radio.
type ResourcePlan struct {
	Radio   SPIPlan
	Event   int // radio IRQ line (DIO9 on LR11xx), GPIO number
	Busy    int // BUSY line, GPIO number; -1 when unused
	Reset   int // NRESET line, GPIO number; -1 when unused
	Console *UARTPlan
}

type SPIPlan struct {
	ID  string // e.g. "spi0", or "SPI0.0" on Linux
	SCK int    // GPIO number
	SDO int    // GPIO number
	SDI int    // GPIO number
	NSS int    // GPIO number, driven by software; -1 when the controller owns it
	Hz  uint32 // bus frequency
}

type UARTPlan struct {
	ID   string // e.g. "uart0"
	TX   int    // GPIO number
	RX   int    // GPIO number
	Baud uint32
}

// RadioSetup holds the fixed per-board radio facts handed to the modem.
type RadioSetup struct {
	Name       string
	RegMode    types.RegMode
	TCXO       types.TCXOConfig
	RFSwitch   types.RFSwitchConfig
	CRCOverSPI bool
}
