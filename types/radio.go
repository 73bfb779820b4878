package types

// ------------------------
// Transmit power
// ------------------------

// PAClass is the power amplifier wiring in use for a transmission.
type PAClass uint8

const (
	PAClassLP   PAClass = iota // low-power stage only (sub-GHz)
	PAClassHP                  // high-power stage only (sub-GHz)
	PAClassLPHP                // both sub-GHz stages wired
	PAClassHF                  // 2.4 GHz amplifier
)

func (c PAClass) String() string {
	switch c {
	case PAClassLP:
		return "lp"
	case PAClassHP:
		return "hp"
	case PAClassLPHP:
		return "lp_hp"
	case PAClassHF:
		return "hf"
	default:
		return "unknown"
	}
}

// PASel selects the amplifier stage (LR11xx SetPaConfig pa_sel).
type PASel uint8

const (
	PASelLP PASel = 0x00
	PASelHP PASel = 0x01
	PASelHF PASel = 0x02
)

func (s PASel) String() string {
	switch s {
	case PASelLP:
		return "lp"
	case PASelHP:
		return "hp"
	case PASelHF:
		return "hf"
	default:
		return "unknown"
	}
}

// Supply is the amplifier supply (LR11xx SetPaConfig pa_reg_supply).
type Supply uint8

const (
	SupplyRegulated Supply = 0x00 // internal regulator (VREG)
	SupplyBattery   Supply = 0x01 // battery rail (VBAT)
)

func (s Supply) String() string {
	if s == SupplyBattery {
		return "vbat"
	}
	return "vreg"
}

// RampTime is the LR11xx SetTxParams ramp time code.
type RampTime uint8

// PowerEntry is one row of a board's PA calibration table.
type PowerEntry struct {
	Power     int8  // power the radio actually reaches with this row (dBm)
	DutyCycle uint8 // pa_duty_cycle register value
	HPSel     uint8 // pa_hp_sel register value
}

// TxConfig is the complete transmit setting for one request.
type TxConfig struct {
	Class         PAClass
	PASel         PASel
	Supply        Supply
	DutyCycle     uint8
	HPSel         uint8
	Ramp          RampTime
	ConfiguredDBm int8 // from the table row
	ExpectedDBm   int8 // clamped request
}

// ------------------------
// Receive calibration
// ------------------------

// GainSteps is the number of gain tune coefficients (g4..g13, g13hp1..g13hp7).
const GainSteps = 17

// RSSICalibration is a receiver gain calibration set.
type RSSICalibration struct {
	GainOffset int16
	GainTune   [GainSteps]uint8
}

// ------------------------
// Board facts
// ------------------------

// RegMode is the radio's main regulator mode.
type RegMode uint8

const (
	RegModeLDO  RegMode = 0x00
	RegModeDCDC RegMode = 0x01
)

// TCXOSupply is the voltage the radio drives onto the TCXO (LR11xx encoding).
type TCXOSupply uint8

const (
	TCXO1V6 TCXOSupply = iota
	TCXO1V7
	TCXO1V8
	TCXO2V2
	TCXO2V4
	TCXO2V7
	TCXO3V0
	TCXO3V3
)

// TCXOConfig describes an optional radio-controlled TCXO.
type TCXOConfig struct {
	Present   bool
	Supply    TCXOSupply
	TimeoutMS uint32 // start-up time
}

// XOSCConfig is the oscillator view handed to the radio abstraction layer.
type XOSCConfig struct {
	RadioControlled bool
	Supply          TCXOSupply
	StartupRTCSteps uint32
}

// RFSwitchConfig holds the DIO masks driven for each radio mode.
type RFSwitchConfig struct {
	Enable  uint8
	Standby uint8
	Rx      uint8
	Tx      uint8
	TxHP    uint8
	TxHF    uint8
	GNSS    uint8
	WiFi    uint8
}
