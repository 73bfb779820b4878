// Package lr11xx holds the LR11xx radio knowledge the modem HAL needs:
// PA calibration tables, the TX power configuration engine, the RSSI
// calibration selector and the few raw SPI commands the HAL issues itself.
package lr11xx

const (
	// --- Frequency bands ---
	SubGHzMaxHz   uint32 = 960_000_000
	HFMinHz       uint32 = 2_400_000_000 // 2.4 GHz ISM, HF PA only
	rssiLowBandHz uint32 = 600_000_000
	rssiMidBandHz uint32 = 2_000_000_000

	// --- PA power ranges (dBm, inclusive) ---
	LPMinDBm int16 = -17
	LPMaxDBm int16 = 15
	HPMinDBm int16 = -9
	HPMaxDBm int16 = 22
	HFMinDBm int16 = -18
	HFMaxDBm int16 = 13

	// At or below this power the HP stage runs from the regulator (VREG),
	// above it from the battery (VBAT).
	HPRegulatedMaxDBm int16 = 8

	// --- PA ramp times (SetTxParams) ---
	Ramp16us  = 0x00
	Ramp32us  = 0x01
	Ramp48us  = 0x02
	Ramp64us  = 0x03
	Ramp80us  = 0x04
	Ramp96us  = 0x05
	Ramp112us = 0x06
	Ramp128us = 0x07
	Ramp144us = 0x08
	Ramp160us = 0x09
	Ramp176us = 0x0A
	Ramp192us = 0x0B
	Ramp208us = 0x0C
	Ramp240us = 0x0D
	Ramp272us = 0x0E
	Ramp304us = 0x0F

	// --- System commands (16-bit opcodes, MSB first) ---
	cmdSetTcxoMode uint16 = 0x0117

	// SetTcxoMode timeout field is 24 bits of 30.52 µs RTC steps.
	tcxoTimeoutMax uint32 = 0xFFFFFF
)
