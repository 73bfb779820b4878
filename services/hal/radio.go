package hal

import (
	"modemhal-go/drivers/lr11xx"
	"modemhal-go/types"
	"modemhal-go/x/timex"
)

// TxConfig returns the PA configuration for a transmission of dBm at freqHz,
// after the configured TX power offset.
func (h *HAL) TxConfig(freqHz uint32, dBm int16) types.TxConfig {
	return lr11xx.ComputeTxConfig(freqHz, dBm, h.cfg.TxPowerOffset)
}

func (h *HAL) RSSICalibration(freqHz uint32) types.RSSICalibration {
	return lr11xx.SelectRSSICalibration(freqHz)
}

// StartTCXO powers the TCXO through the radio. Failures are logged only.
func (h *HAL) StartTCXO() {
	if !h.cfg.TCXO.Present {
		return
	}
	if err := h.radio.SetTCXOMode(h.cfg.TCXO.Supply, h.cfg.TCXO.TimeoutMS); err != nil {
		h.log.Error("Failed to configure TCXO", "err", err)
	}
}

// StopTCXO hands TCXO control back (timeout 0).
func (h *HAL) StopTCXO() {
	if !h.cfg.TCXO.Present {
		return
	}
	if err := h.radio.SetTCXOMode(h.cfg.TCXO.Supply, 0); err != nil {
		h.log.Error("Failed to configure TCXO", "err", err)
	}
}

// TCXOStartupDelayMS is 0 without a TCXO.
func (h *HAL) TCXOStartupDelayMS() uint32 {
	if !h.cfg.TCXO.Present {
		return 0
	}
	return h.cfg.TCXO.TimeoutMS
}

func (h *HAL) XOSC() types.XOSCConfig {
	if !h.cfg.TCXO.Present {
		return types.XOSCConfig{}
	}
	return types.XOSCConfig{
		RadioControlled: true,
		Supply:          h.cfg.TCXO.Supply,
		StartupRTCSteps: timex.MsToRTCSteps(h.cfg.TCXO.TimeoutMS),
	}
}

func (h *HAL) RegMode() types.RegMode         { return h.cfg.RegMode }
func (h *HAL) RFSwitch() types.RFSwitchConfig { return h.cfg.RFSwitch }
func (h *HAL) CRCOverSPI() bool               { return h.cfg.CRCOverSPI }
