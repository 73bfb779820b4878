package lr11xx

import "modemhal-go/types"

var (
	rssiCalLow = types.RSSICalibration{
		GainOffset: 0,
		GainTune:   [types.GainSteps]uint8{12, 12, 14, 0, 1, 3, 4, 4, 3, 6, 6, 6, 6, 6, 6, 6, 6},
	}
	rssiCalMid = types.RSSICalibration{
		GainOffset: 0,
		GainTune:   [types.GainSteps]uint8{2, 2, 2, 3, 3, 4, 5, 4, 4, 6, 5, 5, 6, 6, 6, 7, 6},
	}
	rssiCalHigh = types.RSSICalibration{
		GainOffset: 2030,
		GainTune:   [types.GainSteps]uint8{6, 7, 6, 4, 3, 4, 14, 12, 14, 12, 12, 12, 12, 8, 8, 9, 9},
	}
)

// SelectRSSICalibration returns the receiver calibration set for freqHz.
// Bands: up to 600 MHz, up to 2 GHz, above 2 GHz (upper bounds inclusive).
func SelectRSSICalibration(freqHz uint32) types.RSSICalibration {
	switch {
	case freqHz <= rssiLowBandHz:
		return rssiCalLow
	case freqHz <= rssiMidBandHz:
		return rssiCalMid
	default:
		return rssiCalHigh
	}
}
