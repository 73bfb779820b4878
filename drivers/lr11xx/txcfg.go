package lr11xx

import (
	"modemhal-go/types"
	"modemhal-go/x/mathx"
)

// OffsetFunc reports the board/engine TX power offset in dB. ok == false
// means no offset is available and 0 is used.
type OffsetFunc func() (offset int8, ok bool)

// ClassFor returns the PA wiring used for freqHz on the reference board:
// the HF stage at 2.4 GHz, both sub-GHz stages otherwise.
func ClassFor(freqHz uint32) types.PAClass {
	if freqHz >= HFMinHz {
		return types.PAClassHF
	}
	return types.PAClassLPHP
}

// PowerRange returns the inclusive dBm range reachable with class.
func PowerRange(class types.PAClass) (lo, hi int16) {
	switch class {
	case types.PAClassLP:
		return LPMinDBm, LPMaxDBm
	case types.PAClassHP:
		return HPMinDBm, HPMaxDBm
	case types.PAClassHF:
		return HFMinDBm, HFMaxDBm
	default:
		return LPMinDBm, HPMaxDBm
	}
}

// ComputeTxConfig turns a requested output power at freqHz into a complete
// PA configuration. The request is adjusted by offset and saturated into the
// range of the selected amplifier; it never fails.
func ComputeTxConfig(freqHz uint32, targetDBm int16, offset OffsetFunc) types.TxConfig {
	power := int32(targetDBm)
	if offset != nil {
		if off, ok := offset(); ok {
			power += int32(off)
		}
	}
	class := ClassFor(freqHz)
	lo, hi := PowerRange(class)
	return TxConfigFor(class, int16(mathx.Clamp(power, int32(lo), int32(hi))))
}

// TxConfigFor builds the configuration for power on a fixed PA wiring.
func TxConfigFor(class types.PAClass, power int16) types.TxConfig {
	lo, hi := PowerRange(class)
	power = mathx.Clamp(power, lo, hi)

	cfg := types.TxConfig{
		Class:       class,
		Supply:      types.SupplyRegulated,
		Ramp:        Ramp48us,
		ExpectedDBm: int8(power),
	}

	stage := class
	if class == types.PAClassLPHP {
		stage = types.PAClassHP
		if power <= LPMaxDBm {
			stage = types.PAClassLP
		}
	}

	switch stage {
	case types.PAClassLP:
		cfg.PASel = types.PASelLP
	case types.PAClassHP:
		cfg.PASel = types.PASelHP
		if power > HPRegulatedMaxDBm {
			cfg.Supply = types.SupplyBattery
		}
	case types.PAClassHF:
		cfg.PASel = types.PASelHF
	}

	e, _ := PowerEntry(stage, power)
	cfg.DutyCycle = e.DutyCycle
	cfg.HPSel = e.HPSel
	cfg.ConfiguredDBm = e.Power
	return cfg
}
