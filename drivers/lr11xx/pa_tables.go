package lr11xx

import (
	"modemhal-go/types"
	"modemhal-go/x/mathx"
)

// Board calibration for the reference design. Index = requested dBm - table minimum.

// Low-power PA, sub-GHz, regulated supply.
var paTableLP = [...]types.PowerEntry{
	{Power: -17, DutyCycle: 0x00, HPSel: 0x00}, // -17 dBm
	{Power: -16, DutyCycle: 0x00, HPSel: 0x00}, // -16 dBm
	{Power: -15, DutyCycle: 0x00, HPSel: 0x00}, // -15 dBm
	{Power: -14, DutyCycle: 0x00, HPSel: 0x00}, // -14 dBm
	{Power: -13, DutyCycle: 0x00, HPSel: 0x00}, // -13 dBm
	{Power: -12, DutyCycle: 0x00, HPSel: 0x00}, // -12 dBm
	{Power: -11, DutyCycle: 0x00, HPSel: 0x00}, // -11 dBm
	{Power: -10, DutyCycle: 0x00, HPSel: 0x00}, // -10 dBm
	{Power: -9, DutyCycle: 0x00, HPSel: 0x00}, // -9 dBm
	{Power: -8, DutyCycle: 0x00, HPSel: 0x00}, // -8 dBm
	{Power: -7, DutyCycle: 0x00, HPSel: 0x00}, // -7 dBm
	{Power: -6, DutyCycle: 0x00, HPSel: 0x00}, // -6 dBm
	{Power: -5, DutyCycle: 0x00, HPSel: 0x00}, // -5 dBm
	{Power: -4, DutyCycle: 0x00, HPSel: 0x00}, // -4 dBm
	{Power: -3, DutyCycle: 0x00, HPSel: 0x00}, // -3 dBm
	{Power: -2, DutyCycle: 0x00, HPSel: 0x00}, // -2 dBm
	{Power: -1, DutyCycle: 0x00, HPSel: 0x00}, // -1 dBm
	{Power: 0, DutyCycle: 0x00, HPSel: 0x00}, // +0 dBm
	{Power: 1, DutyCycle: 0x00, HPSel: 0x00}, // +1 dBm
	{Power: 2, DutyCycle: 0x00, HPSel: 0x00}, // +2 dBm
	{Power: 3, DutyCycle: 0x00, HPSel: 0x00}, // +3 dBm
	{Power: 4, DutyCycle: 0x00, HPSel: 0x00}, // +4 dBm
	{Power: 5, DutyCycle: 0x00, HPSel: 0x00}, // +5 dBm
	{Power: 6, DutyCycle: 0x00, HPSel: 0x00}, // +6 dBm
	{Power: 7, DutyCycle: 0x00, HPSel: 0x00}, // +7 dBm
	{Power: 8, DutyCycle: 0x00, HPSel: 0x00}, // +8 dBm
	{Power: 9, DutyCycle: 0x00, HPSel: 0x00}, // +9 dBm
	{Power: 10, DutyCycle: 0x00, HPSel: 0x00}, // +10 dBm
	{Power: 11, DutyCycle: 0x01, HPSel: 0x00}, // +11 dBm
	{Power: 12, DutyCycle: 0x02, HPSel: 0x00}, // +12 dBm
	{Power: 13, DutyCycle: 0x03, HPSel: 0x00}, // +13 dBm
	{Power: 14, DutyCycle: 0x04, HPSel: 0x00}, // +14 dBm
	{Power: 14, DutyCycle: 0x07, HPSel: 0x00}, // +15 dBm
}

// High-power PA, sub-GHz. Supply switches to VBAT above +8 dBm.
var paTableHP = [...]types.PowerEntry{
	{Power: -9, DutyCycle: 0x00, HPSel: 0x00}, // -9 dBm
	{Power: -8, DutyCycle: 0x00, HPSel: 0x00}, // -8 dBm
	{Power: -7, DutyCycle: 0x00, HPSel: 0x00}, // -7 dBm
	{Power: -6, DutyCycle: 0x00, HPSel: 0x00}, // -6 dBm
	{Power: -5, DutyCycle: 0x00, HPSel: 0x00}, // -5 dBm
	{Power: -4, DutyCycle: 0x00, HPSel: 0x00}, // -4 dBm
	{Power: -3, DutyCycle: 0x00, HPSel: 0x00}, // -3 dBm
	{Power: -2, DutyCycle: 0x00, HPSel: 0x00}, // -2 dBm
	{Power: -1, DutyCycle: 0x00, HPSel: 0x00}, // -1 dBm
	{Power: 0, DutyCycle: 0x00, HPSel: 0x00}, // +0 dBm
	{Power: 1, DutyCycle: 0x00, HPSel: 0x00}, // +1 dBm
	{Power: 2, DutyCycle: 0x00, HPSel: 0x00}, // +2 dBm
	{Power: 3, DutyCycle: 0x00, HPSel: 0x00}, // +3 dBm
	{Power: 4, DutyCycle: 0x00, HPSel: 0x00}, // +4 dBm
	{Power: 5, DutyCycle: 0x00, HPSel: 0x00}, // +5 dBm
	{Power: 6, DutyCycle: 0x00, HPSel: 0x00}, // +6 dBm
	{Power: 7, DutyCycle: 0x00, HPSel: 0x00}, // +7 dBm
	{Power: 8, DutyCycle: 0x00, HPSel: 0x00}, // +8 dBm
	{Power: 9, DutyCycle: 0x00, HPSel: 0x00}, // +9 dBm
	{Power: 10, DutyCycle: 0x02, HPSel: 0x01}, // +10 dBm
	{Power: 11, DutyCycle: 0x02, HPSel: 0x01}, // +11 dBm
	{Power: 12, DutyCycle: 0x02, HPSel: 0x02}, // +12 dBm
	{Power: 13, DutyCycle: 0x02, HPSel: 0x02}, // +13 dBm
	{Power: 14, DutyCycle: 0x02, HPSel: 0x03}, // +14 dBm
	{Power: 15, DutyCycle: 0x02, HPSel: 0x03}, // +15 dBm
	{Power: 16, DutyCycle: 0x02, HPSel: 0x04}, // +16 dBm
	{Power: 17, DutyCycle: 0x04, HPSel: 0x04}, // +17 dBm
	{Power: 18, DutyCycle: 0x04, HPSel: 0x05}, // +18 dBm
	{Power: 19, DutyCycle: 0x04, HPSel: 0x05}, // +19 dBm
	{Power: 20, DutyCycle: 0x04, HPSel: 0x06}, // +20 dBm
	{Power: 21, DutyCycle: 0x04, HPSel: 0x06}, // +21 dBm
	{Power: 22, DutyCycle: 0x04, HPSel: 0x07}, // +22 dBm
}

// High-frequency PA, 2.4 GHz.
var paTableHF = [...]types.PowerEntry{
	{Power: -18, DutyCycle: 0x00, HPSel: 0x00}, // -18 dBm
	{Power: -17, DutyCycle: 0x00, HPSel: 0x00}, // -17 dBm
	{Power: -16, DutyCycle: 0x00, HPSel: 0x00}, // -16 dBm
	{Power: -15, DutyCycle: 0x00, HPSel: 0x00}, // -15 dBm
	{Power: -14, DutyCycle: 0x00, HPSel: 0x00}, // -14 dBm
	{Power: -13, DutyCycle: 0x00, HPSel: 0x00}, // -13 dBm
	{Power: -12, DutyCycle: 0x00, HPSel: 0x00}, // -12 dBm
	{Power: -11, DutyCycle: 0x00, HPSel: 0x00}, // -11 dBm
	{Power: -10, DutyCycle: 0x00, HPSel: 0x00}, // -10 dBm
	{Power: -9, DutyCycle: 0x00, HPSel: 0x00}, // -9 dBm
	{Power: -8, DutyCycle: 0x00, HPSel: 0x00}, // -8 dBm
	{Power: -7, DutyCycle: 0x00, HPSel: 0x00}, // -7 dBm
	{Power: -6, DutyCycle: 0x00, HPSel: 0x00}, // -6 dBm
	{Power: -5, DutyCycle: 0x00, HPSel: 0x00}, // -5 dBm
	{Power: -4, DutyCycle: 0x00, HPSel: 0x00}, // -4 dBm
	{Power: -3, DutyCycle: 0x00, HPSel: 0x00}, // -3 dBm
	{Power: -2, DutyCycle: 0x00, HPSel: 0x00}, // -2 dBm
	{Power: -1, DutyCycle: 0x00, HPSel: 0x00}, // -1 dBm
	{Power: 0, DutyCycle: 0x00, HPSel: 0x00}, // +0 dBm
	{Power: 1, DutyCycle: 0x00, HPSel: 0x00}, // +1 dBm
	{Power: 2, DutyCycle: 0x00, HPSel: 0x00}, // +2 dBm
	{Power: 3, DutyCycle: 0x00, HPSel: 0x00}, // +3 dBm
	{Power: 4, DutyCycle: 0x00, HPSel: 0x00}, // +4 dBm
	{Power: 5, DutyCycle: 0x00, HPSel: 0x00}, // +5 dBm
	{Power: 6, DutyCycle: 0x00, HPSel: 0x00}, // +6 dBm
	{Power: 7, DutyCycle: 0x00, HPSel: 0x00}, // +7 dBm
	{Power: 8, DutyCycle: 0x00, HPSel: 0x00}, // +8 dBm
	{Power: 9, DutyCycle: 0x00, HPSel: 0x00}, // +9 dBm
	{Power: 10, DutyCycle: 0x00, HPSel: 0x00}, // +10 dBm
	{Power: 11, DutyCycle: 0x00, HPSel: 0x00}, // +11 dBm
	{Power: 12, DutyCycle: 0x00, HPSel: 0x00}, // +12 dBm
	{Power: 13, DutyCycle: 0x01, HPSel: 0x00}, // +13 dBm
}

// A table whose length does not match its power range fails to compile.
var (
	_ = [1]struct{}{}[len(paTableLP)-int(LPMaxDBm-LPMinDBm+1)]
	_ = [1]struct{}{}[len(paTableHP)-int(HPMaxDBm-HPMinDBm+1)]
	_ = [1]struct{}{}[len(paTableHF)-int(HFMaxDBm-HFMinDBm+1)]
)

func init() {
	checkTable("lp", paTableLP[:], LPMinDBm, LPMaxDBm)
	checkTable("hp", paTableHP[:], HPMinDBm, HPMaxDBm)
	checkTable("hf", paTableHF[:], HFMinDBm, HFMaxDBm)
}

func checkTable(name string, tbl []types.PowerEntry, lo, hi int16) {
	for _, e := range tbl {
		if !mathx.Between(int16(e.Power), lo, hi) {
			panic("lr11xx: pa table " + name + " entry out of range")
		}
	}
}

// PowerEntry returns the calibration entry for power on the given stage.
// ok is false when power lies outside the stage's table.
func PowerEntry(class types.PAClass, power int16) (e types.PowerEntry, ok bool) {
	var tbl []types.PowerEntry
	var lo int16
	switch class {
	case types.PAClassLP:
		tbl, lo = paTableLP[:], LPMinDBm
	case types.PAClassHP:
		tbl, lo = paTableHP[:], HPMinDBm
	case types.PAClassHF:
		tbl, lo = paTableHF[:], HFMinDBm
	default:
		return types.PowerEntry{}, false
	}
	i := int(power - lo)
	if i < 0 || i >= len(tbl) {
		return types.PowerEntry{}, false
	}
	return tbl[i], true
}
