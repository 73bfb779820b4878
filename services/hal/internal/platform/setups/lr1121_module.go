//go:build lr1121_module

package setups

import "modemhal-go/types"

// LR1121 module: XTAL (no TCXO), LDO, sub-GHz and 2.4 GHz paths.
var SelectedPlan = ResourcePlan{
	Radio: SPIPlan{ID: "spi0", SCK: 18, SDO: 19, SDI: 16, NSS: 17, Hz: 4_000_000},
	Event: 21,
	Busy:  20,
	Reset: 22,
}

var SelectedSetup = RadioSetup{
	Name:    "lr1121_module",
	RegMode: types.RegModeLDO,
	RFSwitch: types.RFSwitchConfig{
		Enable:  dio5 | dio6,
		Standby: 0,
		Rx:      dio5,
		Tx:      dio5 | dio6,
		TxHP:    dio6,
		TxHF:    dio6,
	},
	CRCOverSPI: true,
}
