//go:build !lr1121_module

package setups

import "modemhal-go/types"

// LR1110 evaluation kit on a Pico carrier: 1.8 V TCXO, DC-DC, DIO5..DIO8
// drive the RF switch.
var SelectedPlan = ResourcePlan{
	Radio: SPIPlan{ID: "spi1", SCK: 10, SDO: 11, SDI: 12, NSS: 13, Hz: 8_000_000},
	Event: 14,
	Busy:  15,
	Reset: 9,
	Console: &UARTPlan{
		ID: "uart0", TX: 0, RX: 1, Baud: 115200,
	},
}

var SelectedSetup = RadioSetup{
	Name:    "lr1110_evk",
	RegMode: types.RegModeDCDC,
	TCXO: types.TCXOConfig{
		Present:   true,
		Supply:    types.TCXO1V8,
		TimeoutMS: 5,
	},
	RFSwitch: types.RFSwitchConfig{
		Enable:  dio5 | dio6 | dio7 | dio8,
		Standby: 0,
		Rx:      dio5,
		Tx:      dio5 | dio6,
		TxHP:    dio6,
		TxHF:    0,
		GNSS:    dio8,
		WiFi:    0,
	},
}
