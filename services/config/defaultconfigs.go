package config

// -----------------------------------------------------------------------------
// Embedded configuration
//
// Key: device ID (same value placed in ctx under CtxDeviceKey)
// Val: raw YAML bytes for that device
// -----------------------------------------------------------------------------

const cfgLR1110EVK = `
modem:
  use_chip_eui: true
  join_eui: "0000000000000000"
  app_key: "00000000000000000000000000000000"
  class: A
  region: EU868
heartbeat:
  interval: 10
`

const cfgLR1121Module = `
modem:
  use_chip_eui: true
  join_eui: "0000000000000000"
  app_key: "00000000000000000000000000000000"
  class: A
  region: WW2G4
heartbeat:
  interval: 30
`

var embeddedConfigs = map[string][]byte{
	"lr1110_evk":    []byte(cfgLR1110EVK),
	"lr1121_module": []byte(cfgLR1121Module),
}
