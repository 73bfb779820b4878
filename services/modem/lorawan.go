package modem

import (
	"modemhal-go/errcode"
	"modemhal-go/types"
	"modemhal-go/x/logx"
)

// Stack is the engine's LoRaWAN parameter API. Methods return engine
// return codes.
type Stack interface {
	ChipEUI() (eui [8]byte, rc int)
	SetDevEUI(eui [8]byte) int
	SetJoinEUI(eui [8]byte) int
	SetNwkKey(key [16]byte) int
	SetClass(c types.LoRaWANClass) int
	SetRegion(r types.Region) int
}

var cfgLog = logx.New("lorawan")

// ConfigureLoRaWAN applies cfg to st in join order and stops at the first
// failing step. With UseChipEUIAsDevEUI the radio's EUI is read and stored
// back into cfg.DevEUI.
func ConfigureLoRaWAN(st Stack, cfg *types.LoRaWANConfig) error {
	if cfg.UseChipEUIAsDevEUI {
		eui, rc := st.ChipEUI()
		if err := errcode.Wrap("get_chip_eui", rc); err != nil {
			cfgLog.Error("configure failed", "err", err)
			return err
		}
		cfg.DevEUI = eui
	}
	steps := []struct {
		op string
		do func() int
	}{
		{"set_deveui", func() int { return st.SetDevEUI(cfg.DevEUI) }},
		{"set_joineui", func() int { return st.SetJoinEUI(cfg.JoinEUI) }},
		{"set_nwkkey", func() int { return st.SetNwkKey(cfg.AppKey) }},
		{"set_class", func() int { return st.SetClass(cfg.Class) }},
		{"set_region", func() int { return st.SetRegion(cfg.Region) }},
	}
	for _, step := range steps {
		if err := errcode.Wrap(step.op, step.do()); err != nil {
			cfgLog.Error("configure failed", "err", err)
			return err
		}
	}
	cfgLog.Info("configured", "deveui", cfg.DevEUI[:], "class", cfg.Class, "region", uint8(cfg.Region))
	return nil
}
