package types

// ------------------------
// Modem engine events (published on modem/event/<kind>)
// ------------------------

type EventKind uint8

const (
	EventNone EventKind = iota
	EventReset
	EventAlarm
	EventJoined
	EventJoinFail
	EventTxDone
	EventDownData
	EventUploadDone
	EventSetConf
	EventMute
	EventStreamDone
	EventTime
	EventADRMobileToStatic
	EventNewLinkADR
	EventLinkCheck
	EventAlmanacUpdate
	EventUserRadioAccess
	EventClassBPingSlotInfo
	EventClassBStatus
	EventMiddleware1
	EventMiddleware2
	EventMiddleware3
)

var eventNames = [...]string{
	EventNone:               "none",
	EventReset:              "reset",
	EventAlarm:              "alarm",
	EventJoined:             "joined",
	EventJoinFail:           "join_fail",
	EventTxDone:             "tx_done",
	EventDownData:           "down_data",
	EventUploadDone:         "upload_done",
	EventSetConf:            "set_conf",
	EventMute:               "mute",
	EventStreamDone:         "stream_done",
	EventTime:               "time",
	EventADRMobileToStatic:  "adr_mobile_to_static",
	EventNewLinkADR:         "new_link_adr",
	EventLinkCheck:          "link_check",
	EventAlmanacUpdate:      "almanac_update",
	EventUserRadioAccess:    "user_radio_access",
	EventClassBPingSlotInfo: "class_b_ping_slot_info",
	EventClassBStatus:       "class_b_status",
	EventMiddleware1:        "middleware_1",
	EventMiddleware2:        "middleware_2",
	EventMiddleware3:        "middleware_3",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// ModemEvent is one event pulled from the engine. Only the fields relevant to
// Kind are set.
type ModemEvent struct {
	Kind        EventKind `json:"kind"`
	Status      uint8     `json:"status,omitempty"`       // tx_done, upload_done, mute, time, ...
	ResetCount  uint16    `json:"reset_count,omitempty"`  // reset
	TimestampMS uint32    `json:"timestamp_ms,omitempty"` // user_radio_access
	Downlink    *Downlink `json:"downlink,omitempty"`     // down_data
	Link        *LinkInfo `json:"link,omitempty"`         // link_check
}

// Downlink carries a received frame. RSSI is raw (dBm + 64), SNR in 0.25 dB.
type Downlink struct {
	RSSI    int8   `json:"rssi"`
	SNR     int8   `json:"snr"`
	Window  uint8  `json:"window"`
	Port    uint8  `json:"port"`
	Payload []byte `json:"payload"`
}

// RSSIdBm returns the RSSI in dBm.
func (d *Downlink) RSSIdBm() int { return int(d.RSSI) - 64 }

// SNRdB returns the SNR rounded toward zero in whole dB.
func (d *Downlink) SNRdB() int { return int(d.SNR) / 4 }

type LinkInfo struct {
	MarginDB     uint8 `json:"margin_db"`
	GatewayCount uint8 `json:"gw_cnt"`
}

// ------------------------
// LoRaWAN parameters
// ------------------------

type LoRaWANClass uint8

const (
	ClassA LoRaWANClass = 0x00
	ClassB LoRaWANClass = 0x01
	ClassC LoRaWANClass = 0x02
)

func (c LoRaWANClass) String() string {
	switch c {
	case ClassA:
		return "A"
	case ClassB:
		return "B"
	case ClassC:
		return "C"
	default:
		return "?"
	}
}

// Region identifiers follow the engine's numbering.
type Region uint8

const (
	RegionEU868  Region = 0x01
	RegionAS923  Region = 0x02
	RegionUS915  Region = 0x03
	RegionAU915  Region = 0x04
	RegionCN470  Region = 0x05
	RegionWW2G4  Region = 0x06
	RegionKR920  Region = 0x08
	RegionIN865  Region = 0x09
	RegionRU864  Region = 0x0A
)

// LoRaWANConfig is the common join configuration.
type LoRaWANConfig struct {
	UseChipEUIAsDevEUI bool // DevEUI is read from the radio and written back here
	DevEUI             [8]byte
	JoinEUI            [8]byte
	AppKey             [16]byte
	Class              LoRaWANClass
	Region             Region
}

// Version is a dotted version number reported by the engine.
type Version struct {
	Major, Minor, Patch, Revision uint8
}

// ------------------------
// Retained modem state (modem/state)
// ------------------------

type ModemState struct {
	Level  string `json:"level"`  // "running", "stopped"
	Status string `json:"status"` // short code
	TS     int64  `json:"ts_ns"`
}
