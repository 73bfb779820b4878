// services/hal/hal.go
package hal

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"tinygo.org/x/drivers"

	"modemhal-go/drivers/lr11xx"
	"modemhal-go/services/hal/internal/halcore"
	"modemhal-go/services/hal/internal/halerr"
	"modemhal-go/services/hal/internal/irqbridge"
	"modemhal-go/services/hal/internal/timerbridge"
	"modemhal-go/types"
	"modemhal-go/x/logx"
)

// -----------------------------------------------------------------------------
// Pin types shared with board code
// -----------------------------------------------------------------------------

type (
	GPIOPin = halcore.GPIOPin
	IRQPin  = halcore.IRQPin
	Edge    = halcore.Edge
	Pull    = halcore.Pull
)

const (
	EdgeNone    = halcore.EdgeNone
	EdgeRising  = halcore.EdgeRising
	EdgeFalling = halcore.EdgeFalling
	EdgeBoth    = halcore.EdgeBoth
)

var (
	ErrNotFound    = halerr.ErrNotFound
	ErrShortRead   = halerr.ErrShortRead
	ErrUnavailable = halerr.ErrUnavailable
	ErrUnknownPin  = halerr.ErrUnknownPin
	ErrPinNoIRQ    = halerr.ErrPinNoIRQ
	ErrUnknownBus  = halerr.ErrUnknownBus
)

// -----------------------------------------------------------------------------
// Configuration
// -----------------------------------------------------------------------------

// Config carries the collaborators of the HAL. EventPin and the three
// environment getters are required; everything else has a default.
type Config struct {
	// Radio
	EventPin   IRQPin
	EventEdge  Edge        // default rising
	Radio      drivers.SPI // nil: TCXO commands fail and are logged
	RadioCS    func(active bool)
	TCXO       types.TCXOConfig
	RegMode    types.RegMode
	RFSwitch   types.RFSwitchConfig
	CRCOverSPI bool

	// Environment
	Battery       func() (uint8, error)  // charge level, 0..254
	Temperature   func() (int32, error)  // degrees Celsius
	VoltageMV     func() (uint32, error) // supply voltage
	TxPowerOffset lr11xx.OffsetFunc

	// Platform
	Store    Store                // default in-memory
	Reset    func()               // default platform reset
	Clock    func() time.Duration // time since boot; default monotonic clock
	Seed     uint64               // 0: seeded from the clock
	IRQQueue int                  // radio signal queue depth, default 8
}

// -----------------------------------------------------------------------------
// HAL
// -----------------------------------------------------------------------------

// HAL is the modem hardware abstraction context. The application builds
// exactly one and hands it to the modem engine. Its timer and radio IRQ
// callbacks run on whichever goroutine calls Dispatch.
type HAL struct {
	cfg   Config
	log   logx.Logger
	trace logx.Logger

	// Modem-level IRQ enable, read by the timer bridge on the worker side.
	irqOn atomic.Bool

	timer *timerbridge.Timer
	irq   *irqbridge.Bridge
	radio *lr11xx.Device
	wake  *time.Timer

	rngMu sync.Mutex
	rng   *rand.Rand
}

func New(cfg Config) *HAL {
	if cfg.EventPin == nil {
		panic("hal: radio event pin required")
	}
	if cfg.Battery == nil || cfg.Temperature == nil || cfg.VoltageMV == nil {
		panic("hal: battery, temperature and voltage getters required")
	}
	if cfg.EventEdge == EdgeNone {
		cfg.EventEdge = EdgeRising
	}
	if cfg.IRQQueue <= 0 {
		cfg.IRQQueue = 8
	}
	if cfg.Store == nil {
		cfg.Store = NewMemStore()
	}
	if cfg.Reset == nil {
		cfg.Reset = platformReset
	}
	if cfg.Clock == nil {
		boot := time.Now()
		cfg.Clock = func() time.Duration { return time.Since(boot) }
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	h := &HAL{
		cfg:   cfg,
		log:   logx.New("hal"),
		trace: logx.New("modem"),
		radio: lr11xx.New(cfg.Radio, cfg.RadioCS),
		rng:   rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9E3779B97F4A7C15)),
	}
	h.timer = timerbridge.New(h.irqOn.Load)
	h.irq = irqbridge.New(cfg.EventPin, cfg.EventEdge, cfg.IRQQueue)
	h.wake = time.NewTimer(time.Hour)
	h.wake.Stop()
	return h
}

// Stats is a snapshot of the bridge counters.
type Stats struct {
	TimerFired   uint32
	TimerDropped uint32
	TimerStale   uint32
	IRQDrops     uint32
}

func (h *HAL) Stats() Stats {
	return Stats{
		TimerFired:   h.timer.Fired(),
		TimerDropped: h.timer.Dropped(),
		TimerStale:   h.timer.Stale(),
		IRQDrops:     h.irq.ISRDrops(),
	}
}
