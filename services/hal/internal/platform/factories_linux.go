// services/hal/internal/platform/factories_linux.go
//go:build linux && arm64 && !(rp2040 || rp2350)

package platform

import (
	"io"
	"sync"
	"time"

	"modemhal-go/services/hal/internal/halcore"
	"modemhal-go/services/hal/internal/platform/boards"
	"modemhal-go/services/hal/internal/platform/setups"
	"modemhal-go/x/conv"
	"modemhal-go/x/logx"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"
)

// -----------------------------------------------------------------------------
// Defaults on Linux SBCs (radio HAT on the 40-pin header), via periph.io
// -----------------------------------------------------------------------------

var (
	log      = logx.New("platform")
	hostOnce sync.Once
	hostErr  error
)

func initHost() error {
	hostOnce.Do(func() {
		_, hostErr = host.Init()
		if hostErr != nil {
			log.Error("periph host init failed", "err", hostErr)
		}
	})
	return hostErr
}

// DefaultPinFactory maps logical numbers to periph "GPIO<n>" names.
func DefaultPinFactory() halcore.PinFactory { return linuxPinFactory{} }

// DefaultSPIFactory opens the planned spidev port lazily.
func DefaultSPIFactory(plan setups.SPIPlan) halcore.SPIBusFactory {
	return &linuxSPIFactory{plan: plan}
}

// Console returns nil: logs stay on stderr (journald).
func Console(*setups.UARTPlan) io.Writer { return nil }

// ---- GPIO implementation (includes IRQ support) ----

type linuxPinFactory struct{}

func (linuxPinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	if !boards.RPiHeader.ValidPin(n) || initHost() != nil {
		return nil, false
	}
	p := gpioreg.ByName(string(conv.AppendInt([]byte("GPIO"), int64(n))))
	if p == nil {
		return nil, false
	}
	return &linuxPin{p: p, n: n}, true
}

type linuxPin struct {
	p gpio.PinIO
	n int

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func (l *linuxPin) ConfigureInput(pull halcore.Pull) error {
	return l.p.In(toPull(pull), gpio.NoEdge)
}

func (l *linuxPin) ConfigureOutput(initial bool) error {
	return l.p.Out(gpio.Level(initial))
}

func (l *linuxPin) Set(level bool) { _ = l.p.Out(gpio.Level(level)) }
func (l *linuxPin) Get() bool      { return l.p.Read() == gpio.High }
func (l *linuxPin) Toggle()        { l.Set(!l.Get()) }
func (l *linuxPin) Number() int    { return l.n }

// SetIRQ arms kernel edge detection and runs handler from a watcher
// goroutine, which stands in for the interrupt context.
func (l *linuxPin) SetIRQ(edge halcore.Edge, handler func()) error {
	if err := l.ClearIRQ(); err != nil {
		return err
	}
	if err := l.p.In(gpio.PullNoChange, toEdge(edge)); err != nil {
		return err
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	l.mu.Lock()
	l.stop, l.done = stop, done
	l.mu.Unlock()

	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
			}
			if l.p.WaitForEdge(100 * time.Millisecond) {
				select {
				case <-stop:
					return
				default:
				}
				handler()
			}
		}
	}()
	return nil
}

func (l *linuxPin) ClearIRQ() error {
	l.mu.Lock()
	stop, done := l.stop, l.done
	l.stop, l.done = nil, nil
	l.mu.Unlock()
	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	return l.p.In(gpio.PullNoChange, gpio.NoEdge)
}

func toPull(p halcore.Pull) gpio.Pull {
	switch p {
	case halcore.PullUp:
		return gpio.PullUp
	case halcore.PullDown:
		return gpio.PullDown
	default:
		return gpio.Float
	}
}

func toEdge(e halcore.Edge) gpio.Edge {
	switch e {
	case halcore.EdgeRising:
		return gpio.RisingEdge
	case halcore.EdgeFalling:
		return gpio.FallingEdge
	case halcore.EdgeBoth:
		return gpio.BothEdges
	default:
		return gpio.NoEdge
	}
}

// ---- SPI implementation ----

type linuxSPIFactory struct {
	plan setups.SPIPlan

	mu   sync.Mutex
	conn drivers.SPI
}

func (f *linuxSPIFactory) ByID(id string) (drivers.SPI, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id != f.plan.ID || !boards.RPiHeader.HasSPI(id) {
		return nil, false
	}
	if f.conn != nil {
		return f.conn, true
	}
	if initHost() != nil {
		return nil, false
	}
	port, err := spireg.Open(id)
	if err != nil {
		log.Error("spi open failed", "id", id, "err", err)
		return nil, false
	}
	c, err := port.Connect(physic.Frequency(f.plan.Hz)*physic.Hertz, spi.Mode0, 8)
	if err != nil {
		_ = port.Close()
		log.Error("spi connect failed", "id", id, "err", err)
		return nil, false
	}
	f.conn = &periphSPI{c: c}
	return f.conn, true
}

// periphSPI adapts a periph spi.Conn to drivers.SPI.
type periphSPI struct {
	c   spi.Conn
	buf []byte
}

func (s *periphSPI) Tx(w, r []byte) error {
	n := len(w)
	if len(r) > n {
		n = len(r)
	}
	if len(w) == n && len(r) == n {
		return s.c.Tx(w, r)
	}
	// Full duplex needs equal lengths: pad writes with 0x00, discard extra reads.
	if cap(s.buf) < 2*n {
		s.buf = make([]byte, 2*n)
	}
	wb, rb := s.buf[:n], s.buf[n:2*n]
	copy(wb, w)
	for i := len(w); i < n; i++ {
		wb[i] = 0
	}
	if err := s.c.Tx(wb, rb); err != nil {
		return err
	}
	copy(r, rb)
	return nil
}

func (s *periphSPI) Transfer(b byte) (byte, error) {
	var r [1]byte
	if err := s.c.Tx([]byte{b}, r[:]); err != nil {
		return 0, err
	}
	return r[0], nil
}
