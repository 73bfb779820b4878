package boards

// Board describes what the PCB/SoC can do (controllers present, GPIO range).
// It must not include wiring choices (pins) or operating parameters (clock rates).
type Board struct {
	Name             string
	GPIOMin, GPIOMax int

	// Controllers present (identities only; e.g. "spi0", "uart0").
	SPI  []string
	UART []string
}

func (b Board) HasSPI(id string) bool  { return has(b.SPI, id) }
func (b Board) HasUART(id string) bool { return has(b.UART, id) }

func (b Board) ValidPin(n int) bool { return n >= b.GPIOMin && n <= b.GPIOMax }

func has(ids []string, id string) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

var Pico = Board{
	Name:    "pico",
	GPIOMin: 0,
	GPIOMax: 28,
	SPI:     []string{"spi0", "spi1"},
	UART:    []string{"uart0", "uart1"},
}

// RPiHeader is a Raspberry Pi class SBC with the 40-pin header.
var RPiHeader = Board{
	Name:    "rpi_header",
	GPIOMin: 0,
	GPIOMax: 27,
	SPI:     []string{"SPI0.0", "SPI0.1"},
}
