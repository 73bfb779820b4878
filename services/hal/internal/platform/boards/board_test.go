package boards

import "testing"

func TestBoardLookups(t *testing.T) {
	if !Pico.HasSPI("spi1") || Pico.HasSPI("SPI0.0") {
		t.Fatal("pico spi identities")
	}
	if !Pico.ValidPin(28) || Pico.ValidPin(29) || Pico.ValidPin(-1) {
		t.Fatal("pico gpio range")
	}
	if !RPiHeader.HasSPI("SPI0.0") || RPiHeader.HasUART("uart0") {
		t.Fatal("rpi header identities")
	}
}
