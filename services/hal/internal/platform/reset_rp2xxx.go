//go:build rp2040 || rp2350

package platform

import "machine"

func Reset() { machine.CPUReset() }
