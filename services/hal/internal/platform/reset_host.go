//go:build !rp2040 && !rp2350

package platform

// Reset ends the process; the supervisor (systemd, test harness) restarts it.
func Reset() { panic("platform: mcu reset requested") }
