package hal

// CrashLogSize is the fixed size of the stored crash log.
const CrashLogSize = 32

// StoreCrashlog saves p, truncated or zero-padded to CrashLogSize.
func (h *HAL) StoreCrashlog(p []byte) {
	var buf [CrashLogSize]byte
	copy(buf[:], p)
	if err := h.cfg.Store.Save(crashlogKey, buf[:]); err != nil {
		h.log.Error("crashlog store failed", "err", err)
	}
}

// RestoreCrashlog copies the stored crash log into p and returns its length
// without trailing zero padding.
func (h *HAL) RestoreCrashlog(p []byte) int {
	var buf [CrashLogSize]byte
	if err := h.load(crashlogKey, buf[:]); err != nil {
		return 0
	}
	n := CrashLogSize
	for n > 0 && buf[n-1] == 0 {
		n--
	}
	return copy(p, buf[:n])
}

func (h *HAL) SetCrashlogStatus(available bool) {
	v := []byte{0}
	if available {
		v[0] = 1
	}
	if err := h.cfg.Store.Save(crashlogStatKey, v); err != nil {
		h.log.Error("crashlog status store failed", "err", err)
	}
}

// CrashlogStatus reports whether a crash log is waiting to be read.
func (h *HAL) CrashlogStatus() bool {
	var v [1]byte
	n, err := h.cfg.Store.Load(crashlogStatKey, v[:])
	return err == nil && n == 1 && v[0] == 1
}

// AssertFail records the failing function as crash log and resets the MCU.
func (h *HAL) AssertFail(fn string, line uint32) {
	h.StoreCrashlog([]byte(fn))
	h.SetCrashlogStatus(true)
	h.log.Error("modem assert failed", "func", fn, "line", line)
	h.ResetMCU()
}

// ResetMCU invokes the reset hook. On hardware it does not return.
func (h *HAL) ResetMCU() {
	h.log.Warn("resetting mcu")
	h.cfg.Reset()
}

// ReloadWatchdog is a no-op: no watchdog is armed by the HAL.
func (h *HAL) ReloadWatchdog() {}
