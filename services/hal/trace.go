package hal

import "modemhal-go/x/logx"

// Trace hooks for the modem engine, written under the "modem" tag.

func (h *HAL) TraceDebug(msg string, kv ...any) { h.trace.Debug(msg, kv...) }
func (h *HAL) TraceInfo(msg string, kv ...any)  { h.trace.Info(msg, kv...) }
func (h *HAL) TraceWarn(msg string, kv ...any)  { h.trace.Warn(msg, kv...) }
func (h *HAL) TraceError(msg string, kv ...any) { h.trace.Error(msg, kv...) }

// TraceArray dumps p as hex at debug level.
func (h *HAL) TraceArray(name string, p []byte) { h.trace.Hex(logx.LevelDebug, name, p) }
