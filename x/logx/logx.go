// Package logx is a small leveled logger for firmware and host builds.
//
// Lines look like the println diagnostics used across the services:
//
//	[hal] info: timer armed delay_ms=250
//
// Formatting avoids fmt so it stays cheap on MCU targets.
package logx

import (
	"io"
	"os"
	"sync"
	"time"

	"modemhal-go/x/conv"
)

type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "off"
	}
}

var (
	mu        sync.Mutex
	out       io.Writer = os.Stderr
	threshold           = LevelInfo
)

// SetOutput redirects all loggers. nil restores os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	if w == nil {
		w = os.Stderr
	}
	out = w
	mu.Unlock()
}

// SetLevel sets the minimum level that is written.
func SetLevel(l Level) {
	mu.Lock()
	threshold = l
	mu.Unlock()
}

// Enabled reports whether l would currently be written.
func Enabled(l Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return l >= threshold && l < LevelOff
}

// Logger tags every line with a module name.
type Logger struct {
	module string
}

func New(module string) Logger { return Logger{module: module} }

func (l Logger) Debug(msg string, kv ...any) { l.log(LevelDebug, msg, kv) }
func (l Logger) Info(msg string, kv ...any)  { l.log(LevelInfo, msg, kv) }
func (l Logger) Warn(msg string, kv ...any)  { l.log(LevelWarn, msg, kv) }
func (l Logger) Error(msg string, kv ...any) { l.log(LevelError, msg, kv) }

// Hex writes msg followed by p as hex pairs.
func (l Logger) Hex(level Level, msg string, p []byte) {
	if !Enabled(level) {
		return
	}
	b := l.prefix(make([]byte, 0, 32+len(msg)+3*len(p)), level)
	b = append(b, msg...)
	b = append(b, ": "...)
	b = conv.AppendHexBytes(b, p)
	write(append(b, '\n'))
}

func (l Logger) log(level Level, msg string, kv []any) {
	if !Enabled(level) {
		return
	}
	b := l.prefix(make([]byte, 0, 64+len(msg)), level)
	b = append(b, msg...)
	for i := 0; i+1 < len(kv); i += 2 {
		b = append(b, ' ')
		b = appendValue(b, kv[i])
		b = append(b, '=')
		b = appendValue(b, kv[i+1])
	}
	if len(kv)%2 == 1 {
		b = append(b, ' ')
		b = appendValue(b, kv[len(kv)-1])
	}
	write(append(b, '\n'))
}

func (l Logger) prefix(b []byte, level Level) []byte {
	b = append(b, '[')
	b = append(b, l.module...)
	b = append(b, "] "...)
	b = append(b, level.String()...)
	return append(b, ": "...)
}

func write(b []byte) {
	mu.Lock()
	_, _ = out.Write(b)
	mu.Unlock()
}

func appendValue(b []byte, v any) []byte {
	switch x := v.(type) {
	case string:
		return append(b, x...)
	case bool:
		if x {
			return append(b, "true"...)
		}
		return append(b, "false"...)
	case int:
		return conv.AppendInt(b, int64(x))
	case int8:
		return conv.AppendInt(b, int64(x))
	case int16:
		return conv.AppendInt(b, int64(x))
	case int32:
		return conv.AppendInt(b, int64(x))
	case int64:
		return conv.AppendInt(b, x)
	case uint:
		return conv.AppendUint(b, uint64(x))
	case uint8:
		return conv.AppendUint(b, uint64(x))
	case uint16:
		return conv.AppendUint(b, uint64(x))
	case uint32:
		return conv.AppendUint(b, uint64(x))
	case uint64:
		return conv.AppendUint(b, x)
	case time.Duration:
		return append(b, x.String()...)
	case []byte:
		return conv.AppendHexBytes(b, x)
	case error:
		if x == nil {
			return append(b, "<nil>"...)
		}
		return append(b, x.Error()...)
	case interface{ String() string }:
		return append(b, x.String()...)
	case nil:
		return append(b, "<nil>"...)
	default:
		return append(b, '?')
	}
}
