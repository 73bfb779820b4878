package errcode

// Code is a stable, bus-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	NotInit       Code = "not_init"
	InvalidParams Code = "invalid_params"
	Busy          Code = "busy"
	Fail          Code = "fail"
	NoTime        Code = "no_time"
	InvalidStack  Code = "invalid_stack_id"
	NoEvent       Code = "no_event"
	Unavailable   Code = "unavailable"
	Timeout       Code = "timeout"

	Error Code = "error" // generic fallback
)

// Modem engine return codes, in engine numbering.
const (
	rcOK = iota
	rcNotInit
	rcInvalid
	rcBusy
	rcFail
	rcNoTime
	rcInvalidStackID
	rcNoEvent
)

// FromReturn maps an engine return code to a Code. Unknown values map to
// Error.
func FromReturn(rc int) Code {
	switch rc {
	case rcOK:
		return OK
	case rcNotInit:
		return NotInit
	case rcInvalid:
		return InvalidParams
	case rcBusy:
		return Busy
	case rcFail:
		return Fail
	case rcNoTime:
		return NoTime
	case rcInvalidStackID:
		return InvalidStack
	case rcNoEvent:
		return NoEvent
	default:
		return Error
	}
}

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap builds an *E for op from an engine return code; nil when rc is OK.
func Wrap(op string, rc int) error {
	c := FromReturn(rc)
	if c == OK {
		return nil
	}
	return &E{C: c, Op: op}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
