// services/hal/internal/halerr/errors.go
package halerr

import "errors"

var (
	// Build/config
	ErrUnknownPin  = errors.New("unknown_pin")
	ErrPinNoIRQ    = errors.New("pin_no_irq")
	ErrUnknownBus  = errors.New("unknown_bus")
	ErrMissingHook = errors.New("missing_hook")

	// Radio IRQ bridge
	ErrNotConfigured = errors.New("irq_not_configured")

	// Persistence
	ErrNotFound  = errors.New("not_found")
	ErrShortRead = errors.New("short_read")

	// Environment getters
	ErrUnavailable = errors.New("unavailable")

	// Generic / pass-through
	ErrUnsupported = errors.New("unsupported")
)
