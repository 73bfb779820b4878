package halerr

import "testing"

func TestErrorsAreStableStrings(t *testing.T) {
	cases := map[string]error{
		"unknown_pin":        ErrUnknownPin,
		"pin_no_irq":         ErrPinNoIRQ,
		"unknown_bus":        ErrUnknownBus,
		"missing_hook":       ErrMissingHook,
		"irq_not_configured": ErrNotConfigured,
		"not_found":          ErrNotFound,
		"short_read":         ErrShortRead,
		"unavailable":        ErrUnavailable,
		"unsupported":        ErrUnsupported,
	}
	for want, e := range cases {
		if e == nil || e.Error() != want {
			t.Fatalf("error %q mismatch: got %#v", want, e)
		}
	}
}
