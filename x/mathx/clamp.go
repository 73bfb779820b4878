package mathx

import "golang.org/x/exp/constraints"

// Clamp saturates v into [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Between reports lo <= v && v <= hi (order-insensitive).
func Between[T constraints.Ordered](v, lo, hi T) bool {
	if hi < lo {
		lo, hi = hi, lo
	}
	return v >= lo && v <= hi
}

// SatInt8 narrows a signed value to int8, saturating at the type limits.
func SatInt8[T constraints.Signed](v T) int8 {
	return int8(Clamp(int64(v), -128, 127))
}

// SatUint8 narrows an unsigned value to uint8, saturating at 255.
func SatUint8[T constraints.Unsigned](v T) uint8 {
	if uint64(v) > 0xFF {
		return 0xFF
	}
	return uint8(v)
}

// Ordered returns (a, b) sorted ascending.
func Ordered[T constraints.Ordered](a, b T) (T, T) {
	if b < a {
		return b, a
	}
	return a, b
}
