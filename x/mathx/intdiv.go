package mathx

// MulDiv returns a*num/den with a 64-bit intermediate, truncating.
// den == 0 yields 0.
func MulDiv[T ~uint32 | ~uint64](a, num, den T) T {
	if den == 0 {
		return 0
	}
	return T(uint64(a) * uint64(num) / uint64(den))
}
