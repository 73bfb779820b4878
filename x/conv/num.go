// Package conv formats numbers without fmt or strconv, for log lines and
// store keys on MCU builds.
package conv

// AppendUint appends the base-10 form of n to dst.
func AppendUint(dst []byte, n uint64) []byte {
	var tmp [20]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return append(dst, tmp[i:]...)
}

// AppendInt appends the base-10 form of n to dst.
func AppendInt(dst []byte, n int64) []byte {
	if n < 0 {
		dst = append(dst, '-')
		// -MinInt64 overflows back to itself; uint64 conversion is still exact.
		return AppendUint(dst, uint64(-n))
	}
	return AppendUint(dst, uint64(n))
}
