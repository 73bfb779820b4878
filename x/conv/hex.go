package conv

const hexd = "0123456789ABCDEF"

// AppendHexBytes appends p as space-separated uppercase hex pairs ("0A 1B").
func AppendHexBytes(dst, p []byte) []byte {
	for i, b := range p {
		if i > 0 {
			dst = append(dst, ' ')
		}
		dst = append(dst, hexd[b>>4], hexd[b&0xF])
	}
	return dst
}
