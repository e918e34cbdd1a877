package textio

import "io"

const (
	leadMin  = 0xD800
	leadMax  = 0xDBFF
	trailMin = 0xDC00
	trailMax = 0xDFFF
)

func isLeadSurrogate(u rune) bool  { return leadMin <= u && u <= leadMax }
func isTrailSurrogate(u rune) bool { return trailMin <= u && u <= trailMax }

func combineSurrogates(lead, trail rune) rune {
	return 0x10000 + (lead-leadMin)<<10 + (trail - trailMin)
}

// UTF16Len returns the number of 16-bit units needed to encode r, or -1 if r
// is not a valid code point.
func UTF16Len(r rune) int {
	switch {
	case !ValidRune(r):
		return -1
	case r > 0xFFFF:
		return 2
	default:
		return 1
	}
}

// DecodeUTF16 decodes the first code point of u and returns it with the
// number of units it occupies.
func DecodeUTF16(u []uint16) (rune, int, error) {
	return decodeUnits(UTF16, u)
}

// EncodeUTF16 writes the UTF-16 encoding of r into p. Code points above
// 0xFFFF become a surrogate pair.
func EncodeUTF16(p []uint16, r rune) (int, error) {
	n := UTF16Len(r)
	if n < 0 {
		return 0, invalidRune(r)
	}
	if len(p) < n {
		return 0, io.ErrShortBuffer
	}
	if n == 1 {
		p[0] = uint16(r)
		return 1, nil
	}
	r -= 0x10000
	p[0] = uint16(leadMin + (r>>10)&0x3FF)
	p[1] = uint16(trailMin + r&0x3FF)
	return 2, nil
}

// AppendUTF16 appends the UTF-16 encoding of r to dst.
func AppendUTF16(dst []uint16, r rune) ([]uint16, error) {
	var buf [2]uint16
	n, err := EncodeUTF16(buf[:], r)
	if err != nil {
		return dst, err
	}
	return append(dst, buf[:n]...), nil
}
