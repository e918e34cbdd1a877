package textio

import (
	"fmt"
	"io"
)

const (
	// MaxRune is the largest valid code point.
	MaxRune = 0x10FFFF
	// RuneError is returned alongside decode errors.
	RuneError = '\uFFFD'
	// BOM is the byte order mark scalar.
	BOM = 0xFEFF

	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
	// UTFMax is the longest encoding of a code point in bytes, for any form.
	UTFMax = 4
)

// ValidRune reports whether r is a free-standing Unicode scalar value.
func ValidRune(r rune) bool {
	return 0 <= r && r < surrogateMin || surrogateMax < r && r <= MaxRune
}

func invalidRune(r rune) error {
	return fmt.Errorf("%w: U+%04X", ErrInvalidCodePoint, r)
}

// UTF8Len returns the number of bytes needed to encode r in UTF-8, or -1 if
// r is not a valid code point.
func UTF8Len(r rune) int {
	switch {
	case !ValidRune(r):
		return -1
	case r <= 0x7F:
		return 1
	case r <= 0x7FF:
		return 2
	case r <= 0xFFFF:
		return 3
	default:
		return 4
	}
}

// DecodeUTF8 decodes the first code point of p and returns it with the number
// of bytes it occupies.
func DecodeUTF8(p []byte) (rune, int, error) {
	return decodeUnits(UTF8, p)
}

// EncodeUTF8 writes the UTF-8 encoding of r into p and returns the number of
// bytes written. p must be large enough; see UTF8Len.
func EncodeUTF8(p []byte, r rune) (int, error) {
	n := UTF8Len(r)
	if n < 0 {
		return 0, invalidRune(r)
	}
	if len(p) < n {
		return 0, io.ErrShortBuffer
	}
	switch n {
	case 1:
		p[0] = byte(r)
	case 2:
		p[0] = 0xC0 | byte(r>>6)
		p[1] = 0x80 | byte(r)&0x3F
	case 3:
		p[0] = 0xE0 | byte(r>>12)
		p[1] = 0x80 | byte(r>>6)&0x3F
		p[2] = 0x80 | byte(r)&0x3F
	default:
		p[0] = 0xF0 | byte(r>>18)
		p[1] = 0x80 | byte(r>>12)&0x3F
		p[2] = 0x80 | byte(r>>6)&0x3F
		p[3] = 0x80 | byte(r)&0x3F
	}
	return n, nil
}

// AppendUTF8 appends the UTF-8 encoding of r to dst.
func AppendUTF8(dst []byte, r rune) ([]byte, error) {
	var buf [UTFMax]byte
	n, err := EncodeUTF8(buf[:], r)
	if err != nil {
		return dst, err
	}
	return append(dst, buf[:n]...), nil
}
