package textio

import "io"

// DecodeUTF32 decodes the first code point of u. A UTF-32 unit is the code
// point itself and must be a valid scalar.
func DecodeUTF32(u []uint32) (rune, int, error) {
	return decodeUnits(UTF32, u)
}

// EncodeUTF32 writes r into p as a single unit.
func EncodeUTF32(p []uint32, r rune) (int, error) {
	if !ValidRune(r) {
		return 0, invalidRune(r)
	}
	if len(p) < 1 {
		return 0, io.ErrShortBuffer
	}
	p[0] = uint32(r)
	return 1, nil
}

// AppendUTF32 appends r to dst as a single unit.
func AppendUTF32(dst []uint32, r rune) ([]uint32, error) {
	if !ValidRune(r) {
		return dst, invalidRune(r)
	}
	return append(dst, uint32(r)), nil
}
