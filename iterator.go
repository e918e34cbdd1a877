package textio

import "fmt"

// Iterator walks the code points of an encoded byte slice.
type Iterator struct {
	B   []byte   // encoded data
	N   int      // current byte offset
	enc Encoding // encoding of B
}

// NewIterator creates an Iterator over b in enc.
func NewIterator(b []byte, enc Encoding) *Iterator {
	return &Iterator{B: b, enc: enc}
}

// More reports whether at least one more code unit remains.
func (it *Iterator) More() bool {
	return it.N+it.enc.UnitSize() <= len(it.B)
}

// Offset returns the byte offset of the next code point.
func (it *Iterator) Offset() int { return it.N }

// Reset rewinds the iterator to the start of B.
func (it *Iterator) Reset() { it.N = 0 }

// Peek decodes the next code point without advancing.
func (it *Iterator) Peek() (rune, int, error) {
	if !it.More() {
		if it.N < len(it.B) {
			return RuneError, 0, fmt.Errorf("%w: %d trailing bytes do not form a code unit", ErrInvalidEncoding, len(it.B)-it.N)
		}
		return RuneError, 0, ErrIteratedPastEnd
	}
	return it.enc.DecodeRune(it.B[it.N:])
}

// Next decodes the next code point and advances past it. Advancing beyond
// the last code point returns ErrIteratedPastEnd; a decode error leaves the
// offset unchanged.
func (it *Iterator) Next() (rune, error) {
	r, n, err := it.Peek()
	if err != nil {
		return r, err
	}
	it.N += n
	return r, nil
}
