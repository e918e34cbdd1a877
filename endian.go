package textio

import "encoding/binary"

// ByteOrder selects how multi-byte code units and scalars are laid out on
// the wire.
type ByteOrder uint8

const (
	NativeEndian ByteOrder = iota
	LittleEndian
	BigEndian
)

var nativeIsBig = binary.NativeEndian.Uint16([]byte{0x12, 0x34}) == 0x1234

// Resolve maps NativeEndian to the platform's concrete order.
func (o ByteOrder) Resolve() ByteOrder {
	if o != NativeEndian {
		return o
	}
	if nativeIsBig {
		return BigEndian
	}
	return LittleEndian
}

// Swapped returns the opposite concrete order.
func (o ByteOrder) Swapped() ByteOrder {
	if o.Resolve() == BigEndian {
		return LittleEndian
	}
	return BigEndian
}

// IsNative reports whether values in this order can be read with
// binary.NativeEndian without inversion.
func (o ByteOrder) IsNative() bool {
	return o == NativeEndian || o.Resolve() == NativeEndian.Resolve()
}

// Binary returns the encoding/binary order for o.
func (o ByteOrder) Binary() binary.ByteOrder {
	switch o.Resolve() {
	case BigEndian:
		return binary.BigEndian
	default:
		return binary.LittleEndian
	}
}

func (o ByteOrder) String() string {
	switch o {
	case LittleEndian:
		return "le"
	case BigEndian:
		return "be"
	default:
		return "native"
	}
}

// InvertEndianness reverses p in place.
func InvertEndianness(p []byte) {
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
}

// InvertUnits reverses every size-byte unit of p in place. A trailing
// partial unit is left untouched.
func InvertUnits(p []byte, size int) {
	if size <= 1 {
		return
	}
	for i := 0; i+size <= len(p); i += size {
		InvertEndianness(p[i : i+size])
	}
}
