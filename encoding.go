package textio

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/puzpuzpuz/xsync/v4"
)

// Form is the Unicode encoding form of a stream.
type Form uint8

const (
	UTF8 Form = iota
	UTF16
	UTF32
)

// UnitSize returns the code unit width in bytes.
func (f Form) UnitSize() int {
	switch f {
	case UTF16:
		return 2
	case UTF32:
		return 4
	default:
		return 1
	}
}

func (f Form) String() string {
	switch f {
	case UTF16:
		return "utf-16"
	case UTF32:
		return "utf-32"
	default:
		return "utf-8"
	}
}

// Encoding describes how code points are laid out as bytes: an encoding
// form plus the byte order of its code units. Order is ignored for UTF-8.
type Encoding struct {
	Form  Form
	Order ByteOrder
}

var (
	EncodingUTF8    = Encoding{Form: UTF8}
	EncodingUTF16   = Encoding{Form: UTF16, Order: NativeEndian}
	EncodingUTF16LE = Encoding{Form: UTF16, Order: LittleEndian}
	EncodingUTF16BE = Encoding{Form: UTF16, Order: BigEndian}
	EncodingUTF32   = Encoding{Form: UTF32, Order: NativeEndian}
	EncodingUTF32LE = Encoding{Form: UTF32, Order: LittleEndian}
	EncodingUTF32BE = Encoding{Form: UTF32, Order: BigEndian}
)

// UnitSize returns the code unit width in bytes.
func (e Encoding) UnitSize() int { return e.Form.UnitSize() }

// needsInversion reports whether units must be byte-swapped to or from the
// platform order.
func (e Encoding) needsInversion() bool {
	return e.Form != UTF8 && !e.Order.IsNative()
}

func (e Encoding) String() string {
	if e.Form == UTF8 || e.Order == NativeEndian {
		return e.Form.String()
	}
	return e.Form.String() + e.Order.String()
}

// WithOrder returns a copy of e using order.
func (e Encoding) WithOrder(order ByteOrder) Encoding {
	e.Order = order
	return e
}

// BOMBytes returns the byte order mark as laid out by e.
func (e Encoding) BOMBytes() []byte {
	b, _ := e.AppendRune(nil, BOM)
	return b
}

// unit reads one code unit from p, which must hold UnitSize bytes.
func (e Encoding) unit(p []byte) uint32 {
	switch e.Form {
	case UTF8:
		return uint32(p[0])
	case UTF16:
		var tmp [2]byte
		copy(tmp[:], p)
		if e.needsInversion() {
			InvertEndianness(tmp[:])
		}
		return uint32(binary.NativeEndian.Uint16(tmp[:]))
	default:
		var tmp [4]byte
		copy(tmp[:], p)
		if e.needsInversion() {
			InvertEndianness(tmp[:])
		}
		return binary.NativeEndian.Uint32(tmp[:])
	}
}

// AppendRune appends the encoding of r to dst.
func (e Encoding) AppendRune(dst []byte, r rune) ([]byte, error) {
	switch e.Form {
	case UTF8:
		return AppendUTF8(dst, r)
	case UTF16:
		var units [2]uint16
		n, err := EncodeUTF16(units[:], r)
		if err != nil {
			return dst, err
		}
		for _, u := range units[:n] {
			start := len(dst)
			dst = binary.NativeEndian.AppendUint16(dst, u)
			if e.needsInversion() {
				InvertEndianness(dst[start:])
			}
		}
		return dst, nil
	default:
		if !ValidRune(r) {
			return dst, invalidRune(r)
		}
		start := len(dst)
		dst = binary.NativeEndian.AppendUint32(dst, uint32(r))
		if e.needsInversion() {
			InvertEndianness(dst[start:])
		}
		return dst, nil
	}
}

// DecodeRune decodes the first code point of p and returns it with the number
// of bytes consumed. A trailing partial code unit counts as truncation.
func (e Encoding) DecodeRune(p []byte) (rune, int, error) {
	size := e.UnitSize()
	if len(p) == 0 {
		return RuneError, 0, fmt.Errorf("%w: empty input", ErrInvalidEncoding)
	}
	d := Decoder{form: e.Form}
	for off := 0; off+size <= len(p); off += size {
		done, err := d.Feed(e.unit(p[off:]))
		if err != nil {
			return RuneError, 0, err
		}
		if done {
			return d.Rune(), off + size, nil
		}
	}
	return RuneError, 0, d.truncated()
}

// EncodeString encodes the UTF-8 string s in e.
func (e Encoding) EncodeString(s string) ([]byte, error) {
	if e.Form == UTF8 {
		if _, err := e.DecodeString([]byte(s)); err != nil {
			return nil, err
		}
		return []byte(s), nil
	}
	out := make([]byte, 0, len(s)*e.UnitSize())
	it := NewIterator([]byte(s), EncodingUTF8)
	for it.Offset() < len(s) {
		r, err := it.Next()
		if err != nil {
			return nil, err
		}
		if out, err = e.AppendRune(out, r); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DecodeString decodes all of p into a Go string.
func (e Encoding) DecodeString(p []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(p))
	it := NewIterator(p, e)
	for it.Offset() < len(p) {
		r, err := it.Next()
		if err != nil {
			return "", err
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// registry maps lower-case encoding names to descriptors. It is safe for
// concurrent use so RegisterEncoding may run from init funcs of any package.
var registry = xsync.NewMap[string, Encoding]()

func init() {
	for name, enc := range map[string]Encoding{
		"utf-8":    EncodingUTF8,
		"utf8":     EncodingUTF8,
		"utf-16":   EncodingUTF16,
		"utf16":    EncodingUTF16,
		"utf-16le": EncodingUTF16LE,
		"utf16le":  EncodingUTF16LE,
		"utf-16be": EncodingUTF16BE,
		"utf16be":  EncodingUTF16BE,
		"utf-32":   EncodingUTF32,
		"utf32":    EncodingUTF32,
		"utf-32le": EncodingUTF32LE,
		"utf32le":  EncodingUTF32LE,
		"utf-32be": EncodingUTF32BE,
		"utf32be":  EncodingUTF32BE,
	} {
		registry.Store(name, enc)
	}
}

// RegisterEncoding adds or replaces an alias for enc.
func RegisterEncoding(name string, enc Encoding) {
	registry.Store(strings.ToLower(strings.TrimSpace(name)), enc)
}

// LookupEncoding resolves a case-insensitive encoding name.
func LookupEncoding(name string) (Encoding, error) {
	if enc, ok := registry.Load(strings.ToLower(strings.TrimSpace(name))); ok {
		return enc, nil
	}
	return Encoding{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// EncodingNames returns every registered name, in no particular order.
func EncodingNames() []string {
	names := make([]string, 0, registry.Size())
	registry.Range(func(name string, _ Encoding) bool {
		names = append(names, name)
		return true
	})
	return names
}
