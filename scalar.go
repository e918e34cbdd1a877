package textio

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/exp/constraints"
)

// Scalar is any numeric type that may travel through a stream. Types without
// a fixed size (int, uint, uintptr) are rejected at run time with
// ErrUnsupportedScalar.
type Scalar interface {
	constraints.Integer | constraints.Float
}

// sizeCache avoids the cost of reflection in `binary.Size` on every call.
// Using a concurrent map keeps it safe for streams used from different
// goroutines.
var sizeCache = xsync.NewMap[reflect.Type, int]()

func scalarSize[T Scalar]() (int, error) {
	t := reflect.TypeFor[T]()
	if size, ok := sizeCache.Load(t); ok {
		return size, nil
	}
	var zero T
	size := binary.Size(zero)
	if size <= 0 || size > 8 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedScalar, t)
	}
	sizeCache.Store(t, size)
	return size, nil
}

// ReadScalar reads a fixed-width scalar in the stream byte order into dest.
// Errors are latched on r and reported by r.Err.
func ReadScalar[T Scalar](r *Reader, dest *T) {
	if r.err != nil {
		return
	}
	size, err := scalarSize[T]()
	if err != nil {
		r.setError(err)
		return
	}
	var buf [8]byte
	if !r.readFull(buf[:size]) {
		return
	}
	if !r.enc.Order.IsNative() {
		InvertEndianness(buf[:size])
	}
	if _, err := binary.Decode(buf[:size], binary.NativeEndian, dest); err != nil {
		r.setError(err)
	}
}

// WriteScalar writes v in the stream byte order. Errors are latched on w.
func WriteScalar[T Scalar](w *Writer, v T) {
	if w.err != nil {
		return
	}
	size, err := scalarSize[T]()
	if err != nil {
		w.setError(err)
		return
	}
	var buf [8]byte
	if _, err := binary.Encode(buf[:size], binary.NativeEndian, v); err != nil {
		w.setError(err)
		return
	}
	if !w.enc.Order.IsNative() {
		InvertEndianness(buf[:size])
	}
	if !w.start() {
		return
	}
	w.writeEncoded(buf[:size])
}

// --- Primitive Read Operations ---

func (r *Reader) ReadUint8(dest *uint8)     { ReadScalar(r, dest) }
func (r *Reader) ReadUint16(dest *uint16)   { ReadScalar(r, dest) }
func (r *Reader) ReadUint32(dest *uint32)   { ReadScalar(r, dest) }
func (r *Reader) ReadUint64(dest *uint64)   { ReadScalar(r, dest) }
func (r *Reader) ReadInt8(dest *int8)       { ReadScalar(r, dest) }
func (r *Reader) ReadInt16(dest *int16)     { ReadScalar(r, dest) }
func (r *Reader) ReadInt32(dest *int32)     { ReadScalar(r, dest) }
func (r *Reader) ReadInt64(dest *int64)     { ReadScalar(r, dest) }
func (r *Reader) ReadFloat32(dest *float32) { ReadScalar(r, dest) }
func (r *Reader) ReadFloat64(dest *float64) { ReadScalar(r, dest) }

func (r *Reader) ReadBool(dest *bool) {
	var b uint8
	r.ReadUint8(&b)
	if r.err == nil {
		*dest = b != 0
	}
}

// --- Primitive Write Operations ---

func (w *Writer) WriteUint8(v uint8)     { WriteScalar(w, v) }
func (w *Writer) WriteUint16(v uint16)   { WriteScalar(w, v) }
func (w *Writer) WriteUint32(v uint32)   { WriteScalar(w, v) }
func (w *Writer) WriteUint64(v uint64)   { WriteScalar(w, v) }
func (w *Writer) WriteInt8(v int8)       { WriteScalar(w, v) }
func (w *Writer) WriteInt16(v int16)     { WriteScalar(w, v) }
func (w *Writer) WriteInt32(v int32)     { WriteScalar(w, v) }
func (w *Writer) WriteInt64(v int64)     { WriteScalar(w, v) }
func (w *Writer) WriteFloat32(v float32) { WriteScalar(w, v) }
func (w *Writer) WriteFloat64(v float64) { WriteScalar(w, v) }

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteUint8(1)
	} else {
		w.WriteUint8(0)
	}
}
