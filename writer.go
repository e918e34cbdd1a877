package textio

import (
	"fmt"
	"io"
)

// Writer encodes code points, strings and fixed-width scalars into a
// Writable resource in a fixed Encoding. It borrows the resource.
//
// Writer tracks the first I/O error; after one, all subsequent write
// operations become no-ops until a successful Seek. Codec errors
// (ErrInvalidEncoding, ErrInvalidCodePoint) are returned without latching and
// without writing anything.
type Writer struct {
	out     Writable
	enc     Encoding
	opts    options
	count   int64 // total bytes written
	err     error // first I/O error encountered. Subsequent writes become no-ops.
	started bool
}

// NewWriter creates a Writer over out.
func NewWriter(out Writable, enc Encoding, opts ...Option) (*Writer, error) {
	if out == nil {
		return nil, ErrNilIO
	}
	return &Writer{out: out, enc: enc, opts: buildOptions(opts)}, nil
}

func (w *Writer) Encoding() Encoding { return w.enc }
func (w *Writer) Count() int64       { return w.count }
func (w *Writer) Err() error         { return w.err }

// setError records the first non-nil error.
// This preserves the root cause of a failure chain instead of a later,
// less relevant error.
func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Tell returns the raw byte offset of the next write: the resource offset
// when it is seekable, otherwise the bytes written through this Writer.
func (w *Writer) Tell() int64 {
	if s, ok := w.out.(Seekable); ok {
		return s.Tell()
	}
	return w.count
}

// Seek flushes and repositions the resource in raw bytes, with the same code
// unit alignment rule as Reader.Seek. A successful seek clears a latched error.
func (w *Writer) Seek(offset int64, whence int) (int64, error) {
	s, ok := w.out.(Seekable)
	if !ok {
		return w.Tell(), ErrNotSeekable
	}
	pos, err := seekAligned(s, w.enc.UnitSize(), offset, whence)
	if err != nil {
		return pos, err
	}
	w.err = nil
	return pos, nil
}

// Flush writes any buffered data to the underlying resource.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	err := w.out.Flush()
	w.setError(err)
	return err
}

// Result flushes the buffer and returns the final count and error state.
func (w *Writer) Result() (int64, error) {
	w.Flush()
	return w.count, w.err
}

// Write implements io.Writer, passing raw bytes through without encoding.
func (w *Writer) Write(p []byte) (int, error) {
	if len(p) == 0 || w.err != nil {
		return 0, w.err
	}
	if !w.start() {
		return 0, w.err
	}
	n, err := w.out.Write(p)
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

// start emits the byte order mark before the first write when configured.
func (w *Writer) start() bool {
	if w.started {
		return true
	}
	w.started = true
	if w.opts.writeBOM && w.Tell() == 0 {
		w.writeEncoded(w.enc.BOMBytes())
	}
	return w.err == nil
}

func (w *Writer) writeEncoded(p []byte) (int, error) {
	n, err := w.out.Write(p)
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

// WriteBOM writes a byte order mark in the stream encoding.
func (w *Writer) WriteBOM() (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.started = true
	return w.writeEncoded(w.enc.BOMBytes())
}

// WriteRune encodes r and returns the number of raw bytes written.
func (w *Writer) WriteRune(r rune) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	var buf [UTFMax]byte
	p, err := w.enc.AppendRune(buf[:0], r)
	if err != nil {
		return 0, err
	}
	if !w.start() {
		return 0, w.err
	}
	return w.writeEncoded(p)
}

// WriteRunes encodes rs as one write. Nothing is written if any code point
// is invalid.
func (w *Writer) WriteRunes(rs []rune) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	buf := getScratch()
	p := (*buf)[:0]
	defer func() { putScratch(buf, p) }()
	for i, r := range rs {
		var err error
		if p, err = w.enc.AppendRune(p, r); err != nil {
			return 0, fmt.Errorf("rune %d: %w", i, err)
		}
	}
	if len(p) == 0 || !w.start() {
		return 0, w.err
	}
	return w.writeEncoded(p)
}

// WriteString implements io.StringWriter. s is decoded as UTF-8 and
// re-encoded in the stream encoding; nothing is written if s is malformed.
func (w *Writer) WriteString(s string) (int, error) {
	if s == "" || w.err != nil {
		return 0, w.err
	}
	buf := getScratch()
	p := (*buf)[:0]
	defer func() { putScratch(buf, p) }()
	for off := 0; off < len(s); {
		r, n, err := decodeUTF8String(s[off:])
		if err != nil {
			return 0, fmt.Errorf("byte %d: %w", off, err)
		}
		if p, err = w.enc.AppendRune(p, r); err != nil {
			return 0, err
		}
		off += n
	}
	if !w.start() {
		return 0, w.err
	}
	return w.writeEncoded(p)
}

// decodeUTF8String decodes the first code point of s without converting the
// whole string to a byte slice.
func decodeUTF8String(s string) (rune, int, error) {
	var head [UTFMax]byte
	n := copy(head[:], s)
	return DecodeUTF8(head[:n])
}

// WriteZeros writes n zero bytes, often for padding.
func (w *Writer) WriteZeros(n int64) {
	if w.err != nil || n <= 0 {
		return
	}
	if !w.start() {
		return
	}
	written, err := writeZeros(w.out, n)
	w.count += written
	w.setError(err)
}

// Align writes zero bytes until the offset is a multiple of n, which must be
// a power of two.
func (w *Writer) Align(n int) {
	if n > 1 {
		pos := w.Tell()
		w.WriteZeros(Roundup(pos, int64(n)) - pos)
	}
}

var (
	_ io.Writer       = (*Writer)(nil)
	_ io.StringWriter = (*Writer)(nil)
	_ io.RuneReader   = (*Reader)(nil)
	_ io.Reader       = (*Reader)(nil)
)
