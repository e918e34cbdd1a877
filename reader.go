package textio

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Reader decodes code points, strings and fixed-width scalars from a
// Readable resource in a fixed Encoding. It borrows the resource: closing or
// discarding a Reader leaves the resource open.
//
// I/O errors, including io.EOF, are latched: later reads return the first
// one until a successful Seek. Codec errors (ErrInvalidEncoding,
// ErrInvalidCodePoint, ErrReadPastEnd) are not latched. The failed sequence
// is held back by the Reader, so the position does not move on any resource;
// Seek forward over it to skip it.
//
// A byte order mark in the configured order at offset 0 is always consumed.
type Reader struct {
	in      Readable
	enc     Encoding
	opts    options
	count   int64  // bytes consumed by successful reads
	err     error  // first I/O error encountered.
	pend    []byte // bytes put back after a failed decode or BOM check
	started bool
	dec     Decoder
}

// NewReader creates a Reader over in.
func NewReader(in Readable, enc Encoding, opts ...Option) (*Reader, error) {
	if in == nil {
		return nil, ErrNilIO
	}
	return &Reader{in: in, enc: enc, opts: buildOptions(opts)}, nil
}

// Encoding returns the stream encoding. After BOM detection it reflects the
// detected byte order.
func (r *Reader) Encoding() Encoding { return r.enc }

func (r *Reader) Count() int64 { return r.count }
func (r *Reader) Err() error   { return r.err }
func (r *Reader) IsEOF() bool  { return r.err == io.EOF }

// setError records the first non-nil error.
func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// Tell returns the raw byte offset of the next read: the resource offset
// when it is seekable, otherwise the bytes consumed through this Reader.
func (r *Reader) Tell() int64 {
	if s, ok := r.in.(Seekable); ok {
		return s.Tell() - int64(len(r.pend))
	}
	return r.count
}

// Seek repositions the underlying resource in raw bytes and clears a latched
// error. For UTF-16 and UTF-32 the target must be a multiple of the code
// unit size; a misaligned target fails with ErrMisalignedSeek and nothing
// moves. A UTF-8 target inside a sequence surfaces as ErrInvalidEncoding on
// the next read.
//
// Bytes held back after a failed decode can be skipped with a SeekCurrent
// even when the resource cannot seek.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	unit := int64(r.enc.UnitSize())
	if whence == io.SeekCurrent && offset >= 0 && offset <= int64(len(r.pend)) {
		if pos := r.Tell() + offset; !Aligned(pos, unit) {
			return r.Tell(), fmt.Errorf("%w: offset %d, unit %d", ErrMisalignedSeek, pos, unit)
		}
		r.pend = r.pend[offset:]
		r.count += offset
		r.err = nil
		return r.Tell(), nil
	}
	s, ok := r.in.(Seekable)
	if !ok {
		return r.Tell(), ErrNotSeekable
	}
	if whence == io.SeekCurrent {
		offset -= int64(len(r.pend))
	}
	pos, err := seekAligned(s, int(unit), offset, whence)
	if err != nil {
		return r.Tell(), err
	}
	r.pend = nil
	r.err = nil
	r.started = pos != 0
	return pos, nil
}

// seekAligned seeks s and rejects targets that split a code unit.
func seekAligned(s Seekable, unit int, offset int64, whence int) (int64, error) {
	old := s.Tell()
	switch whence {
	case io.SeekStart:
		if !Aligned(offset, int64(unit)) {
			return old, fmt.Errorf("%w: offset %d, unit %d", ErrMisalignedSeek, offset, unit)
		}
	case io.SeekCurrent:
		if !Aligned(old+offset, int64(unit)) {
			return old, fmt.Errorf("%w: offset %d, unit %d", ErrMisalignedSeek, old+offset, unit)
		}
	}
	pos, err := s.Seek(offset, whence)
	if err != nil {
		return pos, err
	}
	if !Aligned(pos, int64(unit)) {
		if _, err := s.Seek(old, io.SeekStart); err != nil {
			return pos, err
		}
		return old, fmt.Errorf("%w: offset %d, unit %d", ErrMisalignedSeek, pos, unit)
	}
	return pos, nil
}

// read fills p from the held-back bytes first, then from the resource.
func (r *Reader) read(p []byte) (int, error) {
	n := copy(p, r.pend)
	r.pend = r.pend[n:]
	if n == len(p) {
		return n, nil
	}
	m, err := r.in.Read(p[n:])
	n += m
	if err == io.EOF && n == len(p) {
		err = nil
	}
	return n, err
}

// unread holds p back for the next read.
func (r *Reader) unread(p []byte) {
	if len(p) == 0 {
		return
	}
	pend := make([]byte, 0, len(p)+len(r.pend))
	r.pend = append(append(pend, p...), r.pend...)
}

// skipBOM consumes a byte order mark at the start of the stream. A mark in
// the opposite order is consumed, and adopted, only with WithBOMDetection.
func (r *Reader) skipBOM() error {
	if r.Tell() != 0 {
		return nil
	}
	bom := r.enc.BOMBytes()
	var head [UTFMax]byte
	n, err := r.read(head[:len(bom)])
	if err != nil && err != io.EOF {
		r.unread(head[:n])
		return err
	}
	switch {
	case n == len(bom) && bytes.Equal(head[:n], bom):
	case r.opts.detectBOM && r.enc.Form != UTF8 && n == len(bom) &&
		bytes.Equal(head[:n], r.enc.WithOrder(r.enc.Order.Swapped()).BOMBytes()):
		r.enc.Order = r.enc.Order.Swapped()
	default:
		r.unread(head[:n])
		return nil
	}
	r.count += int64(n)
	return nil
}

// decode reads code units until the decoder emits a code point. On failure
// every byte of the sequence is held back.
func (r *Reader) decode() (rune, int, error) {
	size := r.enc.UnitSize()
	var seq [UTFMax]byte
	consumed := 0
	r.dec.Reset(r.enc.Form)
	for {
		n, err := r.read(seq[consumed : consumed+size])
		consumed += n
		if err != nil && err != io.EOF {
			r.unread(seq[:consumed])
			return RuneError, 0, err
		}
		if n < size {
			if consumed == 0 {
				return RuneError, 0, io.EOF
			}
			r.unread(seq[:consumed])
			return RuneError, 0, fmt.Errorf("%w: %d bytes into a %s sequence", ErrReadPastEnd, consumed, r.enc.Form)
		}
		done, err := r.dec.Feed(r.enc.unit(seq[consumed-size : consumed]))
		if err != nil {
			r.unread(seq[:consumed])
			return RuneError, 0, err
		}
		if done {
			return r.dec.Rune(), consumed, nil
		}
	}
}

// ReadRune implements io.RuneReader. size is the number of raw bytes the
// code point occupied. A clean end between code points returns io.EOF;
// an end inside one returns ErrReadPastEnd.
func (r *Reader) ReadRune() (ru rune, size int, err error) {
	if r.err != nil {
		return RuneError, 0, r.err
	}
	if !r.started {
		r.started = true
		if err := r.skipBOM(); err != nil {
			r.setError(err)
			return RuneError, 0, err
		}
	}
	ru, size, err = r.decode()
	if err != nil {
		if KindOf(err) == 0 {
			r.setError(err)
		}
		return RuneError, 0, err
	}
	r.count += int64(size)
	return ru, size, nil
}

// ReadRunes reads up to len(p) code points. It returns io.EOF only when no
// code point was read.
func (r *Reader) ReadRunes(p []rune) (int, error) {
	for i := range p {
		ru, _, err := r.ReadRune()
		if err != nil {
			if err == io.EOF && i > 0 {
				return i, nil
			}
			return i, err
		}
		p[i] = ru
	}
	return len(p), nil
}

// ReadString reads up to n code points, or every remaining one when n < 0.
// It returns io.EOF only when nothing was read. On a decode error the
// partial string is dropped.
func (r *Reader) ReadString(n int) (string, error) {
	var sb strings.Builder
	read := 0
	for n < 0 || read < n {
		ru, _, err := r.ReadRune()
		if err != nil {
			if err == io.EOF && read > 0 {
				break
			}
			return "", err
		}
		sb.WriteRune(ru)
		read++
	}
	return sb.String(), nil
}

// ReadAll reads every remaining code point. Reaching the end is not an error.
func (r *Reader) ReadAll() (string, error) {
	s, err := r.ReadString(-1)
	if err == io.EOF {
		return "", nil
	}
	return s, err
}

// ReadLine reads code points up to and including the next '\n' and returns
// the line without it. A final line without a newline is returned with a
// nil error.
func (r *Reader) ReadLine() (string, error) {
	var sb strings.Builder
	read := 0
	for {
		ru, _, err := r.ReadRune()
		if err != nil {
			if err == io.EOF && read > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		read++
		if ru == '\n' {
			return strings.TrimSuffix(sb.String(), "\r"), nil
		}
		sb.WriteRune(ru)
	}
}

// Read implements io.Reader over the raw bytes, bypassing the codec.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.read(p)
	r.count += int64(n)
	r.setError(err)
	return n, err
}

// readFull is an internal helper to read exactly len(p) raw bytes.
func (r *Reader) readFull(p []byte) bool {
	if r.err != nil {
		return false
	}
	n, err := r.read(p)
	r.count += int64(n)
	switch {
	case err != nil:
		// To provide a more specific error for callers;
		// a partial read is different from a clean end-of-stream.
		if err == io.EOF && n > 0 {
			err = io.ErrUnexpectedEOF
		}
		r.setError(err)
		return false
	case n < len(p):
		if n == 0 {
			r.setError(io.EOF)
		} else {
			r.setError(io.ErrUnexpectedEOF)
		}
		return false
	}
	return true
}

// Align discards bytes until the offset is a multiple of n, which must be a
// power of two.
func (r *Reader) Align(n int) {
	if n <= 1 || r.err != nil {
		return
	}
	pos := r.Tell()
	pad := Roundup(pos, int64(n)) - pos
	if pad == 0 {
		return
	}
	var buf [64]byte
	for pad > 0 {
		chunk := min(pad, int64(len(buf)))
		if !r.readFull(buf[:chunk]) {
			return
		}
		pad -= chunk
	}
}
