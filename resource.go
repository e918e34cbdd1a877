package textio

import "io"

// Readable is a byte resource that can be read from.
//
// Read follows io.Reader, with one strengthening: it keeps reading until p is
// full or the resource is exhausted, so a short count with a nil error means
// the end was reached. Once nothing is left it returns (0, io.EOF).
type Readable interface {
	io.Reader
	// AtEnd reports whether the buffer is empty and the raw primitive has
	// reported its end.
	AtEnd() bool
}

// Writable is a byte resource that can be written to.
//
// Write never retries a short raw write. When the raw primitive accepts fewer
// bytes than offered, the unwritten remainder stays pending and the call
// returns an error (io.ErrShortWrite if the primitive gave none), so the
// caller decides whether to Flush again, accept the partial result, or give up.
type Writable interface {
	io.Writer
	// Flush forces pending bytes out to the raw primitive.
	Flush() error
}

// Seekable is a resource that can be repositioned. Offsets are raw byte
// offsets of the underlying primitive, never counts of decoded elements.
type Seekable interface {
	io.Seeker
	// Tell returns the logical offset, accounting for buffered bytes.
	Tell() int64
}

var (
	_ Readable = (*Input)(nil)
	_ Seekable = (*Input)(nil)
	_ Writable = (*Output)(nil)
	_ Seekable = (*Output)(nil)
	_ Readable = (*File)(nil)
	_ Writable = (*File)(nil)
	_ Seekable = (*File)(nil)

	_ io.WriterTo   = (*Input)(nil)
	_ io.ReaderFrom = (*Output)(nil)
)

// probeSeeker returns s's current offset, or ok=false when s is nil or
// refuses to seek (a pipe behind an *os.File, for example).
func probeSeeker(s io.Seeker) (pos int64, ok bool) {
	if s == nil {
		return 0, false
	}
	pos, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, false
	}
	return pos, true
}

// readThrough fills p from buf, refilling from raw one call at a time until
// p is full or raw is exhausted. pos tracks the raw offset and eof records
// exhaustion.
func readThrough(raw io.Reader, buf *Buffer, p []byte, pos *int64, eof *bool) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var n int
	for n < len(p) {
		if buf.Cap() > 0 {
			if buf.Empty() {
				if *eof {
					break
				}
				m, err := buf.Refill(raw)
				*pos += int64(m)
				if err == io.EOF {
					*eof = true
				} else if err != nil {
					n += buf.Take(p[n:])
					return n, err
				}
				if m == 0 && !*eof {
					if n == 0 {
						return 0, io.ErrNoProgress
					}
					break
				}
			}
			n += buf.Take(p[n:])
			continue
		}

		// unbuffered: each call goes straight to raw
		if *eof {
			break
		}
		m, err := raw.Read(p[n:])
		if m < 0 || m > len(p)-n {
			return n, ErrInvalidRead
		}
		n += m
		*pos += int64(m)
		if err == io.EOF {
			*eof = true
		} else if err != nil {
			return n, err
		}
		if m == 0 && !*eof {
			if n == 0 {
				return 0, io.ErrNoProgress
			}
			break
		}
	}
	if n == 0 && *eof {
		return 0, io.EOF
	}
	return n, nil
}

// writeThrough appends p to buf, flushing to raw whenever buf fills.
func writeThrough(raw io.Writer, buf *Buffer, p []byte, pos *int64) (int, error) {
	if buf.Cap() == 0 {
		n, err := raw.Write(p)
		if n < 0 || n > len(p) {
			return 0, ErrInvalidWrite
		}
		*pos += int64(n)
		if n < len(p) && err == nil {
			err = io.ErrShortWrite
		}
		return n, err
	}
	var n int
	for n < len(p) {
		if buf.Full() {
			if err := flushThrough(raw, buf, pos); err != nil {
				return n, err
			}
		}
		n += buf.Put(p[n:])
	}
	return n, nil
}

func flushThrough(raw io.Writer, buf *Buffer, pos *int64) error {
	m, err := buf.Flush(raw)
	*pos += int64(m)
	return err
}

// resolveSeek turns (offset, whence) into an absolute target. current is the
// logical offset and raw the primitive's own offset, restored if querying the
// end for io.SeekEnd yields an invalid target.
func resolveSeek(s io.Seeker, offset int64, whence int, current, raw int64) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = current + offset
	case io.SeekEnd:
		end, err := s.Seek(0, io.SeekEnd)
		if err != nil {
			return 0, err
		}
		target = end + offset
		if target < 0 {
			if _, err := s.Seek(raw, io.SeekStart); err != nil {
				return 0, err
			}
		}
	default:
		return 0, ErrInvalidWhence
	}
	if target < 0 {
		return 0, ErrInvalidSeek
	}
	return target, nil
}
