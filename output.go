package textio

import "io"

// Output is a buffered writable resource over a raw io.Writer. It is
// seekable when the raw writer is an io.Seeker that accepts seeks.
type Output struct {
	raw    io.Writer
	seeker io.Seeker
	buf    *Buffer
	pos    int64 // raw offset, excluding pending bytes
}

// NewOutput creates an Output with a buffer of size bytes. Size 0 makes
// every write a direct pass-through to w.
func NewOutput(w io.Writer, size int) (*Output, error) {
	if w == nil {
		return nil, ErrNilIO
	}
	out := &Output{raw: w, buf: NewBuffer(size)}
	if s, ok := w.(io.Seeker); ok {
		if pos, ok := probeSeeker(s); ok {
			out.seeker = s
			out.pos = pos
		}
	}
	return out, nil
}

// Write implements Writable.
func (out *Output) Write(p []byte) (int, error) {
	return writeThrough(out.raw, out.buf, p, &out.pos)
}

// WriteByte implements io.ByteWriter.
func (out *Output) WriteByte(c byte) error {
	_, err := out.Write([]byte{c})
	return err
}

// WriteString implements io.StringWriter.
func (out *Output) WriteString(s string) (int, error) {
	return out.Write([]byte(s))
}

// ReadFrom implements io.ReaderFrom, copying r to the output until io.EOF.
// Bytes still buffered when it returns are left for the next Flush.
func (out *Output) ReadFrom(r io.Reader) (n int64, err error) {
	bufPtr := chunkPool.Get().(*[]byte)
	defer chunkPool.Put(bufPtr)
	buf := *bufPtr

	for {
		read, er := r.Read(buf)
		if read > 0 {
			written, ew := out.Write(buf[:read])
			n += int64(written)
			if ew != nil {
				return n, ew
			}
		}
		if er != nil {
			if er != io.EOF {
				err = er
			}
			return n, err
		}
	}
}

// Flush implements Writable.
func (out *Output) Flush() error {
	return flushThrough(out.raw, out.buf, &out.pos)
}

// Size returns the buffer capacity.
func (out *Output) Size() int { return out.buf.Cap() }

// Buffered returns the number of bytes pending flush.
func (out *Output) Buffered() int { return out.buf.Buffered() }

// Seekable reports whether Seek can succeed.
func (out *Output) Seekable() bool { return out.seeker != nil }

// Tell implements Seekable.
func (out *Output) Tell() int64 { return out.pos + int64(out.buf.Buffered()) }

// Seek implements io.Seeker. Pending output is flushed first.
func (out *Output) Seek(offset int64, whence int) (int64, error) {
	if err := out.Flush(); err != nil {
		return out.Tell(), err
	}
	if out.seeker == nil {
		return out.Tell(), ErrNotSeekable
	}
	target, err := resolveSeek(out.seeker, offset, whence, out.pos, out.pos)
	if err != nil {
		return out.pos, err
	}
	pos, err := out.seeker.Seek(target, io.SeekStart)
	if err != nil {
		if cur, ok := probeSeeker(out.seeker); ok {
			out.pos = cur
		}
		return out.pos, err
	}
	out.pos = pos
	return pos, nil
}

// Close flushes pending output and closes the raw writer if it implements
// io.Closer.
func (out *Output) Close() error {
	err := out.Flush()
	if c, ok := out.raw.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
