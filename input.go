package textio

import "io"

// Input is a buffered readable resource over a raw io.Reader. It is seekable
// when the raw reader is an io.Seeker that accepts seeks.
type Input struct {
	raw    io.Reader
	seeker io.Seeker
	buf    *Buffer
	pos    int64 // raw offset just past the buffered bytes
	eof    bool
}

// NewInput creates an Input with a buffer of size bytes. Size 0 makes every
// read a direct pass-through to r.
func NewInput(r io.Reader, size int) (*Input, error) {
	if r == nil {
		return nil, ErrNilIO
	}
	in := &Input{raw: r, buf: NewBuffer(size)}
	if s, ok := r.(io.Seeker); ok {
		if pos, ok := probeSeeker(s); ok {
			in.seeker = s
			in.pos = pos
		}
	}
	return in, nil
}

// Read implements Readable.
func (in *Input) Read(p []byte) (int, error) {
	return readThrough(in.raw, in.buf, p, &in.pos, &in.eof)
}

// ReadByte implements io.ByteReader.
func (in *Input) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := in.Read(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// WriteTo implements io.WriterTo, copying every remaining byte to w.
func (in *Input) WriteTo(w io.Writer) (n int64, err error) {
	bufPtr := chunkPool.Get().(*[]byte)
	defer chunkPool.Put(bufPtr)
	buf := *bufPtr

	for {
		read, er := in.Read(buf)
		if read > 0 {
			written, ew := w.Write(buf[:read])
			n += int64(written)
			if ew != nil {
				return n, ew
			}
			if written != read {
				return n, io.ErrShortWrite
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

// AtEnd implements Readable.
func (in *Input) AtEnd() bool { return in.eof && in.buf.Empty() }

// Unread steps back over up to n bytes still held in the buffer.
func (in *Input) Unread(n int) int { return in.buf.Unread(n) }

// Size returns the buffer capacity.
func (in *Input) Size() int { return in.buf.Cap() }

// Buffered returns the number of bytes read ahead but not yet consumed.
func (in *Input) Buffered() int { return in.buf.Buffered() }

// Seekable reports whether Seek can succeed.
func (in *Input) Seekable() bool { return in.seeker != nil }

// Tell implements Seekable.
func (in *Input) Tell() int64 { return in.pos - int64(in.buf.Buffered()) }

// Seek implements io.Seeker. A target inside the read-ahead window is
// reached by dropping the skipped bytes; any other target discards all
// buffered data and repositions the raw reader. A failed raw seek leaves the
// buffer untouched.
func (in *Input) Seek(offset int64, whence int) (int64, error) {
	if in.seeker == nil {
		return in.Tell(), ErrNotSeekable
	}
	target, err := resolveSeek(in.seeker, offset, whence, in.Tell(), in.pos)
	if err != nil {
		return in.Tell(), err
	}
	if whence != io.SeekEnd && target >= in.Tell() && target <= in.pos {
		in.buf.Discard(int(target - in.Tell()))
		return target, nil
	}
	pos, err := in.seeker.Seek(target, io.SeekStart)
	if err != nil {
		return in.Tell(), err
	}
	in.buf.Invalidate()
	in.eof = false
	in.pos = pos
	return pos, nil
}

// Close closes the raw reader if it implements io.Closer.
func (in *Input) Close() error {
	in.buf.Invalidate()
	if c, ok := in.raw.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
