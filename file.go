package textio

import "io"

type fileMode uint8

const (
	modeIdle fileMode = iota
	modeRead
	modeWrite
)

// File is a readable, writable and seekable resource sharing one buffer
// between both directions. Switching from reading to writing repositions the
// raw primitive to the logical offset; switching from writing to reading
// flushes first.
type File struct {
	raw  io.ReadWriteSeeker
	buf  *Buffer
	pos  int64 // raw offset
	mode fileMode
	eof  bool
}

// NewFile creates a File with a buffer of size bytes.
func NewFile(rws io.ReadWriteSeeker, size int) (*File, error) {
	if rws == nil {
		return nil, ErrNilIO
	}
	pos, err := rws.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	return &File{raw: rws, buf: NewBuffer(size), pos: pos}, nil
}

func (f *File) enterRead() error {
	if f.mode == modeWrite {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	f.mode = modeRead
	return nil
}

func (f *File) enterWrite() error {
	if f.mode == modeRead {
		if f.buf.Buffered() > 0 {
			target := f.Tell()
			pos, err := f.raw.Seek(target, io.SeekStart)
			if err != nil {
				return err
			}
			f.pos = pos
		}
		f.buf.Invalidate()
		f.eof = false
	}
	f.mode = modeWrite
	return nil
}

// Read implements Readable.
func (f *File) Read(p []byte) (int, error) {
	if err := f.enterRead(); err != nil {
		return 0, err
	}
	return readThrough(f.raw, f.buf, p, &f.pos, &f.eof)
}

// Write implements Writable.
func (f *File) Write(p []byte) (int, error) {
	if err := f.enterWrite(); err != nil {
		return 0, err
	}
	return writeThrough(f.raw, f.buf, p, &f.pos)
}

// Flush implements Writable. It is a no-op unless the File is writing.
func (f *File) Flush() error {
	if f.mode != modeWrite {
		return nil
	}
	return flushThrough(f.raw, f.buf, &f.pos)
}

// AtEnd implements Readable.
func (f *File) AtEnd() bool { return f.mode == modeRead && f.eof && f.buf.Empty() }

// Unread steps back over up to n bytes still held in the read buffer.
func (f *File) Unread(n int) int {
	if f.mode != modeRead {
		return 0
	}
	return f.buf.Unread(n)
}

// Size returns the buffer capacity.
func (f *File) Size() int { return f.buf.Cap() }

// Tell implements Seekable.
func (f *File) Tell() int64 {
	switch f.mode {
	case modeRead:
		return f.pos - int64(f.buf.Buffered())
	case modeWrite:
		return f.pos + int64(f.buf.Buffered())
	default:
		return f.pos
	}
}

// Seek implements io.Seeker. Pending output is flushed and read-ahead is
// discarded.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if err := f.Flush(); err != nil {
		return f.Tell(), err
	}
	target, err := resolveSeek(f.raw, offset, whence, f.Tell(), f.pos)
	if err != nil {
		return f.Tell(), err
	}
	f.buf.Invalidate()
	f.eof = false
	f.mode = modeIdle
	pos, err := f.raw.Seek(target, io.SeekStart)
	if err != nil {
		if cur, ok := probeSeeker(f.raw); ok {
			f.pos = cur
		}
		return f.pos, err
	}
	f.pos = pos
	return pos, nil
}

// Close flushes pending output and closes the raw primitive if it implements
// io.Closer.
func (f *File) Close() error {
	err := f.Flush()
	if c, ok := f.raw.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
