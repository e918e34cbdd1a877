package textio

import (
	"fmt"
	"io"
)

// ForwardSeeker gives r a Seek that can only move forward, by reading and
// dropping the skipped bytes. Console and pipe input get a usable Seek and
// Align this way. A reader that already seeks is returned as is.
func ForwardSeeker(r io.Reader) io.ReadSeeker {
	if r == nil {
		panic("textio: ForwardSeeker called with a nil io.Reader")
	}
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs
	}
	return &skipper{src: r}
}

// skipper counts the bytes it passes on so absolute targets can be resolved.
type skipper struct {
	src io.Reader
	pos int64
}

func (s *skipper) Read(p []byte) (int, error) {
	n, err := s.src.Read(p)
	s.pos += int64(n)
	return n, err
}

// Close closes the source if it is an io.Closer.
func (s *skipper) Close() error {
	if c, ok := s.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Seek accepts io.SeekStart and io.SeekCurrent targets at or past the
// current position. Skipping past the end stops there with
// io.ErrUnexpectedEOF.
func (s *skipper) Seek(offset int64, whence int) (int64, error) {
	target := offset
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		target += s.pos
	default:
		return s.pos, fmt.Errorf("%w: value %d is not supported", ErrInvalidWhence, whence)
	}
	if target < s.pos {
		return s.pos, fmt.Errorf("%w: %d is behind %d", ErrUnsupportedNegativeSeek, target, s.pos)
	}
	dropped, err := Discard(s.src, target-s.pos)
	s.pos += dropped
	return s.pos, err
}
