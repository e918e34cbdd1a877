package textio

import "io"

// Memory is a raw primitive over a byte slice. It reads, writes (overwriting
// or extending at the current offset) and seeks, which makes it a stand-in
// for a file in tests and for in-memory transcoding.
type Memory struct {
	B     []byte // content
	N     int    // current offset
	limit int    // maximum content length, or -1 for unbounded
}

// NewMemory creates a growable Memory whose initial content is b.
func NewMemory(b []byte) *Memory {
	return &Memory{B: b, limit: -1}
}

// NewFixedMemory creates an empty Memory backed by p that never grows past
// cap(p). A write that does not fit stores as much as it can and returns
// io.ErrShortWrite.
func NewFixedMemory(p []byte) *Memory {
	return &Memory{B: p[:0], limit: cap(p)}
}

// Read implements the io.Reader interface.
func (m *Memory) Read(p []byte) (int, error) {
	if m.N >= len(m.B) {
		return 0, io.EOF
	}
	n := copy(p, m.B[m.N:])
	m.N += n
	return n, nil
}

// ReadByte implements the io.ByteReader interface.
func (m *Memory) ReadByte() (byte, error) {
	if m.N >= len(m.B) {
		return 0, io.EOF
	}
	b := m.B[m.N]
	m.N++
	return b, nil
}

// Write implements the io.Writer interface.
func (m *Memory) Write(p []byte) (int, error) {
	want := len(p)
	if m.limit >= 0 {
		room := m.limit - m.N
		if room <= 0 {
			return 0, io.ErrShortWrite
		}
		if len(p) > room {
			p = p[:room]
		}
	}
	end := m.N + len(p)
	if end > len(m.B) {
		if end > cap(m.B) {
			grown := make([]byte, end, max(end, 2*cap(m.B)))
			copy(grown, m.B)
			m.B = grown
		} else {
			// zero any gap left by a seek past the end
			clear(m.B[len(m.B):end])
			m.B = m.B[:end]
		}
	}
	n := copy(m.B[m.N:], p)
	m.N += n
	if n < want {
		return n, io.ErrShortWrite
	}
	return n, nil
}

// WriteString implements the io.StringWriter interface.
func (m *Memory) WriteString(s string) (int, error) {
	return m.Write([]byte(s))
}

// Seek implements the io.Seeker interface. Seeking past the end is allowed;
// a later write fills the gap with zeros.
func (m *Memory) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(m.N) + offset
	case io.SeekEnd:
		abs = int64(len(m.B)) + offset
	default:
		return 0, ErrInvalidWhence
	}

	if abs < 0 {
		return 0, ErrInvalidSeek
	}

	m.N = int(abs)
	return abs, nil
}

// Close implements io.Closer; it does nothing.
func (m *Memory) Close() error { return nil }

// Reset empties the content and rewinds.
func (m *Memory) Reset() {
	m.B = m.B[:0]
	m.N = 0
}

// Bytes returns the content.
func (m *Memory) Bytes() []byte { return m.B }

// Len returns the content length.
func (m *Memory) Len() int { return len(m.B) }

// Available returns the number of bytes left to read.
func (m *Memory) Available() int {
	if m.N >= len(m.B) {
		return 0
	}
	return len(m.B) - m.N
}
