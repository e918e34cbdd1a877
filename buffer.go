package textio

import "io"

// Buffer is a fixed-capacity staging area between a resource and its raw
// primitive. The valid region is buf[cursor:fill]: unread input when reading,
// output pending flush when writing. 0 <= cursor <= fill <= Cap() always holds.
//
// A zero-capacity Buffer holds no state; its owner passes every transfer
// straight through to the raw primitive.
type Buffer struct {
	buf    []byte
	fill   int
	cursor int
}

// NewBuffer creates a Buffer. A negative capacity is treated as zero.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{buf: make([]byte, capacity)}
}

func (b *Buffer) Cap() int       { return len(b.buf) }
func (b *Buffer) Len() int       { return b.fill }
func (b *Buffer) Cursor() int    { return b.cursor }
func (b *Buffer) Buffered() int  { return b.fill - b.cursor }
func (b *Buffer) Available() int { return len(b.buf) - b.fill }
func (b *Buffer) Empty() bool    { return b.cursor == b.fill }
func (b *Buffer) Full() bool     { return b.fill == len(b.buf) }

// Bytes returns a view of the valid region. It is only valid until the next
// buffer operation.
func (b *Buffer) Bytes() []byte { return b.buf[b.cursor:b.fill] }

// Invalidate discards the valid region.
func (b *Buffer) Invalidate() {
	b.fill = 0
	b.cursor = 0
}

// compact moves the valid region to the front of the storage.
func (b *Buffer) compact() { b.shift(b.cursor) }

// shift drops the first n bytes of storage.
func (b *Buffer) shift(n int) {
	if n == 0 {
		return
	}
	b.fill = copy(b.buf, b.buf[n:b.fill])
	b.cursor -= n
}

// Refill issues exactly one read from r into the free space and returns the
// number of bytes obtained. A zero count with io.EOF means r is exhausted.
//
// Consumed bytes stay in storage until less than half of it is free. Then
// the last UTFMax-1 consumed bytes are kept if there is still room to read,
// so a sequence split across refills can always be unread.
func (b *Buffer) Refill(r io.Reader) (int, error) {
	if b.Available() < len(b.buf)/2 || b.Full() {
		start := b.cursor - min(b.cursor, UTFMax-1)
		if b.fill-start >= len(b.buf) {
			start = b.cursor
		}
		b.shift(start)
	}
	if b.fill == len(b.buf) {
		return 0, nil
	}
	n, err := r.Read(b.buf[b.fill:])
	if n < 0 || n > len(b.buf)-b.fill {
		return 0, ErrInvalidRead
	}
	b.fill += n
	return n, err
}

// Flush issues exactly one write of the pending region to w. Written bytes
// leave the buffer; on a short write the remainder stays pending and
// io.ErrShortWrite is returned if w reported no error of its own.
func (b *Buffer) Flush(w io.Writer) (int, error) {
	if b.Empty() {
		b.Invalidate()
		return 0, nil
	}
	pending := b.fill - b.cursor
	n, err := w.Write(b.buf[b.cursor:b.fill])
	if n < 0 || n > pending {
		return 0, ErrInvalidWrite
	}
	b.cursor += n
	if b.Empty() {
		b.Invalidate()
	} else if err == nil {
		err = io.ErrShortWrite
	}
	return n, err
}

// Take copies unread bytes into p and consumes them.
func (b *Buffer) Take(p []byte) int {
	n := copy(p, b.buf[b.cursor:b.fill])
	b.cursor += n
	return n
}

// Put appends as much of p as fits and returns the count.
func (b *Buffer) Put(p []byte) int {
	if b.cursor > 0 && b.fill+len(p) > len(b.buf) {
		b.compact()
	}
	n := copy(b.buf[b.fill:], p)
	b.fill += n
	return n
}

// Discard consumes up to n unread bytes and returns the count.
func (b *Buffer) Discard(n int) int {
	if n < 0 {
		return 0
	}
	if n > b.Buffered() {
		n = b.Buffered()
	}
	b.cursor += n
	return n
}

// Unread moves the cursor back by up to n bytes that are still held, and
// returns the count.
func (b *Buffer) Unread(n int) int {
	if n < 0 {
		return 0
	}
	if n > b.cursor {
		n = b.cursor
	}
	b.cursor -= n
	return n
}
