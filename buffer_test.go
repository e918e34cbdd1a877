package textio

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks and Helpers ---

// shortWriter accepts at most limit bytes per call and never reports an error.
type shortWriter struct {
	bytes.Buffer
	limit int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		p = p[:w.limit]
	}
	return w.Buffer.Write(p)
}

// liarWriter claims to have written more than it was given.
type liarWriter struct{}

func (liarWriter) Write(p []byte) (int, error) { return len(p) + 1, nil }

func pattern(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i*7 + i/251)
	}
	return p
}

// --- Buffer ---

func TestBufferNegativeCapacity(t *testing.T) {
	b := NewBuffer(-1)
	assert.Equal(t, 0, b.Cap())
	assert.True(t, b.Empty())
	assert.True(t, b.Full())
}

func TestBufferRefillAndTake(t *testing.T) {
	b := NewBuffer(4)
	r := strings.NewReader("hello")

	n, err := b.Refill(r)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 4, b.Buffered())

	p := make([]byte, 2)
	assert.Equal(t, 2, b.Take(p))
	assert.Equal(t, "he", string(p))
	assert.Equal(t, 2, b.Cursor())

	// a full buffer moves unread bytes to the front before the next read
	n, err = b.Refill(r)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, b.Cursor())
	assert.Equal(t, "llo", string(b.Bytes()))

	p = make([]byte, 10)
	assert.Equal(t, 3, b.Take(p))
	assert.True(t, b.Empty())

	n, err = b.Refill(r)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestBufferRefillKeepsConsumedBytes(t *testing.T) {
	b := NewBuffer(8)
	r := iotest.OneByteReader(strings.NewReader("abcdefghijklmnop"))

	p := make([]byte, 1)
	var seen []byte
	for i := 0; i < 16; i++ {
		n, err := b.Refill(r)
		require.NoError(t, err)
		require.Equal(t, 1, n)
		b.Take(p)
		seen = append(seen, p[0])

		back := min(len(seen), UTFMax-1)
		require.Equal(t, back, b.Unread(back), "after %q", seen)
		assert.Equal(t, string(seen[len(seen)-back:]), string(b.Bytes()))
		b.Discard(back)
	}
}

func TestBufferRefillKeepsRoomToRead(t *testing.T) {
	b := NewBuffer(4)
	r := strings.NewReader("abcdefg")
	_, err := b.Refill(r)
	require.NoError(t, err)
	b.Take(make([]byte, 4))

	n, err := b.Refill(r)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "e", string(b.Bytes()))
	assert.Equal(t, 3, b.Unread(100))
	assert.Equal(t, "bcde", string(b.Bytes()))
}

func TestBufferRefillInvalidCount(t *testing.T) {
	b := NewBuffer(4)
	_, err := b.Refill(readerFunc(func(p []byte) (int, error) { return len(p) + 1, nil }))
	assert.ErrorIs(t, err, ErrInvalidRead)
	assert.True(t, b.Empty())
}

type readerFunc func(p []byte) (int, error)

func (f readerFunc) Read(p []byte) (int, error) { return f(p) }

func TestBufferFlushShortWrite(t *testing.T) {
	b := NewBuffer(8)
	assert.Equal(t, 6, b.Put([]byte("abcdef")))
	w := &shortWriter{limit: 4}

	n, err := b.Flush(w)
	assert.Equal(t, 4, n)
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, 2, b.Buffered())
	assert.Equal(t, "ef", string(b.Bytes()))

	n, err = b.Flush(w)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, b.Empty())
	assert.Equal(t, 0, b.Cursor(), "a drained buffer resets to empty")
	assert.Equal(t, "abcdef", w.String())
}

func TestBufferFlushInvalidCount(t *testing.T) {
	b := NewBuffer(4)
	b.Put([]byte("ab"))
	_, err := b.Flush(liarWriter{})
	assert.ErrorIs(t, err, ErrInvalidWrite)
	assert.Equal(t, 2, b.Buffered())
}

func TestBufferPutCompacts(t *testing.T) {
	b := NewBuffer(4)
	assert.Equal(t, 4, b.Put([]byte("abcd")))
	assert.Equal(t, 0, b.Put([]byte("x")))

	b.Take(make([]byte, 2))
	assert.Equal(t, 2, b.Put([]byte("efg")))
	assert.Equal(t, "cdef", string(b.Bytes()))
	assert.True(t, b.Full())
}

func TestBufferDiscardAndUnread(t *testing.T) {
	b := NewBuffer(8)
	b.Put([]byte("abcdef"))

	assert.Equal(t, 0, b.Discard(-1))
	assert.Equal(t, 2, b.Discard(2))
	assert.Equal(t, 4, b.Discard(100))
	assert.True(t, b.Empty())

	assert.Equal(t, 0, b.Unread(-1))
	assert.Equal(t, 6, b.Unread(100))
	assert.Equal(t, "abcdef", string(b.Bytes()))

	b.Invalidate()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 8, b.Available())
}

// --- Buffering transparency ---

func transparencySizes(capacity int) []int {
	seen := map[int]bool{}
	var sizes []int
	for _, n := range []int{0, 1, capacity - 1, capacity, capacity + 1, 10 * capacity, 100} {
		if n >= 0 && !seen[n] {
			seen[n] = true
			sizes = append(sizes, n)
		}
	}
	return sizes
}

func TestBufferingIsTransparent(t *testing.T) {
	for _, capacity := range []int{0, 1, 16, BUFFER_SIZE} {
		for _, size := range transparencySizes(capacity) {
			data := pattern(size)

			t.Run(fmt.Sprintf("Output/cap=%d/size=%d", capacity, size), func(t *testing.T) {
				m := NewMemory(nil)
				out, err := NewOutput(m, capacity)
				require.NoError(t, err)
				for off := 0; off < len(data); off += 7 {
					n, err := out.Write(data[off:min(off+7, len(data))])
					require.NoError(t, err)
					require.Equal(t, min(7, len(data)-off), n)
				}
				assert.EqualValues(t, size, out.Tell())
				require.NoError(t, out.Flush())
				assert.Equal(t, 0, out.Buffered())
				assert.True(t, bytes.Equal(data, m.Bytes()))
			})

			t.Run(fmt.Sprintf("Input/cap=%d/size=%d", capacity, size), func(t *testing.T) {
				in, err := NewInput(NewMemory(data), capacity)
				require.NoError(t, err)
				var got []byte
				chunk := make([]byte, 5)
				for {
					n, err := in.Read(chunk)
					got = append(got, chunk[:n]...)
					if err == io.EOF {
						require.Equal(t, 0, n)
						break
					}
					require.NoError(t, err)
				}
				assert.True(t, bytes.Equal(data, got))
				assert.True(t, in.AtEnd())
				assert.EqualValues(t, size, in.Tell())
			})

			t.Run(fmt.Sprintf("OneByteReader/cap=%d/size=%d", capacity, size), func(t *testing.T) {
				in, err := NewInput(iotest.OneByteReader(bytes.NewReader(data)), capacity)
				require.NoError(t, err)
				assert.False(t, in.Seekable())
				got, err := io.ReadAll(in)
				require.NoError(t, err)
				assert.True(t, bytes.Equal(data, got))
			})

			t.Run(fmt.Sprintf("DataErrReader/cap=%d/size=%d", capacity, size), func(t *testing.T) {
				in, err := NewInput(iotest.DataErrReader(bytes.NewReader(data)), capacity)
				require.NoError(t, err)
				got, err := io.ReadAll(in)
				require.NoError(t, err)
				assert.True(t, bytes.Equal(data, got))
			})
		}
	}
}

func TestReadFillsRequest(t *testing.T) {
	// A buffered read keeps refilling until the request is satisfied.
	in, err := NewInput(iotest.OneByteReader(strings.NewReader("abcdef")), 2)
	require.NoError(t, err)

	p := make([]byte, 5)
	n, err := in.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "abcde", string(p))

	n, err = in.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "a short count with a nil error marks the end")

	n, err = in.Read(p)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
	assert.True(t, in.AtEnd())
}

func TestReadPropagatesErrors(t *testing.T) {
	in, err := NewInput(iotest.TimeoutReader(strings.NewReader("abcdef")), 4)
	require.NoError(t, err)

	p := make([]byte, 4)
	n, err := in.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	// the second raw read times out after the first refill is used up
	n, err = in.Read(p)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, iotest.ErrTimeout)
}
