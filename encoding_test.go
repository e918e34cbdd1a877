package textio

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodingNames(t *testing.T) {
	cases := []struct {
		enc  Encoding
		name string
		bom  []byte
	}{
		{EncodingUTF8, "utf-8", []byte{0xEF, 0xBB, 0xBF}},
		{EncodingUTF16LE, "utf-16le", []byte{0xFF, 0xFE}},
		{EncodingUTF16BE, "utf-16be", []byte{0xFE, 0xFF}},
		{EncodingUTF16, "utf-16", EncodingUTF16.WithOrder(NativeEndian.Resolve()).BOMBytes()},
		{EncodingUTF32LE, "utf-32le", []byte{0xFF, 0xFE, 0, 0}},
		{EncodingUTF32BE, "utf-32be", []byte{0, 0, 0xFE, 0xFF}},
	}
	for _, c := range cases {
		assert.Equal(t, c.name, c.enc.String())
		assert.Equal(t, c.bom, c.enc.BOMBytes(), c.name)

		got, err := LookupEncoding(c.name)
		require.NoError(t, err)
		assert.Equal(t, c.enc, got)
	}
	assert.Equal(t, 1, EncodingUTF8.UnitSize())
	assert.Equal(t, 2, EncodingUTF16BE.UnitSize())
	assert.Equal(t, 4, EncodingUTF32.UnitSize())
}

func TestRegistry(t *testing.T) {
	enc, err := LookupEncoding("  UTF-16LE ")
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF16LE, enc)

	_, err = LookupEncoding("latin-1")
	assert.ErrorIs(t, err, ErrUnknownEncoding)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RegisterEncoding(fmt.Sprintf("ucs-4be-%d", i), EncodingUTF32BE)
		}()
	}
	wg.Wait()

	enc, err = LookupEncoding("UCS-4BE-3")
	require.NoError(t, err)
	assert.Equal(t, EncodingUTF32BE, enc)
	assert.Contains(t, EncodingNames(), "utf-8")
	assert.Contains(t, EncodingNames(), "ucs-4be-7")
}

func TestByteOrder(t *testing.T) {
	assert.Equal(t, BigEndian, LittleEndian.Swapped())
	assert.Equal(t, LittleEndian, BigEndian.Swapped())
	assert.NotEqual(t, NativeEndian.Resolve(), NativeEndian.Swapped())
	assert.True(t, NativeEndian.IsNative())
	assert.True(t, NativeEndian.Resolve().IsNative())
	assert.False(t, NativeEndian.Swapped().IsNative())
	assert.Equal(t, "le", LittleEndian.String())
	assert.Equal(t, "native", NativeEndian.String())
	assert.Equal(t, uint16(0x1234), BigEndian.Binary().Uint16([]byte{0x12, 0x34}))
	assert.Equal(t, uint16(0x3412), LittleEndian.Binary().Uint16([]byte{0x12, 0x34}))
}

func TestInvertUnits(t *testing.T) {
	p := []byte{1, 2, 3, 4, 5, 6, 7}
	InvertUnits(p, 2)
	assert.Equal(t, []byte{2, 1, 4, 3, 6, 5, 7}, p)

	p = []byte{1, 2, 3, 4}
	InvertUnits(p, 4)
	assert.Equal(t, []byte{4, 3, 2, 1}, p)

	InvertUnits(p, 1)
	assert.Equal(t, []byte{4, 3, 2, 1}, p)
}

func TestIterator(t *testing.T) {
	data, err := EncodingUTF16BE.EncodeString("a€😀")
	require.NoError(t, err)

	it := NewIterator(data, EncodingUTF16BE)
	var got []rune
	for it.More() {
		r, err := it.Next()
		require.NoError(t, err)
		got = append(got, r)
	}
	assert.Equal(t, []rune{'a', '€', 0x1F600}, got)
	assert.Equal(t, len(data), it.Offset())

	_, err = it.Next()
	assert.ErrorIs(t, err, ErrIteratedPastEnd)
	assert.Equal(t, len(data), it.Offset())

	it.Reset()
	r, n, err := it.Peek()
	require.NoError(t, err)
	assert.Equal(t, 'a', r)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, it.Offset())
}

func TestIteratorErrors(t *testing.T) {
	it := NewIterator([]byte{'a', 0, 'b'}, EncodingUTF16LE)
	r, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, 'a', r)

	_, err = it.Next()
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	assert.Equal(t, 2, it.Offset())

	it = NewIterator([]byte{'a', 0xFF, 'b'}, EncodingUTF8)
	_, err = it.Next()
	require.NoError(t, err)
	_, err = it.Next()
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	assert.Equal(t, 1, it.Offset(), "a decode error does not advance")
}

func TestStringConversions(t *testing.T) {
	for _, enc := range []Encoding{EncodingUTF8, EncodingUTF16, EncodingUTF32BE} {
		b, err := enc.EncodeString(sampleText)
		require.NoError(t, err)
		s, err := enc.DecodeString(b)
		require.NoError(t, err)
		assert.Equal(t, sampleText, s)

		r, n, err := enc.DecodeRune(b)
		require.NoError(t, err)
		assert.Equal(t, 'H', r)
		assert.Equal(t, enc.UnitSize(), n)
	}

	_, err := EncodingUTF16LE.EncodeString("bad\xff")
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	_, err = EncodingUTF8.EncodeString("bad\xff")
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	_, err = EncodingUTF32LE.DecodeString([]byte{'a', 0, 0})
	assert.ErrorIs(t, err, ErrInvalidEncoding)
	_, _, err = EncodingUTF16LE.DecodeRune([]byte{0x3D, 0xD8})
	assert.ErrorIs(t, err, ErrInvalidEncoding)
}

func TestErrorKinds(t *testing.T) {
	assert.Equal(t, "textio: invalid code point", ErrInvalidCodePoint.Error())
	assert.Equal(t, "textio: invalid UTF-8/UTF-16 encoding", ErrInvalidEncoding.Error())
	assert.Equal(t, "textio: read past end of stream", ErrReadPastEnd.Error())
	assert.Equal(t, "textio: iterated past end of string", ErrIteratedPastEnd.Error())
	assert.Equal(t, "textio: unknown error", ErrorKind(99).Error())
	assert.Equal(t, "textio: seek to an invalid position", ErrInvalidSeek.Error())

	wrapped := fmt.Errorf("reading header: %w", fmt.Errorf("%w: detail", ErrReadPastEnd))
	assert.Equal(t, ErrReadPastEnd, KindOf(wrapped))
	assert.True(t, errors.Is(wrapped, ErrReadPastEnd))
	assert.Zero(t, KindOf(io.EOF))
	assert.Zero(t, KindOf(nil))
}
