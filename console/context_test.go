package console

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	textio "github.com/libcmp/ccl-sub001"
)

func TestMergeConfig(t *testing.T) {
	assert.Equal(t, DefaultConfig(), mergeConfig(nil))

	c := &Config{OutputBuffer: Unbuffered, ErrorBuffer: 64, Encoding: "utf-16le"}
	m := mergeConfig(c)
	assert.Equal(t, textio.BUFFER_SIZE, m.InputBuffer, "zero means unset")
	assert.Equal(t, 0, m.OutputBuffer)
	assert.Equal(t, 64, m.ErrorBuffer)
	assert.Equal(t, "utf-16le", m.InputEncoding)
	assert.Equal(t, "utf-16le", m.OutputEncoding)
	assert.Equal(t, Unbuffered, c.OutputBuffer, "the caller's config is left alone")

	m = mergeConfig(&Config{InputEncoding: "utf-32be"})
	assert.Equal(t, "utf-32be", m.InputEncoding)
	assert.Equal(t, "utf-8", m.OutputEncoding)
	assert.Equal(t, 0, m.ErrorBuffer)
}

func TestContext(t *testing.T) {
	var out, errout bytes.Buffer
	ctx, err := New(strings.NewReader("héllo\nworld\n"), &out, &errout, nil)
	require.NoError(t, err)

	line, err := ctx.In.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "héllo", line)

	_, err = ctx.Out.WriteString(line)
	require.NoError(t, err)
	_, err = ctx.Err.WriteString("warn")
	require.NoError(t, err)

	assert.Equal(t, "warn", errout.String(), "stderr is unbuffered by default")
	assert.Empty(t, out.String(), "stdout waits for a flush")

	require.NoError(t, ctx.Close())
	assert.Equal(t, "héllo", out.String())
	require.NoError(t, ctx.Close())
}

func TestContextEncodings(t *testing.T) {
	in, err := textio.EncodingUTF16LE.EncodeString("hi")
	require.NoError(t, err)

	var out, errout bytes.Buffer
	ctx, err := New(bytes.NewReader(append([]byte{0xFE, 0xFF}, swap16(in)...)), &out, &errout, &Config{
		InputBuffer:    16,
		OutputBuffer:   16,
		Encoding:       "utf-8",
		InputEncoding:  "utf-16le",
		OutputEncoding: "utf-32be",
		DetectBOM:      true,
		WriteBOM:       true,
	})
	require.NoError(t, err)

	s, err := ctx.In.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
	assert.Equal(t, textio.EncodingUTF16BE, ctx.In.Encoding(), "the byte order mark wins")

	_, err = ctx.Out.WriteString(s)
	require.NoError(t, err)
	_, err = ctx.Err.WriteString("é")
	require.NoError(t, err)
	require.NoError(t, ctx.Flush())

	assert.Equal(t, []byte{0, 0, 0xFE, 0xFF, 0, 0, 0, 'h', 0, 0, 0, 'i'}, out.Bytes())
	assert.Equal(t, "é", errout.String())
}

func swap16(p []byte) []byte {
	q := append([]byte(nil), p...)
	textio.InvertUnits(q, 2)
	return q
}

func TestContextForwardSeek(t *testing.T) {
	var out bytes.Buffer
	in := iotest.OneByteReader(strings.NewReader("header\nbody\x00\x00\x00tail"))
	ctx, err := New(in, &out, &out, &Config{InputBuffer: 4})
	require.NoError(t, err)

	pos, err := ctx.In.Seek(7, io.SeekStart)
	require.NoError(t, err)
	assert.EqualValues(t, 7, pos)

	body, err := ctx.In.ReadString(4)
	require.NoError(t, err)
	assert.Equal(t, "body", body)

	ctx.In.Align(4)
	require.NoError(t, ctx.In.Err())
	assert.EqualValues(t, 12, ctx.In.Tell())

	_, err = ctx.In.Seek(0, io.SeekStart)
	assert.ErrorIs(t, err, textio.ErrUnsupportedNegativeSeek)

	_, err = ctx.In.Seek(2, io.SeekCurrent)
	require.NoError(t, err)
	rest, err := ctx.In.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "tail", rest)
}

func TestContextErrors(t *testing.T) {
	var out bytes.Buffer
	_, err := New(strings.NewReader(""), &out, &out, &Config{Encoding: "ebcdic"})
	assert.ErrorIs(t, err, textio.ErrUnknownEncoding)

	_, err = New(strings.NewReader(""), &out, &out, &Config{OutputEncoding: "ebcdic"})
	assert.ErrorIs(t, err, textio.ErrUnknownEncoding)

	_, err = New(nil, &out, &out, nil)
	assert.ErrorIs(t, err, textio.ErrNilIO)
}

func TestContextFlushError(t *testing.T) {
	full := textio.NewFixedMemory(make([]byte, 2))
	ctx, err := New(strings.NewReader(""), full, &bytes.Buffer{}, nil)
	require.NoError(t, err)

	_, err = ctx.Out.WriteString("abc")
	require.NoError(t, err)
	err = ctx.Close()
	assert.ErrorContains(t, err, "console: flush stdout")
	assert.Equal(t, "ab", string(full.Bytes()))
}
