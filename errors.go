package textio

import "errors"

// ErrorKind classifies failures raised by the Unicode codec and the text
// streams. An ErrorKind is itself an error, so callers can match with
// errors.Is even when detail has been attached with fmt.Errorf("%w: ...").
type ErrorKind uint8

const (
	// ErrInvalidEncoding indicates a malformed byte or unit sequence: a bad
	// leading byte, a bad continuation byte, a lone trailing surrogate, or a
	// sequence truncated by the end of the available input.
	ErrInvalidEncoding ErrorKind = iota + 1

	// ErrInvalidCodePoint indicates a scalar outside 0..=0x10FFFF or inside
	// the surrogate range, either presented for encoding or produced by a
	// UTF-32 unit.
	ErrInvalidCodePoint

	// ErrReadPastEnd indicates the resource ran out after a sequence had
	// already begun.
	ErrReadPastEnd

	// ErrIteratedPastEnd indicates an Iterator was advanced beyond its last
	// element.
	ErrIteratedPastEnd
)

var kindMessages = [...]string{
	ErrInvalidEncoding:  "invalid UTF-8/UTF-16 encoding",
	ErrInvalidCodePoint: "invalid code point",
	ErrReadPastEnd:      "read past end of stream",
	ErrIteratedPastEnd:  "iterated past end of string",
}

func (k ErrorKind) Error() string {
	if int(k) < len(kindMessages) && kindMessages[k] != "" {
		return "textio: " + kindMessages[k]
	}
	return "textio: unknown error"
}

// KindOf returns the ErrorKind wrapped by err, or 0 when err does not carry one.
func KindOf(err error) ErrorKind {
	var k ErrorKind
	if errors.As(err, &k) {
		return k
	}
	return 0
}

var (
	// ErrNilIO indicates that a resource or stream was constructed over a nil raw primitive.
	ErrNilIO = errors.New("textio: resource or stream created with a nil io.Reader/io.Writer")

	// ErrNotSeekable indicates a seek on a resource whose raw primitive cannot seek.
	ErrNotSeekable = errors.New("textio: resource is not seekable")

	// ErrInvalidSeek indicates a seek was attempted to an invalid position.
	ErrInvalidSeek = errors.New("textio: seek to an invalid position")

	// ErrUnsupportedNegativeSeek indicates a backward seek was attempted on a forward-only seeker.
	ErrUnsupportedNegativeSeek = errors.New("textio: unsupported negative offset for forward-only seeker")

	// ErrInvalidWhence indicates that an invalid 'whence' parameter was provided to a Seek operation.
	ErrInvalidWhence = errors.New("textio: unsupported whence")

	// ErrMisalignedSeek indicates a seek target that does not fall on a code unit boundary.
	ErrMisalignedSeek = errors.New("textio: seek target is not aligned to the code unit size")

	// ErrInvalidWrite indicates that an io.Writer returned an invalid (negative or outbound) count from Write.
	ErrInvalidWrite = errors.New("textio: writer returned invalid count from Write")

	// ErrInvalidRead indicates that an io.Reader returned an invalid (negative or outbound) count from Read.
	ErrInvalidRead = errors.New("textio: reader returned invalid count from Read")

	// ErrDiscardNegative indicates a Discard operation was attempted with a negative byte count.
	ErrDiscardNegative = errors.New("textio: cannot discard negative number of bytes")

	// ErrUnsupportedScalar indicates a scalar type without a fixed binary size.
	ErrUnsupportedScalar = errors.New("textio: scalar type has no fixed size")

	// ErrUnknownEncoding indicates an encoding name missing from the registry.
	ErrUnknownEncoding = errors.New("textio: unknown encoding")
)
