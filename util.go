package textio

import (
	"io"

	"golang.org/x/exp/constraints"
)

const BUFFER_SIZE = 4096

var (
	empty   [BUFFER_SIZE]byte
	discard [BUFFER_SIZE]byte
)

// Roundup rounds n up to the nearest multiple of align. align must be a power of two.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }

// Aligned reports whether n is a multiple of align.
func Aligned[T constraints.Integer](n, align T) bool { return align <= 1 || n%align == 0 }

// Discard reads and drops n bytes from r. It returns the number of bytes
// dropped, which is short of n only together with an error.
func Discard(r io.Reader, n int64) (int64, error) {
	if n == 0 {
		return 0, nil
	}
	if n < 0 {
		return 0, ErrDiscardNegative
	}
	var done int64
	for done < n {
		chunk := n - done
		if chunk > BUFFER_SIZE {
			chunk = BUFFER_SIZE
		}
		skip, err := r.Read(discard[:chunk])
		if skip < 0 || int64(skip) > chunk {
			return done, ErrInvalidRead
		}
		done += int64(skip)
		if err != nil {
			if err == io.EOF {
				if done < n {
					return done, io.ErrUnexpectedEOF
				}
				return done, nil
			}
			return done, err
		}
		if skip == 0 {
			return done, io.ErrNoProgress
		}
	}
	return done, nil
}

// writeZeros writes n zero bytes to w without allocating for small paddings.
func writeZeros(w io.Writer, n int64) (int64, error) {
	var written int64
	for written < n {
		chunk := n - written
		if chunk > BUFFER_SIZE {
			chunk = BUFFER_SIZE
		}
		m, err := w.Write(empty[:chunk])
		written += int64(m)
		if err != nil {
			return written, err
		}
		if int64(m) < chunk {
			return written, io.ErrShortWrite
		}
	}
	return written, nil
}
