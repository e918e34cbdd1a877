// Package textio reads and writes Unicode text over byte-oriented resources.
//
// The package is layered:
//
//   - Buffer is a fixed-capacity staging area with a fill/cursor model.
//   - Input, Output and File put a Buffer in front of a raw io.Reader,
//     io.Writer or io.ReadWriteSeeker and expose the Readable, Writable and
//     Seekable capabilities. A zero-capacity buffer passes every transfer
//     straight through.
//   - The codec (DecodeUTF8, EncodeUTF16, Decoder, ...) validates and converts
//     between code points and UTF-8, UTF-16 and UTF-32 code units. It has no
//     I/O dependency.
//   - Reader and Writer pair a resource with an Encoding and move code
//     points, strings and fixed-width scalars through it, swapping bytes
//     whenever the configured order differs from the platform's.
//
// Positions are always raw byte offsets of the underlying resource.
//
// Partial transfers are never retried. Counts are reported first and errors
// second: a short raw write leaves the remainder pending in the buffer and
// returns io.ErrShortWrite (or the raw error), and the caller decides whether
// to Flush again.
//
// Nothing in the package is safe for concurrent use except the encoding
// registry.
package textio
