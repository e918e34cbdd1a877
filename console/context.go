// Package console exposes the process standard streams as textio resources.
//
// There are no package-level stream objects. A Context is built explicitly
// with Open (or New, over arbitrary raw primitives) and torn down with Close,
// which flushes standard output and then standard error. Console input
// seeks forward only, by reading and dropping bytes; console output does not
// seek.
package console

import (
	"io"

	"github.com/pkg/errors"

	textio "github.com/libcmp/ccl-sub001"
)

// Context owns the buffered console resources and the text streams over
// them.
type Context struct {
	In  *textio.Reader
	Out *textio.Writer
	Err *textio.Writer

	input  *textio.Input
	output *textio.Output
	errout *textio.Output
	closed bool
}

// Open builds a Context over the process standard handles. A nil cfg uses
// DefaultConfig.
func Open(cfg *Config) (*Context, error) {
	in, out, errh, err := stdHandles()
	if err != nil {
		return nil, err
	}
	return New(in, out, errh, cfg)
}

// New builds a Context over the given raw primitives. An in that cannot seek
// is given forward-only seeking with textio.ForwardSeeker.
func New(in io.Reader, out, errw io.Writer, cfg *Config) (*Context, error) {
	cfg = mergeConfig(cfg)
	enc, err := textio.LookupEncoding(cfg.Encoding)
	if err != nil {
		return nil, errors.Wrap(err, "console")
	}
	inEnc, err := textio.LookupEncoding(cfg.InputEncoding)
	if err != nil {
		return nil, errors.Wrap(err, "console: stdin")
	}
	outEnc, err := textio.LookupEncoding(cfg.OutputEncoding)
	if err != nil {
		return nil, errors.Wrap(err, "console: stdout")
	}

	c := &Context{}
	if in != nil {
		in = textio.ForwardSeeker(in)
	}
	if c.input, err = textio.NewInput(in, cfg.InputBuffer); err != nil {
		return nil, errors.Wrap(err, "console: stdin")
	}
	if c.output, err = textio.NewOutput(out, cfg.OutputBuffer); err != nil {
		return nil, errors.Wrap(err, "console: stdout")
	}
	if c.errout, err = textio.NewOutput(errw, cfg.ErrorBuffer); err != nil {
		return nil, errors.Wrap(err, "console: stderr")
	}

	var ropts, wopts []textio.Option
	if cfg.DetectBOM {
		ropts = append(ropts, textio.WithBOMDetection())
	}
	if cfg.WriteBOM {
		wopts = append(wopts, textio.WithBOM())
	}
	if c.In, err = textio.NewReader(c.input, inEnc, ropts...); err != nil {
		return nil, errors.Wrap(err, "console: stdin")
	}
	if c.Out, err = textio.NewWriter(c.output, outEnc, wopts...); err != nil {
		return nil, errors.Wrap(err, "console: stdout")
	}
	if c.Err, err = textio.NewWriter(c.errout, enc); err != nil {
		return nil, errors.Wrap(err, "console: stderr")
	}
	return c, nil
}

// Flush flushes standard output, then standard error.
func (c *Context) Flush() error {
	errOut := c.Out.Flush()
	errErr := c.Err.Flush()
	if errOut != nil {
		return errors.Wrap(errOut, "console: flush stdout")
	}
	if errErr != nil {
		return errors.Wrap(errErr, "console: flush stderr")
	}
	return nil
}

// Close flushes pending output. The underlying handles stay open. Calling
// Close more than once is a no-op.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.Flush()
}
