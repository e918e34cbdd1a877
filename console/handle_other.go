//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || windows)

package console

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Handle is a raw transfer primitive over an *os.File, for platforms without
// direct descriptor access.
type Handle struct {
	f    *os.File
	name string
}

// NewHandle wraps an open file descriptor. The Handle does not own fd.
func NewHandle(fd uintptr, name string) *Handle {
	return &Handle{f: os.NewFile(fd, name), name: name}
}

func stdHandles() (in, out, errh *Handle, err error) {
	return &Handle{f: os.Stdin, name: "stdin"}, &Handle{f: os.Stdout, name: "stdout"}, &Handle{f: os.Stderr, name: "stderr"}, nil
}

func (h *Handle) Fd() uintptr  { return h.f.Fd() }
func (h *Handle) Name() string { return h.name }

func (h *Handle) Read(p []byte) (int, error) {
	n, err := h.f.Read(p)
	if err != nil && err != io.EOF {
		return n, errors.Wrapf(err, "console: read %s", h.name)
	}
	return n, err
}

func (h *Handle) Write(p []byte) (int, error) {
	n, err := h.f.Write(p)
	if err != nil {
		return n, errors.Wrapf(err, "console: write %s", h.name)
	}
	return n, nil
}

// IsTerminal always reports false; terminals are not detected here.
func (h *Handle) IsTerminal() bool { return false }
