//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package console

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Handle is a raw transfer primitive over an OS file descriptor. Each Read
// and Write is a single system call; nothing is buffered or retried.
type Handle struct {
	fd   int
	name string
}

// NewHandle wraps an open file descriptor. The Handle does not own fd.
func NewHandle(fd uintptr, name string) *Handle {
	return &Handle{fd: int(fd), name: name}
}

func stdHandles() (in, out, errh *Handle, err error) {
	return NewHandle(uintptr(unix.Stdin), "stdin"), NewHandle(uintptr(unix.Stdout), "stdout"), NewHandle(uintptr(unix.Stderr), "stderr"), nil
}

// Fd returns the wrapped descriptor.
func (h *Handle) Fd() uintptr { return uintptr(h.fd) }

func (h *Handle) Name() string { return h.name }

// Read reads once from the descriptor. A zero-byte read is reported as io.EOF.
func (h *Handle) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := unix.Read(h.fd, p)
	if err != nil {
		return max(n, 0), errors.Wrapf(err, "console: read %s", h.name)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write writes once to the descriptor and may accept fewer bytes than
// offered.
func (h *Handle) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := unix.Write(h.fd, p)
	if err != nil {
		return max(n, 0), errors.Wrapf(err, "console: write %s", h.name)
	}
	return n, nil
}

// IsTerminal reports whether the descriptor refers to a terminal.
func (h *Handle) IsTerminal() bool {
	_, err := unix.IoctlGetTermios(h.fd, ioctlReadTermios)
	return err == nil
}
