//go:build windows

package console

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

// Handle is a raw transfer primitive over an OS handle. Each Read and Write
// is a single system call; nothing is buffered or retried.
type Handle struct {
	h    windows.Handle
	name string
}

// NewHandle wraps an open handle. The Handle does not own it.
func NewHandle(fd uintptr, name string) *Handle {
	return &Handle{h: windows.Handle(fd), name: name}
}

func stdHandles() (in, out, errh *Handle, err error) {
	get := func(id uint32, name string) (*Handle, error) {
		h, err := windows.GetStdHandle(id)
		if err != nil {
			return nil, errors.Wrapf(err, "console: get %s handle", name)
		}
		return &Handle{h: h, name: name}, nil
	}
	if in, err = get(windows.STD_INPUT_HANDLE, "stdin"); err != nil {
		return nil, nil, nil, err
	}
	if out, err = get(windows.STD_OUTPUT_HANDLE, "stdout"); err != nil {
		return nil, nil, nil, err
	}
	if errh, err = get(windows.STD_ERROR_HANDLE, "stderr"); err != nil {
		return nil, nil, nil, err
	}
	return in, out, errh, nil
}

// Fd returns the wrapped handle.
func (h *Handle) Fd() uintptr { return uintptr(h.h) }

func (h *Handle) Name() string { return h.name }

// Read reads once from the handle. A zero-byte read or a closed pipe is
// reported as io.EOF.
func (h *Handle) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var done uint32
	err := windows.ReadFile(h.h, p, &done, nil)
	if err == windows.ERROR_BROKEN_PIPE || (err == nil && done == 0) {
		return 0, io.EOF
	}
	if err != nil {
		return int(done), errors.Wrapf(err, "console: read %s", h.name)
	}
	return int(done), nil
}

// Write writes once to the handle and may accept fewer bytes than offered.
func (h *Handle) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var done uint32
	if err := windows.WriteFile(h.h, p, &done, nil); err != nil {
		return int(done), errors.Wrapf(err, "console: write %s", h.name)
	}
	return int(done), nil
}

// IsTerminal reports whether the handle refers to a console.
func (h *Handle) IsTerminal() bool {
	var mode uint32
	return windows.GetConsoleMode(h.h, &mode) == nil
}
