//go:build linux || solaris || aix

package console

import "golang.org/x/sys/unix"

const ioctlReadTermios = unix.TCGETS
