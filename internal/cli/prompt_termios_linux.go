//go:build linux

package cli

import "golang.org/x/sys/unix"

// ioctl requests that read and write the terminal attributes on Linux.
const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETS
)
