//go:build unix

package stream

import (
	"os"

	"golang.org/x/sys/unix"
)

// fsyncFile durably flushes fh via the raw fsync syscall, using
// golang.org/x/sys for the platform file operation instead of relying on
// stdlib alone.
func fsyncFile(fh *os.File) error {
	return unix.Fsync(int(fh.Fd()))
}
