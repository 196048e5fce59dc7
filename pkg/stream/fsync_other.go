//go:build !unix

package stream

import "os"

// fsyncFile falls back to the stdlib sync on non-unix platforms where
// golang.org/x/sys doesn't expose a raw fsync syscall the same way.
func fsyncFile(fh *os.File) error {
	return fh.Sync()
}
