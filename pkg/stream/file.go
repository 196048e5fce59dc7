package stream

import (
	"fmt"
	"os"
)

// FileStream is a Stream whose contents are held in memory (like MemStream)
// but whose SaveToFile additionally calls fsyncFile after writing, so a
// durable store's on-disk bytes survive a crash once SaveToFile returns,
// using a platform-specific syscall path rather than relying on
// (*os.File).Sync alone.
type FileStream struct {
	buffer
	path string
}

// NewFileStream creates an empty file-backed stream targeting path. Callers
// typically follow with LoadFromFile (to open an existing file) or just
// Write + SaveToFile (to create a new one).
func NewFileStream(path string) *FileStream {
	return &FileStream{path: path}
}

func (f *FileStream) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("stream: load from file: %w", err)
	}
	f.buf = data
	f.pos = 0
	f.path = path
	return nil
}

func (f *FileStream) SaveToFile(path string) error {
	fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("stream: save to file: %w", err)
	}
	defer fh.Close()

	if _, err := fh.Write(f.buf); err != nil {
		return fmt.Errorf("stream: save to file: %w", err)
	}
	if err := fsyncFile(fh); err != nil {
		return fmt.Errorf("stream: fsync: %w", err)
	}
	f.path = path
	return nil
}
