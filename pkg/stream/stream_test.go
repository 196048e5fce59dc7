package stream

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemStreamWriteReadRoundTrip(t *testing.T) {
	s := NewMemStream()
	n, err := s.Write([]byte("hello"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, int64(5), s.Position())
	require.Equal(t, int64(5), s.Size())

	s.SetPosition(0)
	buf := make([]byte, 5)
	n, err = s.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, "hello", string(buf))
}

func TestMemStreamReadPastEndReturnsEOF(t *testing.T) {
	s := NewMemStream()
	_, _ = s.Write([]byte("ab"))
	s.SetPosition(2)
	_, err := s.Read(make([]byte, 4))
	require.ErrorIs(t, err, io.EOF)
}

func TestMemStreamClear(t *testing.T) {
	s := NewMemStreamFromBytes([]byte("data"))
	s.Clear()
	require.Equal(t, int64(0), s.Size())
	require.Equal(t, int64(0), s.Position())
}

func TestMemStreamSaveLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.bin")

	s := NewMemStreamFromBytes([]byte("persisted"))
	require.NoError(t, s.SaveToFile(path))

	s2 := NewMemStream()
	require.NoError(t, s2.LoadFromFile(path))
	require.Equal(t, []byte("persisted"), s2.Bytes())
}

func TestFileStreamRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.bin")

	fs := NewFileStream(path)
	_, err := fs.Write([]byte("durable"))
	require.NoError(t, err)
	require.NoError(t, fs.SaveToFile(path))

	fs2 := NewFileStream(path)
	require.NoError(t, fs2.LoadFromFile(path))
	buf := make([]byte, 7)
	_, err = fs2.Read(buf)
	require.NoError(t, err)
	require.Equal(t, "durable", string(buf))
}

func TestWriteAtGapGrowsStream(t *testing.T) {
	s := NewMemStream()
	s.SetPosition(4)
	_, err := s.Write([]byte("x"))
	require.NoError(t, err)
	require.Equal(t, int64(5), s.Size())
}
