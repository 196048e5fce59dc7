// Package wire holds the low-level, codec-agnostic helpers shared by the
// binary codec: little-endian normalization and length-prefixed
// primitive I/O.
package wire

import (
	"encoding/binary"

	"github.com/joshuapare/objectgraph/pkg/rtti"
)

// hostIsBigEndian is resolved once at init via encoding/binary.NativeEndian
// rather than an unsafe pointer trick.
var hostIsBigEndian = func() bool {
	buf := make([]byte, 2)
	binary.NativeEndian.PutUint16(buf, 0x0102)
	return buf[0] == 0x01
}()

// ToLittleEndian returns a copy of hostBytes normalized to little-endian
// wire order for the given primitive kind, performing an element-wise
// byte swap using the kind's element size when the host is big-endian.
// Object/Stream/fat-pointer/array-of-struct kinds have no fixed element
// size and are passed through unchanged.
func ToLittleEndian(kind rtti.Kind, hostBytes []byte) []byte {
	return swapIfBigEndian(kind, hostBytes)
}

// FromLittleEndian reverses ToLittleEndian: given bytes as read off the
// wire (little-endian), returns them in host-native order.
func FromLittleEndian(kind rtti.Kind, wireBytes []byte) []byte {
	return swapIfBigEndian(kind, wireBytes)
}

// swapIfBigEndian is its own inverse: swapping little-endian bytes to
// big-endian host order and swapping big-endian host bytes back to
// little-endian wire order are the same per-element reversal.
func swapIfBigEndian(kind rtti.Kind, in []byte) []byte {
	out := make([]byte, len(in))
	copy(out, in)
	if !hostIsBigEndian {
		return out
	}
	elemSize := kind.ElemSize()
	if elemSize <= 1 || len(out)%elemSize != 0 {
		return out
	}
	for off := 0; off < len(out); off += elemSize {
		elem := out[off : off+elemSize]
		for i, j := 0, len(elem)-1; i < j; i, j = i+1, j-1 {
			elem[i], elem[j] = elem[j], elem[i]
		}
	}
	return out
}

// PutUint32 writes v little-endian into buf[off:off+4].
func PutUint32(buf []byte, off int, v uint32) { binary.LittleEndian.PutUint32(buf[off:], v) }

// GetUint32 reads a little-endian uint32 from buf[off:off+4].
func GetUint32(buf []byte, off int) uint32 { return binary.LittleEndian.Uint32(buf[off:]) }
