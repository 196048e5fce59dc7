// Package binary implements the length-prefixed binary node codec: a
// framed encoding with a leading 0x99 and trailing 0xA0 marker per node,
// primitive values normalized to little-endian on the wire.
package binary

import (
	"io"

	"github.com/joshuapare/objectgraph/internal/wire"
	"github.com/joshuapare/objectgraph/pkg/codec"
	"github.com/joshuapare/objectgraph/pkg/ist"
	"github.com/joshuapare/objectgraph/pkg/rtti"
	"github.com/joshuapare/objectgraph/pkg/stream"
)

const (
	startMarker byte = 0x99
	endMarker   byte = 0xA0

	// resyncWindow bounds how far ReadNode will scan for a missing end
	// marker before giving up and declaring the node unrecoverable; keeps
	// a corrupt stream from turning into an unbounded scan.
	resyncWindow = 4096
)

// Codec implements codec.Codec for the binary wire format.
type Codec struct{}

// New returns a binary node codec.
func New() *Codec { return &Codec{} }

var _ codec.Codec = (*Codec)(nil)

// WriteNode emits one frame:
//
//	0x99, level:u32, type:u8, is_array:u8,
//	name_len:u32, name_bytes,
//	value_len:u32, value_bytes, 0xA0
func (Codec) WriteNode(s stream.Stream, info *ist.Info) error {
	nameBytes := []byte(info.Name)
	valueWire := wire.ToLittleEndian(info.Type.Kind, info.Value)

	frame := make([]byte, 0, 1+4+1+1+4+len(nameBytes)+4+len(valueWire)+1)
	frame = append(frame, startMarker)
	frame = appendU32(frame, info.Level)
	frame = append(frame, byte(info.Type.Kind))
	frame = append(frame, boolByte(info.Type.IsArray))
	frame = appendU32(frame, uint32(len(nameBytes)))
	frame = append(frame, nameBytes...)
	frame = appendU32(frame, uint32(len(valueWire)))
	frame = append(frame, valueWire...)
	frame = append(frame, endMarker)

	_, err := s.Write(frame)
	return err
}

// ReadNode scans forward for the next 0x99, parses a frame, and verifies
// the trailing 0xA0. If the declared lengths don't land on an 0xA0, it
// scans a bounded window forward for a resync point and flags the node as
// damaged, tolerating noise between frames.
func (Codec) ReadNode(s stream.Stream) (*ist.Info, error) {
	if !seekToMarker(s, startMarker) {
		return nil, codec.ErrEndOfStream
	}

	level, ok := readU32(s)
	if !ok {
		return damagedAt(s), nil
	}
	kindByte, ok := readByte(s)
	if !ok {
		return damagedAt(s), nil
	}
	isArrByte, ok := readByte(s)
	if !ok {
		return damagedAt(s), nil
	}
	nameLen, ok := readU32(s)
	if !ok {
		return damagedAt(s), nil
	}
	nameBytes, ok := readN(s, int(nameLen))
	if !ok {
		return damagedAt(s), nil
	}
	valueLen, ok := readU32(s)
	if !ok {
		return damagedAt(s), nil
	}
	valueBytes, ok := readN(s, int(valueLen))
	if !ok {
		return damagedAt(s), nil
	}

	info := &ist.Info{
		Level: level,
		Type:  rtti.Tag{Kind: rtti.Kind(kindByte), IsArray: isArrByte == 1},
		Name:  string(nameBytes),
	}
	info.Value = wire.FromLittleEndian(info.Type.Kind, valueBytes)

	end, ok := readByte(s)
	switch {
	case ok && end == endMarker:
		return info, nil
	case ok:
		// Trailing byte present but wrong: resync by scanning forward for
		// the marker, treating everything skipped as noise.
		info.IsDamaged = true
		seekToMarker(s, endMarker)
		return info, nil
	default:
		info.IsDamaged = true
		return info, nil
	}
}

func damagedAt(s stream.Stream) *ist.Info {
	info := &ist.Info{IsDamaged: true}
	seekToMarker(s, endMarker)
	return info
}

// seekToMarker advances s until it has just consumed a byte equal to
// marker, bounded by resyncWindow bytes of noise. Returns false if the
// marker wasn't found before end of stream or the window was exhausted.
func seekToMarker(s stream.Stream, marker byte) bool {
	for i := 0; i < resyncWindow; i++ {
		b, ok := readByte(s)
		if !ok {
			return false
		}
		if b == marker {
			return true
		}
	}
	return false
}

func readByte(s stream.Stream) (byte, bool) {
	var buf [1]byte
	n, err := s.Read(buf[:])
	if n != 1 || (err != nil && err != io.EOF) {
		return 0, false
	}
	if n == 0 {
		return 0, false
	}
	return buf[0], true
}

func readU32(s stream.Stream) (uint32, bool) {
	buf, ok := readN(s, 4)
	if !ok {
		return 0, false
	}
	return wire.GetUint32(buf, 0), true
}

func readN(s stream.Stream, n int) ([]byte, bool) {
	if n < 0 {
		return nil, false
	}
	buf := make([]byte, n)
	total := 0
	for total < n {
		r, err := s.Read(buf[total:])
		total += r
		if r == 0 || (err != nil && err != io.EOF) {
			if total == n {
				break
			}
			return nil, false
		}
		if err == io.EOF && total < n {
			return nil, false
		}
	}
	return buf, true
}

func appendU32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	wire.PutUint32(tmp[:], 0, v)
	return append(buf, tmp[:]...)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
