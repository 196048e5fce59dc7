// Package codec defines the per-node codec contract shared by the three
// interchangeable wire formats (binary, text, JSON): one write/read call
// per IST node.
package codec

import (
	"errors"

	"github.com/joshuapare/objectgraph/pkg/ist"
	"github.com/joshuapare/objectgraph/pkg/stream"
)

// ErrEndOfStream is returned by ReadNode once every node has been
// consumed. It is the signal the serializer's stream-to-IST loop uses to
// stop — distinct from a malformed-frame error, which instead yields a
// damaged node and a nil error so the caller can continue.
var ErrEndOfStream = errors.New("codec: end of stream")

// Codec writes and reads one ist.Info at a time to/from a stream.Stream.
type Codec interface {
	// WriteNode serializes info to s at its current position.
	WriteNode(s stream.Stream, info *ist.Info) error

	// ReadNode parses the next node from s. On a malformed frame it
	// returns a non-nil *ist.Info with IsDamaged set and a nil error:
	// codecs never abort on bad content, only report ErrEndOfStream when
	// input is exhausted.
	ReadNode(s stream.Stream) (*ist.Info, error)
}
