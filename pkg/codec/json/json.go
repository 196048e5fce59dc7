// Package json implements the one-object-per-node JSON codec: each node is
// written as a single compact JSON object on its own line.
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/joshuapare/objectgraph/internal/valuefmt"
	"github.com/joshuapare/objectgraph/pkg/codec"
	"github.com/joshuapare/objectgraph/pkg/ist"
	"github.com/joshuapare/objectgraph/pkg/rtti"
	"github.com/joshuapare/objectgraph/pkg/stream"
)

// Codec implements codec.Codec for the JSON wire format.
type Codec struct{}

// New returns a JSON node codec.
func New() *Codec { return &Codec{} }

var _ codec.Codec = (*Codec)(nil)

// wireNode mirrors one IST node for JSON transport. Value is the same
// textual form the text codec uses before its quote/newline escaping (JSON
// string encoding does that job here), so both share internal/valuefmt
// rather than each inventing its own value grammar.
type wireNode struct {
	Level   uint32 `json:"level"`
	Type    int    `json:"type"`
	IsArray bool   `json:"isarray"`
	Name    string `json:"name"`
	Value   string `json:"value"`
}

// WriteNode emits info as one compact JSON object followed by a newline.
// The newline only separates nodes for readability; ReadNode finds the end
// of each object by brace depth and skips the newline as whitespace.
func (Codec) WriteNode(s stream.Stream, info *ist.Info) error {
	valStr, err := valuefmt.Encode(info.Type, info.Value)
	if err != nil {
		return fmt.Errorf("json codec: encode value for %q: %w", info.Name, err)
	}

	wn := wireNode{
		Level:   info.Level,
		Type:    int(info.Type.Kind),
		IsArray: info.Type.IsArray,
		Name:    info.Name,
		Value:   valStr,
	}
	buf, err := json.Marshal(wn)
	if err != nil {
		return fmt.Errorf("json codec: marshal node %q: %w", info.Name, err)
	}
	buf = append(buf, '\n')
	_, err = s.Write(buf)
	return err
}

// ReadNode scans exactly one JSON object's worth of bytes from s — using a
// brace-depth scanner that is string-literal aware, so an embedded `{` or
// `}` inside a quoted value field never throws the count off — decodes it,
// and leaves the stream's cursor positioned immediately after the object's
// closing brace (a trailing newline is skipped by the next call). A
// truncated or non-object frame yields a damaged node. A byte-at-a-time scan is used
// for the same reason the text codec avoids bufio: any read-ahead buffer
// would silently consume bytes the next ReadNode call still needs.
func (Codec) ReadNode(s stream.Stream) (*ist.Info, error) {
	raw, err := readOneObject(s)
	if err != nil {
		if len(raw) == 0 {
			return nil, codec.ErrEndOfStream
		}
		// Bytes were consumed but no complete object came of them.
		return &ist.Info{IsDamaged: true, Name: string(raw)}, nil
	}

	var wn wireNode
	if jsonErr := json.Unmarshal(raw, &wn); jsonErr != nil {
		return &ist.Info{IsDamaged: true, Name: string(raw)}, nil
	}

	kind := rtti.Kind(wn.Type)
	if kind < rtti.Invalid || kind > rtti.Function {
		return &ist.Info{IsDamaged: true, Name: wn.Name}, nil
	}
	tag := rtti.Tag{Kind: kind, IsArray: wn.IsArray}

	value, err := valuefmt.Decode(tag, wn.Value)
	if err != nil {
		return &ist.Info{IsDamaged: true, Name: wn.Name}, nil
	}

	return &ist.Info{
		Type:  tag,
		Level: wn.Level,
		Name:  wn.Name,
		Value: value,
	}, nil
}

// readOneObject reads bytes from s until it has consumed one balanced
// top-level `{...}` object, skipping any leading whitespace/newlines left
// over from the previous node, and returns exactly those bytes. On failure
// it returns the bytes it did consume (none at a clean end of stream)
// together with the error.
func readOneObject(s stream.Stream) ([]byte, error) {
	var buf [1]byte

	// Skip leading whitespace between nodes.
	var first byte
	for {
		n, err := s.Read(buf[:])
		if n == 0 {
			if err == nil {
				err = io.EOF
			}
			return nil, err
		}
		if isJSONSpace(buf[0]) {
			continue
		}
		first = buf[0]
		break
	}
	if first != '{' {
		return []byte{first}, fmt.Errorf("json codec: expected '{', got %q", first)
	}

	var out []byte
	out = append(out, first)
	depth := 1
	inString := false
	escaped := false

	for depth > 0 {
		n, err := s.Read(buf[:])
		if n == 0 {
			if err == nil {
				err = io.EOF
			}
			return out, err
		}
		b := buf[0]
		out = append(out, b)

		if inString {
			switch {
			case escaped:
				escaped = false
			case b == '\\':
				escaped = true
			case b == '"':
				inString = false
			}
			continue
		}

		switch b {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
		}
	}
	return out, nil
}

func isJSONSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
