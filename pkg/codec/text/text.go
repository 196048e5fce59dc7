// Package text implements the line-oriented text node codec:
//
//	<TAB x level><type-name>[<array-suffix>] <name> = "<value>"
package text

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/joshuapare/objectgraph/internal/valuefmt"
	"github.com/joshuapare/objectgraph/pkg/codec"
	"github.com/joshuapare/objectgraph/pkg/ist"
	"github.com/joshuapare/objectgraph/pkg/rtti"
	"github.com/joshuapare/objectgraph/pkg/stream"
)

// Codec implements codec.Codec for the text wire format.
type Codec struct{}

// New returns a text node codec.
func New() *Codec { return &Codec{} }

var _ codec.Codec = (*Codec)(nil)

// WriteNode emits one line for info.
func (Codec) WriteNode(s stream.Stream, info *ist.Info) error {
	valStr, err := valuefmt.Encode(info.Type, info.Value)
	if err != nil {
		return fmt.Errorf("text codec: encode value for %q: %w", info.Name, err)
	}
	valStr = valuefmt.EscapeTextValue(valStr)

	var b strings.Builder
	for i := uint32(0); i < info.Level; i++ {
		b.WriteByte('\t')
	}
	b.WriteString(info.Type.String())
	b.WriteByte(' ')
	b.WriteString(info.Name)
	b.WriteString(" = \"")
	b.WriteString(valStr)
	b.WriteString("\"\n")

	_, err = s.Write([]byte(b.String()))
	return err
}

// ReadNode consumes one line (up to an unescaped `"\n` terminator) and
// parses it. Malformed lines return a damaged node with a nil error
// rather than aborting the read.
func (Codec) ReadNode(s stream.Stream) (*ist.Info, error) {
	line, err := readLine(s)
	if err != nil {
		return nil, codec.ErrEndOfStream
	}
	if strings.TrimSpace(line) == "" {
		return Codec{}.ReadNode(s)
	}

	info, ok := parseLine(line)
	if !ok {
		return &ist.Info{IsDamaged: true, Name: line}, nil
	}
	return info, nil
}

func parseLine(line string) (*ist.Info, bool) {
	level := 0
	for level < len(line) && line[level] == '\t' {
		level++
	}
	rest := line[level:]

	sp := strings.IndexByte(rest, ' ')
	if sp < 0 {
		return nil, false
	}
	typeToken := rest[:sp]
	rest = strings.TrimLeft(rest[sp+1:], " ")

	eq := strings.Index(rest, "= \"")
	if eq < 0 {
		return nil, false
	}
	name := strings.TrimSpace(rest[:eq])
	// A name is made of letters, digits, '_' and the brackets of object-array
	// element names; anything else marks the line as damaged.
	if name == "" || strings.IndexFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '[' && r != ']'
	}) >= 0 {
		return nil, false
	}
	valuePart := rest[eq+3:]
	if !strings.HasSuffix(valuePart, "\"") {
		return nil, false
	}
	rawValue := valuePart[:len(valuePart)-1]
	rawValue = valuefmt.UnescapeTextValue(rawValue)

	tag, ok := parseTypeToken(typeToken)
	if !ok {
		return nil, false
	}

	value, err := valuefmt.Decode(tag, rawValue)
	if err != nil {
		return nil, false
	}

	return &ist.Info{
		Type:  tag,
		Level: uint32(level),
		Name:  name,
		Value: value,
	}, true
}

func parseTypeToken(token string) (rtti.Tag, bool) {
	isArray := strings.HasSuffix(token, "[]")
	base := strings.TrimSuffix(token, "[]")
	kind, ok := kindFromName(base)
	if !ok {
		return rtti.Tag{}, false
	}
	return rtti.Tag{Kind: kind, IsArray: isArray}, true
}

func kindFromName(name string) (rtti.Kind, bool) {
	for k := rtti.Invalid; k <= rtti.Function; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return rtti.Invalid, false
}

// readLine reads bytes from s, one at a time, up to and including the next
// '\n', honoring escaped newlines (\\n) inside the quoted value so an
// embedded, escaped newline doesn't terminate the line early. It reads
// directly from s rather than through a buffering reader because the
// stream's cursor must land exactly after the consumed line: a read-ahead
// buffer would advance the stream's position past data the next ReadNode
// call still needs (codecs are node-granular).
func readLine(s stream.Stream) (string, error) {
	var b strings.Builder
	var buf [1]byte
	for {
		n, err := s.Read(buf[:])
		if n == 0 {
			if b.Len() == 0 {
				if err == nil {
					err = io.EOF
				}
				return "", err
			}
			break
		}
		b.WriteByte(buf[0])
		if buf[0] == '\n' && !endsWithEscapedNewline(b.String()) {
			break
		}
	}
	out := b.String()
	return strings.TrimSuffix(out, "\n"), nil
}

// endsWithEscapedNewline reports whether s ends in an odd number of
// backslashes immediately followed by the newline just appended — i.e.
// the newline is escaped (\n literal text), not a real line terminator.
func endsWithEscapedNewline(s string) bool {
	if len(s) < 2 || s[len(s)-1] != '\n' {
		return false
	}
	backslashes := 0
	for i := len(s) - 2; i >= 0 && s[i] == '\\'; i-- {
		backslashes++
	}
	return backslashes%2 == 1
}

