// Package valuefmt converts IST node value bytes to and from the textual
// representation shared by the text and JSON codecs (the binary codec
// works on raw bytes directly and has no use for this package).
package valuefmt

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/objectgraph/pkg/rtti"
)

// Encode renders raw (host-endian value bytes, per the IST invariant) as
// the string a node's text/JSON "value" field carries.
func Encode(tag rtti.Tag, raw []byte) (string, error) {
	switch {
	case tag.Kind == rtti.Stream:
		return base64.StdEncoding.EncodeToString(raw), nil
	case tag.Kind == rtti.Object || tag.Kind.IsFatPointer():
		return string(raw), nil
	case tag.Kind == rtti.Char || tag.Kind == rtti.WChar || tag.Kind == rtti.DChar:
		s, err := DecodeCharBytes(tag.Kind, raw)
		if err != nil {
			return "", err
		}
		return s, nil
	case tag.IsArray:
		return encodeArray(tag.Kind, raw)
	default:
		return encodeScalar(tag.Kind, raw)
	}
}

// Decode parses text back into raw host-endian value bytes.
func Decode(tag rtti.Tag, text string) ([]byte, error) {
	switch {
	case tag.Kind == rtti.Stream:
		return base64.StdEncoding.DecodeString(text)
	case tag.Kind == rtti.Object || tag.Kind.IsFatPointer():
		return []byte(text), nil
	case tag.Kind == rtti.Char || tag.Kind == rtti.WChar || tag.Kind == rtti.DChar:
		return EncodeCharBytes(tag.Kind, text)
	case tag.IsArray:
		return decodeArray(tag.Kind, text)
	default:
		return decodeScalar(tag.Kind, text)
	}
}

// EscapeTextValue escapes backslash, newline and double-quote, applied uniformly to
// char, wchar, and dchar arrays (and, for robustness, object/delegate/
// function string payloads) by always escaping rather than leaving some
// kinds unescaped.
func EscapeTextValue(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return s
}

// UnescapeTextValue reverses EscapeTextValue.
func UnescapeTextValue(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case '"':
				b.WriteByte('"')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func encodeScalar(kind rtti.Kind, raw []byte) (string, error) {
	v, err := decodeNumeric(kind, raw)
	if err != nil {
		return "", err
	}
	return formatNumeric(kind, v), nil
}

func decodeScalar(kind rtti.Kind, text string) ([]byte, error) {
	return encodeNumeric(kind, text)
}

func encodeArray(kind rtti.Kind, raw []byte) (string, error) {
	size := kind.ElemSize()
	if size == 0 {
		return "", fmt.Errorf("valuefmt: kind %v has no fixed element size for array encoding", kind)
	}
	n := len(raw) / size
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		elem := raw[i*size : (i+1)*size]
		s, err := encodeScalar(kind, elem)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ","), nil
}

func decodeArray(kind rtti.Kind, text string) ([]byte, error) {
	if text == "" {
		return nil, nil
	}
	parts := strings.Split(text, ",")
	out := make([]byte, 0, len(parts)*kind.ElemSize())
	for _, p := range parts {
		elem, err := decodeScalar(kind, p)
		if err != nil {
			return nil, err
		}
		out = append(out, elem...)
	}
	return out, nil
}

func decodeNumeric(kind rtti.Kind, raw []byte) (any, error) {
	switch kind {
	case rtti.Bool:
		return raw[0] != 0, nil
	case rtti.Byte:
		return int8(raw[0]), nil
	case rtti.UByte:
		return raw[0], nil
	case rtti.Short:
		return int16(leU16(raw)), nil
	case rtti.UShort:
		return leU16(raw), nil
	case rtti.Int:
		return int32(leU32(raw)), nil
	case rtti.UInt:
		return leU32(raw), nil
	case rtti.Long:
		return int64(leU64(raw)), nil
	case rtti.ULong:
		return leU64(raw), nil
	case rtti.Float:
		return math.Float32frombits(leU32(raw)), nil
	case rtti.Double:
		return math.Float64frombits(leU64(raw)), nil
	default:
		return nil, fmt.Errorf("valuefmt: unsupported numeric kind %v", kind)
	}
}

func formatNumeric(kind rtti.Kind, v any) string {
	switch x := v.(type) {
	case bool:
		return strconv.FormatBool(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func encodeNumeric(kind rtti.Kind, text string) ([]byte, error) {
	switch kind {
	case rtti.Bool:
		v, err := strconv.ParseBool(text)
		if err != nil {
			return nil, err
		}
		if v {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case rtti.Byte, rtti.UByte:
		v, err := strconv.ParseInt(text, 10, 16)
		if err != nil {
			return nil, err
		}
		return []byte{byte(v)}, nil
	case rtti.Short, rtti.UShort:
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return nil, err
		}
		return putU16(uint16(v)), nil
	case rtti.Int, rtti.UInt:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, err
		}
		return putU32(uint32(v)), nil
	case rtti.Long, rtti.ULong:
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			// allow negative `long`
			sv, serr := strconv.ParseInt(text, 10, 64)
			if serr != nil {
				return nil, err
			}
			v = uint64(sv)
		}
		return putU64(v), nil
	case rtti.Float:
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return nil, err
		}
		return putU32(math.Float32bits(float32(v))), nil
	case rtti.Double:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, err
		}
		return putU64(math.Float64bits(v)), nil
	default:
		return nil, fmt.Errorf("valuefmt: unsupported numeric kind %v", kind)
	}
}

var utf16leCodec = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
var utf16leEncoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()

// DecodeCharBytes converts raw IST value bytes for a character kind (Char,
// WChar, DChar) into a Go string, per the IST invariant that Char arrays are
// UTF-8, WChar arrays are UTF-16LE, and DChar arrays are UTF-32LE. Exported
// so internal/valuebytes can share this logic rather than drifting from it.
func DecodeCharBytes(kind rtti.Kind, raw []byte) (string, error) {
	switch kind {
	case rtti.Char:
		return string(raw), nil
	case rtti.WChar:
		out, err := utf16leCodec.Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("valuefmt: decode wchar array: %w", err)
		}
		return string(out), nil
	case rtti.DChar:
		if len(raw)%4 != 0 {
			return "", fmt.Errorf("valuefmt: dchar array length %d not a multiple of 4", len(raw))
		}
		var b strings.Builder
		for off := 0; off < len(raw); off += 4 {
			r := rune(leU32(raw[off : off+4]))
			b.WriteRune(r)
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("valuefmt: %v is not a character kind", kind)
	}
}

// EncodeCharBytes is the inverse of DecodeCharBytes.
func EncodeCharBytes(kind rtti.Kind, s string) ([]byte, error) {
	switch kind {
	case rtti.Char:
		return []byte(s), nil
	case rtti.WChar:
		out, err := utf16leEncoder.Bytes([]byte(s))
		if err != nil {
			return nil, fmt.Errorf("valuefmt: encode wchar array: %w", err)
		}
		return out, nil
	case rtti.DChar:
		runes := []rune(s)
		out := make([]byte, 0, len(runes)*4)
		for _, r := range runes {
			out = append(out, putU32(uint32(r))...)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("valuefmt: %v is not a character kind", kind)
	}
}

// --- little-endian scalar helpers, kept local to this package
// (internal/wire offers only 32-bit framing helpers and the binary codec's
// host-endian swap). ---

func leU16(b []byte) uint16 { return uint16(b[0]) | uint16(b[1])<<8 }
func leU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
func leU64(b []byte) uint64 {
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func putU16(v uint16) []byte { return []byte{byte(v), byte(v >> 8)} }
func putU32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}
func putU64(v uint64) []byte {
	out := make([]byte, 8)
	for i := 0; i < 8; i++ {
		out[i] = byte(v >> (8 * i))
	}
	return out
}
