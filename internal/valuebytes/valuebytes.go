// Package valuebytes converts between the Go values a descriptor's Get/Set
// erase to `any` and the little-endian raw bytes an ist.Info.Value carries.
//
// The IST's documented invariant is host-endian bytes, normalized to
// little-endian only by the binary codec on the wire. In practice every
// host this engine runs on is little-endian, so this package writes
// little-endian directly: internal/wire's host-endian-detection swap is
// then a no-op on the hosts that matter, while still holding for the rare
// big-endian host per the binary codec's own normalization step.
package valuebytes

import (
	"fmt"
	"math"

	"github.com/joshuapare/objectgraph/internal/valuefmt"
	"github.com/joshuapare/objectgraph/pkg/rtti"
)

// Encode converts a Go value matching tag's kind into its raw byte form.
func Encode(tag rtti.Tag, v any) ([]byte, error) {
	if tag.IsArray && tag.Kind != rtti.Char && tag.Kind != rtti.WChar && tag.Kind != rtti.DChar {
		return encodeSlice(tag.Kind, v)
	}
	return encodeScalar(tag.Kind, v)
}

// Decode converts raw bytes back into the Go value type a descriptor's
// setter for tag's kind expects.
func Decode(tag rtti.Tag, raw []byte) (any, error) {
	if tag.IsArray && tag.Kind != rtti.Char && tag.Kind != rtti.WChar && tag.Kind != rtti.DChar {
		return decodeSlice(tag.Kind, raw)
	}
	return decodeScalar(tag.Kind, raw)
}

func encodeScalar(kind rtti.Kind, v any) ([]byte, error) {
	switch kind {
	case rtti.Bool:
		if v.(bool) {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case rtti.Byte:
		return []byte{byte(v.(int8))}, nil
	case rtti.UByte:
		return []byte{v.(uint8)}, nil
	case rtti.Short:
		return putU16(uint16(v.(int16))), nil
	case rtti.UShort:
		return putU16(v.(uint16)), nil
	case rtti.Int:
		return putU32(uint32(v.(int32))), nil
	case rtti.UInt:
		return putU32(v.(uint32)), nil
	case rtti.Long:
		return putU64(uint64(toInt64(v))), nil
	case rtti.ULong:
		return putU64(toUint64(v)), nil
	case rtti.Float:
		return putU32(math.Float32bits(v.(float32))), nil
	case rtti.Double:
		return putU64(math.Float64bits(v.(float64))), nil
	case rtti.Char, rtti.WChar, rtti.DChar:
		return valuefmt.EncodeCharBytes(kind, v.(string))
	case rtti.Object, rtti.Stream, rtti.Delegate, rtti.Function:
		return nil, fmt.Errorf("valuebytes: kind %v is not scalar-encodable here", kind)
	default:
		return nil, fmt.Errorf("valuebytes: unsupported kind %v", kind)
	}
}

func decodeScalar(kind rtti.Kind, raw []byte) (any, error) {
	switch kind {
	case rtti.Bool:
		return len(raw) > 0 && raw[0] != 0, nil
	case rtti.Byte:
		if len(raw) < 1 {
			return int8(0), nil
		}
		return int8(raw[0]), nil
	case rtti.UByte:
		if len(raw) < 1 {
			return uint8(0), nil
		}
		return raw[0], nil
	case rtti.Short:
		return int16(getU16(raw)), nil
	case rtti.UShort:
		return getU16(raw), nil
	case rtti.Int:
		return int32(getU32(raw)), nil
	case rtti.UInt:
		return getU32(raw), nil
	case rtti.Long:
		return int64(getU64(raw)), nil
	case rtti.ULong:
		return getU64(raw), nil
	case rtti.Float:
		return math.Float32frombits(getU32(raw)), nil
	case rtti.Double:
		return math.Float64frombits(getU64(raw)), nil
	case rtti.Char, rtti.WChar, rtti.DChar:
		return valuefmt.DecodeCharBytes(kind, raw)
	default:
		return nil, fmt.Errorf("valuebytes: unsupported kind %v", kind)
	}
}

func encodeSlice(kind rtti.Kind, v any) ([]byte, error) {
	var out []byte
	switch s := v.(type) {
	case []bool:
		for _, e := range s {
			b, err := encodeScalar(kind, e)
			if err != nil {
				return nil, err
			}
			out = append(out, b...)
		}
	case []int8:
		for _, e := range s {
			out = append(out, byte(e))
		}
	case []uint8:
		out = append(out, s...)
	case []int16:
		for _, e := range s {
			out = append(out, putU16(uint16(e))...)
		}
	case []uint16:
		for _, e := range s {
			out = append(out, putU16(e)...)
		}
	case []int32:
		for _, e := range s {
			out = append(out, putU32(uint32(e))...)
		}
	case []uint32:
		for _, e := range s {
			out = append(out, putU32(e)...)
		}
	case []int64:
		for _, e := range s {
			out = append(out, putU64(uint64(e))...)
		}
	case []uint64:
		for _, e := range s {
			out = append(out, putU64(e)...)
		}
	case []float32:
		for _, e := range s {
			out = append(out, putU32(math.Float32bits(e))...)
		}
	case []float64:
		for _, e := range s {
			out = append(out, putU64(math.Float64bits(e))...)
		}
	default:
		return nil, fmt.Errorf("valuebytes: unsupported array value type %T for kind %v", v, kind)
	}
	return out, nil
}

func decodeSlice(kind rtti.Kind, raw []byte) (any, error) {
	size := kind.ElemSize()
	if size == 0 {
		return nil, fmt.Errorf("valuebytes: kind %v has no fixed element size", kind)
	}
	n := len(raw) / size
	switch kind {
	case rtti.Bool:
		out := make([]bool, n)
		for i := range out {
			out[i] = raw[i*size] != 0
		}
		return out, nil
	case rtti.Byte:
		out := make([]int8, n)
		for i := range out {
			out[i] = int8(raw[i*size])
		}
		return out, nil
	case rtti.UByte:
		out := make([]uint8, n)
		copy(out, raw[:n])
		return out, nil
	case rtti.Short:
		out := make([]int16, n)
		for i := range out {
			out[i] = int16(getU16(raw[i*size:]))
		}
		return out, nil
	case rtti.UShort:
		out := make([]uint16, n)
		for i := range out {
			out[i] = getU16(raw[i*size:])
		}
		return out, nil
	case rtti.Int:
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(getU32(raw[i*size:]))
		}
		return out, nil
	case rtti.UInt:
		out := make([]uint32, n)
		for i := range out {
			out[i] = getU32(raw[i*size:])
		}
		return out, nil
	case rtti.Long:
		out := make([]int64, n)
		for i := range out {
			out[i] = int64(getU64(raw[i*size:]))
		}
		return out, nil
	case rtti.ULong:
		out := make([]uint64, n)
		for i := range out {
			out[i] = getU64(raw[i*size:])
		}
		return out, nil
	case rtti.Float:
		out := make([]float32, n)
		for i := range out {
			out[i] = math.Float32frombits(getU32(raw[i*size:]))
		}
		return out, nil
	case rtti.Double:
		out := make([]float64, n)
		for i := range out {
			out[i] = math.Float64frombits(getU64(raw[i*size:]))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("valuebytes: unsupported array kind %v", kind)
	}
}

func toInt64(v any) int64 {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int64:
		return x
	default:
		return 0
	}
}

func toUint64(v any) uint64 {
	switch x := v.(type) {
	case uint:
		return uint64(x)
	case uint64:
		return x
	default:
		return 0
	}
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

func getU16(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return uint16(b[0]) | uint16(b[1])<<8
}
func getU32(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
func getU64(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}
