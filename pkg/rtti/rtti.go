// Package rtti carries the runtime type tag shared by every property
// descriptor and every IST node: a closed enumeration of value kinds the
// serialization engine handles natively, plus an orthogonal array bit.
package rtti

import "fmt"

// Kind is a closed enumeration of the value kinds the engine understands.
// Delegate and Function denote fat pointers serialized as reference-id
// strings rather than by bit-copy.
type Kind int

const (
	Invalid Kind = iota
	Bool
	Byte
	UByte
	Short
	UShort
	Int
	UInt
	Long
	ULong
	Float
	Double
	Char
	WChar
	DChar
	Object
	Stream
	Delegate
	Function
)

// Tag is the (kind, is_array) pair carried by descriptors and IST nodes.
type Tag struct {
	Kind    Kind
	IsArray bool
}

// String renders a stable, whitespace-free name for the kind, used by the
// text codec (the JSON codec carries the numeric kind). Delegate and Function use the GenericDelegate /
// GenericFunction tokens so they never collide with a real class name.
func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Bool:
		return "bool"
	case Byte:
		return "byte"
	case UByte:
		return "ubyte"
	case Short:
		return "short"
	case UShort:
		return "ushort"
	case Int:
		return "int"
	case UInt:
		return "uint"
	case Long:
		return "long"
	case ULong:
		return "ulong"
	case Float:
		return "float"
	case Double:
		return "double"
	case Char:
		return "char"
	case WChar:
		return "wchar"
	case DChar:
		return "dchar"
	case Object:
		return "object"
	case Stream:
		return "stream"
	case Delegate:
		return "GenericDelegate"
	case Function:
		return "GenericFunction"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// String renders the full tag the way the text codec emits it:
// "<kind>[]" when IsArray, "<kind>" otherwise.
func (t Tag) String() string {
	if t.IsArray {
		return t.Kind.String() + "[]"
	}
	return t.Kind.String()
}

// IsFatPointer reports whether the kind is serialized solely by a
// reference-registry id string rather than by value bytes.
func (k Kind) IsFatPointer() bool {
	return k == Delegate || k == Function
}

// ElemSize returns the on-wire size in bytes of one element of a primitive
// kind. Object, Stream, Delegate, Function, and Invalid have no fixed
// element size (0); callers must treat those specially.
func (k Kind) ElemSize() int {
	switch k {
	case Bool, Byte, UByte, Char:
		return 1
	case Short, UShort, WChar:
		return 2
	case Int, UInt, Float, DChar:
		return 4
	case Long, ULong, Double:
		return 8
	default:
		return 0
	}
}

// IsPrimitive reports whether the kind has a fixed-size, bit-copyable wire
// representation (as opposed to object/stream/fat-pointer kinds).
func (k Kind) IsPrimitive() bool {
	return k.ElemSize() > 0
}
