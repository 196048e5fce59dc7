package rtti

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindStringTokens(t *testing.T) {
	require.Equal(t, "GenericDelegate", Delegate.String())
	require.Equal(t, "GenericFunction", Function.String())
	require.Equal(t, "uint", UInt.String())
}

func TestTagStringArraySuffix(t *testing.T) {
	require.Equal(t, "char[]", Tag{Kind: Char, IsArray: true}.String())
	require.Equal(t, "char", Tag{Kind: Char, IsArray: false}.String())
}

func TestElemSizes(t *testing.T) {
	cases := map[Kind]int{
		Bool: 1, Byte: 1, UByte: 1, Char: 1,
		Short: 2, UShort: 2, WChar: 2,
		Int: 4, UInt: 4, Float: 4, DChar: 4,
		Long: 8, ULong: 8, Double: 8,
		Object: 0, Stream: 0, Delegate: 0, Function: 0, Invalid: 0,
	}
	for k, want := range cases {
		require.Equal(t, want, k.ElemSize(), "kind %v", k)
	}
}

func TestIsFatPointer(t *testing.T) {
	require.True(t, Delegate.IsFatPointer())
	require.True(t, Function.IsFatPointer())
	require.False(t, Int.IsFatPointer())
}
