package json

import (
	"testing"

	"github.com/joshuapare/objectgraph/internal/valuefmt"
	"github.com/joshuapare/objectgraph/pkg/codec"
	"github.com/joshuapare/objectgraph/pkg/ist"
	"github.com/joshuapare/objectgraph/pkg/rtti"
	"github.com/joshuapare/objectgraph/pkg/stream"
	"github.com/stretchr/testify/require"
)

func TestRoundTripScalarAndArray(t *testing.T) {
	s := stream.NewMemStream()
	c := New()

	aRaw, _ := valuefmt.Decode(rtti.Tag{Kind: rtti.UInt}, "67305985")
	cRaw, _ := valuefmt.Decode(rtti.Tag{Kind: rtti.Char, IsArray: true}, "azertyuiop")

	nodes := []*ist.Info{
		{Type: rtti.Tag{Kind: rtti.UInt}, Level: 1, Name: "a", Value: aRaw},
		{Type: rtti.Tag{Kind: rtti.Char, IsArray: true}, Level: 1, Name: "someChars", Value: cRaw},
	}
	for _, n := range nodes {
		require.NoError(t, c.WriteNode(s, n))
	}

	s.SetPosition(0)
	for _, want := range nodes {
		got, err := c.ReadNode(s)
		require.NoError(t, err)
		require.False(t, got.IsDamaged)
		require.Equal(t, want.Type, got.Type)
		require.Equal(t, want.Level, got.Level)
		require.Equal(t, want.Name, got.Name)
		require.Equal(t, want.Value, got.Value)
	}
	_, err := c.ReadNode(s)
	require.ErrorIs(t, err, codec.ErrEndOfStream)
}

func TestValueContainingBracesDoesNotConfuseScanner(t *testing.T) {
	s := stream.NewMemStream()
	c := New()
	raw := []byte(`{nested} "quoted" \ stuff`)

	require.NoError(t, c.WriteNode(s, &ist.Info{
		Type: rtti.Tag{Kind: rtti.Char, IsArray: true}, Name: "brace", Value: raw,
	}))
	// A second node follows; the scanner must not overrun into it.
	require.NoError(t, c.WriteNode(s, &ist.Info{
		Type: rtti.Tag{Kind: rtti.Int}, Name: "after", Value: []byte{7, 0, 0, 0},
	}))

	s.SetPosition(0)
	first, err := c.ReadNode(s)
	require.NoError(t, err)
	require.False(t, first.IsDamaged)
	require.Equal(t, raw, first.Value)

	second, err := c.ReadNode(s)
	require.NoError(t, err)
	require.False(t, second.IsDamaged)
	require.Equal(t, "after", second.Name)
}

func TestMalformedJSONYieldsDamagedNode(t *testing.T) {
	s := stream.NewMemStream()
	_, _ = s.Write([]byte(`{"level":0,"type":`))
	s.SetPosition(0)
	c := New()

	got, err := c.ReadNode(s)
	require.NoError(t, err)
	require.True(t, got.IsDamaged)

	_, err = c.ReadNode(s)
	require.ErrorIs(t, err, codec.ErrEndOfStream)
}

func TestUnknownTypeEnumYieldsDamagedNode(t *testing.T) {
	s := stream.NewMemStream()
	_, _ = s.Write([]byte(`{"level":0,"type":999,"isarray":false,"name":"x","value":"1"}` + "\n"))
	s.SetPosition(0)
	c := New()

	got, err := c.ReadNode(s)
	require.NoError(t, err)
	require.True(t, got.IsDamaged)
}
