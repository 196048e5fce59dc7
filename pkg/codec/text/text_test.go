package text

import (
	"testing"

	"github.com/joshuapare/objectgraph/internal/valuefmt"
	"github.com/joshuapare/objectgraph/pkg/codec"
	"github.com/joshuapare/objectgraph/pkg/ist"
	"github.com/joshuapare/objectgraph/pkg/rtti"
	"github.com/joshuapare/objectgraph/pkg/stream"
	"github.com/stretchr/testify/require"
)

func TestWriteNodeUintFormat(t *testing.T) {
	s := stream.NewMemStream()
	c := New()
	raw, err := valuefmt.Decode(rtti.Tag{Kind: rtti.UInt}, "67305985")
	require.NoError(t, err)

	require.NoError(t, c.WriteNode(s, &ist.Info{
		Type:  rtti.Tag{Kind: rtti.UInt},
		Level: 1,
		Name:  "a",
		Value: raw,
	}))

	s.SetPosition(0)
	buf := make([]byte, s.Size())
	_, _ = s.Read(buf)
	require.Equal(t, "\tuint a = \"67305985\"\n", string(buf))
}

func TestRoundTripScenario1(t *testing.T) {
	s := stream.NewMemStream()
	c := New()

	aRaw, _ := valuefmt.Decode(rtti.Tag{Kind: rtti.UInt}, "67305985")
	fRaw, _ := valuefmt.Decode(rtti.Tag{Kind: rtti.Float}, "0.123456")
	cRaw, _ := valuefmt.Decode(rtti.Tag{Kind: rtti.Char, IsArray: true}, "azertyuiop")

	nodes := []*ist.Info{
		{Type: rtti.Tag{Kind: rtti.Object}, Level: 0, Name: "root", Value: []byte("P")},
		{Type: rtti.Tag{Kind: rtti.UInt}, Level: 1, Name: "a", Value: aRaw},
		{Type: rtti.Tag{Kind: rtti.Float}, Level: 1, Name: "aFloat", Value: fRaw},
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

func TestEscapingNewlineAndQuote(t *testing.T) {
	s := stream.NewMemStream()
	c := New()
	raw := []byte("line1\nline2 \"quoted\"")

	require.NoError(t, c.WriteNode(s, &ist.Info{
		Type: rtti.Tag{Kind: rtti.Char, IsArray: true}, Name: "x", Value: raw,
	}))
	s.SetPosition(0)
	got, err := c.ReadNode(s)
	require.NoError(t, err)
	require.False(t, got.IsDamaged)
	require.Equal(t, raw, got.Value)
}

func TestDamageToleranceSkipsMalformedLineButKeepsReading(t *testing.T) {
	s := stream.NewMemStream()
	_, _ = s.Write([]byte("int ??? = \"12\"\n"))
	intRaw, _ := valuefmt.Decode(rtti.Tag{Kind: rtti.Int}, "5")
	c := New()
	require.NoError(t, c.WriteNode(s, &ist.Info{Type: rtti.Tag{Kind: rtti.Int}, Name: "ok", Value: intRaw}))

	s.SetPosition(0)
	first, err := c.ReadNode(s)
	require.NoError(t, err)
	require.True(t, first.IsDamaged)

	second, err := c.ReadNode(s)
	require.NoError(t, err)
	require.False(t, second.IsDamaged)
	require.Equal(t, "ok", second.Name)
}

func TestWChArrayEscaping(t *testing.T) {
	s := stream.NewMemStream()
	c := New()
	want := "wide\"quote\nnewline"
	raw, err := valuefmt.Decode(rtti.Tag{Kind: rtti.WChar, IsArray: true}, want)
	require.NoError(t, err)

	require.NoError(t, c.WriteNode(s, &ist.Info{Type: rtti.Tag{Kind: rtti.WChar, IsArray: true}, Name: "w", Value: raw}))
	s.SetPosition(0)
	got, err := c.ReadNode(s)
	require.NoError(t, err)
	require.False(t, got.IsDamaged)
	require.Equal(t, raw, got.Value)
}
