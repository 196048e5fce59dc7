package publisher

import (
	"testing"

	"github.com/joshuapare/objectgraph/pkg/descriptor"
	"github.com/joshuapare/objectgraph/pkg/rtti"
	"github.com/stretchr/testify/require"
)

func TestCollectorAddAndLookup(t *testing.T) {
	owner := &struct{}{}
	c := NewCollector(owner)
	val := 1
	c.Add(descriptor.FromValue("a", rtti.Tag{Kind: rtti.Int}, owner, &val))

	require.Equal(t, 1, c.PublicationCount())
	require.Equal(t, "a", c.PublicationAt(0).Name())
	require.NotNil(t, c.PublicationByName("a"))
	require.Nil(t, c.PublicationByName("missing"))
	require.Equal(t, owner, c.Declarator())
}

func TestCollectorAddReplacesByName(t *testing.T) {
	owner := &struct{}{}
	c := NewCollector(owner)
	v1, v2 := 1, 2
	c.Add(descriptor.FromValue("a", rtti.Tag{Kind: rtti.Int}, owner, &v1))
	c.Add(descriptor.FromValue("a", rtti.Tag{Kind: rtti.Int}, owner, &v2))

	require.Equal(t, 1, c.PublicationCount())
	require.Equal(t, 2, c.PublicationByName("a").Get())
}

func TestCollectorHide(t *testing.T) {
	owner := &struct{}{}
	c := NewCollector(owner)
	v := 1
	c.Add(descriptor.FromValue("a", rtti.Tag{Kind: rtti.Int}, owner, &v))
	c.Hide("a")
	require.Equal(t, 0, c.PublicationCount())
	require.Nil(t, c.PublicationByName("a"))
}

type fakeSub struct {
	declarator any
}

func (f *fakeSub) Declarator() any      { return f.declarator }
func (f *fakeSub) SetDeclarator(d any)  { f.declarator = d }

func TestIsOwnedAndClaim(t *testing.T) {
	owner := &struct{}{}
	sub := &fakeSub{}
	require.False(t, IsOwned(owner, sub))

	Claim(owner, sub)
	require.True(t, IsOwned(owner, sub))
}

func TestIsOwnedFalseForExternalDeclarator(t *testing.T) {
	owner := &struct{}{}
	other := &struct{}{}
	sub := &fakeSub{declarator: other}
	require.False(t, IsOwned(owner, sub))
}

func TestIsOwnedFalseForNonDeclarable(t *testing.T) {
	owner := &struct{}{}
	require.False(t, IsOwned(owner, 42))
	require.False(t, IsOwned(owner, nil))
}

type leafStruct struct {
	Collector
	A uint32  `objectgraph:"publish"`
	B string  `objectgraph:"publish,name=someChars"`
	C float32 `objectgraph:"publish"`
	skip int
}

func newLeaf() *leafStruct {
	l := &leafStruct{}
	l.Collector = *NewCollector(l)
	_ = AutoPublish(&l.Collector, l, l)
	return l
}

func TestAutoPublishPrimitiveFields(t *testing.T) {
	l := newLeaf()
	l.A = 0x04030201
	l.C = 0.5
	l.B = "hi"

	require.Equal(t, 3, l.PublicationCount())
	a := l.PublicationByName("a")
	require.Nil(t, a) // Go field name is "A", published name defaults to field name "A"
	require.NotNil(t, l.PublicationByName("A"))
	require.Equal(t, uint32(0x04030201), l.PublicationByName("A").Get())

	sc := l.PublicationByName("someChars")
	require.NotNil(t, sc)
	require.Equal(t, "hi", sc.Get())
	require.True(t, sc.RTTI().IsArray)
	require.Equal(t, rtti.Char, sc.RTTI().Kind)
}

type nestedParent struct {
	Collector
	Sub *leafStruct `objectgraph:"publish"`
}

func TestAutoPublishClaimsOwnershipOfNonNilSub(t *testing.T) {
	p := &nestedParent{Sub: &leafStruct{}}
	p.Sub.Collector = *NewCollector(nil)
	p.Collector = *NewCollector(p)
	require.NoError(t, AutoPublish(&p.Collector, p, p))

	require.True(t, IsOwned(p, p.Sub))
}
