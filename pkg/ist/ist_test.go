package ist

import (
	"testing"

	"github.com/joshuapare/objectgraph/pkg/rtti"
	"github.com/stretchr/testify/require"
)

func TestAddChildSetsLevelAndParent(t *testing.T) {
	root := New(Info{Name: "root", Type: rtti.Tag{Kind: rtti.Object}})
	child := New(Info{Name: "a"})
	root.AddChild(child)

	require.Equal(t, root, child.Parent)
	require.Equal(t, uint32(1), child.Info.Level)
}

func TestIsLastChildTracking(t *testing.T) {
	root := New(Info{Name: "root"})
	a := New(Info{Name: "a"})
	b := New(Info{Name: "b"})
	root.AddChild(a)
	root.AddChild(b)

	require.False(t, a.Info.IsLastChild)
	require.True(t, b.Info.IsLastChild)
}

func TestIdentifierChain(t *testing.T) {
	root := New(Info{Name: "root"})
	sub := New(Info{Name: "sub"})
	root.AddChild(sub)
	leaf := New(Info{Name: "aFloat"})
	sub.AddChild(leaf)

	require.Equal(t, "root", root.IdentifierChain())
	require.Equal(t, "root.sub", sub.IdentifierChain())
	require.Equal(t, "root.sub.aFloat", leaf.IdentifierChain())
	require.Equal(t, "root.sub", leaf.ParentIdentifierChain())
}

func TestFindAndPreorder(t *testing.T) {
	root := New(Info{Name: "root"})
	sub := New(Info{Name: "sub"})
	root.AddChild(sub)
	leaf := New(Info{Name: "aFloat"})
	sub.AddChild(leaf)

	found := root.Find("root.sub.aFloat")
	require.Same(t, leaf, found)
	require.Nil(t, root.Find("nope"))

	order := root.Preorder()
	require.Len(t, order, 3)
	require.Equal(t, []string{"root", "sub", "aFloat"}, []string{order[0].Info.Name, order[1].Info.Name, order[2].Info.Name})
}

func TestWalkVisitsEveryNodeInPreorder(t *testing.T) {
	root := New(Info{Name: "root"})
	a := New(Info{Name: "a"})
	b := New(Info{Name: "b"})
	root.AddChild(a)
	root.AddChild(b)

	var visited []string
	err := root.Walk(func(n *Node) error {
		visited = append(visited, n.Info.Name)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"root", "a", "b"}, visited)
}
