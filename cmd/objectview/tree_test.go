package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/objectgraph/pkg/ist"
	"github.com/joshuapare/objectgraph/pkg/rtti"
)

func sampleTree() *ist.Node {
	root := ist.New(ist.Info{Name: "widget", Type: rtti.Tag{Kind: rtti.Object}})
	count := ist.New(ist.Info{Name: "count", Type: rtti.Tag{Kind: rtti.UInt}, Value: []byte{7, 0, 0, 0}})
	nested := ist.New(ist.Info{Name: "inner", Type: rtti.Tag{Kind: rtti.Object}})
	flag := ist.New(ist.Info{Name: "flag", Type: rtti.Tag{Kind: rtti.Bool}, Value: []byte{1}})

	root.AddChild(count)
	root.AddChild(nested)
	nested.AddChild(flag)
	return root
}

func TestBuildViewExpandsFirstTwoLevels(t *testing.T) {
	root := sampleTree()
	v := buildView(root)

	require.True(t, v.expanded)
	require.Len(t, v.children, 2)
	require.True(t, v.children[1].expanded) // "inner" at depth 1
	require.Len(t, v.children[1].children, 1)
}

func TestFlattenSkipsCollapsedSubtrees(t *testing.T) {
	root := sampleTree()
	v := buildView(root)

	all := flatten(v, 0, nil)
	require.Len(t, all, 4) // widget, count, inner, flag

	v.children[1].expanded = false
	collapsed := flatten(v, 0, nil)
	require.Len(t, collapsed, 3) // widget, count, inner (flag hidden)
}

func TestDescribeValueDecodesPrimitive(t *testing.T) {
	root := sampleTree()
	count := root.Children[0]

	require.Equal(t, "7", describeValue(count))
}

func TestDescribeValueSummarizesObjectAndDamaged(t *testing.T) {
	root := sampleTree()

	require.Equal(t, "<nil>", describeValue(root))

	damaged := root.Children[0]
	damaged.Info.IsDamaged = true
	require.Equal(t, "<damaged>", describeValue(damaged))
}

func TestRenderDetailReportsNilSelection(t *testing.T) {
	require.Equal(t, "(no node selected)", renderDetail(nil))
}

func TestRenderDetailIncludesChainAndValue(t *testing.T) {
	root := sampleTree()
	v := buildView(root)

	out := renderDetail(v.children[0])
	require.Contains(t, out, "widget.count")
	require.Contains(t, out, "7")
}
