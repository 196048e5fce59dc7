package main

import (
	"fmt"

	"github.com/joshuapare/objectgraph/internal/valuebytes"
	"github.com/joshuapare/objectgraph/pkg/ist"
	"github.com/joshuapare/objectgraph/pkg/rtti"
)

// nodeView wraps one ist.Node with the expand/collapse state the tree
// pane needs. The whole tree is parsed up front, so there's no async
// per-key loading state to track separately.
type nodeView struct {
	node     *ist.Node
	children []*nodeView
	expanded bool
}

// buildView recursively wraps root's subtree, expanding the first two
// levels by default so the tree isn't a single collapsed root on open.
func buildView(root *ist.Node) *nodeView {
	return buildViewAt(root, 0)
}

func buildViewAt(n *ist.Node, depth int) *nodeView {
	v := &nodeView{node: n, expanded: depth < 2}
	for _, c := range n.Children {
		v.children = append(v.children, buildViewAt(c, depth+1))
	}
	return v
}

// visibleRow is one line the tree pane can render: a node plus its
// display depth and whether it has children to expand.
type visibleRow struct {
	view  *nodeView
	depth int
}

// flatten produces the rows currently visible given each ancestor's
// expanded state (preorder, skipping subtrees under a collapsed parent).
func flatten(v *nodeView, depth int, out []visibleRow) []visibleRow {
	out = append(out, visibleRow{view: v, depth: depth})
	if !v.expanded {
		return out
	}
	for _, c := range v.children {
		out = flatten(c, depth+1, out)
	}
	return out
}

// describeValue renders a node's value for the detail pane, decoding
// primitive kinds and summarizing object/stream/fat-pointer kinds the way
// objectctl's inspect command does.
func describeValue(n *ist.Node) string {
	if n.Info.IsDamaged {
		return "<damaged>"
	}
	tag := n.Info.Type
	switch {
	case tag.Kind == rtti.Object:
		if len(n.Info.Value) == 0 {
			return "<nil>"
		}
		return fmt.Sprintf("<%s>", string(n.Info.Value))
	case tag.Kind == rtti.Stream:
		return fmt.Sprintf("<%d bytes>", len(n.Info.Value))
	case tag.Kind.IsFatPointer():
		return fmt.Sprintf("-> %s", string(n.Info.Value))
	default:
		v, err := valuebytes.Decode(tag, n.Info.Value)
		if err != nil {
			return fmt.Sprintf("<undecodable: %v>", err)
		}
		return fmt.Sprintf("%v", v)
	}
}
