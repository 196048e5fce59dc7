package main

import (
	"fmt"
	"strings"

	"github.com/joshuapare/objectgraph/internal/valuebytes"
	"github.com/joshuapare/objectgraph/pkg/ist"
	"github.com/joshuapare/objectgraph/pkg/rtti"
)

// countDamaged returns the number of nodes in root's subtree with
// IsDamaged set.
func countDamaged(root *ist.Node) int {
	n := 0
	for _, node := range root.Preorder() {
		if node.Info.IsDamaged {
			n++
		}
	}
	return n
}

// describeValue renders a node's value bytes for display, decoding
// primitive kinds and printing a type-appropriate summary for
// object/stream/fat-pointer kinds that valuebytes does not cover.
func describeValue(node *ist.Node) string {
	if node.Info.IsDamaged {
		return "<damaged>"
	}
	tag := node.Info.Type
	switch {
	case tag.Kind == rtti.Object:
		if len(node.Info.Value) == 0 {
			return "<nil>"
		}
		return fmt.Sprintf("<%s>", string(node.Info.Value))
	case tag.Kind == rtti.Stream:
		return fmt.Sprintf("<%d bytes>", len(node.Info.Value))
	case tag.Kind.IsFatPointer():
		return fmt.Sprintf("-> %s", string(node.Info.Value))
	default:
		v, err := valuebytes.Decode(tag, node.Info.Value)
		if err != nil {
			return fmt.Sprintf("<undecodable: %v>", err)
		}
		return fmt.Sprintf("%v", v)
	}
}

// printTree writes a preorder, indented rendering of root's subtree.
func printTree(root *ist.Node) {
	_ = root.Walk(func(n *ist.Node) error {
		indent := strings.Repeat("  ", int(n.Info.Level))
		marker := ""
		if n.Info.IsDamaged {
			marker = " !"
		}
		printInfo("%s%s: %s = %s%s\n", indent, n.Info.Name, n.Info.Type, describeValue(n), marker)
		return nil
	})
}
