// Package ist implements the Intermediate Serialization Tree: a
// parent/child tree of type-tagged value nodes that mediates between the
// live object graph and the wire format.
package ist

import (
	"strings"

	"github.com/joshuapare/objectgraph/pkg/descriptor"
	"github.com/joshuapare/objectgraph/pkg/rtti"
)

// Info is the serialized snapshot of one property.
type Info struct {
	Type        rtti.Tag
	Level       uint32
	Name        string
	Value       []byte
	IsDamaged   bool
	IsLastChild bool // codec hint, computed by StreamToIST
}

// Node is one item in the IST: a general tree, ordered children, at most
// one parent. The Descriptor field is a transient back-pointer used only
// during live store/load runs — it is never serialized and is nil on any
// Node reconstructed purely from a stream.
type Node struct {
	Info Info

	Parent     *Node
	Children   []*Node
	Descriptor *descriptor.Descriptor
}

// New creates a detached node with the given info.
func New(info Info) *Node {
	return &Node{Info: info}
}

// AddChild appends child to n's children, sets child.Parent and
// child.Info.Level to n's level + 1, and keeps IsLastChild correct: the
// node that was previously last is no longer last.
func (n *Node) AddChild(child *Node) *Node {
	if len(n.Children) > 0 {
		n.Children[len(n.Children)-1].Info.IsLastChild = false
	}
	child.Parent = n
	child.Info.Level = n.Info.Level + 1
	child.Info.IsLastChild = true
	n.Children = append(n.Children, child)
	return child
}

// ParentIdentifierChain joins the dotted names of n's ancestors (root
// first), not including n itself.
func (n *Node) ParentIdentifierChain() string {
	var names []string
	for p := n.Parent; p != nil; p = p.Parent {
		names = append([]string{p.Info.Name}, names...)
	}
	return strings.Join(names, ".")
}

// IdentifierChain returns the full dotted path from the tree root through
// n, inclusive. This is the key used by random-access lookup (FindNode)
// and by rename callbacks.
func (n *Node) IdentifierChain() string {
	chain := n.ParentIdentifierChain()
	if chain == "" {
		return n.Info.Name
	}
	return chain + "." + n.Info.Name
}

// Walk performs a preorder traversal of the subtree rooted at n, calling
// fn for every node including n itself. Returning a non-nil error from fn
// stops the whole traversal (no further nodes, siblings included, are
// visited) and Walk returns that error.
func (n *Node) Walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.Walk(fn); err != nil {
			return err
		}
	}
	return nil
}

// Find walks n's subtree (preorder) looking for a descendant whose
// IdentifierChain equals chain. Returns nil if not found.
func (n *Node) Find(chain string) *Node {
	var found *Node
	_ = n.Walk(func(cur *Node) error {
		if found == nil && cur.IdentifierChain() == chain {
			found = cur
		}
		return nil
	})
	return found
}

// Preorder flattens n's subtree into a slice in preorder (root first).
func (n *Node) Preorder() []*Node {
	var out []*Node
	_ = n.Walk(func(cur *Node) error {
		out = append(out, cur)
		return nil
	})
	return out
}
