package serializer

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/joshuapare/objectgraph/internal/valuebytes"
	"github.com/joshuapare/objectgraph/pkg/codec"
	"github.com/joshuapare/objectgraph/pkg/descriptor"
	"github.com/joshuapare/objectgraph/pkg/ist"
	"github.com/joshuapare/objectgraph/pkg/publisher"
	"github.com/joshuapare/objectgraph/pkg/rtti"
	"github.com/joshuapare/objectgraph/pkg/stream"
)

// StreamToIST is the pure-parse load path: read every node from s via c
// until exhausted, then reconstruct the tree shape from the level field
// alone. IsLastChild falls out of the same reconstruction
// (ist.Node.AddChild already maintains it structurally) — a separate
// pre-pass over adjacent levels would recompute exactly the same flag a
// second time, since "the next node's level is strictly less" and "node
// is the last child actually added under its parent" are the same fact.
//
// Reparenting pops the ancestor stack by level rather than by a single
// is_last_child signal per step, so a multi-level unwind (closing several
// nested objects back to back, with no flat nodes in between) reparents
// correctly in one pass.
func (e *Engine) StreamToIST(s stream.Stream, c codec.Codec) (*ist.Node, error) {
	e.Reset()
	e.state = StateLoading
	defer func() { e.state = StateIdle }()

	var infos []*ist.Info
	for {
		info, err := c.ReadNode(s)
		if err != nil {
			if errors.Is(err, codec.ErrEndOfStream) {
				break
			}
			return nil, err
		}
		infos = append(infos, info)
	}
	if len(infos) == 0 {
		return nil, nil
	}

	root := ist.New(*infos[0])
	stack := []*ist.Node{root}
	for _, info := range infos[1:] {
		for len(stack) > 1 && stack[len(stack)-1].Info.Level >= info.Level {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		node := ist.New(*info)
		parent.AddChild(node)
		stack = append(stack, node)
	}

	e.root = root
	return root, nil
}

// ISTToPublisher drives target from root's children: matching
// publications by name and RTTI, recursing into owned composites,
// resolving references through the registry, and invoking the configured
// callbacks for anything unmatched.
func (e *Engine) ISTToPublisher(root *ist.Node, target publisher.Publisher) error {
	e.state = StateLoading
	defer func() { e.state = StateIdle }()
	e.applyChildren(root, target)
	return nil
}

// StreamToPublisher composes StreamToIST and ISTToPublisher.
func (e *Engine) StreamToPublisher(s stream.Stream, c codec.Codec, target publisher.Publisher) (*ist.Node, error) {
	root, err := e.StreamToIST(s, c)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}
	if err := e.ISTToPublisher(root, target); err != nil {
		return nil, err
	}
	return root, nil
}

// FindNode walks root's subtree for the descendant (or root itself) whose
// dotted identifier chain equals chain.
func (e *Engine) FindNode(root *ist.Node, chain string) *ist.Node {
	if root.IdentifierChain() == chain {
		return root
	}
	return root.Find(chain)
}

// RestoreProperty validates that node's RTTI matches d's and, if so,
// applies node's bytes through d — extracting a single property without
// touching the rest of the target publisher.
func (e *Engine) RestoreProperty(node *ist.Node, d *descriptor.Descriptor) error {
	if node.Info.Type != d.RTTI() {
		return fmt.Errorf("serializer: RTTI mismatch restoring %q: node has %v, descriptor has %v",
			node.Info.Name, node.Info.Type, d.RTTI())
	}
	e.applyNode(node, d, true)
	return nil
}

func (e *Engine) applyChildren(node *ist.Node, target publisher.Publisher) {
	for _, child := range node.Children {
		d := target.PublicationByName(child.Info.Name)
		mismatched := d != nil && d.RTTI() != child.Info.Type

		if d == nil || mismatched {
			if mismatched {
				e.diag(child, "rtti-mismatch", fmt.Sprintf(
					"property %q: descriptor type %v != node type %v", child.Info.Name, d.RTTI(), child.Info.Type))
			} else {
				e.diag(child, "unknown-property", fmt.Sprintf("no publication named %q", child.Info.Name))
			}

			var replacement *descriptor.Descriptor
			var stop bool
			if e.opt.OnWantDescriptor != nil {
				replacement, stop = e.opt.OnWantDescriptor(child)
			}
			if replacement == nil {
				continue // unhandled: skip
			}
			d = replacement
			if stop {
				e.applyNode(child, d, false)
				continue
			}
		}

		e.applyNode(child, d, true)
	}
}

func (e *Engine) applyNode(node *ist.Node, d *descriptor.Descriptor, recurse bool) {
	tag := d.RTTI()
	switch {
	case tag.Kind == rtti.Object && tag.IsArray:
		e.applyObjectArray(node, d)
	case tag.Kind == rtti.Object:
		e.applyObject(node, d, recurse)
	case tag.Kind == rtti.Stream:
		d.Set(stream.NewMemStreamFromBytes(node.Info.Value))
	case tag.Kind.IsFatPointer():
		e.applyFatPointer(node, d)
	default:
		v, err := valuebytes.Decode(tag, node.Info.Value)
		if err != nil {
			node.Info.IsDamaged = true
			e.diag(node, "decode-failure", err.Error())
			return
		}
		d.Set(v)
	}
}

func (e *Engine) applyObject(node *ist.Node, d *descriptor.Descriptor, recurse bool) {
	current := d.Get()
	if rv := reflect.ValueOf(current); current != nil && rv.Kind() == reflect.Ptr && rv.IsNil() {
		current = nil // a nil pointer held in the interface is an empty slot too
	}
	if current == nil {
		if e.opt.OnWantObject != nil {
			obj, fromReference := e.opt.OnWantObject(node)
			if fromReference {
				typeName := string(node.Info.Value)
				chain := node.IdentifierChain()
				ptr, ok := e.refRegistry().LookupByID(typeName, chain)
				if !ok {
					e.diag(node, "unknown-reference", fmt.Sprintf("no registered pointer for %s/%s", typeName, chain))
					d.Set(nil)
					return
				}
				d.Set(ptr)
				return
			}
			if obj != nil {
				d.Set(obj)
				current = obj
			}
		}
		if current == nil {
			return
		}
	}
	if !recurse {
		return
	}
	pub, ok := current.(publisher.Publisher)
	if !ok {
		return
	}
	e.applyChildren(node, pub)
}

// applyObjectArray recurses into an object array's elements. Because a
// descriptor's Get/Set are erased to `any`, the concrete element type
// needed to allocate new elements is not visible to this package: the
// target field must already be sized to the stream's element count
// (e.g. by an on_want_descriptor-driven pre-pass) before this call.
func (e *Engine) applyObjectArray(node *ist.Node, d *descriptor.Descriptor) {
	elems, ok := sliceElems(d.Get())
	if !ok || len(elems) != len(node.Children) {
		e.diag(node, "object-array-mismatch", fmt.Sprintf(
			"array %q: target has %d elements, stream has %d; pre-size the field before restoring",
			d.Name(), len(elems), len(node.Children)))
		return
	}
	for i, child := range node.Children {
		elem := elems[i]
		if elem == nil {
			continue
		}
		pub, ok := elem.(publisher.Publisher)
		if !ok {
			continue
		}
		e.applyChildren(child, pub)
	}
}

func (e *Engine) applyFatPointer(node *ist.Node, d *descriptor.Descriptor) {
	id := string(node.Info.Value)
	d.SetReferenceID(id)
	typeName := d.RTTI().Kind.String()
	ptr, ok := e.refRegistry().LookupByID(typeName, id)
	if !ok {
		e.diag(node, "unknown-reference", fmt.Sprintf("no registered pointer for %s/%s", typeName, id))
		d.Set(nil)
		return
	}
	d.Set(ptr)
}
