package serializer

import (
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

// PublisherToStream walks root (published under rootName) and writes each
// node to s via c as soon as it is discovered — sequential store. It also
// leaves the full IST populated on the Engine, so a caller may
// additionally call ISTToStream with a different codec for conversion.
func (e *Engine) PublisherToStream(rootName string, root publisher.Publisher, s stream.Stream, c codec.Codec) (*ist.Node, error) {
	e.Reset()
	e.state = StateStoringSequential
	e.mustWrite = true
	e.stream = s
	e.codec = c
	defer func() { e.mustWrite = false; e.state = StateIdle }()

	rootDescriptor := descriptor.FromAccessors[any](rootName, rtti.Tag{Kind: rtti.Object}, nil,
		func() any { return root }, nil)
	node := e.addPublisher(nil, rootDescriptor, true)
	e.root = node
	return node, nil
}

// PublisherToIST performs the same walk as PublisherToStream but never
// touches a stream, producing only the in-memory IST.
func (e *Engine) PublisherToIST(rootName string, root publisher.Publisher) *ist.Node {
	e.Reset()
	e.state = StateISTOnly
	e.mustWrite = false
	defer func() { e.state = StateIdle }()

	rootDescriptor := descriptor.FromAccessors[any](rootName, rtti.Tag{Kind: rtti.Object}, nil,
		func() any { return root }, nil)
	node := e.addPublisher(nil, rootDescriptor, true)
	e.root = node
	return node
}

// ISTToStream writes every node of the subtree rooted at root to s via c,
// depth-first preorder — bulk store, decoupled from the walk that built
// the tree so format conversion is just StreamToIST from one codec
// followed by ISTToStream through another.
func (e *Engine) ISTToStream(root *ist.Node, s stream.Stream, c codec.Codec) error {
	e.state = StateStoringBulk
	defer func() { e.state = StateIdle }()

	return root.Walk(func(n *ist.Node) error {
		return c.WriteNode(s, &n.Info)
	})
}

// addPublisher recursively builds the IST from a publisher: create a
// node for d under parent, write it immediately if e.mustWrite, and — for
// an object-kind descriptor whose target is a publisher that is either
// the run's root or owned by the current publisher — recurse into its
// own publications. A composite the current publisher does not own is
// serialized as a bare reference (class name only, no recursion).
func (e *Engine) addPublisher(parent *ist.Node, d *descriptor.Descriptor, isRoot bool) *ist.Node {
	info := ist.Info{Type: d.RTTI(), Name: d.Name()}
	node := ist.New(info)
	if parent != nil {
		parent.AddChild(node)
	}

	value := d.Get()
	tag := d.RTTI()

	switch {
	case tag.Kind == rtti.Object && tag.IsArray:
		e.addObjectArray(node, d, value)
	case tag.Kind == rtti.Object:
		e.addObject(node, d, value, isRoot)
	case tag.Kind == rtti.Stream:
		node.Info.Value = readAllFromStream(value)
	case tag.Kind.IsFatPointer():
		node.Info.Value = []byte(d.ReferenceID())
	default:
		raw, err := valuebytes.Encode(tag, value)
		if err != nil {
			node.Info.IsDamaged = true
			e.diag(node, "encode-failure", err.Error())
		} else {
			node.Info.Value = raw
		}
	}

	if e.mustWrite {
		if err := e.codec.WriteNode(e.stream, &node.Info); err != nil {
			e.diag(node, "write-failure", err.Error())
		}
	}
	return node
}

func (e *Engine) addObject(node *ist.Node, d *descriptor.Descriptor, value any, isRoot bool) {
	if rv := reflect.ValueOf(value); value != nil && rv.Kind() == reflect.Ptr && rv.IsNil() {
		value = nil // a nil pointer held in the interface is a null sub-object
	}
	node.Info.Value = []byte(classNameOf(value))
	if value == nil {
		return
	}
	pub, isPub := value.(publisher.Publisher)
	if !isPub {
		return
	}
	if !isRoot && !publisher.IsOwned(d.Declarator(), value) {
		// Reference: only the class name travels; the body is skipped.
		return
	}
	for i := 0; i < pub.PublicationCount(); i++ {
		e.addPublisher(node, pub.PublicationAt(i), false)
	}
}

func (e *Engine) addObjectArray(node *ist.Node, d *descriptor.Descriptor, value any) {
	elems, ok := sliceElems(value)
	if !ok {
		node.Info.IsDamaged = true
		e.diag(node, "encode-failure", fmt.Sprintf("object array field %q is not a slice", d.Name()))
		return
	}
	for i, elem := range elems {
		elemName := fmt.Sprintf("%s[%d]", d.Name(), i)
		elemDescriptor := descriptor.FromAccessors[any](elemName, rtti.Tag{Kind: rtti.Object}, d.Declarator(),
			func() any { return elem }, nil)
		e.addPublisher(node, elemDescriptor, false)
	}
}

// classNameOf returns the target class name an object-kind node's value
// bytes hold: empty for nil, the concrete (pointer-stripped) type name
// otherwise.
func classNameOf(v any) string {
	if v == nil {
		return ""
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.String()
}

// sliceElems reflects v (expected to be some []T) into a []any of its
// elements, used for object-array traversal where T's concrete type is
// only known at the call site, not to this package.
func sliceElems(v any) ([]any, bool) {
	if v == nil {
		return nil, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// readAllFromStream captures the full contents of a stream-kind
// property's value, independent of its own read cursor, for inlining into
// the owning node's value bytes.
func readAllFromStream(v any) []byte {
	if v == nil {
		return nil
	}
	if b, ok := v.(interface{ Bytes() []byte }); ok {
		return b.Bytes()
	}
	s, ok := v.(stream.Stream)
	if !ok {
		return nil
	}
	saved := s.Position()
	defer s.SetPosition(saved)
	s.SetPosition(0)
	buf := make([]byte, s.Size())
	_, _ = s.Read(buf)
	return buf
}
