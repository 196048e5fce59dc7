// Package publisher implements the per-object descriptor collection layer:
// aggregating property descriptors per object, distinguishing owned
// sub-objects from external references, and recursing through composite
// graphs.
package publisher

import (
	"github.com/joshuapare/objectgraph/pkg/descriptor"
	"github.com/joshuapare/objectgraph/pkg/rtti"
)

// Publisher exposes the descriptor list for one object plus its owner
// back-reference.
type Publisher interface {
	PublicationCount() int
	PublicationAt(i int) *descriptor.Descriptor
	PublicationByName(name string) *descriptor.Descriptor
	PublicationType(i int) rtti.Tag
	Declarator() any
}

// Declarable is implemented by any object whose ownership can be assigned
// by an enclosing publisher. A nil Declarator means the object is
// currently unowned (treated as an external reference until claimed).
type Declarable interface {
	Declarator() any
	SetDeclarator(any)
}

// Collector is the concrete, embeddable implementation of Publisher used
// by every serializable type in this repository: types embed a Collector
// and populate it from NewCollector/AutoPublish at construction time
// instead of inheriting injected methods from a mixin base class.
type Collector struct {
	declarator any
	order      []string
	byName     map[string]*descriptor.Descriptor
}

// NewCollector creates an empty Collector owned by declarator.
func NewCollector(declarator any) *Collector {
	return &Collector{declarator: declarator, byName: make(map[string]*descriptor.Descriptor)}
}

// Declarator returns the object that owns this publisher.
func (c *Collector) Declarator() any { return c.declarator }

// SetDeclarator reassigns ownership, used when a Collector is embedded in
// a value constructed before its owner is known (e.g. by a decoder).
func (c *Collector) SetDeclarator(d any) { c.declarator = d }

// Add publishes a descriptor. A descriptor with a name already present
// replaces the existing one in place: last Add for a given name wins, and
// it keeps its position in publication order if it is replacing an
// existing entry.
func (c *Collector) Add(d *descriptor.Descriptor) {
	if _, exists := c.byName[d.Name()]; !exists {
		c.order = append(c.order, d.Name())
	}
	c.byName[d.Name()] = d
}

// Hide removes a previously-published descriptor by name. No-op if name
// isn't published.
func (c *Collector) Hide(name string) {
	if _, ok := c.byName[name]; !ok {
		return
	}
	delete(c.byName, name)
	for i, n := range c.order {
		if n == name {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// PublicationCount returns the number of published descriptors.
func (c *Collector) PublicationCount() int { return len(c.order) }

// PublicationAt returns the i'th descriptor in publication order.
func (c *Collector) PublicationAt(i int) *descriptor.Descriptor {
	return c.byName[c.order[i]]
}

// PublicationByName looks up a descriptor by name, or returns nil.
func (c *Collector) PublicationByName(name string) *descriptor.Descriptor {
	return c.byName[name]
}

// PublicationType returns the RTTI of the i'th descriptor.
func (c *Collector) PublicationType(i int) rtti.Tag {
	return c.PublicationAt(i).RTTI()
}

// IsOwned reports whether sub is an owned sub-object of a publisher
// declared by owner — i.e. sub implements Declarable and its declarator
// equals owner. A nil sub, or a sub whose declarator is nil or different
// from owner, is a reference rather than an owned composite.
func IsOwned(owner any, sub any) bool {
	if sub == nil {
		return false
	}
	d, ok := sub.(Declarable)
	if !ok {
		return false
	}
	return d.Declarator() == owner
}

// Claim assigns ownership of sub to owner, the way auto-publish claims a
// freshly-initialized composite field: if it's initialized, it's mine.
// No-op if sub is nil or doesn't implement Declarable.
func Claim(owner any, sub any) {
	if sub == nil {
		return
	}
	if d, ok := sub.(Declarable); ok {
		d.SetDeclarator(owner)
	}
}
