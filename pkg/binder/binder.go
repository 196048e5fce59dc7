// Package binder implements the property binder: a group of descriptors
// of identical RTTI kept in sync through one designated source, built
// entirely on the descriptor abstraction so it needs no engine or IST
// support of its own.
package binder

import (
	"fmt"

	"github.com/joshuapare/objectgraph/pkg/descriptor"
	"github.com/joshuapare/objectgraph/pkg/rtti"
)

// Binder holds an ordered list of descriptors of one RTTI kind plus the
// index of the designated "source" descriptor.
type Binder struct {
	tag         rtti.Tag
	descriptors []*descriptor.Descriptor
	sourceIndex int // -1 when no source is designated
}

// New returns an empty binder fixed to tag; every descriptor later added
// must carry the same RTTI.
func New(tag rtti.Tag) *Binder {
	return &Binder{tag: tag, sourceIndex: -1}
}

// Add appends d to the group, optionally designating it the source, and
// returns its index. Panics if d's RTTI doesn't match the binder's — a
// publication-type-consistency violation is a programming error.
func (b *Binder) Add(d *descriptor.Descriptor, isSource bool) int {
	if d.RTTI() != b.tag {
		panic(fmt.Sprintf("binder: descriptor %q has RTTI %v, binder expects %v", d.Name(), d.RTTI(), b.tag))
	}
	idx := len(b.descriptors)
	b.descriptors = append(b.descriptors, d)
	if isSource {
		b.sourceIndex = idx
	}
	return idx
}

// NewBinding constructs a descriptor over loc whose lifetime is managed
// entirely by the binder (construction mode (c), descriptor.FromValue)
// and adds it, optionally as the source.
func NewBinding[T comparable](b *Binder, name string, declarator any, loc *T, isSource bool) int {
	d := descriptor.FromValue(name, b.tag, declarator, loc)
	return b.Add(d, isSource)
}

// Remove drops the descriptor at index i. If it was the source, the
// binder is left with no source until a later Add designates a new one
// via its isSource flag.
func (b *Binder) Remove(i int) {
	b.descriptors = append(b.descriptors[:i], b.descriptors[i+1:]...)
	switch {
	case i == b.sourceIndex:
		b.sourceIndex = -1
	case i < b.sourceIndex:
		b.sourceIndex--
	}
}

// Count returns the number of bound descriptors.
func (b *Binder) Count() int { return len(b.descriptors) }

// At returns the descriptor at index i.
func (b *Binder) At(i int) *descriptor.Descriptor { return b.descriptors[i] }

// Source returns the designated source descriptor, or nil if none is set.
func (b *Binder) Source() *descriptor.Descriptor {
	if b.sourceIndex < 0 {
		return nil
	}
	return b.descriptors[b.sourceIndex]
}

// Change pushes value to every read-write descriptor in the group.
func (b *Binder) Change(value any) {
	for _, d := range b.descriptors {
		if d.Access() == descriptor.AccessReadWrite {
			d.Set(value)
		}
	}
}

// UpdateFromSource reads the source descriptor and pushes its value to
// every other descriptor in the group. No-op if no source is set.
func (b *Binder) UpdateFromSource() {
	src := b.Source()
	if src == nil {
		return
	}
	value := src.Get()
	for i, d := range b.descriptors {
		if i == b.sourceIndex {
			continue
		}
		if d.Access() == descriptor.AccessReadWrite || d.Access() == descriptor.AccessWriteOnly {
			d.Set(value)
		}
	}
}
