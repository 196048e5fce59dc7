// Package descriptor implements the erased property descriptor: a handle
// binding a name to a typed getter/setter pair (or a raw value location)
// behind a single interface, while preserving the RTTI needed to safely
// recover the concrete type on restore.
package descriptor

import (
	"reflect"

	"github.com/joshuapare/objectgraph/pkg/rtti"
)

// Access classifies a descriptor by which of get/set are populated. It is
// derived, never set directly.
type Access int

const (
	AccessNone Access = iota
	AccessReadOnly
	AccessWriteOnly
	AccessReadWrite
)

func (a Access) String() string {
	switch a {
	case AccessReadOnly:
		return "read-only"
	case AccessWriteOnly:
		return "write-only"
	case AccessReadWrite:
		return "read-write"
	default:
		return "none"
	}
}

// Descriptor is the erased handle: name + RTTI + get/set pair + declarator
// back-reference + optional reference-id for fat-pointer payloads.
//
// Get/Set operate on `any` (the erasure); callers that need the concrete
// type back should type-assert using the Kind the Tag carries — the
// engine validates that assertion against the on-disk RTTI before it ever
// reaches user code.
type Descriptor struct {
	name string
	tag  rtti.Tag

	get func() any
	set func(any)

	declarator   any
	referenceID  string
	reflectType  reflect.Type // retained for diagnostics only, never required for correctness
}

// Name returns the descriptor's property name.
func (d *Descriptor) Name() string { return d.name }

// RTTI returns the descriptor's immutable type tag.
func (d *Descriptor) RTTI() rtti.Tag { return d.tag }

// Declarator returns the object that owns this descriptor.
func (d *Descriptor) Declarator() any { return d.declarator }

// ReferenceID returns the symbolic reference-id configured for a
// delegate/function/reference-kind descriptor, or "" if unset.
func (d *Descriptor) ReferenceID() string { return d.referenceID }

// SetReferenceID sets the symbolic reference-id used when this descriptor's
// payload is a fat pointer or an externally-owned object reference.
func (d *Descriptor) SetReferenceID(id string) { d.referenceID = id }

// Access reports read-only / write-only / read-write / none based on which
// of get/set are populated.
func (d *Descriptor) Access() Access {
	switch {
	case d.get != nil && d.set != nil:
		return AccessReadWrite
	case d.get != nil:
		return AccessReadOnly
	case d.set != nil:
		return AccessWriteOnly
	default:
		return AccessNone
	}
}

// Get reads the current value. Panics if the descriptor is write-only or
// has no accessors — callers must check Access first; the contract
// violation is a programming error.
func (d *Descriptor) Get() any {
	if d.get == nil {
		panic("descriptor: Get called on a descriptor with no getter")
	}
	return d.get()
}

// Set writes a new value. Panics if the descriptor is read-only or has no
// accessors.
func (d *Descriptor) Set(v any) {
	if d.set == nil {
		panic("descriptor: Set called on a descriptor with no setter")
	}
	d.set(v)
}

// FromAccessors builds a descriptor from an explicit pair of accessor
// functions (construction mode (a)). Either may be nil.
func FromAccessors[T any](name string, tag rtti.Tag, declarator any, get func() T, set func(T)) *Descriptor {
	d := &Descriptor{name: name, tag: tag, declarator: declarator, reflectType: reflectTypeOf[T]()}
	if get != nil {
		d.get = func() any { return get() }
	}
	if set != nil {
		d.set = func(v any) { set(v.(T)) }
	}
	return d
}

// FromSetterAndValue builds a descriptor whose getter dereferences loc and
// whose setter is the caller-supplied function (construction mode (b)).
func FromSetterAndValue[T any](name string, tag rtti.Tag, declarator any, set func(T), loc *T) *Descriptor {
	d := &Descriptor{name: name, tag: tag, declarator: declarator, reflectType: reflectTypeOf[T]()}
	d.get = func() any { return *loc }
	if set != nil {
		d.set = func(v any) { set(v.(T)) }
	}
	return d
}

// FromValue builds a descriptor bound directly to a raw memory location,
// used for both get and set (construction mode (c)). The fabricated setter
// only writes when the new value differs from the current one, preserving
// no-op semantics observed by callers.
func FromValue[T comparable](name string, tag rtti.Tag, declarator any, loc *T) *Descriptor {
	d := &Descriptor{name: name, tag: tag, declarator: declarator, reflectType: reflectTypeOf[T]()}
	d.get = func() any { return *loc }
	d.set = func(v any) {
		tv := v.(T)
		if *loc != tv {
			*loc = tv
		}
	}
	return d
}

func reflectTypeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}
