// Package registry implements the process-wide reference registry: a
// two-level map from (type-identity, string-id) to an opaque pointer value,
// used to serialize fat pointers (delegates, function pointers, shared
// object references) as symbolic identifiers and re-bind them on load.
//
// Type identity is the fully qualified type name as a string. The two
// reserved names GenericDelegate and GenericFunction are used by pkg/rtti
// for the two fat-pointer kinds.
package registry

import (
	"fmt"
	"sync"
)

// numShards keeps lock contention low without reaching for a third-party
// concurrent map; the registry is keyed by type name rather than raw bytes.
const numShards = 16

// typeEntry holds the bidirectional mapping for a single type identity.
type typeEntry struct {
	mu      sync.Mutex
	idToPtr map[string]any
	ptrToID map[any]string
}

func newTypeEntry() *typeEntry {
	return &typeEntry{
		idToPtr: make(map[string]any),
		ptrToID: make(map[any]string),
	}
}

// Registry is a process-wide (or, via New, explicitly scoped) map from
// type-name to an id<->pointer bijection.
type Registry struct {
	shards [numShards]*shard
}

type shard struct {
	mu    sync.Mutex
	types map[string]*typeEntry
}

func newShard() *shard {
	return &shard{types: make(map[string]*typeEntry)}
}

// New returns a fresh, independent Registry. Most callers use the
// package-level functions backed by the default singleton instead; New is
// for callers (tests, multiple independent engines in one process) that
// want isolation.
func New() *Registry {
	r := &Registry{}
	for i := range r.shards {
		r.shards[i] = newShard()
	}
	return r
}

func shardIndex(typeName string) int {
	h := fnv32a(typeName)
	return int(h & (numShards - 1))
}

func fnv32a(s string) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}

func (r *Registry) entry(typeName string, create bool) *typeEntry {
	sh := r.shards[shardIndex(typeName)]
	sh.mu.Lock()
	defer sh.mu.Unlock()
	te, ok := sh.types[typeName]
	if !ok {
		if !create {
			return nil
		}
		te = newTypeEntry()
		sh.types[typeName] = te
	}
	return te
}

// Store registers ptr under id for typeName. It returns true if the pair is
// newly registered or already mapped identically; false if id is already
// bound to a different pointer, ptr is already bound to a different id, or
// id is empty. Never overwrites on conflict.
func (r *Registry) Store(typeName string, ptr any, id string) bool {
	if id == "" {
		return false
	}
	te := r.entry(typeName, true)
	te.mu.Lock()
	defer te.mu.Unlock()
	if existing, ok := te.idToPtr[id]; ok {
		return existing == ptr
	}
	if _, ok := te.ptrToID[ptr]; ok {
		return false // ptr is already registered under another id
	}
	te.idToPtr[id] = ptr
	te.ptrToID[ptr] = id
	return true
}

// RemoveByID unbinds id for typeName. No-op if absent.
func (r *Registry) RemoveByID(typeName, id string) {
	te := r.entry(typeName, false)
	if te == nil {
		return
	}
	te.mu.Lock()
	defer te.mu.Unlock()
	if ptr, ok := te.idToPtr[id]; ok {
		delete(te.idToPtr, id)
		delete(te.ptrToID, ptr)
	}
}

// RemoveByPtr unbinds whatever id ptr is registered under for typeName.
// No-op if absent.
func (r *Registry) RemoveByPtr(typeName string, ptr any) {
	te := r.entry(typeName, false)
	if te == nil {
		return
	}
	te.mu.Lock()
	defer te.mu.Unlock()
	if id, ok := te.ptrToID[ptr]; ok {
		delete(te.ptrToID, ptr)
		delete(te.idToPtr, id)
	}
}

// LookupByID returns the pointer registered under (typeName, id), or
// (nil, false) if unregistered.
func (r *Registry) LookupByID(typeName, id string) (any, bool) {
	te := r.entry(typeName, false)
	if te == nil {
		return nil, false
	}
	te.mu.Lock()
	defer te.mu.Unlock()
	ptr, ok := te.idToPtr[id]
	return ptr, ok
}

// LookupByPtr returns the id ptr is registered under for typeName, or
// ("", false) if unregistered.
func (r *Registry) LookupByPtr(typeName string, ptr any) (string, bool) {
	te := r.entry(typeName, false)
	if te == nil {
		return "", false
	}
	te.mu.Lock()
	defer te.mu.Unlock()
	id, ok := te.ptrToID[ptr]
	return id, ok
}

// Contains reports whether id is currently bound for typeName.
func (r *Registry) Contains(typeName, id string) bool {
	_, ok := r.LookupByID(typeName, id)
	return ok
}

// ProposeID returns ptr's existing id if already registered for typeName,
// otherwise the first unused string of the form entry_<N> starting at
// entry_1. The proposed id is not reserved by calling ProposeID; callers
// must Store it themselves.
func (r *Registry) ProposeID(typeName string, ptr any) string {
	te := r.entry(typeName, true)
	te.mu.Lock()
	defer te.mu.Unlock()
	if id, ok := te.ptrToID[ptr]; ok {
		return id
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("entry_%d", n)
		if _, used := te.idToPtr[candidate]; !used {
			return candidate
		}
	}
}

// Reset clears every type's mapping.
func (r *Registry) Reset() {
	for _, sh := range r.shards {
		sh.mu.Lock()
		sh.types = make(map[string]*typeEntry)
		sh.mu.Unlock()
	}
}

// --- Package-level API backed by a default singleton instance ---

var global = New()

// Default returns the package-level singleton Registry backing the
// package-level functions below, for callers (like the serializer engine)
// that need a *Registry handle but should still default to the shared
// instance rather than an isolated one.
func Default() *Registry { return global }

func Store(typeName string, ptr any, id string) bool        { return global.Store(typeName, ptr, id) }
func RemoveByID(typeName, id string)                         { global.RemoveByID(typeName, id) }
func RemoveByPtr(typeName string, ptr any)                   { global.RemoveByPtr(typeName, ptr) }
func LookupByID(typeName, id string) (any, bool)             { return global.LookupByID(typeName, id) }
func LookupByPtr(typeName string, ptr any) (string, bool)    { return global.LookupByPtr(typeName, ptr) }
func Contains(typeName, id string) bool                      { return global.Contains(typeName, id) }
func ProposeID(typeName string, ptr any) string              { return global.ProposeID(typeName, ptr) }
func Reset()                                                 { global.Reset() }
