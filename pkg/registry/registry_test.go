package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreLookupRoundTrip(t *testing.T) {
	r := New()
	p1 := new(int)
	require.True(t, r.Store("Widget", p1, "id-1"))

	got, ok := r.LookupByID("Widget", "id-1")
	require.True(t, ok)
	require.Equal(t, p1, got)

	id, ok := r.LookupByPtr("Widget", p1)
	require.True(t, ok)
	require.Equal(t, "id-1", id)
}

func TestStoreConflictDoesNotOverwrite(t *testing.T) {
	r := New()
	p1, p2 := new(int), new(int)
	require.True(t, r.Store("Widget", p1, "id"))
	require.False(t, r.Store("Widget", p2, "id"))

	got, ok := r.LookupByID("Widget", "id")
	require.True(t, ok)
	require.Equal(t, p1, got)
}

func TestStoreSameIdenticalPairIsIdempotent(t *testing.T) {
	r := New()
	p1 := new(int)
	require.True(t, r.Store("Widget", p1, "id"))
	require.True(t, r.Store("Widget", p1, "id"))
}

func TestStoreEmptyIDFails(t *testing.T) {
	r := New()
	require.False(t, r.Store("Widget", new(int), ""))
}

func TestRemoveByIDAndByPtr(t *testing.T) {
	r := New()
	p1 := new(int)
	r.Store("Widget", p1, "id")
	r.RemoveByID("Widget", "id")
	_, ok := r.LookupByID("Widget", "id")
	require.False(t, ok)

	p2 := new(int)
	r.Store("Widget", p2, "id2")
	r.RemoveByPtr("Widget", p2)
	_, ok = r.LookupByPtr("Widget", p2)
	require.False(t, ok)
}

func TestProposeIDSequential(t *testing.T) {
	r := New()
	require.Equal(t, "entry_1", r.ProposeID("Widget", new(int)))
	r.Store("Widget", new(int), "entry_1")
	require.Equal(t, "entry_2", r.ProposeID("Widget", new(int)))
}

func TestProposeIDReturnsExistingForSamePtr(t *testing.T) {
	r := New()
	p := new(int)
	r.Store("Widget", p, "entry_1")
	require.Equal(t, "entry_1", r.ProposeID("Widget", p))
}

func TestReset(t *testing.T) {
	r := New()
	r.Store("Widget", new(int), "id")
	r.Reset()
	require.False(t, r.Contains("Widget", "id"))
}

func TestTypeIdentityIsolatesIDs(t *testing.T) {
	r := New()
	p1, p2 := new(int), new(int)
	require.True(t, r.Store("A", p1, "id"))
	require.True(t, r.Store("B", p2, "id"))
	got, _ := r.LookupByID("A", "id")
	require.Equal(t, p1, got)
	got, _ = r.LookupByID("B", "id")
	require.Equal(t, p2, got)
}
