// Package reftable implements the container's runtime reference table: a
// flat vector of {type-id, pointer} entries published incrementally as
// services become valid, and scanned linearly by the injector. The table is
// sized up front to instance_count+2 and never reallocated, so pointers
// handed to clients stay valid for the container's lifetime.
package reftable

import (
	"unsafe"

	"github.com/diwire/diwire/internal/registry"
)

// Ref is one published entry: a type id and a type-erased pointer into the
// storage region (or, for the two built-ins, into the container/allocator
// themselves).
type Ref struct {
	ID  registry.TypeID
	Ptr unsafe.Pointer
}

// Table is a fixed-capacity, append-only (within one build) vector of Refs.
type Table struct {
	refs []Ref
}

// New allocates a Table with capacity for exactly n entries.
func New(n int) *Table {
	return &Table{refs: make([]Ref, 0, n)}
}

// Publish appends a reference. It is a programmer error to publish more
// entries than the table was sized for; doing so panics rather than
// silently reallocating, since that would invalidate the sizing contract
// the table promises after Ready.
func (t *Table) Publish(id registry.TypeID, ptr unsafe.Pointer) {
	if len(t.refs) == cap(t.refs) {
		panic("reftable: publish exceeds reserved capacity")
	}
	t.refs = append(t.refs, Ref{ID: id, Ptr: ptr})
}

// Find performs the linear scan the injector is built on, from the newest
// entry back: the most recently published entry for id wins if id was
// republished (it never
// is in normal operation, but Find stays well-defined either way).
func (t *Table) Find(id registry.TypeID) (unsafe.Pointer, bool) {
	for i := len(t.refs) - 1; i >= 0; i-- {
		if t.refs[i].ID == id {
			return t.refs[i].Ptr, true
		}
	}
	return nil, false
}

// Len returns the number of published entries.
func (t *Table) Len() int {
	return len(t.refs)
}

// Cap returns the reserved capacity (instance_count + 2).
func (t *Table) Cap() int {
	return cap(t.refs)
}
