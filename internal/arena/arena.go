// Package arena implements the container's single contiguous storage
// region. Every service instance lives at a fixed byte offset inside one
// slab for the lifetime of the container; instances are placed with
// reflect.NewAt rather than individually heap-allocated, which is what lets
// the executor hand out stable *T pointers that are provably inside the
// region (spec's alignment and single-storage-region invariants).
package arena

import (
	"reflect"
	"unsafe"
)

// Layout accumulates byte offsets for a set of types before any storage is
// allocated. Call Reserve for every block the build needs, in any order,
// then Build to get the backing slab.
type Layout struct {
	size  uintptr
	align uintptr
}

// NewLayout returns an empty Layout.
func NewLayout() *Layout {
	return &Layout{align: 1}
}

// Reserve allocates size bytes aligned to align within the layout and
// returns the byte offset assigned to the block.
func (l *Layout) Reserve(size, align uintptr) uintptr {
	if align == 0 {
		align = 1
	}
	if align > l.align {
		l.align = align
	}
	offset := alignUp(l.size, align)
	l.size = offset + size
	return offset
}

func alignUp(n, align uintptr) uintptr {
	if align <= 1 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}

// Arena is the realized storage region: a single byte slab plus the
// alignment it was built for.
type Arena struct {
	slab  []byte
	align uintptr
}

// Build allocates the backing slab for a completed Layout. The slab is
// over-allocated by align-1 bytes and the usable region begins at the first
// aligned address within it, so every Reserve-d offset lands on a correctly
// aligned real address regardless of where the Go runtime placed the slice.
func (l *Layout) Build() *Arena {
	size := l.size
	if size == 0 {
		// A slab of length 0 has no addressable byte 0, which At/ValueAt
		// need even when every Dep is a zero-size type (e.g. an empty
		// module). Reserve one unused byte so indexing always succeeds.
		size = 1
	}
	align := l.align
	if align < 1 {
		align = 1
	}
	raw := make([]byte, size+align)
	base := uintptr(unsafe.Pointer(&raw[0]))
	pad := alignUp(base, align) - base
	return &Arena{slab: raw[pad : pad+size], align: align}
}

// Len returns the number of usable bytes in the region.
func (a *Arena) Len() int {
	return len(a.slab)
}

// Base returns the address of the first usable byte, for containment
// checks (Testable Property 3).
func (a *Arena) Base() uintptr {
	if len(a.slab) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&a.slab[0]))
}

// Contains reports whether ptr lies within [Base, Base+Len).
func (a *Arena) Contains(ptr unsafe.Pointer) bool {
	p := uintptr(ptr)
	base := a.Base()
	return p >= base && p < base+uintptr(len(a.slab))
}

// At places a value of type t at offset and returns the pointer to it. The
// memory is zeroed until something writes through the returned pointer.
func (a *Arena) At(offset uintptr, t reflect.Type) unsafe.Pointer {
	return unsafe.Pointer(&a.slab[offset])
}

// ValueAt returns a settable reflect.Value of type t backed by the slab at
// offset, via reflect.NewAt.
func (a *Arena) ValueAt(offset uintptr, t reflect.Type) reflect.Value {
	return reflect.NewAt(t, a.At(offset, t)).Elem()
}
