package arena

import (
	"reflect"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	A int64
	B byte
}

func TestLayoutReserveAssignsDistinctOffsets(t *testing.T) {
	l := NewLayout()
	off1 := l.Reserve(8, 8)
	off2 := l.Reserve(8, 8)
	assert.Equal(t, uintptr(0), off1)
	assert.Equal(t, uintptr(8), off2)
}

func TestLayoutReserveAligns(t *testing.T) {
	l := NewLayout()
	l.Reserve(1, 1) // offset 0, pushes size to 1
	off := l.Reserve(8, 8)
	assert.Equal(t, uintptr(8), off, "the 8-byte block must start on an 8-byte boundary")
}

func TestArenaAtIsWritableAndStable(t *testing.T) {
	l := NewLayout()
	off := l.Reserve(reflect.TypeOf(widget{}).Size(), uintptr(reflect.TypeOf(widget{}).Align()))
	a := l.Build()

	v := a.ValueAt(off, reflect.TypeOf(widget{}))
	v.Set(reflect.ValueOf(widget{A: 42, B: 7}))

	again := a.ValueAt(off, reflect.TypeOf(widget{})).Interface().(widget)
	assert.Equal(t, widget{A: 42, B: 7}, again)
}

func TestArenaContains(t *testing.T) {
	l := NewLayout()
	off := l.Reserve(8, 8)
	a := l.Build()

	ptr := a.At(off, reflect.TypeOf(int64(0)))
	assert.True(t, a.Contains(ptr))

	var outside int
	assert.False(t, a.Contains(unsafe.Pointer(&outside)))
}

func TestArenaBuildWithZeroSize(t *testing.T) {
	l := NewLayout()
	a := l.Build()
	require.NotPanics(t, func() {
		a.At(0, reflect.TypeOf(struct{}{}))
	})
}

func TestArenaLen(t *testing.T) {
	l := NewLayout()
	l.Reserve(8, 8)
	l.Reserve(4, 4)
	a := l.Build()
	assert.Equal(t, 12, a.Len())
}
