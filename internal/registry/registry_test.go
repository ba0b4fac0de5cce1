package registry

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type containerStub struct{}
type allocatorStub struct{}
type widget struct{ N int }

func TestBaseStripsOnePointerLevel(t *testing.T) {
	ptrType := reflect.TypeOf(&widget{})
	assert.Equal(t, reflect.TypeOf(widget{}), Base(ptrType))
	assert.Equal(t, reflect.TypeOf(widget{}), Base(reflect.TypeOf(widget{})))
}

func TestBuiltinsReservedAtConstruction(t *testing.T) {
	r := New(reflect.TypeOf(containerStub{}), reflect.TypeOf(allocatorStub{}))

	id, ok := r.Lookup(reflect.TypeOf(containerStub{}))
	require.True(t, ok)
	assert.Equal(t, ContainerTypeID, id)
	assert.True(t, IsBuiltin(id))

	id, ok = r.Lookup(reflect.TypeOf(&allocatorStub{}))
	require.True(t, ok)
	assert.Equal(t, AllocatorTypeID, id)
}

func TestIDForAssignsStableSequentialIDs(t *testing.T) {
	r := New(reflect.TypeOf(containerStub{}), reflect.TypeOf(allocatorStub{}))

	id1 := r.IDFor(reflect.TypeOf(widget{}))
	id2 := r.IDFor(reflect.TypeOf(&widget{})) // same base type, same id
	assert.Equal(t, id1, id2)
	assert.False(t, IsBuiltin(id1))

	type other struct{}
	id3 := r.IDFor(reflect.TypeOf(other{}))
	assert.NotEqual(t, id1, id3)
}

func TestLookupUnknownType(t *testing.T) {
	r := New(reflect.TypeOf(containerStub{}), reflect.TypeOf(allocatorStub{}))
	_, ok := r.Lookup(reflect.TypeOf(widget{}))
	assert.False(t, ok)
}

func TestTypeOfRoundTrips(t *testing.T) {
	r := New(reflect.TypeOf(containerStub{}), reflect.TypeOf(allocatorStub{}))
	id := r.IDFor(reflect.TypeOf(widget{}))
	assert.Equal(t, reflect.TypeOf(widget{}), r.TypeOf(id))
}

func TestLen(t *testing.T) {
	r := New(reflect.TypeOf(containerStub{}), reflect.TypeOf(allocatorStub{}))
	assert.Equal(t, 2, r.Len())
	r.IDFor(reflect.TypeOf(widget{}))
	assert.Equal(t, 3, r.Len())
}
