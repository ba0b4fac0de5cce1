package reftable

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diwire/diwire/internal/registry"
)

func TestPublishAndFind(t *testing.T) {
	table := New(3)
	var x, y int
	table.Publish(registry.TypeID(2), unsafe.Pointer(&x))
	table.Publish(registry.TypeID(3), unsafe.Pointer(&y))

	ptr, ok := table.Find(registry.TypeID(3))
	require.True(t, ok)
	assert.Equal(t, unsafe.Pointer(&y), ptr)

	_, ok = table.Find(registry.TypeID(99))
	assert.False(t, ok)
}

func TestFindMostRecentWins(t *testing.T) {
	table := New(2)
	var x, y int
	table.Publish(registry.TypeID(5), unsafe.Pointer(&x))
	table.Publish(registry.TypeID(5), unsafe.Pointer(&y))

	ptr, ok := table.Find(registry.TypeID(5))
	require.True(t, ok)
	assert.Equal(t, unsafe.Pointer(&y), ptr)
}

func TestPublishBeyondCapacityPanics(t *testing.T) {
	table := New(1)
	var x, y int
	table.Publish(registry.TypeID(1), unsafe.Pointer(&x))
	assert.Panics(t, func() {
		table.Publish(registry.TypeID(2), unsafe.Pointer(&y))
	})
}

func TestLenAndCap(t *testing.T) {
	table := New(4)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, 4, table.Cap())

	var x int
	table.Publish(registry.TypeID(1), unsafe.Pointer(&x))
	assert.Equal(t, 1, table.Len())
}
