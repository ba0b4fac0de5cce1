package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddAndHas(t *testing.T) {
	s := New(10)
	s.Add(0)
	s.Add(9)
	assert.True(t, s.Has(0))
	assert.True(t, s.Has(9))
	assert.False(t, s.Has(1))
}

func TestAddAcrossWordBoundary(t *testing.T) {
	s := New(200)
	s.Add(63)
	s.Add(64)
	s.Add(128)
	assert.True(t, s.Has(63))
	assert.True(t, s.Has(64))
	assert.True(t, s.Has(128))
	assert.False(t, s.Has(65))
}

func TestHasOutOfRangeIsFalse(t *testing.T) {
	s := New(4)
	assert.False(t, s.Has(500))
}

func TestSubsetOf(t *testing.T) {
	ready := New(10)
	ready.Add(1)
	ready.Add(2)

	need := New(10)
	need.Add(1)
	assert.True(t, need.SubsetOf(ready))

	need.Add(5)
	assert.False(t, need.SubsetOf(ready))
}

func TestSubsetOfDifferentWidths(t *testing.T) {
	ready := New(4) // one word
	ready.Add(0)

	need := New(200) // several words, all but the first empty
	need.Add(0)
	assert.True(t, need.SubsetOf(ready))

	need.Add(128)
	assert.False(t, need.SubsetOf(ready))
}

func TestUnion(t *testing.T) {
	a := New(10)
	a.Add(1)
	b := New(10)
	b.Add(2)

	u := a.Union(b)
	assert.True(t, u.Has(1))
	assert.True(t, u.Has(2))
	assert.False(t, u.Has(3))
}

func TestBits(t *testing.T) {
	s := New(200)
	s.Add(3)
	s.Add(64)
	s.Add(129)
	assert.Equal(t, []int{3, 64, 129}, s.Bits())
}

func TestEmpty(t *testing.T) {
	s := New(10)
	assert.True(t, s.Empty())
	s.Add(4)
	assert.False(t, s.Empty())
}
