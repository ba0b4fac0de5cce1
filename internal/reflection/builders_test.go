package reflection

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vtable struct{ Greet func() string }

type withInterfaceField struct {
	Interface vtable
	Name      string
}

type withoutInterfaceField struct {
	Name string
}

func TestInterfaceField(t *testing.T) {
	f, ok := InterfaceField(reflect.TypeOf(withInterfaceField{}))
	require.True(t, ok)
	assert.Equal(t, "Interface", f.Name)

	_, ok = InterfaceField(reflect.TypeOf(withoutInterfaceField{}))
	assert.False(t, ok)
}

func TestWalkFieldValues(t *testing.T) {
	v := reflect.ValueOf(withInterfaceField{Name: "svc"})
	fields := WalkFieldValues(v)
	require.Len(t, fields, 2)
	assert.Equal(t, "Interface", fields[0].StructField.Name)
	assert.Equal(t, "Name", fields[1].StructField.Name)
	assert.Equal(t, "svc", fields[1].Value.String())
}

func TestIsZero(t *testing.T) {
	assert.True(t, IsZero(reflect.ValueOf(0)))
	assert.False(t, IsZero(reflect.ValueOf(123)))
}
