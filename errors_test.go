package diwire_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diwire/diwire"
	"github.com/diwire/diwire/internal/testutil"
)

func TestFormatTypeVariants(t *testing.T) {
	tests := []struct {
		name     string
		typ      reflect.Type
		expected string
	}{
		{"named struct", reflect.TypeOf(testutil.Greeter{}), "testutil.Greeter"},
		{"pointer", reflect.TypeOf(&testutil.Greeter{}), "*testutil.Greeter"},
		{"builtin int", reflect.TypeOf(0), "int"},
		{"string", reflect.TypeOf(""), "string"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, diwire.FormatType(tt.typ))
		})
	}
}

func TestFormatTypeNil(t *testing.T) {
	assert.Equal(t, "<nil>", diwire.FormatType(nil))
}

func TestSentinelErrorMessages(t *testing.T) {
	assert.Equal(t, "diwire: container is not ready", diwire.ErrNotReady.Error())
	assert.Equal(t, "diwire: container is closed", diwire.ErrClosed.Error())
}

func TestDuplicateServiceErrorMessage(t *testing.T) {
	err := &diwire.DuplicateServiceError{
		Type:         reflect.TypeOf(testutil.Greeter{}),
		FirstModule:  "A",
		SecondModule: "B",
	}
	assert.Contains(t, err.Error(), "A")
	assert.Contains(t, err.Error(), "B")
	assert.Contains(t, err.Error(), "add_override")
}
