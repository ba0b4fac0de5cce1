package diwire

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ========================================
// Runtime sentinel errors
// ========================================

var (
	// ErrNotReady is returned by Injector operations attempted before the
	// container reached the Ready state, or after it left it.
	ErrNotReady = errors.New("diwire: container is not ready")

	// ErrClosed is returned by operations attempted on a container already
	// in the Destroying or Destroyed state.
	ErrClosed = errors.New("diwire: container is closed")
)

// ========================================
// Compile-time diagnostics (raised from Build/BuildWithOptions)
// ========================================

// BuildError wraps every diagnostic Build can return, naming the phase in
// which planning failed and the container instance id it failed for.
type BuildError struct {
	ContainerID string
	Phase       string
	Cause       error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("diwire: build failed during %s: %v", e.Phase, e.Cause)
}

func (e *BuildError) Unwrap() error { return e.Cause }

// DuplicateServiceError: two modules contributed an instance for the same
// base type without one of them being an override.
type DuplicateServiceError struct {
	Type        reflect.Type
	FirstModule string
	SecondModule string
}

func (e *DuplicateServiceError) Error() string {
	return fmt.Sprintf("diwire: %s registered by both %q and %q; use add_override to replace it",
		FormatType(e.Type), e.FirstModule, e.SecondModule)
}

// UnresolvedOverrideError: an add_override/add_mock was never paired with a
// prior instance of the same base type. Only raised when Options.Strict is
// set -- unused overrides are tolerated by default.
type UnresolvedOverrideError struct {
	Type reflect.Type
}

func (e *UnresolvedOverrideError) Error() string {
	return fmt.Sprintf("diwire: override for %s was never applied to any instance (strict mode)", FormatType(e.Type))
}

// CycleError names the service types that could not be scheduled because
// they form (or depend on) a cycle.
type CycleError struct {
	Types []reflect.Type
}

func (e *CycleError) Error() string {
	names := make([]string, len(e.Types))
	for i, t := range e.Types {
		names[i] = FormatType(t)
	}
	return fmt.Sprintf("diwire: cycle detected among: %s", strings.Join(names, ", "))
}

// AutoNonStructError: an auto-resolved Dep had no Init method and was not a
// struct type, so autowiring is not possible either.
type AutoNonStructError struct {
	Type reflect.Type
}

func (e *AutoNonStructError) Error() string {
	return fmt.Sprintf("diwire: %s has no Init method and is not a struct; add an explicit provider", FormatType(e.Type))
}

// InitMethodRequiredError: a provider explicitly requested the initializer
// strategy but base(T) has no usable Init method.
type InitMethodRequiredError struct {
	Type reflect.Type
}

func (e *InitMethodRequiredError) Error() string {
	return fmt.Sprintf("diwire: %s has no Init(*T) (...) error method", FormatType(e.Type))
}

// MockOutsideTestsError: add_mock was called without Options.AllowMocks.
type MockOutsideTestsError struct {
	Type reflect.Type
}

func (e *MockOutsideTestsError) Error() string {
	return fmt.Sprintf("diwire: add_mock(%s, ...) requires BuildWithOptions(Options{AllowMocks: true}, ...)", FormatType(e.Type))
}

// HookDependencyError: an init or deinit hook depends on a type no
// module ever declared, so it can never become ready.
type HookDependencyError struct {
	ParamType reflect.Type
}

func (e *HookDependencyError) Error() string {
	return fmt.Sprintf("diwire: hook parameter %s is not provided by any module", FormatType(e.ParamType))
}

// UnknownDependencyError reports a factory, initializer, autowired field,
// or hook parameter whose type no module declared and which is not one of
// the two built-ins (the container handle and the allocator; *Injector is
// not a built-in and is reported here too). Not one of the well-known names, but
// required for soundness: a mask bit must name a real Dep or a built-in.
type UnknownDependencyError struct {
	Type reflect.Type
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("diwire: %s is not provided by any module", FormatType(e.Type))
}

// ========================================
// Runtime errors (executor + injector)
// ========================================

// MissingDependencyError is returned by Get/Call when a requested type has
// no published reference.
type MissingDependencyError struct {
	Type reflect.Type
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("diwire: no service registered for %s", FormatType(e.Type))
}

// OpError wraps a failure from a specific operation in the plan, identified
// by its index, so callers can see which op failed during Build.
type OpError struct {
	OpIndex int
	Type    reflect.Type
	Cause   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("diwire: op #%d (%s) failed: %v", e.OpIndex, FormatType(e.Type), e.Cause)
}

func (e *OpError) Unwrap() error { return e.Cause }

// ========================================
// Type formatting
// ========================================

// FormatType renders a reflect.Type the way diwire's diagnostics do:
// pointer and slice/map wrapping spelled out, named types by their short
// name.
func FormatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind() {
	case reflect.Pointer:
		return "*" + FormatType(t.Elem())
	case reflect.Slice:
		return "[]" + FormatType(t.Elem())
	case reflect.Map:
		return fmt.Sprintf("map[%s]%s", FormatType(t.Key()), FormatType(t.Elem()))
	default:
		if t.Name() == "" {
			return t.String()
		}
		if t.PkgPath() == "" {
			return t.Name()
		}
		return t.String()
	}
}
