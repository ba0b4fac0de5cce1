package diwire

import "reflect"

// hookKind distinguishes the two runtime hook flavors: init and deinit.
type hookKind int

const (
	hookInit hookKind = iota
	hookDeinit
)

// hook is a runtime callback registered via Bundle.AddInitHook or
// AddDeinitHook. Its parameter types are resolved through the injector when
// its mask is satisfied, exactly like a factory's parameters.
type hook struct {
	index int
	kind  hookKind
	fn    reflect.Value
}

func newHook(index int, kind hookKind, fn any) (*hook, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, &ValidationError{Message: "hook must be a function"}
	}
	return &hook{index: index, kind: kind, fn: v}, nil
}

func (h *hook) paramTypes() []reflect.Type {
	t := h.fn.Type()
	out := make([]reflect.Type, t.NumIn())
	for i := range out {
		out[i] = t.In(i)
	}
	return out
}

// ValidationError reports a malformed registration call (a field ref naming
// a field its owner lacks, a hook that isn't a function, and similar
// programmer errors caught
// before Build attempts to use the value).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "diwire: " + e.Message
}
