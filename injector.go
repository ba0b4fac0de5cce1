package diwire

import (
	"reflect"

	"github.com/diwire/diwire/internal/registry"
)

// Injector is the read-only view onto a Ready Container's published
// references. Obtain one from Container.Injector; every
// method is safe to call from multiple goroutines.
type Injector struct {
	c *Container
}

// Injector returns the Container's Injector. Valid for the Container's
// entire lifetime, though Get/Find/Call only succeed while it is Ready.
func (c *Container) Injector() *Injector {
	return &Injector{c: c}
}

func (inj *Injector) ready() bool {
	inj.c.mu.Lock()
	defer inj.c.mu.Unlock()
	return inj.c.st == stateReady
}

// Get resolves a single service by its static type T.
// Pass T as the pointer type to fetch the service's address, or as the bare
// struct type to fetch a copy of its current contents.
func Get[T any](inj *Injector) (T, error) {
	var zero T
	if !inj.ready() {
		return zero, ErrNotReady
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	base := registry.Base(t)
	id, ok := inj.c.reg.Lookup(base)
	if !ok {
		return zero, &MissingDependencyError{Type: base}
	}
	ptr, ok := inj.c.table.Find(id)
	if !ok {
		return zero, &MissingDependencyError{Type: base}
	}
	v := buildArg(t, base, ptr)
	return v.Interface().(T), nil
}

// Find is Get without the error: ok is false if the container isn't Ready or
// no service of type T was ever published.
func Find[T any](inj *Injector) (T, bool) {
	v, err := Get[T](inj)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// Call invokes fn with each parameter resolved from the container by type;
// a parameter whose type has no published service is instead filled, in
// order, from extraArgs. Returns fn's results boxed as
// any, in order.
func (inj *Injector) Call(fn any, extraArgs ...any) ([]any, error) {
	if !inj.ready() {
		return nil, ErrNotReady
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, &ValidationError{Message: "Call target must be a function"}
	}
	ft := v.Type()
	args := make([]reflect.Value, ft.NumIn())
	extraIdx := 0
	for i := 0; i < ft.NumIn(); i++ {
		pt := ft.In(i)
		base := registry.Base(pt)
		if id, ok := inj.c.reg.Lookup(base); ok {
			if ptr, ok := inj.c.table.Find(id); ok {
				args[i] = buildArg(pt, base, ptr)
				continue
			}
		}
		if extraIdx < len(extraArgs) {
			args[i] = reflect.ValueOf(extraArgs[extraIdx])
			extraIdx++
			continue
		}
		return nil, &MissingDependencyError{Type: base}
	}
	out := v.Call(args)
	result := make([]any, len(out))
	for i, o := range out {
		result[i] = o.Interface()
	}
	return result, nil
}

// Call0 is Call with no extra arguments, for the common case of a function
// whose parameters are all satisfied by the container.
func (inj *Injector) Call0(fn any) ([]any, error) {
	return inj.Call(fn)
}
