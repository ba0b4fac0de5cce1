package diwire

import (
	"reflect"

	"github.com/diwire/diwire/internal/resolve"
)

// Provider is the strategy used to initialize a service.
// Build one with Auto, Value, Factory, Initializer, Autowire, or
// UseInitMethod; its fields are unexported so these constructors are the
// only way to produce one.
type Provider = resolve.Provider

// Auto lets the resolver choose: an Init(*T) (...) error method on the
// service's base type makes it an initializer, otherwise a struct type is
// autowired. This is the default for any module field left
// at its zero value.
func Auto() Provider { return resolve.Auto() }

// Value copies v into the instance with no further resolution.
func Value(v any) Provider { return resolve.Value(reflect.ValueOf(v)) }

// Factory assigns the instance from fn's return value, resolving fn's
// parameters through the injector. fn must return either T or (T, error).
func Factory(fn any) Provider {
	p, err := resolve.Factory(reflect.ValueOf(fn))
	if err != nil {
		panic(err)
	}
	return p
}

// Initializer calls fn(&instance, deps...); fn's first parameter must be a
// pointer to the service's base type and the rest are resolved normally.
func Initializer(fn any) Provider {
	p, err := resolve.Initializer(reflect.ValueOf(fn))
	if err != nil {
		panic(err)
	}
	return p
}

// Autowire fills each field of a struct service from the injector, leaving
// a field at its existing value when no Dep provides that field's type.
func Autowire() Provider { return resolve.Autowire() }

// UseInitMethod requires base(T) to expose its own Init method, erroring at
// Build time rather than falling back to autowire, unlike Auto's softer
// fallback.
func UseInitMethod() Provider { return resolve.InitMethod() }
