// Package resolve chooses and represents the provider strategy for a Dep:
// value, factory, initializer, autowire, or field_ref. Provider is a closed
// sum type -- its fields are unexported, so the only way to build one is
// through the constructors below, mirroring how descriptor.go in the
// container library pins a strategy to one struct field instead of a type
// switch scattered through the codebase.
package resolve

import (
	"fmt"
	"reflect"
)

// Kind identifies which strategy a Provider holds.
type Kind int

const (
	KindAuto Kind = iota
	KindValue
	KindFactory
	KindInitializer
	KindAutowire
	KindFieldRef
	KindInitMethod
)

func (k Kind) String() string {
	switch k {
	case KindAuto:
		return "auto"
	case KindValue:
		return "value"
	case KindFactory:
		return "factory"
	case KindInitializer:
		return "initializer"
	case KindAutowire:
		return "autowire"
	case KindFieldRef:
		return "field_ref"
	case KindInitMethod:
		return "init"
	default:
		return "unknown"
	}
}

// Provider is the resolved (or pending) strategy attached to a Dep.
type Provider struct {
	kind Kind

	value reflect.Value // KindValue

	fn       reflect.Value // KindFactory / KindInitializer: the callable
	isMethod bool          // KindInitializer via a found Init method

	ownerType reflect.Type // KindFieldRef
	fieldName string       // KindFieldRef
}

// Auto defers strategy selection to the resolver.
func Auto() Provider { return Provider{kind: KindAuto} }

// Value copies v into the instance with no further resolution.
func Value(v reflect.Value) Provider { return Provider{kind: KindValue, value: v} }

// Factory assigns instance.* from fn's return value, resolving fn's
// parameters through the injector. fn must be a func with 1 or 2 returns,
// the last of which (if present) is error.
func Factory(fn reflect.Value) (Provider, error) {
	if fn.Kind() != reflect.Func {
		return Provider{}, fmt.Errorf("resolve: factory must be a function, got %s", fn.Kind())
	}
	return Provider{kind: KindFactory, fn: fn}, nil
}

// Initializer calls fn(&instance, deps...); fn's first parameter must be a
// pointer to the service's base type.
func Initializer(fn reflect.Value) (Provider, error) {
	if fn.Kind() != reflect.Func {
		return Provider{}, fmt.Errorf("resolve: initializer must be a function, got %s", fn.Kind())
	}
	if fn.Type().NumIn() < 1 || fn.Type().In(0).Kind() != reflect.Pointer {
		return Provider{}, fmt.Errorf("resolve: initializer's first parameter must be a pointer")
	}
	return Provider{kind: KindInitializer, fn: fn}, nil
}

// initializerFromMethod wraps an unbound *T method found by the resolver
// (Method.Func already has the *T receiver as its first parameter).
func initializerFromMethod(fn reflect.Value) Provider {
	return Provider{kind: KindInitializer, fn: fn, isMethod: true}
}

// InitMethod requests resolution via base(T)'s own Init method, erroring if
// none exists rather than falling back to autowire the way Auto does. This
// is a distinct "init" provider option.
func InitMethod() Provider { return Provider{kind: KindInitMethod} }

// Autowire fills each field of a struct service from the injector,
// defaulting to the field's existing value (usually its zero value) when
// no Dep provides that field's type.
func Autowire() Provider { return Provider{kind: KindAutowire} }

// FieldRef materializes &owner.field as the instance, valid only once owner
// is initialized.
func FieldRef(owner reflect.Type, field string) Provider {
	return Provider{kind: KindFieldRef, ownerType: owner, fieldName: field}
}

func (p Provider) Kind() Kind                { return p.kind }
func (p Provider) Value() reflect.Value      { return p.value }
func (p Provider) Func() reflect.Value       { return p.fn }
func (p Provider) FromMethod() bool          { return p.isMethod }
func (p Provider) FieldRefOwner() reflect.Type { return p.ownerType }
func (p Provider) FieldRefName() string      { return p.fieldName }
