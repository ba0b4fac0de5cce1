package resolve

import (
	"fmt"
	"reflect"

	"github.com/diwire/diwire/internal/reflection"
	"github.com/diwire/diwire/internal/registry"
)

// AutoNonStructError reports that a Dep left as auto resolved to neither an
// initializer method nor a struct type, so there is nothing to autowire.
type AutoNonStructError struct {
	Type reflect.Type
}

func (e *AutoNonStructError) Error() string {
	return fmt.Sprintf("diwire: %s has no Init method and is not a struct; cannot auto-resolve", e.Type)
}

// ResolveAuto turns a KindAuto Provider into a concrete strategy for
// declaredType, per the resolver rules: an Init(*T) method in scope makes
// it an initializer, otherwise a struct type is autowired, otherwise it is
// a compile error.
func ResolveAuto(a *reflection.Analyzer, declaredType reflect.Type) (Provider, error) {
	base := registry.Base(declaredType)
	if m, ok := a.FindInitializer(base); ok {
		return initializerFromMethod(m.Func), nil
	}
	if base.Kind() == reflect.Struct {
		return Autowire(), nil
	}
	return Provider{}, &AutoNonStructError{Type: base}
}

// InitMethodRequiredError reports that a Dep explicitly requested the
// "init" strategy but base(T) has no Init(*T)(...) error method.
type InitMethodRequiredError struct {
	Type reflect.Type
}

func (e *InitMethodRequiredError) Error() string {
	return fmt.Sprintf("diwire: %s has no Init(*T) (...) error method", e.Type)
}

// ResolveInitMethod turns a KindInitMethod Provider into an initializer,
// erroring instead of falling back to autowire when no Init method exists.
func ResolveInitMethod(a *reflection.Analyzer, declaredType reflect.Type) (Provider, error) {
	base := registry.Base(declaredType)
	if m, ok := a.FindInitializer(base); ok {
		return initializerFromMethod(m.Func), nil
	}
	return Provider{}, &InitMethodRequiredError{Type: base}
}

// ParamTypes returns the types the injector must resolve to run this
// provider, in call order. For an initializer, the leading *T receiver
// parameter is excluded (the executor supplies it directly). Value,
// FieldRef, and unresolved Auto providers need nothing resolved here.
func ParamTypes(p Provider) []reflect.Type {
	switch p.kind {
	case KindFactory:
		t := p.fn.Type()
		out := make([]reflect.Type, t.NumIn())
		for i := range out {
			out[i] = t.In(i)
		}
		return out
	case KindInitializer:
		t := p.fn.Type()
		if t.NumIn() <= 1 {
			return nil
		}
		out := make([]reflect.Type, t.NumIn()-1)
		for i := 1; i < t.NumIn(); i++ {
			out[i-1] = t.In(i)
		}
		return out
	default:
		return nil
	}
}
