// Package reflection finds the method and field shapes the resolver and
// teardown policy key off: Init/Deinit methods on a service's base type,
// and the "Interface" sub-field convention used for intrusive polymorphism.
// Lookups are cached by reflect.Type, the same caching idiom the container
// library uses for its constructor analysis.
package reflection

import (
	"reflect"
	"sync"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

type methodLookup struct {
	method reflect.Method
	ok     bool
}

// Analyzer caches method and field shape lookups across a single build.
// Create one with NewAnalyzer; the zero value has no cache maps and panics
// on first lookup.
type Analyzer struct {
	mu       sync.Mutex
	initer   map[reflect.Type]methodLookup
	deiniter map[reflect.Type]methodLookup
}

// NewAnalyzer returns a ready-to-use Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		initer:   make(map[reflect.Type]methodLookup),
		deiniter: make(map[reflect.Type]methodLookup),
	}
}

// FindInitializer looks for a pointer-receiver Init method on base whose
// only non-receiver return, if any, is error. This is the realization of
// "an init method with return type void" in a language without type-level
// static methods: the method mutates an already-allocated *T in place and
// reports failure through its return value rather than constructing a new
// T. A "T.init() T" factory form has no Go equivalent reachable without a
// prior instance, so auto-detection stops here; factories are registered
// explicitly (see resolve.Factory).
func (a *Analyzer) FindInitializer(base reflect.Type) (reflect.Method, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if cached, ok := a.initer[base]; ok {
		return cached.method, cached.ok
	}
	m, ok := findUnaryOrErrorMethod(base, "Init")
	a.initer[base] = methodLookup{method: m, ok: ok}
	return m, ok
}

// FindDeinit looks for a Deinit method on base, unary (receiver only) or
// multi-arg (receiver plus further parameters resolved through the
// injector).
func (a *Analyzer) FindDeinit(base reflect.Type) (reflect.Method, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if cached, ok := a.deiniter[base]; ok {
		return cached.method, cached.ok
	}
	ptr := reflect.PointerTo(base)
	m, ok := ptr.MethodByName("Deinit")
	if ok && m.Func.Type().NumOut() > 0 {
		out0 := m.Func.Type().Out(0)
		if m.Func.Type().NumOut() != 1 || out0 != errType {
			m, ok = reflect.Method{}, false
		}
	}
	a.deiniter[base] = methodLookup{method: m, ok: ok}
	return m, ok
}

func findUnaryOrErrorMethod(base reflect.Type, name string) (reflect.Method, bool) {
	ptr := reflect.PointerTo(base)
	m, ok := ptr.MethodByName(name)
	if !ok {
		return reflect.Method{}, false
	}
	numOut := m.Func.Type().NumOut()
	if numOut > 1 {
		return reflect.Method{}, false
	}
	if numOut == 1 && m.Func.Type().Out(0) != errType {
		return reflect.Method{}, false
	}
	return m, true
}

// IsUnary reports whether a method found by FindDeinit takes no parameters
// besides its receiver.
func IsUnary(m reflect.Method) bool {
	return m.Func.Type().NumIn() == 1
}
