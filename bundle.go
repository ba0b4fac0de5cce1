package diwire

import (
	"fmt"
	"reflect"

	"github.com/diwire/diwire/internal/reflection"
	"github.com/diwire/diwire/internal/registry"
	"github.com/diwire/diwire/internal/resolve"
)

// Bundle is the mutable collection a module's Configure hook and any
// registered compile hook mutate. It accumulates Deps
// across every module in the build before the resolver and scheduler ever
// run; nothing here is injectable until Build finishes.
type Bundle struct {
	options  Options
	registry *registry.Registry
	analyzer *reflection.Analyzer

	byBase map[reflect.Type]*dep
	deps   []*dep

	compileHooks []func(*Bundle) error
	initHooks    []*hook
	deinitHooks  []*hook

	currentModule string
}

func newBundle(opts Options, reg *registry.Registry) *Bundle {
	return &Bundle{
		options:  opts,
		registry: reg,
		analyzer: reflection.NewAnalyzer(),
		byBase:   make(map[reflect.Type]*dep),
	}
}

func (b *Bundle) register(d *dep) {
	d.index = len(b.deps)
	b.deps = append(b.deps, d)
	b.byBase[d.base] = d
}

// Add registers a service with an explicit provider strategy. Call
// through the package-level generic Add[T] helper
// instead of this method directly.
func (b *Bundle) Add(t reflect.Type, how Provider) error {
	base := registry.Base(t)
	if existing, ok := b.byBase[base]; ok {
		if existing.state == stateInstance {
			return &DuplicateServiceError{Type: base, FirstModule: existing.moduleName, SecondModule: b.currentModule}
		}
		existing.state = stateInstance
		existing.declaredType = t
		existing.moduleName = b.currentModule
		return nil
	}
	b.register(&dep{
		declaredType: t,
		base:         base,
		provider:     how,
		state:        stateInstance,
		moduleName:   b.currentModule,
	})
	return nil
}

// AddOverride supersedes the provider for base(T), legal before or after
// the corresponding instance is seen.
func (b *Bundle) AddOverride(t reflect.Type, how Provider) error {
	base := registry.Base(t)
	if existing, ok := b.byBase[base]; ok {
		existing.provider = how
		return nil
	}
	b.register(&dep{
		declaredType: t,
		base:         base,
		provider:     how,
		state:        stateOverride,
	})
	return nil
}

// AddMock is AddOverride gated on Options.AllowMocks.
func (b *Bundle) AddMock(t reflect.Type, how Provider) error {
	if !b.options.AllowMocks {
		return &MockOutsideTestsError{Type: registry.Base(t)}
	}
	return b.AddOverride(t, how)
}

// AddFieldRef exposes &owner.field as an injectable pointer, valid only
// once owner is initialized.
func (b *Bundle) AddFieldRef(owner reflect.Type, field string) error {
	ownerBase := registry.Base(owner)
	sf, ok := ownerBase.FieldByName(field)
	if !ok {
		return &ValidationError{Message: fmt.Sprintf("%s has no field %q", FormatType(ownerBase), field)}
	}
	fieldBase := registry.Base(sf.Type)
	if existing, ok := b.byBase[fieldBase]; ok {
		return &DuplicateServiceError{Type: fieldBase, FirstModule: existing.moduleName, SecondModule: b.currentModule}
	}
	b.register(&dep{
		declaredType: sf.Type,
		base:         fieldBase,
		state:        stateInstance,
		provider:     resolve.FieldRef(ownerBase, field),
		isFieldRef:   true,
		refOwner:     ownerBase,
		refField:     field,
		moduleName:   b.currentModule,
	})
	return nil
}

// AddCompileHook registers fn to run after every module has been collected
// but before the resolver runs. fn may mutate b further.
func (b *Bundle) AddCompileHook(fn func(*Bundle) error) {
	b.compileHooks = append(b.compileHooks, fn)
}

// AddInitHook registers a runtime callback that fires once its parameter
// types are all ready.
func (b *Bundle) AddInitHook(fn any) error {
	h, err := newHook(len(b.initHooks), hookInit, fn)
	if err != nil {
		return err
	}
	b.initHooks = append(b.initHooks, h)
	return nil
}

// AddDeinitHook registers a runtime callback that fires during teardown,
// interleaved with Dep deinits in reverse op order.
func (b *Bundle) AddDeinitHook(fn any) error {
	h, err := newHook(len(b.deinitHooks), hookDeinit, fn)
	if err != nil {
		return err
	}
	b.deinitHooks = append(b.deinitHooks, h)
	return nil
}

// collectModule emits one Dep for the module aggregate itself and one per
// exported field, applying the add/add_override/add_mock insert semantics
// and the "Interface" sub-field convention.
func (b *Bundle) collectModule(moduleIndex int, mv reflect.Value, moduleName string) error {
	mt := mv.Type()
	b.currentModule = moduleName

	if existing, ok := b.byBase[mt]; ok {
		return &DuplicateServiceError{Type: mt, FirstModule: existing.moduleName, SecondModule: moduleName}
	}
	b.register(&dep{
		declaredType: mt,
		base:         mt,
		state:        stateInstance,
		provider:     resolve.Value(mv),
		moduleName:   moduleName,
		isModule:     true,
		moduleValue:  mv,
		ownedByModule: true,
		moduleBlock:  moduleIndex,
	})

	for i := 0; i < mt.NumField(); i++ {
		sf := mt.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		fv := mv.Field(i)
		ft := sf.Type
		base := registry.Base(ft)

		how := resolve.Auto()
		if !fv.IsZero() {
			how = resolve.Value(fv)
		}

		if existing, ok := b.byBase[base]; ok {
			if existing.state == stateInstance {
				return &DuplicateServiceError{Type: base, FirstModule: existing.moduleName, SecondModule: moduleName}
			}
			existing.state = stateInstance
			existing.declaredType = ft
			existing.moduleName = moduleName
			existing.fieldName = sf.Name
			existing.ownedByModule = true
			existing.moduleBlock = moduleIndex
			existing.fieldOffset = sf.Offset
			existing.fieldIsPointer = ft.Kind() == reflect.Pointer
		} else {
			b.register(&dep{
				declaredType:  ft,
				base:          base,
				state:         stateInstance,
				provider:      how,
				moduleName:    moduleName,
				fieldName:     sf.Name,
				ownedByModule:  true,
				moduleBlock:    moduleIndex,
				fieldOffset:    sf.Offset,
				fieldIsPointer: ft.Kind() == reflect.Pointer,
			})
		}

		if _, ok := reflection.InterfaceField(base); ok {
			if err := b.AddFieldRef(ft, "Interface"); err != nil {
				return err
			}
		}
	}
	return nil
}

// finalize drops any override that was never paired with an instance
// (tolerated by default; a build error under
// Options.Strict) and reassigns sequential indices to the remaining Deps
// so mask bit positions have no gaps.
func (b *Bundle) finalize() ([]*dep, error) {
	var unresolved []reflect.Type
	final := make([]*dep, 0, len(b.deps))
	for _, d := range b.deps {
		if d.state == stateOverride {
			unresolved = append(unresolved, d.base)
			delete(b.byBase, d.base)
			d.index = -1
			continue
		}
		final = append(final, d)
	}
	if b.options.Strict && len(unresolved) > 0 {
		return nil, &UnresolvedOverrideError{Type: unresolved[0]}
	}
	for i, d := range final {
		d.index = i
	}
	return final, nil
}

// Add registers a service of type T with an explicit provider. Pass a
// pointer type to register a service looked up by pointer (the common
// case); base-type canonicalization strips one level automatically.
func Add[T any](b *Bundle, how Provider) error {
	return b.Add(reflect.TypeOf((*T)(nil)).Elem(), how)
}

// AddOverride supersedes T's provider.
func AddOverride[T any](b *Bundle, how Provider) error {
	return b.AddOverride(reflect.TypeOf((*T)(nil)).Elem(), how)
}

// AddMock is AddOverride gated on Options.AllowMocks.
func AddMock[T any](b *Bundle, how Provider) error {
	return b.AddMock(reflect.TypeOf((*T)(nil)).Elem(), how)
}

// AddFieldRef exposes &owner.field as an injectable pointer, where Owner is
// the struct type and field names one of its exported fields.
func AddFieldRef[Owner any](b *Bundle, field string) error {
	return b.AddFieldRef(reflect.TypeOf((*Owner)(nil)).Elem(), field)
}
