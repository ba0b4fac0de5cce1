package diwire

import (
	"reflect"

	"github.com/diwire/diwire/internal/arena"
	"github.com/diwire/diwire/internal/graph"
	"github.com/diwire/diwire/internal/mask"
	"github.com/diwire/diwire/internal/reflection"
	"github.com/diwire/diwire/internal/registry"
	"github.com/diwire/diwire/internal/resolve"
)

// resolveProviders turns every pending Auto/InitMethod provider into a
// concrete strategy. Called once finalize has settled which
// Deps survive.
func resolveProviders(a *reflection.Analyzer, deps []*dep) error {
	for _, d := range deps {
		switch d.provider.Kind() {
		case resolve.KindAuto:
			p, err := resolve.ResolveAuto(a, d.base)
			if err != nil {
				return err
			}
			d.provider = p
		case resolve.KindInitMethod:
			p, err := resolve.ResolveInitMethod(a, d.base)
			if err != nil {
				return err
			}
			d.provider = p
		}
	}
	return nil
}

// layoutDeps assigns every Dep a byte offset inside one arena region. A
// module's value-typed field Deps share the module's own block -- storage
// offset = (module base) + (offset of f within M) -- rather than each field
// getting an independent allocation. A pointer-typed module field has no
// room for a base(T) instance in that block (only a pointer's worth of
// bytes), so it gets its own independently reserved block like a
// free-standing Dep; moduleSlotOffset instead records where its pointer
// slot lives inside the module block, for runDep to fix up after the
// instance is built. Deps added outside any module field get their own
// block; field_ref Deps get none.
func layoutDeps(deps []*dep) *arena.Layout {
	layout := arena.NewLayout()
	moduleBlockOffset := make(map[int]uintptr)

	for _, d := range deps {
		if !d.isModule {
			continue
		}
		mt := d.moduleValue.Type()
		off := layout.Reserve(mt.Size(), uintptr(mt.Align()))
		moduleBlockOffset[d.moduleBlock] = off
		d.offset = off
	}
	for _, d := range deps {
		if d.isModule || d.isFieldRef {
			continue
		}
		switch {
		case d.ownedByModule && d.fieldIsPointer:
			d.moduleSlotOffset = moduleBlockOffset[d.moduleBlock] + d.fieldOffset
			d.offset = layout.Reserve(d.base.Size(), uintptr(d.base.Align()))
		case d.ownedByModule:
			d.offset = moduleBlockOffset[d.moduleBlock] + d.fieldOffset
		default:
			d.offset = layout.Reserve(d.base.Size(), uintptr(d.base.Align()))
		}
	}
	return layout
}

// resolveDeinits records which Deps have a Deinit method to run during
// teardown, and its extra parameter types beyond the receiver, if any.
// Only a Dep that was actually constructed by the container -- factory,
// initializer, or init method (which resolves to an initializer) --
// participates; value, autowire, and field_ref Deps are borrowed, not
// owned, and are left alone even if base(T) happens to have a Deinit
// method.
func resolveDeinits(a *reflection.Analyzer, deps []*dep) {
	for _, d := range deps {
		if d.isFieldRef {
			continue
		}
		switch d.provider.Kind() {
		case resolve.KindFactory, resolve.KindInitializer:
		default:
			continue
		}
		m, ok := a.FindDeinit(d.base)
		if !ok {
			continue
		}
		d.deinitOK = true
		d.deinitMethod = m.Func
		if !reflection.IsUnary(m) {
			t := m.Func.Type()
			params := make([]reflect.Type, t.NumIn()-1)
			for i := 1; i < t.NumIn(); i++ {
				params[i-1] = t.In(i)
			}
			d.deinitParamTypes = params
		}
	}
}

// resolveFieldRefs fills in refOwnerDep/refFieldOffset for every field_ref
// Dep, now that every Dep exists in byBase.
func resolveFieldRefs(byBase map[reflect.Type]*dep, deps []*dep) error {
	for _, d := range deps {
		if !d.isFieldRef {
			continue
		}
		owner, ok := byBase[d.refOwner]
		if !ok {
			return &UnknownDependencyError{Type: d.refOwner}
		}
		sf, ok := d.refOwner.FieldByName(d.refField)
		if !ok {
			return &ValidationError{Message: "field_ref target field vanished: " + d.refField}
		}
		d.refOwnerDep = owner
		d.refFieldOffset = sf.Offset
	}
	return nil
}

// isBuiltinBase reports whether t's base type is one of the two reserved
// container built-ins, which are resolved directly rather than occupying a
// Dep slot or a mask bit.
func isBuiltinBase(reg *registry.Registry, base reflect.Type) bool {
	id, ok := reg.Lookup(base)
	return ok && registry.IsBuiltin(id)
}

// computeMasks builds the readiness mask for every Dep and Hook, per the
// provider kind's parameter requirements. Autowire
// silently skips fields with no matching Dep (they keep their zero value);
// every other kind's unresolved parameter is a build error.
func computeMasks(reg *registry.Registry, byBase map[reflect.Type]*dep, deps []*dep, initHooks, deinitHooks []*hook) ([]mask.Set, []graph.HookItem, error) {
	n := len(deps)
	masks := make([]mask.Set, n)

	for _, d := range deps {
		m := mask.New(n)
		switch {
		case d.isFieldRef:
			if d.refOwnerDep != nil && d.refOwnerDep.index >= 0 {
				m.Add(d.refOwnerDep.index)
			}
		case d.isModule:
			// seeded directly from the literal module value, nothing to wait on
		default:
			switch d.provider.Kind() {
			case resolve.KindAutowire:
				for _, sf := range reflection.WalkFields(d.base) {
					if sf.PkgPath != "" {
						continue
					}
					base := registry.Base(sf.Type)
					if isBuiltinBase(reg, base) {
						continue
					}
					if pd, ok := byBase[base]; ok {
						m.Add(pd.index)
					}
				}
			case resolve.KindFactory, resolve.KindInitializer:
				for _, t := range resolve.ParamTypes(d.provider) {
					base := registry.Base(t)
					if isBuiltinBase(reg, base) {
						continue
					}
					pd, ok := byBase[base]
					if !ok {
						return nil, nil, &UnknownDependencyError{Type: base}
					}
					m.Add(pd.index)
				}
			}
		}
		masks[d.index] = m
		d.mask = m
	}

	hookItems := make([]graph.HookItem, 0, len(initHooks)+len(deinitHooks))
	for _, h := range initHooks {
		m, err := hookMask(reg, byBase, n, h)
		if err != nil {
			return nil, nil, err
		}
		hookItems = append(hookItems, graph.HookItem{Kind: graph.KindHookInit, Index: h.index, Mask: m})
	}
	for _, h := range deinitHooks {
		m, err := hookMask(reg, byBase, n, h)
		if err != nil {
			return nil, nil, err
		}
		hookItems = append(hookItems, graph.HookItem{Kind: graph.KindHookDeinit, Index: h.index, Mask: m})
	}
	return masks, hookItems, nil
}

func hookMask(reg *registry.Registry, byBase map[reflect.Type]*dep, n int, h *hook) (mask.Set, error) {
	m := mask.New(n)
	for _, t := range h.paramTypes() {
		base := registry.Base(t)
		if isBuiltinBase(reg, base) {
			continue
		}
		pd, ok := byBase[base]
		if !ok {
			return mask.Set{}, &HookDependencyError{ParamType: base}
		}
		m.Add(pd.index)
	}
	return m, nil
}
