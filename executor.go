package diwire

import (
	"reflect"
	"unsafe"

	"github.com/diwire/diwire/internal/graph"
	"github.com/diwire/diwire/internal/registry"
	"github.com/diwire/diwire/internal/resolve"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// execute runs the scheduled ops in order, publishing each Dep's pointer the
// moment its provider has run. A failing op unwinds every op
// that already succeeded, in reverse, before returning the original error.
func (c *Container) execute() error {
	for i, op := range c.ops {
		var err error
		switch op.Kind {
		case graph.KindDep:
			d := c.deps[op.Index]
			err = c.runDep(d)
			if err == nil && c.onResolved != nil {
				c.onResolved(d.declaredType)
			}
			if err != nil && c.onError != nil {
				c.onError(d.declaredType, err)
			}
		case graph.KindHookInit:
			err = c.runInitHook(c.initHooks[op.Index])
		case graph.KindHookDeinit:
			// runs only during teardown, not on the way up
		}
		if err != nil {
			c.unwind(i)
			return &OpError{OpIndex: i, Type: opType(c, op), Cause: err}
		}
		c.pc = i + 1
	}
	return nil
}

func opType(c *Container, op graph.Op) reflect.Type {
	if op.Kind == graph.KindDep {
		return c.deps[op.Index].declaredType
	}
	return nil
}

// runDep runs whichever provider strategy d settled on and publishes its
// pointer. Module Deps and field_refs need no provider call at all: a
// module's bytes were already seeded before execute ran, and a field_ref's
// pointer is computed from its already-published owner.
func (c *Container) runDep(d *dep) error {
	switch {
	case d.isModule:
		ptr := c.arena.At(d.offset, d.moduleValue.Type())
		c.table.Publish(d.typeID, ptr)
		return nil
	case d.isFieldRef:
		ownerPtr, ok := c.table.Find(d.refOwnerDep.typeID)
		if !ok {
			return &MissingDependencyError{Type: d.refOwner}
		}
		ptr := unsafe.Pointer(uintptr(ownerPtr) + d.refFieldOffset)
		c.table.Publish(d.typeID, ptr)
		return nil
	}

	switch d.provider.Kind() {
	case resolve.KindValue:
		v := d.provider.Value()
		if v.Kind() == reflect.Pointer {
			v = v.Elem()
		}
		c.arena.ValueAt(d.offset, d.base).Set(v)

	case resolve.KindFactory:
		args, err := c.resolveArgs(resolve.ParamTypes(d.provider))
		if err != nil {
			return err
		}
		out := d.provider.Func().Call(args)
		result, err := splitFactoryResult(out)
		if err != nil {
			return err
		}
		assignInto(c.arena.ValueAt(d.offset, d.base), result)

	case resolve.KindInitializer:
		recv := c.arena.ValueAt(d.offset, d.base).Addr()
		args, err := c.resolveArgs(resolve.ParamTypes(d.provider))
		if err != nil {
			return err
		}
		out := d.provider.Func().Call(append([]reflect.Value{recv}, args...))
		if err := lastError(out); err != nil {
			return err
		}

	case resolve.KindAutowire:
		inst := c.arena.ValueAt(d.offset, d.base)
		for i := 0; i < d.base.NumField(); i++ {
			sf := d.base.Field(i)
			if sf.PkgPath != "" {
				continue
			}
			base := registry.Base(sf.Type)
			id, ok := c.reg.Lookup(base)
			if !ok {
				continue
			}
			ptr, ok := c.table.Find(id)
			if !ok {
				continue
			}
			inst.Field(i).Set(buildArg(sf.Type, base, ptr))
		}
	}

	ptr := c.arena.At(d.offset, d.base)
	c.table.Publish(d.typeID, ptr)

	if d.ownedByModule && d.fieldIsPointer {
		// The module's own field is only pointer-sized; it was seeded from
		// whatever the caller's literal held (typically nil) when the
		// module's bytes were copied in. Write the real instance's address
		// into that slot now so reading the field straight off the module
		// value and going through the injector agree.
		slot := (*unsafe.Pointer)(c.arena.At(d.moduleSlotOffset, reflect.PointerTo(d.base)))
		*slot = ptr
	}
	return nil
}

func (c *Container) runInitHook(h *hook) error {
	args, err := c.resolveArgs(h.paramTypes())
	if err != nil {
		return err
	}
	out := h.fn.Call(args)
	return lastError(out)
}

// resolveArgs looks up each type's published pointer (built-ins included,
// since both are published before any op runs) and shapes it to match the
// parameter's declared pointer-vs-value form.
func (c *Container) resolveArgs(types []reflect.Type) ([]reflect.Value, error) {
	args := make([]reflect.Value, len(types))
	for i, t := range types {
		base := registry.Base(t)
		id, ok := c.reg.Lookup(base)
		if !ok {
			return nil, &MissingDependencyError{Type: base}
		}
		ptr, ok := c.table.Find(id)
		if !ok {
			return nil, &MissingDependencyError{Type: base}
		}
		args[i] = buildArg(t, base, ptr)
	}
	return args, nil
}

func buildArg(declared, base reflect.Type, ptr unsafe.Pointer) reflect.Value {
	if declared.Kind() == reflect.Pointer {
		return reflect.NewAt(base, ptr)
	}
	return reflect.NewAt(base, ptr).Elem()
}

func splitFactoryResult(out []reflect.Value) (reflect.Value, error) {
	if len(out) == 2 {
		if err, _ := out[1].Interface().(error); err != nil {
			return reflect.Value{}, err
		}
	}
	return out[0], nil
}

func assignInto(dst, result reflect.Value) {
	rt := result.Type()
	switch {
	case rt == dst.Type():
		dst.Set(result)
	case rt.Kind() == reflect.Pointer && rt.Elem() == dst.Type():
		dst.Set(result.Elem())
	default:
		dst.Set(result.Convert(dst.Type()))
	}
}

func lastError(out []reflect.Value) error {
	if len(out) == 0 {
		return nil
	}
	last := out[len(out)-1]
	if last.Type() != errorType || last.IsNil() {
		return nil
	}
	err, _ := last.Interface().(error)
	return err
}

// unwind tears down every op in [0, upto) in reverse, swallowing any deinit
// failure after logging it: the original build error, not the teardown
// error, is what the caller sees.
func (c *Container) unwind(upto int) {
	for i := upto - 1; i >= 0; i-- {
		op := c.ops[i]
		switch op.Kind {
		case graph.KindDep:
			c.deinitDep(i, c.deps[op.Index])
		case graph.KindHookDeinit:
			c.runDeinitHook(i, c.deinitHooks[op.Index])
		case graph.KindHookInit:
			// no-op in reverse
		}
	}
}

func (c *Container) deinitDep(opIndex int, d *dep) {
	if d.isFieldRef || !d.deinitOK {
		return
	}
	recv := c.arena.ValueAt(d.offset, d.base).Addr()
	args := []reflect.Value{recv}
	if len(d.deinitParamTypes) > 0 {
		more, err := c.resolveArgs(d.deinitParamTypes)
		if err != nil {
			c.logger.Warn("diwire: deinit skipped, dependency unavailable", "op", opIndex, "type", FormatType(d.base), "error", err)
			return
		}
		args = append(args, more...)
	}
	out := d.deinitMethod.Call(args)
	if err := lastError(out); err != nil {
		c.logger.Warn("diwire: deinit failed", "op", opIndex, "type", FormatType(d.base), "error", err)
	}
}

func (c *Container) runDeinitHook(opIndex int, h *hook) {
	args, err := c.resolveArgs(h.paramTypes())
	if err != nil {
		c.logger.Warn("diwire: deinit hook skipped, dependency unavailable", "op", opIndex, "error", err)
		return
	}
	out := h.fn.Call(args)
	if err := lastError(out); err != nil {
		c.logger.Warn("diwire: deinit hook failed", "op", opIndex, "error", err)
	}
}

// Close tears down every service in reverse initialization order, running
// each Dep's Deinit and every deinit hook exactly once. Close
// is idempotent-safe to call from a deferred statement: calling it on an
// already-closed or never-ready Container returns ErrClosed.
func (c *Container) Close() error {
	c.mu.Lock()
	if c.st != stateReady {
		c.mu.Unlock()
		return ErrClosed
	}
	c.st = stateDestroying
	c.mu.Unlock()

	c.unwind(len(c.ops))

	c.mu.Lock()
	c.st = stateDestroyed
	c.mu.Unlock()
	return nil
}
