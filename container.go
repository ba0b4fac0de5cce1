package diwire

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
	"unsafe"

	"github.com/diwire/diwire/internal/arena"
	"github.com/diwire/diwire/internal/graph"
	"github.com/diwire/diwire/internal/reftable"
	"github.com/diwire/diwire/internal/registry"
	"github.com/diwire/diwire/internal/resolve"

	"github.com/google/uuid"
)

// Allocator is the second container built-in: a handle onto the
// arena a service's Initializer or Factory may ask for to size auxiliary
// buffers against the container's own storage region, rather than reaching
// for the heap directly.
type Allocator struct {
	arena *arena.Arena
}

// Len returns the number of bytes the container's storage region occupies.
func (a *Allocator) Len() int { return a.arena.Len() }

// Contains reports whether ptr lies within the container's storage region
// (Testable Property 3).
func (a *Allocator) Contains(ptr unsafe.Pointer) bool { return a.arena.Contains(ptr) }

// Container is a fully built dependency graph: every service has a fixed
// address for the container's lifetime, published once and never moved
// The zero value is not usable; obtain one from Build or
// BuildWithOptions.
type Container struct {
	id string

	mu sync.Mutex
	st state

	reg   *registry.Registry
	arena *arena.Arena
	table *reftable.Table

	deps        []*dep
	ops         []graph.Op
	initHooks   []*hook
	deinitHooks []*hook

	allocator *Allocator
	logger    *slog.Logger

	onResolved func(t reflect.Type)
	onError    func(t reflect.Type, err error)

	pc int // number of ops successfully executed
}

// ID returns the container's unique instance identifier, useful for
// correlating log lines across containers in the same process.
func (c *Container) ID() string { return c.id }

// State reports the container's current lifecycle position.
func (c *Container) State() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.st.String()
}

// Build assembles modules into a ready Container, or returns a BuildError
// describing the first failure. Equivalent to
// BuildWithOptions with the zero Options.
func Build(modules ...Module) (*Container, error) {
	return BuildWithOptions(Options{}, modules...)
}

// BuildWithOptions is Build with explicit Options (timeouts, strict-mode
// override checking, mock registration, and per-op observability hooks).
func BuildWithOptions(opts Options, modules ...Module) (*Container, error) {
	id := uuid.NewString()

	reg := registry.New(reflect.TypeOf(Container{}), reflect.TypeOf(Allocator{}))

	b := newBundle(opts, reg)

	for idx, m := range modules {
		mv := reflect.ValueOf(m)
		for mv.Kind() == reflect.Pointer {
			mv = mv.Elem()
		}
		if mv.Kind() != reflect.Struct {
			return nil, &BuildError{ContainerID: id, Phase: "collect", Cause: &ValidationError{Message: fmt.Sprintf("module %d is not a struct", idx)}}
		}
		moduleName := mv.Type().Name()
		if moduleName == "" {
			moduleName = fmt.Sprintf("module#%d", idx)
		}
		if err := b.collectModule(idx, mv, moduleName); err != nil {
			return nil, &BuildError{ContainerID: id, Phase: "collect", Cause: err}
		}
		if cfg, ok := configurerOf(m); ok {
			if err := cfg.Configure(b); err != nil {
				return nil, &BuildError{ContainerID: id, Phase: "configure", Cause: err}
			}
		}
	}

	for _, fn := range b.compileHooks {
		if err := fn(b); err != nil {
			return nil, &BuildError{ContainerID: id, Phase: "compile-hook", Cause: err}
		}
	}

	deps, err := b.finalize()
	if err != nil {
		return nil, &BuildError{ContainerID: id, Phase: "finalize", Cause: err}
	}

	for _, d := range deps {
		d.typeID = reg.IDFor(d.base)
	}

	if err := resolveProviders(b.analyzer, deps); err != nil {
		return nil, &BuildError{ContainerID: id, Phase: "resolve", Cause: translateResolveError(err)}
	}
	if err := resolveFieldRefs(b.byBase, deps); err != nil {
		return nil, &BuildError{ContainerID: id, Phase: "resolve", Cause: err}
	}
	resolveDeinits(b.analyzer, deps)

	layout := layoutDeps(deps)

	masks, hookItems, err := computeMasks(reg, b.byBase, deps, b.initHooks, b.deinitHooks)
	if err != nil {
		return nil, &BuildError{ContainerID: id, Phase: "mask", Cause: err}
	}

	ops, err := graph.Schedule(masks, hookItems)
	if err != nil {
		return nil, &BuildError{ContainerID: id, Phase: "schedule", Cause: translateScheduleError(deps, err)}
	}

	arn := layout.Build()
	table := reftable.New(len(deps) + 2)

	c := &Container{
		id:          id,
		reg:         reg,
		arena:       arn,
		table:       table,
		deps:        deps,
		ops:         ops,
		initHooks:   b.initHooks,
		deinitHooks: b.deinitHooks,
		allocator:   &Allocator{arena: arn},
		logger:      opts.logger(),
		onResolved:  opts.OnResolved,
		onError:     opts.OnError,
		st:          stateInitializing,
	}

	seedModules(arn, deps)

	table.Publish(registry.ContainerTypeID, unsafe.Pointer(c))
	table.Publish(registry.AllocatorTypeID, unsafe.Pointer(c.allocator))

	runErr := c.run(opts.BuildTimeout)
	if runErr != nil {
		c.st = stateUnbuilt
		return nil, &BuildError{ContainerID: id, Phase: "init", Cause: runErr}
	}

	c.st = stateReady
	return c, nil
}

// run executes every op in order, respecting an optional overall timeout,
// and unwinds on failure.
func (c *Container) run(timeout time.Duration) error {
	if timeout <= 0 {
		return c.execute()
	}
	done := make(chan error, 1)
	go func() { done <- c.execute() }()
	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("diwire: build exceeded timeout %s", timeout)
	}
}

// configurerOf reports whether m (or a pointer to it) implements Configurer.
// Modules are ordinarily passed by value, so a pointer-receiver Configure
// needs an addressable copy built here before the assertion can succeed.
func configurerOf(m Module) (Configurer, bool) {
	if cfg, ok := m.(Configurer); ok {
		return cfg, true
	}
	v := reflect.ValueOf(m)
	if v.Kind() == reflect.Pointer {
		return nil, false
	}
	pv := reflect.New(v.Type())
	pv.Elem().Set(v)
	if cfg, ok := pv.Interface().(Configurer); ok {
		return cfg, true
	}
	return nil, false
}

// translateResolveError maps internal/resolve's type-named errors onto the
// public error types carrying the same diagnostic, so callers of Build never
// need to import internal/resolve to type-switch on a BuildError's cause.
func translateResolveError(err error) error {
	switch e := err.(type) {
	case *resolve.AutoNonStructError:
		return &AutoNonStructError{Type: e.Type}
	case *resolve.InitMethodRequiredError:
		return &InitMethodRequiredError{Type: e.Type}
	default:
		return err
	}
}

func translateScheduleError(deps []*dep, err error) error {
	switch e := err.(type) {
	case *graph.CycleError:
		types := make([]reflect.Type, len(e.Unresolved))
		for i, idx := range e.Unresolved {
			types[i] = deps[idx].declaredType
		}
		return &CycleError{Types: types}
	default:
		return err
	}
}

// seedModules copies each collected module's literal field defaults into its
// reserved arena block before any op runs, so a field left at Auto simply
// starts zeroed and one left with a literal default already carries it.
func seedModules(arn *arena.Arena, deps []*dep) {
	for _, d := range deps {
		if !d.isModule {
			continue
		}
		arn.ValueAt(d.offset, d.moduleValue.Type()).Set(d.moduleValue)
	}
}
