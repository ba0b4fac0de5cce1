package diwire

import (
	"reflect"

	"github.com/diwire/diwire/internal/mask"
	"github.com/diwire/diwire/internal/registry"
	"github.com/diwire/diwire/internal/resolve"
)

// depState is a Dep's storage state: an instance owns storage, an
// override is a pending provider replacement for an instance contributed
// elsewhere (possibly by a later module).
type depState int

const (
	stateInstance depState = iota
	stateOverride
)

// dep is the planner's record for one service. It is
// never exposed directly; Bundle is the public surface.
type dep struct {
	index int // position in the flat Dep list; doubles as its mask bit

	declaredType reflect.Type // as declared on the field/Add call (may be a pointer)
	base         reflect.Type
	typeID       registry.TypeID

	provider resolve.Provider
	state    depState

	// provenance, for diagnostics
	moduleName string
	fieldName  string

	// storage placement, assigned during layout
	ownedByModule bool // module field; see fieldIsPointer for where its storage actually lives
	moduleBlock   int  // index into the layout's module blocks, if ownedByModule
	fieldOffset   uintptr
	offset        uintptr // final resolved offset inside the arena

	// fieldIsPointer is set when the module field this Dep was collected
	// from is declared as a pointer. A *T module field only has room for a
	// pointer, not a base(T) instance, so such a Dep gets its own
	// independently reserved block (like a non-module Dep) and
	// moduleSlotOffset instead locates the pointer-sized slot inside the
	// module block that runDep fixes up once the instance exists.
	fieldIsPointer   bool
	moduleSlotOffset uintptr

	isFieldRef     bool
	refOwner       reflect.Type
	refField       string
	refOwnerDep    *dep    // resolved during plan(), the Dep publishing refOwner
	refFieldOffset uintptr // byte offset of refField within refOwner, resolved during plan()

	isModule    bool // true for the Dep representing a module aggregate itself
	moduleValue reflect.Value

	mask mask.Set

	// teardown, resolved once during planning
	deinitOK         bool
	deinitMethod     reflect.Value
	deinitParamTypes []reflect.Type
}

func (d *dep) kindName() string {
	if d.isFieldRef {
		return "field_ref"
	}
	return d.provider.Kind().String()
}
