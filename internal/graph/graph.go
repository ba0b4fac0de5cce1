// Package graph computes a valid initialization order for the collected
// Deps and Hooks, Kahn's-algorithm style: repeatedly emit the
// lowest-indexed item whose mask is already satisfied, scanning hooks for
// readiness after every Dep emission. It raises a cycle diagnostic naming
// the Deps that never became ready rather than looping forever, mirroring
// the topological sort in the container library's own dependency graph but
// adapted to operate over bitset masks instead of an adjacency list, since
// diwire's masks are computed once up front during planning, after
// provider resolution.
package graph

import "github.com/diwire/diwire/internal/mask"

// Kind distinguishes what an Item or Op represents.
type Kind int

const (
	KindDep Kind = iota
	KindHookInit
	KindHookDeinit
)

func (k Kind) String() string {
	switch k {
	case KindDep:
		return "dep"
	case KindHookInit:
		return "init-hook"
	case KindHookDeinit:
		return "deinit-hook"
	default:
		return "unknown"
	}
}

// HookItem is one runtime hook submitted for scheduling alongside the Deps.
type HookItem struct {
	Kind  Kind // KindHookInit or KindHookDeinit
	Index int  // index into the caller's hook slice
	Mask  mask.Set
}

// Op is one entry of the scheduled plan, executed in order at init time and
// walked in reverse at teardown.
type Op struct {
	Kind  Kind
	Index int
}

// Schedule computes the op order for a flat Dep list (by mask, in
// declaration order) plus a set of hooks. depMasks[i] is the mask for Dep
// index i.
func Schedule(depMasks []mask.Set, hooks []HookItem) ([]Op, error) {
	n := len(depMasks)
	ready := mask.New(n)
	emittedDep := make([]bool, n)
	emittedHook := make([]bool, len(hooks))
	ops := make([]Op, 0, n+len(hooks))
	remaining := n

	scanHooks := func() {
		for hi, h := range hooks {
			if emittedHook[hi] {
				continue
			}
			if h.Mask.SubsetOf(ready) {
				emittedHook[hi] = true
				ops = append(ops, Op{Kind: h.Kind, Index: h.Index})
			}
		}
	}

	scanHooks() // hooks needing nothing at all are ready immediately
	for remaining > 0 {
		emittedThisRound := -1
		for i := 0; i < n; i++ {
			if emittedDep[i] {
				continue
			}
			if depMasks[i].SubsetOf(ready) {
				emittedDep[i] = true
				ready.Add(i)
				ops = append(ops, Op{Kind: KindDep, Index: i})
				remaining--
				emittedThisRound = i
				break
			}
		}
		if emittedThisRound < 0 {
			return nil, &CycleError{Unresolved: unresolvedIndices(emittedDep)}
		}
		scanHooks()
	}

	if unresolved := unresolvedHookIndices(emittedHook); len(unresolved) > 0 {
		return nil, &HookUnresolvedError{Indices: unresolved}
	}
	return ops, nil
}

func unresolvedIndices(emitted []bool) []int {
	var out []int
	for i, done := range emitted {
		if !done {
			out = append(out, i)
		}
	}
	return out
}

func unresolvedHookIndices(emitted []bool) []int {
	var out []int
	for i, done := range emitted {
		if !done {
			out = append(out, i)
		}
	}
	return out
}
