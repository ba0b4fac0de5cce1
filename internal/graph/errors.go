package graph

import (
	"fmt"
	"strings"
)

// CycleError reports that scheduling stalled: these Dep indices never had
// their mask fully satisfied, which only happens when they form (or depend
// on) a cycle.
type CycleError struct {
	Unresolved []int
}

func (e *CycleError) Error() string {
	strs := make([]string, len(e.Unresolved))
	for i, idx := range e.Unresolved {
		strs[i] = fmt.Sprintf("#%d", idx)
	}
	return fmt.Sprintf("diwire: cycle detected, unresolved deps: %s", strings.Join(strs, ", "))
}

// HookUnresolvedError reports a hook whose mask could never be satisfied
// even after every Dep was scheduled -- it names a dependency that no
// module ever declared.
type HookUnresolvedError struct {
	Indices []int
}

func (e *HookUnresolvedError) Error() string {
	strs := make([]string, len(e.Indices))
	for i, idx := range e.Indices {
		strs[i] = fmt.Sprintf("#%d", idx)
	}
	return fmt.Sprintf("diwire: hook(s) %s depend on a type no module declared", strings.Join(strs, ", "))
}
