package diwire

import "fmt"

// state is the container's position in its lifecycle.
// Transitions run Unbuilt -> Initializing -> Ready -> Destroying ->
// Destroyed; a failure during Initializing reverts to Unbuilt and the
// half-built Container is discarded by Build/BuildWithOptions rather than
// returned to the caller.
type state int32

const (
	stateUnbuilt state = iota
	stateInitializing
	stateReady
	stateDestroying
	stateDestroyed
)

func (s state) String() string {
	switch s {
	case stateUnbuilt:
		return "Unbuilt"
	case stateInitializing:
		return "Initializing"
	case stateReady:
		return "Ready"
	case stateDestroying:
		return "Destroying"
	case stateDestroyed:
		return "Destroyed"
	default:
		return fmt.Sprintf("Unknown(%d)", int32(s))
	}
}
