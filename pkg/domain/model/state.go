package model

// State is a step of a single download run
type State int

const (
	StateIdle State = iota
	StateResolving
	StateFetching
	StateStaged
	StateExtracting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateFetching:
		return "fetching"
	case StateStaged:
		return "staged"
	case StateExtracting:
		return "extracting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether no further transition can happen
func (s State) IsTerminal() bool {
	return s == StateDone || s == StateFailed
}
