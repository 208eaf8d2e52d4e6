package emulator

// State is the execution loop state.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_FETCHING    = State(0) // fetching
	STATE_DISPATCHING = State(1) // dispatching
	STATE_HALTED      = State(2) // halted
)
