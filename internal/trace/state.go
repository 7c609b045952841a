package trace

import "fmt"

// State is one of the five scheduler process states a trace can mention.
// Keeping this a closed set means an invalid label is a parse-time error,
// never a silently ignored transition.
type State uint8

const (
	StateNew State = iota
	StateReady
	StateRunning
	StateWaiting
	StateTerminated
)

var stateNames = [...]string{"NEW", "READY", "RUNNING", "WAITING", "TERMINATED"}

// String returns the label the simulator uses for s.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// ParseState maps a trace label to its State. Labels are matched exactly
// as the simulator emits them (upper-case).
func ParseState(label string) (State, error) {
	switch label {
	case "NEW":
		return StateNew, nil
	case "READY":
		return StateReady, nil
	case "RUNNING":
		return StateRunning, nil
	case "WAITING":
		return StateWaiting, nil
	case "TERMINATED":
		return StateTerminated, nil
	default:
		return 0, fmt.Errorf("unknown state label %q", label)
	}
}
