package lifecycle

import "fmt"

// Stage is one step of an action lifecycle
type Stage int

const (
	// StagePreStart - actors are being registered
	StagePreStart Stage = iota

	// StageStarted - actors run their main work, e.g. animation or network send
	StageStarted

	// StageFinalized - the change has been applied, actors wrap up
	StageFinalized

	// StageCompleted - final stage
	StageCompleted
)

func (s Stage) String() string {
	switch s {
	case StagePreStart:
		return "PRE_START"
	case StageStarted:
		return "STARTED"
	case StageFinalized:
		return "FINALIZED"
	case StageCompleted:
		return "COMPLETED"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// IsTerminal returns true once nothing can happen anymore
func (s Stage) IsTerminal() bool {
	return s == StageCompleted
}

// Next returns the stage following s. The completed stage is its own successor.
func (s Stage) Next() Stage {
	if s >= StageCompleted {
		return StageCompleted
	}
	return s + 1
}

// RequiresActors returns true for the stages actors must acknowledge
func (s Stage) RequiresActors() bool {
	return s == StageStarted || s == StageFinalized
}
