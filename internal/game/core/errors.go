package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPlayerCount = errors.New("invalid player count")
	ErrInvalidPlayer      = errors.New("invalid player")
	ErrInvalidTile        = errors.New("invalid tile")
	ErrInvalidZone        = errors.New("invalid influence zone")
	ErrInsufficientCubes  = errors.New("insufficient cubes")
	ErrSpotOccupied       = errors.New("worker spot already filled")
	ErrArchitectMismatch  = errors.New("architect not at expected location")
	ErrLeaderUnavailable  = errors.New("leader card unavailable")
	ErrNoPossibleActions  = errors.New("no possible actions pending")
	ErrActionOutOfRange   = errors.New("action index out of range")
	ErrNoMatchingAction   = errors.New("no matching action")
	ErrGameOver           = errors.New("game is over")
)

// RulesViolation is raised, as a panic, when an action or state change is
// applied against a state that does not satisfy its preconditions. The
// enumerator only offers legal actions, so a violation is a defect.
type RulesViolation struct {
	Err    error
	Detail string
}

func (v *RulesViolation) Error() string {
	if v.Detail == "" {
		return "rules violation: " + v.Err.Error()
	}
	return fmt.Sprintf("rules violation: %s: %v", v.Detail, v.Err)
}

func (v *RulesViolation) Unwrap() error { return v.Err }

// Assert panics with a *RulesViolation when cond is false. Checks are always on.
func Assert(cond bool, err error, format string, args ...any) {
	if cond {
		return
	}
	panic(&RulesViolation{Err: err, Detail: fmt.Sprintf(format, args...)})
}

// ActionError wraps an error with the acting player and a short action description
type ActionError struct {
	Player Color
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("player %s: %s: %v", e.Player, e.Action, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// WrapActionError adds action context to err. A nil err stays nil.
func WrapActionError(player Color, action string, err error) error {
	if err == nil {
		return nil
	}
	if action == "" {
		action = "player action"
	}
	return &ActionError{Player: player, Action: action, Err: err}
}

// GameStateError wraps an error with the century and phase it happened in
type GameStateError struct {
	Century int
	Phase   string
	Err     error
}

func (e *GameStateError) Error() string {
	return fmt.Sprintf("century %d, %s: %v", e.Century, e.Phase, e.Err)
}

func (e *GameStateError) Unwrap() error { return e.Err }

// WrapGameStateError adds century and phase context to err. A nil err stays nil.
func WrapGameStateError(century int, phase string, err error) error {
	if err == nil {
		return nil
	}
	return &GameStateError{Century: century, Phase: phase, Err: err}
}
