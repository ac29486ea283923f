package gameserver

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/protobuf/types/known/structpb"

	gameengine "github.com/ArcBees/quebec-game-sub001/internal/game"
)

// ActionRequest designates the action a client wants to play. Negative
// numbers leave a field unchecked.
type ActionRequest struct {
	Seat     int
	Decision int
	Index    int
	// Action selects a pending action by its text, or by an unambiguous
	// prefix of it, when Index is negative.
	Action string
}

// AnyAction returns a request with every check disabled
func AnyAction() ActionRequest {
	return ActionRequest{Seat: -1, Decision: -1, Index: -1}
}

// ValidationResult contains the outcome of a validation check
type ValidationResult struct {
	Valid          bool
	Err            error
	CachedResponse *structpb.Struct
}

// ActionValidator handles all action validation logic
type ActionValidator struct {
	gameManager *GameManager
}

// NewActionValidator creates a new validator instance
func NewActionValidator(gm *GameManager) *ActionValidator {
	return &ActionValidator{
		gameManager: gm,
	}
}

// ValidatePerformActionRequest checks what can be checked without the game
// lock: the game must exist and the idempotency key must be new.
func (v *ActionValidator) ValidatePerformActionRequest(req *performActionRequest) (*ValidationResult, *GameInstance) {
	if req.GameID == "" {
		return &ValidationResult{Err: fmt.Errorf("%w: game_id is required", ErrInvalidAction)}, nil
	}
	game, exists := v.gameManager.GetGame(req.GameID)
	if !exists {
		return &ValidationResult{Err: fmt.Errorf("%w: %s", ErrGameNotFound, req.GameID)}, nil
	}

	if req.IdempotencyKey != "" {
		if cached := game.idempotencyManager.Check(req.seat(), req.IdempotencyKey); cached != nil {
			log.Debug().
				Str("game_id", req.GameID).
				Str("idempotency_key", req.IdempotencyKey).
				Msg("Returning cached response for idempotent request")
			return &ValidationResult{CachedResponse: cached}, game
		}
	}

	if req.ActionIndex == nil && req.Action == "" {
		return &ValidationResult{Err: fmt.Errorf("%w: action_index or action is required", ErrInvalidAction)}, game
	}
	return &ValidationResult{Valid: true}, game
}

// resolveAction checks a request against the state and returns the index of
// the pending action it designates.
func resolveAction(state *gameengine.GameState, decisions int, req ActionRequest) (int, error) {
	if req.Decision >= 0 && req.Decision != decisions {
		return -1, fmt.Errorf("%w: stale decision %d, the game is at decision %d",
			ErrInvalidAction, req.Decision, decisions)
	}
	if req.Seat >= 0 && req.Seat != state.CurrentPlayer {
		return -1, fmt.Errorf("%w: seat %d, current seat is %d", ErrNotYourTurn, req.Seat, state.CurrentPlayer)
	}

	n := state.PossibleActions.Len()
	if req.Index >= 0 {
		if req.Index >= n {
			return -1, fmt.Errorf("%w: index %d of %d pending actions", ErrInvalidAction, req.Index, n)
		}
		return req.Index, nil
	}
	index, err := gameengine.MatchAction(state, req.Action)
	if err != nil {
		return -1, fmt.Errorf("%w: %w", ErrInvalidAction, err)
	}
	return index, nil
}
