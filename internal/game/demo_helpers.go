package game

import (
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// ChooseRandomAction picks one of the pending actions uniformly. It returns
// -1 when nothing is pending. Intended for demos, tests and baseline agents.
func ChooseRandomAction(state *GameState, rng *rand.Rand) int {
	n := state.PossibleActions.Len()
	if n == 0 {
		return -1
	}
	choice := rng.Intn(n)
	log.Debug().
		Int("seat", state.CurrentPlayer).
		Str("action", state.PossibleActions.Actions[choice].String()).
		Int("choices", n).
		Msg("Generated random action")
	return choice
}

// ChooseProgressAction prefers actions that commit cubes to the board,
// which makes games finish quickly. It falls back to the first action.
func ChooseProgressAction(state *GameState) int {
	if state.PossibleActions.Len() == 0 {
		return -1
	}
	for i, action := range state.PossibleActions.Actions {
		switch action.(type) {
		case SendWorkers, SendCubesToZone:
			return i
		}
	}
	return 0
}
