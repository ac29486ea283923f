package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ArcBees/quebec-game-sub001/internal/common"
	"github.com/ArcBees/quebec-game-sub001/internal/game"
)

// MaxDecisions bounds the games played by tests. Every policy ends a game
// well before it.
const MaxDecisions = 5000

// Policy picks the index of a pending action
type Policy func(state *game.GameState) int

// FirstAction always plays the first pending action
func FirstAction(*game.GameState) int { return 0 }

// LastAction always plays the last pending action
func LastAction(state *game.GameState) int { return state.PossibleActions.Len() - 1 }

// RandomAction plays a pending action drawn from a seeded generator
func RandomAction(seed uint64) Policy {
	rng := NewTestRNG(seed)
	return func(state *game.GameState) int {
		return rng.Intn(state.PossibleActions.Len())
	}
}

// NewTestEngine creates an engine with default player names, a fixed seed
// and invariant checks enabled. Extra settings can be made by configure.
func NewTestEngine(t *testing.T, players int, seed uint64, configure ...func(*game.GameConfig)) *game.Engine {
	t.Helper()
	cfg := game.GameConfig{
		Players:         common.DefaultPlayerNames(players),
		Seed:            seed,
		Logger:          NopLogger(),
		CheckInvariants: true,
	}
	for _, c := range configure {
		c(&cfg)
	}
	engine, err := game.NewEngine(context.Background(), cfg)
	require.NoError(t, err)
	return engine
}

// PlayToEnd plays a game with policy until it is over and returns the
// indices that were played.
func PlayToEnd(t *testing.T, engine *game.Engine, policy Policy) []int {
	t.Helper()
	var played []int
	for !engine.IsGameOver() {
		require.Less(t, len(played), MaxDecisions, "game did not end")
		index := policy(engine.GameState())
		require.NoError(t, engine.Perform(context.Background(), index))
		played = append(played, index)
	}
	return played
}
