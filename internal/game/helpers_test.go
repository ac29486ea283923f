package game

import (
	"fmt"
	"testing"

	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Board cells used by the tests, all in the religious district
var (
	cellThisZone   = core.NewVector2d(0, 0) // 1 cube per spot, 2 cubes to this zone
	cellActivate   = core.NewVector2d(2, 0) // 1 cube per spot, activate 2
	cellScore      = core.NewVector2d(1, 1) // 1 cube per spot, score 2
	cellMoveCubes  = core.NewVector2d(3, 2) // 2 cubes per spot, move 2
	cellAnyZoneBig = core.NewVector2d(0, 6) // 3 cubes per spot, 3 cubes to any zone
)

func playerNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("P%d", i+1)
	}
	return names
}

// newTestGame deals the tiles in order: tile i is AllTiles()[i] standing on
// BoardPositions()[i].
func newTestGame(t *testing.T, players int) (*Controller, *GameState) {
	t.Helper()
	c := NewController(nil, zerolog.Nop())
	state := &GameState{}
	require.NoError(t, c.InitGame(state, playerNames(players)))
	return c, state
}

// setReserve changes the reserve of a seat, parking the difference in the
// citadel zone so that cube counts stay consistent.
func setReserve(t *testing.T, state *GameState, seat, active, passive int) {
	t.Helper()
	p := &state.Players[seat]
	diff := p.ReserveCubes() - active - passive
	require.GreaterOrEqual(t, diff, 0, "cannot grow a reserve")
	state.ZoneCubes[core.InfluenceCitadel][seat] += diff
	p.ActiveCubes = active
	p.PassiveCubes = passive
}

// placeTile moves a tile onto a board cell, which selects its board action
func placeTile(state *GameState, tile int, cell core.Vector2d) {
	state.Tiles[tile].Position = cell
}

// fillSpot puts cubes of color in the next empty spot of a tile, taken from
// the passive reserve.
func fillSpot(c *Controller, state *GameState, tile int, color core.Color) {
	t := &state.Tiles[tile]
	c.Apply(state, NewChangeMoveCubes(t.BoardAction().CubesPerSpot,
		PlayerCubes{Color: color}, TileCubes{Tile: tile, Color: color, Spot: t.NextEmptySpot()}))
}

func giveLeader(c *Controller, state *GameState, color core.Color, card core.LeaderCard) {
	c.Apply(state, ChangeMoveLeader{Card: card, From: LeaderOnBoard{}, To: LeaderWithPlayer{Color: color}})
}

func putArchitect(c *Controller, state *GameState, architect core.Color, tile int) {
	c.Apply(state, NewChangeMoveArchitect(architectLocation(state, architect),
		ArchitectOnTile{Architect: architect, Tile: tile}))
}

// findAction returns the index of the first pending action of type T
// accepted by match.
func findAction[T Action](state *GameState, match func(T) bool) (int, T) {
	for i, a := range state.PossibleActions.Actions {
		if v, ok := a.(T); ok && (match == nil || match(v)) {
			return i, v
		}
	}
	var zero T
	return -1, zero
}

func countActions[T Action](state *GameState) int {
	n := 0
	for _, a := range state.PossibleActions.Actions {
		if _, ok := a.(T); ok {
			n++
		}
	}
	return n
}

func assertRulesViolation(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a rules violation")
		err, ok := r.(error)
		require.True(t, ok, "panic value %v is not an error", r)
		var violation *core.RulesViolation
		assert.ErrorAs(t, err, &violation)
		assert.ErrorIs(t, err, target)
	}()
	fn()
}

// playToEnd plays a game with ChooseProgressAction and checks the state
// invariants after every decision. It returns the number of decisions.
func playToEnd(t *testing.T, c *Controller, state *GameState, maxDecisions int) int {
	t.Helper()
	return playWith(t, c, state, maxDecisions, ChooseProgressAction)
}

func playWith(t *testing.T, c *Controller, state *GameState, maxDecisions int, choose func(*GameState) int) int {
	t.Helper()
	decisions := 0
	for !state.GameOver {
		require.Less(t, decisions, maxDecisions, "game did not finish")
		index := choose(state)
		require.GreaterOrEqual(t, index, 0)
		_, err := c.PerformIndex(state, index)
		require.NoError(t, err)
		c.RunAutomaticActions(state)
		require.NoError(t, state.CheckInvariants(), "after decision %d", decisions)
		decisions++
	}
	return decisions
}
