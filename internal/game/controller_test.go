package game

import (
	"testing"

	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitGame_InvalidPlayerCount(t *testing.T) {
	c := NewController(nil, zerolog.Nop())
	for _, n := range []int{0, 1, 6} {
		err := c.InitGame(&GameState{}, playerNames(n))
		assert.ErrorIs(t, err, core.ErrInvalidPlayerCount, "%d players", n)
	}
}

func TestInitGame_Setup(t *testing.T) {
	tests := []struct {
		players int
		leaders int
		cubes   int
	}{
		{2, 3, 25},
		{3, 3, 25},
		{4, 5, 22},
		{5, 5, 20},
	}

	for _, tt := range tests {
		_, state := newTestGame(t, tt.players)
		assert.Len(t, state.AvailableLeaders, tt.leaders)
		assert.Len(t, state.Tiles, 48)
		assert.Equal(t, 0, state.Century)
		assert.Equal(t, 0, state.CurrentPlayer)
		assert.False(t, state.GameOver)

		positions := map[core.Vector2d]bool{}
		for i := range state.Tiles {
			positions[state.Tiles[i].Position] = true
			assert.Equal(t, core.ColorNone, state.Tiles[i].Architect)
		}
		assert.Len(t, positions, 48, "every tile has its own position")

		for seat, p := range state.Players {
			assert.Equal(t, core.PlayerColors[seat], p.Color)
			assert.Equal(t, playerNames(tt.players)[seat], p.Name)
			assert.True(t, p.HoldingArchitect)
			assert.Equal(t, tt.cubes-StartingActiveCubes, p.PassiveCubes)
		}
	}
}

func TestInitGame_CannedDeal(t *testing.T) {
	perm := make([]int, 48)
	for i := range perm {
		perm[i] = 47 - i
	}
	c := NewController(NewCannedShuffler(perm), zerolog.Nop())
	state := &GameState{}
	require.NoError(t, c.InitGame(state, playerNames(2)))

	all := core.AllTiles()
	positions := core.BoardPositions()
	assert.Equal(t, all[47], state.Tiles[0].Tile)
	assert.Equal(t, all[0], state.Tiles[47].Tile)
	assert.Equal(t, positions[0], state.Tiles[0].Position)
}

func TestConfigurePossibleActions_FirstTurn(t *testing.T) {
	_, state := newTestGame(t, 2)
	actions := state.PossibleActions

	require.NotNil(t, actions)
	assert.Equal(t, "Choose an action", actions.Message)
	assert.True(t, actions.CanSelectBoardAction)
	assert.Equal(t, 12, countActions[MoveArchitect](state))
	assert.Equal(t, 0, countActions[SendWorkers](state))
	assert.Equal(t, 5, countActions[SendCubesToZone](state))
	assert.Equal(t, 3, countActions[TakeLeaderCard](state))
	assert.Equal(t, 20, actions.Len())

	for _, a := range actions.Actions {
		if move, ok := a.(MoveArchitect); ok {
			assert.False(t, move.Neutral)
			assert.Equal(t, MaxArchitectActivation, move.CubesToActivate)
			require.NotNil(t, move.Destination)
		}
		if send, ok := a.(SendCubesToZone); ok {
			assert.Equal(t, 1, send.Count)
			assert.True(t, send.FromActive)
		}
	}
}

func TestConfigurePossibleActions_Idempotent(t *testing.T) {
	c, state := newTestGame(t, 3)
	putArchitect(c, state, core.ColorWhite, 2)
	c.ConfigurePossibleActions(state)
	first := state.PossibleActions.clone()

	c.ConfigurePossibleActions(state)
	assert.Equal(t, first, state.PossibleActions)
}

func TestConfigurePossibleActions_MustMoveArchitect(t *testing.T) {
	c, state := newTestGame(t, 2)
	state.Century = 1
	c.ConfigurePossibleActions(state)

	assert.Equal(t, "Move your architect to a new building", state.PossibleActions.Message)
	assert.Equal(t, 12, state.PossibleActions.Len())
	assert.Equal(t, 12, countActions[MoveArchitect](state))
	for _, a := range state.PossibleActions.Actions {
		move := a.(MoveArchitect)
		assert.Equal(t, 1, state.Tiles[*move.Destination].Tile.Century)
	}
}

func TestConfigurePossibleActions_ActivationCappedByPassive(t *testing.T) {
	c, state := newTestGame(t, 2)
	setReserve(t, state, 0, 3, 2)
	c.ConfigurePossibleActions(state)

	_, move := findAction[MoveArchitect](state, nil)
	assert.Equal(t, 2, move.CubesToActivate)
}

func TestConfigurePossibleActions_ScoringTriggers(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*testing.T, *Controller, *GameState)
	}{
		{
			name: "empty reserve",
			setup: func(t *testing.T, _ *Controller, gs *GameState) {
				setReserve(t, gs, 0, 0, 0)
			},
		},
		{
			name: "no legal move",
			setup: func(t *testing.T, c *Controller, gs *GameState) {
				setReserve(t, gs, 0, 0, 5)
				c.Apply(gs, NewChangeMoveArchitect(
					ArchitectInHand{Architect: core.ColorBlack, Holder: core.ColorBlack},
					ArchitectOffBoard{Architect: core.ColorBlack}))
				giveLeader(c, gs, core.ColorBlack, core.LeaderReligious)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, state := newTestGame(t, 2)
			tt.setup(t, c, state)
			c.ConfigurePossibleActions(state)

			assert.Equal(t, scoringActions(ScoringInit), state.PossibleActions)
			assert.True(t, state.PossibleActions.IsAutomatic())
		})
	}
}

func TestConfigurePossibleActions_PassWithoutAvailableTile(t *testing.T) {
	c, state := newTestGame(t, 2)
	for _, i := range state.AvailableTiles() {
		state.Tiles[i].SetStarToken(core.ColorWhite, 1)
	}
	c.ConfigurePossibleActions(state)

	index, move := findAction[MoveArchitect](state, nil)
	require.GreaterOrEqual(t, index, 0)
	assert.Nil(t, move.Destination)
	assert.Equal(t, "Move architect off board", move.String())
	assert.Equal(t, 1, countActions[MoveArchitect](state))

	_, err := c.PerformIndex(state, index)
	require.NoError(t, err)
	assert.False(t, state.Players[0].HoldingArchitect)
	assert.Equal(t, -1, state.ArchitectTile(core.ColorBlack))
	assert.Equal(t, 6, state.Players[0].ActiveCubes)
	assert.Equal(t, 1, state.CurrentPlayer)
}

func TestConfigurePossibleActions_NeutralArchitect(t *testing.T) {
	c, state := newTestGame(t, 2)
	c.PerformAction(state, TakeLeaderCard{Card: core.LeaderEconomic})
	require.True(t, state.Players[0].HoldingNeutralArchitect)

	// white cannot move the neutral architect
	assert.Equal(t, 0, countNeutralMoves(state))

	c.Apply(state, ChangeSetCurrentPlayer{Color: core.ColorBlack, PrepareActions: true})
	assert.Equal(t, 12, countNeutralMoves(state))

	index, _ := findAction(state, func(a MoveArchitect) bool { return a.Neutral })
	c.PerformAction(state, state.PossibleActions.Actions[index])
	assert.False(t, state.Players[0].HoldingNeutralArchitect)
	assert.GreaterOrEqual(t, state.ArchitectTile(core.ColorNeutral), 0)
	assert.True(t, state.Players[0].HoldingArchitect)
	require.NoError(t, state.CheckInvariants())
}

func countNeutralMoves(state *GameState) int {
	n := 0
	for _, a := range state.PossibleActions.Actions {
		if move, ok := a.(MoveArchitect); ok && move.Neutral {
			n++
		}
	}
	return n
}

func TestPendingAction(t *testing.T) {
	_, state := newTestGame(t, 2)

	action, err := PendingAction(state, 0)
	require.NoError(t, err)
	assert.Equal(t, state.PossibleActions.Actions[0], action)

	_, err = PendingAction(state, -1)
	assert.ErrorIs(t, err, core.ErrActionOutOfRange)
	_, err = PendingAction(state, state.PossibleActions.Len())
	assert.ErrorIs(t, err, core.ErrActionOutOfRange)

	state.PossibleActions = nil
	_, err = PendingAction(state, 0)
	assert.ErrorIs(t, err, core.ErrNoPossibleActions)
}

func TestMatchAction(t *testing.T) {
	_, state := newTestGame(t, 2)
	actions := state.PossibleActions.Actions

	tests := []struct {
		name string
		text string
		want string
		err  error
	}{
		{"exact", "Take Economic leader", "Take Economic leader", nil},
		{"unique prefix", "Send 1 cubes to Cit", "Send 1 cubes to Citadel zone", nil},
		{"exact beats longer actions", "Move architect to tile 1", "Move architect to tile 1", nil},
		{"ambiguous prefix", "Send", "", core.ErrNoMatchingAction},
		{"no match", "Pass", "", core.ErrNoMatchingAction},
		{"empty", "", "", core.ErrNoMatchingAction},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, err := MatchAction(state, tt.text)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Equal(t, -1, index)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, actions[index].String())
		})
	}

	state.PossibleActions = nil
	_, err := MatchAction(state, "Take Economic leader")
	assert.ErrorIs(t, err, core.ErrNoPossibleActions)
}

func TestPlayFirstTurns(t *testing.T) {
	c, state := newTestGame(t, 2)
	placeTile(state, 0, cellThisZone)

	index, _ := findAction(state, func(a MoveArchitect) bool { return a.Destination != nil && *a.Destination == 0 })
	require.GreaterOrEqual(t, index, 0)
	_, err := c.PerformIndex(state, index)
	require.NoError(t, err)

	assert.Equal(t, core.ColorBlack, state.Tiles[0].Architect)
	assert.False(t, state.Players[0].HoldingArchitect)
	assert.Equal(t, 6, state.Players[0].ActiveCubes)
	assert.Equal(t, 19, state.Players[0].PassiveCubes)
	assert.Equal(t, 1, state.CurrentPlayer)

	// white works on black's building and gets its board action
	index, _ = findAction(state, func(a SendWorkers) bool { return a.Tile == 0 })
	require.GreaterOrEqual(t, index, 0)
	_, err = c.PerformIndex(state, index)
	require.NoError(t, err)

	assert.Equal(t, core.ColorWhite, state.Tiles[0].Spots[0])
	assert.Equal(t, 1, state.CurrentPlayer)
	assert.Equal(t, "Use the SendCubesToThisZone action of tile 0", state.PossibleActions.Message)
	assert.Equal(t, []Action{
		SendCubesToZone{Count: 2, Zone: core.InfluenceReligious},
		createSkipAction(nil),
	}, state.PossibleActions.Actions)

	_, err = c.PerformIndex(state, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, state.ZoneCubes[core.InfluenceReligious][1])
	assert.Equal(t, 2, state.Players[1].ActiveCubes)
	assert.Equal(t, 20, state.Players[1].PassiveCubes)
	assert.Equal(t, 0, state.CurrentPlayer)
	require.NoError(t, state.CheckInvariants())
}

func TestPrepareNextCentury(t *testing.T) {
	c, state := newTestGame(t, 2)
	putArchitect(c, state, core.ColorBlack, 0)
	assertRulesViolation(t, core.ErrArchitectMismatch, func() { c.PrepareNextCentury(state.Clone()) })

	c.Apply(state, NewChangeMoveArchitect(
		ArchitectOnTile{Architect: core.ColorBlack, Tile: 0},
		ArchitectOffBoard{Architect: core.ColorBlack}))
	c.PrepareNextCentury(state)

	assert.Equal(t, 1, state.Century)
	for i := range state.Tiles {
		assert.Equal(t, state.Tiles[i].Tile.Century == 0, state.Tiles[i].BuildingFacing)
	}
	assert.True(t, state.Players[0].HoldingArchitect)

	state.Century = core.LastCentury
	assertRulesViolation(t, core.ErrGameOver, func() { c.PrepareNextCentury(state) })
}
