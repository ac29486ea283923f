package game

import (
	"testing"

	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoringPhase_Sequence(t *testing.T) {
	phase := ScoringInit
	var seen []string
	for phase != ScoringPrepareNextCentury {
		seen = append(seen, phase.String())
		phase = phase.Next(0)
	}
	assert.Equal(t, []string{
		"INIT_SCORING",
		"SCORE_INCOMPLETE_BUILDINGS",
		"SCORE_RELIGIOUS",
		"SCORE_POLITIC",
		"SCORE_ECONOMIC",
		"SCORE_CULTURAL",
		"SCORE_CITADEL",
		"SCORE_ACTIVE_CUBES",
		"SCORE_BUILDINGS",
	}, seen)

	assert.Equal(t, ScoringFinishGame, ScoringBuildings.Next(core.LastCentury))
	assert.Equal(t, ScoringFinishGame, ScoringFinishGame.Next(core.LastCentury))

	zone, ok := ScoringCultural.Zone()
	assert.True(t, ok)
	assert.Equal(t, core.InfluenceCultural, zone)
	_, ok = ScoringActiveCubes.Zone()
	assert.False(t, ok)
}

func TestZoneScores(t *testing.T) {
	tests := []struct {
		name    string
		zone    core.InfluenceType
		cubes   []int
		ranking []int
		scores  []int
	}{
		{
			name:    "tie goes to the lower seat",
			zone:    core.InfluencePolitic,
			cubes:   []int{3, 5, 5, 1},
			ranking: []int{1, 2, 0, 3},
			scores:  []int{0, 14, 2, 0},
		},
		{
			name:    "clear majority",
			zone:    core.InfluenceReligious,
			cubes:   []int{2, 0, 7, 3},
			ranking: []int{2, 3, 0},
			scores:  []int{0, 0, 12, 1},
		},
		{
			name:    "citadel pays only the first",
			zone:    core.InfluenceCitadel,
			cubes:   []int{3, 5, 5, 1},
			ranking: []int{1, 2, 0, 3},
			scores:  []int{0, 14, 0, 0},
		},
		{
			name:    "single player",
			zone:    core.InfluenceEconomic,
			cubes:   []int{0, 0, 0, 4},
			ranking: []int{3},
			scores:  []int{0, 0, 0, 4},
		},
		{
			name:   "empty zone",
			zone:   core.InfluenceCultural,
			cubes:  []int{0, 0, 0, 0},
			scores: []int{0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, state := newTestGame(t, 4)
			for seat, n := range tt.cubes {
				state.ZoneCubes[tt.zone][seat] = n
			}
			assert.Equal(t, tt.ranking, ZoneRanking(state, tt.zone))
			assert.Equal(t, tt.scores, ZoneScores(state, tt.zone))
		})
	}
}

func TestZoneCarry(t *testing.T) {
	c, state := newTestGame(t, 4)
	for seat, n := range []int{3, 5, 5, 1} {
		setReserve(t, state, seat, 3, 19-n)
		state.ZoneCubes[core.InfluenceCitadel][seat] -= n
		state.ZoneCubes[core.InfluencePolitic][seat] += n
	}
	require.NoError(t, state.CheckInvariants())

	c.PerformAction(state, PerformScoringPhase{Phase: ScoringPolitic})

	assert.Equal(t, []int{0, 14, 2, 0}, Scores(state))
	assert.Equal(t, 0, state.ZoneTotal(core.InfluencePolitic))
	assert.Equal(t, 2, state.ZoneCubes[core.InfluenceEconomic][1])
	assert.Equal(t, 2, state.ZoneTotal(core.InfluenceEconomic))
	assert.Equal(t, []int{19, 17, 19, 19}, []int{
		state.Players[0].PassiveCubes, state.Players[1].PassiveCubes,
		state.Players[2].PassiveCubes, state.Players[3].PassiveCubes,
	})
	assert.Equal(t, scoringActions(ScoringEconomic), state.PossibleActions)
	require.NoError(t, state.CheckInvariants())
}

func TestIncompleteBuildings(t *testing.T) {
	c, state := newTestGame(t, 3)
	placeTile(state, 0, cellThisZone)
	placeTile(state, 1, cellThisZone)
	putArchitect(c, state, core.ColorBlack, 0)
	fillSpot(c, state, 0, core.ColorWhite)
	fillSpot(c, state, 0, core.ColorBlack)
	putArchitect(c, state, core.ColorWhite, 1)
	fillSpot(c, state, 1, core.ColorOrange)
	fillSpot(c, state, 1, core.ColorOrange)
	fillSpot(c, state, 1, core.ColorBlack)

	assert.Equal(t, []int{2, 0, 0}, IncompleteBuildingScores(state))

	c.PerformAction(state, PerformScoringPhase{Phase: ScoringIncompleteBuildings})
	assert.Equal(t, []int{2, 0, 0}, Scores(state))
	for i := 0; i < 2; i++ {
		assert.Equal(t, 0, state.Tiles[i].CountFilledSpots())
		assert.Equal(t, core.ColorNone, state.Tiles[i].Architect)
	}
	assert.True(t, state.Players[0].HoldingArchitect)
	assert.True(t, state.Players[1].HoldingArchitect)

	// cubes of the finished building join its zone, the others go home
	religious := core.InfluenceReligious
	require.Equal(t, religious, state.Tiles[1].Tile.Influence)
	assert.Equal(t, 1, state.ZoneCubes[religious][0])
	assert.Equal(t, 2, state.ZoneCubes[religious][2])
	assert.Equal(t, 0, state.ZoneCubes[religious][1])
	assert.Equal(t, 21, state.Players[0].PassiveCubes)
	assert.Equal(t, 22, state.Players[1].PassiveCubes)
	assert.Equal(t, 20, state.Players[2].PassiveCubes)

	assert.Equal(t, scoringActions(ScoringReligious), state.PossibleActions)
	require.NoError(t, state.CheckInvariants())
}

func TestInitScoring(t *testing.T) {
	c, state := newTestGame(t, 2)
	placeTile(state, 2, cellThisZone)
	c.PerformAction(state, TakeLeaderCard{Card: core.LeaderEconomic})
	putArchitect(c, state, core.ColorNeutral, 2)
	fillSpot(c, state, 2, core.ColorWhite)
	giveLeader(c, state, core.ColorWhite, core.LeaderReligious)

	c.PerformAction(state, PerformScoringPhase{Phase: ScoringInit})

	tile := &state.Tiles[2]
	assert.Equal(t, core.ColorBlack, tile.StarToken)
	assert.Equal(t, 1, tile.StarCount)
	assert.Equal(t, core.ColorNone, tile.Architect)
	assert.Equal(t, core.ColorNone, state.NeutralArchitectHolder())
	assert.Equal(t, core.LeaderNone, state.Players[0].Leader)
	assert.Equal(t, core.LeaderNone, state.Players[1].Leader)
	assert.Equal(t, core.LeaderSetFor(2), state.AvailableLeaders)
	assert.Equal(t, scoringActions(ScoringIncompleteBuildings), state.PossibleActions)
	require.NoError(t, state.CheckInvariants())
}

func TestBuildingScores(t *testing.T) {
	_, state := newTestGame(t, 2)
	state.Tiles[0].SetStarToken(core.ColorBlack, 2)
	state.Tiles[1].SetStarToken(core.ColorWhite, 1)
	state.Tiles[20].SetStarToken(core.ColorWhite, 3)

	assert.Equal(t, []int{3, 1}, BuildingScores(state, nil))
	assert.Equal(t, []int{0, 7}, BuildingScores(state, StarOverlay{0: {Color: core.ColorWhite, Count: 3}}))

	state.Century = 1
	require.Equal(t, 1, state.Tiles[20].Tile.Century)
	assert.Equal(t, []int{0, StarPoints[3] + 1}, BuildingScores(state, nil))
}

func TestActiveCubeScores(t *testing.T) {
	_, state := newTestGame(t, 3)
	setReserve(t, state, 1, 0, 10)
	state.Players[2].ActiveCubes = 9
	assert.Equal(t, []int{1, 0, 4}, ActiveCubeScores(state))
}

func TestCenturyEnd(t *testing.T) {
	tests := []struct {
		name     string
		century  int
		gameOver bool
	}{
		{"next century", 0, false},
		{"last century", core.LastCentury, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, state := newTestGame(t, 2)
			state.Century = tt.century
			for i := range state.Players {
				state.Players[i].HoldingArchitect = false
			}
			setReserve(t, state, 0, 1, 0)
			setReserve(t, state, 1, 0, 0)
			state.ZoneCubes[core.InfluenceCitadel][0] -= 5
			state.ZoneCubes[core.InfluenceReligious][0] += 5
			c.ConfigurePossibleActions(state)
			require.NoError(t, state.CheckInvariants())

			// black spends the last cube, white has none
			index, _ := findAction(state, func(a SendCubesToZone) bool { return a.Zone == core.InfluencePolitic })
			require.GreaterOrEqual(t, index, 0)
			_, err := c.PerformIndex(state, index)
			require.NoError(t, err)
			assert.Equal(t, scoringActions(ScoringInit), state.PossibleActions)

			assert.Equal(t, 10, c.RunAutomaticActions(state))

			// religious 5, politic 1+2 carried, economic 1 carried; white wins the citadel
			assert.Equal(t, []int{9, 44}, Scores(state))
			for zone := range state.ZoneCubes {
				assert.Equal(t, 0, state.ZoneTotal(core.InfluenceType(zone)))
			}
			for i := range state.Players {
				assert.Equal(t, 25, state.Players[i].PassiveCubes)
				assert.Equal(t, 0, state.Players[i].ActiveCubes)
			}
			assert.Equal(t, tt.gameOver, state.GameOver)
			require.NoError(t, state.CheckInvariants())

			if tt.gameOver {
				assert.Equal(t, core.LastCentury, state.Century)
				assert.Equal(t, "Game over", state.PossibleActions.Message)
				require.Equal(t, 1, state.PossibleActions.Len())
				assert.Equal(t, ChangeReinit{}, state.PossibleActions.Actions[0].(Explicit).Change)
				return
			}
			assert.Equal(t, tt.century+1, state.Century)
			assert.Equal(t, 0, state.CurrentPlayer)
			assert.Equal(t, "Move your architect to a new building", state.PossibleActions.Message)
			assert.False(t, state.PossibleActions.IsAutomatic())
		})
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	c, state := newTestGame(t, 3)
	c.Apply(state, ChangeEndGame{})
	require.True(t, state.GameOver)

	c.PerformAction(state, state.PossibleActions.Actions[0])
	assert.False(t, state.GameOver)
	assert.Equal(t, 0, state.Century)
	assert.Equal(t, playerNames(3)[2], state.Players[2].Name)
	require.NoError(t, state.CheckInvariants())
}
