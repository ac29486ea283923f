package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionForTileLocation(t *testing.T) {
	tests := []struct {
		name     string
		column   int
		line     int
		found    bool
		expected BoardAction
	}{
		{"religious top left", 0, 0, true, BoardAction{InfluenceReligious, 1, ActionSendCubesToThisZone, 2}},
		{"politic move cubes", 7, 2, true, BoardAction{InfluencePolitic, 2, ActionMoveCubesBetweenZones, 2}},
		{"economic activate", 11, 7, true, BoardAction{InfluenceEconomic, 3, ActionActivateCubes, 4}},
		{"cultural score", 17, 7, true, BoardAction{InfluenceCultural, 3, ActionScorePoints, 6}},
		{"empty district cell", 1, 0, false, BoardAction{}},
		{"citadel column", 8, 3, false, BoardAction{}},
		{"outside grid", BoardColumns, 0, false, BoardAction{}},
		{"negative line", 0, -1, false, BoardAction{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, ok := ActionForTileLocation(tt.column, tt.line)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, action)
		})
	}
}

func TestActionForTileLocation_Total(t *testing.T) {
	count := 0
	for column := 0; column < BoardColumns; column++ {
		for line := 0; line < BoardLines; line++ {
			action, ok := ActionForTileLocation(column, line)
			if !ok {
				continue
			}
			count++
			assert.GreaterOrEqual(t, action.CubesPerSpot, 1)
			assert.LessOrEqual(t, action.CubesPerSpot, 3)
			assert.NotEqual(t, InfluenceCitadel, action.Influence)
		}
	}
	assert.Equal(t, len(AllTiles()), count)
}

func TestBoardPositions(t *testing.T) {
	positions := BoardPositions()
	require.Len(t, positions, 48)

	for i := 1; i < len(positions); i++ {
		assert.Less(t, positions[i-1].ToIndex(BoardColumns), positions[i].ToIndex(BoardColumns), "positions must be row-major")
	}

	positions[0] = NewVector2d(-1, -1)
	assert.NotEqual(t, positions[0], BoardPositions()[0], "callers must not alias the layout")
}

func TestTileCount(t *testing.T) {
	assert.Equal(t, 3, TileCount(0, InfluenceReligious))
	assert.Equal(t, 3, TileCount(LastCentury, InfluenceCultural))
	assert.Equal(t, 0, TileCount(0, InfluenceCitadel))
	assert.Equal(t, 0, TileCount(NumCenturies, InfluencePolitic))

	tiles := AllTiles()
	assert.Len(t, tiles, 48)
	assert.Equal(t, Tile{InfluenceReligious, 0, 0}, tiles[0])
	assert.Equal(t, Tile{InfluenceCultural, LastCentury, 2}, tiles[len(tiles)-1])
}

func TestLeaderSetFor(t *testing.T) {
	assert.Equal(t, []LeaderCard{LeaderReligious, LeaderEconomic, LeaderCitadel}, LeaderSetFor(2))
	assert.Equal(t, []LeaderCard{LeaderReligious, LeaderEconomic, LeaderCitadel}, LeaderSetFor(3))
	assert.Len(t, LeaderSetFor(4), 5)
	assert.Len(t, LeaderSetFor(5), 5)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "Brown", ColorBrown.String())
	assert.Equal(t, "Unknown(42)", Color(42).String())
	assert.Equal(t, "Citadel", InfluenceCitadel.String())
	assert.Equal(t, "Economic", LeaderEconomic.String())
	assert.Equal(t, "ScorePoints", ActionScorePoints.String())
	assert.True(t, ColorGreen.IsPlayer())
	assert.False(t, ColorNeutral.IsPlayer())
	assert.False(t, ColorNone.IsPlayer())
}
