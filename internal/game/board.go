package game

import (
	"fmt"

	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
)

// TileState is the mutable part of a building on the board.
type TileState struct {
	Tile     core.Tile
	Position core.Vector2d
	// Architect is ColorNone, ColorNeutral or a player color.
	Architect      core.Color
	Spots          [core.SpotsPerTile]core.Color
	BuildingFacing bool
	StarToken      core.Color
	StarCount      int
}

// IsAvailableForArchitect reports whether the tile belongs to the given
// century and has no architect.
func (t *TileState) IsAvailableForArchitect(century int) bool {
	return t.Tile.Century == century && t.Architect == core.ColorNone
}

// ColorInSpot returns the color of the cubes in spot i
func (t *TileState) ColorInSpot(i int) core.Color {
	return t.Spots[i]
}

func (t *TileState) SetArchitect(color core.Color) {
	t.Architect = color
}

func (t *TileState) SetStarToken(color core.Color, count int) {
	t.StarToken = color
	t.StarCount = count
}

// CountFilledSpots returns how many worker spots hold cubes
func (t *TileState) CountFilledSpots() int {
	n := 0
	for _, c := range t.Spots {
		if c != core.ColorNone {
			n++
		}
	}
	return n
}

// NextEmptySpot returns the lowest empty spot, or -1 when the building is full.
func (t *TileState) NextEmptySpot() int {
	for i, c := range t.Spots {
		if c == core.ColorNone {
			return i
		}
	}
	return -1
}

// IsComplete reports whether the building was finished, either by filling
// its last spot or by receiving a star token.
func (t *TileState) IsComplete() bool {
	return t.StarToken != core.ColorNone || t.NextEmptySpot() < 0
}

// BoardAction returns the rule effect bound to the tile's position
func (t *TileState) BoardAction() core.BoardAction {
	action, ok := core.ActionForTileLocation(t.Position.X, t.Position.Y)
	core.Assert(ok, core.ErrInvalidTile, "no board action at %s", t.Position)
	return action
}

// CubesOf returns the number of cubes of a color on the building
func (t *TileState) CubesOf(color core.Color) int {
	if color == core.ColorNone {
		return 0
	}
	n := 0
	for _, c := range t.Spots {
		if c == color {
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return n * t.BoardAction().CubesPerSpot
}

// DistinctColors counts the different player colors among the filled spots
func (t *TileState) DistinctColors() int {
	seen := map[core.Color]bool{}
	for _, c := range t.Spots {
		if c != core.ColorNone {
			seen[c] = true
		}
	}
	return len(seen)
}

func (t *TileState) checkSpotOrder() error {
	gap := false
	for i, c := range t.Spots {
		if c == core.ColorNone {
			gap = true
		} else if gap {
			return fmt.Errorf("spot %d filled after an empty spot", i)
		}
	}
	return nil
}
