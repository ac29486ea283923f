package ai

import (
	"math"

	"github.com/ArcBees/quebec-game-sub001/internal/game"
	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
)

// Evaluate scores a state from the point of view of one seat. Higher is
// better for that seat.
type Evaluate func(state *game.GameState, seat int) float64

// Weights gives the worth of one cube, in points, depending on where it is.
type Weights struct {
	Zone    float64
	Tile    float64
	Active  float64
	Passive float64
}

// DefaultWeights values committed cubes above the ones still in the reserve.
var DefaultWeights = Weights{
	Zone:    2,
	Tile:    2,
	Active:  1,
	Passive: 0.5,
}

// PendingStars returns the stars the unfinished buildings of the century
// would carry if they were completed now. Each goes to the player entitled
// to the architect standing on the building.
func PendingStars(state *game.GameState) game.StarOverlay {
	overlay := game.StarOverlay{}
	for i := range state.Tiles {
		t := &state.Tiles[i]
		if t.Tile.Century != state.Century || t.Architect == core.ColorNone || t.StarCount > 0 {
			continue
		}
		owner := state.ArchitectController(t.Architect)
		if owner == core.ColorNone {
			continue
		}
		overlay[i] = game.Star{Color: owner, Count: max(1, t.DistinctColors())}
	}
	return overlay
}

// PlayerValues estimates the worth of every seat: the score plus the stars of
// the century and the cubes still to be scored.
func PlayerValues(state *game.GameState, w Weights) []float64 {
	values := make([]float64, len(state.Players))
	var buildings []int
	if !state.GameOver {
		buildings = game.BuildingScores(state, PendingStars(state))
	}
	for seat := range state.Players {
		p := &state.Players[seat]
		v := float64(p.Score)
		if buildings != nil {
			v += float64(buildings[seat])
			v += w.Zone * float64(state.CubesInZones(seat))
			v += w.Tile * float64(state.CubesOnTiles(p.Color))
			v += w.Active * float64(p.ActiveCubes)
			v += w.Passive * float64(p.PassiveCubes)
		}
		values[seat] = v
	}
	return values
}

// Heuristic returns the lead of seat over its best opponent, using the
// default weights.
func Heuristic(state *game.GameState, seat int) float64 {
	return Lead(PlayerValues(state, DefaultWeights), seat)
}

// WeightedHeuristic is Heuristic with custom weights
func WeightedHeuristic(w Weights) Evaluate {
	return func(state *game.GameState, seat int) float64 {
		return Lead(PlayerValues(state, w), seat)
	}
}

// Lead returns values[seat] minus the best other value
func Lead(values []float64, seat int) float64 {
	best := math.Inf(-1)
	for i, v := range values {
		if i != seat && v > best {
			best = v
		}
	}
	if math.IsInf(best, -1) {
		return values[seat]
	}
	return values[seat] - best
}
