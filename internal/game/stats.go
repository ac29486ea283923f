package game

import (
	"sort"

	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
)

// Standing is the ranking entry of one seat.
type Standing struct {
	Seat  int
	Color core.Color
	Name  string
	Score int
	// Cubes still in play, used to break score ties.
	ActiveCubes int
}

// Standings ranks the players by score. Ties go to the player with more
// active cubes, then to the lower seat.
func Standings(state *GameState) []Standing {
	standings := make([]Standing, len(state.Players))
	for seat := range state.Players {
		p := &state.Players[seat]
		standings[seat] = Standing{
			Seat:        seat,
			Color:       p.Color,
			Name:        p.Name,
			Score:       p.Score,
			ActiveCubes: p.ActiveCubes,
		}
	}
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Score != standings[j].Score {
			return standings[i].Score > standings[j].Score
		}
		return standings[i].ActiveCubes > standings[j].ActiveCubes
	})
	return standings
}

// Scores returns the score of every seat
func Scores(state *GameState) []int {
	scores := make([]int, len(state.Players))
	for seat := range state.Players {
		scores[seat] = state.Players[seat].Score
	}
	return scores
}
