package game

import "github.com/ArcBees/quebec-game-sub001/internal/game/core"

const (
	// StartingActiveCubes is how many of a player's cubes start active.
	StartingActiveCubes = 3
	// MaxArchitectActivation caps the cubes activated by an architect move.
	MaxArchitectActivation = 3
	// CitadelLeaderCubes caps the cubes the citadel leader sends to its zone.
	CitadelLeaderCubes = 3
	// CulturalLeaderPoints is scored when taking the cultural leader.
	CulturalLeaderPoints = 3
	// PoliticLeaderPoints is scored for working on someone else's building.
	PoliticLeaderPoints = 1
)

var startingCubes = map[int]int{2: 25, 3: 25, 4: 22, 5: 20}

// StartingCubes returns the cube allotment of each player for a table size,
// or 0 for unsupported sizes.
func StartingCubes(players int) int {
	return startingCubes[players]
}

// StarPoints maps a star count to the points scored by the star owner.
var StarPoints = [4]int{0, 1, 3, 6}

// ValidPlayerCount reports whether a game can be set up for n players
func ValidPlayerCount(n int) bool {
	return n >= core.MinPlayers && n <= core.MaxPlayers
}
