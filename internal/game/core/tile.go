package core

import "fmt"

const (
	NumCenturies = 4
	LastCentury  = NumCenturies - 1
)

// Tile is the immutable description of a building.
type Tile struct {
	Influence InfluenceType
	Century   int
	Index     int
}

func (t Tile) String() string {
	return fmt.Sprintf("%s-%d-%d", t.Influence, t.Century, t.Index)
}

// TileCount returns how many buildings of the given influence exist in a century.
func TileCount(century int, influence InfluenceType) int {
	if century < 0 || century > LastCentury {
		return 0
	}
	if influence == InfluenceCitadel || !influence.IsValid() {
		return 0
	}
	return 3
}

// AllTiles lists every building ordered by century, influence and index.
func AllTiles() []Tile {
	var tiles []Tile
	for century := 0; century < NumCenturies; century++ {
		for _, influence := range BuildingInfluences {
			for i := 0; i < TileCount(century, influence); i++ {
				tiles = append(tiles, Tile{Influence: influence, Century: century, Index: i})
			}
		}
	}
	return tiles
}
