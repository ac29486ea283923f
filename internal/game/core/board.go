package core

import "fmt"

const (
	BoardColumns = 18
	BoardLines   = 8

	// SpotsPerTile is the number of worker spots on every building.
	SpotsPerTile = 3
)

// ActionType is the category of effect a board position grants to players
// who send workers to the building standing on it.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionSendCubesToThisZone
	ActionSendCubesToAnyZone
	ActionMoveCubesBetweenZones
	ActionActivateCubes
	ActionScorePoints
)

func (a ActionType) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSendCubesToThisZone:
		return "SendCubesToThisZone"
	case ActionSendCubesToAnyZone:
		return "SendCubesToAnyZone"
	case ActionMoveCubesBetweenZones:
		return "MoveCubesBetweenZones"
	case ActionActivateCubes:
		return "ActivateCubes"
	case ActionScorePoints:
		return "ScorePoints"
	default:
		return fmt.Sprintf("Unknown(%d)", int(a))
	}
}

// BoardAction is the fixed rule effect bound to a board position.
type BoardAction struct {
	// Influence is the district the position belongs to.
	Influence    InfluenceType
	CubesPerSpot int
	Type         ActionType
	Amount       int
}

// districtSlot is one cell of the pattern shared by the four districts.
type districtSlot struct {
	column, line int
	action       BoardAction
}

var districtPattern = [...]districtSlot{
	{0, 0, BoardAction{CubesPerSpot: 1, Type: ActionSendCubesToThisZone, Amount: 2}},
	{2, 0, BoardAction{CubesPerSpot: 1, Type: ActionActivateCubes, Amount: 2}},
	{1, 1, BoardAction{CubesPerSpot: 1, Type: ActionScorePoints, Amount: 2}},
	{3, 2, BoardAction{CubesPerSpot: 2, Type: ActionMoveCubesBetweenZones, Amount: 2}},
	{0, 3, BoardAction{CubesPerSpot: 2, Type: ActionSendCubesToAnyZone, Amount: 2}},
	{2, 3, BoardAction{CubesPerSpot: 2, Type: ActionActivateCubes, Amount: 3}},
	{1, 4, BoardAction{CubesPerSpot: 2, Type: ActionSendCubesToThisZone, Amount: 3}},
	{3, 5, BoardAction{CubesPerSpot: 2, Type: ActionScorePoints, Amount: 4}},
	{0, 6, BoardAction{CubesPerSpot: 3, Type: ActionSendCubesToAnyZone, Amount: 3}},
	{2, 6, BoardAction{CubesPerSpot: 3, Type: ActionMoveCubesBetweenZones, Amount: 3}},
	{1, 7, BoardAction{CubesPerSpot: 3, Type: ActionActivateCubes, Amount: 4}},
	{3, 7, BoardAction{CubesPerSpot: 3, Type: ActionScorePoints, Amount: 6}},
}

// districtColumns maps each building district to its first board column.
// Columns 8 and 9 hold the citadel, which has no building position.
var districtColumns = map[InfluenceType]int{
	InfluenceReligious: 0,
	InfluencePolitic:   4,
	InfluenceEconomic:  10,
	InfluenceCultural:  14,
}

var (
	boardActions   [BoardColumns][BoardLines]BoardAction
	boardPositions []Vector2d
)

func init() {
	for influence, column := range districtColumns {
		for _, slot := range districtPattern {
			action := slot.action
			action.Influence = influence
			boardActions[column+slot.column][slot.line] = action
		}
	}
	for line := 0; line < BoardLines; line++ {
		for column := 0; column < BoardColumns; column++ {
			if boardActions[column][line].Type != ActionNone {
				boardPositions = append(boardPositions, NewVector2d(column, line))
			}
		}
	}
}

// ActionForTileLocation returns the action bound to a grid position. The
// second result is false for cells without an action and for positions
// outside the grid.
func ActionForTileLocation(column, line int) (BoardAction, bool) {
	if !NewVector2d(column, line).IsValid(BoardColumns, BoardLines) {
		return BoardAction{}, false
	}
	action := boardActions[column][line]
	return action, action.Type != ActionNone
}

// BoardPositions returns every position holding a tile, in row-major order.
func BoardPositions() []Vector2d {
	positions := make([]Vector2d, len(boardPositions))
	copy(positions, boardPositions)
	return positions
}
