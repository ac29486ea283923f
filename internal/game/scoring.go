package game

import (
	"fmt"
	"sort"

	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
)

// ScoringPhase is one step of the end of century sequence.
type ScoringPhase int

const (
	ScoringInit ScoringPhase = iota
	ScoringIncompleteBuildings
	ScoringReligious
	ScoringPolitic
	ScoringEconomic
	ScoringCultural
	ScoringCitadel
	ScoringActiveCubes
	ScoringBuildings
	ScoringFinishGame
	ScoringPrepareNextCentury
)

func (p ScoringPhase) String() string {
	switch p {
	case ScoringInit:
		return "INIT_SCORING"
	case ScoringIncompleteBuildings:
		return "SCORE_INCOMPLETE_BUILDINGS"
	case ScoringReligious:
		return "SCORE_RELIGIOUS"
	case ScoringPolitic:
		return "SCORE_POLITIC"
	case ScoringEconomic:
		return "SCORE_ECONOMIC"
	case ScoringCultural:
		return "SCORE_CULTURAL"
	case ScoringCitadel:
		return "SCORE_CITADEL"
	case ScoringActiveCubes:
		return "SCORE_ACTIVE_CUBES"
	case ScoringBuildings:
		return "SCORE_BUILDINGS"
	case ScoringFinishGame:
		return "FINISH_GAME"
	case ScoringPrepareNextCentury:
		return "PREPARE_NEXT_CENTURY"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Zone returns the influence zone scored by the phase
func (p ScoringPhase) Zone() (core.InfluenceType, bool) {
	if p < ScoringReligious || p > ScoringCitadel {
		return 0, false
	}
	return core.ZoneScoringOrder[p-ScoringReligious], true
}

// Next returns the phase following p in the given century
func (p ScoringPhase) Next(century int) ScoringPhase {
	switch p {
	case ScoringBuildings:
		if century >= core.LastCentury {
			return ScoringFinishGame
		}
		return ScoringPrepareNextCentury
	case ScoringFinishGame, ScoringPrepareNextCentury:
		return p
	default:
		return p + 1
	}
}

func scoringActions(phase ScoringPhase) *PossibleActions {
	return &PossibleActions{
		Actions: []Action{PerformScoringPhase{Phase: phase}},
		Message: "Scoring: " + phase.String(),
	}
}

// ZoneRanking returns the seats with cubes in the zone, most cubes first.
// Ties go to the lower seat.
func ZoneRanking(state *GameState, zone core.InfluenceType) []int {
	var seats []int
	for seat := range state.Players {
		if state.ZoneCubes[zone][seat] > 0 {
			seats = append(seats, seat)
		}
	}
	sort.SliceStable(seats, func(i, j int) bool {
		return state.ZoneCubes[zone][seats[i]] > state.ZoneCubes[zone][seats[j]]
	})
	return seats
}

// ZoneScores returns the points of every seat for a zone majority. The first
// ranked player scores every cube in the zone, the second half of its own
// cubes. The citadel only pays the first.
func ZoneScores(state *GameState, zone core.InfluenceType) []int {
	scores := make([]int, len(state.Players))
	ranking := ZoneRanking(state, zone)
	if len(ranking) > 0 {
		scores[ranking[0]] = state.ZoneTotal(zone)
	}
	if len(ranking) > 1 && zone != core.InfluenceCitadel {
		scores[ranking[1]] = state.ZoneCubes[zone][ranking[1]] / 2
	}
	return scores
}

// IncompleteBuildingScores returns one point per filled spot of every
// unfinished building of the century, for the controller of its architect.
func IncompleteBuildingScores(state *GameState) []int {
	scores := make([]int, len(state.Players))
	for i := range state.Tiles {
		t := &state.Tiles[i]
		if t.Tile.Century != state.Century || t.IsComplete() || t.Architect == core.ColorNone {
			continue
		}
		if seat := state.SeatOf(state.ArchitectController(t.Architect)); seat >= 0 {
			scores[seat] += t.CountFilledSpots()
		}
	}
	return scores
}

// ActiveCubeScores returns one point per two active cubes
func ActiveCubeScores(state *GameState) []int {
	scores := make([]int, len(state.Players))
	for seat := range state.Players {
		scores[seat] = state.Players[seat].ActiveCubes / 2
	}
	return scores
}

// StarOverlay holds hypothetical star tokens by tile index. Entries replace
// the token of the tile for scoring purposes only.
type StarOverlay map[int]Star

// Star is a star token.
type Star struct {
	Color core.Color
	Count int
}

// BuildingScores returns the points of the star owners of the century's
// buildings. The overlay lets callers score stars that are not placed yet.
func BuildingScores(state *GameState, overlay StarOverlay) []int {
	scores := make([]int, len(state.Players))
	for i := range state.Tiles {
		t := &state.Tiles[i]
		if t.Tile.Century != state.Century {
			continue
		}
		star := Star{Color: t.StarToken, Count: t.StarCount}
		if s, ok := overlay[i]; ok {
			star = s
		}
		if star.Color == core.ColorNone || star.Count <= 0 {
			continue
		}
		if seat := state.SeatOf(star.Color); seat >= 0 {
			scores[seat] += StarPoints[min(star.Count, len(StarPoints)-1)] + state.Century
		}
	}
	return scores
}

func scoreChanges(state *GameState, scores []int) []Change {
	var changes []Change
	for seat, points := range scores {
		if points != 0 {
			changes = append(changes, ChangeScorePoints{Color: state.Players[seat].Color, Points: points})
		}
	}
	return changes
}

func (c *Controller) executeScoringPhase(state *GameState, a PerformScoringPhase) Change {
	var changes []Change
	switch a.Phase {
	case ScoringInit:
		changes = initScoringChanges(state)
	case ScoringIncompleteBuildings:
		changes = append(scoreChanges(state, IncompleteBuildingScores(state)), clearBuildingChanges(state)...)
	case ScoringReligious, ScoringPolitic, ScoringEconomic, ScoringCultural, ScoringCitadel:
		zone, _ := a.Phase.Zone()
		changes = append(scoreChanges(state, ZoneScores(state, zone)), zoneCarryChanges(state, zone)...)
	case ScoringActiveCubes:
		changes = scoreChanges(state, ActiveCubeScores(state))
	case ScoringBuildings:
		changes = scoreChanges(state, BuildingScores(state, nil))
	case ScoringPrepareNextCentury:
		return composite(ChangePrepareNextCentury{}, orNextPlayer(a.Followup))
	case ScoringFinishGame:
		return composite(ChangeEndGame{}, a.Followup)
	default:
		panic(fmt.Sprintf("unknown scoring phase %d", a.Phase))
	}
	next := scoringActions(a.Phase.Next(state.Century))
	changes = append(changes, ChangeQueuePossibleActions{Actions: *next})
	return composite(changes...)
}

// initScoringChanges completes the neutral architect's building for the
// economic leader, takes the neutral architect out of play and returns the
// leader cards.
func initScoringChanges(state *GameState) []Change {
	var changes []Change
	if tile := state.ArchitectTile(core.ColorNeutral); tile >= 0 {
		holder := state.LeaderHolder(core.LeaderEconomic)
		t := &state.Tiles[tile]
		if filled := t.CountFilledSpots(); holder != core.ColorNone && filled > 0 && t.StarToken == core.ColorNone {
			changes = append(changes, ChangeIncreaseStar{Tile: tile, Color: holder, Count: filled})
		}
	}
	if from := architectLocation(state, core.ColorNeutral); from != ArchitectDestination(ArchitectOffBoard{Architect: core.ColorNeutral}) {
		changes = append(changes, NewChangeMoveArchitect(from, ArchitectOffBoard{Architect: core.ColorNeutral}))
	}
	for i := range state.Players {
		p := &state.Players[i]
		if p.Leader != core.LeaderNone {
			changes = append(changes, ChangeMoveLeader{Card: p.Leader, From: LeaderWithPlayer{Color: p.Color}, To: LeaderOnBoard{}})
		}
	}
	return changes
}

// clearBuildingChanges empties the century's buildings: cubes on finished
// buildings join the building's influence zone, the others go back to the
// passive reserve. Architects return to the players controlling them.
func clearBuildingChanges(state *GameState) []Change {
	var changes []Change
	for i := range state.Tiles {
		t := &state.Tiles[i]
		if t.Tile.Century != state.Century {
			continue
		}
		complete := t.IsComplete()
		perSpot := 0
		if t.CountFilledSpots() > 0 {
			perSpot = t.BoardAction().CubesPerSpot
		}
		for spot := core.SpotsPerTile - 1; spot >= 0; spot-- {
			color := t.Spots[spot]
			if color == core.ColorNone {
				continue
			}
			var to CubeDestination = PlayerCubes{Color: color}
			if complete {
				to = ZoneCubes{Zone: t.Tile.Influence, Color: color}
			}
			changes = append(changes, NewChangeMoveCubes(perSpot, TileCubes{Tile: i, Color: color, Spot: spot}, to))
		}
		if t.Architect != core.ColorNone {
			from := ArchitectOnTile{Architect: t.Architect, Tile: i}
			var to ArchitectDestination = ArchitectOffBoard{Architect: t.Architect}
			if holder := state.ArchitectController(t.Architect); holder != core.ColorNone {
				to = ArchitectInHand{Architect: t.Architect, Holder: holder}
			}
			changes = append(changes, NewChangeMoveArchitect(from, to))
		}
	}
	return changes
}

// zoneCarryChanges moves the cubes out of a scored zone. The majority holder
// carries half of its cubes into the next zone, everything else returns to
// the passive reserves. Nothing is carried out of the citadel.
func zoneCarryChanges(state *GameState, zone core.InfluenceType) []Change {
	var changes []Change
	ranking := ZoneRanking(state, zone)
	for rank, seat := range ranking {
		color := state.Players[seat].Color
		own := state.ZoneCubes[zone][seat]
		carry := 0
		if rank == 0 && zone != core.InfluenceCitadel {
			carry = own / 2
		}
		if carry > 0 {
			changes = append(changes, NewChangeMoveCubes(carry,
				ZoneCubes{Zone: zone, Color: color}, ZoneCubes{Zone: zone + 1, Color: color}))
		}
		if rest := own - carry; rest > 0 {
			changes = append(changes, NewChangeMoveCubes(rest, ZoneCubes{Zone: zone, Color: color}, PlayerCubes{Color: color}))
		}
	}
	return changes
}
