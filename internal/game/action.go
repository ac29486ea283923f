package game

import (
	"fmt"

	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
)

// Action is one legal move. Actions are immutable values; executing one on a
// state yields a Change and never modifies the state.
type Action interface {
	// Automatic actions are applied without a player decision and are always
	// alone in their PossibleActions.
	Automatic() bool
	fmt.Stringer
	isAction()
}

// MoveArchitect moves the current player's architect, or the neutral one,
// onto Destination. A nil Destination sends it off the board.
type MoveArchitect struct {
	Destination     *int
	Neutral         bool
	CubesToActivate int
	Followup        Change
}

// SendWorkers fills the next empty spot of a building.
type SendWorkers struct {
	FromActive bool
	Tile       int
	Followup   Change
}

// SendCubesToZone moves cubes from the reserve into an influence zone. Unless
// FromActive is set, passive cubes are spent first.
type SendCubesToZone struct {
	Count      int
	FromActive bool
	Zone       core.InfluenceType
	Followup   Change
}

// MoveCubes moves the current player's cubes between two influence zones.
type MoveCubes struct {
	Count    int
	From     core.InfluenceType
	To       core.InfluenceType
	Followup Change
}

type ActivateCubes struct {
	Count    int
	Followup Change
}

type TakeLeaderCard struct {
	Card     core.LeaderCard
	Followup Change
}

type ScorePoints struct {
	Points   int
	Followup Change
}

// PerformScoringPhase runs one step of the end of century sequence.
type PerformScoringPhase struct {
	Phase    ScoringPhase
	Followup Change
}

// HighlightKind tells a UI what an explicit action points at.
type HighlightKind int

const (
	HighlightNone HighlightKind = iota
	HighlightTile
	HighlightZone
	HighlightPlayer
)

// Highlight is the board element a scripted action draws attention to.
type Highlight struct {
	Kind   HighlightKind
	Tile   int
	Zone   core.InfluenceType
	Player core.Color
}

// Explicit is a scripted action carrying a prebuilt change.
type Explicit struct {
	Message   string
	Change    Change
	Highlight Highlight
}

func (MoveArchitect) isAction()       {}
func (SendWorkers) isAction()         {}
func (SendCubesToZone) isAction()     {}
func (MoveCubes) isAction()           {}
func (ActivateCubes) isAction()       {}
func (TakeLeaderCard) isAction()      {}
func (ScorePoints) isAction()         {}
func (PerformScoringPhase) isAction() {}
func (Explicit) isAction()            {}

func (MoveArchitect) Automatic() bool       { return false }
func (SendWorkers) Automatic() bool         { return false }
func (SendCubesToZone) Automatic() bool     { return false }
func (MoveCubes) Automatic() bool           { return false }
func (ActivateCubes) Automatic() bool       { return false }
func (TakeLeaderCard) Automatic() bool      { return false }
func (ScorePoints) Automatic() bool         { return false }
func (PerformScoringPhase) Automatic() bool { return true }
func (Explicit) Automatic() bool            { return false }

func (a MoveArchitect) String() string {
	architect := "architect"
	if a.Neutral {
		architect = "neutral architect"
	}
	if a.Destination == nil {
		return fmt.Sprintf("Move %s off board", architect)
	}
	return fmt.Sprintf("Move %s to tile %d", architect, *a.Destination)
}

func (a SendWorkers) String() string {
	return fmt.Sprintf("Send workers to tile %d", a.Tile)
}

func (a SendCubesToZone) String() string {
	return fmt.Sprintf("Send %d cubes to %s zone", a.Count, a.Zone)
}

func (a MoveCubes) String() string {
	return fmt.Sprintf("Move %d cubes from %s to %s", a.Count, a.From, a.To)
}

func (a ActivateCubes) String() string { return fmt.Sprintf("Activate %d cubes", a.Count) }

func (a TakeLeaderCard) String() string { return fmt.Sprintf("Take %s leader", a.Card) }

func (a ScorePoints) String() string { return fmt.Sprintf("Score %d points", a.Points) }

func (a PerformScoringPhase) String() string { return "Scoring: " + a.Phase.String() }

func (a Explicit) String() string { return a.Message }

// NewMoveArchitect builds an architect move to a tile
func NewMoveArchitect(tile int, neutral bool, cubesToActivate int) MoveArchitect {
	return MoveArchitect{Destination: &tile, Neutral: neutral, CubesToActivate: cubesToActivate}
}

// NewHighlightTileAction builds a scripted action pointing at a tile
func NewHighlightTileAction(message string, tile int, change Change) Explicit {
	return Explicit{Message: message, Change: change, Highlight: Highlight{Kind: HighlightTile, Tile: tile}}
}

// NewHighlightZoneAction builds a scripted action pointing at an influence zone
func NewHighlightZoneAction(message string, zone core.InfluenceType, change Change) Explicit {
	return Explicit{Message: message, Change: change, Highlight: Highlight{Kind: HighlightZone, Zone: zone}}
}

// NewHighlightPlayerAction builds a scripted action pointing at a player
func NewHighlightPlayerAction(message string, color core.Color, change Change) Explicit {
	return Explicit{Message: message, Change: change, Highlight: Highlight{Kind: HighlightPlayer, Player: color}}
}

// CreateSkipAction returns the action that gives up the current choice and
// passes the turn.
func CreateSkipAction() Explicit {
	return createSkipAction(nil)
}

func createSkipAction(followup Change) Explicit {
	return Explicit{Message: "Skip", Change: orNextPlayer(followup)}
}

// Execute returns the change performing action on state. The state is not
// modified.
func (c *Controller) Execute(state *GameState, action Action) Change {
	switch a := action.(type) {
	case MoveArchitect:
		return c.executeMoveArchitect(state, a)
	case SendWorkers:
		return c.executeSendWorkers(state, a)
	case SendCubesToZone:
		return c.executeSendCubesToZone(state, a)
	case MoveCubes:
		return c.executeMoveCubes(state, a)
	case ActivateCubes:
		return c.executeActivateCubes(state, a)
	case TakeLeaderCard:
		return c.executeTakeLeaderCard(state, a)
	case ScorePoints:
		return composite(ChangeScorePoints{Color: state.Current().Color, Points: a.Points}, orNextPlayer(a.Followup))
	case PerformScoringPhase:
		return c.executeScoringPhase(state, a)
	case Explicit:
		core.Assert(a.Change != nil, core.ErrNoPossibleActions, "explicit action %q has no change", a.Message)
		return a.Change
	default:
		panic(fmt.Sprintf("unknown action %T", action))
	}
}

func (c *Controller) executeMoveArchitect(state *GameState, a MoveArchitect) Change {
	player := state.Current()
	architect := player.Color
	if a.Neutral {
		architect = core.ColorNeutral
		core.Assert(player.Leader == core.LeaderEconomic, core.ErrArchitectMismatch,
			"%s moves the neutral architect without the economic leader", player.Color)
	}
	from := architectLocation(state, architect)
	_, offBoard := from.(ArchitectOffBoard)
	core.Assert(!offBoard, core.ErrArchitectMismatch, "architect %s is off board", architect)

	var to ArchitectDestination = ArchitectOffBoard{Architect: architect}
	if a.Destination != nil {
		tile := tileAt(state, *a.Destination)
		core.Assert(tile.IsAvailableForArchitect(state.Century), core.ErrInvalidTile,
			"tile %d is not available in century %d", *a.Destination, state.Century)
		core.Assert(!tile.IsComplete(), core.ErrInvalidTile, "tile %d is already built", *a.Destination)
		to = ArchitectOnTile{Architect: architect, Tile: *a.Destination}
	}

	var changes []Change
	if left, ok := from.(ArchitectOnTile); ok {
		// the building left behind is finished with whatever workers it has
		changes = append(changes, ChangeIncreaseStar{
			Tile:  left.Tile,
			Color: player.Color,
			Count: tileAt(state, left.Tile).DistinctColors(),
		})
	}
	changes = append(changes, NewChangeMoveArchitect(from, to))
	if a.CubesToActivate > 0 {
		changes = append(changes, NewChangeMoveCubes(a.CubesToActivate,
			PlayerCubes{Color: player.Color}, PlayerCubes{Color: player.Color, Active: true}))
	}
	changes = append(changes, orNextPlayer(a.Followup))
	return composite(changes...)
}

func (c *Controller) executeSendWorkers(state *GameState, a SendWorkers) Change {
	player := state.Current()
	color := player.Color
	tile := tileAt(state, a.Tile)
	spot := tile.NextEmptySpot()
	core.Assert(spot >= 0, core.ErrSpotOccupied, "tile %d is full", a.Tile)
	core.Assert(tile.Architect != core.ColorNone, core.ErrArchitectMismatch, "tile %d has no architect", a.Tile)
	perSpot := tile.BoardAction().CubesPerSpot
	target := TileCubes{Tile: a.Tile, Color: color, Spot: spot}

	var changes []Change
	if a.FromActive {
		core.Assert(player.ActiveCubes >= perSpot, core.ErrInsufficientCubes,
			"%s has %d active cubes, needs %d", color, player.ActiveCubes, perSpot)
		changes = append(changes, NewChangeMoveCubes(perSpot, PlayerCubes{Color: color, Active: true}, target))
	} else {
		if shortfall := perSpot - player.PassiveCubes; shortfall > 0 {
			core.Assert(player.ActiveCubes >= shortfall, core.ErrInsufficientCubes,
				"%s has %d cubes, needs %d", color, player.ReserveCubes(), perSpot)
			changes = append(changes, NewChangeMoveCubes(shortfall,
				PlayerCubes{Color: color, Active: true}, PlayerCubes{Color: color}))
		}
		changes = append(changes, NewChangeMoveCubes(perSpot, PlayerCubes{Color: color}, target))
	}

	controller := state.ArchitectController(tile.Architect)
	if spot == core.SpotsPerTile-1 {
		colors := tile.DistinctColors()
		if !tileHasColor(tile, color) {
			colors++
		}
		core.Assert(controller != core.ColorNone, core.ErrArchitectMismatch,
			"nobody controls the architect on tile %d", a.Tile)
		changes = append(changes,
			ChangeIncreaseStar{Tile: a.Tile, Color: controller, Count: colors},
			NewChangeMoveArchitect(
				ArchitectOnTile{Architect: tile.Architect, Tile: a.Tile},
				ArchitectInHand{Architect: tile.Architect, Holder: controller}))
	}

	if player.Leader == core.LeaderPolitic && tile.Architect != color {
		changes = append(changes, ChangeScorePoints{Color: color, Points: PoliticLeaderPoints})
	}

	if controller == color && player.Leader != core.LeaderReligious {
		changes = append(changes, orNextPlayer(a.Followup))
	} else {
		changes = append(changes, ChangePrepareAction{Tile: a.Tile, Followup: a.Followup})
	}
	return composite(changes...)
}

func tileHasColor(tile *TileState, color core.Color) bool {
	for _, c := range tile.Spots {
		if c == color {
			return true
		}
	}
	return false
}

// spendCubes moves count cubes from the reserve to dest, passive first
// unless fromActive is set.
func spendCubes(player *PlayerState, count int, fromActive bool, dest CubeDestination) []Change {
	fromPassive := 0
	if !fromActive {
		fromPassive = min(count, player.PassiveCubes)
	}
	fromActiveCount := count - fromPassive
	core.Assert(player.ActiveCubes >= fromActiveCount, core.ErrInsufficientCubes,
		"%s needs %d active cubes, has %d", player.Color, fromActiveCount, player.ActiveCubes)

	var changes []Change
	if fromPassive > 0 {
		changes = append(changes, NewChangeMoveCubes(fromPassive, PlayerCubes{Color: player.Color}, dest))
	}
	if fromActiveCount > 0 {
		changes = append(changes, NewChangeMoveCubes(fromActiveCount, PlayerCubes{Color: player.Color, Active: true}, dest))
	}
	return changes
}

func (c *Controller) executeSendCubesToZone(state *GameState, a SendCubesToZone) Change {
	core.Assert(a.Zone.IsValid(), core.ErrInvalidZone, "zone %d", a.Zone)
	player := state.Current()
	changes := spendCubes(player, a.Count, a.FromActive, ZoneCubes{Zone: a.Zone, Color: player.Color})
	return composite(append(changes, orNextPlayer(a.Followup))...)
}

func (c *Controller) executeMoveCubes(state *GameState, a MoveCubes) Change {
	core.Assert(a.From.IsValid() && a.To.IsValid() && a.From != a.To, core.ErrInvalidZone,
		"moving cubes from %s to %s", a.From, a.To)
	color := state.Current().Color
	return composite(
		NewChangeMoveCubes(a.Count, ZoneCubes{Zone: a.From, Color: color}, ZoneCubes{Zone: a.To, Color: color}),
		orNextPlayer(a.Followup))
}

func (c *Controller) executeActivateCubes(state *GameState, a ActivateCubes) Change {
	player := state.Current()
	core.Assert(player.PassiveCubes >= a.Count, core.ErrInsufficientCubes,
		"%s activates %d of %d passive cubes", player.Color, a.Count, player.PassiveCubes)
	return composite(
		NewChangeMoveCubes(a.Count, PlayerCubes{Color: player.Color}, PlayerCubes{Color: player.Color, Active: true}),
		orNextPlayer(a.Followup))
}

func (c *Controller) executeTakeLeaderCard(state *GameState, a TakeLeaderCard) Change {
	player := state.Current()
	color := player.Color
	core.Assert(state.IsLeaderAvailable(a.Card), core.ErrLeaderUnavailable, "leader %s", a.Card)
	core.Assert(player.Leader == core.LeaderNone, core.ErrLeaderUnavailable,
		"%s already holds leader %s", color, player.Leader)

	holders := 0
	for i := range state.Players {
		if state.Players[i].Leader != core.LeaderNone {
			holders++
		}
	}

	changes := []Change{ChangeMoveLeader{Card: a.Card, From: LeaderOnBoard{}, To: LeaderWithPlayer{Color: color}}}
	passive := player.PassiveCubes
	if a.Card == core.LeaderCitadel {
		if sent := min(CitadelLeaderCubes, passive); sent > 0 {
			changes = append(changes, NewChangeMoveCubes(sent,
				PlayerCubes{Color: color}, ZoneCubes{Zone: core.InfluenceCitadel, Color: color}))
			passive -= sent
		}
	}
	if activated := min(holders, passive); activated > 0 {
		changes = append(changes, NewChangeMoveCubes(activated,
			PlayerCubes{Color: color}, PlayerCubes{Color: color, Active: true}))
	}
	switch a.Card {
	case core.LeaderEconomic:
		from := architectLocation(state, core.ColorNeutral)
		to := ArchitectInHand{Architect: core.ColorNeutral, Holder: color}
		if from != ArchitectDestination(to) {
			changes = append(changes, NewChangeMoveArchitect(from, to))
		}
	case core.LeaderCultural:
		changes = append(changes, ChangeScorePoints{Color: color, Points: CulturalLeaderPoints})
	}
	changes = append(changes, orNextPlayer(a.Followup))
	return composite(changes...)
}
