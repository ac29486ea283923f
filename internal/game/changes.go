package game

import (
	"fmt"

	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
)

// Change describes a mutation of a GameState. Applying changes through
// Controller.Apply is the only way a state is modified.
type Change interface {
	isChange()
}

// ChangeComposite applies its changes in order.
type ChangeComposite struct {
	Changes []Change
}

// ChangeMoveCubes moves cubes of one color between two destinations.
type ChangeMoveCubes struct {
	Count int
	From  CubeDestination
	To    CubeDestination
}

// ChangeMoveArchitect moves one architect between two destinations.
type ChangeMoveArchitect struct {
	From ArchitectDestination
	To   ArchitectDestination
}

// ChangeMoveLeader moves a leader card between the board and a player.
type ChangeMoveLeader struct {
	Card core.LeaderCard
	From LeaderDestination
	To   LeaderDestination
}

// ChangeFlipTile shows the building side of a tile and sets its star token.
type ChangeFlipTile struct {
	Tile      int
	StarColor core.Color
	StarCount int
}

// ChangeIncreaseStar gives Count more stars on a building to Color.
type ChangeIncreaseStar struct {
	Tile  int
	Color core.Color
	Count int
}

type ChangeScorePoints struct {
	Color  core.Color
	Points int
}

// ChangeNextPlayer passes the turn to the next seat, optionally computing
// the new player's possible actions.
type ChangeNextPlayer struct {
	PrepareActions bool
}

type ChangeSetCurrentPlayer struct {
	Color          core.Color
	PrepareActions bool
}

// ChangeQueuePossibleActions installs a precomputed menu.
type ChangeQueuePossibleActions struct {
	Actions PossibleActions
}

// ChangePrepareAction offers the board action of a tile to the current
// player. Followup replaces the default turn change once it is resolved.
type ChangePrepareAction struct {
	Tile     int
	Followup Change
}

// ChangePrepareNextCentury advances the century, flips the tiles of ended
// centuries and returns the player architects to their owners.
type ChangePrepareNextCentury struct{}

// ChangeEndGame marks the game over and offers a restart, unless the
// controller belongs to an Engine.
type ChangeEndGame struct{}

// ChangeReinit starts a fresh game with the same players.
type ChangeReinit struct{}

func (ChangeComposite) isChange()            {}
func (ChangeMoveCubes) isChange()            {}
func (ChangeMoveArchitect) isChange()        {}
func (ChangeMoveLeader) isChange()           {}
func (ChangeFlipTile) isChange()             {}
func (ChangeIncreaseStar) isChange()         {}
func (ChangeScorePoints) isChange()          {}
func (ChangeNextPlayer) isChange()           {}
func (ChangeSetCurrentPlayer) isChange()     {}
func (ChangeQueuePossibleActions) isChange() {}
func (ChangePrepareAction) isChange()        {}
func (ChangePrepareNextCentury) isChange()   {}
func (ChangeEndGame) isChange()              {}
func (ChangeReinit) isChange()               {}

// NewChangeMoveCubes builds a cube move. Both ends must hold the same color.
func NewChangeMoveCubes(count int, from, to CubeDestination) ChangeMoveCubes {
	core.Assert(from.CubeColor() == to.CubeColor(), core.ErrInvalidPlayer,
		"moving %s cubes into %s cubes", from.CubeColor(), to.CubeColor())
	core.Assert(count > 0, core.ErrInsufficientCubes, "moving %d cubes", count)
	return ChangeMoveCubes{Count: count, From: from, To: to}
}

// NewChangeMoveArchitect builds an architect move. Both ends must name the
// same architect.
func NewChangeMoveArchitect(from, to ArchitectDestination) ChangeMoveArchitect {
	core.Assert(from.ArchitectColor() == to.ArchitectColor(), core.ErrArchitectMismatch,
		"moving architect %s to a slot of %s", from.ArchitectColor(), to.ArchitectColor())
	return ChangeMoveArchitect{From: from, To: to}
}

// composite flattens nil entries away and unwraps single changes.
func composite(changes ...Change) Change {
	out := make([]Change, 0, len(changes))
	for _, c := range changes {
		if c != nil {
			out = append(out, c)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return ChangeComposite{Changes: out}
}

func orNextPlayer(followup Change) Change {
	if followup != nil {
		return followup
	}
	return ChangeNextPlayer{PrepareActions: true}
}

// Apply mutates state according to change.
func (c *Controller) Apply(state *GameState, change Change) {
	switch ch := change.(type) {
	case ChangeComposite:
		for _, sub := range ch.Changes {
			c.Apply(state, sub)
		}
	case ChangeMoveCubes:
		removeCubes(state, ch.From, ch.Count)
		addCubes(state, ch.To, ch.Count)
	case ChangeMoveArchitect:
		removeArchitect(state, ch.From)
		addArchitect(state, ch.To)
	case ChangeMoveLeader:
		removeLeader(state, ch.Card, ch.From)
		addLeader(state, ch.Card, ch.To)
	case ChangeFlipTile:
		tile := tileAt(state, ch.Tile)
		tile.BuildingFacing = true
		tile.SetStarToken(ch.StarColor, ch.StarCount)
	case ChangeIncreaseStar:
		tile := tileAt(state, ch.Tile)
		core.Assert(tile.StarToken == core.ColorNone || tile.StarToken == ch.Color, core.ErrInvalidTile,
			"tile %d already has a %s star", ch.Tile, tile.StarToken)
		count := tile.StarCount + ch.Count
		core.Assert(count <= core.SpotsPerTile, core.ErrInvalidTile, "tile %d would get %d stars", ch.Tile, count)
		tile.SetStarToken(ch.Color, count)
	case ChangeScorePoints:
		state.Player(ch.Color).Score += ch.Points
	case ChangeNextPlayer:
		state.CurrentPlayer = (state.CurrentPlayer + 1) % len(state.Players)
		c.resetOrPrepare(state, ch.PrepareActions)
	case ChangeSetCurrentPlayer:
		state.CurrentPlayer = mustSeat(state, ch.Color)
		c.resetOrPrepare(state, ch.PrepareActions)
	case ChangeQueuePossibleActions:
		queued := ch.Actions
		state.PossibleActions = queued.clone()
	case ChangePrepareAction:
		c.prepareBoardAction(state, ch.Tile, ch.Followup)
	case ChangePrepareNextCentury:
		c.PrepareNextCentury(state)
	case ChangeEndGame:
		state.GameOver = true
		state.PossibleActions = nil
		if c.offerRestart {
			state.PossibleActions = &PossibleActions{
				Actions: []Action{Explicit{Message: "Start a new game", Change: ChangeReinit{}}},
				Message: "Game over",
			}
		}
		c.logger.Info().Int("century", state.Century).Msg("Game over")
	case ChangeReinit:
		names := make([]string, len(state.Players))
		for i := range state.Players {
			names[i] = state.Players[i].Name
		}
		if err := c.InitGame(state, names); err != nil {
			panic(&core.RulesViolation{Err: err, Detail: "reinitializing game"})
		}
	default:
		panic(fmt.Sprintf("unknown state change %T", change))
	}
}

func (c *Controller) resetOrPrepare(state *GameState, prepare bool) {
	if prepare {
		c.ConfigurePossibleActions(state)
		return
	}
	state.PossibleActions = nil
}
