package game

import (
	"fmt"
	"strings"

	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
	"github.com/rs/zerolog"
)

// Controller holds the rules of the game. It enumerates the legal actions of
// a state, turns actions into changes and applies them. A controller keeps no
// per-game data and can serve any number of states.
type Controller struct {
	shuffler Shuffler
	logger   zerolog.Logger
	// offerRestart queues "Start a new game" once a game ends
	offerRestart bool
}

// NewController creates a controller dealing tiles with the given shuffler.
// A nil shuffler deals the tiles in order.
func NewController(shuffler Shuffler, logger zerolog.Logger) *Controller {
	if shuffler == nil {
		shuffler = NewCannedShuffler(nil)
	}
	return &Controller{
		shuffler:     shuffler,
		logger:       logger.With().Str("component", "Controller").Logger(),
		offerRestart: true,
	}
}

// InitGame resets state for a fresh game between the named players, deals
// the tiles and prepares the first player's actions.
func (c *Controller) InitGame(state *GameState, players []string) error {
	if !ValidPlayerCount(len(players)) {
		return fmt.Errorf("%w: %d", core.ErrInvalidPlayerCount, len(players))
	}

	cubes := StartingCubes(len(players))
	*state = GameState{
		Players:          make([]PlayerState, len(players)),
		AvailableLeaders: core.LeaderSetFor(len(players)),
	}
	for i, name := range players {
		state.Players[i] = PlayerState{
			Name:             name,
			Color:            core.PlayerColors[i],
			HoldingArchitect: true,
			ActiveCubes:      StartingActiveCubes,
			PassiveCubes:     cubes - StartingActiveCubes,
		}
	}
	state.Tiles = c.dealTiles()
	c.ConfigurePossibleActions(state)

	c.logger.Debug().
		Int("players", len(players)).
		Int("tiles", len(state.Tiles)).
		Msg("Game initialized")
	return nil
}

// dealTiles shuffles every building onto the board positions
func (c *Controller) dealTiles() []TileState {
	tiles := core.AllTiles()
	positions := core.BoardPositions()
	c.shuffler.Shuffle(len(tiles), func(i, j int) {
		tiles[i], tiles[j] = tiles[j], tiles[i]
	})

	states := make([]TileState, len(tiles))
	for i := range tiles {
		states[i] = TileState{Tile: tiles[i], Position: positions[i]}
	}
	return states
}

// ConfigurePossibleActions derives the menu of the current player from
// scratch. Calling it twice on the same state yields the same menu.
func (c *Controller) ConfigurePossibleActions(state *GameState) {
	player := state.Current()
	if player.ReserveCubes() == 0 {
		state.PossibleActions = scoringActions(ScoringInit)
		return
	}

	mustMoveArchitect := state.Century > 0 && player.HoldingArchitect
	actions := c.architectMoves(state, false)
	if player.Leader == core.LeaderEconomic {
		actions = append(actions, c.architectMoves(state, true)...)
	}

	if !mustMoveArchitect {
		for _, i := range c.tilesAcceptingWorkers(state) {
			actions = append(actions, SendWorkers{FromActive: true, Tile: i})
		}
		if player.ActiveCubes >= 1 {
			for _, zone := range core.ZoneScoringOrder {
				actions = append(actions, SendCubesToZone{Count: 1, FromActive: true, Zone: zone})
			}
		}
		if player.Leader == core.LeaderNone {
			for _, card := range state.AvailableLeaders {
				actions = append(actions, TakeLeaderCard{Card: card})
			}
		}
	}

	if len(actions) == 0 {
		// a player without any move ends the century like one without cubes
		c.logger.Debug().Str("player", player.Color.String()).Msg("No legal move, triggering scoring")
		state.PossibleActions = scoringActions(ScoringInit)
		return
	}

	message := "Choose an action"
	if mustMoveArchitect {
		message = "Move your architect to a new building"
	}
	state.PossibleActions = &PossibleActions{
		Actions:              actions,
		Message:              message,
		CanSelectBoardAction: true,
	}
}

// architectMoves lists the moves of the current player's architect, or of
// the neutral one. The neutral architect can only be moved by the player
// controlling it.
func (c *Controller) architectMoves(state *GameState, neutral bool) []Action {
	player := state.Current()
	architect := player.Color
	if neutral {
		architect = core.ColorNeutral
	}
	from := architectLocation(state, architect)
	switch loc := from.(type) {
	case ArchitectOffBoard:
		return nil
	case ArchitectInHand:
		if loc.Holder != player.Color {
			return nil
		}
	case ArchitectOnTile:
		if state.ArchitectController(architect) != player.Color {
			return nil
		}
	}

	activate := min(MaxArchitectActivation, player.PassiveCubes)
	available := state.AvailableTiles()
	if len(available) == 0 {
		return []Action{MoveArchitect{Neutral: neutral, CubesToActivate: activate}}
	}
	actions := make([]Action, 0, len(available))
	for _, tile := range available {
		actions = append(actions, NewMoveArchitect(tile, neutral, activate))
	}
	return actions
}

// tilesAcceptingWorkers lists the buildings the current player can send
// active cubes to.
func (c *Controller) tilesAcceptingWorkers(state *GameState) []int {
	player := state.Current()
	var tiles []int
	for i := range state.Tiles {
		t := &state.Tiles[i]
		if t.Architect == core.ColorNone || t.NextEmptySpot() < 0 {
			continue
		}
		if player.ActiveCubes >= t.BoardAction().CubesPerSpot {
			tiles = append(tiles, i)
		}
	}
	return tiles
}

// prepareBoardAction offers the board action of a tile to the current
// player, or moves on when it cannot be used.
func (c *Controller) prepareBoardAction(state *GameState, tileIndex int, followup Change) {
	tile := tileAt(state, tileIndex)
	boardAction := tile.BoardAction()
	player := state.Current()
	seat := state.CurrentPlayer

	var actions []Action
	switch boardAction.Type {
	case core.ActionSendCubesToThisZone:
		if n := min(boardAction.Amount, player.PassiveCubes); n > 0 {
			actions = append(actions, SendCubesToZone{Count: n, Zone: boardAction.Influence, Followup: followup})
		}
	case core.ActionSendCubesToAnyZone:
		if n := min(boardAction.Amount, player.PassiveCubes); n > 0 {
			for _, zone := range core.ZoneScoringOrder {
				actions = append(actions, SendCubesToZone{Count: n, Zone: zone, Followup: followup})
			}
		}
	case core.ActionMoveCubesBetweenZones:
		for _, from := range core.ZoneScoringOrder {
			n := min(boardAction.Amount, state.ZoneCubes[from][seat])
			if n == 0 {
				continue
			}
			for _, to := range core.ZoneScoringOrder {
				if to != from {
					actions = append(actions, MoveCubes{Count: n, From: from, To: to, Followup: followup})
				}
			}
		}
	case core.ActionActivateCubes:
		if n := min(boardAction.Amount, player.PassiveCubes); n > 0 {
			actions = append(actions, ActivateCubes{Count: n, Followup: followup})
		}
	case core.ActionScorePoints:
		actions = append(actions, ScorePoints{Points: boardAction.Amount, Followup: followup})
	}

	if len(actions) == 0 {
		c.Apply(state, orNextPlayer(followup))
		return
	}
	actions = append(actions, createSkipAction(followup))
	state.PossibleActions = &PossibleActions{
		Actions: actions,
		Message: fmt.Sprintf("Use the %s action of tile %d", boardAction.Type, tileIndex),
	}
}

// PerformAction executes the action and applies the resulting change. The
// change is returned so that collaborators can replay or animate it.
func (c *Controller) PerformAction(state *GameState, action Action) Change {
	change := c.Execute(state, action)
	c.Apply(state, change)
	return change
}

// PerformIndex performs the pending action at index.
func (c *Controller) PerformIndex(state *GameState, index int) (Change, error) {
	action, err := PendingAction(state, index)
	if err != nil {
		return nil, err
	}
	return c.PerformAction(state, action), nil
}

// PendingAction returns the pending action at index.
func PendingAction(state *GameState, index int) (Action, error) {
	if state.PossibleActions.Len() == 0 {
		return nil, core.ErrNoPossibleActions
	}
	if index < 0 || index >= state.PossibleActions.Len() {
		return nil, fmt.Errorf("%w: %d of %d", core.ErrActionOutOfRange, index, state.PossibleActions.Len())
	}
	return state.PossibleActions.Actions[index], nil
}

// MatchAction finds the pending action whose text equals text, or else the
// only one starting with it.
func MatchAction(state *GameState, text string) (int, error) {
	if state.PossibleActions.Len() == 0 {
		return -1, core.ErrNoPossibleActions
	}
	if text == "" {
		return -1, fmt.Errorf("%w: empty action text", core.ErrNoMatchingAction)
	}
	actions := state.PossibleActions.Actions
	for i, a := range actions {
		if a.String() == text {
			return i, nil
		}
	}
	match := -1
	for i, a := range actions {
		if !strings.HasPrefix(a.String(), text) {
			continue
		}
		if match >= 0 {
			return -1, fmt.Errorf("%w: %q matches several actions", core.ErrNoMatchingAction, text)
		}
		match = i
	}
	if match < 0 {
		return -1, fmt.Errorf("%w: %q", core.ErrNoMatchingAction, text)
	}
	return match, nil
}

// RunAutomaticActions performs pending automatic actions until a player
// decision is needed. It returns the number of actions performed.
func (c *Controller) RunAutomaticActions(state *GameState) int {
	n := 0
	for state.PossibleActions.IsAutomatic() {
		c.PerformAction(state, state.PossibleActions.Actions[0])
		n++
	}
	return n
}

// PrepareNextCentury advances the century, flips the buildings of the ended
// centuries and gives every player their architect back.
func (c *Controller) PrepareNextCentury(state *GameState) {
	core.Assert(state.Century < core.LastCentury, core.ErrGameOver, "century %d is the last one", state.Century)
	state.Century++
	for i := range state.Tiles {
		if state.Tiles[i].Tile.Century < state.Century {
			state.Tiles[i].BuildingFacing = true
		}
	}
	for i := range state.Players {
		p := &state.Players[i]
		core.Assert(state.ArchitectTile(p.Color) < 0, core.ErrArchitectMismatch,
			"architect %s still on a tile", p.Color)
		p.HoldingArchitect = true
	}
	c.logger.Debug().Int("century", state.Century).Msg("Century started")
}
