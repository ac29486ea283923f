package game

import (
	"fmt"

	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
)

// PlayerState is the per-seat part of a game in progress.
type PlayerState struct {
	Name                    string
	Color                   core.Color
	HoldingArchitect        bool
	HoldingNeutralArchitect bool
	ActiveCubes             int
	PassiveCubes            int
	Leader                  core.LeaderCard
	Score                   int
}

// ReserveCubes returns the cubes still in the player's supply
func (p *PlayerState) ReserveCubes() int {
	return p.ActiveCubes + p.PassiveCubes
}

// PossibleActions is the menu of legal moves at the current decision point.
type PossibleActions struct {
	Actions []Action
	Message string
	// CanSelectBoardAction tells a UI it may offer board tiles directly.
	CanSelectBoardAction bool
}

// Len returns the number of pending actions
func (p *PossibleActions) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Actions)
}

// IsAutomatic reports whether the menu holds a single action that must be
// applied without asking anybody.
func (p *PossibleActions) IsAutomatic() bool {
	return p.Len() == 1 && p.Actions[0].Automatic()
}

func (p *PossibleActions) clone() *PossibleActions {
	if p == nil {
		return nil
	}
	cp := *p
	// actions are immutable values, sharing them is safe
	cp.Actions = append([]Action(nil), p.Actions...)
	return &cp
}

// GameState is the aggregate root of one game. Players and tiles are held in
// flat slices and referenced by index everywhere else.
type GameState struct {
	Century       int
	CurrentPlayer int
	Players       []PlayerState
	Tiles         []TileState
	// ZoneCubes is indexed by influence zone, then by seat.
	ZoneCubes        [core.NumInfluenceTypes][core.MaxPlayers]int
	AvailableLeaders []core.LeaderCard
	PossibleActions  *PossibleActions
	GameOver         bool
}

// Clone returns a deep copy that shares no mutable memory with the receiver.
func (gs *GameState) Clone() *GameState {
	cp := *gs
	cp.Players = append([]PlayerState(nil), gs.Players...)
	cp.Tiles = append([]TileState(nil), gs.Tiles...)
	cp.AvailableLeaders = append([]core.LeaderCard(nil), gs.AvailableLeaders...)
	cp.PossibleActions = gs.PossibleActions.clone()
	return &cp
}

// NumPlayers returns the number of seated players
func (gs *GameState) NumPlayers() int {
	return len(gs.Players)
}

// Current returns the player whose turn it is
func (gs *GameState) Current() *PlayerState {
	return &gs.Players[gs.CurrentPlayer]
}

// SeatOf returns the seat of the player with the given color, or -1.
func (gs *GameState) SeatOf(color core.Color) int {
	for i := range gs.Players {
		if gs.Players[i].Color == color {
			return i
		}
	}
	return -1
}

// Player returns the player with the given color. It panics on unknown colors.
func (gs *GameState) Player(color core.Color) *PlayerState {
	seat := gs.SeatOf(color)
	core.Assert(seat >= 0, core.ErrInvalidPlayer, "no player with color %s", color)
	return &gs.Players[seat]
}

// LeaderHolder returns the color of the player holding card, or ColorNone.
func (gs *GameState) LeaderHolder(card core.LeaderCard) core.Color {
	for i := range gs.Players {
		if gs.Players[i].Leader == card {
			return gs.Players[i].Color
		}
	}
	return core.ColorNone
}

// IsLeaderAvailable reports whether card is still on the board
func (gs *GameState) IsLeaderAvailable(card core.LeaderCard) bool {
	for _, l := range gs.AvailableLeaders {
		if l == card {
			return true
		}
	}
	return false
}

// ArchitectTile returns the tile the given architect stands on, or -1.
func (gs *GameState) ArchitectTile(architect core.Color) int {
	for i := range gs.Tiles {
		if gs.Tiles[i].Architect == architect {
			return i
		}
	}
	return -1
}

// ArchitectController returns the player entitled to an architect: its owner
// for a player architect, the economic leader holder for the neutral one.
func (gs *GameState) ArchitectController(architect core.Color) core.Color {
	if architect == core.ColorNeutral {
		return gs.LeaderHolder(core.LeaderEconomic)
	}
	return architect
}

// NeutralArchitectHolder returns the color holding the neutral architect in
// hand, or ColorNone.
func (gs *GameState) NeutralArchitectHolder() core.Color {
	for i := range gs.Players {
		if gs.Players[i].HoldingNeutralArchitect {
			return gs.Players[i].Color
		}
	}
	return core.ColorNone
}

// CubesOnTiles counts the cubes of a color standing on buildings
func (gs *GameState) CubesOnTiles(color core.Color) int {
	total := 0
	for i := range gs.Tiles {
		total += gs.Tiles[i].CubesOf(color)
	}
	return total
}

// CubesInZones counts the cubes a seat has in all influence zones
func (gs *GameState) CubesInZones(seat int) int {
	total := 0
	for zone := range gs.ZoneCubes {
		total += gs.ZoneCubes[zone][seat]
	}
	return total
}

// ZoneTotal returns every cube in one influence zone
func (gs *GameState) ZoneTotal(zone core.InfluenceType) int {
	total := 0
	for _, n := range gs.ZoneCubes[zone] {
		total += n
	}
	return total
}

// CubesOwned returns all cubes of a seat wherever they are. It never changes
// during a game.
func (gs *GameState) CubesOwned(seat int) int {
	p := &gs.Players[seat]
	return p.ReserveCubes() + gs.CubesOnTiles(p.Color) + gs.CubesInZones(seat)
}

// AvailableTiles returns the tiles that can receive an architect this century.
// Completed buildings are excluded.
func (gs *GameState) AvailableTiles() []int {
	var tiles []int
	for i := range gs.Tiles {
		if gs.Tiles[i].IsAvailableForArchitect(gs.Century) && !gs.Tiles[i].IsComplete() {
			tiles = append(tiles, i)
		}
	}
	return tiles
}

// CheckInvariants verifies the structural rules of the game. It returns the
// first broken rule.
func (gs *GameState) CheckInvariants() error {
	n := len(gs.Players)
	if n < core.MinPlayers || n > core.MaxPlayers {
		return fmt.Errorf("%w: %d players", core.ErrInvalidPlayerCount, n)
	}
	if gs.CurrentPlayer < 0 || gs.CurrentPlayer >= n {
		return fmt.Errorf("%w: current seat %d", core.ErrInvalidPlayer, gs.CurrentPlayer)
	}
	if gs.Century < 0 || gs.Century > core.LastCentury {
		return fmt.Errorf("century %d out of range", gs.Century)
	}

	expected := StartingCubes(n)
	for seat := range gs.Players {
		p := &gs.Players[seat]
		if p.ActiveCubes < 0 || p.PassiveCubes < 0 {
			return fmt.Errorf("%w: player %s has negative reserve", core.ErrInsufficientCubes, p.Color)
		}
		if owned := gs.CubesOwned(seat); owned != expected {
			return fmt.Errorf("player %s owns %d cubes, expected %d", p.Color, owned, expected)
		}
		for zone := range gs.ZoneCubes {
			if gs.ZoneCubes[zone][seat] < 0 {
				return fmt.Errorf("%w: negative count in %s zone", core.ErrInvalidZone, core.InfluenceType(zone))
			}
		}
	}

	architects := map[core.Color]int{}
	for i := range gs.Tiles {
		t := &gs.Tiles[i]
		if t.Architect != core.ColorNone {
			if prev, ok := architects[t.Architect]; ok {
				return fmt.Errorf("%w: architect %s on tiles %d and %d", core.ErrArchitectMismatch, t.Architect, prev, i)
			}
			architects[t.Architect] = i
		}
		if err := t.checkSpotOrder(); err != nil {
			return fmt.Errorf("tile %d: %w", i, err)
		}
	}
	neutralHolders := 0
	for i := range gs.Players {
		p := &gs.Players[i]
		if _, onTile := architects[p.Color]; onTile && p.HoldingArchitect {
			return fmt.Errorf("%w: player %s holds an architect that is on a tile", core.ErrArchitectMismatch, p.Color)
		}
		if p.HoldingNeutralArchitect {
			neutralHolders++
		}
	}
	if _, onTile := architects[core.ColorNeutral]; neutralHolders > 1 || (onTile && neutralHolders > 0) {
		return fmt.Errorf("%w: neutral architect in more than one place", core.ErrArchitectMismatch)
	}

	seen := map[core.LeaderCard]bool{}
	for _, l := range gs.AvailableLeaders {
		seen[l] = true
	}
	for i := range gs.Players {
		l := gs.Players[i].Leader
		if l == core.LeaderNone {
			continue
		}
		if seen[l] {
			return fmt.Errorf("%w: leader %s held twice", core.ErrLeaderUnavailable, l)
		}
		seen[l] = true
	}
	return nil
}
