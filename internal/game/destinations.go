package game

import (
	"fmt"

	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
)

// CubeDestination is a place cubes can be taken from or put into.
type CubeDestination interface {
	CubeColor() core.Color
	fmt.Stringer
	isCubeDestination()
}

// ZoneCubes designates a player's cubes in an influence zone.
type ZoneCubes struct {
	Zone  core.InfluenceType
	Color core.Color
}

// PlayerCubes designates a player's active or passive reserve.
type PlayerCubes struct {
	Color  core.Color
	Active bool
}

// TileCubes designates the cubes in one worker spot of a building.
type TileCubes struct {
	Tile  int
	Color core.Color
	Spot  int
}

func (d ZoneCubes) CubeColor() core.Color   { return d.Color }
func (d PlayerCubes) CubeColor() core.Color { return d.Color }
func (d TileCubes) CubeColor() core.Color   { return d.Color }

func (ZoneCubes) isCubeDestination()   {}
func (PlayerCubes) isCubeDestination() {}
func (TileCubes) isCubeDestination()   {}

func (d ZoneCubes) String() string { return fmt.Sprintf("%s zone", d.Zone) }

func (d PlayerCubes) String() string {
	if d.Active {
		return "active reserve"
	}
	return "passive reserve"
}

func (d TileCubes) String() string { return fmt.Sprintf("tile %d spot %d", d.Tile, d.Spot) }

// ArchitectDestination is a place an architect can be.
type ArchitectDestination interface {
	ArchitectColor() core.Color
	fmt.Stringer
	isArchitectDestination()
}

// ArchitectInHand is an architect held by a player, ready to be placed.
type ArchitectInHand struct {
	Architect core.Color
	Holder    core.Color
}

// ArchitectOnTile is an architect standing on a building.
type ArchitectOnTile struct {
	Architect core.Color
	Tile      int
}

// ArchitectOffBoard is an architect out of play until the next century.
type ArchitectOffBoard struct {
	Architect core.Color
}

func (d ArchitectInHand) ArchitectColor() core.Color   { return d.Architect }
func (d ArchitectOnTile) ArchitectColor() core.Color   { return d.Architect }
func (d ArchitectOffBoard) ArchitectColor() core.Color { return d.Architect }

func (ArchitectInHand) isArchitectDestination()   {}
func (ArchitectOnTile) isArchitectDestination()   {}
func (ArchitectOffBoard) isArchitectDestination() {}

func (d ArchitectInHand) String() string   { return fmt.Sprintf("hand of %s", d.Holder) }
func (d ArchitectOnTile) String() string   { return fmt.Sprintf("tile %d", d.Tile) }
func (d ArchitectOffBoard) String() string { return "off board" }

// LeaderDestination is a place a leader card can be.
type LeaderDestination interface {
	fmt.Stringer
	isLeaderDestination()
}

// LeaderOnBoard is the pool of leader cards nobody holds.
type LeaderOnBoard struct{}

// LeaderWithPlayer is a leader card held by a player.
type LeaderWithPlayer struct {
	Color core.Color
}

func (LeaderOnBoard) isLeaderDestination()    {}
func (LeaderWithPlayer) isLeaderDestination() {}

func (LeaderOnBoard) String() string      { return "board" }
func (d LeaderWithPlayer) String() string { return d.Color.String() }

// cubesAt counts the cubes at a destination
func cubesAt(state *GameState, dest CubeDestination) int {
	switch d := dest.(type) {
	case ZoneCubes:
		core.Assert(d.Zone.IsValid(), core.ErrInvalidZone, "zone %d", d.Zone)
		return state.ZoneCubes[d.Zone][mustSeat(state, d.Color)]
	case PlayerCubes:
		p := state.Player(d.Color)
		if d.Active {
			return p.ActiveCubes
		}
		return p.PassiveCubes
	case TileCubes:
		tile := tileAt(state, d.Tile)
		if tile.Spots[d.Spot] != d.Color {
			return 0
		}
		return tile.BoardAction().CubesPerSpot
	default:
		panic(fmt.Sprintf("unknown cube destination %T", dest))
	}
}

func removeCubes(state *GameState, dest CubeDestination, count int) {
	available := cubesAt(state, dest)
	core.Assert(available >= count, core.ErrInsufficientCubes,
		"removing %d cubes of %s from %s holding %d", count, dest.CubeColor(), dest, available)

	switch d := dest.(type) {
	case ZoneCubes:
		state.ZoneCubes[d.Zone][mustSeat(state, d.Color)] -= count
	case PlayerCubes:
		p := state.Player(d.Color)
		if d.Active {
			p.ActiveCubes -= count
		} else {
			p.PassiveCubes -= count
		}
	case TileCubes:
		core.Assert(count == available, core.ErrInsufficientCubes,
			"a spot is emptied at once, %d of %d requested", count, available)
		state.Tiles[d.Tile].Spots[d.Spot] = core.ColorNone
	}
}

func addCubes(state *GameState, dest CubeDestination, count int) {
	switch d := dest.(type) {
	case ZoneCubes:
		core.Assert(d.Zone.IsValid(), core.ErrInvalidZone, "zone %d", d.Zone)
		state.ZoneCubes[d.Zone][mustSeat(state, d.Color)] += count
	case PlayerCubes:
		p := state.Player(d.Color)
		if d.Active {
			p.ActiveCubes += count
		} else {
			p.PassiveCubes += count
		}
	case TileCubes:
		tile := tileAt(state, d.Tile)
		core.Assert(tile.NextEmptySpot() == d.Spot, core.ErrSpotOccupied,
			"tile %d expects spot %d, got %d", d.Tile, tile.NextEmptySpot(), d.Spot)
		core.Assert(count == tile.BoardAction().CubesPerSpot, core.ErrInsufficientCubes,
			"tile %d needs %d cubes per spot, got %d", d.Tile, tile.BoardAction().CubesPerSpot, count)
		tile.Spots[d.Spot] = d.Color
	default:
		panic(fmt.Sprintf("unknown cube destination %T", dest))
	}
}

func mustSeat(state *GameState, color core.Color) int {
	seat := state.SeatOf(color)
	core.Assert(seat >= 0, core.ErrInvalidPlayer, "no player with color %s", color)
	return seat
}

func tileAt(state *GameState, index int) *TileState {
	core.Assert(index >= 0 && index < len(state.Tiles), core.ErrInvalidTile, "tile %d", index)
	return &state.Tiles[index]
}

// architectLocation finds where an architect currently is
func architectLocation(state *GameState, architect core.Color) ArchitectDestination {
	if tile := state.ArchitectTile(architect); tile >= 0 {
		return ArchitectOnTile{Architect: architect, Tile: tile}
	}
	if architect == core.ColorNeutral {
		if holder := state.NeutralArchitectHolder(); holder != core.ColorNone {
			return ArchitectInHand{Architect: architect, Holder: holder}
		}
		return ArchitectOffBoard{Architect: architect}
	}
	if state.Player(architect).HoldingArchitect {
		return ArchitectInHand{Architect: architect, Holder: architect}
	}
	return ArchitectOffBoard{Architect: architect}
}

func removeArchitect(state *GameState, dest ArchitectDestination) {
	core.Assert(architectLocation(state, dest.ArchitectColor()) == dest, core.ErrArchitectMismatch,
		"architect %s is not at %s", dest.ArchitectColor(), dest)
	switch d := dest.(type) {
	case ArchitectInHand:
		holder := state.Player(d.Holder)
		if d.Architect == core.ColorNeutral {
			holder.HoldingNeutralArchitect = false
		} else {
			holder.HoldingArchitect = false
		}
	case ArchitectOnTile:
		state.Tiles[d.Tile].SetArchitect(core.ColorNone)
	case ArchitectOffBoard:
	}
}

func addArchitect(state *GameState, dest ArchitectDestination) {
	switch d := dest.(type) {
	case ArchitectInHand:
		holder := state.Player(d.Holder)
		if d.Architect == core.ColorNeutral {
			holder.HoldingNeutralArchitect = true
		} else {
			core.Assert(d.Architect == d.Holder, core.ErrArchitectMismatch,
				"%s cannot hold the %s architect", d.Holder, d.Architect)
			holder.HoldingArchitect = true
		}
	case ArchitectOnTile:
		tile := tileAt(state, d.Tile)
		core.Assert(tile.Architect == core.ColorNone, core.ErrArchitectMismatch,
			"tile %d already has the %s architect", d.Tile, tile.Architect)
		tile.SetArchitect(d.Architect)
	case ArchitectOffBoard:
	default:
		panic(fmt.Sprintf("unknown architect destination %T", dest))
	}
}

func removeLeader(state *GameState, card core.LeaderCard, dest LeaderDestination) {
	switch d := dest.(type) {
	case LeaderOnBoard:
		for i, l := range state.AvailableLeaders {
			if l == card {
				state.AvailableLeaders = append(state.AvailableLeaders[:i:i], state.AvailableLeaders[i+1:]...)
				return
			}
		}
		core.Assert(false, core.ErrLeaderUnavailable, "leader %s is not on the board", card)
	case LeaderWithPlayer:
		p := state.Player(d.Color)
		core.Assert(p.Leader == card, core.ErrLeaderUnavailable, "%s does not hold leader %s", d.Color, card)
		p.Leader = core.LeaderNone
	default:
		panic(fmt.Sprintf("unknown leader destination %T", dest))
	}
}

func addLeader(state *GameState, card core.LeaderCard, dest LeaderDestination) {
	core.Assert(card != core.LeaderNone, core.ErrLeaderUnavailable, "moving no leader")
	switch d := dest.(type) {
	case LeaderOnBoard:
		i := 0
		for i < len(state.AvailableLeaders) && state.AvailableLeaders[i] < card {
			i++
		}
		state.AvailableLeaders = append(state.AvailableLeaders, core.LeaderNone)
		copy(state.AvailableLeaders[i+1:], state.AvailableLeaders[i:])
		state.AvailableLeaders[i] = card
	case LeaderWithPlayer:
		p := state.Player(d.Color)
		core.Assert(p.Leader == core.LeaderNone, core.ErrLeaderUnavailable,
			"%s already holds leader %s", d.Color, p.Leader)
		p.Leader = card
	default:
		panic(fmt.Sprintf("unknown leader destination %T", dest))
	}
}
