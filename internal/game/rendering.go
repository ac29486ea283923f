package game

import (
	"fmt"
	"strings"

	"github.com/ArcBees/quebec-game-sub001/internal/common"
	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
)

// This file contains the text rendering of a game state for terminals.

const (
	emptySpotSymbol = "·"
	architectSymbol = "^"
	neutralSymbol   = "n"
	starSymbol      = "*"
	noTileSymbol    = "    "
)

// seatSymbols name the seats in rendered spots
const seatSymbols = "12345"

// RenderBoard returns a text picture of the board. Each building shows its
// three spots, then its architect or star token. With colors set, cells are
// tinted with ANSI codes.
func RenderBoard(state *GameState, colors bool) string {
	byPosition := make(map[core.Vector2d]int, len(state.Tiles))
	for i := range state.Tiles {
		byPosition[state.Tiles[i].Position] = i
	}

	var sb strings.Builder
	sb.Grow((core.BoardColumns*5 + 4) * (core.BoardLines + 12))

	sb.WriteString("   ")
	for x := 0; x < core.BoardColumns; x++ {
		fmt.Fprintf(&sb, "%-5d", x)
	}
	sb.WriteString("\n")

	for y := 0; y < core.BoardLines; y++ {
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 0; x < core.BoardColumns; x++ {
			idx, ok := byPosition[core.NewVector2d(x, y)]
			if !ok {
				sb.WriteString(noTileSymbol)
				sb.WriteString(" ")
				continue
			}
			writeTile(&sb, state, &state.Tiles[idx], colors)
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	for _, zone := range core.ZoneScoringOrder {
		label := fmt.Sprintf("%-10s", zone.String())
		if colors {
			label = common.ColorizeInfluence(zone, label)
		}
		sb.WriteString(label)
		for seat := range state.Players {
			fmt.Fprintf(&sb, " %c:%-2d", seatSymbols[seat], state.ZoneCubes[zone][seat])
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	for seat := range state.Players {
		p := &state.Players[seat]
		marker := " "
		if seat == state.CurrentPlayer {
			marker = ">"
		}
		line := fmt.Sprintf("%s%c %-8s %-6s score %3d  active %2d  passive %2d  leader %s",
			marker, seatSymbols[seat], p.Name, p.Color, p.Score, p.ActiveCubes, p.PassiveCubes, p.Leader)
		if colors {
			line = common.Colorize(p.Color, line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "century %d\n", state.Century)
	return sb.String()
}

func writeTile(sb *strings.Builder, state *GameState, t *TileState, colors bool) {
	var cell strings.Builder
	for _, c := range t.Spots {
		seat := state.SeatOf(c)
		if seat < 0 {
			cell.WriteString(emptySpotSymbol)
			continue
		}
		cell.WriteByte(seatSymbols[seat])
	}
	switch {
	case t.Architect == core.ColorNeutral:
		cell.WriteString(neutralSymbol)
	case t.Architect != core.ColorNone:
		cell.WriteString(architectSymbol)
	case t.StarToken != core.ColorNone:
		cell.WriteString(starSymbol)
	default:
		cell.WriteString(" ")
	}

	text := cell.String()
	if colors {
		owner := t.Architect
		if owner == core.ColorNone {
			owner = t.StarToken
		}
		if owner != core.ColorNone {
			text = common.Colorize(owner, text)
		} else {
			text = common.ColorizeInfluence(t.Tile.Influence, text)
		}
	}
	sb.WriteString(text)
}
