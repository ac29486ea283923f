package core

import "fmt"

// Color identifies a player, the neutral architect, or nobody.
type Color int

const (
	ColorNone Color = iota
	ColorNeutral
	ColorBlack
	ColorWhite
	ColorOrange
	ColorGreen
	ColorBrown
)

const (
	MinPlayers = 2
	MaxPlayers = 5
)

// PlayerColors lists the player colors in seat order.
var PlayerColors = [MaxPlayers]Color{ColorBlack, ColorWhite, ColorOrange, ColorGreen, ColorBrown}

// IsPlayer reports whether the color belongs to a seated player
func (c Color) IsPlayer() bool {
	return c >= ColorBlack && c <= ColorBrown
}

func (c Color) String() string {
	switch c {
	case ColorNone:
		return "None"
	case ColorNeutral:
		return "Neutral"
	case ColorBlack:
		return "Black"
	case ColorWhite:
		return "White"
	case ColorOrange:
		return "Orange"
	case ColorGreen:
		return "Green"
	case ColorBrown:
		return "Brown"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}
