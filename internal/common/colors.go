package common

import "github.com/ArcBees/quebec-game-sub001/internal/game/core"

// ANSI color codes for terminal rendering
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
	ColorGray   = "\033[90m"
	ColorBold   = "\033[1m"
)

// PlayerColors maps the game colors to terminal colors
var PlayerColors = map[core.Color]string{
	core.ColorNeutral: ColorGray,
	core.ColorBlack:   ColorBlue,
	core.ColorWhite:   ColorWhite,
	core.ColorOrange:  ColorYellow,
	core.ColorGreen:   ColorGreen,
	core.ColorBrown:   ColorRed,
}

// InfluenceColors maps the influence zones to terminal colors
var InfluenceColors = map[core.InfluenceType]string{
	core.InfluenceReligious: ColorWhite,
	core.InfluencePolitic:   ColorRed,
	core.InfluenceEconomic:  ColorYellow,
	core.InfluenceCultural:  ColorCyan,
	core.InfluenceCitadel:   ColorPurple,
}

// Colorize wraps text in the terminal color of c. Unknown colors are left plain.
func Colorize(c core.Color, text string) string {
	code, ok := PlayerColors[c]
	if !ok {
		return text
	}
	return code + text + ColorReset
}

// ColorizeInfluence wraps text in the terminal color of an influence zone
func ColorizeInfluence(i core.InfluenceType, text string) string {
	code, ok := InfluenceColors[i]
	if !ok {
		return text
	}
	return code + text + ColorReset
}
