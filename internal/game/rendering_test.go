package game

import (
	"strings"
	"testing"

	"github.com/ArcBees/quebec-game-sub001/internal/common"
	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
	"github.com/stretchr/testify/assert"
)

func TestRenderBoard(t *testing.T) {
	c, state := newTestGame(t, 3)
	placeTile(state, 0, cellThisZone)
	putArchitect(c, state, core.ColorWhite, 0)
	fillSpot(c, state, 0, core.ColorOrange)

	out := RenderBoard(state, false)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Len(t, lines, 1+core.BoardLines+1+core.NumInfluenceTypes+1+3+1)
	assert.Contains(t, lines[1], "3··^", "orange in the first spot of white's building")
	assert.Contains(t, out, "Citadel")
	assert.Contains(t, out, ">1 P1")
	assert.Contains(t, out, "century 0")
	assert.NotContains(t, out, "\033[")

	colored := RenderBoard(state, true)
	assert.Contains(t, colored, common.ColorReset)
}
