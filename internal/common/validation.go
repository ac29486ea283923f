package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
)

var (
	ErrEmptyPlayerName     = errors.New("player name is empty")
	ErrDuplicatePlayerName = errors.New("duplicate player name")
)

// IsValidCoordinate checks if the given coordinates are within the bounds of the board
func IsValidCoordinate(x, y, width, height int) bool {
	return x >= 0 && x < width && y >= 0 && y < height
}

// ValidatePlayerNames checks a table before a game is created: the player
// count must be supported and names must be unique and not blank.
func ValidatePlayerNames(names []string) error {
	if len(names) < core.MinPlayers || len(names) > core.MaxPlayers {
		return fmt.Errorf("%w: %d players, want %d to %d",
			core.ErrInvalidPlayerCount, len(names), core.MinPlayers, core.MaxPlayers)
	}
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			return fmt.Errorf("seat %d: %w", i, ErrEmptyPlayerName)
		}
		if seen[key] {
			return fmt.Errorf("seat %d: %w: %q", i, ErrDuplicatePlayerName, name)
		}
		seen[key] = true
	}
	return nil
}

// DefaultPlayerNames returns placeholder names for n seats
func DefaultPlayerNames(n int) []string {
	n = Max(n, 0)
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Player %d", i+1)
	}
	return names
}
