package store

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/ArcBees/quebec-game-sub001/internal/game"
)

var ErrReplayMismatch = errors.New("replay does not match the stored scores")

// ReplayOptions tunes Replay
type ReplayOptions struct {
	Logger          zerolog.Logger
	CheckInvariants bool
	// UpTo stops after that many decisions. Zero replays the whole log.
	UpTo int
}

// Replay rebuilds a stored game by dealing the board from its seed and
// performing its logged decisions. The scores of a finished game must match
// the stored ones.
func (s *Store) Replay(ctx context.Context, gameID string, opts ReplayOptions) (*game.Engine, error) {
	rec, err := s.LoadGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return ReplayRecord(ctx, rec, opts)
}

// ReplayRecord replays a loaded record
func ReplayRecord(ctx context.Context, rec *GameRecord, opts ReplayOptions) (*game.Engine, error) {
	engine, err := game.NewEngine(ctx, game.GameConfig{
		GameID:          rec.ID,
		Players:         rec.Players,
		Seed:            rec.Seed,
		Logger:          opts.Logger,
		CheckInvariants: opts.CheckInvariants,
	})
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", rec.ID, err)
	}

	decisions := rec.Decisions
	if opts.UpTo > 0 && opts.UpTo < len(decisions) {
		decisions = decisions[:opts.UpTo]
	}
	for i, index := range decisions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := engine.Perform(ctx, index); err != nil {
			return nil, fmt.Errorf("%w: %s: decision %d: %v", ErrCorruptLog, rec.ID, i+1, err)
		}
	}

	if len(decisions) == len(rec.Decisions) && rec.Scores != nil {
		if !engine.IsGameOver() {
			return nil, fmt.Errorf("%w: %s: game not over after %d decisions", ErrReplayMismatch, rec.ID, len(decisions))
		}
		if replayed := game.Scores(engine.GameState()); !slices.Equal(replayed, rec.Scores) {
			return nil, fmt.Errorf("%w: %s: replayed %v, stored %v", ErrReplayMismatch, rec.ID, replayed, rec.Scores)
		}
	}
	return engine, nil
}
