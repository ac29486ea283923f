package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrGameNotFound = errors.New("stored game not found")
	ErrCorruptLog   = errors.New("corrupt decision log")
)

// GameRecord is a stored game: the table, the seed and the decisions taken.
// Replaying the decisions on a board dealt with the seed gives back the game.
type GameRecord struct {
	ID         string
	Players    []string
	Seed       uint64
	CreatedAt  time.Time
	FinishedAt *time.Time
	Scores     []int
	// Decisions holds the action index of every player decision, in order
	Decisions []int
}

// Finished reports whether the game reached its end
func (r *GameRecord) Finished() bool { return r.FinishedAt != nil }

type Option func(*Store)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger.With().Str("component", "Store").Logger()
	}
}

// Store persists games and their decision logs in SQLite
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
	now    func() time.Time
}

// Open opens the database at dsn and applies pending migrations. Use
// ":memory:" for a throwaway database.
func Open(dsn string, opts ...Option) (*Store, error) {
	s := &Store{
		logger: log.Logger.With().Str("component", "Store").Logger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := openDB(dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	if err := migrate(db, s.logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}
	s.db = db
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// CreateGame records a new game before its first decision
func (s *Store) CreateGame(ctx context.Context, gameID string, players []string, seed uint64) error {
	names, err := json.Marshal(players)
	if err != nil {
		return err
	}
	// go-sqlite3 rejects uint64 values above MaxInt64, the seed is kept as text
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO games(id, players, seed, created_at) VALUES (?, ?, ?, ?)`,
		gameID, string(names), strconv.FormatUint(seed, 10), s.now().UTC())
	if err != nil {
		return fmt.Errorf("insert game %s: %w", gameID, err)
	}
	s.logger.Debug().Str("game_id", gameID).Strs("players", players).Msg("Game stored")
	return nil
}

// RecordDecision appends a decision to the log of a game. Sequence numbers
// start at 1 and may not repeat.
func (s *Store) RecordDecision(ctx context.Context, gameID string, seq, index int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO decisions(game_id, seq, action_index) VALUES (?, ?, ?)`,
		gameID, seq, index)
	if err != nil {
		return fmt.Errorf("insert decision %d of %s: %w", seq, gameID, err)
	}
	return nil
}

// FinishGame stores the final scores of a game
func (s *Store) FinishGame(ctx context.Context, gameID string, scores []int) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE games SET finished_at = ?, scores = ? WHERE id = ?`,
		s.now().UTC(), string(data), gameID)
	if err != nil {
		return fmt.Errorf("finish game %s: %w", gameID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	s.logger.Debug().Str("game_id", gameID).Ints("scores", scores).Msg("Game finished")
	return nil
}

// LoadGame reads a game and its complete decision log
func (s *Store) LoadGame(ctx context.Context, gameID string) (*GameRecord, error) {
	rec, err := s.scanGame(s.db.QueryRowContext(ctx,
		`SELECT id, players, seed, created_at, finished_at, scores FROM games WHERE id = ?`, gameID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, action_index FROM decisions WHERE game_id = ? ORDER BY seq`, gameID)
	if err != nil {
		return nil, fmt.Errorf("query decisions of %s: %w", gameID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var seq, index int
		if err := rows.Scan(&seq, &index); err != nil {
			return nil, err
		}
		if seq != len(rec.Decisions)+1 {
			return nil, fmt.Errorf("%w: %s: decision %d follows %d", ErrCorruptLog, gameID, seq, len(rec.Decisions))
		}
		rec.Decisions = append(rec.Decisions, index)
	}
	return rec, rows.Err()
}

// ListGames returns the most recent games, newest first, without their
// decision logs.
func (s *Store) ListGames(ctx context.Context, limit int) ([]*GameRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, players, seed, created_at, finished_at, scores
		FROM games
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*GameRecord
	for rows.Next() {
		rec, err := s.scanGame(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanGame(row scanner) (*GameRecord, error) {
	var (
		rec      GameRecord
		players  string
		seed     string
		finished sql.NullTime
		scores   sql.NullString
	)
	if err := row.Scan(&rec.ID, &players, &seed, &rec.CreatedAt, &finished, &scores); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(players), &rec.Players); err != nil {
		return nil, fmt.Errorf("%w: %s: players: %v", ErrCorruptLog, rec.ID, err)
	}
	var err error
	if rec.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return nil, fmt.Errorf("%w: %s: seed: %v", ErrCorruptLog, rec.ID, err)
	}
	if finished.Valid {
		t := finished.Time
		rec.FinishedAt = &t
	}
	if scores.Valid {
		if err := json.Unmarshal([]byte(scores.String), &rec.Scores); err != nil {
			return nil, fmt.Errorf("%w: %s: scores: %v", ErrCorruptLog, rec.ID, err)
		}
	}
	return &rec, nil
}
