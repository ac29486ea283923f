package gameserver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ArcBees/quebec-game-sub001/internal/ai"
	"github.com/ArcBees/quebec-game-sub001/internal/common"
	gameengine "github.com/ArcBees/quebec-game-sub001/internal/game"
	"github.com/ArcBees/quebec-game-sub001/internal/game/events"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrAtCapacity    = errors.New("server at capacity")
	ErrNotYourTurn   = errors.New("not the current player")
	ErrGameFinished  = errors.New("game already finished")
	ErrInvalidAction = errors.New("invalid action")
)

// GameRecorder persists the games hosted by the manager so that they can be
// replayed later.
type GameRecorder interface {
	gameengine.DecisionRecorder
	CreateGame(ctx context.Context, gameID string, players []string, seed uint64) error
	FinishGame(ctx context.Context, gameID string, scores []int) error
}

// GameInstance is one hosted game. All access to the engine goes through the
// instance lock.
type GameInstance struct {
	id      string
	players []string
	engine  *gameengine.Engine
	mu      sync.Mutex

	// Activity tracking for cleanup
	createdAt    time.Time
	lastActivity time.Time
	finishedAt   time.Time

	idempotencyManager *IdempotencyManager
}

// ManagerOption configures a GameManager
type ManagerOption func(gm *GameManager)

// WithRecorder persists every game and decision
func WithRecorder(recorder GameRecorder) ManagerOption {
	return func(gm *GameManager) {
		gm.recorder = recorder
	}
}

// WithAgent sets the agent playing PlayAI requests
func WithAgent(agent *ai.Agent) ManagerOption {
	return func(gm *GameManager) {
		if agent != nil {
			gm.agent = agent
		}
	}
}

// WithCheckInvariants runs the engines in debug mode
func WithCheckInvariants(enabled bool) ManagerOption {
	return func(gm *GameManager) {
		gm.checkInvariants = enabled
	}
}

// WithCleanupInterval sets how often finished and abandoned games are
// removed. Zero disables the cleanup goroutine.
func WithCleanupInterval(interval time.Duration) ManagerOption {
	return func(gm *GameManager) {
		gm.cleanupInterval = interval
	}
}

// WithLogger sets the logger handed to the engines
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(gm *GameManager) {
		gm.logger = logger
	}
}

// GameManager manages all active game instances
type GameManager struct {
	mu       sync.RWMutex
	games    map[string]*GameInstance
	maxGames int

	recorder        GameRecorder
	agent           *ai.Agent
	checkInvariants bool
	cleanupInterval time.Duration
	logger          zerolog.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

// NewGameManager creates a manager hosting at most maxGames games. Zero
// means unlimited.
func NewGameManager(maxGames int, opts ...ManagerOption) *GameManager {
	gm := &GameManager{
		games:           make(map[string]*GameInstance),
		maxGames:        maxGames,
		cleanupInterval: cleanupInterval,
		logger:          log.Logger,
		stop:            make(chan struct{}),
	}
	for _, opt := range opts {
		opt(gm)
	}
	if gm.agent == nil {
		gm.agent = ai.NewAgent(ai.WithLogger(gm.logger))
	}

	if gm.cleanupInterval > 0 {
		go gm.runCleanup()
	}
	return gm
}

// Close stops the cleanup goroutine
func (gm *GameManager) Close() {
	gm.stopOnce.Do(func() { close(gm.stop) })
}

// CreateGame starts a new game between the named players, dealing the
// buildings with seed.
func (gm *GameManager) CreateGame(ctx context.Context, players []string, seed uint64) (*GameInstance, error) {
	if err := common.ValidatePlayerNames(players); err != nil {
		return nil, err
	}

	gm.mu.RLock()
	currentGames := len(gm.games)
	gm.mu.RUnlock()
	if gm.maxGames > 0 && currentGames >= gm.maxGames {
		log.Warn().
			Int("current_games", currentGames).
			Int("max_games", gm.maxGames).
			Msg("Rejecting game creation - server at capacity")
		return nil, fmt.Errorf("%w: %d/%d games active", ErrAtCapacity, currentGames, gm.maxGames)
	}

	cfg := gameengine.GameConfig{
		Players:         players,
		Seed:            seed,
		Logger:          gm.logger,
		CheckInvariants: gm.checkInvariants,
	}
	if gm.recorder != nil {
		cfg.Recorder = gm.recorder
	}
	engine, err := gameengine.NewEngine(ctx, cfg)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	game := &GameInstance{
		id:                 engine.GameID(),
		players:            append([]string(nil), players...),
		engine:             engine,
		createdAt:          now,
		lastActivity:       now,
		idempotencyManager: NewIdempotencyManager(),
	}

	if gm.recorder != nil {
		if err := gm.recorder.CreateGame(ctx, game.id, players, seed); err != nil {
			return nil, fmt.Errorf("recording game %s: %w", game.id, err)
		}
	}
	events.On(engine.EventBus(), func(e *events.GameEndedEvent) {
		// published while the instance lock is held by the performing call
		game.finishedAt = time.Now()
		log.Info().
			Str("game_id", e.GameID()).
			Str("winner", e.Winner).
			Ints("scores", e.Scores).
			Msg("Game finished")
		if gm.recorder != nil {
			if err := gm.recorder.FinishGame(context.Background(), e.GameID(), e.Scores); err != nil {
				log.Error().Err(err).Str("game_id", e.GameID()).Msg("Failed to record game result")
			}
		}
	})

	gm.mu.Lock()
	gm.games[game.id] = game
	gm.mu.Unlock()

	log.Info().
		Str("game_id", game.id).
		Strs("players", players).
		Uint64("seed", seed).
		Msg("Game created")
	return game, nil
}

// GetGame returns the game with the given id
func (gm *GameManager) GetGame(gameID string) (*GameInstance, bool) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	game, exists := gm.games[gameID]
	return game, exists
}

// GetActiveGames returns the number of active games
func (gm *GameManager) GetActiveGames() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

// Agent returns the agent playing for PlayAI requests
func (gm *GameManager) Agent() *ai.Agent {
	return gm.agent
}

// runCleanup periodically removes finished and abandoned games
func (gm *GameManager) runCleanup() {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Interface("panic", r).
				Msg("Game cleanup goroutine panicked - restarting")
			time.Sleep(5 * time.Second)
			go gm.runCleanup()
		}
	}()

	ticker := time.NewTicker(gm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-gm.stop:
			return
		case <-ticker.C:
			gm.cleanupGames(time.Now())
		}
	}
}

// cleanupGames removes finished and abandoned games from memory
func (gm *GameManager) cleanupGames(now time.Time) int {
	// collect references first so that no game lock is taken under the manager lock
	gm.mu.RLock()
	gameRefs := make([]*GameInstance, 0, len(gm.games))
	for _, game := range gm.games {
		gameRefs = append(gameRefs, game)
	}
	gm.mu.RUnlock()

	var toDelete []string
	for _, game := range gameRefs {
		game.mu.Lock()
		shouldCleanup := false
		reason := ""
		if !game.finishedAt.IsZero() {
			if now.Sub(game.finishedAt) > finishedGameTTL {
				shouldCleanup = true
				reason = "finished game TTL expired"
			}
		} else if now.Sub(game.lastActivity) > abandonedGameTimeout {
			shouldCleanup = true
			reason = "game abandoned (no activity)"
		}
		createdAt := game.createdAt
		lastActivity := game.lastActivity
		game.mu.Unlock()

		if shouldCleanup {
			toDelete = append(toDelete, game.id)
			log.Info().
				Str("game_id", game.id).
				Str("reason", reason).
				Dur("age", now.Sub(createdAt)).
				Dur("inactive", now.Sub(lastActivity)).
				Msg("Cleaning up game")
		}
	}

	if len(toDelete) == 0 {
		return 0
	}
	gm.mu.Lock()
	for _, gameID := range toDelete {
		delete(gm.games, gameID)
	}
	remainingCount := len(gm.games)
	gm.mu.Unlock()

	log.Info().
		Int("cleaned", len(toDelete)).
		Int("remaining", remainingCount).
		Msg("Game cleanup completed")
	return len(toDelete)
}

// Game instance methods

// ID returns the game id
func (g *GameInstance) ID() string { return g.id }

// View returns a snapshot of the game. The board drawing is included when
// withBoard is set.
func (g *GameInstance) View(withBoard bool) GameView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewLocked(withBoard)
}

// Perform validates the request against the current state and plays the
// action it designates.
func (g *GameInstance) Perform(ctx context.Context, req ActionRequest) (GameView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.engine.IsGameOver() {
		return GameView{}, ErrGameFinished
	}
	index, err := resolveAction(g.engine.GameState(), g.engine.Decisions(), req)
	if err != nil {
		return GameView{}, err
	}
	if err := g.engine.Perform(ctx, index); err != nil {
		return GameView{}, err
	}
	g.lastActivity = time.Now()
	return g.viewLocked(false), nil
}

// PlayAI lets the agent take up to decisions decisions, stopping early at
// the end of the game. It returns the actions played.
func (g *GameInstance) PlayAI(ctx context.Context, agent *ai.Agent, decisions int) ([]string, GameView, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.engine.IsGameOver() {
		return nil, GameView{}, ErrGameFinished
	}
	var played []string
	for i := 0; i < decisions && !g.engine.IsGameOver(); i++ {
		state := g.engine.GameState()
		index, err := agent.Choose(state)
		if err != nil {
			return played, GameView{}, err
		}
		action := state.PossibleActions.Actions[index].String()
		if err := g.engine.Perform(ctx, index); err != nil {
			return played, GameView{}, err
		}
		played = append(played, fmt.Sprintf("%s: %s", state.Current().Name, action))
	}
	g.lastActivity = time.Now()
	return played, g.viewLocked(false), nil
}
