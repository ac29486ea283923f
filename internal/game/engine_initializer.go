package game

import (
	"context"
	"fmt"
	"time"

	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
	"github.com/ArcBees/quebec-game-sub001/internal/game/events"
	"github.com/ArcBees/quebec-game-sub001/internal/game/events/subscribers"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// GameConfig holds the parameters of a new game
type GameConfig struct {
	GameID  string
	Players []string
	// Seed feeds the random shuffler when Shuffler is nil.
	Seed     uint64
	Shuffler Shuffler
	Logger   zerolog.Logger
	EventBus *events.EventBus
	Actors   []StepActor
	Recorder DecisionRecorder
	// CheckInvariants verifies the state after every step. Meant for tests
	// and debugging sessions.
	CheckInvariants bool
}

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	return &EngineInitializer{
		config: cfg,
		logger: cfg.Logger.With().Str("component", "GameEngine").Logger(),
	}
}

// NewEngine creates and initializes a game engine
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// Initialize creates a new game engine with a dealt board
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out")
		return nil, ctx.Err()
	default:
	}

	if !ValidPlayerCount(len(ei.config.Players)) {
		return nil, fmt.Errorf("engine setup: %w: %d", core.ErrInvalidPlayerCount, len(ei.config.Players))
	}
	ei.setupDefaults()

	engine := ei.createEngine()
	if err := engine.controller.InitGame(engine.state, ei.config.Players); err != nil {
		return nil, fmt.Errorf("game setup failed: %w", err)
	}

	engine.eventBus.Publish(events.NewGameStartedEvent(engine.gameID, ei.config.Players, ei.config.Seed))
	ei.logger.Info().
		Str("game_id", engine.gameID).
		Strs("players", ei.config.Players).
		Uint64("seed", ei.config.Seed).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults fills in missing configuration values
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.GameID == "" {
		ei.config.GameID = uuid.NewString()
	}
	if ei.config.Shuffler == nil {
		ei.logger.Debug().Uint64("seed", ei.config.Seed).Msg("No shuffler provided, using seeded random shuffler")
		ei.config.Shuffler = NewRandomShuffler(ei.config.Seed)
	}
	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBus(ei.config.Logger)
	}
	// every game event shows up in the debug log
	ei.config.EventBus.Subscribe(subscribers.NewLoggerSubscriber("event-logger/"+ei.config.GameID, ei.logger, zerolog.DebugLevel))
}

// createEngine wires the engine components together
func (ei *EngineInitializer) createEngine() *Engine {
	engine := &Engine{
		gameID:     ei.config.GameID,
		seed:       ei.config.Seed,
		state:      &GameState{},
		controller: NewController(ei.config.Shuffler, ei.logger),
		eventBus:   ei.config.EventBus,
		logger:     ei.logger.With().Str("game_id", ei.config.GameID).Logger(),
		startTime:  time.Now(),
		debug:      ei.config.CheckInvariants,
	}
	// one engine plays one recorded game
	engine.controller.offerRestart = false
	engine.actors = append(engine.actors, &eventActor{engine: engine})
	engine.actors = append(engine.actors, ei.config.Actors...)
	if ei.config.Recorder != nil {
		engine.actors = append(engine.actors, &recorderActor{engine: engine, recorder: ei.config.Recorder})
	}
	engine.turnProcessor = NewTurnProcessor(engine)
	return engine
}
