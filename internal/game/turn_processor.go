package game

import (
	"context"
	"fmt"

	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
	"github.com/ArcBees/quebec-game-sub001/internal/game/lifecycle"
	"github.com/rs/zerolog"
)

// TurnProcessor handles the orchestration of a single decision
type TurnProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(engine *Engine) *TurnProcessor {
	return &TurnProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// ProcessDecision performs the chosen action and the automatic actions it
// triggers.
func (tp *TurnProcessor) ProcessDecision(ctx context.Context, index int) error {
	if err := tp.checkContext(ctx, "before starting"); err != nil {
		return err
	}
	state := tp.engine.state
	if state.GameOver {
		tp.logger.Warn().Int("century", state.Century).Msg("Attempted to play a game that is already over")
		return core.WrapGameStateError(state.Century, "perform action", core.ErrGameOver)
	}

	action, err := PendingAction(state, index)
	if err != nil {
		return core.WrapActionError(state.Current().Color, "choose action", err)
	}

	tp.engine.decisions++
	decisionLogger := tp.logger.With().Int("decision", tp.engine.decisions).Logger()
	decisionLogger.Debug().
		Str("player", state.Current().Color.String()).
		Str("action", action.String()).
		Msg("Processing decision")
	tp.runStep(index, action)
	if err := tp.verify(); err != nil {
		return err
	}

	automatic := 0
	for state.PossibleActions.IsAutomatic() && !state.GameOver {
		if err := tp.checkContext(ctx, "between automatic actions"); err != nil {
			return core.WrapGameStateError(state.Century, "automatic actions", fmt.Errorf("context cancelled: %w", err))
		}
		tp.runStep(0, state.PossibleActions.Actions[0])
		automatic++
		if err := tp.verify(); err != nil {
			return err
		}
	}

	decisionLogger.Debug().
		Int("automatic_actions", automatic).
		Int("century", state.Century).
		Bool("game_over", state.GameOver).
		Msg("Decision finished")
	return nil
}

// runStep executes one action and commits its change when the lifecycle
// reaches FINALIZED. The change is applied once, on the copy the actors see
// as After, which then replaces the state.
func (tp *TurnProcessor) runStep(index int, action Action) {
	e := tp.engine
	e.steps++

	before := e.state.Clone()
	change := e.controller.Execute(e.state, action)
	after := before.Clone()
	e.controller.Apply(after, change)

	step := &Step{
		GameID: e.gameID,
		Seq:    e.decisions,
		Index:  index,
		Action: action,
		Change: change,
		Before: before,
		After:  after,
	}

	lc := lifecycle.New(fmt.Sprintf("%s/%d", e.gameID, e.steps), e.eventBus, tp.logger)
	for _, actor := range e.actors {
		lc.Register(stepActorAdapter{actor: actor, step: step})
	}
	lc.OnStage(lifecycle.StageFinalized, func() {
		*e.state = *after.Clone()
	})
	lc.Start()
	lc.Wait()
}

// verify checks the state invariants when the engine runs in debug mode
func (tp *TurnProcessor) verify() error {
	if !tp.engine.debug {
		return nil
	}
	state := tp.engine.state
	if err := state.CheckInvariants(); err != nil {
		tp.logger.Error().Err(err).Int("century", state.Century).Msg("State invariant broken")
		return core.WrapGameStateError(state.Century, "check invariants", err)
	}
	return nil
}

// checkContext checks if the context is cancelled
func (tp *TurnProcessor) checkContext(ctx context.Context, phase string) error {
	select {
	case <-ctx.Done():
		tp.logger.Warn().
			Err(ctx.Err()).
			Int("century", tp.engine.state.Century).
			Str("phase", phase).
			Msg("Decision cancelled or timed out")
		return ctx.Err()
	default:
		return nil
	}
}
