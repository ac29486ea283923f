package game

import (
	"context"
	"time"

	"github.com/ArcBees/quebec-game-sub001/internal/game/events"
	"github.com/ArcBees/quebec-game-sub001/internal/game/lifecycle"
	"github.com/rs/zerolog"
)

// Engine drives one game: it performs the decisions of the players through
// the action lifecycle and applies the automatic actions that follow them.
// An Engine is not safe for concurrent use.
type Engine struct {
	gameID        string
	seed          uint64
	state         *GameState
	controller    *Controller
	eventBus      *events.EventBus
	actors        []StepActor
	logger        zerolog.Logger
	turnProcessor *TurnProcessor
	startTime     time.Time
	debug         bool

	// decisions counts player decisions, steps every performed action
	decisions int
	steps     int
}

// Perform plays the pending action at index for the current player, then
// every automatic action up to the next decision.
func (e *Engine) Perform(ctx context.Context, index int) error {
	return e.turnProcessor.ProcessDecision(ctx, index)
}

// Public accessors
func (e *Engine) GameID() string             { return e.gameID }
func (e *Engine) Seed() uint64               { return e.seed }
func (e *Engine) IsGameOver() bool           { return e.state.GameOver }
func (e *Engine) Decisions() int             { return e.decisions }
func (e *Engine) Controller() *Controller    { return e.controller }
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }
func (e *Engine) Century() int               { return e.state.Century }
func (e *Engine) PendingActions() []Action   { return append([]Action(nil), e.possibleActions()...) }
func (e *Engine) CurrentPlayer() PlayerState { return *e.state.Current() }
func (e *Engine) Standings() []Standing      { return Standings(e.state) }

// GameState returns a deep copy of the current state
func (e *Engine) GameState() *GameState {
	return e.state.Clone()
}

func (e *Engine) possibleActions() []Action {
	if e.state.PossibleActions == nil {
		return nil
	}
	return e.state.PossibleActions.Actions
}

// GetWinner returns the leading player once the game is over
func (e *Engine) GetWinner() (PlayerState, bool) {
	if !e.state.GameOver {
		return PlayerState{}, false
	}
	standings := Standings(e.state)
	return e.state.Players[standings[0].Seat], true
}

// eventActor publishes the game events of a step once it is finalized
type eventActor struct {
	engine *Engine
}

func (a *eventActor) Name() string { return "event_publisher" }

func (a *eventActor) HandleStep(stage lifecycle.Stage, step *Step, done func()) {
	defer done()
	if stage != lifecycle.StageFinalized {
		return
	}
	bus := a.engine.eventBus
	before, after := step.Before, step.After
	player := before.Current()

	bus.Publish(events.NewActionPerformedEvent(step.GameID, before.CurrentPlayer, player.Color.String(),
		step.Action.String(), step.Index, before.Century, step.Action.Automatic()))

	if scoring, ok := step.Action.(PerformScoringPhase); ok {
		points := make([]int, len(after.Players))
		for i := range after.Players {
			points[i] = after.Players[i].Score - before.Players[i].Score
		}
		bus.Publish(events.NewScoringPhaseEvent(step.GameID, scoring.Phase.String(), before.Century, points))
	}
	if after.Century > before.Century {
		bus.Publish(events.NewCenturyStartedEvent(step.GameID, after.Century))
	}
	if after.GameOver && !before.GameOver {
		scores := make([]int, len(after.Players))
		for i := range after.Players {
			scores[i] = after.Players[i].Score
		}
		winner := after.Players[Standings(after)[0].Seat].Color.String()
		bus.Publish(events.NewGameEndedEvent(step.GameID, scores, winner, time.Since(a.engine.startTime)))
	}
}
