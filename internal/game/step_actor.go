package game

import (
	"context"

	"github.com/ArcBees/quebec-game-sub001/internal/game/lifecycle"
)

// Step is one performed action as seen by the actors of its lifecycle.
type Step struct {
	GameID string
	// Seq counts the player decisions of the game, automatic steps share the
	// number of the decision that triggered them.
	Seq    int
	Index  int
	Action Action
	Change Change
	Before *GameState
	// After is computed on a copy before the authoritative state changes.
	After *GameState
}

// StepActor takes part in the lifecycle of every step. Animation, network
// and persistence collaborators are reached only through it.
type StepActor interface {
	Name() string
	HandleStep(stage lifecycle.Stage, step *Step, done func())
}

// DecisionRecorder persists the player decisions of a game.
type DecisionRecorder interface {
	RecordDecision(ctx context.Context, gameID string, seq, index int) error
}

// stepActorAdapter binds a StepActor to one step
type stepActorAdapter struct {
	actor StepActor
	step  *Step
}

func (a stepActorAdapter) Name() string { return a.actor.Name() }

func (a stepActorAdapter) Handle(stage lifecycle.Stage, done func()) {
	a.actor.HandleStep(stage, a.step, done)
}

// recorderActor stores the decision index once the step is finalized
type recorderActor struct {
	engine   *Engine
	recorder DecisionRecorder
}

func (r *recorderActor) Name() string { return "decision_recorder" }

func (r *recorderActor) HandleStep(stage lifecycle.Stage, step *Step, done func()) {
	defer done()
	if stage != lifecycle.StageFinalized || step.Action.Automatic() {
		return
	}
	if err := r.recorder.RecordDecision(context.Background(), step.GameID, step.Seq, step.Index); err != nil {
		r.engine.logger.Error().
			Err(err).
			Int("seq", step.Seq).
			Int("index", step.Index).
			Msg("Failed to record decision")
	}
}
