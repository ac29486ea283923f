package ai

import (
	"runtime"
	"sync"

	"github.com/ArcBees/quebec-game-sub001/internal/game"
	"github.com/ArcBees/quebec-game-sub001/internal/game/core"
	"github.com/rs/zerolog"
)

type Option func(a *Agent)

// WithEvaluationFn replaces the heuristic used to rank the branches
func WithEvaluationFn(evaluate Evaluate) Option {
	return func(a *Agent) {
		if evaluate != nil {
			a.evaluate = evaluate
		}
	}
}

// WithWorkers sets how many branches are evaluated in parallel
func WithWorkers(workers int) Option {
	return func(a *Agent) {
		if workers > 0 {
			a.workers = workers
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger.With().Str("component", "Agent").Logger()
	}
}

// Agent picks moves with a one-ply look-ahead: every pending action is
// played on its own copy of the state, followed by the automatic actions it
// triggers, and the resulting positions are ranked by the evaluation
// function. The state passed to Choose is never modified.
type Agent struct {
	controller *game.Controller
	evaluate   Evaluate
	workers    int
	logger     zerolog.Logger
}

func NewAgent(options ...Option) *Agent {
	a := &Agent{
		evaluate: Heuristic,
		workers:  runtime.GOMAXPROCS(0),
		logger:   zerolog.Nop(),
	}
	for _, option := range options {
		option(a)
	}
	// branches never deal tiles
	a.controller = game.NewController(nil, a.logger)
	return a
}

// Choose returns the index of the best pending action for the current
// player. Ties go to the lowest index.
func (a *Agent) Choose(state *game.GameState) (int, error) {
	n := state.PossibleActions.Len()
	if n == 0 {
		return -1, core.ErrNoPossibleActions
	}
	if n == 1 {
		return 0, nil
	}

	values := a.evaluateBranches(state)
	best := 0
	for i := 1; i < n; i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	a.logger.Debug().
		Str("player", state.Current().Color.String()).
		Str("action", state.PossibleActions.Actions[best].String()).
		Float64("value", values[best]).
		Int("branches", n).
		Msg("Action chosen")
	return best, nil
}

// evaluateBranches values every pending action from the current player's seat
func (a *Agent) evaluateBranches(state *game.GameState) []float64 {
	n := state.PossibleActions.Len()
	seat := state.CurrentPlayer
	values := make([]float64, n)

	indices := make(chan int, n)
	for i := 0; i < n; i++ {
		indices <- i
	}
	close(indices)

	var wg sync.WaitGroup
	for w := 0; w < min(a.workers, n); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				values[i] = a.evaluateBranch(state, seat, i)
			}
		}()
	}
	wg.Wait()
	return values
}

func (a *Agent) evaluateBranch(state *game.GameState, seat, index int) float64 {
	branch := state.Clone()
	a.controller.PerformAction(branch, branch.PossibleActions.Actions[index])
	a.controller.RunAutomaticActions(branch)
	return a.evaluate(branch, seat)
}
