package lifecycle

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ArcBees/quebec-game-sub001/internal/game/events"
	"github.com/rs/zerolog"
)

var (
	ErrAlreadyStarted  = errors.New("lifecycle already started")
	ErrDoubleComplete  = errors.New("actor completed a stage twice")
	ErrStageMismatch   = errors.New("actor completed a stage that is not current")
	errNilActorHandler = errors.New("actor has no handler")
)

// Actor takes part in a lifecycle. For every stage requiring actors, Handle is
// called once and the actor must call done exactly once, from any goroutine.
type Actor interface {
	Name() string
	Handle(stage Stage, done func())
}

// ActorFunc adapts a function to the Actor interface.
type ActorFunc struct {
	ActorName string
	Fn        func(stage Stage, done func())
}

func (a ActorFunc) Name() string { return a.ActorName }

func (a ActorFunc) Handle(stage Stage, done func()) {
	if a.Fn == nil {
		panic(errNilActorHandler)
	}
	a.Fn(stage, done)
}

// Transition records a stage change
type Transition struct {
	From      Stage
	To        Stage
	Timestamp time.Time
}

// Lifecycle is a barrier over a fixed set of actors. A stage only ends when
// every registered actor has signaled completion for it.
type Lifecycle struct {
	mu        sync.Mutex
	id        string
	stage     Stage
	actors    []Actor
	completed []bool
	pending   int
	hooks     map[Stage][]func()
	history   []Transition
	done      chan struct{}
	publisher events.Publisher
	logger    zerolog.Logger
}

// New creates a lifecycle in the PRE_START stage. The publisher may be nil.
func New(id string, publisher events.Publisher, logger zerolog.Logger) *Lifecycle {
	return &Lifecycle{
		id:        id,
		stage:     StagePreStart,
		hooks:     make(map[Stage][]func()),
		history:   make([]Transition, 0, 4),
		done:      make(chan struct{}),
		publisher: publisher,
		logger:    logger.With().Str("component", "Lifecycle").Str("lifecycle_id", id).Logger(),
	}
}

// Register adds an actor. Actors are fixed once the lifecycle started.
func (l *Lifecycle) Register(actor Actor) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stage != StagePreStart {
		panic(fmt.Errorf("%w: cannot register %s in %s", ErrAlreadyStarted, actor.Name(), l.stage))
	}
	l.actors = append(l.actors, actor)
}

// OnStage registers a hook run when the lifecycle enters stage, before the
// actors are notified.
func (l *Lifecycle) OnStage(stage Stage, hook func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stage != StagePreStart {
		panic(fmt.Errorf("%w: cannot add a %s hook", ErrAlreadyStarted, stage))
	}
	l.hooks[stage] = append(l.hooks[stage], hook)
}

// Start moves the lifecycle to STARTED. It may only be called once.
func (l *Lifecycle) Start() {
	l.mu.Lock()
	if l.stage != StagePreStart {
		l.mu.Unlock()
		panic(ErrAlreadyStarted)
	}
	l.mu.Unlock()
	l.advance()
}

// Stage returns the current stage
func (l *Lifecycle) Stage() Stage {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stage
}

// Done is closed when the lifecycle reaches COMPLETED
func (l *Lifecycle) Done() <-chan struct{} {
	return l.done
}

// Wait blocks until the lifecycle is completed.
func (l *Lifecycle) Wait() {
	<-l.done
}

// History returns a copy of the stage transitions
func (l *Lifecycle) History() []Transition {
	l.mu.Lock()
	defer l.mu.Unlock()

	history := make([]Transition, len(l.history))
	copy(history, l.history)
	return history
}

// advance moves to the next stage, runs its hooks and hands it to the actors.
// Stages without actors to wait for are passed through immediately.
func (l *Lifecycle) advance() {
	l.mu.Lock()
	from := l.stage
	to := from.Next()
	l.stage = to
	l.pending = len(l.actors)
	l.completed = make([]bool, len(l.actors))
	l.history = append(l.history, Transition{From: from, To: to, Timestamp: time.Now()})
	hooks := l.hooks[to]
	actors := l.actors
	l.mu.Unlock()

	l.logger.Debug().
		Str("from_stage", from.String()).
		Str("to_stage", to.String()).
		Int("actors", len(actors)).
		Msg("Lifecycle stage changed")
	if l.publisher != nil {
		l.publisher.Publish(events.NewLifecycleStageEvent(l.id, from.String(), to.String(), len(actors)))
	}

	for _, hook := range hooks {
		hook()
	}

	if to.IsTerminal() {
		close(l.done)
		return
	}
	if len(actors) == 0 || !to.RequiresActors() {
		l.advance()
		return
	}
	for i, actor := range actors {
		i := i
		actor.Handle(to, func() { l.complete(i, to) })
	}
}

func (l *Lifecycle) complete(actor int, stage Stage) {
	l.mu.Lock()
	if l.stage != stage {
		l.mu.Unlock()
		panic(fmt.Errorf("%w: %s done for %s during %s", ErrStageMismatch, l.actors[actor].Name(), stage, l.stage))
	}
	if l.completed[actor] {
		l.mu.Unlock()
		panic(fmt.Errorf("%w: %s in %s", ErrDoubleComplete, l.actors[actor].Name(), stage))
	}
	l.completed[actor] = true
	l.pending--
	last := l.pending == 0
	l.mu.Unlock()

	if last {
		l.advance()
	}
}
