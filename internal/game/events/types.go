package events

import (
	"time"
)

// Kind identifies what happened in a game
type Kind string

const (
	KindGameStarted     Kind = "game.started"
	KindGameEnded       Kind = "game.ended"
	KindActionPerformed Kind = "action.performed"
	KindScoringPhase    Kind = "scoring.phase"
	KindCenturyStarted  Kind = "century.started"
	KindLifecycleStage  Kind = "lifecycle.stage"
)

// Kinds lists every event kind in the order they occur in a game
var Kinds = []Kind{
	KindGameStarted,
	KindLifecycleStage,
	KindActionPerformed,
	KindScoringPhase,
	KindCenturyStarted,
	KindGameEnded,
}

// Event is something that happened in one game. Kind must not depend on the
// receiver, so that a nil event of a concrete type still reports its kind.
type Event interface {
	Kind() Kind
	GameID() string
	Timestamp() time.Time
}

// Header holds the fields every event carries
type Header struct {
	Game string    `json:"game_id"`
	Time time.Time `json:"timestamp"`
}

func (h Header) GameID() string { return h.Game }

func (h Header) Timestamp() time.Time { return h.Time }

func newHeader(gameID string) Header {
	return Header{Game: gameID, Time: time.Now()}
}

// Handler processes one event
type Handler func(Event)

// Subscriber is a long lived receiver, such as a logger or a network
// bridge, that picks the kinds it wants.
type Subscriber interface {
	ID() string
	InterestedIn(kind Kind) bool
	HandleEvent(Event)
}

// Publisher is what the engine and the lifecycles publish through
type Publisher interface {
	Publish(Event)
}
