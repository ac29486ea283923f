package events

import (
	"time"
)

// GameStartedEvent is published when a new game begins
type GameStartedEvent struct {
	Header
	Players []string `json:"players"`
	Seed    uint64   `json:"seed"`
}

func (*GameStartedEvent) Kind() Kind { return KindGameStarted }

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, players []string, seed uint64) *GameStartedEvent {
	return &GameStartedEvent{
		Header:  newHeader(gameID),
		Players: players,
		Seed:    seed,
	}
}

// GameEndedEvent is published when the last century has been scored
type GameEndedEvent struct {
	Header
	Scores   []int         `json:"scores"`
	Winner   string        `json:"winner"`
	Duration time.Duration `json:"duration"`
}

func (*GameEndedEvent) Kind() Kind { return KindGameEnded }

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, scores []int, winner string, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		Header:   newHeader(gameID),
		Scores:   scores,
		Winner:   winner,
		Duration: duration,
	}
}

// ActionPerformedEvent is published after an action has been applied
type ActionPerformedEvent struct {
	Header
	Seat      int    `json:"seat"`
	Century   int    `json:"century"`
	Player    string `json:"player"`
	Action    string `json:"action"`
	Index     int    `json:"index"`
	Automatic bool   `json:"automatic"`
}

func (*ActionPerformedEvent) Kind() Kind { return KindActionPerformed }

// NewActionPerformedEvent creates a new ActionPerformedEvent
func NewActionPerformedEvent(gameID string, seat int, player, action string, index, century int, automatic bool) *ActionPerformedEvent {
	return &ActionPerformedEvent{
		Header:    newHeader(gameID),
		Seat:      seat,
		Century:   century,
		Player:    player,
		Action:    action,
		Index:     index,
		Automatic: automatic,
	}
}

// ScoringPhaseEvent is published for every step of the century scoring
type ScoringPhaseEvent struct {
	Header
	Phase   string `json:"phase"`
	Century int    `json:"century"`
	// Points scored by every seat during the phase
	Points []int `json:"points"`
}

func (*ScoringPhaseEvent) Kind() Kind { return KindScoringPhase }

// NewScoringPhaseEvent creates a new ScoringPhaseEvent
func NewScoringPhaseEvent(gameID, phase string, century int, points []int) *ScoringPhaseEvent {
	return &ScoringPhaseEvent{
		Header:  newHeader(gameID),
		Phase:   phase,
		Century: century,
		Points:  points,
	}
}

// CenturyStartedEvent is published when play moves to a new century
type CenturyStartedEvent struct {
	Header
	Century int `json:"century"`
}

func (*CenturyStartedEvent) Kind() Kind { return KindCenturyStarted }

// NewCenturyStartedEvent creates a new CenturyStartedEvent
func NewCenturyStartedEvent(gameID string, century int) *CenturyStartedEvent {
	return &CenturyStartedEvent{
		Header:  newHeader(gameID),
		Century: century,
	}
}

// LifecycleStageEvent is published when an action lifecycle changes stage
type LifecycleStageEvent struct {
	Header
	From   string `json:"from"`
	To     string `json:"to"`
	Actors int    `json:"actors"`
}

func (*LifecycleStageEvent) Kind() Kind { return KindLifecycleStage }

// NewLifecycleStageEvent creates a new LifecycleStageEvent. The game id is
// the lifecycle id, which starts with the id of the game.
func NewLifecycleStageEvent(lifecycleID, from, to string, actors int) *LifecycleStageEvent {
	return &LifecycleStageEvent{
		Header: newHeader(lifecycleID),
		From:   from,
		To:     to,
		Actors: actors,
	}
}
