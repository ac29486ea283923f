package subscribers

import (
	"encoding/json"

	"github.com/ArcBees/quebec-game-sub001/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id         string
	logger     zerolog.Logger
	logLevel   zerolog.Level
	kindFilter map[events.Kind]bool // If non-nil, only log these kinds
	devMode    bool                 // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which kinds to log (none means log all)
func (ls *LoggerSubscriber) SetEventFilter(kinds ...events.Kind) {
	if len(kinds) == 0 {
		ls.kindFilter = nil
		return
	}

	ls.kindFilter = make(map[events.Kind]bool)
	for _, kind := range kinds {
		ls.kindFilter[kind] = true
	}
}

// SetDevMode enables or disables logging of the full event payload
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this kind
func (ls *LoggerSubscriber) InterestedIn(kind events.Kind) bool {
	if ls.kindFilter == nil {
		return true
	}
	return ls.kindFilter[kind]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("kind", string(event.Kind())).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	var logEvent *zerolog.Event
	switch ls.logLevel {
	case zerolog.DebugLevel:
		logEvent = eventLogger.Debug()
	case zerolog.WarnLevel:
		logEvent = eventLogger.Warn()
	case zerolog.ErrorLevel:
		logEvent = eventLogger.Error()
	default:
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Strs("players", e.Players).
			Uint64("seed", e.Seed)

	case *events.GameEndedEvent:
		logEvent.
			Ints("scores", e.Scores).
			Str("winner", e.Winner).
			Dur("duration", e.Duration)

	case *events.ActionPerformedEvent:
		logEvent.
			Int("seat", e.Seat).
			Int("century", e.Century).
			Str("player", e.Player).
			Str("action", e.Action).
			Int("index", e.Index).
			Bool("automatic", e.Automatic)

	case *events.ScoringPhaseEvent:
		logEvent.
			Str("phase", e.Phase).
			Int("century", e.Century).
			Ints("points", e.Points)

	case *events.CenturyStartedEvent:
		logEvent.Int("century", e.Century)

	case *events.LifecycleStageEvent:
		logEvent.
			Str("from", e.From).
			Str("to", e.To).
			Int("actors", e.Actors)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
