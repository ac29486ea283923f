package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// EventBus delivers game events synchronously, in subscription order, to the
// handlers registered for their kind and to every interested Subscriber.
type EventBus struct {
	mu          sync.RWMutex
	handlers    map[Kind][]*Subscription
	subscribers map[string]Subscriber
	nextID      uint64
	logger      zerolog.Logger
}

// Subscription is a handler registered for one event kind
type Subscription struct {
	id      uint64
	kind    Kind
	handler Handler
	bus     *EventBus
}

// Kind returns the kind the subscription listens to
func (s *Subscription) Kind() Kind { return s.kind }

// Cancel removes the handler from the bus. Cancelling twice is a no-op.
func (s *Subscription) Cancel() {
	eb := s.bus
	eb.mu.Lock()
	defer eb.mu.Unlock()

	list := eb.handlers[s.kind]
	for i, sub := range list {
		if sub.id == s.id {
			eb.handlers[s.kind] = append(list[:i:i], list[i+1:]...)
			eb.logger.Debug().Str("kind", string(s.kind)).Uint64("handler_id", s.id).Msg("Handler removed from event bus")
			return
		}
	}
}

// NewEventBus creates an empty bus
func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		handlers:    make(map[Kind][]*Subscription),
		subscribers: make(map[string]Subscriber),
		logger:      logger.With().Str("component", "event_bus").Logger(),
	}
}

// Handle registers handler for every event of the given kind
func (eb *EventBus) Handle(kind Kind, handler Handler) *Subscription {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	sub := &Subscription{id: eb.nextID, kind: kind, handler: handler, bus: eb}
	eb.handlers[kind] = append(eb.handlers[kind], sub)
	eb.logger.Debug().Str("kind", string(kind)).Uint64("handler_id", sub.id).Msg("Handler added to event bus")
	return sub
}

// On registers fn for the events of type E, which must be one of the
// concrete event pointer types of this package:
//
//	events.On(bus, func(e *events.GameEndedEvent) { ... })
func On[E Event](eb *EventBus, fn func(E)) *Subscription {
	var zero E
	return eb.Handle(zero.Kind(), func(event Event) {
		if e, ok := event.(E); ok {
			fn(e)
		}
	})
}

// Subscribe adds a subscriber, replacing any with the same id
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.subscribers[subscriber.ID()] = subscriber
	eb.logger.Debug().Str("subscriber_id", subscriber.ID()).Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	delete(eb.subscribers, subscriberID)
	eb.logger.Debug().Str("subscriber_id", subscriberID).Msg("Subscriber removed from event bus")
}

// Publish delivers event to its handlers, then to the interested
// subscribers. Handlers run outside the bus lock, so they may subscribe or
// cancel. A panicking handler is logged and does not stop the others.
func (eb *EventBus) Publish(event Event) {
	kind := event.Kind()

	eb.mu.RLock()
	handlers := append([]*Subscription(nil), eb.handlers[kind]...)
	subscribers := make([]Subscriber, 0, len(eb.subscribers))
	for _, s := range eb.subscribers {
		if s.InterestedIn(kind) {
			subscribers = append(subscribers, s)
		}
	}
	eb.mu.RUnlock()

	eb.logger.Debug().
		Str("kind", string(kind)).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Int("receivers", len(handlers)+len(subscribers)).
		Msg("Publishing event")

	for _, sub := range handlers {
		eb.deliver(kind, "handler", sub.handler, event)
	}
	for _, s := range subscribers {
		eb.deliver(kind, s.ID(), s.HandleEvent, event)
	}
}

func (eb *EventBus) deliver(kind Kind, receiver string, fn Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("kind", string(kind)).
				Str("receiver", receiver).
				Interface("panic", r).
				Msg("Event receiver panicked")
		}
	}()
	fn(event)
}

// HandlerCount returns the number of handlers registered for kind
func (eb *EventBus) HandlerCount(kind Kind) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.handlers[kind])
}

// SubscriberCount returns the number of subscribers
func (eb *EventBus) SubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}
