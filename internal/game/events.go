package game

import (
	"slices"
	"sync"
	"time"

	"github.com/lox/pokerarena/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeHandStart    EventType = "hand_start"
	EventTypeBlindsPosted EventType = "blinds_posted"
	EventTypePlayerAction EventType = "player_action"
	EventTypeStreetChange EventType = "street_change"
	EventTypeHandEnd      EventType = "hand_end"
	EventTypeBlindLevel   EventType = "blind_level"
)

func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a hand
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// HandStartEvent is published once hole cards are dealt. Hole holds every
// seat's cards; subscribers that forward events to players must strip it.
type HandStartEvent struct {
	HandID     string
	Seats      []Seat
	Stacks     map[Seat]int
	SmallBlind int
	BigBlind   int
	Hole       map[Seat][]deck.Card
	timestamp  time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

func NewHandStartEvent(handID string, seats []Seat, stacks map[Seat]int, smallBlind, bigBlind int) HandStartEvent {
	return HandStartEvent{
		HandID:     handID,
		Seats:      slices.Clone(seats),
		Stacks:     stacks,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		timestamp:  time.Now(),
	}
}

// BlindsPostedEvent carries what was actually deducted for the blinds,
// which is less than the blind when a stack is short.
type BlindsPostedEvent struct {
	HandID         string
	SmallBlindSeat Seat
	SmallBlind     int
	BigBlindSeat   Seat
	BigBlind       int
	Pot            int
	timestamp      time.Time
}

func (e BlindsPostedEvent) EventType() EventType { return EventTypeBlindsPosted }
func (e BlindsPostedEvent) Timestamp() time.Time { return e.timestamp }

func NewBlindsPostedEvent(handID string, sbSeat Seat, sb int, bbSeat Seat, bb int, pot int) BlindsPostedEvent {
	return BlindsPostedEvent{
		HandID:         handID,
		SmallBlindSeat: sbSeat,
		SmallBlind:     sb,
		BigBlindSeat:   bbSeat,
		BigBlind:       bb,
		Pot:            pot,
		timestamp:      time.Now(),
	}
}

// PlayerActionEvent is published after an action has been applied. Action
// is what the engine resolved the decision to, Amount the chips posted.
type PlayerActionEvent struct {
	HandID    string
	Seat      Seat
	Street    Street
	Action    Action
	Amount    int
	AllIn     bool
	TimedOut  bool
	PotAfter  int
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

func NewPlayerActionEvent(handID string, seat Seat, street Street, action Action, amount int, allIn, timedOut bool, potAfter int) PlayerActionEvent {
	return PlayerActionEvent{
		HandID:    handID,
		Seat:      seat,
		Street:    street,
		Action:    action,
		Amount:    amount,
		AllIn:     allIn,
		TimedOut:  timedOut,
		PotAfter:  potAfter,
		timestamp: time.Now(),
	}
}

// StreetChangeEvent is published when community cards are revealed
type StreetChangeEvent struct {
	HandID    string
	Street    Street
	Board     []deck.Card
	Pot       int
	timestamp time.Time
}

func (e StreetChangeEvent) EventType() EventType { return EventTypeStreetChange }
func (e StreetChangeEvent) Timestamp() time.Time { return e.timestamp }

func NewStreetChangeEvent(handID string, street Street, board []deck.Card, pot int) StreetChangeEvent {
	return StreetChangeEvent{
		HandID:    handID,
		Street:    street,
		Board:     slices.Clone(board),
		Pot:       pot,
		timestamp: time.Now(),
	}
}

// HandEndEvent is published when a hand completes
type HandEndEvent struct {
	Result
	timestamp time.Time
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }
func (e HandEndEvent) Timestamp() time.Time { return e.timestamp }

func NewHandEndEvent(result Result) HandEndEvent {
	return HandEndEvent{Result: result, timestamp: time.Now()}
}

// BlindLevelEvent is published when the blinds go up
type BlindLevelEvent struct {
	Level      int
	SmallBlind int
	BigBlind   int
	timestamp  time.Time
}

func (e BlindLevelEvent) EventType() EventType { return EventTypeBlindLevel }
func (e BlindLevelEvent) Timestamp() time.Time { return e.timestamp }

func NewBlindLevelEvent(level, small, big int) BlindLevelEvent {
	return BlindLevelEvent{Level: level, SmallBlind: small, BigBlind: big, timestamp: time.Now()}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus. Delivery is synchronous
// and a panicking subscriber does not stop delivery to the others.
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subscribers := slices.Clone(bus.subscribers)
	bus.mu.RUnlock()

	for _, subscriber := range subscribers {
		deliver(subscriber, event)
	}
}

func deliver(subscriber EventSubscriber, event GameEvent) {
	defer func() { _ = recover() }()
	subscriber.OnEvent(event)
}
