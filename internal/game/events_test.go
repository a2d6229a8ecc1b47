package game

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventRecorder collects every event it sees
type eventRecorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	types := make([]EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.EventType()
	}
	return types
}

func (r *eventRecorder) actions() []PlayerActionEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var actions []PlayerActionEvent
	for _, e := range r.events {
		if a, ok := e.(PlayerActionEvent); ok {
			actions = append(actions, a)
		}
	}
	return actions
}

type panickySubscriber struct{}

func (panickySubscriber) OnEvent(GameEvent) { panic("subscriber bug") }

func TestEventBusSubscribe(t *testing.T) {
	bus := NewEventBus()
	first, second := &eventRecorder{}, &eventRecorder{}
	bus.Subscribe(first)
	bus.Subscribe(second)

	bus.Publish(NewBlindLevelEvent(2, 20, 40))
	assert.Equal(t, []EventType{EventTypeBlindLevel}, first.types())
	assert.Equal(t, []EventType{EventTypeBlindLevel}, second.types())

	bus.Unsubscribe(first)
	bus.Publish(NewBlindLevelEvent(3, 40, 80))
	assert.Len(t, first.types(), 1)
	assert.Len(t, second.types(), 2)
}

func TestEventBusSurvivesPanickingSubscriber(t *testing.T) {
	bus := NewEventBus()
	rec := &eventRecorder{}
	bus.Subscribe(panickySubscriber{})
	bus.Subscribe(rec)

	require.NotPanics(t, func() {
		bus.Publish(NewBlindLevelEvent(2, 20, 40))
	})
	assert.Len(t, rec.types(), 1)
}

func TestEventTimestamps(t *testing.T) {
	events := []GameEvent{
		NewHandStartEvent("h", []Seat{"a", "b"}, map[Seat]int{"a": 1, "b": 1}, 10, 20),
		NewBlindsPostedEvent("h", "a", 10, "b", 20, 30),
		NewPlayerActionEvent("h", "a", Preflop, Action{Kind: Call}, 10, false, false, 40),
		NewStreetChangeEvent("h", Flop, nil, 40),
		NewHandEndEvent(Result{HandID: "h"}),
		NewBlindLevelEvent(2, 20, 40),
	}
	for _, e := range events {
		assert.False(t, e.Timestamp().IsZero(), "%s has no timestamp", e.EventType())
	}
}
