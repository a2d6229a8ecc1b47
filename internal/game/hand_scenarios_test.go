package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandFoldedChipsStayInSidePots(t *testing.T) {
	h, bank := NewTestHand(
		WithSeats("a", "b", "c"),
		WithStacks(map[Seat]int{"c": 100}),
		WithStackedCards("2c3d KsKh AsAh 4s8dTh5cQd"),
	)

	p, err := h.Start()
	require.NoError(t, err)
	p = act(t, h, p, "c", Action{Kind: Raise, Amount: 1000})
	p = act(t, h, p, "a", Action{Kind: Call})
	p = act(t, h, p, "b", Action{Kind: Raise, Amount: 200})
	p = act(t, h, p, "a", Action{Kind: Fold})
	assert.Nil(t, p, "only one seat can still bet")

	result, ok := h.Result()
	require.True(t, ok)
	assert.Equal(t, []Seat{"c"}, result.Winners)
	assert.Equal(t, map[Seat]int{"c": 300, "b": 200}, result.Won, "a's call is dead money in the main pot")
	assert.Equal(t, 900, bank["a"])
	assert.Equal(t, 900, bank["b"])
	assert.Equal(t, 300, bank["c"])
	assert.Equal(t, 2100, bank.Total())
}

func TestHandAllInSeatIsSkipped(t *testing.T) {
	h, bank := NewTestHand(
		WithSeats("a", "b", "c"),
		WithStacks(map[Seat]int{"c": 100}),
		WithStackedCards("KsKh QsQh AsAh 2c7d9hJc3d"),
	)

	p, err := h.Start()
	require.NoError(t, err)
	p = act(t, h, p, "c", Action{Kind: Raise, Amount: 1000})
	p = act(t, h, p, "a", Action{Kind: Call})
	p = act(t, h, p, "b", Action{Kind: Call})

	require.NotNil(t, p)
	assert.Equal(t, Flop, p.Street)
	p = act(t, h, p, "a", Action{Kind: Raise, Amount: 100})
	p = act(t, h, p, "b", Action{Kind: Call})

	for p != nil {
		require.NotEqual(t, Seat("c"), p.Seat, "all-in seat was asked to act")
		p = act(t, h, p, p.Seat, Action{Kind: Check})
	}

	result, ok := h.Result()
	require.True(t, ok)
	assert.Equal(t, []Seat{"c"}, result.Winners)
	assert.Equal(t, map[Seat]int{"c": 300, "a": 200}, result.Won)
	assert.Equal(t, 1000, bank["a"])
	assert.Equal(t, 800, bank["b"])
	assert.Equal(t, 300, bank["c"])
}

func TestHandCallForExactStackIsAllIn(t *testing.T) {
	rec := &eventRecorder{}
	bus := NewEventBus()
	bus.Subscribe(rec)

	h, bank := NewTestHand(
		WithStacks(map[Seat]int{"a": 20}),
		WithStackedCards("AsAh KsKh 2c7d9hJc3s"),
		WithHandOptions(WithEventBus(bus)),
	)

	p, err := h.Start()
	require.NoError(t, err)
	assert.Equal(t, 10, p.ToCall)
	assert.Equal(t, 10, p.Stack)
	p = act(t, h, p, "a", Action{Kind: Call})
	if p != nil {
		p = act(t, h, p, "b", Action{Kind: Check})
	}
	assert.Nil(t, p)

	call := rec.actions()[0]
	assert.Equal(t, Call, call.Action.Kind)
	assert.True(t, call.AllIn)

	result, ok := h.Result()
	require.True(t, ok)
	assert.Len(t, result.Board, 5)
	assert.Equal(t, map[Seat]int{"a": 40}, result.Won)
	assert.Equal(t, 40, bank["a"])
	assert.Equal(t, 980, bank["b"])
}

func TestHandOneChipOverCall(t *testing.T) {
	h, bank := NewTestHand(
		WithStacks(map[Seat]int{"a": 21}),
		WithStackedCards("AsAh KsKh 2c7d9hJc3s"),
	)

	p, err := h.Start()
	require.NoError(t, err)
	p = act(t, h, p, "a", Action{Kind: Call})
	p = act(t, h, p, "b", Action{Kind: Check})

	require.NotNil(t, p)
	assert.Equal(t, Flop, p.Street)
	assert.Equal(t, 1, p.Stack)

	// a raise the seat cannot afford is an all-in for what is left
	p = act(t, h, p, "a", Action{Kind: Raise, Amount: 50})
	require.NotNil(t, p)
	assert.Equal(t, 1, p.ToCall)
	assert.Nil(t, act(t, h, p, "b", Action{Kind: Call}))

	result, _ := h.Result()
	assert.Equal(t, map[Seat]int{"a": 42}, result.Won)
	assert.Equal(t, 42, bank["a"])
	assert.Equal(t, 979, bank["b"])
}
