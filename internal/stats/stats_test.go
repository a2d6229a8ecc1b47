package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/pokerarena/internal/game"
)

func TestCollectorEmpty(t *testing.T) {
	c := NewCollector()

	assert.Equal(t, 0, c.Hands())
	assert.Zero(t, c.AveragePot())
	assert.Zero(t, c.PotStdDev())
	assert.Zero(t, c.MedianPot())
	assert.Contains(t, c.String(), "hands=0")
}

func TestCollectorRecord(t *testing.T) {
	c := NewCollector()
	c.Record(game.Result{Pot: 50, Winners: []game.Seat{"a"}, EndPhase: game.PhasePreflopBetting})
	c.Record(game.Result{Pot: 100, Winners: []game.Seat{"b"}, EndPhase: game.PhaseTurnBetting})
	c.Record(game.Result{Pot: 75, Winners: []game.Seat{"a", "b"}, EndPhase: game.PhaseShowdown})

	assert.Equal(t, 3, c.Hands())
	assert.InDelta(t, 75.0, c.AveragePot(), 1e-9)
	assert.InDelta(t, 25.0, c.PotStdDev(), 1e-9)
	assert.InDelta(t, 75.0, c.MedianPot(), 1e-9)
	assert.Equal(t, 100, c.MaxPot())
	assert.Equal(t, 1, c.Ended(game.PhaseTurnBetting))
	assert.Equal(t, 0, c.Ended(game.PhaseRiverBetting))
	assert.Equal(t, 2, c.Wins("a"))
	assert.Equal(t, 2, c.Wins("b"))

	showdown, uncontested := c.ShowdownSplit()
	assert.Equal(t, 2, showdown)
	assert.Equal(t, 2, uncontested)

	summary := c.String()
	assert.Contains(t, summary, "avg_pot=75.00")
	assert.Contains(t, summary, "Preflop=1 (33.33%)")
	assert.Contains(t, summary, "Turn=1 (33.33%)")
	assert.Contains(t, summary, "Showdown=1 (33.33%)")
	assert.NotContains(t, summary, "River=")
}

func TestCollectorMedianEvenCount(t *testing.T) {
	c := NewCollector()
	for _, pot := range []int{40, 10, 30, 20} {
		c.Record(game.Result{Pot: pot, EndPhase: game.PhaseShowdown})
	}
	assert.InDelta(t, 25.0, c.MedianPot(), 1e-9)
	assert.False(t, math.IsNaN(c.PotStdDev()))
}

func TestCollectorSubscribes(t *testing.T) {
	c := NewCollector()
	bus := game.NewEventBus()
	bus.Subscribe(c)

	bus.Publish(game.NewBlindLevelEvent(2, 20, 40))
	bus.Publish(game.NewHandEndEvent(game.Result{Pot: 30, Winners: []game.Seat{"b"}, EndPhase: game.PhasePreflopBetting}))

	assert.Equal(t, 1, c.Hands())
	assert.Equal(t, 1, c.Wins("b"))
}
