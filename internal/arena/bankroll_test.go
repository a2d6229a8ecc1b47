package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/pokerarena/internal/game"
)

func TestBankroll(t *testing.T) {
	b := NewBankroll([]game.Seat{"a", "b"}, 100)
	assert.Equal(t, 200, b.Total())

	assert.Equal(t, 30, b.Deduct("a", 30))
	assert.Equal(t, 70, b.Stack("a"))

	assert.Equal(t, 70, b.Deduct("a", 500), "deduct is capped at the stack")
	assert.Equal(t, 0, b.Stack("a"))
	assert.Equal(t, 0, b.Deduct("a", -5))

	b.Credit("b", 100)
	assert.Equal(t, map[game.Seat]int{"a": 0, "b": 200}, b.Stacks())
	assert.Equal(t, 200, b.Total())
}
