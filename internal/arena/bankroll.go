package arena

import (
	"maps"
	"sync"

	"github.com/lox/pokerarena/internal/game"
)

// Bankroll holds each seat's chips outside the pot for the length of a
// match. It implements game.Bankroll.
type Bankroll struct {
	mu     sync.RWMutex
	stacks map[game.Seat]int
}

// NewBankroll gives every seat the same starting stack
func NewBankroll(seats []game.Seat, chips int) *Bankroll {
	stacks := make(map[game.Seat]int, len(seats))
	for _, s := range seats {
		stacks[s] = chips
	}
	return &Bankroll{stacks: stacks}
}

// Deduct removes up to amount from the seat's stack and returns what was
// removed. A seat never goes below zero.
func (b *Bankroll) Deduct(seat game.Seat, amount int) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	taken := min(max(amount, 0), b.stacks[seat])
	b.stacks[seat] -= taken
	return taken
}

func (b *Bankroll) Credit(seat game.Seat, amount int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stacks[seat] += amount
}

func (b *Bankroll) Stack(seat game.Seat) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stacks[seat]
}

// Total returns the chips held across every stack
func (b *Bankroll) Total() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	total := 0
	for _, chips := range b.stacks {
		total += chips
	}
	return total
}

// Stacks returns a snapshot of all stacks
func (b *Bankroll) Stacks() map[game.Seat]int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return maps.Clone(b.stacks)
}
