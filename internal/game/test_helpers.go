package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerarena/internal/deck"
)

// StackBankroll is a plain map of chip stacks, convenient for driving hands
// in tests and tools.
type StackBankroll map[Seat]int

func (b StackBankroll) Deduct(seat Seat, amount int) int {
	taken := min(max(amount, 0), b[seat])
	b[seat] -= taken
	return taken
}

func (b StackBankroll) Credit(seat Seat, amount int) { b[seat] += amount }

func (b StackBankroll) Stack(seat Seat) int { return b[seat] }

// Total returns the chips held across all stacks
func (b StackBankroll) Total() int {
	total := 0
	for _, chips := range b {
		total += chips
	}
	return total
}

// TestHandOption configures test hand creation
type TestHandOption func(*testHandBuilder)

type testHandBuilder struct {
	seats         []Seat
	stacks        map[Seat]int
	small, big    int
	handsPerLevel int
	cards         string
	opts          []HandOption
}

func WithSeats(seats ...Seat) TestHandOption {
	return func(b *testHandBuilder) { b.seats = seats }
}

func WithStacks(stacks map[Seat]int) TestHandOption {
	return func(b *testHandBuilder) { b.stacks = stacks }
}

func WithBlinds(small, big int) TestHandOption {
	return func(b *testHandBuilder) {
		b.small = small
		b.big = big
	}
}

func WithHandsPerLevel(hands int) TestHandOption {
	return func(b *testHandBuilder) { b.handsPerLevel = hands }
}

// WithStackedCards deals the given cards first: hole cards seat by seat in
// rotation order, then the board.
func WithStackedCards(cards string) TestHandOption {
	return func(b *testHandBuilder) { b.cards = cards }
}

func WithHandOptions(opts ...HandOption) TestHandOption {
	return func(b *testHandBuilder) { b.opts = append(b.opts, opts...) }
}

// NewTestHand creates a hand for testing with sensible defaults: two seats
// "a" and "b", 1000 chips each and blinds of 10/20.
func NewTestHand(opts ...TestHandOption) (*Hand, StackBankroll) {
	builder := &testHandBuilder{
		seats: []Seat{"a", "b"},
		small: 10,
		big:   20,
	}
	for _, opt := range opts {
		opt(builder)
	}

	bankroll := StackBankroll{}
	for _, s := range builder.seats {
		bankroll[s] = 1000
		if chips, ok := builder.stacks[s]; ok {
			bankroll[s] = chips
		}
	}

	handOpts := []HandOption{WithRNG(deck.NewRand(42)), WithLogger(log.New(io.Discard))}
	if builder.cards != "" {
		d, err := deck.NewStackedDeck(deck.MustParseCards(builder.cards))
		if err != nil {
			panic(err)
		}
		handOpts = append(handOpts, WithDeck(d))
	}
	handOpts = append(handOpts, builder.opts...)

	rotation := NewBlindRotation(builder.seats, builder.small, builder.big, builder.handsPerLevel)
	return NewHand(HandConfig{Rotation: rotation, Bankroll: bankroll}, handOpts...), bankroll
}
