package game

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerarena/internal/deck"
)

// HandOption configures a Hand during creation.
type HandOption func(*handConfig)

// handConfig holds the optional collaborators of a hand.
type handConfig struct {
	rng    *rand.Rand
	deck   *deck.Deck // overrides rng for dealing when set
	bus    EventBus
	handID string
	logger *log.Logger
}

// WithRNG shuffles the deck with rng, making the deal reproducible
func WithRNG(rng *rand.Rand) HandOption {
	return func(c *handConfig) {
		c.rng = rng
	}
}

// WithDeck sets a specific pre-arranged deck.
// This overrides the RNG for deck creation.
func WithDeck(d *deck.Deck) HandOption {
	return func(c *handConfig) {
		c.deck = d
	}
}

// WithEventBus publishes the hand's events on bus
func WithEventBus(bus EventBus) HandOption {
	return func(c *handConfig) {
		c.bus = bus
	}
}

// WithHandID sets the hand identifier. A random UUID is used otherwise.
func WithHandID(id string) HandOption {
	return func(c *handConfig) {
		c.handID = id
	}
}

// WithLogger sets the logger used for debug tracing of the hand
func WithLogger(logger *log.Logger) HandOption {
	return func(c *handConfig) {
		c.logger = logger
	}
}
