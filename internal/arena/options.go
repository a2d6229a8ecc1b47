package arena

import (
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerarena/internal/game"
)

// MatchOption configures a Match during creation
type MatchOption func(*Match)

// WithClock sets the clock used to time decisions
func WithClock(clock quartz.Clock) MatchOption {
	return func(m *Match) {
		m.clock = clock
	}
}

// WithLogger sets the operator logger
func WithLogger(logger *log.Logger) MatchOption {
	return func(m *Match) {
		m.logger = logger
	}
}

// WithEventBus publishes every hand's events on bus. Subscribe hand logs and
// other observers to it before running the match.
func WithEventBus(bus game.EventBus) MatchOption {
	return func(m *Match) {
		m.bus = bus
	}
}

// WithMatchID overrides the generated match ID
func WithMatchID(id string) MatchOption {
	return func(m *Match) {
		m.id = id
	}
}
