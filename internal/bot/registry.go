package bot

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerarena/internal/deck"
	"github.com/lox/pokerarena/internal/game"
)

// Strategy names accepted by New
const (
	StrategyCheckFold = "check-fold"
	StrategyCall      = "call"
	StrategyRaise     = "raise"
	StrategyCallRaise = "call-raise"
	StrategyChart     = "chart"
	StrategyManiac    = "maniac"
	StrategyTAG       = "tag"
	StrategyNoop      = "noop"
)

var strategies = []string{
	StrategyCheckFold,
	StrategyCall,
	StrategyRaise,
	StrategyCallRaise,
	StrategyChart,
	StrategyManiac,
	StrategyTAG,
	StrategyNoop,
}

// Strategies lists the built-in strategy names
func Strategies() []string {
	return slices.Clone(strategies)
}

// IsStrategy reports whether name is a built-in strategy
func IsStrategy(name string) bool {
	return slices.Contains(strategies, name)
}

// New builds a built-in bot. The seed only matters for strategies that
// make random choices.
func New(strategy string, seed int64, logger *log.Logger) (game.Actor, error) {
	logger = logger.WithPrefix("bot").With("strategy", strategy)

	switch strategy {
	case StrategyCheckFold:
		return NewCheckFoldBot(logger), nil
	case StrategyCall:
		return NewCallBot(logger), nil
	case StrategyRaise:
		return NewRaiseBot(logger), nil
	case StrategyCallRaise:
		return NewCallRaiseBot(deck.NewRand(seed), logger), nil
	case StrategyChart:
		return NewChartBot(logger), nil
	case StrategyManiac:
		return NewManiacBot(deck.NewRand(seed), logger), nil
	case StrategyTAG:
		return NewTAGBot(deck.NewRand(seed), logger), nil
	case StrategyNoop:
		return NoopBot{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want one of %s)", strategy, strings.Join(strategies, ", "))
	}
}
