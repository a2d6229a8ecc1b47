package bot

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerarena/internal/deck"
	"github.com/lox/pokerarena/internal/evaluator"
	"github.com/lox/pokerarena/internal/game"
)

// ChartBot pushes premium hands preflop when short stacked, raises made
// hands of two pair or better after the flop and otherwise checks or calls.
type ChartBot struct {
	logger *log.Logger
}

// NewChartBot creates a new ChartBot instance
func NewChartBot(logger *log.Logger) *ChartBot {
	return &ChartBot{logger: logger}
}

func (c *ChartBot) RequestAction(ctx context.Context, req game.ActionRequest) (game.Action, error) {
	if req.Street == game.Preflop {
		if premium(req.HoleCards) && req.Stack <= 20*req.MinRaise {
			c.logger.Debug("chart bot push", "seat", req.Seat, "hole", deck.FormatCards(req.HoleCards))
			return game.Action{Kind: game.Raise, Amount: req.Stack}, nil
		}
		return passive(req), nil
	}

	_, score := evaluator.FindBest(slices.Concat(req.HoleCards, req.Board))
	if score.Category >= evaluator.TwoPair {
		c.logger.Debug("chart bot value raise", "seat", req.Seat, "hand", score.Category)
		return game.Action{Kind: game.Raise, Amount: max(req.MinRaise, req.Pot/2)}, nil
	}
	return passive(req), nil
}

// premium is tens or better, or two broadway cards of king and above
func premium(hole []deck.Card) bool {
	if len(hole) != 2 {
		return false
	}
	a, b := hole[0].Rank, hole[1].Rank
	return (a == b && a >= deck.Ten) || (a >= deck.King && b >= deck.King)
}

func passive(req game.ActionRequest) game.Action {
	if req.CanCheck {
		return game.Action{Kind: game.Check}
	}
	return game.Action{Kind: game.Call}
}
