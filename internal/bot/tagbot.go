package bot

import (
	"context"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerarena/internal/deck"
	"github.com/lox/pokerarena/internal/evaluator"
	"github.com/lox/pokerarena/internal/game"
)

const (
	tagPremium     = 0.90 // starting hand percentile raised preflop
	tagPlayable    = 0.70 // percentile called preflop
	tagValueEquity = 0.75
	tagSamples     = 300
)

// TAGBot is a Tight Aggressive bot that plays premium hands aggressively.
// Preflop it goes by the starting hand chart; after the flop it estimates
// equity against one random hand and compares it with the pot odds.
type TAGBot struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *log.Logger
}

// NewTAGBot creates a new TAGBot instance
func NewTAGBot(rng *rand.Rand, logger *log.Logger) *TAGBot {
	return &TAGBot{rng: rng, logger: logger}
}

func (t *TAGBot) RequestAction(ctx context.Context, req game.ActionRequest) (game.Action, error) {
	if req.Street == game.Preflop {
		return t.preflop(req), nil
	}

	t.mu.Lock()
	seed := t.rng.Int64()
	t.mu.Unlock()

	equity, err := evaluator.Equity(ctx, req.HoleCards, req.Board, 1, tagSamples, seed)
	if err != nil {
		t.logger.Debug("TAG equity failed", "seat", req.Seat, "error", err)
		return checkOrFold(req), nil
	}

	switch {
	case equity >= tagValueEquity:
		t.logger.Debug("TAG value raise", "seat", req.Seat, "equity", equity)
		return game.Action{Kind: game.Raise, Amount: max(req.MinRaise, req.Pot/2)}, nil
	case req.CanCheck:
		return game.Action{Kind: game.Check}, nil
	case equity >= potOdds(req):
		return game.Action{Kind: game.Call}, nil
	default:
		return game.Action{Kind: game.Fold}, nil
	}
}

func (t *TAGBot) preflop(req game.ActionRequest) game.Action {
	strength := deck.Percentile(req.HoleCards)
	switch {
	case strength >= tagPremium:
		room := max(req.Stack-req.ToCall, req.MinRaise)
		t.logger.Debug("TAG raise premium", "seat", req.Seat, "hand", deck.StartingHand(req.HoleCards))
		return game.Action{Kind: game.Raise, Amount: req.MinRaise + (room-req.MinRaise)/4}
	case strength >= tagPlayable || req.CanCheck:
		return passive(req)
	}

	t.mu.Lock()
	loose := t.rng.Float64() < 0.3
	t.mu.Unlock()
	if loose {
		return game.Action{Kind: game.Call}
	}
	return game.Action{Kind: game.Fold}
}

// potOdds is the share of the final pot a call has to pay for
func potOdds(req game.ActionRequest) float64 {
	if req.ToCall <= 0 {
		return 0
	}
	return float64(req.ToCall) / float64(req.Pot+req.ToCall)
}

func checkOrFold(req game.ActionRequest) game.Action {
	if req.CanCheck {
		return game.Action{Kind: game.Check}
	}
	return game.Action{Kind: game.Fold}
}
