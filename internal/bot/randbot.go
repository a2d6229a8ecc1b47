package bot

import (
	"context"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerarena/internal/game"
)

// CallRaiseBot flips a coin on every decision: heads it calls (or checks),
// tails it makes the minimum raise. The same seed plays the same way.
type CallRaiseBot struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *log.Logger
}

// NewCallRaiseBot creates a new CallRaiseBot instance
func NewCallRaiseBot(rng *rand.Rand, logger *log.Logger) *CallRaiseBot {
	return &CallRaiseBot{rng: rng, logger: logger}
}

func (r *CallRaiseBot) RequestAction(ctx context.Context, req game.ActionRequest) (game.Action, error) {
	r.mu.Lock()
	raise := r.rng.IntN(2) == 1
	r.mu.Unlock()

	if raise {
		return game.Action{Kind: game.Raise, Amount: req.MinRaise}, nil
	}
	if req.CanCheck {
		return game.Action{Kind: game.Check}, nil
	}
	return game.Action{Kind: game.Call}, nil
}
