package bot

import (
	"context"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerarena/internal/game"
)

// ManiacBot is an extremely aggressive bot that shoves frequently
type ManiacBot struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *log.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng *rand.Rand, logger *log.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: logger}
}

func (m *ManiacBot) RequestAction(ctx context.Context, req game.ActionRequest) (game.Action, error) {
	m.mu.Lock()
	roll, shoveRoll := m.rng.Float64(), m.rng.Float64()
	m.mu.Unlock()

	shove := game.Action{Kind: game.Raise, Amount: req.Stack}
	room := max(req.Stack-req.ToCall, req.MinRaise)

	if req.CanCheck {
		// maniacs prefer to bet
		if roll >= 0.85 {
			return game.Action{Kind: game.Check}, nil
		}
		if req.Stack <= 20*req.MinRaise || shoveRoll < 0.3 {
			m.logger.Debug("maniac shove", "seat", req.Seat, "stack", req.Stack)
			return shove, nil
		}
		return game.Action{Kind: game.Raise, Amount: req.MinRaise + (room-req.MinRaise)*3/4}, nil
	}

	switch {
	case roll < 0.4:
		m.logger.Debug("maniac shove over bet", "seat", req.Seat, "to_call", req.ToCall)
		return shove, nil
	case roll < 0.8:
		return game.Action{Kind: game.Call}, nil
	default:
		return game.Action{Kind: game.Fold}, nil
	}
}
