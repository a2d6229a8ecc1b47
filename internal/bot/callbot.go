package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerarena/internal/game"
)

// CallBot calls every bet and checks when there is nothing to call
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) RequestAction(ctx context.Context, req game.ActionRequest) (game.Action, error) {
	if req.CanCheck {
		return game.Action{Kind: game.Check}, nil
	}
	c.logger.Debug("call bot calling", "seat", req.Seat, "to_call", req.ToCall)
	return game.Action{Kind: game.Call}, nil
}

// RaiseBot makes the minimum raise every time it acts
type RaiseBot struct {
	logger *log.Logger
}

// NewRaiseBot creates a new RaiseBot instance
func NewRaiseBot(logger *log.Logger) *RaiseBot {
	return &RaiseBot{logger: logger}
}

func (r *RaiseBot) RequestAction(ctx context.Context, req game.ActionRequest) (game.Action, error) {
	r.logger.Debug("raise bot raising", "seat", req.Seat, "min_raise", req.MinRaise)
	return game.Action{Kind: game.Raise, Amount: req.MinRaise}, nil
}
