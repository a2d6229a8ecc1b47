package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/pokerarena/internal/game"
)

// CheckFoldBot always checks. Facing a bet a check is an implicit fold.
type CheckFoldBot struct {
	logger *log.Logger
}

// NewCheckFoldBot creates a new CheckFoldBot instance
func NewCheckFoldBot(logger *log.Logger) *CheckFoldBot {
	return &CheckFoldBot{logger: logger}
}

func (f *CheckFoldBot) RequestAction(ctx context.Context, req game.ActionRequest) (game.Action, error) {
	f.logger.Debug("check-fold bot checking", "seat", req.Seat, "to_call", req.ToCall)
	return game.Action{Kind: game.Check}, nil
}
