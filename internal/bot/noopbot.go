package bot

import (
	"context"

	"github.com/lox/pokerarena/internal/game"
)

// NoopBot never answers. It blocks until the arena gives up on it, which
// makes it useful for exercising timeouts.
type NoopBot struct{}

func (NoopBot) RequestAction(ctx context.Context, req game.ActionRequest) (game.Action, error) {
	<-ctx.Done()
	return game.Action{}, ctx.Err()
}
