package main

import (
	"fmt"
	"strings"

	"github.com/lox/pokerarena/internal/bot"
	"github.com/lox/pokerarena/internal/netbot"
)

type BotCmd struct {
	Strategy string `arg:"" help:"Built-in strategy (check-fold, call, raise, call-raise, chart, maniac, tag, noop)"`
	Server   string `short:"s" default:"ws://localhost:8080" help:"Arena server URL"`
	Name     string `short:"n" help:"Seat name (defaults to the strategy)"`
	Seed     int64  `default:"1" help:"Seed for strategies that make random choices"`
	LogLevel string `short:"l" default:"info" help:"Log level (debug|info|warn|error)"`
}

func (c *BotCmd) Run() error {
	if !bot.IsStrategy(c.Strategy) {
		return fmt.Errorf("unknown strategy: %s (available: %s)", c.Strategy, strings.Join(bot.Strategies(), ", "))
	}
	name := c.Name
	if name == "" {
		name = c.Strategy
	}

	logger := newLogger(c.LogLevel)
	actor, err := bot.New(c.Strategy, c.Seed, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("Connecting", "server", c.Server, "name", name)
	return netbot.Play(ctx, c.Server, name, actor, logger)
}
