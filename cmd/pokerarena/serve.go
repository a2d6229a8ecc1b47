package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerarena/internal/arena"
	"github.com/lox/pokerarena/internal/config"
	"github.com/lox/pokerarena/internal/game"
	"github.com/lox/pokerarena/internal/netbot"
)

type ServeCmd struct {
	MatchFlags `embed:""`

	Addr string `short:"a" default:":8080" help:"Address to listen on"`
	Bots int    `short:"b" default:"2" help:"Number of remote bots to wait for"`
}

func (c *ServeCmd) Run() error {
	if c.Bots < 2 || c.Bots > config.MaxBots {
		return fmt.Errorf("need between 2 and %d bots, got %d", config.MaxBots, c.Bots)
	}
	cfg, err := c.load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Match.LogLevel)

	ctx, cancel := signalContext()
	defer cancel()
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	server := netbot.NewServer(logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx, c.Addr)
	})
	g.Go(func() error {
		// stopping the server once the match is over ends ListenAndServe
		defer stop()

		remotes, err := server.WaitForBots(ctx, c.Bots)
		if err != nil {
			return err
		}

		bus := game.NewEventBus()
		players := make([]arena.Player, len(remotes))
		for i, r := range remotes {
			bus.Subscribe(r)
			players[i] = arena.Player{Name: game.Seat(r.Name()), Actor: r}
		}

		_, err = runMatch(ctx, logger, cfg, players, bus, c.MatchFlags)
		return err
	})
	return g.Wait()
}
