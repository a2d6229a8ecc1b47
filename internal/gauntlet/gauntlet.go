// Package gauntlet runs a challenger bot against each enemy bot in a series
// of heads-up matches and grades the challenger's win rate.
package gauntlet

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerarena/internal/arena"
	"github.com/lox/pokerarena/internal/bot"
	"github.com/lox/pokerarena/internal/game"
)

// Config describes a gauntlet run
type Config struct {
	Challenger string
	Enemies    []string
	Attempts   int
	Percentage float64 // win rate needed to pass, 0-100
	Parallel   int     // matches played at once
	Match      arena.Config
}

// ActorFactory builds the actor for a strategy
type ActorFactory func(strategy string, seed int64) (game.Actor, error)

// Option configures a Gauntlet
type Option func(*Gauntlet)

// WithLogger sets the logger passed to every match
func WithLogger(logger *log.Logger) Option {
	return func(g *Gauntlet) { g.logger = logger }
}

// WithClock sets the clock matches time decisions with
func WithClock(clock quartz.Clock) Option {
	return func(g *Gauntlet) { g.clock = clock }
}

// WithActorFactory replaces the built-in bots, e.g. to run remote bots
func WithActorFactory(f ActorFactory) Option {
	return func(g *Gauntlet) { g.factory = f }
}

// Gauntlet plays the configured matches
type Gauntlet struct {
	cfg     Config
	logger  *log.Logger
	clock   quartz.Clock
	factory ActorFactory
}

// New returns a gauntlet for cfg
func New(cfg Config, opts ...Option) *Gauntlet {
	g := &Gauntlet{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.clock == nil {
		g.clock = quartz.NewReal()
	}
	if g.factory == nil {
		botLogger := g.logger
		g.factory = func(strategy string, seed int64) (game.Actor, error) {
			return bot.New(strategy, seed, botLogger)
		}
	}
	g.logger = g.logger.WithPrefix("gauntlet")
	return g
}

// Enemies returns the enemies that will be played; the challenger never
// plays itself.
func (g *Gauntlet) Enemies() []string {
	var out []string
	for _, e := range g.cfg.Enemies {
		if e != g.cfg.Challenger && !slices.Contains(out, e) {
			out = append(out, e)
		}
	}
	return out
}

// Run plays every attempt against every enemy and returns the report
func (g *Gauntlet) Run(ctx context.Context) (*Report, error) {
	enemies := g.Enemies()
	attempts := max(g.cfg.Attempts, 1)
	wins := make([][]bool, len(enemies))
	for i := range wins {
		wins[i] = make([]bool, attempts)
	}

	g.logger.Info("Starting gauntlet", "challenger", g.cfg.Challenger, "enemies", enemies, "attempts", attempts)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.cfg.Parallel, 1))
	for i, enemy := range enemies {
		for n := range attempts {
			eg.Go(func() error {
				won, err := g.play(ctx, enemy, n)
				if err != nil {
					return fmt.Errorf("%s vs %s attempt %d: %w", g.cfg.Challenger, enemy, n+1, err)
				}
				wins[i][n] = won
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := NewReport(g.cfg.Challenger, g.cfg.Percentage)
	for i, enemy := range enemies {
		for _, won := range wins[i] {
			report.Record(enemy, won)
		}
	}
	return report, nil
}

// play runs one heads-up match. Seats alternate between attempts so
// neither side always starts on the small blind.
func (g *Gauntlet) play(ctx context.Context, enemy string, attempt int) (bool, error) {
	seed := g.cfg.Match.Seed + int64(attempt)

	challenger, err := g.factory(g.cfg.Challenger, seed)
	if err != nil {
		return false, err
	}
	opponent, err := g.factory(enemy, seed+1)
	if err != nil {
		return false, err
	}

	players := []arena.Player{
		{Name: game.Seat(g.cfg.Challenger), Actor: challenger},
		{Name: game.Seat(enemy), Actor: opponent},
	}
	if attempt%2 == 1 {
		slices.Reverse(players)
	}

	cfg := g.cfg.Match
	cfg.Seed = seed
	m, err := arena.NewMatch(cfg, players, arena.WithLogger(g.logger), arena.WithClock(g.clock))
	if err != nil {
		return false, err
	}
	result, err := m.Run(ctx)
	if err != nil {
		return false, err
	}

	won := slices.Contains(result.Winners, game.Seat(g.cfg.Challenger))
	g.logger.Debug("Match finished", "enemy", enemy, "attempt", attempt+1, "won", won, "hands", result.Hands)
	return won, nil
}
