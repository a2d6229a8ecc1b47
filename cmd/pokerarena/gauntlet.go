package main

import (
	"errors"
	"fmt"

	"github.com/lox/pokerarena/internal/config"
	"github.com/lox/pokerarena/internal/gauntlet"
)

var errGauntletFailed = errors.New("challenger did not pass every enemy")

type GauntletCmd struct {
	Config     string   `short:"c" default:"arena.hcl" help:"Path to HCL configuration file"`
	Challenger string   `arg:"" optional:"" help:"Challenger strategy (overrides config)"`
	Enemies    []string `short:"e" help:"Enemy strategies (overrides config)"`
	Attempts   int      `short:"n" help:"Matches per enemy (overrides config)"`
	Percentage float64  `name:"pass-percentage" help:"Win rate needed to pass, 0-100 (overrides config)"`
	Parallel   int      `short:"p" help:"Matches played at once (overrides config)"`
	Hands      int      `help:"Maximum hands per match (overrides config)"`
	Seed       *int64   `help:"Base seed; attempt N uses seed+N (overrides config)"`
	LogLevel   string   `short:"l" help:"Log level (overrides config)"`
}

func (c *GauntletCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Gauntlet.Challenger == "" {
		return errors.New("gauntlet: no challenger given")
	}

	logger := newLogger(cfg.Match.LogLevel)
	g := gauntlet.New(gauntlet.Config{
		Challenger: cfg.Gauntlet.Challenger,
		Enemies:    cfg.Gauntlet.Enemies,
		Attempts:   cfg.Gauntlet.Attempts,
		Percentage: cfg.Gauntlet.Percentage,
		Parallel:   cfg.Gauntlet.Parallel,
		Match:      cfg.Arena(),
	}, gauntlet.WithLogger(logger))

	ctx, cancel := signalContext()
	defer cancel()

	report, err := g.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(report.String())

	if !report.AllPassed() {
		return errGauntletFailed
	}
	return nil
}

func (c *GauntletCmd) apply(cfg *config.Config) {
	g := cfg.Gauntlet
	if c.Challenger != "" {
		g.Challenger = c.Challenger
	}
	if len(c.Enemies) > 0 {
		g.Enemies = c.Enemies
	}
	if c.Attempts > 0 {
		g.Attempts = c.Attempts
	}
	if c.Percentage > 0 {
		g.Percentage = c.Percentage
	}
	if c.Parallel > 0 {
		g.Parallel = c.Parallel
	}
	if c.Hands > 0 {
		cfg.Match.MaxHands = c.Hands
	}
	if c.Seed != nil {
		cfg.Match.Seed = *c.Seed
	}
	if c.LogLevel != "" {
		cfg.Match.LogLevel = c.LogLevel
	}
}
