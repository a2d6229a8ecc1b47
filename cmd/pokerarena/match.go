package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"

	"github.com/lox/pokerarena/internal/arena"
	"github.com/lox/pokerarena/internal/bot"
	"github.com/lox/pokerarena/internal/config"
	"github.com/lox/pokerarena/internal/fileutil"
	"github.com/lox/pokerarena/internal/game"
	"github.com/lox/pokerarena/internal/handlog"
	"github.com/lox/pokerarena/internal/matchid"
	"github.com/lox/pokerarena/internal/phh"
)

// MatchFlags override values from the configuration file
type MatchFlags struct {
	Config     string `short:"c" default:"arena.hcl" help:"Path to HCL configuration file"`
	Hands      int    `help:"Maximum hands to play (overrides config)"`
	Seed       *int64 `help:"Deterministic seed (overrides config)"`
	LogLevel   string `short:"l" help:"Log level: debug, info, warn, error (overrides config)"`
	HandLog    string `help:"Write a JSON-lines hand log to this file (overrides config)"`
	HistoryDir string `help:"Write PHH hand histories to this directory (overrides config)"`
	Report     string `help:"Write the match result as JSON to this file"`
	ShowCards  bool   `help:"Show hole cards in the event log"`
}

// load reads the config file and applies the flags
func (f *MatchFlags) load() (*config.Config, error) {
	cfg, err := config.Load(f.Config)
	if err != nil {
		return nil, err
	}
	if f.Hands > 0 {
		cfg.Match.MaxHands = f.Hands
	}
	if f.Seed != nil {
		cfg.Match.Seed = *f.Seed
	}
	if f.LogLevel != "" {
		cfg.Match.LogLevel = f.LogLevel
	}
	if f.HandLog != "" {
		cfg.Match.HandLog = f.HandLog
	}
	if f.HistoryDir != "" {
		cfg.Match.HistoryDir = f.HistoryDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

type MatchCmd struct {
	MatchFlags `embed:""`
}

func (c *MatchCmd) Run() error {
	cfg, err := c.load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Match.LogLevel)

	if len(cfg.Bots) == 0 {
		cfg.Bots = []config.BotConfig{
			{Name: bot.StrategyChart, Strategy: bot.StrategyChart, Seed: 1},
			{Name: bot.StrategyCallRaise, Strategy: bot.StrategyCallRaise, Seed: 2},
		}
		logger.Info("No bots configured, seating defaults", "bots", cfg.Seats())
	}

	var players []arena.Player
	for _, b := range cfg.Bots {
		actor, err := bot.New(b.Strategy, cfg.Match.Seed+b.Seed, logger.WithPrefix(b.Name))
		if err != nil {
			return err
		}
		players = append(players, arena.Player{Name: game.Seat(b.Name), Actor: actor})
	}

	ctx, cancel := signalContext()
	defer cancel()

	_, err = runMatch(ctx, logger, cfg, players, game.NewEventBus(), c.MatchFlags)
	return err
}

// runMatch plays one match with players, wiring the configured outputs to
// bus, and prints the summary.
func runMatch(ctx context.Context, logger *log.Logger, cfg *config.Config, players []arena.Player, bus game.EventBus, flags MatchFlags) (*arena.Result, error) {
	id := matchid.New()

	bus.Subscribe(arena.NewLogSubscriber(logger, flags.ShowCards))
	closeOutputs, err := openOutputs(bus, id, cfg.Match)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeOutputs(); err != nil {
			logger.Error("Failed to close match outputs", "error", err)
		}
	}()

	m, err := arena.NewMatch(cfg.Arena(), players,
		arena.WithMatchID(id),
		arena.WithLogger(logger),
		arena.WithEventBus(bus),
	)
	if err != nil {
		return nil, err
	}

	logger.Info("Starting match",
		"id", id,
		"players", len(players),
		"blinds", fmt.Sprintf("%d/%d", cfg.Match.SmallBlind, cfg.Match.BigBlind),
		"max_hands", cfg.Match.MaxHands)

	result, err := m.Run(ctx)
	if err != nil {
		return nil, err
	}

	fmt.Println(result.Stats.String())
	for _, seat := range result.Winners {
		logger.Info("Winner", "seat", seat, "chips", result.Stacks[seat])
	}

	if flags.Report != "" {
		if err := fileutil.WriteJSONAtomic(flags.Report, newMatchReport(result)); err != nil {
			return nil, fmt.Errorf("write report: %w", err)
		}
		logger.Info("Wrote report", "path", flags.Report)
	}
	return result, nil
}

// openOutputs subscribes the hand log and PHH recorder when configured
func openOutputs(bus game.EventBus, id string, settings *config.MatchSettings) (func() error, error) {
	var closers []func() error
	closeAll := func() error {
		var first error
		for _, c := range closers {
			if err := c(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}

	if settings.HandLog != "" {
		f, err := os.Create(settings.HandLog)
		if err != nil {
			return nil, fmt.Errorf("open hand log: %w", err)
		}
		bus.Subscribe(handlog.NewRecorder(f))
		closers = append(closers, f.Close)
	}

	if settings.HistoryDir != "" {
		level, err := zerolog.ParseLevel(settings.LogLevel)
		if err != nil {
			level = zerolog.InfoLevel
		}
		zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().
			Timestamp().
			Str("component", "phh").
			Logger()

		rec, err := phh.NewRecorder(phh.RecorderConfig{
			Table:            id,
			OutputDir:        settings.HistoryDir,
			Filename:         id + ".phhs",
			FlushHands:       10,
			IncludeHoleCards: true,
		}, zl)
		if err != nil {
			_ = closeAll()
			return nil, err
		}
		bus.Subscribe(rec)
		// flush before the hand log closes
		closers = append([]func() error{rec.Close}, closers...)
	}

	return closeAll, nil
}

// matchReport is the JSON written by --report
type matchReport struct {
	ID         string            `json:"id"`
	Winners    []game.Seat       `json:"winners"`
	Stacks     map[game.Seat]int `json:"stacks"`
	Hands      int               `json:"hands"`
	Eliminated []game.Seat       `json:"eliminated,omitempty"`
	Timeouts   map[game.Seat]int `json:"timeouts,omitempty"`
	AveragePot float64           `json:"average_pot"`
	MaxPot     int               `json:"max_pot"`
}

func newMatchReport(r *arena.Result) matchReport {
	return matchReport{
		ID:         r.ID,
		Winners:    r.Winners,
		Stacks:     r.Stacks,
		Hands:      r.Hands,
		Eliminated: r.Eliminated,
		Timeouts:   r.Timeouts,
		AveragePot: r.Stats.AveragePot(),
		MaxPot:     r.Stats.MaxPot(),
	}
}
