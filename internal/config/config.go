// Package config loads arena configuration from HCL files.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokerarena/internal/arena"
	"github.com/lox/pokerarena/internal/bot"
	"github.com/lox/pokerarena/internal/game"
)

// MaxBots is the largest table a match can seat
const MaxBots = 10

// Config represents the complete arena configuration
type Config struct {
	Match    *MatchSettings    `hcl:"match,block"`
	Timing   *TimingSettings   `hcl:"timing,block"`
	Bots     []BotConfig       `hcl:"bot,block"`
	Gauntlet *GauntletSettings `hcl:"gauntlet,block"`
}

// MatchSettings holds chip and blind settings plus outputs
type MatchSettings struct {
	StartingChips int    `hcl:"starting_chips,optional"`
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	HandsPerLevel int    `hcl:"hands_per_level,optional"`
	MaxHands      int    `hcl:"max_hands,optional"`
	Seed          int64  `hcl:"seed,optional"`
	LogLevel      string `hcl:"log_level,optional"`
	HandLog       string `hcl:"hand_log,optional"`
	HistoryDir    string `hcl:"history_dir,optional"`
}

// TimingSettings controls how long bots may think
type TimingSettings struct {
	TimePerMove string `hcl:"time_per_move,optional"`
	TimeBank    string `hcl:"time_bank,optional"`
	MaxTimeouts *int   `hcl:"max_timeouts,optional"`
}

// BotConfig seats a built-in bot
type BotConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy"`
	Seed     int64  `hcl:"seed,optional"`
}

// GauntletSettings configures a challenger run against each enemy
type GauntletSettings struct {
	Challenger string   `hcl:"challenger,optional"`
	Enemies    []string `hcl:"enemies,optional"`
	Attempts   int      `hcl:"attempts,optional"`
	Percentage float64  `hcl:"pass_percentage,optional"`
	Parallel   int      `hcl:"parallel,optional"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	d := arena.DefaultConfig()

	if c.Match == nil {
		c.Match = &MatchSettings{}
	}
	m := c.Match
	if m.StartingChips == 0 {
		m.StartingChips = d.StartingChips
	}
	if m.SmallBlind == 0 && m.BigBlind == 0 {
		m.SmallBlind, m.BigBlind = d.SmallBlind, d.BigBlind
	}
	if m.BigBlind == 0 {
		m.BigBlind = 2 * m.SmallBlind
	}
	if m.HandsPerLevel == 0 {
		m.HandsPerLevel = d.HandsPerLevel
	}
	if m.MaxHands == 0 {
		m.MaxHands = d.MaxHands
	}
	if m.LogLevel == "" {
		m.LogLevel = "info"
	}

	if c.Timing == nil {
		c.Timing = &TimingSettings{}
	}
	t := c.Timing
	if t.TimePerMove == "" {
		t.TimePerMove = d.TimePerMove.String()
	}
	if t.TimeBank == "" {
		t.TimeBank = d.TimeBank.String()
	}
	if t.MaxTimeouts == nil {
		maxTimeouts := d.MaxTimeouts
		t.MaxTimeouts = &maxTimeouts
	}

	if c.Gauntlet == nil {
		c.Gauntlet = &GauntletSettings{}
	}
	g := c.Gauntlet
	if len(g.Enemies) == 0 {
		g.Enemies = []string{bot.StrategyCheckFold, bot.StrategyCall, bot.StrategyRaise, bot.StrategyCallRaise}
	}
	if g.Attempts == 0 {
		g.Attempts = 10
	}
	if g.Percentage == 0 {
		g.Percentage = 100
	}
	if g.Parallel == 0 {
		g.Parallel = 4
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	m := c.Match
	if m.StartingChips <= 0 {
		return fmt.Errorf("match: starting chips must be positive")
	}
	if m.SmallBlind <= 0 {
		return fmt.Errorf("match: small blind must be positive")
	}
	if m.BigBlind < m.SmallBlind {
		return fmt.Errorf("match: big blind must be at least the small blind")
	}
	if m.HandsPerLevel < 0 || m.MaxHands < 0 {
		return fmt.Errorf("match: hand counts cannot be negative")
	}
	switch m.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("match: invalid log level %q", m.LogLevel)
	}

	if _, err := c.durations(); err != nil {
		return err
	}

	if n := len(c.Bots); n == 1 || n > MaxBots {
		return fmt.Errorf("need between 2 and %d bots, got %d", MaxBots, n)
	}
	seen := make(map[string]bool, len(c.Bots))
	for _, b := range c.Bots {
		if seen[b.Name] {
			return fmt.Errorf("bot %s: duplicate name", b.Name)
		}
		seen[b.Name] = true
		if !bot.IsStrategy(b.Strategy) {
			return fmt.Errorf("bot %s: invalid strategy %s", b.Name, b.Strategy)
		}
	}

	g := c.Gauntlet
	if g.Challenger != "" && !bot.IsStrategy(g.Challenger) {
		return fmt.Errorf("gauntlet: invalid challenger %s", g.Challenger)
	}
	for _, e := range g.Enemies {
		if !bot.IsStrategy(e) {
			return fmt.Errorf("gauntlet: invalid enemy %s", e)
		}
	}
	if g.Attempts < 1 {
		return fmt.Errorf("gauntlet: attempts must be positive")
	}
	if g.Percentage < 0 || g.Percentage > 100 {
		return fmt.Errorf("gauntlet: pass percentage must be between 0 and 100")
	}
	if g.Parallel < 1 {
		return fmt.Errorf("gauntlet: parallel must be positive")
	}

	return nil
}

type timing struct {
	perMove, bank time.Duration
}

func (c *Config) durations() (timing, error) {
	perMove, err := time.ParseDuration(c.Timing.TimePerMove)
	if err != nil {
		return timing{}, fmt.Errorf("timing: time_per_move: %w", err)
	}
	bank, err := time.ParseDuration(c.Timing.TimeBank)
	if err != nil {
		return timing{}, fmt.Errorf("timing: time_bank: %w", err)
	}
	if perMove <= 0 {
		return timing{}, fmt.Errorf("timing: time_per_move must be positive")
	}
	if bank < 0 {
		return timing{}, fmt.Errorf("timing: time_bank cannot be negative")
	}
	return timing{perMove, bank}, nil
}

// Arena returns the match rules. Call Validate first.
func (c *Config) Arena() arena.Config {
	t, _ := c.durations()
	return arena.Config{
		StartingChips: c.Match.StartingChips,
		SmallBlind:    c.Match.SmallBlind,
		BigBlind:      c.Match.BigBlind,
		HandsPerLevel: c.Match.HandsPerLevel,
		MaxHands:      c.Match.MaxHands,
		TimePerMove:   t.perMove,
		TimeBank:      t.bank,
		MaxTimeouts:   *c.Timing.MaxTimeouts,
		Seed:          c.Match.Seed,
	}
}

// Seats returns the configured bots as seats in table order
func (c *Config) Seats() []game.Seat {
	seats := make([]game.Seat, len(c.Bots))
	for i, b := range c.Bots {
		seats[i] = game.Seat(b.Name)
	}
	return seats
}
