package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerarena/internal/arena"
	"github.com/lox/pokerarena/internal/bot"
	"github.com/lox/pokerarena/internal/config"
	"github.com/lox/pokerarena/internal/evaluator"
	"github.com/lox/pokerarena/internal/game"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		cards    string
		category evaluator.Category
	}{
		{"AsKsQsJsTs", evaluator.StraightFlush},
		{"KhKdKc9s9h2c3d", evaluator.FullHouse},
		{"As2d3c4h5s9d", evaluator.Straight},
	}
	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			best, score, err := evaluate(tt.cards)
			require.NoError(t, err)
			assert.Equal(t, tt.category, score.Category)
			assert.Len(t, best, 5)
		})
	}
}

func TestEvaluateRejects(t *testing.T) {
	for _, cards := range []string{"AsKs", "AsKsQsJsTs9s8s7s", "AsAsKdQc2h", "AsKsQsJsXx"} {
		_, _, err := evaluate(cards)
		assert.Error(t, err, cards)
	}
}

func TestEquity(t *testing.T) {
	cards, err := parseDistinct("AsAd")
	require.NoError(t, err)
	eq, err := equity(context.Background(), cards, 1, 2000, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.85, eq, 0.05)

	_, err = equity(context.Background(), cards[:1], 1, 100, 1)
	assert.Error(t, err)
}

func TestMatchFlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
match {
  max_hands = 100
  seed      = 3
}

bot "a" {
  strategy = "call"
}

bot "b" {
  strategy = "raise"
}
`), 0o644))

	seed := int64(9)
	flags := MatchFlags{Config: path, Hands: 25, Seed: &seed, LogLevel: "debug"}
	cfg, err := flags.load()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Match.MaxHands)
	assert.Equal(t, int64(9), cfg.Match.Seed)
	assert.Equal(t, "debug", cfg.Match.LogLevel)
	assert.Equal(t, []game.Seat{"a", "b"}, cfg.Seats())

	_, err = (&MatchFlags{Config: path, LogLevel: "loud"}).load()
	assert.Error(t, err)
}

func TestRunMatchWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Match.MaxHands = 20
	cfg.Match.Seed = 5
	cfg.Match.HandLog = filepath.Join(dir, "hands.jsonl")
	cfg.Match.HistoryDir = filepath.Join(dir, "phh")
	require.NoError(t, cfg.Validate())

	logger := log.New(io.Discard)
	var players []arena.Player
	for i, strategy := range []string{bot.StrategyChart, bot.StrategyCallRaise} {
		actor, err := bot.New(strategy, int64(i), logger)
		require.NoError(t, err)
		players = append(players, arena.Player{Name: game.Seat(strategy), Actor: actor})
	}

	report := filepath.Join(dir, "report.json")
	result, err := runMatch(context.Background(), logger, cfg, players, game.NewEventBus(), MatchFlags{Report: report})
	require.NoError(t, err)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	var got matchReport
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, result.ID, got.ID)
	assert.Equal(t, result.Hands, got.Hands)
	total := 0
	for _, chips := range got.Stacks {
		total += chips
	}
	assert.Equal(t, 2*cfg.Match.StartingChips, total)

	info, err := os.Stat(cfg.Match.HandLog)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())

	histories, err := filepath.Glob(filepath.Join(cfg.Match.HistoryDir, "*.phhs"))
	require.NoError(t, err)
	require.Len(t, histories, 1)
	assert.Equal(t, result.ID+".phhs", filepath.Base(histories[0]))
}
