package phh

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerarena/internal/game"
)

func newTestRecorder(t *testing.T, dir string, includeHoleCards bool) *Recorder {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, time.January, 2, 3, 4, 5, 0, time.UTC))

	r, err := NewRecorder(RecorderConfig{
		Table:            "test",
		OutputDir:        dir,
		FlushHands:       1,
		IncludeHoleCards: includeHoleCards,
		Clock:            clock,
	}, zerolog.New(io.Discard))
	require.NoError(t, err)
	return r
}

// playHand raises preflop, calls, then checks the hand down
func playHand(t *testing.T, r *Recorder, id string) {
	t.Helper()
	bus := game.NewEventBus()
	bus.Subscribe(r)

	h, _ := game.NewTestHand(
		game.WithStackedCards("AsAh KsKh 2c7d9hJc3s"),
		game.WithHandOptions(game.WithEventBus(bus), game.WithHandID(id)),
	)
	p, err := h.Start()
	require.NoError(t, err)

	p, err = h.Act("a", game.Action{Kind: game.Raise, Amount: 40})
	require.NoError(t, err)
	p, err = h.Act("b", game.Action{Kind: game.Call})
	require.NoError(t, err)
	for p != nil {
		p, err = h.Act(p.Seat, game.Action{Kind: game.Check})
		require.NoError(t, err)
	}
}

func readHands(t *testing.T, path string) map[string]HandHistory {
	t.Helper()
	var doc map[string]HandHistory
	_, err := toml.DecodeFile(path, &doc)
	require.NoError(t, err)
	return doc
}

func TestRecorderWritesHand(t *testing.T) {
	r := newTestRecorder(t, t.TempDir(), true)
	playHand(t, r, "hand-1")

	doc := readHands(t, r.Path())
	require.Contains(t, doc, "1")
	hand := doc["1"]

	assert.Equal(t, "NT", hand.Variant)
	assert.Equal(t, "test", hand.Table)
	assert.Equal(t, "hand-1", hand.HandID)
	assert.Equal(t, []string{"a", "b"}, hand.Players)
	assert.Equal(t, []int{10, 20}, hand.BlindsOrStraddles)
	assert.Equal(t, 20, hand.MinBet)
	assert.Equal(t, []int{1000, 1000}, hand.StartingStacks)
	assert.Equal(t, []int{1060, 940}, hand.FinishingStacks)
	assert.Equal(t, []int{120, 0}, hand.Winnings)
	assert.Equal(t, "03:04:05", hand.Time)
	assert.Equal(t, 2025, hand.Year)

	require.GreaterOrEqual(t, len(hand.Actions), 7)
	assert.Equal(t, []string{"d dh p1 AsAh", "d dh p2 KsKh", "p1 cbr 60", "p2 cc", "d db 2c7d9h"}, hand.Actions[:5])
	assert.Contains(t, hand.Actions, "d db Jc")
	assert.Contains(t, hand.Actions, "d db 3s")
	assert.Equal(t, []string{"p1 sm AsAh", "p2 sm KsKh"}, hand.Actions[len(hand.Actions)-2:])
}

func TestRecorderMasksHoleCardsByDefault(t *testing.T) {
	r := newTestRecorder(t, t.TempDir(), false)
	playHand(t, r, "hand-1")

	data, err := os.ReadFile(r.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "d dh p1 ????")
	assert.NotContains(t, string(data), "d dh p1 AsAh")
}

func TestRecorderContinuesSectionNumbering(t *testing.T) {
	dir := t.TempDir()
	first := newTestRecorder(t, dir, false)
	playHand(t, first, "hand-1")
	playHand(t, first, "hand-2")

	second := newTestRecorder(t, dir, false)
	playHand(t, second, "hand-3")

	doc := readHands(t, filepath.Join(dir, defaultFilename))
	require.Len(t, doc, 3)
	assert.Equal(t, "hand-3", doc["3"].HandID)
}

func TestRecorderBuffersUntilFlush(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRecorder(RecorderConfig{OutputDir: dir, Clock: quartz.NewMock(t)}, zerolog.New(io.Discard))
	require.NoError(t, err)

	playHand(t, r, "hand-1")
	_, err = os.Stat(r.Path())
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, r.Close())
	data, err := os.ReadFile(r.Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[1]\n"))
}

func TestRecorderDisablesAfterRepeatedFailures(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRecorder(RecorderConfig{OutputDir: dir, Clock: quartz.NewMock(t)}, zerolog.New(io.Discard))
	require.NoError(t, err)

	// a directory where the file should be makes every write fail
	require.NoError(t, os.Mkdir(r.Path(), 0o755))

	for i := range maxFailures {
		playHand(t, r, "hand")
		assert.Error(t, r.Flush(), "attempt %d", i+1)
	}
	assert.True(t, r.Disabled())
	assert.NoError(t, r.Flush())
}

func TestNewRecorderRequiresDir(t *testing.T) {
	_, err := NewRecorder(RecorderConfig{}, zerolog.New(io.Discard))
	assert.Error(t, err)
}
