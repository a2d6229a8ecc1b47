package handlog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerarena/internal/game"
)

type record struct {
	TS     int64           `json:"ts"`
	HandID string          `json:"hand_id"`
	Player string          `json:"player"`
	Event  string          `json:"event"`
	Data   json.RawMessage `json:"data"`
}

func readRecords(t *testing.T, buf *bytes.Buffer) []record {
	t.Helper()
	var out []record
	scanner := bufio.NewScanner(buf)
	for scanner.Scan() {
		var r record
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r), scanner.Text())
		out = append(out, r)
	}
	return out
}

func TestRecorderLogsHand(t *testing.T) {
	var buf bytes.Buffer
	bus := game.NewEventBus()
	bus.Subscribe(NewRecorder(&buf))

	h, _ := game.NewTestHand(
		game.WithStackedCards("AsAh KsKh 2c7d9hJc3s"),
		game.WithHandOptions(game.WithEventBus(bus), game.WithHandID("hand-1")),
	)
	_, err := h.Start()
	require.NoError(t, err)
	_, err = h.Act("a", game.Action{Kind: game.Fold})
	require.NoError(t, err)

	records := readRecords(t, &buf)
	require.NotEmpty(t, records)
	for _, r := range records {
		assert.Equal(t, "hand-1", r.HandID)
		assert.NotZero(t, r.TS)
	}

	events := make([]string, len(records))
	for i, r := range records {
		events[i] = r.Player + " " + r.Event
	}
	assert.Equal(t, []string{
		"a CARDS", "b CARDS", "TABLE STACKS",
		"a BLIND", "b BLIND", "TABLE POT",
		"a fold",
		"TABLE POT", "TABLE WON", "TABLE REMAINING",
	}, events)

	assert.JSONEq(t, `["As","Ah"]`, string(records[0].Data))
	assert.JSONEq(t, `{"a":1000,"b":1000}`, string(records[2].Data))
	assert.JSONEq(t, `30`, string(records[5].Data))
	assert.JSONEq(t, `{"b":30}`, string(records[8].Data))
	assert.JSONEq(t, `["b"]`, string(records[9].Data))
}

func TestRecorderShowdownCards(t *testing.T) {
	var buf bytes.Buffer
	bus := game.NewEventBus()
	bus.Subscribe(NewRecorder(&buf))

	h, _ := game.NewTestHand(
		game.WithStackedCards("AsAh KsKh 2c7d9hJc3s"),
		game.WithHandOptions(game.WithEventBus(bus)),
	)
	p, err := h.Start()
	require.NoError(t, err)
	p, err = h.Act(p.Seat, game.Action{Kind: game.Call})
	require.NoError(t, err)
	for p != nil {
		p, err = h.Act(p.Seat, game.Action{Kind: game.Check})
		require.NoError(t, err)
	}

	var board, shown []string
	for _, r := range readRecords(t, &buf) {
		if r.Event != EventCards {
			continue
		}
		if r.Player == TablePlayer {
			board = append(board, string(r.Data))
		} else {
			shown = append(shown, r.Player)
		}
	}
	assert.Equal(t, []string{`["2c","7d","9h"]`, `["2c","7d","9h","Jc"]`, `["2c","7d","9h","Jc","3s"]`}, board)
	assert.Equal(t, []string{"a", "b", "a", "b"}, shown, "dealt then shown down")
}

func TestRecorderBlindLevel(t *testing.T) {
	var buf bytes.Buffer
	NewRecorder(&buf).OnEvent(game.NewBlindLevelEvent(2, 20, 40))

	records := readRecords(t, &buf)
	require.Len(t, records, 1)
	assert.Equal(t, EventLevel, records[0].Event)
	assert.JSONEq(t, `[2,20,40]`, string(records[0].Data))
}
