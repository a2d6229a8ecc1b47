package phh_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerarena/internal/deck"
	"github.com/lox/pokerarena/internal/game"
	"github.com/lox/pokerarena/internal/phh"
)

func TestFormatAction(t *testing.T) {
	tests := []struct {
		name        string
		index       int
		kind        game.ActionKind
		streetTotal int
		want        string
		emit        bool
	}{
		{"fold", 0, game.Fold, 0, "p1 f", true},
		{"check", 1, game.Check, 0, "p2 cc", true},
		{"call", 3, game.Call, 50, "p4 cc", true},
		{"raise", 0, game.Raise, 120, "p1 cbr 120", true},
		{"empty raise", 2, game.Raise, 0, "", false},
		{"unknown", 2, game.ActionKind(9), 10, "# p3 unknown 10", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := phh.FormatAction(tt.index, tt.kind, tt.streetTotal)
			assert.Equal(t, tt.emit, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCards(t *testing.T) {
	assert.Equal(t, "AsTd2c", phh.Cards(deck.MustParseCards("As Td 2c")))
	assert.Equal(t, "", phh.Cards(nil))
}

func TestEncode(t *testing.T) {
	hand := &phh.HandHistory{
		Variant:           "NT",
		Antes:             []int{0, 0},
		BlindsOrStraddles: []int{10, 20},
		MinBet:            20,
		StartingStacks:    []int{1000, 1000},
		Actions:           []string{"d dh p1 ????", "d dh p2 ????", "p1 f"},
		HandID:            "h1",
	}
	hand.Stamp(time.Date(2025, 3, 2, 3, 4, 5, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, phh.Encode(&buf, hand))
	out := buf.String()
	assert.Contains(t, out, `variant = "NT"`)
	assert.Contains(t, out, `hand = "h1"`)
	assert.Contains(t, out, `"p1 f"`)
	assert.Contains(t, out, `time = "03:04:05"`)
	assert.Contains(t, out, "year = 2025")

	data, err := phh.EncodeToBytes(hand)
	require.NoError(t, err)
	assert.Equal(t, out, string(data))

	assert.Error(t, phh.Encode(&buf, nil))
}
