package phh

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/pokerarena/internal/deck"
	"github.com/lox/pokerarena/internal/game"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatAction renders a decision as a PHH action for the player at
// position index. streetTotal is everything the player has put in on the
// current street, which is what "cbr" records. Raises without chips
// behind them are not emitted.
func FormatAction(index int, kind game.ActionKind, streetTotal int) (string, bool) {
	player := fmt.Sprintf("p%d", index+1)
	switch kind {
	case game.Fold:
		return player + " f", true
	case game.Check, game.Call:
		return player + " cc", true
	case game.Raise:
		if streetTotal <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", player, streetTotal), true
	default:
		return fmt.Sprintf("# %s %s %d", player, kind, streetTotal), true
	}
}

// Cards renders cards the way PHH expects them, e.g. "AsKd"
func Cards(cards []deck.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}
