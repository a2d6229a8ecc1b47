package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/pokerarena/internal/deck"
)

// FormattingOptions controls how events are rendered
type FormattingOptions struct {
	ShowHoleCards bool // include hole cards in showdown summaries
}

// EventFormatter renders game events as one-line, human-readable text for
// operator logs.
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders any event. Unknown events render as their type.
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case HandStartEvent:
		return ef.FormatHandStart(e)
	case BlindsPostedEvent:
		return fmt.Sprintf("%s: posts small blind %d, %s: posts big blind %d",
			e.SmallBlindSeat, e.SmallBlind, e.BigBlindSeat, e.BigBlind)
	case PlayerActionEvent:
		return ef.FormatPlayerAction(e)
	case StreetChangeEvent:
		return ef.FormatStreetChange(e)
	case HandEndEvent:
		return ef.FormatHandEnd(e)
	case BlindLevelEvent:
		return fmt.Sprintf("Blinds up: level %d, %d/%d", e.Level, e.SmallBlind, e.BigBlind)
	default:
		return event.EventType().String()
	}
}

// FormatHandStart formats a hand start event into a human-readable string
func (ef *EventFormatter) FormatHandStart(event HandStartEvent) string {
	return fmt.Sprintf("Hand %s • %d players • %d/%d",
		event.HandID, len(event.Seats), event.SmallBlind, event.BigBlind)
}

// FormatPlayerAction formats a player action event into a human-readable string
func (ef *EventFormatter) FormatPlayerAction(event PlayerActionEvent) string {
	var text string
	switch event.Action.Kind {
	case Fold:
		text = fmt.Sprintf("%s: folds", event.Seat)
		if event.TimedOut {
			text = fmt.Sprintf("%s: times out and folds", event.Seat)
		}
	case Check:
		text = fmt.Sprintf("%s: checks", event.Seat)
		if event.TimedOut {
			text = fmt.Sprintf("%s: times out and checks", event.Seat)
		}
	case Call:
		text = fmt.Sprintf("%s: calls %d (pot now: %d)", event.Seat, event.Amount, event.PotAfter)
	case Raise:
		text = fmt.Sprintf("%s: raises %d (pot now: %d)", event.Seat, event.Action.Amount, event.PotAfter)
	default:
		text = fmt.Sprintf("%s: %s %d", event.Seat, event.Action.Kind, event.Amount)
	}

	if event.AllIn {
		text += " and is all-in"
	}
	return text
}

// FormatStreetChange formats a street change event into a human-readable string
func (ef *EventFormatter) FormatStreetChange(event StreetChangeEvent) string {
	label := strings.ToUpper(event.Street.String())
	if len(event.Board) < 4 {
		return fmt.Sprintf("*** %s *** [%s]", label, deck.FormatCards(event.Board))
	}
	last := len(event.Board) - 1
	return fmt.Sprintf("*** %s *** [%s] [%s]", label,
		deck.FormatCards(event.Board[:last]), event.Board[last])
}

// FormatHandEnd formats a hand end event into a human-readable string
func (ef *EventFormatter) FormatHandEnd(event HandEndEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hand %s complete, pot %d", event.HandID, event.Pot)

	winners := make([]Seat, 0, len(event.Won))
	for seat := range event.Won {
		winners = append(winners, seat)
	}
	slices.Sort(winners)

	for _, seat := range winners {
		fmt.Fprintf(&b, "; %s wins %d", seat, event.Won[seat])
		shown, ok := event.Showdown[seat]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, " with %s", shown.Score.Category)
		if ef.opts.ShowHoleCards {
			fmt.Fprintf(&b, " [%s]", deck.FormatCards(shown.Hole))
		}
	}
	return b.String()
}
