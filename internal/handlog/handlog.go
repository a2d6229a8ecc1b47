// Package handlog writes every game event as a JSON line: when it
// happened, which hand, who acted, what happened and the details.
//
//	{"ts":1700000000,"hand_id":"m-1","player":"alice","event":"raise","data":40}
//
// Table level events use the player name TABLE.
package handlog

import (
	"io"
	"sort"

	"github.com/rs/zerolog"

	"github.com/lox/pokerarena/internal/deck"
	"github.com/lox/pokerarena/internal/game"
)

// Record names that are not actions
const (
	TablePlayer = "TABLE"

	EventCards     = "CARDS"
	EventStacks    = "STACKS"
	EventBlind     = "BLIND"
	EventPot       = "POT"
	EventWon       = "WON"
	EventRemaining = "REMAINING"
	EventLevel     = "LEVEL"
)

// Recorder is an event subscriber that logs hands as JSON lines
type Recorder struct {
	logger zerolog.Logger
}

// NewRecorder writes records to w. Writes from one event are not
// interleaved with another's as long as w is safe for concurrent use.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{logger: zerolog.New(w)}
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.GameEvent) {
	ts := event.Timestamp().Unix()

	switch e := event.(type) {
	case game.HandStartEvent:
		for _, seat := range e.Seats {
			r.write(ts, e.HandID, string(seat), EventCards, cards(e.Hole[seat]))
		}
		r.write(ts, e.HandID, TablePlayer, EventStacks, stacks(e.Stacks))
	case game.BlindsPostedEvent:
		r.write(ts, e.HandID, string(e.SmallBlindSeat), EventBlind, e.SmallBlind)
		r.write(ts, e.HandID, string(e.BigBlindSeat), EventBlind, e.BigBlind)
		r.write(ts, e.HandID, TablePlayer, EventPot, e.Pot)
	case game.PlayerActionEvent:
		r.write(ts, e.HandID, string(e.Seat), e.Action.Kind.String(), e.Amount)
	case game.StreetChangeEvent:
		r.write(ts, e.HandID, TablePlayer, EventCards, cards(e.Board))
		r.write(ts, e.HandID, TablePlayer, EventPot, e.Pot)
	case game.HandEndEvent:
		for _, seat := range sortedSeats(e.Showdown) {
			r.write(ts, e.HandID, string(seat), EventCards, cards(e.Showdown[seat].Hole))
		}
		r.write(ts, e.HandID, TablePlayer, EventPot, e.Pot)
		r.write(ts, e.HandID, TablePlayer, EventWon, stacks(e.Won))
		r.write(ts, e.HandID, TablePlayer, EventRemaining, e.Winners)
	case game.BlindLevelEvent:
		r.write(ts, "", TablePlayer, EventLevel, []int{e.Level, e.SmallBlind, e.BigBlind})
	}
}

func (r *Recorder) write(ts int64, handID, player, event string, data any) {
	r.logger.Log().
		Int64("ts", ts).
		Str("hand_id", handID).
		Str("player", player).
		Str("event", event).
		Interface("data", data).
		Send()
}

func cards(cs []deck.Card) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}

func stacks(m map[game.Seat]int) map[string]int {
	out := make(map[string]int, len(m))
	for seat, chips := range m {
		out[string(seat)] = chips
	}
	return out
}

func sortedSeats[V any](m map[game.Seat]V) []game.Seat {
	seats := make([]game.Seat, 0, len(m))
	for seat := range m {
		seats = append(seats, seat)
	}
	sort.Slice(seats, func(i, j int) bool { return seats[i] < seats[j] })
	return seats
}
