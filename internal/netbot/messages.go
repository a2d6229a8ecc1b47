package netbot

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/lox/pokerarena/internal/deck"
	"github.com/lox/pokerarena/internal/game"
)

// Message types sent by the server
const (
	TypeWelcome       = "welcome"
	TypeActionRequest = "action_request"
	TypeEvent         = "event"
	TypeError         = "error"
)

// Envelope is decoded first to find out what a message is
type Envelope struct {
	Type string `json:"type"`
}

// WelcomeMessage confirms a bot has been seated
type WelcomeMessage struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// ErrorMessage tells a bot why it was refused
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// ActionRequestMessage asks a bot for a decision. Reply with an
// ActionReply carrying the same ID before TimeMS runs out.
type ActionRequestMessage struct {
	Type      string   `json:"type"`
	ID        int64    `json:"id"`
	HandID    string   `json:"hand_id"`
	Seat      string   `json:"seat"`
	Street    string   `json:"street"`
	ToCall    int      `json:"to_call"`
	MinRaise  int      `json:"min_raise"`
	Pot       int      `json:"pot"`
	Stack     int      `json:"stack"`
	CanCheck  bool     `json:"can_check"`
	TimeMS    int64    `json:"time_ms"`
	HoleCards []string `json:"hole_cards"`
	Board     []string `json:"board"`
}

// ActionReply is a bot's decision. Amount is the raise size on top of the
// call. A reply without an ID answers the outstanding request.
type ActionReply struct {
	ID     int64  `json:"id,omitempty"`
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// EventMessage forwards a game event to a bot
type EventMessage struct {
	Type  string         `json:"type"`
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

func newActionRequestMessage(id int64, req game.ActionRequest) ActionRequestMessage {
	return ActionRequestMessage{
		Type:      TypeActionRequest,
		ID:        id,
		HandID:    req.HandID,
		Seat:      string(req.Seat),
		Street:    req.Street.String(),
		ToCall:    req.ToCall,
		MinRaise:  req.MinRaise,
		Pot:       req.Pot,
		Stack:     req.Stack,
		CanCheck:  req.CanCheck,
		TimeMS:    req.Budget.Milliseconds(),
		HoleCards: cardStrings(req.HoleCards),
		Board:     cardStrings(req.Board),
	}
}

// action converts a reply into a decision. Anything unrecognised folds.
func (r ActionReply) action() game.Action {
	kind, err := game.ParseActionKind(r.Action)
	if err != nil {
		return game.Action{Kind: game.Fold}
	}
	return game.Action{Kind: kind, Amount: max(r.Amount, 0)}
}

// newEventMessage renders event as seen by viewer: only the viewer's own
// hole cards are included before showdown.
func newEventMessage(event game.GameEvent, viewer game.Seat) EventMessage {
	data := map[string]any{}
	switch e := event.(type) {
	case game.HandStartEvent:
		data["hand_id"] = e.HandID
		data["seats"] = e.Seats
		data["stacks"] = e.Stacks
		data["small_blind"] = e.SmallBlind
		data["big_blind"] = e.BigBlind
		data["hole_cards"] = cardStrings(e.Hole[viewer])
	case game.BlindsPostedEvent:
		data["hand_id"] = e.HandID
		data["small_blind_seat"] = e.SmallBlindSeat
		data["small_blind"] = e.SmallBlind
		data["big_blind_seat"] = e.BigBlindSeat
		data["big_blind"] = e.BigBlind
		data["pot"] = e.Pot
	case game.PlayerActionEvent:
		data["hand_id"] = e.HandID
		data["seat"] = e.Seat
		data["street"] = e.Street.String()
		data["action"] = e.Action.Kind.String()
		data["amount"] = e.Amount
		data["all_in"] = e.AllIn
		data["timed_out"] = e.TimedOut
		data["pot"] = e.PotAfter
	case game.StreetChangeEvent:
		data["hand_id"] = e.HandID
		data["street"] = e.Street.String()
		data["board"] = cardStrings(e.Board)
		data["pot"] = e.Pot
	case game.HandEndEvent:
		shown := make(map[game.Seat][]string, len(e.Showdown))
		for seat, hand := range e.Showdown {
			shown[seat] = cardStrings(hand.Hole)
		}
		data["hand_id"] = e.HandID
		data["winners"] = e.Winners
		data["won"] = maps.Clone(e.Won)
		data["pot"] = e.Pot
		data["board"] = cardStrings(e.Board)
		data["showdown"] = shown
	case game.BlindLevelEvent:
		data["level"] = e.Level
		data["small_blind"] = e.SmallBlind
		data["big_blind"] = e.BigBlind
	}
	return EventMessage{Type: TypeEvent, Event: event.EventType().String(), Data: data}
}

// toRequest rebuilds the engine's request from the wire
func (m ActionRequestMessage) toRequest() (game.ActionRequest, error) {
	hole, err := parseCards(m.HoleCards)
	if err != nil {
		return game.ActionRequest{}, err
	}
	board, err := parseCards(m.Board)
	if err != nil {
		return game.ActionRequest{}, err
	}
	return game.ActionRequest{
		HandID:    m.HandID,
		Seat:      game.Seat(m.Seat),
		Street:    parseStreet(m.Street),
		ToCall:    m.ToCall,
		MinRaise:  m.MinRaise,
		Pot:       m.Pot,
		Stack:     m.Stack,
		CanCheck:  m.CanCheck,
		Budget:    millis(m.TimeMS),
		HoleCards: hole,
		Board:     board,
	}, nil
}

func parseStreet(s string) game.Street {
	for _, street := range []game.Street{game.Preflop, game.Flop, game.Turn, game.River} {
		if street.String() == s {
			return street
		}
	}
	return game.Preflop
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func parseCards(in []string) ([]deck.Card, error) {
	out := make([]deck.Card, 0, len(in))
	for _, s := range in {
		c, err := deck.ParseCard(s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return slices.Clip(out), nil
}

func decode[T any](raw []byte) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}
