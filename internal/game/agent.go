package game

import (
	"context"
	"fmt"
	"time"

	"github.com/lox/pokerarena/internal/deck"
)

// Seat identifies a participant for the lifetime of a hand
type Seat string

// ActionKind is the type of decision a seat makes
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Raise
)

func (a ActionKind) String() string {
	switch a {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// ParseActionKind converts a wire name into an ActionKind
func ParseActionKind(s string) (ActionKind, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise", "bet":
		return Raise, nil
	default:
		return Fold, fmt.Errorf("invalid action: %s", s)
	}
}

// Action is a seat's decision. For raises, Amount is the raise size on top
// of the call; it is ignored for other kinds.
type Action struct {
	Kind   ActionKind
	Amount int
}

func (a Action) String() string {
	if a.Kind == Raise {
		return fmt.Sprintf("raise %d", a.Amount)
	}
	return a.Kind.String()
}

// ActionRequest is what an actor sees when asked to decide
type ActionRequest struct {
	HandID   string
	Seat     Seat
	Street   Street
	ToCall   int
	MinRaise int
	Pot      int
	Stack    int
	CanCheck bool
	Budget   time.Duration

	HoleCards []deck.Card
	Board     []deck.Card
}

// Actor makes decisions for a seat. Implementations must return when ctx
// is done; the caller treats that as a timeout.
type Actor interface {
	RequestAction(ctx context.Context, req ActionRequest) (Action, error)
}

// ActorFunc adapts a function to the Actor interface
type ActorFunc func(ctx context.Context, req ActionRequest) (Action, error)

func (f ActorFunc) RequestAction(ctx context.Context, req ActionRequest) (Action, error) {
	return f(ctx, req)
}

// Bankroll owns the chip stacks outside the pot
type Bankroll interface {
	// Deduct removes up to amount from the seat's stack and returns what was
	// actually removed. Asking for more than the stack is how all-ins happen.
	Deduct(seat Seat, amount int) int
	Credit(seat Seat, amount int)
	Stack(seat Seat) int
}
