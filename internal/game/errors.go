package game

import "errors"

var (
	// ErrOutOfTurn is the panic value raised when the orchestrator posts a
	// bet or fold for a seat that is not next to act. It indicates a bug in
	// the caller, not a player mistake.
	ErrOutOfTurn = errors.New("seat acted out of turn")

	// ErrNotYourTurn is returned by Hand.Act and Hand.Timeout when the seat
	// does not hold the pending decision.
	ErrNotYourTurn = errors.New("not this seat's turn")

	// ErrHandComplete is returned when acting on a finished hand
	ErrHandComplete = errors.New("hand is complete")

	// ErrNotEnoughSeats is returned when a hand cannot be dealt
	ErrNotEnoughSeats = errors.New("not enough seats")
)
