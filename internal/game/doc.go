// Package game implements the rules engine for a Texas Hold'em bot arena.
//
// The main type is Hand, which runs a single hand as a suspend/resume state
// machine. The caller starts the hand, receives a Pending decision, asks the
// seat's actor for an action and feeds the answer (or a timeout) back:
//
//	h := game.NewHand(game.HandConfig{Rotation: rotation, Bankroll: bank})
//	p, err := h.Start()
//	for p != nil && err == nil {
//	    action, _ := actors[p.Seat].RequestAction(ctx, p.Request(budget))
//	    p, err = h.Act(p.Seat, action)
//	}
//	result, _ := h.Result()
//
// # Architecture
//
// Hand delegates responsibilities to specialized components:
//   - BettingRound: adjudicates one street of wagering
//   - BlindRotation: moves and escalates the blinds across a match
//   - CalculateSidePots and AwardPots: split the pot at showdown
//   - GameVariant and BetLimit: the dealing pattern and raise legality
//
// Chips outside the pot belong to a Bankroll supplied by the caller. Events
// are published on an EventBus for logging and statistics; the engine never
// depends on subscribers.
package game
