package game

import (
	"slices"

	"github.com/lox/pokerarena/internal/evaluator"
)

// Pot represents a pot (main or side)
type Pot struct {
	Amount   int
	Cap      int    // per-seat contribution ceiling for this tranche
	Eligible []Seat // seats that can win it, in seat order
}

// CalculateSidePots splits what each seat put in over the whole hand into
// tranches capped at each live all-in level. Chips from folded seats are dead
// money: they fill the tranches but make nobody eligible.
func CalculateSidePots(order []Seat, contributions map[Seat]int, live func(Seat) bool) []Pot {
	var levels []int
	for _, s := range order {
		if c := contributions[s]; live(s) && c > 0 && !slices.Contains(levels, c) {
			levels = append(levels, c)
		}
	}
	slices.Sort(levels)

	pots := make([]Pot, 0, len(levels))
	previous := 0
	for _, level := range levels {
		pot := Pot{Cap: level}
		for _, s := range order {
			c := contributions[s]
			if c > previous {
				pot.Amount += min(c, level) - previous
			}
			if live(s) && c >= level {
				pot.Eligible = append(pot.Eligible, s)
			}
		}
		pots = append(pots, pot)
		previous = level
	}

	// anything a folded seat put in above the deepest live stack
	var dead int
	for _, s := range order {
		if c := contributions[s]; c > previous {
			dead += c - previous
		}
	}
	if dead > 0 && len(pots) > 0 {
		pots[len(pots)-1].Amount += dead
	}
	return pots
}

// Split divides the pot evenly between winners. Odd chips go one at a time
// to the winners in the order given.
func (p Pot) Split(winners []Seat) map[Seat]int {
	won := make(map[Seat]int, len(winners))
	if len(winners) == 0 {
		return won
	}
	share, remainder := p.Amount/len(winners), p.Amount%len(winners)
	for i, s := range winners {
		won[s] = share
		if i < remainder {
			won[s]++
		}
	}
	return won
}

// AwardPots pays out each pot to the best scoring eligible seats. A pot with
// a single eligible seat is returned to it uncontested.
func AwardPots(pots []Pot, scores map[Seat]evaluator.HandScore) map[Seat]int {
	won := make(map[Seat]int)
	for _, pot := range pots {
		var winners []Seat
		if len(pot.Eligible) == 1 {
			winners = pot.Eligible
		} else {
			winners = bestScoring(pot.Eligible, scores)
		}
		for s, amount := range pot.Split(winners) {
			won[s] += amount
		}
	}
	return won
}

func bestScoring(seats []Seat, scores map[Seat]evaluator.HandScore) []Seat {
	best := evaluator.NoHand
	var winners []Seat
	for _, s := range seats {
		score, ok := scores[s]
		if !ok {
			continue
		}
		switch c := score.Compare(best); {
		case c > 0 || winners == nil:
			best = score
			winners = []Seat{s}
		case c == 0:
			winners = append(winners, s)
		}
	}
	return winners
}
