package evaluator

import (
	"fmt"
	"strings"

	"github.com/lox/pokerarena/internal/deck"
)

// Category is the class of a five card hand
type Category int

const (
	// NoScore marks a hand that could not be scored (fewer than 5 cards).
	// It ranks below every real hand.
	NoScore Category = iota - 1
	HighCard
	Pair
	TwoPair
	Trips
	Straight
	Flush
	FullHouse
	Quads
	StraightFlush
)

// String returns a human-readable category name
func (c Category) String() string {
	switch c {
	case NoScore:
		return "No Score"
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case Trips:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case Quads:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandScore ranks a five card hand. Scores order by category and then
// lexicographically by kicker; equal scores split a pot.
type HandScore struct {
	Category Category
	// Kicker holds the rank values in tie-break order: grouped by
	// multiplicity (largest group first), then by rank descending.
	Kicker []deck.Rank
}

// NoHand is the sentinel returned when there are too few cards to score
var NoHand = HandScore{Category: NoScore}

// Valid reports whether s is a real score rather than the NoHand sentinel
func (s HandScore) Valid() bool {
	return s.Category != NoScore
}

// Compare returns -1, 0 or 1 as s is weaker than, equal to, or stronger than other
func (s HandScore) Compare(other HandScore) int {
	if s.Category != other.Category {
		if s.Category < other.Category {
			return -1
		}
		return 1
	}

	for i := 0; i < len(s.Kicker) && i < len(other.Kicker); i++ {
		if s.Kicker[i] < other.Kicker[i] {
			return -1
		}
		if s.Kicker[i] > other.Kicker[i] {
			return 1
		}
	}

	switch {
	case len(s.Kicker) < len(other.Kicker):
		return -1
	case len(s.Kicker) > len(other.Kicker):
		return 1
	}
	return 0
}

// Beats reports whether s is strictly stronger than other
func (s HandScore) Beats(other HandScore) bool {
	return s.Compare(other) > 0
}

// Equal reports whether the two scores tie
func (s HandScore) Equal(other HandScore) bool {
	return s.Compare(other) == 0
}

// String returns e.g. "Full House (K K K 9 9)"
func (s HandScore) String() string {
	if !s.Valid() {
		return s.Category.String()
	}
	ranks := make([]string, len(s.Kicker))
	for i, r := range s.Kicker {
		if r == aceLow {
			r = deck.Ace
		}
		ranks[i] = r.String()
	}
	return fmt.Sprintf("%s (%s)", s.Category, strings.Join(ranks, " "))
}
