package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrDeckExhausted is returned when more cards are requested than remain
var ErrDeckExhausted = errors.New("deck exhausted")

const goldenRatio64 = 0x9e3779b97f4a7c15

// NewRand returns a deterministic generator for the given seed so that a
// match can be replayed from its seed alone.
func NewRand(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(u, u^goldenRatio64))
}

// FullDeck returns the 52 cards in rank-then-suit order
func FullDeck() []Card {
	cards := make([]Card, 0, 52)
	for rank := Two; rank <= Ace; rank++ {
		for suit := Clubs; suit <= Spades; suit++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}
	return cards
}

// Deck is the ordered remainder of a 52 card deck. Cards leave the deck
// without replacement; a deck is never refilled mid-hand.
type Deck struct {
	cards []Card
}

// NewDeck creates a shuffled deck. A nil rng leaves the deck in order.
func NewDeck(rng *rand.Rand) *Deck {
	cards := FullDeck()
	if rng != nil {
		rng.Shuffle(len(cards), func(i, j int) {
			cards[i], cards[j] = cards[j], cards[i]
		})
	}
	return &Deck{cards: cards}
}

// NewStackedDeck creates a deck that deals the given cards first, followed
// by every other card in order. Duplicate cards are rejected.
func NewStackedDeck(top []Card) (*Deck, error) {
	seen := make(map[Card]bool, 52)
	cards := make([]Card, 0, 52)
	for _, c := range top {
		if !c.Valid() {
			return nil, fmt.Errorf("invalid card %v", c)
		}
		if seen[c] {
			return nil, fmt.Errorf("duplicate card %s", c)
		}
		seen[c] = true
		cards = append(cards, c)
	}
	for _, c := range FullDeck() {
		if !seen[c] {
			cards = append(cards, c)
		}
	}
	return &Deck{cards: cards}, nil
}

// Deal removes and returns the top n cards
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("deal %d cards with %d left: %w", n, len(d.cards), ErrDeckExhausted)
	}
	dealt := make([]Card, n)
	copy(dealt, d.cards[:n])
	d.cards = d.cards[n:]
	return dealt, nil
}

// Remaining returns the number of undealt cards
func (d *Deck) Remaining() int {
	return len(d.cards)
}
