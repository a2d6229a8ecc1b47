// Package evaluator scores poker hands.
//
// Score ranks exactly five cards. FindBest enumerates every five card
// subset of a larger set (hole cards plus board) and keeps the strongest.
package evaluator

import (
	"sort"

	"github.com/lox/pokerarena/internal/deck"
)

// HandSize is the number of cards in a scored poker hand
const HandSize = 5

// aceLow is the kicker value an ace takes in a five-high straight
const aceLow deck.Rank = 1

// Score ranks exactly five cards. Any other count returns NoHand.
func Score(cards []deck.Card) HandScore {
	if len(cards) != HandSize {
		return NoHand
	}

	var counts [deck.Ace + 1]int
	for _, c := range cards {
		counts[c.Rank]++
	}

	sorted := make([]deck.Card, HandSize)
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		ci, cj := counts[sorted[i].Rank], counts[sorted[j].Rank]
		if ci != cj {
			return ci > cj
		}
		return sorted[i].Rank > sorted[j].Rank
	})

	kicker := make([]deck.Rank, HandSize)
	for i, c := range sorted {
		kicker[i] = c.Rank
	}

	// counts of the leading groups decide the made hands
	first := counts[sorted[0].Rank]
	second := 0
	if first < HandSize {
		second = counts[sorted[first].Rank]
	}

	switch {
	case first == 4:
		return HandScore{Category: Quads, Kicker: kicker}
	case first == 3 && second == 2:
		return HandScore{Category: FullHouse, Kicker: kicker}
	case first == 3:
		return HandScore{Category: Trips, Kicker: kicker}
	case first == 2 && second == 2:
		return HandScore{Category: TwoPair, Kicker: kicker}
	case first == 2:
		return HandScore{Category: Pair, Kicker: kicker}
	}

	flush := isFlush(sorted)
	straight, wheel := isStraight(kicker)
	if wheel {
		kicker = []deck.Rank{deck.Five, deck.Four, deck.Three, deck.Two, aceLow}
	}

	switch {
	case flush && straight:
		return HandScore{Category: StraightFlush, Kicker: kicker}
	case flush:
		return HandScore{Category: Flush, Kicker: kicker}
	case straight:
		return HandScore{Category: Straight, Kicker: kicker}
	}
	return HandScore{Category: HighCard, Kicker: kicker}
}

func isFlush(cards []deck.Card) bool {
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			return false
		}
	}
	return true
}

// isStraight expects five distinct ranks sorted descending
func isStraight(ranks []deck.Rank) (straight, wheel bool) {
	if ranks[0] == deck.Ace && ranks[1] == deck.Five {
		for i := 1; i < len(ranks)-1; i++ {
			if ranks[i]-ranks[i+1] != 1 {
				return false, false
			}
		}
		return true, true
	}
	for i := 0; i < len(ranks)-1; i++ {
		if ranks[i]-ranks[i+1] != 1 {
			return false, false
		}
	}
	return true, false
}

// FindBest returns the strongest five card hand within cards and its score.
// When several subsets tie, the first one found is kept. Fewer than five
// cards returns a nil hand and NoHand.
func FindBest(cards []deck.Card) ([]deck.Card, HandScore) {
	if len(cards) < HandSize {
		return nil, NoHand
	}

	best := NoHand
	var bestHand []deck.Card

	hand := make([]deck.Card, HandSize)
	idx := [HandSize]int{0, 1, 2, 3, 4}
	n := len(cards)
	for {
		for i, j := range idx {
			hand[i] = cards[j]
		}
		if score := Score(hand); score.Beats(best) {
			best = score
			bestHand = append(bestHand[:0], hand...)
		}

		// advance to the next combination in lexicographic order
		i := HandSize - 1
		for i >= 0 && idx[i] == n-HandSize+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < HandSize; j++ {
			idx[j] = idx[j-1] + 1
		}
	}

	return bestHand, best
}
