package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerarena/internal/deck"
)

func TestScoreCategories(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		category Category
		kicker   []deck.Rank
	}{
		{"royal flush", "AsKsQsJsTs", StraightFlush, ranks(14, 13, 12, 11, 10)},
		{"straight flush", "9h8h7h6h5h", StraightFlush, ranks(9, 8, 7, 6, 5)},
		{"steel wheel", "5d4d3d2dAd", StraightFlush, ranks(5, 4, 3, 2, 1)},
		{"quads", "9c9d9h9sKd", Quads, ranks(9, 9, 9, 9, 13)},
		{"full house", "KsKhKd9c9s", FullHouse, ranks(13, 13, 13, 9, 9)},
		{"full house low trips", "3s3h3dAcAs", FullHouse, ranks(3, 3, 3, 14, 14)},
		{"flush", "As9s7s4s2s", Flush, ranks(14, 9, 7, 4, 2)},
		{"straight", "Ts9h8d7c6s", Straight, ranks(10, 9, 8, 7, 6)},
		{"wheel", "As2d3c4h5s", Straight, ranks(5, 4, 3, 2, 1)},
		{"trips", "7s7h7dKcTs", Trips, ranks(7, 7, 7, 13, 10)},
		{"two pair", "JsJhTdTcAs", TwoPair, ranks(11, 11, 10, 10, 14)},
		{"pair", "TsTh9d5c2s", Pair, ranks(10, 10, 9, 5, 2)},
		{"high card", "AsJh9d5c2s", HighCard, ranks(14, 11, 9, 5, 2)},
		{"ace high no wrap", "QsKhAd2c3s", HighCard, ranks(14, 13, 12, 3, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Score(deck.MustParseCards(tt.cards))
			assert.Equal(t, tt.category, score.Category)
			assert.Equal(t, tt.kicker, score.Kicker)
		})
	}
}

func TestScoreWrongCardCount(t *testing.T) {
	assert.Equal(t, NoHand, Score(deck.MustParseCards("AsKs")))
	assert.Equal(t, NoHand, Score(deck.MustParseCards("AsKsQsJsTs9s")))
	assert.False(t, NoHand.Valid())

	// the sentinel ranks below every real hand
	worst := Score(deck.MustParseCards("7s5h4d3c2s"))
	assert.True(t, worst.Beats(NoHand))
}

func TestScorePermutationInvariant(t *testing.T) {
	hands := []string{"KsKhKd9c9s", "As2d3c4h5s", "JsJhTdTcAs", "AsJh9d5c2s", "As9s7s4s2s"}

	for _, h := range hands {
		cards := deck.MustParseCards(h)
		want := Score(cards)
		permute(cards, 0, func(p []deck.Card) {
			assert.True(t, want.Equal(Score(p)), "%v scored differently", p)
		})
	}
}

func TestCategoryOrdering(t *testing.T) {
	// weakest to strongest; every hand must beat all before it
	ordered := []string{
		"AsKhQd9c7s", // high card
		"2s2h3d4c5s", // pair of twos
		"2s2h3d3c4s", // two pair
		"2s2h2d3c4s", // trips
		"6s5h4d3c2s", // straight
		"7s5s4s3s2s", // flush
		"2s2h2d3c3s", // full house
		"2s2h2d2c3s", // quads
		"6s5s4s3s2s", // straight flush
	}

	scores := make([]HandScore, len(ordered))
	for i, h := range ordered {
		scores[i] = Score(deck.MustParseCards(h))
		assert.Equal(t, Category(i), scores[i].Category, h)
	}
	for i := range scores {
		for j := 0; j < i; j++ {
			assert.True(t, scores[i].Beats(scores[j]), "%s should beat %s", ordered[i], ordered[j])
		}
	}
}

func TestKickerComparison(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		expect int
	}{
		{"higher pair", "KsKh5d4c2s", "QsQhAdKc2s", 1},
		{"pair kicker", "KsKhAd4c2s", "KdKcQd4h2h", 1},
		{"split", "KsKhAd4c2s", "KdKcAc4h2h", 0},
		{"wheel loses to six high", "5s4h3d2cAs", "6s5h4d3c2s", -1},
		{"two pair bottom pair", "JsJhTdTcAs", "JdJcTh9c9s", 1},
		{"full house trips first", "3s3h3dAcAs", "2s2h2dAhAd", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Score(deck.MustParseCards(tt.a))
			b := Score(deck.MustParseCards(tt.b))
			assert.Equal(t, tt.expect, a.Compare(b))
			assert.Equal(t, -tt.expect, b.Compare(a))
		})
	}
}

func TestFindBest(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		category Category
		best     string
	}{
		{"seven card flush over straight", "AsKs9s5s2sQhJd", Flush, "AsKs9s5s2s"},
		{"full house from two trips", "KsKhKd9c9s9hAd", FullHouse, "KsKhKd9c9s"},
		{"board plays", "2c3dAsKsQsJsTs", StraightFlush, "AsKsQsJsTs"},
		{"six cards", "7s7h7d2c2s4h", FullHouse, "7s7h7d2c2s"},
		{"exact five", "AsJh9d5c2s", HighCard, "AsJh9d5c2s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand, score := FindBest(deck.MustParseCards(tt.cards))
			require.Len(t, hand, HandSize)
			assert.Equal(t, tt.category, score.Category)
			assert.ElementsMatch(t, deck.MustParseCards(tt.best), hand)
			assert.True(t, score.Equal(Score(hand)))
		})
	}
}

func TestFindBestTooFewCards(t *testing.T) {
	hand, score := FindBest(deck.MustParseCards("AsKsQs"))
	assert.Nil(t, hand)
	assert.Equal(t, NoHand, score)
}

func TestFindBestDominatesEverySubset(t *testing.T) {
	rng := deck.NewRand(99)
	for round := 0; round < 200; round++ {
		n := 6 + round%2
		cards, err := deck.NewDeck(rng).Deal(n)
		require.NoError(t, err)

		_, best := FindBest(cards)
		combinations(cards, func(hand []deck.Card) {
			assert.GreaterOrEqual(t, best.Compare(Score(hand)), 0, "%v beat best of %v", hand, cards)
		})
	}
}

func TestHandScoreString(t *testing.T) {
	assert.Equal(t, "Full House (K K K 9 9)", Score(deck.MustParseCards("KsKhKd9c9s")).String())
	assert.Equal(t, "Straight (5 4 3 2 A)", Score(deck.MustParseCards("As2d3c4h5s")).String())
	assert.Equal(t, "No Score", NoHand.String())
}

func ranks(values ...int) []deck.Rank {
	out := make([]deck.Rank, len(values))
	for i, v := range values {
		out[i] = deck.Rank(v)
	}
	return out
}

func permute(cards []deck.Card, k int, fn func([]deck.Card)) {
	if k == len(cards) {
		fn(cards)
		return
	}
	for i := k; i < len(cards); i++ {
		cards[k], cards[i] = cards[i], cards[k]
		permute(cards, k+1, fn)
		cards[k], cards[i] = cards[i], cards[k]
	}
}

func combinations(cards []deck.Card, fn func([]deck.Card)) {
	hand := make([]deck.Card, 0, HandSize)
	var walk func(start int)
	walk = func(start int) {
		if len(hand) == HandSize {
			fn(hand)
			return
		}
		for i := start; i < len(cards); i++ {
			hand = append(hand, cards[i])
			walk(i + 1)
			hand = hand[:len(hand)-1]
		}
	}
	walk(0)
}
