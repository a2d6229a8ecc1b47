package evaluator

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokerarena/internal/deck"
)

// ErrInvalidEquity is returned for impossible equity questions
var ErrInvalidEquity = errors.New("invalid equity request")

// samplesPerWorker keeps small estimates on a single goroutine
const samplesPerWorker = 250

// CardSet is a bitset with one bit per card
type CardSet uint64

func cardIndex(card deck.Card) int {
	return int(card.Rank-deck.Two)*4 + int(card.Suit)
}

// NewCardSet creates a CardSet from cards
func NewCardSet(cards []deck.Card) CardSet {
	var cs CardSet
	for _, card := range cards {
		cs.Add(card)
	}
	return cs
}

// Add adds a card to the set
func (cs *CardSet) Add(card deck.Card) {
	*cs |= 1 << cardIndex(card)
}

// Contains checks if a card is in the set
func (cs CardSet) Contains(card deck.Card) bool {
	return cs&(1<<cardIndex(card)) != 0
}

// Equity estimates the share of the pot hole wins against opponents holding
// random cards, completing board at random. Ties count as an equal split.
// Samples are spread over workers; the result is reproducible for a seed.
func Equity(ctx context.Context, hole, board []deck.Card, opponents, samples int, seed int64) (float64, error) {
	switch {
	case len(hole) != 2:
		return 0, fmt.Errorf("%w: need 2 hole cards, got %d", ErrInvalidEquity, len(hole))
	case len(board) > 5:
		return 0, fmt.Errorf("%w: board has %d cards", ErrInvalidEquity, len(board))
	case opponents < 1 || opponents > 9:
		return 0, fmt.Errorf("%w: %d opponents", ErrInvalidEquity, opponents)
	case samples < 1:
		return 0, fmt.Errorf("%w: %d samples", ErrInvalidEquity, samples)
	}

	if hole[0] == hole[1] {
		return 0, fmt.Errorf("%w: duplicate card %s", ErrInvalidEquity, hole[0])
	}
	used := NewCardSet(hole)
	for _, c := range board {
		if used.Contains(c) {
			return 0, fmt.Errorf("%w: duplicate card %s", ErrInvalidEquity, c)
		}
		used.Add(c)
	}

	var available []deck.Card
	for _, c := range deck.FullDeck() {
		if !used.Contains(c) {
			available = append(available, c)
		}
	}

	workers := min(runtime.GOMAXPROCS(0), max(samples/samplesPerWorker, 1))
	shares := make([]float64, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := samples / workers
		if w < samples%workers {
			n++
		}
		g.Go(func() error {
			rng := deck.NewRand(seed + int64(w))
			share, err := simulate(ctx, hole, board, available, opponents, n, rng)
			shares[w] = share
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var total float64
	for _, s := range shares {
		total += s
	}
	return total / float64(samples), nil
}

// simulate plays n random run-outs and returns the summed pot share
func simulate(ctx context.Context, hole, board, available []deck.Card, opponents, n int, rng *rand.Rand) (float64, error) {
	pool := make([]deck.Card, len(available))
	copy(pool, available)

	need := 2*opponents + 5 - len(board)
	full := make([]deck.Card, 0, 5)
	seven := make([]deck.Card, 0, 7)
	score := func(two []deck.Card) HandScore {
		seven = append(append(seven[:0], two...), full...)
		_, s := FindBest(seven)
		return s
	}

	var share float64
	for i := range n {
		if i%64 == 0 && ctx.Err() != nil {
			return 0, ctx.Err()
		}

		// partial Fisher-Yates: the first need cards are the draw
		for j := range need {
			k := j + rng.IntN(len(pool)-j)
			pool[j], pool[k] = pool[k], pool[j]
		}
		full = append(append(full[:0], board...), pool[2*opponents:need]...)

		hero := score(hole)
		tied := 1
		beaten := false
		for o := range opponents {
			switch c := score(pool[2*o : 2*o+2]).Compare(hero); {
			case c > 0:
				beaten = true
			case c == 0:
				tied++
			}
			if beaten {
				break
			}
		}
		if !beaten {
			share += 1 / float64(tied)
		}
	}
	return share, nil
}
