package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokerarena/internal/deck"
	"github.com/lox/pokerarena/internal/evaluator"
)

var (
	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)

type EvalCmd struct {
	Cards     []string `arg:"" help:"Up to 7 cards, hole cards first, e.g. As Kd 7h 7c 2s"`
	Opponents int      `short:"o" help:"Estimate equity against this many random hands"`
	Samples   int      `short:"n" default:"20000" help:"Monte Carlo samples for equity"`
	Seed      int64    `default:"1" help:"Seed for equity sampling"`
}

func (c *EvalCmd) Run() error {
	cards, err := parseDistinct(strings.Join(c.Cards, ""))
	if err != nil {
		return err
	}
	if c.Opponents == 0 && len(cards) < evaluator.HandSize {
		return errors.New("need 5 to 7 cards, or --opponents for equity")
	}

	if len(cards) >= evaluator.HandSize {
		best, score := evaluator.FindBest(cards)
		fmt.Printf("%s  %s\n", handStyle.Render(deck.FormatCards(best)), categoryStyle.Render(score.String()))
	}

	if c.Opponents > 0 {
		ctx, cancel := signalContext()
		defer cancel()

		eq, err := equity(ctx, cards, c.Opponents, c.Samples, c.Seed)
		if err != nil {
			return err
		}
		fmt.Printf("Equity vs %d: %s\n", c.Opponents, percentStyle.Render(fmt.Sprintf("%.2f%%", 100*eq)))
	}
	return nil
}

// evaluate finds the best five of 5 to 7 cards
func evaluate(cards string) ([]deck.Card, evaluator.HandScore, error) {
	parsed, err := parseDistinct(cards)
	if err != nil {
		return nil, evaluator.HandScore{}, err
	}
	if len(parsed) < evaluator.HandSize {
		return nil, evaluator.HandScore{}, fmt.Errorf("need 5 to 7 cards, got %d", len(parsed))
	}
	best, score := evaluator.FindBest(parsed)
	return best, score, nil
}

// equity treats the first two cards as the hole and the rest as the board
func equity(ctx context.Context, cards []deck.Card, opponents, samples int, seed int64) (float64, error) {
	if len(cards) < 2 {
		return 0, errors.New("equity needs two hole cards")
	}
	return evaluator.Equity(ctx, cards[:2], cards[2:], opponents, samples, seed)
}

func parseDistinct(cards string) ([]deck.Card, error) {
	parsed, err := deck.ParseCards(cards)
	if err != nil {
		return nil, err
	}
	if len(parsed) > 7 {
		return nil, fmt.Errorf("at most 7 cards, got %d", len(parsed))
	}
	seen := make(map[deck.Card]bool, len(parsed))
	for _, card := range parsed {
		if seen[card] {
			return nil, fmt.Errorf("duplicate card %s", card)
		}
		seen[card] = true
	}
	return parsed, nil
}
