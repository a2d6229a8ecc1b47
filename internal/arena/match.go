// Package arena runs matches between bots: hand after hand on a shared
// bankroll, with blind escalation, per-seat time banks and elimination.
package arena

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokerarena/internal/deck"
	"github.com/lox/pokerarena/internal/game"
	"github.com/lox/pokerarena/internal/matchid"
	"github.com/lox/pokerarena/internal/stats"
)

var (
	// ErrChipConservation means chips were created or destroyed by a hand
	ErrChipConservation = errors.New("chip conservation violated")

	// ErrInvalidMatch is returned for a match that cannot be played
	ErrInvalidMatch = errors.New("invalid match")
)

// Player is a named seat and the actor deciding for it
type Player struct {
	Name  game.Seat
	Actor game.Actor
}

// Config holds the rules of a match
type Config struct {
	StartingChips int
	SmallBlind    int
	BigBlind      int
	HandsPerLevel int // blinds double every this many hands; 0 disables
	MaxHands      int // 0 plays until one seat has all the chips
	TimePerMove   time.Duration
	TimeBank      time.Duration
	MaxTimeouts   int // a seat exceeding this many timeouts is eliminated; negative disables
	Seed          int64
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		StartingChips: 1000,
		SmallBlind:    10,
		BigBlind:      20,
		HandsPerLevel: 50,
		MaxHands:      1000,
		TimePerMove:   time.Second,
		TimeBank:      5 * time.Second,
		MaxTimeouts:   3,
	}
}

// Result summarises a finished match
type Result struct {
	ID         string
	Winners    []game.Seat // seats with the most chips among those remaining
	Stacks     map[game.Seat]int
	Hands      int
	Eliminated []game.Seat // in elimination order
	Timeouts   map[game.Seat]int
	Stats      *stats.Collector
}

// Match plays hands until a single seat remains or the hand limit is hit
type Match struct {
	id       string
	cfg      Config
	actors   map[game.Seat]game.Actor
	bankroll *Bankroll
	rotation *game.BlindRotation
	banks    map[game.Seat]*TimeBank
	timeouts map[game.Seat]int
	out      map[game.Seat]bool // eliminated for timing out, pending removal
	gone     []game.Seat
	total    int
	hands    int
	rng      *rand.Rand
	stats    *stats.Collector

	clock  quartz.Clock
	logger *log.Logger
	bus    game.EventBus
}

// NewMatch seats players in the given order
func NewMatch(cfg Config, players []Player, opts ...MatchOption) (*Match, error) {
	if len(players) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 players, got %d", ErrInvalidMatch, len(players))
	}
	if cfg.SmallBlind <= 0 || cfg.BigBlind < cfg.SmallBlind {
		return nil, fmt.Errorf("%w: bad blinds %d/%d", ErrInvalidMatch, cfg.SmallBlind, cfg.BigBlind)
	}
	if cfg.StartingChips <= 0 {
		return nil, fmt.Errorf("%w: starting chips must be positive", ErrInvalidMatch)
	}

	seats := make([]game.Seat, 0, len(players))
	actors := make(map[game.Seat]game.Actor, len(players))
	banks := make(map[game.Seat]*TimeBank, len(players))
	for _, p := range players {
		if p.Name == "" || p.Actor == nil {
			return nil, fmt.Errorf("%w: player needs a name and an actor", ErrInvalidMatch)
		}
		if _, dup := actors[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate player %q", ErrInvalidMatch, p.Name)
		}
		seats = append(seats, p.Name)
		actors[p.Name] = p.Actor
		banks[p.Name] = NewTimeBank(cfg.TimePerMove, cfg.TimeBank)
	}

	m := &Match{
		cfg:      cfg,
		actors:   actors,
		bankroll: NewBankroll(seats, cfg.StartingChips),
		rotation: game.NewBlindRotation(seats, cfg.SmallBlind, cfg.BigBlind, cfg.HandsPerLevel),
		banks:    banks,
		timeouts: make(map[game.Seat]int),
		out:      make(map[game.Seat]bool),
		total:    cfg.StartingChips * len(seats),
		stats:    stats.NewCollector(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.id == "" {
		m.id = matchid.New()
	}
	if m.clock == nil {
		m.clock = quartz.NewReal()
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	if m.bus == nil {
		m.bus = game.NewEventBus()
	}
	m.logger = m.logger.WithPrefix("arena").With("match", m.id)
	m.bus.Subscribe(m.stats)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	m.rng = deck.NewRand(seed)

	return m, nil
}

// ID returns the match identifier
func (m *Match) ID() string { return m.id }

// Bankroll returns the match's chip stacks
func (m *Match) Bankroll() *Bankroll { return m.bankroll }

// Remaining returns the seats still in the match, small blind first
func (m *Match) Remaining() []game.Seat { return m.rotation.Order() }

// Run plays the match to completion
func (m *Match) Run(ctx context.Context) (*Result, error) {
	m.logger.Info("Match starting", "seats", m.rotation.Seats(), "chips", m.cfg.StartingChips)

	for len(m.rotation.Seats()) > 1 && (m.cfg.MaxHands <= 0 || m.hands < m.cfg.MaxHands) {
		if err := m.PlayHand(ctx); err != nil {
			return m.result(), err
		}
	}

	result := m.result()
	m.logger.Info("Match over", "winners", result.Winners, "hands", result.Hands)
	return result, nil
}

// PlayHand plays a single hand and settles eliminations afterwards
func (m *Match) PlayHand(ctx context.Context) error {
	hand := game.NewHand(
		game.HandConfig{Rotation: m.rotation, Bankroll: m.bankroll},
		game.WithRNG(deck.NewRand(m.rng.Int64())),
		game.WithEventBus(m.bus),
		game.WithHandID(fmt.Sprintf("%s-%d", m.id, m.hands+1)),
		game.WithLogger(m.logger),
	)

	pending, err := hand.Start()
	for pending != nil && err == nil {
		seat := pending.Seat
		if m.out[seat] {
			pending, err = hand.Act(seat, game.Action{Kind: game.Fold})
			continue
		}

		action, timedOut, aerr := m.await(ctx, pending)
		if aerr != nil {
			return aerr
		}
		if timedOut {
			m.timedOut(seat)
			pending, err = hand.Timeout(seat)
			continue
		}
		pending, err = hand.Act(seat, action)
	}
	if err != nil {
		return fmt.Errorf("hand %s: %w", hand.ID(), err)
	}

	m.hands++
	m.eliminate()
	return m.checkConservation()
}

// await asks the seat's actor for a decision within its time budget
func (m *Match) await(ctx context.Context, pending *game.Pending) (game.Action, bool, error) {
	bank := m.banks[pending.Seat]
	budget := bank.Budget()

	actx, cancel := context.WithCancel(ctx)
	defer cancel()

	expired := make(chan struct{})
	timer := m.clock.AfterFunc(budget, func() { close(expired) })
	defer timer.Stop()

	type reply struct {
		action game.Action
		err    error
	}
	replies := make(chan reply, 1)
	start := m.clock.Now()
	actor := m.actors[pending.Seat]
	req := pending.Request(budget)
	go func() {
		action, err := actor.RequestAction(actx, req)
		replies <- reply{action, err}
	}()

	select {
	case r := <-replies:
		bank.Spend(m.clock.Since(start))
		if r.err != nil {
			m.logger.Warn("Actor failed, folding", "seat", pending.Seat, "error", r.err)
			return game.Action{Kind: game.Fold}, false, nil
		}
		return r.action, false, nil
	case <-expired:
		bank.Spend(budget)
		return game.Action{}, true, nil
	case <-ctx.Done():
		return game.Action{}, false, ctx.Err()
	}
}

func (m *Match) timedOut(seat game.Seat) {
	m.timeouts[seat]++
	count := m.timeouts[seat]
	m.logger.Warn("Decision timed out", "seat", seat, "timeouts", count)

	if m.cfg.MaxTimeouts >= 0 && count > m.cfg.MaxTimeouts && !m.out[seat] {
		m.out[seat] = true
		m.logger.Warn("Too many timeouts, eliminating", "seat", seat)
	}
}

// eliminate removes busted and timed out seats from the rotation
func (m *Match) eliminate() {
	for _, seat := range m.rotation.Seats() {
		if m.out[seat] || m.bankroll.Stack(seat) == 0 {
			m.rotation.Eliminate(seat)
			m.gone = append(m.gone, seat)
			m.logger.Info("Seat eliminated", "seat", seat, "stack", m.bankroll.Stack(seat))
		}
	}
}

func (m *Match) checkConservation() error {
	if total := m.bankroll.Total(); total != m.total {
		err := fmt.Errorf("%w: expected %d chips, have %d after hand %d",
			ErrChipConservation, m.total, total, m.hands)
		m.logger.Error("Chip conservation check failed", "error", err)
		return err
	}
	return nil
}

func (m *Match) result() *Result {
	stacks := m.bankroll.Stacks()

	var winners []game.Seat
	best := -1
	for _, seat := range m.rotation.Seats() {
		switch chips := stacks[seat]; {
		case chips > best:
			best = chips
			winners = []game.Seat{seat}
		case chips == best:
			winners = append(winners, seat)
		}
	}

	timeouts := make(map[game.Seat]int, len(m.timeouts))
	for seat, n := range m.timeouts {
		timeouts[seat] = n
	}

	return &Result{
		ID:         m.id,
		Winners:    winners,
		Stacks:     stacks,
		Hands:      m.hands,
		Eliminated: slices.Clone(m.gone),
		Timeouts:   timeouts,
		Stats:      m.stats,
	}
}
