package game

import (
	"fmt"
	"io"
	"maps"
	rand "math/rand/v2"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/lox/pokerarena/internal/deck"
	"github.com/lox/pokerarena/internal/evaluator"
)

// Phase is a step of the hand state machine
type Phase int

const (
	PhasePostBlinds Phase = iota
	PhasePreflopBetting
	PhaseDealFlop
	PhaseFlopBetting
	PhaseDealTurn
	PhaseTurnBetting
	PhaseDealRiver
	PhaseRiverBetting
	PhaseShowdown
	PhaseDone
)

var phaseNames = [...]string{
	"post_blinds", "preflop_betting",
	"deal_flop", "flop_betting",
	"deal_turn", "turn_betting",
	"deal_river", "river_betting",
	"showdown", "done",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// street maps a deal or betting phase to the street it belongs to
func (p Phase) street() Street {
	switch {
	case p <= PhasePreflopBetting:
		return Preflop
	case p >= PhaseShowdown:
		return River
	default:
		return Street((p-PhaseDealFlop)/2 + 1)
	}
}

// HandConfig holds the collaborators a hand cannot run without
type HandConfig struct {
	Rotation *BlindRotation
	Bankroll Bankroll
	Variant  GameVariant // defaults to Holdem
	Limit    BetLimit    // defaults to NoLimit
}

// Pending is the decision a hand is suspended on. The hand resumes when the
// seat's action or timeout is fed back through Act or Timeout.
type Pending struct {
	HandID    string
	Seat      Seat
	Street    Street
	ToCall    int
	MinRaise  int
	Pot       int
	Stack     int
	CanCheck  bool
	HoleCards []deck.Card
	Board     []deck.Card
}

// Request builds the question put to the seat's actor
func (p *Pending) Request(budget time.Duration) ActionRequest {
	return ActionRequest{
		HandID:    p.HandID,
		Seat:      p.Seat,
		Street:    p.Street,
		ToCall:    p.ToCall,
		MinRaise:  p.MinRaise,
		Pot:       p.Pot,
		Stack:     p.Stack,
		CanCheck:  p.CanCheck,
		Budget:    budget,
		HoleCards: p.HoleCards,
		Board:     p.Board,
	}
}

// ShowdownHand is what a seat turned over at showdown
type ShowdownHand struct {
	Hole  []deck.Card
	Best  []deck.Card
	Score evaluator.HandScore
}

// Result is the outcome of a completed hand. Winners are the seats that
// took the main pot; Won also includes side pots and uncalled chips.
type Result struct {
	HandID   string
	Winners  []Seat
	Won      map[Seat]int
	Pot      int
	Board    []deck.Card
	Showdown map[Seat]ShowdownHand
	EndPhase Phase
}

// Hand runs one hand as a suspend/resume state machine. Start and each call
// to Act or Timeout run the machine until the next decision is needed, which
// is returned as a Pending, or the hand is over, in which case Pending is
// nil. A Hand is driven by a single caller.
type Hand struct {
	id       string
	seats    []Seat // small blind first
	rotation *BlindRotation
	bankroll Bankroll
	variant  GameVariant
	limit    BetLimit
	deck     *deck.Deck
	bus      EventBus
	logger   *log.Logger

	phase       Phase
	bigBlind    int
	hole        map[Seat][]deck.Card
	board       []deck.Card
	round       *BettingRound
	contributed map[Seat]int // chips put in over the whole hand
	pending     *Pending
	result      *Result
}

// NewHand creates a hand for the seats currently in the rotation.
func NewHand(cfg HandConfig, opts ...HandOption) *Hand {
	if cfg.Rotation == nil {
		panic("blind rotation is required for hand creation")
	}
	if cfg.Bankroll == nil {
		panic("bankroll is required for hand creation")
	}

	hc := &handConfig{}
	for _, opt := range opts {
		opt(hc)
	}

	h := &Hand{
		id:          hc.handID,
		seats:       cfg.Rotation.Order(),
		rotation:    cfg.Rotation,
		bankroll:    cfg.Bankroll,
		variant:     cfg.Variant,
		limit:       cfg.Limit,
		deck:        hc.deck,
		bus:         hc.bus,
		logger:      hc.logger,
		hole:        make(map[Seat][]deck.Card),
		contributed: make(map[Seat]int),
	}
	if h.id == "" {
		h.id = uuid.NewString()
	}
	if h.variant == nil {
		h.variant = Holdem{}
	}
	if h.limit == nil {
		h.limit = NoLimit{}
	}
	if h.bus == nil {
		h.bus = NewEventBus()
	}
	if h.logger == nil {
		h.logger = log.New(io.Discard)
	}
	if h.deck == nil {
		rng := hc.rng
		if rng == nil {
			rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
		h.deck = deck.NewDeck(rng)
	}
	return h
}

// Start deals hole cards, posts the blinds and runs to the first decision.
func (h *Hand) Start() (*Pending, error) {
	if h.phase != PhasePostBlinds {
		return nil, fmt.Errorf("hand %s already started", h.id)
	}
	if err := h.validateSeats(); err != nil {
		return nil, err
	}

	stacks := make(map[Seat]int, len(h.seats))
	for _, s := range h.seats {
		stacks[s] = h.bankroll.Stack(s)
		cards, err := h.deck.Deal(h.variant.HandSize())
		if err != nil {
			return nil, fmt.Errorf("deal hole cards: %w", err)
		}
		h.hole[s] = cards
	}

	sb, sbSeat := h.rotation.NextSmallBlind()
	bb, bbSeat := h.rotation.NextBigBlind()
	h.bigBlind = bb
	start := NewHandStartEvent(h.id, h.seats, stacks, sb, bb)
	start.Hole = maps.Clone(h.hole)
	h.bus.Publish(start)

	existing := make(map[Seat]int, 2)
	var allIn []Seat
	for _, blind := range []struct {
		seat   Seat
		amount int
	}{{sbSeat, sb}, {bbSeat, bb}} {
		posted := h.bankroll.Deduct(blind.seat, blind.amount)
		existing[blind.seat] = posted
		h.contributed[blind.seat] += posted
		if h.bankroll.Stack(blind.seat) == 0 {
			allIn = append(allIn, blind.seat)
		}
	}

	h.round = NewBettingRound(h.seats, existing, 0, bb, WithAllIn(allIn...))
	h.bus.Publish(NewBlindsPostedEvent(h.id, sbSeat, existing[sbSeat], bbSeat, existing[bbSeat], h.round.Pot()))
	h.logger.Debug("Blinds posted", "hand", h.id, "sb", sbSeat, "bb", bbSeat, "pot", h.round.Pot())

	h.phase = PhasePreflopBetting
	return h.advance()
}

func (h *Hand) validateSeats() error {
	n := len(h.seats)
	if n < max(2, h.variant.MinPlayers()) {
		return fmt.Errorf("%w: %d seats for %s", ErrNotEnoughSeats, n, h.variant.Name())
	}
	if n > h.variant.MaxPlayers() {
		return fmt.Errorf("too many seats: %d for %s", n, h.variant.Name())
	}
	seen := make(map[Seat]bool, n)
	for _, s := range h.seats {
		if s == "" {
			return fmt.Errorf("empty seat name")
		}
		if seen[s] {
			return fmt.Errorf("duplicate seat %q", s)
		}
		seen[s] = true
	}
	return nil
}

// Act resumes the hand with the seat's decision
func (h *Hand) Act(seat Seat, action Action) (*Pending, error) {
	if err := h.checkTurn(seat); err != nil {
		return nil, err
	}
	h.apply(seat, action, false)
	return h.advance()
}

// Timeout resumes the hand for a seat that did not answer in time. The seat
// checks when that is free and folds otherwise.
func (h *Hand) Timeout(seat Seat) (*Pending, error) {
	if err := h.checkTurn(seat); err != nil {
		return nil, err
	}
	action := Action{Kind: Fold}
	if h.pending.CanCheck {
		action.Kind = Check
	}
	h.apply(seat, action, true)
	return h.advance()
}

func (h *Hand) checkTurn(seat Seat) error {
	if h.phase == PhaseDone {
		return ErrHandComplete
	}
	if h.pending == nil || h.pending.Seat != seat {
		return fmt.Errorf("%w: %s", ErrNotYourTurn, seat)
	}
	return nil
}

// advance runs the machine until a seat must decide or the hand ends
func (h *Hand) advance() (*Pending, error) {
	for {
		switch h.phase {
		case PhasePreflopBetting, PhaseFlopBetting, PhaseTurnBetting, PhaseRiverBetting:
			if seat, ok := h.round.NextToAct(); ok {
				h.pending = h.pendingFor(seat)
				return h.pending, nil
			}
			if live := h.round.RemainingPlayers(); len(live) == 1 {
				h.awardUncontested(live[0])
				return nil, nil
			}
			h.phase++

		case PhaseDealFlop, PhaseDealTurn, PhaseDealRiver:
			if err := h.dealStreet(); err != nil {
				return nil, err
			}

		case PhaseShowdown:
			h.showdown()
			return nil, nil

		default:
			return nil, nil
		}
	}
}

func (h *Hand) pendingFor(seat Seat) *Pending {
	toCall := h.round.ToCall(seat)
	return &Pending{
		HandID:    h.id,
		Seat:      seat,
		Street:    h.phase.street(),
		ToCall:    toCall,
		MinRaise:  h.round.MinRaise(),
		Pot:       h.round.Pot(),
		Stack:     h.bankroll.Stack(seat),
		CanCheck:  toCall == 0,
		HoleCards: slices.Clone(h.hole[seat]),
		Board:     slices.Clone(h.board),
	}
}

// apply translates a decision into bets on the round. Decisions are never
// rejected: undersized or unaffordable bets become all-ins or folds.
func (h *Hand) apply(seat Seat, action Action, timedOut bool) {
	h.pending = nil
	street := h.phase.street()
	before := h.round.CurrentBet()

	resolved := Action{Kind: Fold}
	posted, allIn := 0, false

	switch action.Kind {
	case Fold:
		h.round.PostFold(seat)

	case Check:
		// checking into a bet gives up the hand
		if h.round.PostBet(seat, 0, false) {
			resolved.Kind = Check
		}

	default:
		want := h.round.ToCall(seat)
		if action.Kind == Raise {
			raise := max(action.Amount, h.round.MinRaise())
			if h.limit.IsLegal(h.round.Pot(), raise) {
				want += raise
			}
		}

		stack := h.bankroll.Stack(seat)
		posted = h.bankroll.Deduct(seat, want)
		allIn = posted < want || posted == stack

		if !h.round.PostBet(seat, posted, allIn) {
			h.bankroll.Credit(seat, posted)
			posted, allIn = 0, false
			break
		}
		h.contributed[seat] += posted

		switch after := h.round.CurrentBet(); {
		case after > before:
			resolved = Action{Kind: Raise, Amount: after - before}
		case posted == 0:
			resolved.Kind = Check
		default:
			resolved.Kind = Call
		}
	}

	pot := h.round.Pot()
	h.bus.Publish(NewPlayerActionEvent(h.id, seat, street, resolved, posted, allIn, timedOut, pot))
	h.logger.Debug("Action", "hand", h.id, "seat", seat, "street", street, "action", resolved, "amount", posted, "pot", pot, "timeout", timedOut)
}

// dealStreet reveals the next community cards and opens a fresh round for
// the seats still staked. With fewer than two seats able to bet the street
// is run out without betting.
func (h *Hand) dealStreet() error {
	street := h.phase.street()
	cards, err := h.deck.Deal(h.variant.DealPattern()[street])
	if err != nil {
		return fmt.Errorf("deal %s: %w", street, err)
	}
	h.board = append(h.board, cards...)

	pot := h.round.Pot()
	live := h.round.RemainingPlayers()
	var allIn []Seat
	for _, s := range live {
		if h.round.IsAllIn(s) {
			allIn = append(allIn, s)
		}
	}
	h.round = NewBettingRound(live, nil, pot, h.bigBlind, WithAllIn(allIn...))
	h.bus.Publish(NewStreetChangeEvent(h.id, street, h.board, pot))
	h.logger.Debug("Street", "hand", h.id, "street", street, "board", deck.FormatCards(h.board), "pot", pot)

	if len(live)-len(allIn) < 2 {
		h.phase += 2
	} else {
		h.phase++
	}
	return nil
}

func (h *Hand) awardUncontested(winner Seat) {
	pot := h.round.Pot()
	h.bankroll.Credit(winner, pot)
	h.finish(Result{
		HandID:   h.id,
		Winners:  []Seat{winner},
		Won:      map[Seat]int{winner: pot},
		Pot:      pot,
		Board:    slices.Clone(h.board),
		EndPhase: h.phase,
	})
}

func (h *Hand) showdown() {
	live := h.round.RemainingPlayers()
	hands := make(map[Seat]ShowdownHand, len(live))
	scores := make(map[Seat]evaluator.HandScore, len(live))
	for _, s := range live {
		best, score := evaluator.FindBest(append(slices.Clone(h.hole[s]), h.board...))
		hands[s] = ShowdownHand{Hole: slices.Clone(h.hole[s]), Best: best, Score: score}
		scores[s] = score
	}

	pots := CalculateSidePots(h.seats, h.contributed, h.round.IsStaked)
	won := AwardPots(pots, scores)
	for _, s := range h.seats {
		if won[s] > 0 {
			h.bankroll.Credit(s, won[s])
		}
	}

	var winners []Seat
	if len(pots) > 0 {
		winners = bestScoring(pots[0].Eligible, scores)
	}
	h.finish(Result{
		HandID:   h.id,
		Winners:  winners,
		Won:      won,
		Pot:      h.round.Pot(),
		Board:    slices.Clone(h.board),
		Showdown: hands,
		EndPhase: PhaseShowdown,
	})
}

func (h *Hand) finish(result Result) {
	h.phase = PhaseDone
	h.result = &result
	leveled := h.rotation.AdvanceHand()

	h.logger.Debug("Hand complete", "hand", h.id, "winners", result.Winners, "pot", result.Pot, "ended", result.EndPhase)
	h.bus.Publish(NewHandEndEvent(result))
	if leveled {
		small, big := h.rotation.Blinds()
		h.bus.Publish(NewBlindLevelEvent(h.rotation.Level(), small, big))
	}
}

// ID returns the hand identifier
func (h *Hand) ID() string { return h.id }

// Phase returns where the state machine is suspended
func (h *Hand) Phase() Phase { return h.phase }

// Seats returns the seats dealt in, small blind first
func (h *Hand) Seats() []Seat { return slices.Clone(h.seats) }

// Pending returns the outstanding decision, if any
func (h *Hand) Pending() *Pending { return h.pending }

// Result returns the outcome once the hand is done
func (h *Hand) Result() (Result, bool) {
	if h.result == nil {
		return Result{}, false
	}
	return *h.result, true
}

// Pot returns the chips in the middle
func (h *Hand) Pot() int {
	if h.round == nil {
		return 0
	}
	return h.round.Pot()
}

// Board returns the community cards dealt so far
func (h *Hand) Board() []deck.Card { return slices.Clone(h.board) }

// HoleCards returns the cards dealt to seat
func (h *Hand) HoleCards(seat Seat) []deck.Card { return slices.Clone(h.hole[seat]) }
