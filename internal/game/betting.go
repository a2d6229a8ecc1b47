package game

// BettingRound adjudicates one street of no-limit wagering over an ordered
// list of seats. It is created fresh for each street and is not safe for
// concurrent use.
type BettingRound struct {
	seats []Seat
	bets  map[Seat]int // total wagered this street; a seat leaves on fold
	allIn map[Seat]bool
	pot   int

	// currentBet is the amount every live seat must reach to stay in. It is
	// a call ceiling, not a segregated side pot.
	currentBet int
	minRaise   int

	// highBettor is the seat the action must return to for the round to
	// end. Blinds never set it, which is what gives the big blind its option.
	highBettor Seat
	bigBlind   Seat

	turn     int
	finished bool
}

// RoundOption configures a BettingRound during creation
type RoundOption func(*BettingRound)

// WithAllIn marks seats that have no chips behind, e.g. because posting a
// blind consumed their stack. They stay in the pot but never act.
func WithAllIn(seats ...Seat) RoundOption {
	return func(br *BettingRound) {
		for _, s := range seats {
			if _, ok := br.bets[s]; ok {
				br.allIn[s] = true
			}
		}
	}
}

// NewBettingRound starts a street. existing holds amounts already posted
// this street (blinds) and is added to pot. The first seat without an
// existing bet acts first; if every seat has posted, the lowest bet acts
// first.
func NewBettingRound(seats []Seat, existing map[Seat]int, pot, minRaise int, opts ...RoundOption) *BettingRound {
	br := &BettingRound{
		seats:    append([]Seat(nil), seats...),
		bets:     make(map[Seat]int, len(seats)),
		allIn:    make(map[Seat]bool),
		pot:      pot,
		minRaise: minRaise,
		turn:     -1,
	}

	highest, highCount := 0, 0
	lowestIdx := -1
	for i, s := range br.seats {
		bet, posted := existing[s]
		br.bets[s] = bet
		if !posted {
			if br.turn == -1 {
				br.turn = i
			}
			continue
		}

		br.pot += bet
		switch {
		case bet > highest:
			highest, highCount = bet, 1
			br.bigBlind = s
		case bet == highest:
			highCount++
		}
		if lowestIdx == -1 || bet < br.bets[br.seats[lowestIdx]] {
			lowestIdx = i
		}
	}

	br.currentBet = highest
	if highCount != 1 {
		br.bigBlind = ""
	}
	if br.turn == -1 {
		br.turn = max(lowestIdx, 0)
	}
	br.finished = len(br.bets) < 2

	for _, opt := range opts {
		opt(br)
	}
	return br
}

// NextToAct returns the seat whose decision is pending. ok is false once
// the round is over.
func (br *BettingRound) NextToAct() (Seat, bool) {
	idx, ok := br.next()
	if !ok {
		return "", false
	}
	return br.seats[idx], true
}

// next scans forward from the turn cursor over folded and all-in seats,
// stopping when it reaches the seat the action must return to.
func (br *BettingRound) next() (int, bool) {
	if br.finished || len(br.seats) == 0 {
		return -1, false
	}
	for i := 0; i < len(br.seats); i++ {
		idx := (br.turn + i) % len(br.seats)
		s := br.seats[idx]
		if br.highBettor != "" && s == br.highBettor {
			return -1, false
		}
		if br.IsStaked(s) && !br.allIn[s] {
			return idx, true
		}
	}
	return -1, false
}

// take validates that seat holds the turn and moves the cursor past it
func (br *BettingRound) take(seat Seat) {
	idx, ok := br.next()
	if !ok || br.seats[idx] != seat {
		panic(ErrOutOfTurn)
	}
	br.turn = (idx + 1) % len(br.seats)
}

// PostBet records amount more chips from seat, which must be next to act.
// A bet that leaves the seat short of the current bet is accepted only as
// an all-in; otherwise the seat folds and PostBet returns false.
func (br *BettingRound) PostBet(seat Seat, amount int, allIn bool) bool {
	br.take(seat)

	total := br.bets[seat] + amount
	if total < br.currentBet && !allIn {
		br.fold(seat)
		return false
	}

	br.pot += amount
	br.bets[seat] = total
	if allIn {
		br.allIn[seat] = true
	}

	switch {
	case total > br.currentBet:
		if raise := total - br.currentBet; raise > br.minRaise {
			br.minRaise = raise
		}
		br.currentBet = total
		br.highBettor = seat
	case br.highBettor == "":
		// first voluntary action of the street opens the orbit
		br.highBettor = seat
	}
	return true
}

// PostFold removes seat, which must be next to act, from the round
func (br *BettingRound) PostFold(seat Seat) {
	br.take(seat)
	br.fold(seat)
}

func (br *BettingRound) fold(seat Seat) {
	delete(br.bets, seat)
	delete(br.allIn, seat)
	if len(br.bets) <= 1 {
		br.finished = true
	}
}

// ToCall returns the chips seat needs to add to match the current bet
func (br *BettingRound) ToCall(seat Seat) int {
	return max(br.currentBet-br.bets[seat], 0)
}

// CheckBetSize reports whether adding amount brings seat up to the current bet
func (br *BettingRound) CheckBetSize(seat Seat, amount int) bool {
	return br.bets[seat]+amount >= br.currentBet
}

// IsStaked reports whether seat is still contesting the pot
func (br *BettingRound) IsStaked(seat Seat) bool {
	_, ok := br.bets[seat]
	return ok
}

// IsAllIn reports whether seat has committed its whole stack
func (br *BettingRound) IsAllIn(seat Seat) bool {
	return br.allIn[seat]
}

// RemainingPlayers returns the staked seats in seat order
func (br *BettingRound) RemainingPlayers() []Seat {
	remaining := make([]Seat, 0, len(br.bets))
	for _, s := range br.seats {
		if br.IsStaked(s) {
			remaining = append(remaining, s)
		}
	}
	return remaining
}

// Finished reports whether no further decisions are pending
func (br *BettingRound) Finished() bool {
	_, ok := br.next()
	return !ok
}

func (br *BettingRound) Pot() int         { return br.pot }
func (br *BettingRound) CurrentBet() int  { return br.currentBet }
func (br *BettingRound) MinRaise() int    { return br.minRaise }
func (br *BettingRound) HighBettor() Seat { return br.highBettor }
func (br *BettingRound) BigBlind() Seat   { return br.bigBlind }

// Bet returns what seat has wagered this street
func (br *BettingRound) Bet(seat Seat) int {
	return br.bets[seat]
}
