package game

import "slices"

// BlindRotation tracks who posts the blinds and how big they are. The small
// blind moves one seat per hand; the big blind is always the seat after it.
type BlindRotation struct {
	seats         []Seat
	sbIndex       int
	small, big    int
	handsPerLevel int
	handsPlayed   int
	level         int
}

// NewBlindRotation returns a rotation with the small blind on seats[0].
// Blinds double every handsPerLevel hands; zero or less disables escalation.
func NewBlindRotation(seats []Seat, small, big, handsPerLevel int) *BlindRotation {
	return &BlindRotation{
		seats:         append([]Seat(nil), seats...),
		small:         small,
		big:           big,
		handsPerLevel: handsPerLevel,
		level:         1,
	}
}

// NextSmallBlind returns the small blind amount and the seat posting it
func (r *BlindRotation) NextSmallBlind() (int, Seat) {
	if len(r.seats) == 0 {
		return r.small, ""
	}
	return r.small, r.seats[r.sbIndex]
}

// NextBigBlind returns the big blind amount and the seat posting it
func (r *BlindRotation) NextBigBlind() (int, Seat) {
	if len(r.seats) == 0 {
		return r.big, ""
	}
	return r.big, r.seats[(r.sbIndex+1)%len(r.seats)]
}

// Order returns the seats in acting order for the next hand, starting with
// the small blind.
func (r *BlindRotation) Order() []Seat {
	n := len(r.seats)
	order := make([]Seat, 0, n)
	for i := 0; i < n; i++ {
		order = append(order, r.seats[(r.sbIndex+i)%n])
	}
	return order
}

// AdvanceHand moves the blinds one seat and reports whether the blind level
// went up.
func (r *BlindRotation) AdvanceHand() bool {
	if len(r.seats) > 0 {
		r.sbIndex = (r.sbIndex + 1) % len(r.seats)
	}
	r.handsPlayed++
	if r.handsPerLevel <= 0 || r.handsPlayed%r.handsPerLevel != 0 {
		return false
	}
	r.small *= 2
	r.big *= 2
	r.level++
	return true
}

// Eliminate removes seat from the rotation. Seats that have not yet posted
// the small blind keep their place in line.
func (r *BlindRotation) Eliminate(seat Seat) {
	i := slices.Index(r.seats, seat)
	if i < 0 {
		return
	}
	r.seats = slices.Delete(r.seats, i, i+1)
	if i < r.sbIndex {
		r.sbIndex--
	}
	if len(r.seats) == 0 {
		r.sbIndex = 0
		return
	}
	r.sbIndex %= len(r.seats)
}

// Seats returns the seats still in the rotation in table order
func (r *BlindRotation) Seats() []Seat {
	return slices.Clone(r.seats)
}

// Level is the current blind level, starting at 1
func (r *BlindRotation) Level() int { return r.level }

// Blinds returns the current small and big blind amounts
func (r *BlindRotation) Blinds() (small, big int) { return r.small, r.big }
