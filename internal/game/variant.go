package game

// Street represents a betting phase
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

func (s Street) String() string {
	switch s {
	case Preflop:
		return "preflop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	default:
		return "unknown"
	}
}

// GameVariant describes the cards of a poker game: how many hole cards
// each player gets and how community cards are revealed per street.
type GameVariant interface {
	Name() string
	// HandSize is the number of hole cards dealt to each seat
	HandSize() int
	Streets() []Street
	// DealPattern returns the community cards revealed before each street's
	// betting, aligned with Streets.
	DealPattern() []int
	MinPlayers() int
	MaxPlayers() int
}

// BetLimit decides whether a raise is legal for the current pot
type BetLimit interface {
	IsLegal(pot, bet int) bool
}

// Holdem is Texas Hold'em: two hole cards, board dealt 3-1-1
type Holdem struct{}

func (Holdem) Name() string       { return "holdem" }
func (Holdem) HandSize() int      { return 2 }
func (Holdem) Streets() []Street  { return []Street{Preflop, Flop, Turn, River} }
func (Holdem) DealPattern() []int { return []int{0, 3, 1, 1} }
func (Holdem) MinPlayers() int    { return 2 }
func (Holdem) MaxPlayers() int    { return 10 }

// NoLimit allows any positive bet at any time
type NoLimit struct{}

func (NoLimit) IsLegal(pot, bet int) bool {
	return bet > 0
}
