package arena

import (
	"sync"
	"time"
)

// TimeBank tracks a seat's thinking time. Every move gets a fixed allowance
// plus whatever is left in the bank; running past the allowance draws the
// bank down and finishing early tops it back up to its maximum.
type TimeBank struct {
	mu      sync.Mutex
	perMove time.Duration
	max     time.Duration
	bank    time.Duration
}

// NewTimeBank returns a full bank
func NewTimeBank(perMove, bank time.Duration) *TimeBank {
	return &TimeBank{perMove: perMove, max: bank, bank: bank}
}

// Budget is the longest the next move may take
func (tb *TimeBank) Budget() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.perMove + tb.bank
}

// Spend charges a move that took elapsed
func (tb *TimeBank) Spend(elapsed time.Duration) {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if elapsed > tb.perMove {
		tb.bank = max(tb.bank-(elapsed-tb.perMove), 0)
		return
	}
	tb.bank = min(tb.bank+(tb.perMove-elapsed), tb.max)
}

// Remaining returns the banked time
func (tb *TimeBank) Remaining() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return tb.bank
}
