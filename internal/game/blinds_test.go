package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fiveSeats() []Seat { return []Seat{"a", "b", "c", "d", "e"} }

func TestBlindRotationStart(t *testing.T) {
	r := NewBlindRotation(fiveSeats(), 10, 20, 5)

	amount, sb := r.NextSmallBlind()
	assert.Equal(t, 10, amount)
	assert.Equal(t, Seat("a"), sb)

	amount, bb := r.NextBigBlind()
	assert.Equal(t, 20, amount)
	assert.Equal(t, Seat("b"), bb)
	assert.Equal(t, 1, r.Level())
}

func TestBlindRotationAdvance(t *testing.T) {
	r := NewBlindRotation(fiveSeats(), 10, 20, 5)
	r.AdvanceHand()

	_, sb := r.NextSmallBlind()
	_, bb := r.NextBigBlind()
	assert.Equal(t, Seat("b"), sb)
	assert.Equal(t, Seat("c"), bb)
	assert.Equal(t, []Seat{"b", "c", "d", "e", "a"}, r.Order())
}

func TestBlindRotationBigBlindWraps(t *testing.T) {
	r := NewBlindRotation(fiveSeats(), 10, 20, 0)
	for range 4 {
		r.AdvanceHand()
	}

	_, sb := r.NextSmallBlind()
	_, bb := r.NextBigBlind()
	assert.Equal(t, Seat("e"), sb)
	assert.Equal(t, Seat("a"), bb)
}

func TestBlindRotationLevels(t *testing.T) {
	r := NewBlindRotation(fiveSeats(), 10, 20, 5)

	for i := 1; i < 5; i++ {
		assert.False(t, r.AdvanceHand(), "hand %d", i)
	}
	assert.True(t, r.AdvanceHand())

	small, big := r.Blinds()
	assert.Equal(t, 20, small)
	assert.Equal(t, 40, big)
	assert.Equal(t, 2, r.Level())

	// the counter restarts for the next level
	for i := 1; i < 5; i++ {
		assert.False(t, r.AdvanceHand())
	}
	assert.True(t, r.AdvanceHand())
	small, big = r.Blinds()
	assert.Equal(t, 40, small)
	assert.Equal(t, 80, big)
}

func TestBlindRotationNoEscalation(t *testing.T) {
	r := NewBlindRotation(fiveSeats(), 10, 20, 0)
	for range 50 {
		assert.False(t, r.AdvanceHand())
	}
	small, big := r.Blinds()
	assert.Equal(t, 10, small)
	assert.Equal(t, 20, big)
}

func TestBlindRotationEliminate(t *testing.T) {
	tests := []struct {
		name      string
		advances  int
		eliminate Seat
		wantSB    Seat
		wantBB    Seat
	}{
		{"small blind seat removed", 2, "c", "d", "e"},
		{"seat before pointer", 3, "c", "d", "e"},
		{"seat after pointer", 1, "d", "b", "c"},
		{"big blind seat removed", 1, "c", "b", "d"},
		{"last seat wraps", 4, "e", "a", "b"},
		{"unknown seat", 1, "z", "b", "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewBlindRotation(fiveSeats(), 10, 20, 0)
			for range tt.advances {
				r.AdvanceHand()
			}
			r.Eliminate(tt.eliminate)

			_, sb := r.NextSmallBlind()
			_, bb := r.NextBigBlind()
			assert.Equal(t, tt.wantSB, sb)
			assert.Equal(t, tt.wantBB, bb)
			assert.NotContains(t, r.Seats(), tt.eliminate)
		})
	}
}

func TestBlindRotationBlindsAlwaysDistinct(t *testing.T) {
	r := NewBlindRotation(fiveSeats(), 10, 20, 3)
	eliminations := map[int]Seat{3: "b", 7: "e", 11: "a"}

	for hand := 0; hand < 20; hand++ {
		if s, ok := eliminations[hand]; ok {
			r.Eliminate(s)
		}
		require.GreaterOrEqual(t, len(r.Seats()), 2)

		_, sb := r.NextSmallBlind()
		_, bb := r.NextBigBlind()
		assert.NotEqual(t, sb, bb, "hand %d", hand)
		assert.Contains(t, r.Seats(), sb)
		assert.Contains(t, r.Seats(), bb)
		r.AdvanceHand()
	}
}
