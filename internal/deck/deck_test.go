package deck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullDeckUnique(t *testing.T) {
	cards := FullDeck()
	require.Len(t, cards, 52)

	seen := make(map[Card]bool)
	for _, c := range cards {
		assert.True(t, c.Valid())
		assert.False(t, seen[c], "duplicate %s", c)
		seen[c] = true
	}
}

func TestDeckDealWithoutReplacement(t *testing.T) {
	d := NewDeck(NewRand(42))

	seen := make(map[Card]bool)
	for d.Remaining() > 0 {
		cards, err := d.Deal(4)
		require.NoError(t, err)
		for _, c := range cards {
			require.False(t, seen[c], "card %s dealt twice", c)
			seen[c] = true
		}
	}
	assert.Len(t, seen, 52)

	_, err := d.Deal(1)
	assert.True(t, errors.Is(err, ErrDeckExhausted))
}

func TestDeckSeedIsDeterministic(t *testing.T) {
	a, err := NewDeck(NewRand(7)).Deal(52)
	require.NoError(t, err)
	b, err := NewDeck(NewRand(7)).Deal(52)
	require.NoError(t, err)
	c, err := NewDeck(NewRand(8)).Deal(52)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestStackedDeck(t *testing.T) {
	top := MustParseCards("AsKsQd")
	d, err := NewStackedDeck(top)
	require.NoError(t, err)
	assert.Equal(t, 52, d.Remaining())

	dealt, err := d.Deal(3)
	require.NoError(t, err)
	assert.Equal(t, top, dealt)

	rest, err := d.Deal(49)
	require.NoError(t, err)
	for _, c := range rest {
		assert.NotContains(t, top, c)
	}

	_, err = NewStackedDeck(MustParseCards("AsAs"))
	assert.Error(t, err)
}
