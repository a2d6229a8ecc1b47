package matchid

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id := New()
	assert.Len(t, id, 26)
	require.NoError(t, Validate(id))
}

func TestNewUniqueAndSorted(t *testing.T) {
	seen := make(map[string]bool)
	prev := ""
	for range 10 {
		id := New()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		assert.Greater(t, id, prev)
		prev = id
		time.Sleep(time.Millisecond)
	}
}

func TestEncodeDecode(t *testing.T) {
	id := uuid.Must(uuid.NewV7())
	decoded, err := Decode(Encode(id))
	require.NoError(t, err)
	assert.Equal(t, id, decoded)

	var full uuid.UUID
	for i := range full {
		full[i] = 0xff
	}
	assert.Equal(t, "7zzzzzzzzzzzzzzzzzzzzzzzzz", Encode(full))
	assert.Equal(t, "00000000000000000000000000", Encode(uuid.Nil))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"excluded letter", "01h5n0et5q6mt3v7ms1234abci", true},
		{"uppercase", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
