// Package matchid generates sortable match identifiers: a UUIDv7 rendered
// as 26 characters of lowercase Crockford base32, as TypeID does.
package matchid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	alphabet = "0123456789abcdefghjkmnpqrstvwxyz"
	length   = 26
)

// New returns a fresh match ID. IDs generated later sort after earlier ones.
func New() string {
	return Encode(uuid.Must(uuid.NewV7()))
}

// Encode renders id as a 26 character base32 string. The 128 bits are
// treated as a 130 bit number with two leading zero bits, so the first
// character is always 0-7.
func Encode(id uuid.UUID) string {
	bit := func(n int) byte {
		n -= 2
		if n < 0 {
			return 0
		}
		return (id[n/8] >> (7 - n%8)) & 1
	}

	out := make([]byte, length)
	for i := range length {
		var v byte
		for j := range 5 {
			v = v<<1 | bit(i*5+j)
		}
		out[i] = alphabet[v]
	}
	return string(out)
}

// Decode parses an ID produced by Encode
func Decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := range length {
		v := strings.IndexByte(alphabet, s[i])
		for j := range 5 {
			n := i*5 + j - 2
			if n < 0 || (v>>(4-j))&1 == 0 {
				continue
			}
			id[n/8] |= 1 << (7 - n%8)
		}
	}
	return id, nil
}

// Validate checks that s is a well-formed ID
func Validate(s string) error {
	if len(s) != length {
		return fmt.Errorf("match id must be %d characters, got %d", length, len(s))
	}
	if s[0] > '7' {
		return fmt.Errorf("match id first character %q exceeds '7'", s[0])
	}
	for i := range len(s) {
		if strings.IndexByte(alphabet, s[i]) < 0 {
			return fmt.Errorf("match id has invalid character %q at %d", s[i], i)
		}
	}
	return nil
}
