// Package gameid issues identifiers for server-side game sessions. The
// deal itself is reproducible from its seed alone; a session id names the
// live object holding that deal's undo history.
package gameid

import (
	"crypto/rand"
	"fmt"
)

// Crockford's base32 alphabet: lowercase, no i, l, o, or u, so ids survive
// being read aloud or retyped from a screenshot.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of every session id in characters. Twelve base32 characters carry
// 60 bits, plenty for the handful of concurrent sessions one server holds.
const Length = 12

// RandSource supplies the generator's randomness. Tests inject a
// deterministic source; production uses crypto/rand.
type RandSource interface {
	Intn(n int) int
}

// Generator creates session ids from a configurable randomness source
type Generator struct {
	randSource RandSource
}

// NewGenerator creates a generator. A nil randSource selects crypto/rand.
func NewGenerator(randSource RandSource) *Generator {
	return &Generator{randSource: randSource}
}

// Generate creates a new session id using crypto/rand
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new session id using the generator's RandSource
func (g *Generator) Generate() string {
	id := make([]byte, Length)
	if g.randSource != nil {
		for i := range id {
			id[i] = alphabet[g.randSource.Intn(len(alphabet))]
		}
		return string(id)
	}

	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		panic("gameid: read random bytes: " + err.Error())
	}
	// 256 is a multiple of 32, so masking to five bits stays uniform.
	for i, b := range buf {
		id[i] = alphabet[b&0x1f]
	}
	return string(id)
}

// Validate checks that id is a well-formed session id: exactly Length
// characters, all from the base32 alphabet.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session id must be exactly %d characters, got %d", Length, len(id))
	}
	for i := 0; i < len(id); i++ {
		if !validChar(id[i]) {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}
	return nil
}

func validChar(c byte) bool {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == c {
			return true
		}
	}
	return false
}
