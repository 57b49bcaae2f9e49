// Package randutil picks seeds for games whose caller supplied none.
package randutil

import (
	"crypto/rand"
	"encoding/binary"
)

// SeedRange bounds generated seeds. Seeds stay in [0, SeedRange) so they
// read as short shareable numbers; any int64 a caller supplies directly is
// still a valid seed.
const SeedRange = 1_000_000

// NewSeed returns a fresh seed drawn from crypto/rand. The seed is
// recorded on the dealt game state, so one number reproduces the game.
func NewSeed() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("randutil: read random bytes: " + err.Error())
	}
	return int64(binary.BigEndian.Uint64(b[:]) % SeedRange)
}
