// Package cryptorand is a math/rand Source backed by crypto/rand, for games
// whose dice shouldn't be predictable from a seed.
package cryptorand

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
)

// Source reads every value from the operating system. It's safe for
// concurrent use, but the *rand.Rand wrapping it isn't.
type Source struct{}

var _ mrand.Source64 = Source{}

// New returns a *rand.Rand that draws from crypto/rand.
func New() *mrand.Rand {
	return mrand.New(Source{})
}

func (Source) Uint64() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(err)
	}
	return binary.LittleEndian.Uint64(buf[:])
}

func (s Source) Int63() int64 {
	return int64(s.Uint64() &^ (1 << 63))
}

// Seed is a no-op.
func (Source) Seed(int64) {}
