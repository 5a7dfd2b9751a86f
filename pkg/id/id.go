// Package id generates position and record identifiers.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var gen = newGenerator()

type generator struct {
	mu   sync.Mutex
	mono *ulid.MonotonicEntropy
}

func newGenerator() *generator {
	// Seed a PRNG from crypto/rand so entropy is unpredictable across
	// runs; monotonic entropy keeps same-millisecond IDs ordered.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &generator{
		mono: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
	}
}

// New returns a ULID string. ULIDs sort lexicographically by creation
// time, so position listings and journal indexes come out in
// chronological order without a separate timestamp sort.
func New() string {
	gen.mu.Lock()
	defer gen.mu.Unlock()
	return ulid.MustNew(ulid.Now(), gen.mono).String()
}
