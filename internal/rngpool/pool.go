// Package rngpool implements RngPool: a keyed collection of seedable PRNGs
// backing syscalls 40-42, keyed by generator id. math/rand/v2's ChaCha8 is
// the standard library's own port of the ChaCha8 cipher-PRNG family, used
// here unchanged rather than reaching for a third-party package (see
// DESIGN.md).
package rngpool

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"sync"
)

// DefaultID is the generator id that always exists, seeded from OS entropy
// at construction.
const DefaultID uint32 = 0

// Pool is a keyed collection of ChaCha8-backed generators.
type Pool struct {
	mu         sync.Mutex
	generators map[uint32]*rand.Rand
}

// New creates a Pool with generator 0 preseeded from OS entropy.
func New() *Pool {
	p := &Pool{generators: make(map[uint32]*rand.Rand)}

	var seed [32]byte
	if _, err := cryptorand.Read(seed[:]); err != nil {
		// crypto/rand.Read only fails if the OS entropy source is broken;
		// fall back to a fixed seed rather than leaving generator 0 absent,
		// which would violate the "generators[0] always exists" invariant.
		seed = seedFromUint32(0)
	}
	p.generators[DefaultID] = rand.New(rand.NewChaCha8(seed))

	return p
}

func seedFromUint32(seed uint32) [32]byte {
	var key [32]byte
	binary.LittleEndian.PutUint32(key[:4], seed)
	return key
}

// SetSeed creates or replaces the generator at id, seeded deterministically
// from seed: the same seed always produces the same sequence of subsequent
// draws (syscall 40).
func (p *Pool) SetSeed(id uint32, seed uint32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.generators[id] = rand.New(rand.NewChaCha8(seedFromUint32(seed)))
}

func noGeneratorError(id uint32) error {
	return fmt.Errorf(
		"no generator initialized for id %d, try using the default $a0 = 0 generator or create one with syscall 40",
		id)
}

// Uint32 draws a uniform uint32 from the generator at id (syscall 41).
func (p *Pool) Uint32(id uint32) (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	gen, ok := p.generators[id]
	if !ok {
		return 0, noGeneratorError(id)
	}
	return gen.Uint32(), nil
}

// Uint32Ranged draws a uniform uint32 in [0, max) from the generator at id
// (syscall 42). max == 0 is the only rejected value, since it is the only
// uint32 satisfying an unsigned max <= 0 test.
func (p *Pool) Uint32Ranged(id uint32, max uint32) (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	gen, ok := p.generators[id]
	if !ok {
		return 0, noGeneratorError(id)
	}
	if max == 0 {
		return 0, fmt.Errorf("empty range for random int, please set $a1 to a value greater than 0")
	}
	return gen.Uint32N(max), nil
}
