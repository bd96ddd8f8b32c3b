/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package ranking

import (
	crand "crypto/rand"
	"math/rand/v2"
)

// Shuffler is the engine's single source of randomness: spotlight decks,
// topic samples and room codes all draw from it.
type Shuffler struct {
	rng *rand.Rand
}

// NewShuffler wraps src. A nil src is seeded from crypto/rand.
func NewShuffler(src rand.Source) *Shuffler {
	if src == nil {
		src = rand.NewChaCha8(cryptoSeed())
	}

	return &Shuffler{rng: rand.New(src)}
}

func cryptoSeed() [32]byte {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic("crypto/rand failure: " + err.Error())
	}

	return seed
}

// Shuffle permutes ids in place (Fisher-Yates).
func (s *Shuffler) Shuffle(ids []string) {
	for i := len(ids) - 1; i > 0; i-- {
		j := s.rng.IntN(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

// IntN returns a value in [0, n).
func (s *Shuffler) IntN(n int) int {
	return s.rng.IntN(n)
}

// Seed derives a deterministic source from a single value, for tests and replays.
func Seed(v uint64) rand.Source {
	return rand.NewPCG(v, v^0x9e3779b97f4a7c15)
}
