package chip8

import (
	"math/rand/v2"
)

// RandomSource provides the bytes used by the random opcode.
type RandomSource interface {
	Byte() uint8
}

type pcgSource struct {
	rng *rand.Rand
}

// NewRandomSource returns a pseudo random source. A seed of 0 returns a
// source seeded by the runtime, any other seed returns a reproducible
// sequence.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &pcgSource{
		rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

func (s *pcgSource) Byte() uint8 {
	return uint8(s.rng.Uint32())
}
