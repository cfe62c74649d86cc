package chip8

import (
	"math/rand"
	"time"
)

// RandomSource supplies one random byte per call for the RND instruction.
// Tests substitute a deterministic sequence.
type RandomSource interface {
	Byte() byte
}

// mathRandom is the default random source, backed by math/rand.
type mathRandom struct {
	rng *rand.Rand
}

func newMathRandom() *mathRandom {
	return &mathRandom{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *mathRandom) Byte() byte {
	return byte(r.rng.Intn(256))
}
