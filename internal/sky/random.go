package sky

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

type seededDice struct {
	rng *rand.Rand
}

// NewSeededDice builds a deterministic Dice from a session seed. Identical
// seeds replay identical weather selections and thunder strikes.
func NewSeededDice(seed int64) Dice {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return &seededDice{rng: rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))}
}

func (d *seededDice) RollDice(max int) int {
	if max <= 0 {
		return 0
	}
	return d.rng.IntN(max)
}

func (d *seededDice) RollProbability() float64 {
	return d.rng.Float64()
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
