// internal/game/dice.go
package game

import "math/rand"

// Roller produces the two dice of one roll.
type Roller interface {
	Roll() (int, int)
}

// RandomDice rolls two fair six-sided dice.
type RandomDice struct {
	rng *rand.Rand
}

func NewRandomDice(seed int64) *RandomDice {
	return &RandomDice{rng: rand.New(rand.NewSource(seed))}
}

func (d *RandomDice) Roll() (int, int) {
	return d.rng.Intn(6) + 1, d.rng.Intn(6) + 1
}
