package engine

import "math/rand/v2"

// Dice isolates the die roll so the rest of the transition logic is
// deterministic and testable with fixed sequences.
type Dice interface {
	Roll() int
}

type sixSided struct{}

func (sixSided) Roll() int { return rand.IntN(6) + 1 }

// NewDice returns a uniform six-sided die.
func NewDice() Dice { return sixSided{} }
