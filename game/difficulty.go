package game

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/rand"
)

type Difficulty string

const (
	DifficultyEasy    Difficulty = "EASY"
	DifficultyNormal  Difficulty = "NORMAL"
	DifficultyHard    Difficulty = "HARD"
	DifficultyExtreme Difficulty = "EXTREME"
)

// Difficulties lists every level in ascending order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExtreme}

// Multipliers scale the category count (against the 4 slots) and the
// estimated minimum turns.
type Multipliers struct {
	Category float64 `json:"category"`
	Turn     float64 `json:"turn"`
}

var difficultyTable = map[Difficulty]Multipliers{
	DifficultyEasy:    {Category: 1.3, Turn: 2.0},
	DifficultyNormal:  {Category: 1.3, Turn: 1.5},
	DifficultyHard:    {Category: 1.5, Turn: 1.0},
	DifficultyExtreme: {Category: 2.0, Turn: 1.0},
}

// ParseDifficulty accepts any letter case; an empty string is NORMAL.
func ParseDifficulty(s string) (Difficulty, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	d := Difficulty(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := difficultyTable[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
	return d, nil
}

// Multipliers falls back to NORMAL for unknown levels.
func (d Difficulty) Multipliers() Multipliers {
	if m, ok := difficultyTable[d]; ok {
		return m
	}
	return difficultyTable[DifficultyNormal]
}

// CategoryCount is floor(slots x category multiplier), before catalog clamping.
func (d Difficulty) CategoryCount() int {
	return int(math.Floor(float64(SlotCount) * d.Multipliers().Category))
}

// RandomDifficulty picks a level uniformly.
func RandomDifficulty(rng *rand.Rand) Difficulty {
	return Difficulties[rng.Intn(len(Difficulties))]
}

// TurnBudget is ceil(estimate x turn multiplier).
func TurnBudget(estimate int, d Difficulty) int {
	return int(math.Ceil(float64(estimate) * d.Multipliers().Turn))
}
