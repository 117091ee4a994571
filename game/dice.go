package game

import "golang.org/x/exp/rand"

// DiceRoll is one throw: how far to move and which way around the ring.
type DiceRoll struct {
	Steps     int       `json:"steps"`
	Direction Direction `json:"direction"`
}

// Roller produces dice rolls from a seeded source, so a match replayed
// with the same seed rolls the same sequence. The core never rolls on its
// own; callers roll and pass the result to PlayTurn.
type Roller struct {
	rng           *rand.Rand
	antiClockwise bool
}

// NewRoller returns a roller seeded for reproducible play. Direction rolls
// only happen when the settings allow anti-clockwise movement; otherwise
// every roll is clockwise and the seed stream is spent on step counts only.
func NewRoller(seed uint64, s Settings) *Roller {
	return &Roller{
		rng:           rand.New(rand.NewSource(seed)),
		antiClockwise: s.AllowAntiClockwise,
	}
}

// Roll throws the movement die (1-6) and, when enabled, the direction coin.
func (r *Roller) Roll() DiceRoll {
	roll := DiceRoll{
		Steps:     r.rng.Intn(6) + 1,
		Direction: Clockwise,
	}
	if r.antiClockwise && r.rng.Intn(2) == 1 {
		roll.Direction = AntiClockwise
	}
	return roll
}
