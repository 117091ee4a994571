package agent

import (
	"math"

	"golang.org/x/exp/rand"

	"gully/game"
)

// Agent picks which of the current player's tokens to move for the roll at
// hand. Implementations must not mutate the game they are given.
type Agent interface {
	ChooseToken(g *game.Game, roll game.DiceRoll) int
}

type randomAgent struct {
	rng *rand.Rand
}

// Random returns an agent that picks a token uniformly at random.
func Random(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) ChooseToken(g *game.Game, roll game.DiceRoll) int {
	return 1 + a.rng.Intn(game.TokensPerPlayer)
}

type greedyAgent struct {
	rng *rand.Rand
}

// Greedy returns an agent that tries each token on a copy of the game and
// keeps the one whose immediate outcome scores best. Ties flip a coin.
func Greedy(seed uint64) Agent {
	return &greedyAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *greedyAgent) ChooseToken(g *game.Game, roll game.DiceRoll) int {
	best := 1
	bestValue := math.Inf(-1)
	for id := 1; id <= game.TokensPerPlayer; id++ {
		_, rep, err := g.PlayTurn(id, roll)
		if err != nil {
			continue
		}
		v := outcomeValue(rep)
		if v > bestValue || (v == bestValue && a.rng.Intn(2) == 1) {
			best = id
			bestValue = v
		}
	}
	return best
}

// outcomeValue weighs a turn report. Runs, captures and lap bonuses count
// for the mover; an own dismissal counts against.
func outcomeValue(rep *game.TurnReport) float64 {
	v := float64(rep.Runs())
	v += 12 * float64(rep.Captures())
	for _, e := range rep.Events {
		switch e.Type {
		case game.EventWicket:
			v -= 10
		case game.EventLevelUp:
			v += 6
		case game.EventLevelSteal:
			v += 3
		case game.EventExtraTurn:
			v += 4
		}
	}
	return v
}
