package agent

import (
	"sync"
	"sync/atomic"

	"golang.org/x/exp/rand"

	"gully/game"
)

const (
	defaultPlayouts    = 64
	defaultHorizon     = 400
	defaultParallelism = 4
)

// Option tunes a rollout agent.
type Option func(*rolloutAgent)

// WithPlayouts sets how many random continuations are sampled per token.
func WithPlayouts(n int) Option {
	return func(a *rolloutAgent) { a.playouts = n }
}

// WithHorizon caps each continuation's length. Positions still open at the
// cap are judged by the standings at that point.
func WithHorizon(turns int) Option {
	return func(a *rolloutAgent) { a.horizon = turns }
}

// WithParallelism sets how many playouts run concurrently.
func WithParallelism(n int) Option {
	return func(a *rolloutAgent) { a.parallelism = n }
}

type rolloutAgent struct {
	rng         *rand.Rand
	playouts    int
	horizon     int
	parallelism int
}

// Rollouts returns an agent that samples random continuations of the match
// for each candidate token and plays the one that wins most often. Every
// playout derives its own seed, so a choice is reproducible regardless of
// goroutine scheduling.
func Rollouts(seed uint64, opts ...Option) Agent {
	a := &rolloutAgent{
		rng:         rand.New(rand.NewSource(seed)),
		playouts:    defaultPlayouts,
		horizon:     defaultHorizon,
		parallelism: defaultParallelism,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *rolloutAgent) ChooseToken(g *game.Game, roll game.DiceRoll) int {
	base := a.rng.Uint64()
	var wins [game.TokensPerPlayer]atomic.Int64

	type job struct {
		token int
		seed  uint64
	}
	jobs := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < a.parallelism; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if a.playout(g, j.token, roll, j.seed) {
					wins[j.token-1].Add(1)
				}
			}
		}()
	}
	for id := 1; id <= game.TokensPerPlayer; id++ {
		for i := 0; i < a.playouts; i++ {
			jobs <- job{token: id, seed: base + uint64(id*a.playouts+i)}
		}
	}
	close(jobs)
	wg.Wait()

	best := 1
	for id := 2; id <= game.TokensPerPlayer; id++ {
		if wins[id-1].Load() > wins[best-1].Load() {
			best = id
		}
	}
	return best
}

// playout plays the candidate move, then random tokens and rolls until the
// game ends or the horizon is hit. Reports whether the acting player came
// out on top.
func (a *rolloutAgent) playout(g *game.Game, tokenID int, roll game.DiceRoll, seed uint64) bool {
	rng := rand.New(rand.NewSource(seed))
	roller := game.NewRoller(rng.Uint64(), g.Settings)
	me := g.CurrentPlayer().Color

	state, _, err := g.PlayTurn(tokenID, roll)
	if err != nil {
		return false
	}
	for turns := 0; !state.GameOver && turns < a.horizon; turns++ {
		if !state.CurrentPlayer().CanAct() {
			state = state.AdvanceTurn()
			continue
		}
		next, _, err := state.PlayTurn(1+rng.Intn(game.TokensPerPlayer), roller.Roll())
		if err != nil {
			return false
		}
		state = next
	}
	if state.GameOver {
		return state.Winner() == me
	}
	return leading(state, me)
}

// leading reports whether the color would win if the standings froze now:
// most runs, then fewest wickets, then seat order.
func leading(g *game.Game, c game.Color) bool {
	best := &g.Players[0]
	for i := 1; i < len(g.Players); i++ {
		p := &g.Players[i]
		if p.Score > best.Score || (p.Score == best.Score && p.Wickets < best.Wickets) {
			best = p
		}
	}
	return best.Color == c
}
