package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"gully/agent"
	"gully/experiments/metrics"
	"gully/game"
)

// MaxTurns caps a single match. Unlimited-budget games between weak agents
// can wander; hitting the cap abandons the match with no winner.
const MaxTurns = 1000

// Match drives one game to completion: rolls the dice, asks each seat's
// agent for a token, and applies the turns.
type Match struct {
	state  *game.Game
	agents map[game.Color]agent.Agent
	roller *game.Roller
}

// NewMatch wires a game to its agents and dice. Every seat needs an agent.
func NewMatch(g *game.Game, agents map[game.Color]agent.Agent, roller *game.Roller) *Match {
	if g == nil {
		panic("need a game")
	}
	if roller == nil {
		panic("need a roller")
	}
	for i := range g.Players {
		if agents[g.Players[i].Color] == nil {
			panic(fmt.Sprintf("no agent seated for %s", g.Players[i].Color))
		}
	}
	return &Match{state: g, agents: agents, roller: roller}
}

// State returns the match's current game state.
func (m *Match) State() *game.Game {
	return m.state
}

// Run plays until the game ends or MaxTurns iterations pass. Returns the
// winner (ColorNone on a cutoff) plus per-game and per-turn metrics.
func (m *Match) Run() (game.Color, metrics.GameMetric, []metrics.TurnMetric) {
	gm := metrics.GameMetric{
		StartingColor: string(m.state.CurrentPlayer().Color),
		StartTime:     time.Now(),
	}
	var turnMetrics []metrics.TurnMetric

	log.Debug().Msgf("%s is starting a %s match with %d players",
		gm.StartingColor, m.state.Mode, len(m.state.Players))

	for turn := 0; !m.state.GameOver && turn < MaxTurns; turn++ {
		cur := m.state.CurrentPlayer()
		if !cur.CanAct() {
			m.state = m.state.AdvanceTurn()
			continue
		}

		roll := m.roller.Roll()
		tokenID := m.agents[cur.Color].ChooseToken(m.state, roll)
		if cur.Token(tokenID) == nil {
			log.Warn().Msgf("%s's agent chose token %d, falling back to token 1", cur.Color, tokenID)
			tokenID = 1
		}
		next, rep, err := m.state.PlayTurn(tokenID, roll)
		if err != nil {
			// inputs were validated above, so this is a bug
			panic(err)
		}
		m.state = next

		gm.Turns++
		gm.Captures += rep.Captures()
		turnMetrics = append(turnMetrics, metrics.TurnMetric{
			Turn:      gm.Turns,
			Color:     string(rep.Color),
			TokenID:   rep.TokenID,
			Steps:     roll.Steps,
			Direction: string(roll.Direction),
			Runs:      rep.Runs(),
			Captured:  rep.Captured,
			ExtraTurn: rep.ExtraTurn,
		})
	}

	gm.EndTime = time.Now()
	gm.Duration = gm.EndTime.Sub(gm.StartTime)
	gm.Winner = string(m.state.Winner())
	for i := range m.state.Players {
		gm.Wickets += m.state.Players[i].Wickets
	}

	if m.state.GameOver {
		log.Debug().Msgf("match finished after %d turns, %s won", gm.Turns, gm.Winner)
	} else {
		log.Warn().Msgf("match cut off after %d turns without a result", gm.Turns)
	}
	return m.state.Winner(), gm, turnMetrics
}
