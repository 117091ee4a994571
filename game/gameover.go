package game

// evaluateGameOver latches the result once an end condition holds. Called
// at the end of every resolved turn, so a game never sits in a finished
// position without GameOver set.
//
// Two conditions end a game:
//   - chase won: exactly one player is still batting and their score
//     strictly exceeds every all-out score, which are frozen, so nobody
//     can overtake them
//   - hard stop: no player can act any more, every seat is all out or out
//     of turns
func (g *Game) evaluateGameOver(rep *TurnReport) {
	if g.GameOver {
		return
	}
	if winner, over := g.endResult(); over {
		g.latchResult(winner, rep)
	}
}

// endResult recomputes whether an end condition holds right now and who it
// favors. Deterministic: chase is checked before the hard stop.
func (g *Game) endResult() (Color, bool) {
	if winner, over := g.chaseWinner(); over {
		return winner, true
	}
	for i := range g.Players {
		if g.Players[i].CanAct() {
			return ColorNone, false
		}
	}
	return g.leader().Color, true
}

func (g *Game) latchResult(winner Color, rep *TurnReport) {
	g.GameOver = true
	g.Won = winner
	rep.add(Event{Type: EventGameOver, Color: winner, Square: NoSquare})
}

func (g *Game) chaseWinner() (Color, bool) {
	var survivor *Player
	maxOut := 0
	for i := range g.Players {
		p := &g.Players[i]
		if p.AllOut {
			if p.Score > maxOut {
				maxOut = p.Score
			}
			continue
		}
		if survivor != nil {
			// two or more still batting
			return ColorNone, false
		}
		survivor = p
	}
	if survivor == nil || survivor.Score <= maxOut {
		return ColorNone, false
	}
	return survivor.Color, true
}

// leader ranks every seat, all out or not, by score, then fewer wickets,
// then seat order. Used for the hard-stop result.
func (g *Game) leader() *Player {
	best := &g.Players[0]
	for i := 1; i < len(g.Players); i++ {
		p := &g.Players[i]
		if p.Score > best.Score || (p.Score == best.Score && p.Wickets < best.Wickets) {
			best = p
		}
	}
	return best
}
