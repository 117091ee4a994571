package game

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrGameOver rejects turns played after the result is latched.
	ErrGameOver = errors.New("game is over")
	// ErrNoSuchToken rejects token ids other than 1 and 2.
	ErrNoSuchToken = errors.New("no such token")
	// ErrBadRoll rejects step counts outside 1-6 and directions the
	// settings do not allow.
	ErrBadRoll = errors.New("bad dice roll")
)

// PlayTurn resolves one turn for the current player: move the chosen token
// by the roll, award a lap bonus if the move crossed home, capture enemy
// tokens on the landing square, apply the square's effect, then hand play
// to the next seat unless an uncontested extra turn was earned. The
// receiver is left untouched; the returned state and report describe the
// outcome.
//
// A current player who is all out or has no turns left is skipped: play
// advances, the roll is not consumed, and the report carries a single
// turn-skipped event.
func (g *Game) PlayTurn(tokenID int, roll DiceRoll) (*Game, *TurnReport, error) {
	if g.GameOver {
		return nil, nil, fmt.Errorf("%w: won by %s", ErrGameOver, g.Won)
	}
	cur := g.CurrentPlayer()
	if !cur.CanAct() {
		rep := &TurnReport{Color: cur.Color}
		rep.add(Event{Type: EventTurnSkipped, Color: cur.Color, Square: NoSquare})
		return g.AdvanceTurn(), rep, nil
	}
	if cur.Token(tokenID) == nil {
		return nil, nil, fmt.Errorf("%w: token %d", ErrNoSuchToken, tokenID)
	}
	if roll.Steps < 1 || roll.Steps > 6 {
		return nil, nil, fmt.Errorf("%w: %d steps", ErrBadRoll, roll.Steps)
	}
	if !validDirection(roll.Direction) {
		return nil, nil, fmt.Errorf("%w: direction %q", ErrBadRoll, string(roll.Direction))
	}
	if roll.Direction == AntiClockwise && !g.Settings.AllowAntiClockwise {
		return nil, nil, fmt.Errorf("%w: anti-clockwise movement disabled", ErrBadRoll)
	}

	ng := g.Copy()
	p := ng.CurrentPlayer()
	mover := p.Token(tokenID)
	start := mover.Position
	path := MovementPath(start, roll.Steps, roll.Direction)
	rep := &TurnReport{Color: p.Color, TokenID: tokenID, Roll: roll, Path: path}

	// Lap bonus: crossing or landing on home levels the token up, but
	// only when the move did not start there. Leaving home is the start
	// of a lap, not the end of one.
	if start != p.HomeBase && slices.Contains(path, p.HomeBase) {
		mover.Level++
		rep.add(Event{
			Type:    EventLevelUp,
			Color:   p.Color,
			TokenID: tokenID,
			Square:  p.HomeBase,
			Value:   mover.Level,
		})
	}

	mover.Position = path[len(path)-1]

	rep.Captured = ng.resolveCaptures(p, mover, rep)
	extra := ng.applySquareEvent(p, mover, rep)

	// A capture always ends the turn, trumping an extra-turn grant.
	if extra && !rep.Captured {
		rep.ExtraTurn = true
		rep.add(Event{
			Type:    EventExtraTurn,
			Color:   p.Color,
			TokenID: tokenID,
			Square:  mover.Position,
		})
	} else {
		p.consumeTurn()
		ng.Current = ng.nextIndex()
	}

	ng.evaluateGameOver(rep)
	return ng, rep, nil
}
