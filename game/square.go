package game

import "fmt"

// applySquareEvent resolves the landing square's effect on the mover,
// exactly once per turn, after captures. Scoring uses the token's level as
// it stands now, lap bonus and any level steal included. Returns whether
// the square grants an extra turn.
func (g *Game) applySquareEvent(p *Player, mover *Token, rep *TurnReport) bool {
	square := SquareAt(mover.Position)
	switch square.Type {
	case RunsSquare:
		runs := square.Value * mover.Level
		p.addRuns(runs)
		rep.add(Event{
			Type:    EventRuns,
			Color:   p.Color,
			TokenID: mover.ID,
			Square:  square.Index,
			Value:   runs,
		})
	case WicketSquare:
		wentAllOut := p.takeWicket()
		rep.add(Event{
			Type:    EventWicket,
			Color:   p.Color,
			TokenID: mover.ID,
			Square:  square.Index,
			Path:    ReturnPath(mover.Position, p.HomeBase, g.Settings),
		})
		mover.Position = p.HomeBase
		mover.Level = 1
		if wentAllOut {
			rep.add(Event{
				Type:   EventAllOut,
				Color:  p.Color,
				Square: square.Index,
			})
		}
	case ExtraSquare:
		runs := mover.Level
		p.addRuns(runs)
		rep.add(Event{
			Type:    EventRuns,
			Color:   p.Color,
			TokenID: mover.ID,
			Square:  square.Index,
			Value:   runs,
		})
		return true
	case DotBall, SafeZone:
		// nothing happens
	default:
		panic(fmt.Sprintf("unknown square type %d", int(square.Type)))
	}
	return false
}
