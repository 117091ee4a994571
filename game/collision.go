package game

// resolveCaptures handles every enemy token sharing the mover's landing
// square. Defenders are scanned in seat order and their tokens in id
// order, so multi-captures resolve deterministically and a level steal
// from an earlier victim raises the bar for later ones. Reports whether
// at least one capture happened.
func (g *Game) resolveCaptures(attacker *Player, mover *Token, rep *TurnReport) bool {
	square := SquareAt(mover.Position)
	if square.Type == SafeZone {
		return false
	}
	captured := false
	for i := range g.Players {
		defender := &g.Players[i]
		if defender.ID == attacker.ID {
			continue
		}
		if g.Settings.KillRule == Fortress && g.stacked(defender, mover.Position) {
			continue
		}
		for ti := range defender.Tokens {
			victim := &defender.Tokens[ti]
			if victim.Position != mover.Position {
				continue
			}
			captured = true
			g.captureToken(attacker, mover, defender, victim, square, rep)
		}
	}
	return captured
}

// stacked reports whether the defender has both tokens on the square. Only
// the fortress rule cares.
func (g *Game) stacked(defender *Player, square int) bool {
	for i := range defender.Tokens {
		if defender.Tokens[i].Position != square {
			return false
		}
	}
	return true
}

// captureToken sends one victim home and settles the books: a wicket
// against the defender, an optional level steal, and the runs-square kill
// bonus for the attacker.
func (g *Game) captureToken(attacker *Player, mover *Token, defender *Player, victim *Token, square Square, rep *TurnReport) {
	victimLevel := victim.Level
	wentAllOut := defender.takeWicket()

	rep.add(Event{
		Type:    EventCapture,
		Color:   defender.Color,
		TokenID: victim.ID,
		Square:  square.Index,
		Value:   victimLevel,
		Path:    ReturnPath(victim.Position, defender.HomeBase, g.Settings),
	})
	victim.Position = defender.HomeBase
	victim.Level = 1

	if g.Settings.StealLevelOnKill && victimLevel > mover.Level {
		mover.Level = victimLevel
		rep.add(Event{
			Type:    EventLevelSteal,
			Color:   attacker.Color,
			TokenID: mover.ID,
			Square:  square.Index,
			Value:   victimLevel,
		})
	}
	if square.Type == RunsSquare {
		bonus := square.Value * g.Settings.KillBonusLevel
		attacker.addRuns(bonus)
		rep.add(Event{
			Type:    EventKillBonus,
			Color:   attacker.Color,
			TokenID: mover.ID,
			Square:  square.Index,
			Value:   bonus,
		})
	}
	if wentAllOut {
		rep.add(Event{
			Type:   EventAllOut,
			Color:  defender.Color,
			Square: square.Index,
		})
	}
}
