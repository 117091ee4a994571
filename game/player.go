package game

// Color identifies a seat. Seating order around the board is fixed:
// Blue, Yellow, Green, Purple.
type Color string

const (
	ColorNone Color = ""
	Blue      Color = "blue"
	Yellow    Color = "yellow"
	Green     Color = "green"
	Purple    Color = "purple"
)

// SeatOrder lists the valid colors in seating order.
var SeatOrder = []Color{Blue, Yellow, Green, Purple}

// UnlimitedTurns marks a turn budget that never runs out (Test mode).
const UnlimitedTurns = -1

// MaxWickets is the innings limit. The tenth wicket puts a player all out
// for the rest of the game.
const MaxWickets = 10

// TokensPerPlayer is fixed: every player fields exactly two tokens.
const TokensPerPlayer = 2

// Token is one of a player's two pieces on the ring.
type Token struct {
	ID       int // 1 or 2, unique within the owning player
	Position int // ring square index
	Level    int // run multiplier, starts at 1, never drops below 1
}

// Player holds one seat's full innings state.
type Player struct {
	ID             int
	Name           string
	Color          Color
	IsAI           bool
	Score          int
	Wickets        int
	TurnsRemaining int // UnlimitedTurns in Test mode
	HomeBase       int
	AllOut         bool
	Tokens         [TokensPerPlayer]Token
}

// addRuns credits runs to the player's score. Score only ever grows.
func (p *Player) addRuns(runs int) {
	if runs < 0 {
		panic("negative run credit")
	}
	p.Score += runs
}

// takeWicket records the fall of one wicket and reports whether it was the
// tenth, i.e. whether the player just went all out. The count saturates at
// MaxWickets and the all-out flag latches: neither ever reverses.
func (p *Player) takeWicket() bool {
	wasAllOut := p.AllOut
	if p.Wickets < MaxWickets {
		p.Wickets++
	}
	if p.Wickets >= MaxWickets {
		p.AllOut = true
	}
	return p.AllOut && !wasAllOut
}

// consumeTurn spends one turn from a limited budget. Unlimited budgets are
// left untouched.
func (p *Player) consumeTurn() {
	if p.TurnsRemaining > 0 {
		p.TurnsRemaining--
	}
}

// CanAct reports whether the player may still take turns: not all out and
// holding either an unlimited or a positive turn budget.
func (p *Player) CanAct() bool {
	if p.AllOut {
		return false
	}
	return p.TurnsRemaining == UnlimitedTurns || p.TurnsRemaining > 0
}

// Token returns the player's token with the given id (1 or 2).
func (p *Player) Token(id int) *Token {
	for i := range p.Tokens {
		if p.Tokens[i].ID == id {
			return &p.Tokens[i]
		}
	}
	return nil
}

func validColor(c Color) bool {
	for _, s := range SeatOrder {
		if c == s {
			return true
		}
	}
	return false
}
