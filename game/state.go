package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// StateHash identifies a game state, for transposition tables and replay
// checks.
type StateHash uint64

// Seat describes one participant when creating a game.
type Seat struct {
	Name  string `json:"name"`
	Color Color  `json:"color"`
	IsAI  bool   `json:"isAI"`
}

// Game is the complete rules-engine state. Turn resolution never mutates a
// Game in place: PlayTurn and AdvanceTurn return fresh copies, so a held
// *Game stays valid for reads while the match moves on.
type Game struct {
	Mode     Mode
	Settings Settings
	Players  []Player
	Current  int // index into Players of the player to act
	GameOver bool
	Won      Color // latched when GameOver flips, ColorNone before
}

// NewGame seats 2-4 players and puts both of each player's tokens on their
// home base at level 1. Seat order is play order.
func NewGame(mode Mode, seats []Seat, settings Settings) (*Game, error) {
	if !validMode(mode) {
		return nil, fmt.Errorf("unknown mode %q", string(mode))
	}
	settings = settings.normalized()
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if len(seats) < 2 || len(seats) > 4 {
		return nil, fmt.Errorf("need 2 to 4 players, got %d", len(seats))
	}
	budget := mode.TurnBudget()
	taken := map[Color]bool{}
	players := make([]Player, len(seats))
	for i, seat := range seats {
		if !validColor(seat.Color) {
			return nil, fmt.Errorf("unknown color %q", string(seat.Color))
		}
		if taken[seat.Color] {
			return nil, fmt.Errorf("color %q seated twice", string(seat.Color))
		}
		taken[seat.Color] = true
		name := seat.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", i+1)
		}
		home := HomeBase(seat.Color)
		players[i] = Player{
			ID:             i + 1,
			Name:           name,
			Color:          seat.Color,
			IsAI:           seat.IsAI,
			TurnsRemaining: budget,
			HomeBase:       home,
			Tokens: [TokensPerPlayer]Token{
				{ID: 1, Position: home, Level: 1},
				{ID: 2, Position: home, Level: 1},
			},
		}
	}
	return &Game{
		Mode:     mode,
		Settings: settings,
		Players:  players,
	}, nil
}

// Copy returns a deep copy. Tokens live in a fixed-size array inside each
// player, so copying the player slice copies the whole tree.
func (g *Game) Copy() *Game {
	players := make([]Player, len(g.Players))
	copy(players, g.Players)
	ng := *g
	ng.Players = players
	return &ng
}

// CurrentPlayer returns the player whose turn it is. The pointer aliases
// the game's own state; treat it as read-only.
func (g *Game) CurrentPlayer() *Player {
	return &g.Players[g.Current]
}

// PlayerByColor returns the seated player with the given color, or nil.
func (g *Game) PlayerByColor(c Color) *Player {
	for i := range g.Players {
		if g.Players[i].Color == c {
			return &g.Players[i]
		}
	}
	return nil
}

// AdvanceTurn passes play to the next seat without resolving a move, so
// callers can step past players who cannot act without spending a dice
// roll. Returns a new state.
func (g *Game) AdvanceTurn() *Game {
	ng := g.Copy()
	ng.Current = ng.nextIndex()
	return ng
}

func (g *Game) nextIndex() int {
	return (g.Current + 1) % len(g.Players)
}

// Winner returns the latched result, or ColorNone while play continues.
func (g *Game) Winner() Color {
	return g.Won
}

// Hash folds the full state into a 64-bit fingerprint. Equal states hash
// equal; distinct states collide only with fnv's usual odds.
func (g *Game) Hash() StateHash {
	h := fnv.New64a()
	h.Write([]byte(g.Mode))
	h.Write([]byte(g.Settings.KillRule))
	h.Write([]byte{
		boolByte(g.Settings.AllowAntiClockwise),
		boolByte(g.Settings.StealLevelOnKill),
		byte(g.Settings.KillBonusLevel),
		boolByte(g.GameOver),
	})
	binary.Write(h, binary.LittleEndian, int64(g.Current))
	h.Write([]byte(g.Won))
	for i := range g.Players {
		p := &g.Players[i]
		h.Write([]byte(p.Color))
		h.Write([]byte{boolByte(p.AllOut)})
		binary.Write(h, binary.LittleEndian, int64(p.Score))
		binary.Write(h, binary.LittleEndian, int64(p.Wickets))
		binary.Write(h, binary.LittleEndian, int64(p.TurnsRemaining))
		for _, t := range p.Tokens {
			binary.Write(h, binary.LittleEndian, int64(t.Position))
			binary.Write(h, binary.LittleEndian, int64(t.Level))
		}
	}
	return StateHash(h.Sum64())
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
