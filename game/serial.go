package game

import (
	"encoding/json"
	"fmt"
)

// TokenSnapshot is a token's wire form.
type TokenSnapshot struct {
	ID       int `json:"id"`
	Position int `json:"position"`
	Level    int `json:"level"`
}

// PlayerSnapshot is a player's wire form.
type PlayerSnapshot struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	Color          Color           `json:"color"`
	IsAI           bool            `json:"isAI"`
	Score          int             `json:"score"`
	Wickets        int             `json:"wickets"`
	TurnsRemaining int             `json:"turnsRemaining"`
	HomeBase       int             `json:"homeBase"`
	IsAllOut       bool            `json:"isAllOut"`
	Tokens         []TokenSnapshot `json:"tokens"`
}

// Snapshot is the full wire form of a game. A snapshot round-trips: a game
// restored from one behaves exactly like the one that produced it. The
// board is not serialized, it is static.
type Snapshot struct {
	Mode               Mode             `json:"mode"`
	Settings           Settings         `json:"settings"`
	Players            []PlayerSnapshot `json:"players"`
	CurrentPlayerIndex int              `json:"currentPlayerIndex"`
	IsGameOver         bool             `json:"isGameOver"`
	Winner             Color            `json:"winner,omitempty"`
}

// Snapshot captures the game's wire form.
func (g *Game) Snapshot() Snapshot {
	players := make([]PlayerSnapshot, len(g.Players))
	for i := range g.Players {
		p := &g.Players[i]
		tokens := make([]TokenSnapshot, len(p.Tokens))
		for ti, t := range p.Tokens {
			tokens[ti] = TokenSnapshot{ID: t.ID, Position: t.Position, Level: t.Level}
		}
		players[i] = PlayerSnapshot{
			ID:             p.ID,
			Name:           p.Name,
			Color:          p.Color,
			IsAI:           p.IsAI,
			Score:          p.Score,
			Wickets:        p.Wickets,
			TurnsRemaining: p.TurnsRemaining,
			HomeBase:       p.HomeBase,
			IsAllOut:       p.AllOut,
			Tokens:         tokens,
		}
	}
	return Snapshot{
		Mode:               g.Mode,
		Settings:           g.Settings,
		Players:            players,
		CurrentPlayerIndex: g.Current,
		IsGameOver:         g.GameOver,
		Winner:             g.Won,
	}
}

// ToJSON serializes the game.
func (g *Game) ToJSON() ([]byte, error) {
	return json.Marshal(g.Snapshot())
}

// FromJSON restores a game from its JSON form, rejecting malformed shapes
// and states that violate the rules' invariants.
func FromJSON(data []byte) (*Game, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode game state: %w", err)
	}
	return FromSnapshot(snap)
}

// FromSnapshot validates a snapshot field by field and builds the game it
// describes. Every violated invariant is reported with the player and
// field at fault.
func FromSnapshot(snap Snapshot) (*Game, error) {
	if !validMode(snap.Mode) {
		return nil, fmt.Errorf("unknown mode %q", string(snap.Mode))
	}
	settings := snap.Settings.normalized()
	if err := settings.validate(); err != nil {
		return nil, err
	}
	if len(snap.Players) < 2 || len(snap.Players) > 4 {
		return nil, fmt.Errorf("need 2 to 4 players, got %d", len(snap.Players))
	}
	budget := snap.Mode.TurnBudget()
	taken := map[Color]bool{}
	players := make([]Player, len(snap.Players))
	for i, ps := range snap.Players {
		if ps.ID != i+1 {
			return nil, fmt.Errorf("player %d: id %d out of order", i+1, ps.ID)
		}
		if !validColor(ps.Color) {
			return nil, fmt.Errorf("player %d: unknown color %q", ps.ID, string(ps.Color))
		}
		if taken[ps.Color] {
			return nil, fmt.Errorf("player %d: color %q seated twice", ps.ID, string(ps.Color))
		}
		taken[ps.Color] = true
		if ps.HomeBase != HomeBase(ps.Color) {
			return nil, fmt.Errorf("player %d: home base %d does not belong to %s", ps.ID, ps.HomeBase, ps.Color)
		}
		if ps.Score < 0 {
			return nil, fmt.Errorf("player %d: negative score %d", ps.ID, ps.Score)
		}
		if ps.Wickets < 0 || ps.Wickets > MaxWickets {
			return nil, fmt.Errorf("player %d: wickets %d out of range", ps.ID, ps.Wickets)
		}
		if ps.IsAllOut != (ps.Wickets == MaxWickets) {
			return nil, fmt.Errorf("player %d: all-out flag disagrees with %d wickets", ps.ID, ps.Wickets)
		}
		if budget == UnlimitedTurns {
			if ps.TurnsRemaining != UnlimitedTurns {
				return nil, fmt.Errorf("player %d: turn budget %d in unlimited mode", ps.ID, ps.TurnsRemaining)
			}
		} else if ps.TurnsRemaining < 0 || ps.TurnsRemaining > budget {
			return nil, fmt.Errorf("player %d: turns remaining %d outside 0-%d", ps.ID, ps.TurnsRemaining, budget)
		}
		if len(ps.Tokens) != TokensPerPlayer {
			return nil, fmt.Errorf("player %d: %d tokens, want %d", ps.ID, len(ps.Tokens), TokensPerPlayer)
		}
		var tokens [TokensPerPlayer]Token
		for ti, ts := range ps.Tokens {
			if ts.ID != ti+1 {
				return nil, fmt.Errorf("player %d: token id %d out of order", ps.ID, ts.ID)
			}
			if ts.Position < 0 || ts.Position >= RingSize {
				return nil, fmt.Errorf("player %d token %d: position %d off the board", ps.ID, ts.ID, ts.Position)
			}
			if ts.Level < 1 {
				return nil, fmt.Errorf("player %d token %d: level %d below 1", ps.ID, ts.ID, ts.Level)
			}
			tokens[ti] = Token{ID: ts.ID, Position: ts.Position, Level: ts.Level}
		}
		name := ps.Name
		if name == "" {
			name = fmt.Sprintf("Player %d", ps.ID)
		}
		players[i] = Player{
			ID:             ps.ID,
			Name:           name,
			Color:          ps.Color,
			IsAI:           ps.IsAI,
			Score:          ps.Score,
			Wickets:        ps.Wickets,
			TurnsRemaining: ps.TurnsRemaining,
			HomeBase:       ps.HomeBase,
			AllOut:         ps.IsAllOut,
			Tokens:         tokens,
		}
	}
	if snap.CurrentPlayerIndex < 0 || snap.CurrentPlayerIndex >= len(players) {
		return nil, fmt.Errorf("current player index %d out of range", snap.CurrentPlayerIndex)
	}

	g := &Game{
		Mode:     snap.Mode,
		Settings: settings,
		Players:  players,
		Current:  snap.CurrentPlayerIndex,
		GameOver: snap.IsGameOver,
		Won:      snap.Winner,
	}

	// Cross-check the latched result against the end conditions the
	// state itself implies. A finished game must carry the winner the
	// rules would pick; a live game must not already satisfy an end
	// condition.
	expected, over := g.endResult()
	if snap.IsGameOver {
		if !over {
			return nil, fmt.Errorf("game marked over but no end condition holds")
		}
		if snap.Winner != expected {
			return nil, fmt.Errorf("winner %q disagrees with end conditions, want %q", string(snap.Winner), string(expected))
		}
	} else {
		if snap.Winner != ColorNone {
			return nil, fmt.Errorf("winner %q set on a live game", string(snap.Winner))
		}
		if over {
			return nil, fmt.Errorf("end condition already met but game not marked over")
		}
	}
	return g, nil
}
